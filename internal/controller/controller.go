// Package controller implements the progressive disclosure state machine:
// gate, check prerequisite, dispatch to the gateway, merge copy-on-write,
// then debit. A failed step leaves account and aggregate exactly as they
// were; nothing is retried on the caller's behalf.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"chronolink/internal/account"
	"chronolink/internal/gemini"
	"chronolink/internal/history"
)

// ImageCost is the flat price of one image generation.
const ImageCost = 1

var (
	// ErrBusy means a tiered request is already in flight for this session.
	ErrBusy = errors.New("controller: a request is already in flight")
	// ErrImageBusy means an image generation is already in flight.
	ErrImageBusy = errors.New("controller: an image generation is already in flight")
	// ErrNoQuery means a tiered or image action arrived before any tier-1
	// resolution.
	ErrNoQuery = errors.New("controller: no active query")
	// ErrNotReady means the tier's prerequisite field is still unfilled. The
	// request is a no-op regardless of what the caller exposed.
	ErrNotReady = errors.New("controller: prerequisite tier not yet fetched")
	// ErrNoSuchTier means the current mode has no such rung (e.g. tier 4 for
	// a time query).
	ErrNoSuchTier = errors.New("controller: tier not defined for this mode")
)

// GateReason says which entitlement check failed.
type GateReason string

const (
	GateLoginRequired       GateReason = "login_required"
	GatePendingApproval     GateReason = "pending_approval"
	GateInsufficientCredits GateReason = "insufficient_credits"
)

// GateError is returned when the account is not entitled to the action. It
// is resolved by the user logging in, being approved, or topping up; never by
// a retry.
type GateError struct {
	Reason    GateReason
	Message   string
	Required  int
	Available int
}

func (e *GateError) Error() string { return e.Message }

// Controller owns one session's account and aggregate. All methods are safe
// for concurrent use; a single in-flight flag serializes tiered fetches and
// an independent flag serializes image generation.
type Controller struct {
	mu   sync.Mutex
	acct *account.Account
	inv  gemini.Invoker

	agg      *history.Aggregate
	fetching bool
	imaging  bool
}

// New builds a controller around an account and a gateway.
func New(acct *account.Account, inv gemini.Invoker) *Controller {
	return &Controller{acct: acct, inv: inv}
}

// Aggregate returns a copy of the current aggregate, if any.
func (c *Controller) Aggregate() (history.Aggregate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.agg == nil {
		return history.Aggregate{}, false
	}
	return *c.agg, true
}

// Busy reports the two independent loading flags.
func (c *Controller) Busy() (fetching, imaging bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetching, c.imaging
}

// ResolveTime runs the free tier-1 resolution for a time query, replacing
// any previous aggregate wholesale.
func (c *Controller) ResolveTime(ctx context.Context, q history.TimeQuery) (history.Aggregate, error) {
	return c.resolve(ctx, func(ctx context.Context) (history.Aggregate, error) {
		pair, err := gemini.GetSummaries(ctx, c.inv, q)
		if err != nil {
			return history.Aggregate{}, err
		}
		return history.NewTime(q, pair), nil
	})
}

// ResolveSearch classifies the term (free, ungated) and runs the matching
// tier-1 resolution, replacing any previous aggregate wholesale.
func (c *Controller) ResolveSearch(ctx context.Context, term string) (history.Aggregate, error) {
	return c.resolve(ctx, func(ctx context.Context) (history.Aggregate, error) {
		kind, err := gemini.ClassifySearchTerm(ctx, c.inv, term)
		if err != nil {
			return history.Aggregate{}, err
		}
		if kind == history.KindPerson {
			summary, err := gemini.GetPersonSummary(ctx, c.inv, term)
			if err != nil {
				return history.Aggregate{}, err
			}
			return history.NewPerson(term, summary), nil
		}
		summary, err := gemini.GetTopicSummary(ctx, c.inv, term)
		if err != nil {
			return history.Aggregate{}, err
		}
		return history.NewTopic(term, summary), nil
	})
}

// resolve runs a tier-1 fetch under the tiered in-flight flag. Tier 1 is
// cost-free and ungated: pending (and guest) accounts may use it.
func (c *Controller) resolve(ctx context.Context, fetch func(context.Context) (history.Aggregate, error)) (history.Aggregate, error) {
	c.mu.Lock()
	if c.fetching {
		c.mu.Unlock()
		return history.Aggregate{}, ErrBusy
	}
	c.fetching = true
	c.mu.Unlock()

	agg, err := fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetching = false
	if err != nil {
		return history.Aggregate{}, err
	}
	c.agg = &agg
	return agg, nil
}

// RequestTier runs one paid rung of the ladder: entitlement gate, then
// prerequisite check, then dispatch, merge and debit. Tier 1 goes through
// ResolveTime/ResolveSearch instead.
func (c *Controller) RequestTier(ctx context.Context, tier history.Tier) (history.Aggregate, error) {
	c.mu.Lock()
	if c.fetching {
		c.mu.Unlock()
		return history.Aggregate{}, ErrBusy
	}
	if c.agg == nil {
		c.mu.Unlock()
		return history.Aggregate{}, ErrNoQuery
	}
	base := *c.agg
	spec, ok := history.SpecFor(base.Kind, tier)
	if !ok || tier <= history.Tier1 {
		c.mu.Unlock()
		return history.Aggregate{}, ErrNoSuchTier
	}
	if err := c.gateLocked(spec.Cost, tierGateMessages); err != nil {
		c.mu.Unlock()
		return history.Aggregate{}, err
	}
	if !base.Has(spec.Requires) || base.Has(spec.Produces) {
		c.mu.Unlock()
		return history.Aggregate{}, ErrNotReady
	}
	c.fetching = true
	c.mu.Unlock()

	merged, err := c.fetchTier(ctx, base, tier)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetching = false
	if err != nil {
		return history.Aggregate{}, err
	}
	// Re-apply onto the live aggregate: the only state that can have moved
	// while the fetch was out is an image attach, which must be kept.
	merged.ImageData = c.agg.ImageData
	c.agg = &merged
	if spec.Cost > 0 && c.acct.Status() == account.StatusApproved {
		c.acct.UseCredit(spec.Cost)
	}
	return merged, nil
}

func (c *Controller) fetchTier(ctx context.Context, base history.Aggregate, tier history.Tier) (history.Aggregate, error) {
	switch base.Kind {
	case history.KindTime:
		switch tier {
		case history.Tier2:
			report, err := gemini.GetInDepthReport(ctx, c.inv, base.TimeQuery)
			if err != nil {
				return history.Aggregate{}, err
			}
			return base.WithEventInDepth(report)
		case history.Tier3:
			events, err := gemini.GetTimeline(ctx, c.inv, base.TimeQuery)
			if err != nil {
				return history.Aggregate{}, err
			}
			return base.WithTimeline(events)
		}
	case history.KindPerson:
		switch tier {
		case history.Tier2:
			report, err := gemini.GetPersonInDepth(ctx, c.inv, base.Term)
			if err != nil {
				return history.Aggregate{}, err
			}
			return base.WithPersonInDepth(report)
		case history.Tier3:
			links, err := gemini.GetSixDegrees(ctx, c.inv, base.Term)
			if err != nil {
				return history.Aggregate{}, err
			}
			return base.WithSixDegrees(links)
		case history.Tier4:
			tree, err := gemini.GetFamilyTree(ctx, c.inv, base.Term)
			if err != nil {
				return history.Aggregate{}, err
			}
			return base.WithFamilyTree(tree)
		}
	}
	return history.Aggregate{}, ErrNoSuchTier
}

// GenerateImage runs the orthogonal image action. It shares the gating rules
// of paid tiers but its own in-flight flag, so an image may render while no
// tiered fetch is out and vice versa. A repeat simply replaces the image.
func (c *Controller) GenerateImage(ctx context.Context) (history.Aggregate, error) {
	c.mu.Lock()
	if c.imaging {
		c.mu.Unlock()
		return history.Aggregate{}, ErrImageBusy
	}
	if c.agg == nil {
		c.mu.Unlock()
		return history.Aggregate{}, ErrNoQuery
	}
	base := *c.agg
	if err := c.gateLocked(history.ImageSpec.Cost, imageGateMessages); err != nil {
		c.mu.Unlock()
		return history.Aggregate{}, err
	}
	if !base.Has(history.ImageSpec.Requires) {
		c.mu.Unlock()
		return history.Aggregate{}, ErrNotReady
	}
	c.imaging = true
	c.mu.Unlock()

	b64, err := gemini.GenerateImage(ctx, c.inv, base)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.imaging = false
	if err != nil {
		return history.Aggregate{}, err
	}
	merged := c.agg.WithImage(b64)
	c.agg = &merged
	if c.acct.Status() == account.StatusApproved {
		c.acct.UseCredit(history.ImageSpec.Cost)
	}
	return merged, nil
}

// gateMessages carries the per-action wording of the three gate rejections.
type gateMessages struct {
	login        string
	pending      string
	insufficient func(required, available int) string
}

var tierGateMessages = gateMessages{
	login:   "Please log in to unlock this feature.",
	pending: "Your account is pending approval.",
	insufficient: func(required, available int) string {
		return fmt.Sprintf("You need %d credit(s) for this action, but you only have %d. You can add more from the user menu.", required, available)
	},
}

var imageGateMessages = gateMessages{
	login:   "Please log in to generate images.",
	pending: "Your account is pending approval.",
	insufficient: func(required, available int) string {
		return fmt.Sprintf("You need %d credit to generate an image. You have %d.", required, available)
	},
}

// gateLocked applies the entitlement checks for a paid action. Caller holds
// the mutex.
func (c *Controller) gateLocked(cost int, msgs gateMessages) error {
	switch c.acct.Status() {
	case account.StatusGuest:
		return &GateError{Reason: GateLoginRequired, Message: msgs.login}
	case account.StatusPending:
		return &GateError{Reason: GatePendingApproval, Message: msgs.pending}
	}
	if available := c.acct.Credits(); cost > 0 && available < cost {
		return &GateError{
			Reason:    GateInsufficientCredits,
			Message:   msgs.insufficient(cost, available),
			Required:  cost,
			Available: available,
		}
	}
	return nil
}
