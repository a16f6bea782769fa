// Package session keeps the simulated per-user state server-side: each
// session owns one account and one disclosure controller, and fans state
// changes out to watchers. The registry is a bounded LRU so abandoned
// sessions age out instead of accumulating.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"chronolink/internal/account"
	"chronolink/internal/controller"
	"chronolink/internal/gemini"
	"chronolink/internal/history"
)

// Snapshot is the full renderable state of one session.
type Snapshot struct {
	ID       string             `json:"id"`
	Account  account.Snapshot   `json:"account"`
	Result   *history.Aggregate `json:"result"`
	Fetching bool               `json:"isLoading"`
	Imaging  bool               `json:"isGeneratingImage"`
}

// Session binds an account to its controller and notifies watchers after
// every state change.
type Session struct {
	ID string

	acct *account.Account
	ctrl *controller.Controller

	mu       sync.Mutex
	watchers map[chan Snapshot]struct{}
}

func newSession(id string, inv gemini.Invoker) *Session {
	acct := account.New()
	return &Session{
		ID:       id,
		acct:     acct,
		ctrl:     controller.New(acct, inv),
		watchers: make(map[chan Snapshot]struct{}),
	}
}

// Snapshot assembles the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{ID: s.ID, Account: s.acct.Snapshot()}
	if agg, ok := s.ctrl.Aggregate(); ok {
		snap.Result = &agg
	}
	snap.Fetching, snap.Imaging = s.ctrl.Busy()
	return snap
}

// Watch subscribes to state changes. The returned cancel func must be called
// when the watcher goes away.
func (s *Session) Watch() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)
	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()
	cancel := func() {
		s.mu.Lock()
		if _, ok := s.watchers[ch]; ok {
			delete(s.watchers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// notify pushes a snapshot to every watcher without blocking; a watcher that
// cannot keep up drops intermediate snapshots.
func (s *Session) notify() {
	snap := s.Snapshot()
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.watchers {
		select {
		case ch <- snap:
		default:
		}
	}
}

// Login moves the account guest -> pending.
func (s *Session) Login() Snapshot {
	s.acct.Login()
	s.notify()
	return s.Snapshot()
}

// Logout returns the account to guest. The aggregate is kept; only
// entitlement changes.
func (s *Session) Logout() Snapshot {
	s.acct.Logout()
	s.notify()
	return s.Snapshot()
}

// Approve promotes a pending account and grants the approval credits.
func (s *Session) Approve() Snapshot {
	s.acct.Approve()
	s.notify()
	return s.Snapshot()
}

// AddCredits applies the fixed top-up for approved accounts.
func (s *Session) AddCredits() Snapshot {
	s.acct.AddCredits()
	s.notify()
	return s.Snapshot()
}

// ResolveTime runs the free tier-1 time resolution.
func (s *Session) ResolveTime(ctx context.Context, q history.TimeQuery) (history.Aggregate, error) {
	agg, err := s.ctrl.ResolveTime(ctx, q)
	if err == nil {
		s.notify()
	}
	return agg, err
}

// ResolveSearch classifies and runs the free tier-1 search resolution.
func (s *Session) ResolveSearch(ctx context.Context, term string) (history.Aggregate, error) {
	agg, err := s.ctrl.ResolveSearch(ctx, term)
	if err == nil {
		s.notify()
	}
	return agg, err
}

// RequestTier runs one paid rung of the ladder.
func (s *Session) RequestTier(ctx context.Context, tier history.Tier) (history.Aggregate, error) {
	agg, err := s.ctrl.RequestTier(ctx, tier)
	if err == nil {
		s.notify()
	}
	return agg, err
}

// GenerateImage runs the orthogonal image action.
func (s *Session) GenerateImage(ctx context.Context) (history.Aggregate, error) {
	agg, err := s.ctrl.GenerateImage(ctx)
	if err == nil {
		s.notify()
	}
	return agg, err
}

// Registry is the bounded in-memory session store.
type Registry struct {
	cache *lru.Cache[string, *Session]
	inv   gemini.Invoker
	log   zerolog.Logger
}

// NewRegistry builds a registry capped at capacity live sessions.
func NewRegistry(capacity int, inv gemini.Invoker, log zerolog.Logger) (*Registry, error) {
	cache, err := lru.NewWithEvict[string, *Session](capacity, func(id string, _ *Session) {
		log.Debug().Str("session", id).Msg("session evicted")
	})
	if err != nil {
		return nil, err
	}
	return &Registry{cache: cache, inv: inv, log: log}, nil
}

// Create registers a fresh guest session and returns it.
func (r *Registry) Create() *Session {
	s := newSession(uuid.NewString(), r.inv)
	r.cache.Add(s.ID, s)
	r.log.Info().Str("session", s.ID).Msg("session created")
	return s
}

// Get looks a session up, refreshing its recency.
func (r *Registry) Get(id string) (*Session, bool) {
	return r.cache.Get(id)
}

// Len reports the number of live sessions.
func (r *Registry) Len() int { return r.cache.Len() }
