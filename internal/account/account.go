// Package account holds the simulated per-session user account: an approval
// status plus a credit balance. Transitions mirror the tester onboarding flow
// (guest -> pending on login, pending -> approved on admin approval).
package account

import "sync"

// Status is the approval state of an account.
type Status string

const (
	StatusGuest    Status = "guest"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

const (
	// ApprovalGrant is credited once when an admin approves a pending account.
	ApprovalGrant = 1000
	// TopUpAmount is added per refill request on an approved account.
	TopUpAmount = 100
	// placeholderName identifies any logged-in simulated account.
	placeholderName = "Tester_Account"
)

// Account is shared between a session (transitions) and its controller
// (debits), so every method synchronizes on an internal mutex. Callers that
// need a stable view should copy it with Snapshot.
type Account struct {
	mu       sync.Mutex
	status   Status
	username string
	credits  int
}

// New returns a fresh guest account with no identity and no credits.
func New() *Account {
	return &Account{status: StatusGuest}
}

func (a *Account) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

func (a *Account) Username() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.username
}

func (a *Account) Credits() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.credits
}

// Login moves a guest to pending with a placeholder identity and zero
// credits. Logging in from any other state is a no-op.
func (a *Account) Login() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != StatusGuest {
		return
	}
	a.status = StatusPending
	a.username = placeholderName
	a.credits = 0
}

// Logout returns the account to guest from any state, clearing identity and
// credits.
func (a *Account) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = StatusGuest
	a.username = ""
	a.credits = 0
}

// Approve promotes a pending account to approved and grants the fixed
// approval credit amount. No-op for guest or already-approved accounts.
func (a *Account) Approve() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != StatusPending {
		return
	}
	a.status = StatusApproved
	a.credits = ApprovalGrant
}

// UseCredit deducts cost when the balance covers it and reports whether the
// deduction happened. It never drives the balance negative and deliberately
// does not check status; gating happens before any paid action is attempted.
func (a *Account) UseCredit(cost int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if cost < 0 {
		return false
	}
	if a.credits < cost {
		return false
	}
	a.credits -= cost
	return true
}

// AddCredits applies the fixed top-up to an approved account. No-op
// otherwise.
func (a *Account) AddCredits() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != StatusApproved {
		return
	}
	a.credits += TopUpAmount
}

// Snapshot is an immutable copy of the account state for rendering.
type Snapshot struct {
	Status   Status `json:"status"`
	Username string `json:"username,omitempty"`
	Credits  int    `json:"credits"`
}

// Snapshot returns a copy of the current state.
func (a *Account) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Snapshot{Status: a.status, Username: a.username, Credits: a.credits}
}
