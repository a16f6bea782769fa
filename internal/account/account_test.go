package account

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle(t *testing.T) {
	a := New()
	assert.Equal(t, StatusGuest, a.Status())
	assert.Equal(t, 0, a.Credits())

	a.Login()
	assert.Equal(t, StatusPending, a.Status())
	assert.Equal(t, "Tester_Account", a.Username())
	assert.Equal(t, 0, a.Credits())

	a.Approve()
	assert.Equal(t, StatusApproved, a.Status())
	assert.Equal(t, ApprovalGrant, a.Credits())

	a.Logout()
	assert.Equal(t, StatusGuest, a.Status())
	assert.Empty(t, a.Username())
	assert.Equal(t, 0, a.Credits())
}

func TestApproveOnlyFromPending(t *testing.T) {
	a := New()
	a.Approve()
	assert.Equal(t, StatusGuest, a.Status(), "guest cannot be approved directly")
	assert.Equal(t, 0, a.Credits())

	a.Login()
	a.Approve()
	a.Approve()
	assert.Equal(t, ApprovalGrant, a.Credits(), "second approval must not re-grant")
}

func TestLoginIdempotentOncePending(t *testing.T) {
	a := New()
	a.Login()
	a.Approve()
	a.Login()
	assert.Equal(t, StatusApproved, a.Status())
	assert.Equal(t, ApprovalGrant, a.Credits())
}

func TestUseCredit(t *testing.T) {
	a := New()
	a.Login()
	a.Approve()

	require.True(t, a.UseCredit(2))
	assert.Equal(t, ApprovalGrant-2, a.Credits())

	require.True(t, a.UseCredit(0), "zero-cost deduction always succeeds")
	assert.Equal(t, ApprovalGrant-2, a.Credits())

	assert.False(t, a.UseCredit(-1), "negative cost is rejected")
	assert.Equal(t, ApprovalGrant-2, a.Credits())
}

func TestUseCreditInsufficient(t *testing.T) {
	a := New()
	a.Login()
	a.Approve()
	for a.Credits() > 0 {
		require.True(t, a.UseCredit(1))
	}
	assert.Equal(t, 0, a.Credits())
	assert.False(t, a.UseCredit(1))
	assert.Equal(t, 0, a.Credits(), "failed deduction leaves balance unchanged")
}

func TestCreditsNeverNegative(t *testing.T) {
	a := New()
	a.Login()
	a.Approve()

	ops := []func(){
		func() { a.UseCredit(700) },
		func() { a.UseCredit(700) },
		func() { a.AddCredits() },
		func() { a.UseCredit(700) },
		func() { a.UseCredit(1) },
		func() { a.AddCredits() },
	}
	for _, op := range ops {
		op()
		assert.GreaterOrEqual(t, a.Credits(), 0)
	}
}

func TestAddCreditsRequiresApproval(t *testing.T) {
	a := New()
	a.AddCredits()
	assert.Equal(t, 0, a.Credits())

	a.Login()
	a.AddCredits()
	assert.Equal(t, 0, a.Credits(), "pending accounts cannot top up")

	a.Approve()
	a.AddCredits()
	assert.Equal(t, ApprovalGrant+TopUpAmount, a.Credits())
}

func TestConcurrentTopUpsAndDebits(t *testing.T) {
	a := New()
	a.Login()
	a.Approve()

	const workers = 8
	const rounds = 50
	var spent int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				a.AddCredits()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				if a.UseCredit(3) {
					atomic.AddInt64(&spent, 3)
				}
			}
		}()
	}
	wg.Wait()

	want := ApprovalGrant + workers*rounds*TopUpAmount - int(spent)
	assert.Equal(t, want, a.Credits(), "every top-up and successful debit accounted for")
	assert.GreaterOrEqual(t, a.Credits(), 0)
}

func TestSnapshot(t *testing.T) {
	a := New()
	a.Login()
	s := a.Snapshot()
	a.Logout()
	assert.Equal(t, StatusPending, s.Status, "snapshot is detached from later mutation")
	assert.Equal(t, "Tester_Account", s.Username)
}
