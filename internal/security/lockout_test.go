package security

import (
	"testing"
	"time"
)

func newTestTracker(t *testing.T) (*LockoutTracker, *time.Time) {
	t.Helper()
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewLockoutTracker(NewMemoryAttemptStore(), 3, 30*time.Minute)
	tracker.now = func() time.Time { return current }
	return tracker, &current
}

func TestLockoutAfterThreeFailures(t *testing.T) {
	tracker, _ := newTestTracker(t)

	if !tracker.Allow("admin@example.com") {
		t.Fatal("fresh identifier should be allowed")
	}

	if locked := tracker.RecordFailure("admin@example.com"); locked {
		t.Error("first failure should not lock")
	}
	if locked := tracker.RecordFailure("admin@example.com"); locked {
		t.Error("second failure should not lock")
	}
	if locked := tracker.RecordFailure("admin@example.com"); !locked {
		t.Error("third failure should lock")
	}

	// 4th attempt rejected, even before consulting credentials
	if tracker.Allow("admin@example.com") {
		t.Error("locked identifier should be rejected")
	}
}

func TestLockoutNotificationFiresOnce(t *testing.T) {
	tracker, _ := newTestTracker(t)

	tracker.RecordFailure("admin@example.com")
	tracker.RecordFailure("admin@example.com")
	if !tracker.RecordFailure("admin@example.com") {
		t.Fatal("third failure should report a new lockout")
	}
	if tracker.RecordFailure("admin@example.com") {
		t.Error("failures during an active lockout should not report a new lockout")
	}
}

func TestLockoutExpiresLazily(t *testing.T) {
	tracker, current := newTestTracker(t)

	for i := 0; i < 3; i++ {
		tracker.RecordFailure("admin@example.com")
	}
	if tracker.Allow("admin@example.com") {
		t.Fatal("should be locked")
	}

	// Advance past the lockout window
	*current = current.Add(31 * time.Minute)

	if !tracker.Allow("admin@example.com") {
		t.Error("expired lockout should allow attempts again")
	}

	// Expired entry was deleted, so the counter starts fresh
	if locked := tracker.RecordFailure("admin@example.com"); locked {
		t.Error("first failure after expiry should not lock")
	}
}

func TestSuccessClearsCounter(t *testing.T) {
	tracker, _ := newTestTracker(t)

	tracker.RecordFailure("admin@example.com")
	tracker.RecordFailure("admin@example.com")
	tracker.RecordSuccess("admin@example.com")

	// Counter reset: two more failures do not lock
	if locked := tracker.RecordFailure("admin@example.com"); locked {
		t.Error("failure after reset should not lock")
	}
	if locked := tracker.RecordFailure("admin@example.com"); locked {
		t.Error("second failure after reset should not lock")
	}
	if locked := tracker.RecordFailure("admin@example.com"); !locked {
		t.Error("third failure after reset should lock")
	}
}

func TestIdentifiersAreIndependent(t *testing.T) {
	tracker, _ := newTestTracker(t)

	for i := 0; i < 3; i++ {
		tracker.RecordFailure("locked@example.com")
	}

	if tracker.Allow("locked@example.com") {
		t.Error("locked identifier should be rejected")
	}
	if !tracker.Allow("other@example.com") {
		t.Error("unrelated identifier should not be affected")
	}
}

func TestIdentifierNormalization(t *testing.T) {
	tracker, _ := newTestTracker(t)

	tracker.RecordFailure("Admin@Example.com")
	tracker.RecordFailure(" admin@example.com ")
	tracker.RecordFailure("ADMIN@EXAMPLE.COM")

	if tracker.Allow("admin@example.com") {
		t.Error("case and whitespace variants should count against one identifier")
	}
}
