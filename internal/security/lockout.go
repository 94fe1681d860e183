package security

import (
	"strings"
	"sync"
	"time"
)

// Default lockout policy for the admin login
const (
	DefaultMaxLoginAttempts = 3
	DefaultLockoutDuration  = 30 * time.Minute
)

// Attempt tracks failed logins for one identifier
type Attempt struct {
	Count       int
	LastAttempt time.Time
	LockedUntil time.Time
}

// Locked reports whether the entry is in an active lockout at time now
func (a Attempt) Locked(now time.Time) bool {
	return !a.LockedUntil.IsZero() && now.Before(a.LockedUntil)
}

// AttemptStore holds login attempt state per identifier. The in-memory
// implementation below suits a single instance; a shared store can be
// swapped in behind this interface for multi-instance deployments.
type AttemptStore interface {
	Get(identifier string) (Attempt, bool)
	Put(identifier string, a Attempt)
	Delete(identifier string)
}

// MemoryAttemptStore is a mutex-guarded in-memory AttemptStore.
// Entries are removed on successful login or lockout expiry only, which
// is acceptable at guest-list scale.
type MemoryAttemptStore struct {
	mu      sync.Mutex
	entries map[string]Attempt
}

// NewMemoryAttemptStore creates an empty in-memory store
func NewMemoryAttemptStore() *MemoryAttemptStore {
	return &MemoryAttemptStore{entries: make(map[string]Attempt)}
}

func (s *MemoryAttemptStore) Get(identifier string) (Attempt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.entries[identifier]
	return a, ok
}

func (s *MemoryAttemptStore) Put(identifier string, a Attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[identifier] = a
}

func (s *MemoryAttemptStore) Delete(identifier string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, identifier)
}

// LockoutTracker enforces a temporary lockout after repeated failed
// login attempts for the same identifier.
type LockoutTracker struct {
	store       AttemptStore
	maxAttempts int
	duration    time.Duration

	// read-modify-write guard so concurrent failures are not undercounted
	mu sync.Mutex

	now func() time.Time
}

// NewLockoutTracker creates a tracker over the given store
func NewLockoutTracker(store AttemptStore, maxAttempts int, duration time.Duration) *LockoutTracker {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxLoginAttempts
	}
	if duration <= 0 {
		duration = DefaultLockoutDuration
	}
	return &LockoutTracker{
		store:       store,
		maxAttempts: maxAttempts,
		duration:    duration,
		now:         time.Now,
	}
}

func normalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// Allow reports whether a login attempt for the identifier may proceed.
// An expired lockout entry is deleted lazily here.
func (t *LockoutTracker) Allow(identifier string) bool {
	identifier = normalizeIdentifier(identifier)

	t.mu.Lock()
	defer t.mu.Unlock()

	a, ok := t.store.Get(identifier)
	if !ok {
		return true
	}

	now := t.now()
	if !a.LockedUntil.IsZero() {
		if now.After(a.LockedUntil) {
			t.store.Delete(identifier)
			return true
		}
		return false
	}

	return true
}

// RecordFailure registers a failed attempt. It returns true when this
// failure reached the threshold and started a new lockout, so the caller
// can fire the security notification exactly once.
func (t *LockoutTracker) RecordFailure(identifier string) bool {
	identifier = normalizeIdentifier(identifier)

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()

	a, _ := t.store.Get(identifier)
	if a.Locked(now) {
		// Already locked; nothing new to report
		a.LastAttempt = now
		t.store.Put(identifier, a)
		return false
	}

	a.Count++
	a.LastAttempt = now

	locked := false
	if a.Count >= t.maxAttempts {
		a.LockedUntil = now.Add(t.duration)
		locked = true
	}

	t.store.Put(identifier, a)
	return locked
}

// RecordSuccess clears the counter for an identifier after a successful login
func (t *LockoutTracker) RecordSuccess(identifier string) {
	identifier = normalizeIdentifier(identifier)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.store.Delete(identifier)
}
