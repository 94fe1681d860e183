package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"weddinghub/internal/models"
	"weddinghub/internal/security"
)

type fakeUserStore struct {
	users    map[string]*models.User
	sessions map[string]*models.Session
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{
		users:    make(map[string]*models.User),
		sessions: make(map[string]*models.Session),
	}
	for _, u := range users {
		s.users[u.Email] = u
	}
	return s
}

func (s *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	return s.users[email], nil
}

func (s *fakeUserStore) GetByID(id int64) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) CreateSession(sess *models.Session) error {
	s.sessions[sess.ID] = sess
	return nil
}

func (s *fakeUserStore) GetSession(id string) (*models.Session, error) {
	return s.sessions[id], nil
}

func (s *fakeUserStore) DeleteSession(id string) error {
	delete(s.sessions, id)
	return nil
}

type fakeAlertSender struct {
	alerts []string // locked identifiers
}

func (s *fakeAlertSender) SendSecurityAlert(ctx context.Context, toEmail, lockedIdentifier, clientIP string) SendResult {
	s.alerts = append(s.alerts, lockedIdentifier)
	return SendResult{Success: true, MessageID: "alert-1"}
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeAlertSender, *fakeUserStore) {
	t.Helper()

	hash, err := security.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	users := newFakeUserStore(&models.User{
		ID: 1, Email: "admin@example.com", PasswordHash: hash, Name: "Admin", IsAdmin: true,
	})
	alerts := &fakeAlertSender{}
	lockout := security.NewLockoutTracker(security.NewMemoryAttemptStore(), 3, 30*time.Minute)

	svc := NewAuthService(users, &fakeEmailLogStore{}, lockout, alerts, "ops@example.com", time.Hour)
	return svc, alerts, users
}

func TestLoginSuccess(t *testing.T) {
	svc, _, store := newTestAuthService(t)

	user, session, err := svc.Login(context.Background(), "  Admin@Example.COM ", "correct-horse", "1.2.3.4")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != 1 {
		t.Errorf("user ID = %d, want 1", user.ID)
	}
	if session == nil || store.sessions[session.ID] == nil {
		t.Fatal("session should be persisted")
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Error("session should expire in the future")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, _, err := svc.Login(context.Background(), "admin@example.com", "wrong", "1.2.3.4")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownUserSameError(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	// An unknown email gets the same error as a wrong password
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever", "1.2.3.4")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginLockoutAfterThreeFailures(t *testing.T) {
	svc, alerts, _ := newTestAuthService(t)

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Login(context.Background(), "admin@example.com", "wrong", "1.2.3.4"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d error = %v, want ErrInvalidCredentials", i+1, err)
		}
	}

	// Locked now, even with the right password
	_, _, err := svc.Login(context.Background(), "admin@example.com", "correct-horse", "1.2.3.4")
	if !errors.Is(err, ErrLockedOut) {
		t.Fatalf("Login after lockout error = %v, want ErrLockedOut", err)
	}

	if len(alerts.alerts) != 1 {
		t.Fatalf("expected exactly 1 security alert, got %d", len(alerts.alerts))
	}
	if alerts.alerts[0] != "admin@example.com" {
		t.Errorf("alert identifier = %s, want admin@example.com", alerts.alerts[0])
	}
}

func TestLoginNoAlertWhenOperatorIsLocked(t *testing.T) {
	hash, err := security.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	users := newFakeUserStore(&models.User{
		ID: 1, Email: "ops@example.com", PasswordHash: hash, IsAdmin: true,
	})
	alerts := &fakeAlertSender{}
	lockout := security.NewLockoutTracker(security.NewMemoryAttemptStore(), 3, 30*time.Minute)
	svc := NewAuthService(users, &fakeEmailLogStore{}, lockout, alerts, "ops@example.com", time.Hour)

	// Lock out the operator's own address
	for i := 0; i < 3; i++ {
		svc.Login(context.Background(), "ops@example.com", "wrong", "1.2.3.4")
	}

	if len(alerts.alerts) != 0 {
		t.Errorf("no alert should be sent when the locked identifier is the operator, got %d", len(alerts.alerts))
	}
}

func TestLoginSuccessClearsFailureCount(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	// Two failures, then a success
	svc.Login(context.Background(), "admin@example.com", "wrong", "1.2.3.4")
	svc.Login(context.Background(), "admin@example.com", "wrong", "1.2.3.4")
	if _, _, err := svc.Login(context.Background(), "admin@example.com", "correct-horse", "1.2.3.4"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// Counter reset: two more failures do not lock
	svc.Login(context.Background(), "admin@example.com", "wrong", "1.2.3.4")
	svc.Login(context.Background(), "admin@example.com", "wrong", "1.2.3.4")
	if _, _, err := svc.Login(context.Background(), "admin@example.com", "correct-horse", "1.2.3.4"); err != nil {
		t.Fatalf("Login after reset failed: %v", err)
	}
}

func TestValidateSession(t *testing.T) {
	svc, _, store := newTestAuthService(t)

	_, session, err := svc.Login(context.Background(), "admin@example.com", "correct-horse", "1.2.3.4")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	user, err := svc.ValidateSession(session.ID)
	if err != nil {
		t.Fatalf("ValidateSession failed: %v", err)
	}
	if user.Email != "admin@example.com" {
		t.Errorf("session user = %s, want admin@example.com", user.Email)
	}

	if _, err := svc.ValidateSession("missing"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("unknown session error = %v, want ErrNotAuthorized", err)
	}

	// Expired sessions are rejected and cleaned up
	store.sessions[session.ID].ExpiresAt = time.Now().Add(-time.Minute)
	if _, err := svc.ValidateSession(session.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("expired session error = %v, want ErrNotAuthorized", err)
	}
	if store.sessions[session.ID] != nil {
		t.Error("expired session should be deleted on validation")
	}
}
