package service

import (
	"context"
	"log"
	"strings"
	"time"

	"weddinghub/internal/models"
	"weddinghub/internal/security"
)

// UserStore is the user and session persistence the auth flow needs
type UserStore interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id int64) (*models.User, error)
	CreateSession(s *models.Session) error
	GetSession(id string) (*models.Session, error)
	DeleteSession(id string) error
}

// AlertSender notifies the operator about lockouts
type AlertSender interface {
	SendSecurityAlert(ctx context.Context, toEmail, lockedIdentifier, clientIP string) SendResult
}

// AuthService handles admin login with a temporary lockout after
// repeated failures.
type AuthService struct {
	users           UserStore
	emailLogs       EmailLogStore
	lockout         *security.LockoutTracker
	alerts          AlertSender
	alertEmail      string
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, emailLogs EmailLogStore, lockout *security.LockoutTracker, alerts AlertSender, alertEmail string, sessionDuration time.Duration) *AuthService {
	if sessionDuration <= 0 {
		sessionDuration = 24 * time.Hour
	}
	return &AuthService{
		users:           users,
		emailLogs:       emailLogs,
		lockout:         lockout,
		alerts:          alerts,
		alertEmail:      alertEmail,
		sessionDuration: sessionDuration,
	}
}

// Login authenticates an admin. The lockout check runs before any
// credential work, so a locked identifier learns nothing about whether
// the account exists. Failed attempts count against the submitted email
// whether or not it belongs to a real user.
func (s *AuthService) Login(ctx context.Context, email, password, clientIP string) (*models.User, *models.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, nil, ErrInvalidCredentials
	}

	if !s.lockout.Allow(email) {
		return nil, nil, ErrLockedOut
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, nil, err
	}

	if user == nil || !security.CheckPassword(password, user.PasswordHash) {
		s.handleFailure(ctx, email, clientIP)
		return nil, nil, ErrInvalidCredentials
	}

	s.lockout.RecordSuccess(email)

	session := &models.Session{
		ID:        security.GenerateSessionID(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.sessionDuration),
	}
	if err := s.users.CreateSession(session); err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// ValidateSession resolves a session cookie to its user, or
// ErrNotAuthorized for a missing or expired session
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, ErrNotAuthorized
	}

	session, err := s.users.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotAuthorized
	}
	if session.IsExpired() {
		_ = s.users.DeleteSession(sessionID)
		return nil, ErrNotAuthorized
	}

	user, err := s.users.GetByID(session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotAuthorized
	}
	return user, nil
}

// Logout removes a session
func (s *AuthService) Logout(sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.users.DeleteSession(sessionID)
}

// handleFailure counts the failed attempt and, when this failure started
// a lockout, notifies the operator. No alert goes out when the locked
// identifier is the operator's own address: mailing the address under
// attack would tip off the attacker and nothing else.
func (s *AuthService) handleFailure(ctx context.Context, email, clientIP string) {
	newlyLocked := s.lockout.RecordFailure(email)
	if !newlyLocked {
		return
	}

	log.Printf("Login lockout started: identifier=%s, ip=%s", email, clientIP)

	if s.alertEmail == "" || strings.EqualFold(email, s.alertEmail) {
		return
	}

	result := s.alerts.SendSecurityAlert(ctx, s.alertEmail, email, clientIP)

	status := models.EmailStatusSent
	if !result.Success {
		status = models.EmailStatusFailed
		log.Printf("Security alert email failed: %s", result.Error)
	}

	entry := &models.EmailLog{
		EmailType:      models.EmailTypeSecurityAlert,
		RecipientEmail: s.alertEmail,
		Subject:        "Security alert",
		Status:         status,
	}
	if result.MessageID != "" {
		entry.MessageID = &result.MessageID
	}
	if err := s.emailLogs.Create(entry); err != nil {
		log.Printf("Failed to record email log: %v", err)
	}
}
