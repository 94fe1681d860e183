package security

import (
	"errors"
	"testing"
	"time"
)

func TestGrantRoundTrip(t *testing.T) {
	issuer := NewGrantIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("guest-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	guestID, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if guestID != "guest-123" {
		t.Errorf("Verify() guestID = %q, want %q", guestID, "guest-123")
	}
}

func TestGrantVerifyFailsClosed(t *testing.T) {
	issuer := NewGrantIssuer("test-secret", time.Hour)
	valid, _ := issuer.Issue("guest-123")

	other := NewGrantIssuer("different-secret", time.Hour)
	forged, _ := other.Issue("guest-123")

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not-a-jwt"},
		{"wrong secret", forged},
		{"truncated token", valid[:len(valid)/2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := issuer.Verify(tt.token); !errors.Is(err, ErrInvalidGrant) {
				t.Errorf("Verify(%q) error = %v, want ErrInvalidGrant", tt.name, err)
			}
		})
	}
}

func TestGrantExpires(t *testing.T) {
	issuer := NewGrantIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue("guest-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidGrant) {
		t.Errorf("expired grant should fail verification, got %v", err)
	}
}

func TestGrantIssueRequiresGuestID(t *testing.T) {
	issuer := NewGrantIssuer("test-secret", time.Hour)
	if _, err := issuer.Issue(""); err == nil {
		t.Error("expected error for empty guest id")
	}
}
