package security

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GrantCookieName is the cookie carrying the RSVP access grant
const GrantCookieName = "rsvp_session"

// DefaultGrantTTL matches the 30-day cookie the RSVP flow issues
const DefaultGrantTTL = 30 * 24 * time.Hour

var ErrInvalidGrant = errors.New("invalid access grant")

type grantClaims struct {
	GuestID string `json:"guestId"`
	jwt.RegisteredClaims
}

// GrantIssuer signs and verifies RSVP access grants. A grant only names
// a guest; whether that guest may see gated content is decided against
// the current guest record on every check, never from the token.
type GrantIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewGrantIssuer creates an issuer with the given HMAC secret. An empty
// secret gets a random one, which invalidates grants across restarts.
func NewGrantIssuer(secret string, ttl time.Duration) *GrantIssuer {
	if ttl == 0 {
		ttl = DefaultGrantTTL
	}
	if secret == "" {
		buf := make([]byte, 32)
		_, _ = rand.Read(buf)
		secret = hex.EncodeToString(buf)
	}
	return &GrantIssuer{secret: []byte(secret), ttl: ttl}
}

// TTL returns the grant lifetime
func (g *GrantIssuer) TTL() time.Duration {
	return g.ttl
}

// Issue creates a signed grant token for a guest
func (g *GrantIssuer) Issue(guestID string) (string, error) {
	if guestID == "" {
		return "", fmt.Errorf("issue grant: empty guest id")
	}

	now := time.Now()
	claims := grantClaims{
		GuestID: guestID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign grant: %w", err)
	}
	return signed, nil
}

// Verify parses a grant token and returns the guest ID it names.
// Any parse, signature, or expiry problem fails closed with ErrInvalidGrant.
func (g *GrantIssuer) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidGrant
	}

	claims := &grantClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid || claims.GuestID == "" {
		return "", ErrInvalidGrant
	}

	return claims.GuestID, nil
}
