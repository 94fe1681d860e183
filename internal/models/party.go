package models

import "time"

// Wedding party sides
const (
	PartySideBride = "bride"
	PartySideGroom = "groom"
)

// WeddingPartyMember is a descriptive record shown on the public
// wedding-party page and managed through the admin back office.
type WeddingPartyMember struct {
	ID        int64
	Name      string
	Role      string
	Side      string
	Bio       *string
	ImageURL  *string
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}
