package models

import "time"

// Guest represents a tracked invitee or save-the-date contact.
//
// Optional columns are pointers so an absent value stays absent rather
// than becoming an empty string. Attending is tri-state: nil until an
// RSVP has been received, then true or false.
type Guest struct {
	ID                  string
	FirstName           string
	LastName            string
	Email               string
	Phone               *string
	AddressLine1        *string
	AddressLine2        *string
	City                *string
	State               *string
	ZipCode             *string
	Country             *string
	InvitationCode      *string
	InvitationSentAt    *time.Time
	RSVPReceivedAt      *time.Time
	Attending           *bool
	DietaryRestrictions *string
	SpecialRequests     *string
	TableNumber         *int
	Notes               *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Populated by queries that join plus_ones
	PlusOnes []PlusOne
}

// FullName returns the guest's display name
func (g *Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}

// HasResponded reports whether an RSVP has been received
func (g *Guest) HasResponded() bool {
	return g.RSVPReceivedAt != nil
}

// IsAttending reports whether the guest has RSVP'd yes. A guest without
// a recorded RSVP is never attending, whatever the attending column says.
func (g *Guest) IsAttending() bool {
	return g.HasResponded() && g.Attending != nil && *g.Attending
}

// IsInvited reports whether a save-the-date or invitation has gone out
func (g *Guest) IsInvited() bool {
	return g.InvitationSentAt != nil
}

// PlusOne is a companion attached to a guest's RSVP. The set is replaced
// wholesale on every resubmission, never merged.
type PlusOne struct {
	ID                  int64
	GuestID             string
	FirstName           string
	LastName            string
	DietaryRestrictions *string
	IsChild             bool
	Age                 *int
	CreatedAt           time.Time
}

// FullName returns the plus-one's display name
func (p *PlusOne) FullName() string {
	return p.FirstName + " " + p.LastName
}

// SaveTheDateStats summarizes invitation-code coverage and campaign
// progress for the admin back office
type SaveTheDateStats struct {
	TotalGuests int `json:"totalGuests"`
	WithEmail   int `json:"withEmail"`
	WithCode    int `json:"withCode"`
	MissingCode int `json:"missingCode"`
	Invited     int `json:"invited"`
	PendingSend int `json:"pendingSend"`
}

// GuestStats summarizes the guest list for the admin dashboard
type GuestStats struct {
	Total         int `json:"total"`
	Invited       int `json:"invited"`
	RSVPReceived  int `json:"rsvpReceived"`
	Attending     int `json:"attending"`
	NotAttending  int `json:"notAttending"`
	NoResponse    int `json:"noResponse"`
	PlusOnes      int `json:"plusOnes"`
}
