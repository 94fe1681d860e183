package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"weddinghub/internal/models"
)

// GuestRSVPStore is the guest persistence the RSVP flow needs
type GuestRSVPStore interface {
	GetByID(id string) (*models.Guest, error)
	GetByInvitationCode(code string) (*models.Guest, error)
	SubmitRSVP(guestID string, attending bool, dietary, specialRequests *string, plusOnes []models.PlusOne) (*models.Guest, error)
}

// EmailLogStore records send attempts
type EmailLogStore interface {
	Create(log *models.EmailLog) error
}

// RSVPSender sends the RSVP confirmation email
type RSVPSender interface {
	SendRSVPConfirmation(ctx context.Context, toEmail, firstName string, attending bool, plusOneCount int) SendResult
}

// RSVPService implements the invitation-code RSVP flow: code lookup,
// submission, and the access check behind gated wedding-detail pages.
type RSVPService struct {
	guests    GuestRSVPStore
	emailLogs EmailLogStore
	sender    RSVPSender
}

// NewRSVPService creates a new RSVP service
func NewRSVPService(guests GuestRSVPStore, emailLogs EmailLogStore, sender RSVPSender) *RSVPService {
	return &RSVPService{guests: guests, emailLogs: emailLogs, sender: sender}
}

// PlusOneInput is a companion submitted with an RSVP
type PlusOneInput struct {
	FirstName           string  `json:"firstName"`
	LastName            string  `json:"lastName"`
	DietaryRestrictions *string `json:"dietaryRestrictions"`
	IsChild             bool    `json:"isChild"`
	Age                 *int    `json:"age"`
}

// RSVPSubmission is a guest's RSVP form
type RSVPSubmission struct {
	Attending           bool           `json:"attending"`
	DietaryRestrictions *string        `json:"dietaryRestrictions"`
	SpecialRequests     *string        `json:"specialRequests"`
	PlusOnes            []PlusOneInput `json:"plusOnes"`
}

// LookupByCode finds the guest holding an invitation code. The code is
// trimmed but otherwise matched exactly.
func (s *RSVPService) LookupByCode(code string) (*models.Guest, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrNotFound
	}

	guest, err := s.guests.GetByInvitationCode(code)
	if err != nil {
		return nil, fmt.Errorf("lookup invitation code: %w", err)
	}
	if guest == nil {
		return nil, ErrNotFound
	}
	return guest, nil
}

// SubmitRSVP applies a submission for the guest holding the code. The
// prior plus-one set is always replaced wholesale; companions missing a
// first or last name are dropped silently. Resubmission is allowed and
// overwrites the previous answer. The updated guest record is returned;
// the confirmation email is best-effort and never fails the submission.
func (s *RSVPService) SubmitRSVP(ctx context.Context, code string, sub RSVPSubmission) (*models.Guest, error) {
	guest, err := s.LookupByCode(code)
	if err != nil {
		return nil, err
	}

	plusOnes := filterPlusOnes(sub.PlusOnes)

	updated, err := s.guests.SubmitRSVP(guest.ID, sub.Attending, sub.DietaryRestrictions, sub.SpecialRequests, plusOnes)
	if err != nil {
		return nil, fmt.Errorf("submit rsvp: %w", err)
	}

	s.sendConfirmation(ctx, updated)

	return updated, nil
}

// CheckAccess decides whether the guest named by a verified grant may see
// gated content. The decision always comes from a fresh read of the guest
// record, so a revoked or flipped RSVP takes effect immediately.
func (s *RSVPService) CheckAccess(guestID string) (*models.Guest, error) {
	guest, err := s.guests.GetByID(guestID)
	if err != nil {
		return nil, fmt.Errorf("check access: %w", err)
	}
	if guest == nil || !guest.IsAttending() {
		return nil, ErrNotAuthorized
	}
	return guest, nil
}

// filterPlusOnes drops entries missing a first or last name and converts
// the rest to model records
func filterPlusOnes(inputs []PlusOneInput) []models.PlusOne {
	var out []models.PlusOne
	for _, in := range inputs {
		first := strings.TrimSpace(in.FirstName)
		last := strings.TrimSpace(in.LastName)
		if first == "" || last == "" {
			continue
		}
		out = append(out, models.PlusOne{
			FirstName:           first,
			LastName:            last,
			DietaryRestrictions: in.DietaryRestrictions,
			IsChild:             in.IsChild,
			Age:                 in.Age,
		})
	}
	return out
}

func (s *RSVPService) sendConfirmation(ctx context.Context, guest *models.Guest) {
	if guest.Email == "" {
		return
	}

	attending := guest.Attending != nil && *guest.Attending
	result := s.sender.SendRSVPConfirmation(ctx, guest.Email, guest.FirstName, attending, len(guest.PlusOnes))

	status := models.EmailStatusSent
	if !result.Success {
		status = models.EmailStatusFailed
		log.Printf("RSVP confirmation email failed: guest=%s, error=%s", guest.ID, result.Error)
	}

	entry := &models.EmailLog{
		GuestID:        &guest.ID,
		EmailType:      models.EmailTypeRSVPConfirmation,
		RecipientEmail: guest.Email,
		Subject:        "RSVP confirmation",
		Status:         status,
	}
	if result.MessageID != "" {
		entry.MessageID = &result.MessageID
	}
	if err := s.emailLogs.Create(entry); err != nil {
		log.Printf("Failed to record email log: %v", err)
	}
}
