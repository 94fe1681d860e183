package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"weddinghub/internal/models"
)

// codeAttempts bounds the retry loop when generated codes collide
const codeAttempts = 10

// GuestCodeStore is the guest persistence the invitation flow needs
type GuestCodeStore interface {
	ListMissingCode() ([]models.Guest, error)
	ListNeedingInvitation() ([]models.Guest, error)
	CodeExists(code string) (bool, error)
	SetInvitationCode(guestID, code string) error
	MarkInvited(guestID string, at time.Time) error
}

// SaveTheDateSender sends the save-the-date announcement
type SaveTheDateSender interface {
	SendSaveTheDate(ctx context.Context, toEmail, firstName, invitationCode string) SendResult
}

// InviteService generates invitation codes and runs the save-the-date
// email campaign.
type InviteService struct {
	guests    GuestCodeStore
	emailLogs EmailLogStore
	sender    SaveTheDateSender
	year      string

	// injectable for deterministic tests
	randSuffix func() string
}

// NewInviteService creates a new invitation service. weddingYear is the
// four-digit year that appears in every code.
func NewInviteService(guests GuestCodeStore, emailLogs EmailLogStore, sender SaveTheDateSender, weddingYear string) *InviteService {
	return &InviteService{
		guests:    guests,
		emailLogs: emailLogs,
		sender:    sender,
		year:      weddingYear,
		randSuffix: func() string {
			return fmt.Sprintf("%02d", rand.Intn(100))
		},
	}
}

// AssignCode generates and stores a unique invitation code for a guest.
// Codes are the guest's initials, the wedding year, a dash, and two
// random digits, e.g. JM2026-41. After repeated collisions the guest is
// skipped with ErrConflict rather than blocking the batch.
func (s *InviteService) AssignCode(guest *models.Guest) (string, error) {
	initials := initialsOf(guest)
	if initials == "" {
		return "", fmt.Errorf("%w: guest %s has no usable name", ErrMalformedInput, guest.ID)
	}

	for i := 0; i < codeAttempts; i++ {
		code := initials + s.year + "-" + s.randSuffix()

		exists, err := s.guests.CodeExists(code)
		if err != nil {
			return "", fmt.Errorf("check code: %w", err)
		}
		if exists {
			continue
		}

		if err := s.guests.SetInvitationCode(guest.ID, code); err != nil {
			return "", fmt.Errorf("store code: %w", err)
		}
		return code, nil
	}

	return "", fmt.Errorf("%w: could not generate unique code for guest %s", ErrConflict, guest.ID)
}

// AssignMissingCodes gives a code to every guest that has an email but no
// code yet. Guests whose code cannot be generated are skipped and logged;
// the count of successful assignments is returned.
func (s *InviteService) AssignMissingCodes() (int, error) {
	guests, err := s.guests.ListMissingCode()
	if err != nil {
		return 0, fmt.Errorf("list guests missing code: %w", err)
	}

	assigned := 0
	for i := range guests {
		if _, err := s.AssignCode(&guests[i]); err != nil {
			log.Printf("Skipping code assignment for guest %s: %v", guests[i].ID, err)
			continue
		}
		assigned++
	}
	return assigned, nil
}

// CampaignReport summarizes a save-the-date send run
type CampaignReport struct {
	Attempted int `json:"attempted"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
}

// SendSaveTheDates emails every guest that has a code and email but no
// invitation yet. Each guest is marked invited once their send has been
// attempted, whatever the outcome, so a flaky address cannot keep a
// guest in the campaign forever. Every attempt lands in the email log.
func (s *InviteService) SendSaveTheDates(ctx context.Context) (*CampaignReport, error) {
	guests, err := s.guests.ListNeedingInvitation()
	if err != nil {
		return nil, fmt.Errorf("list guests needing invitation: %w", err)
	}

	report := &CampaignReport{}
	for i := range guests {
		g := &guests[i]
		report.Attempted++

		result := s.sender.SendSaveTheDate(ctx, g.Email, g.FirstName, *g.InvitationCode)

		status := models.EmailStatusSent
		if result.Success {
			report.Sent++
		} else {
			report.Failed++
			status = models.EmailStatusFailed
			log.Printf("Save-the-date send failed: guest=%s, error=%s", g.ID, result.Error)
		}

		entry := &models.EmailLog{
			GuestID:        &g.ID,
			EmailType:      models.EmailTypeSaveTheDate,
			RecipientEmail: g.Email,
			Subject:        "Save the Date",
			Status:         status,
		}
		if result.MessageID != "" {
			entry.MessageID = &result.MessageID
		}
		if err := s.emailLogs.Create(entry); err != nil {
			log.Printf("Failed to record email log: %v", err)
		}

		if err := s.guests.MarkInvited(g.ID, time.Now()); err != nil {
			log.Printf("Failed to mark guest %s invited: %v", g.ID, err)
		}
	}

	return report, nil
}

// initialsOf returns the upper-cased first letters of the guest's names
func initialsOf(g *models.Guest) string {
	first := []rune(strings.TrimSpace(g.FirstName))
	last := []rune(strings.TrimSpace(g.LastName))
	if len(first) == 0 || len(last) == 0 {
		return ""
	}
	return strings.ToUpper(string(first[0]) + string(last[0]))
}
