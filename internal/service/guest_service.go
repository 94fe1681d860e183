package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"weddinghub/internal/models"
	"weddinghub/internal/validation"
)

// GuestStore is the guest persistence the admin and save-the-date flows need
type GuestStore interface {
	Create(g *models.Guest) error
	GetByID(id string) (*models.Guest, error)
	GetByEmail(email string) (*models.Guest, error)
	ListAll() ([]models.Guest, error)
	Update(g *models.Guest) error
	UpdateContact(g *models.Guest) error
	Delete(id string) error
	EmailTakenByOther(email, excludeID string) (bool, error)
	Stats() (*models.GuestStats, error)
}

// ConfirmationSender sends the save-the-date signup confirmation
type ConfirmationSender interface {
	SendSaveTheDateConfirmation(ctx context.Context, toEmail, firstName string) SendResult
}

// GuestService covers guest management: the public save-the-date signup
// and the admin back office CRUD.
type GuestService struct {
	guests    GuestStore
	emailLogs EmailLogStore
	sender    ConfirmationSender
}

// NewGuestService creates a new guest service
func NewGuestService(guests GuestStore, emailLogs EmailLogStore, sender ConfirmationSender) *GuestService {
	return &GuestService{guests: guests, emailLogs: emailLogs, sender: sender}
}

// SaveTheDateSignup is the public signup form
type SaveTheDateSignup struct {
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	AddressLine1        string `json:"addressLine1"`
	City                string `json:"city"`
	State               string `json:"state"`
	ZipCode             string `json:"zipCode"`
	DietaryRestrictions string `json:"dietaryRestrictions"`
}

// SubmitSaveTheDate validates a signup and upserts the guest: a new
// email creates a record, a known one refreshes its contact details
// without touching any RSVP data. A confirmation email goes out either
// way, best-effort.
func (s *GuestService) SubmitSaveTheDate(ctx context.Context, signup SaveTheDateSignup) (*models.Guest, error) {
	if err := validateSignup(&signup); err != nil {
		return nil, err
	}

	existing, err := s.guests.GetByEmail(signup.Email)
	if err != nil {
		return nil, fmt.Errorf("look up signup email: %w", err)
	}

	var guest *models.Guest
	if existing != nil {
		existing.FirstName = signup.FirstName
		existing.LastName = signup.LastName
		existing.Phone = optional(signup.Phone)
		existing.AddressLine1 = optional(signup.AddressLine1)
		existing.City = optional(signup.City)
		existing.State = optional(signup.State)
		existing.ZipCode = optional(signup.ZipCode)
		existing.DietaryRestrictions = optional(signup.DietaryRestrictions)
		if err := s.guests.UpdateContact(existing); err != nil {
			return nil, fmt.Errorf("update signup contact: %w", err)
		}
		guest = existing
	} else {
		guest = &models.Guest{
			FirstName:           signup.FirstName,
			LastName:            signup.LastName,
			Email:               signup.Email,
			Phone:               optional(signup.Phone),
			AddressLine1:        optional(signup.AddressLine1),
			City:                optional(signup.City),
			State:               optional(signup.State),
			ZipCode:             optional(signup.ZipCode),
			DietaryRestrictions: optional(signup.DietaryRestrictions),
		}
		if err := s.guests.Create(guest); err != nil {
			return nil, fmt.Errorf("create signup guest: %w", err)
		}
	}

	s.sendSignupConfirmation(ctx, guest)

	return guest, nil
}

// GuestInput is an admin create or update form
type GuestInput struct {
	FirstName           string  `json:"firstName"`
	LastName            string  `json:"lastName"`
	Email               string  `json:"email"`
	Phone               *string `json:"phone"`
	AddressLine1        *string `json:"addressLine1"`
	AddressLine2        *string `json:"addressLine2"`
	City                *string `json:"city"`
	State               *string `json:"state"`
	ZipCode             *string `json:"zipCode"`
	Country             *string `json:"country"`
	TableNumber         *int    `json:"tableNumber"`
	DietaryRestrictions *string `json:"dietaryRestrictions"`
	SpecialRequests     *string `json:"specialRequests"`
	Notes               *string `json:"notes"`
	Attending           *bool   `json:"attending"`
}

// CreateGuest adds a guest from the admin back office
func (s *GuestService) CreateGuest(input GuestInput) (*models.Guest, error) {
	if err := validateGuestInput(&input); err != nil {
		return nil, err
	}

	existing, err := s.guests.GetByEmail(input.Email)
	if err != nil {
		return nil, fmt.Errorf("check guest email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: a guest with that email already exists", ErrConflict)
	}

	guest := &models.Guest{
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		Email:               input.Email,
		Phone:               input.Phone,
		AddressLine1:        input.AddressLine1,
		AddressLine2:        input.AddressLine2,
		City:                input.City,
		State:               input.State,
		ZipCode:             input.ZipCode,
		Country:             input.Country,
		DietaryRestrictions: input.DietaryRestrictions,
		Notes:               input.Notes,
	}
	if err := s.guests.Create(guest); err != nil {
		return nil, fmt.Errorf("create guest: %w", err)
	}
	return guest, nil
}

// GetGuest retrieves a guest with plus-ones
func (s *GuestService) GetGuest(id string) (*models.Guest, error) {
	guest, err := s.guests.GetByID(id)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, ErrNotFound
	}
	return guest, nil
}

// ListGuests returns the full guest list with plus-ones
func (s *GuestService) ListGuests() ([]models.Guest, error) {
	return s.guests.ListAll()
}

// UpdateGuest applies an admin edit
func (s *GuestService) UpdateGuest(id string, input GuestInput) (*models.Guest, error) {
	if err := validateGuestInput(&input); err != nil {
		return nil, err
	}

	guest, err := s.guests.GetByID(id)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, ErrNotFound
	}

	taken, err := s.guests.EmailTakenByOther(input.Email, id)
	if err != nil {
		return nil, fmt.Errorf("check guest email: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: another guest already uses that email", ErrConflict)
	}

	guest.FirstName = input.FirstName
	guest.LastName = input.LastName
	guest.Email = input.Email
	guest.Phone = input.Phone
	guest.AddressLine1 = input.AddressLine1
	guest.AddressLine2 = input.AddressLine2
	guest.City = input.City
	guest.State = input.State
	guest.ZipCode = input.ZipCode
	guest.Country = input.Country
	guest.TableNumber = input.TableNumber
	guest.DietaryRestrictions = input.DietaryRestrictions
	guest.SpecialRequests = input.SpecialRequests
	guest.Notes = input.Notes
	guest.Attending = input.Attending

	if err := s.guests.Update(guest); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update guest: %w", err)
	}
	return guest, nil
}

// DeleteGuest removes a guest and their plus-ones
func (s *GuestService) DeleteGuest(id string) error {
	if err := s.guests.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete guest: %w", err)
	}
	return nil
}

// Stats returns guest-list counters
func (s *GuestService) Stats() (*models.GuestStats, error) {
	return s.guests.Stats()
}

func validateSignup(signup *SaveTheDateSignup) error {
	signup.FirstName = strings.TrimSpace(signup.FirstName)
	signup.LastName = strings.TrimSpace(signup.LastName)
	signup.Email = strings.TrimSpace(signup.Email)
	signup.Phone = strings.TrimSpace(signup.Phone)
	signup.ZipCode = strings.TrimSpace(signup.ZipCode)

	if err := validation.ValidateName("firstName", signup.FirstName); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedInput, err)
	}
	if err := validation.ValidateName("lastName", signup.LastName); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedInput, err)
	}
	if err := validation.ValidateEmail(signup.Email); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedInput, err)
	}
	if err := validation.ValidatePhone(signup.Phone); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedInput, err)
	}
	if err := validation.ValidateZip(signup.ZipCode); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedInput, err)
	}

	if signup.Phone != "" {
		signup.Phone = validation.NormalizePhone(signup.Phone)
	}
	return nil
}

func validateGuestInput(input *GuestInput) error {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)

	if err := validation.ValidateName("firstName", input.FirstName); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedInput, err)
	}
	if err := validation.ValidateName("lastName", input.LastName); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedInput, err)
	}
	if err := validation.ValidateEmail(input.Email); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedInput, err)
	}
	if input.Phone != nil {
		if err := validation.ValidatePhone(*input.Phone); err != nil {
			return fmt.Errorf("%w: %s", ErrMalformedInput, err)
		}
		if *input.Phone != "" {
			normalized := validation.NormalizePhone(*input.Phone)
			input.Phone = &normalized
		} else {
			input.Phone = nil
		}
	}
	return nil
}

func (s *GuestService) sendSignupConfirmation(ctx context.Context, guest *models.Guest) {
	result := s.sender.SendSaveTheDateConfirmation(ctx, guest.Email, guest.FirstName)

	status := models.EmailStatusSent
	if !result.Success {
		status = models.EmailStatusFailed
		log.Printf("Save-the-date confirmation failed: guest=%s, error=%s", guest.ID, result.Error)
	}

	entry := &models.EmailLog{
		GuestID:        &guest.ID,
		EmailType:      models.EmailTypeSaveTheDateConfirmation,
		RecipientEmail: guest.Email,
		Subject:        "You're on the list!",
		Status:         status,
	}
	if result.MessageID != "" {
		entry.MessageID = &result.MessageID
	}
	if err := s.emailLogs.Create(entry); err != nil {
		log.Printf("Failed to record email log: %v", err)
	}
}
