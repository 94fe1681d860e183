package repository

import (
	"database/sql"
	"fmt"
	"time"

	"weddinghub/internal/database"
	"weddinghub/internal/models"

	"github.com/google/uuid"
)

// GuestRepository handles database operations for guests and their plus-ones
type GuestRepository struct {
	db *database.DB
}

// NewGuestRepository creates a new guest repository
func NewGuestRepository(db *database.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

const guestColumns = `id, first_name, last_name, email, phone, address_line1, address_line2,
	city, state, zip_code, country, invitation_code, invitation_sent_at, rsvp_received_at,
	attending, dietary_restrictions, special_requests, table_number, notes, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGuest(row rowScanner) (*models.Guest, error) {
	g := &models.Guest{}
	err := row.Scan(
		&g.ID, &g.FirstName, &g.LastName, &g.Email, &g.Phone, &g.AddressLine1, &g.AddressLine2,
		&g.City, &g.State, &g.ZipCode, &g.Country, &g.InvitationCode, &g.InvitationSentAt,
		&g.RSVPReceivedAt, &g.Attending, &g.DietaryRestrictions, &g.SpecialRequests,
		&g.TableNumber, &g.Notes, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Create inserts a new guest. A missing ID gets a fresh UUID.
func (r *GuestRepository) Create(g *models.Guest) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}

	query := `
		INSERT INTO guests (id, first_name, last_name, email, phone, address_line1, address_line2,
			city, state, zip_code, country, dietary_restrictions, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		g.ID, g.FirstName, g.LastName, g.Email, g.Phone, g.AddressLine1, g.AddressLine2,
		g.City, g.State, g.ZipCode, g.Country, g.DietaryRestrictions, g.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to create guest: %w", err)
	}
	return nil
}

// GetByID retrieves a guest with plus-ones, or nil if not found
func (r *GuestRepository) GetByID(id string) (*models.Guest, error) {
	query := "SELECT " + guestColumns + " FROM guests WHERE id = ?"
	guest, err := scanGuest(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}

	if err := r.attachPlusOnes(guest); err != nil {
		return nil, err
	}
	return guest, nil
}

// GetByEmail retrieves a guest by email, or nil if not found
func (r *GuestRepository) GetByEmail(email string) (*models.Guest, error) {
	query := "SELECT " + guestColumns + " FROM guests WHERE email = ?"
	guest, err := scanGuest(r.db.QueryRow(query, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guest by email: %w", err)
	}
	return guest, nil
}

// GetByInvitationCode retrieves a guest with plus-ones by invitation code,
// or nil if no guest has that code
func (r *GuestRepository) GetByInvitationCode(code string) (*models.Guest, error) {
	query := "SELECT " + guestColumns + " FROM guests WHERE invitation_code = ?"
	guest, err := scanGuest(r.db.QueryRow(query, code))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guest by code: %w", err)
	}

	if err := r.attachPlusOnes(guest); err != nil {
		return nil, err
	}
	return guest, nil
}

// ListAll retrieves every guest with plus-ones, ordered by last then first name
func (r *GuestRepository) ListAll() ([]models.Guest, error) {
	query := "SELECT " + guestColumns + " FROM guests ORDER BY last_name ASC, first_name ASC"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query guests: %w", err)
	}
	defer rows.Close()

	var guests []models.Guest
	index := make(map[string]int)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		index[g.ID] = len(guests)
		guests = append(guests, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate guests: %w", err)
	}

	// Single follow-up query instead of one per guest
	poRows, err := r.db.Query(`
		SELECT id, guest_id, first_name, last_name, dietary_restrictions, is_child, age, created_at
		FROM plus_ones ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query plus-ones: %w", err)
	}
	defer poRows.Close()

	for poRows.Next() {
		var po models.PlusOne
		if err := poRows.Scan(&po.ID, &po.GuestID, &po.FirstName, &po.LastName,
			&po.DietaryRestrictions, &po.IsChild, &po.Age, &po.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plus-one: %w", err)
		}
		if i, ok := index[po.GuestID]; ok {
			guests[i].PlusOnes = append(guests[i].PlusOnes, po)
		}
	}
	if err := poRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plus-ones: %w", err)
	}

	return guests, nil
}

// Update applies an admin edit to a guest record
func (r *GuestRepository) Update(g *models.Guest) error {
	query := `
		UPDATE guests
		SET first_name = ?, last_name = ?, email = ?, phone = ?, address_line1 = ?,
			address_line2 = ?, city = ?, state = ?, zip_code = ?, country = ?,
			table_number = ?, dietary_restrictions = ?, special_requests = ?,
			notes = ?, attending = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		g.FirstName, g.LastName, g.Email, g.Phone, g.AddressLine1, g.AddressLine2,
		g.City, g.State, g.ZipCode, g.Country, g.TableNumber, g.DietaryRestrictions,
		g.SpecialRequests, g.Notes, g.Attending, g.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update guest: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateContact updates the save-the-date contact fields only, leaving
// any RSVP data untouched
func (r *GuestRepository) UpdateContact(g *models.Guest) error {
	query := `
		UPDATE guests
		SET first_name = ?, last_name = ?, phone = ?, address_line1 = ?, city = ?,
			state = ?, zip_code = ?, dietary_restrictions = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		g.FirstName, g.LastName, g.Phone, g.AddressLine1, g.City,
		g.State, g.ZipCode, g.DietaryRestrictions, g.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update guest contact: %w", err)
	}
	return nil
}

// Delete removes a guest; plus-ones cascade
func (r *GuestRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM guests WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete guest: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// EmailTakenByOther reports whether another guest already uses the email
func (r *GuestRepository) EmailTakenByOther(email, excludeID string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM guests WHERE email = ? AND id <> ?"
	if err := r.db.QueryRow(query, email, excludeID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// SubmitRSVP applies an RSVP as one transaction: the guest row update and
// the wholesale plus-one replacement either both land or neither does.
func (r *GuestRepository) SubmitRSVP(guestID string, attending bool, dietary, specialRequests *string, plusOnes []models.PlusOne) (*models.Guest, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE guests
		SET attending = ?, dietary_restrictions = ?, special_requests = ?,
			rsvp_received_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, attending, dietary, specialRequests, time.Now(), guestID)
	if err != nil {
		return nil, fmt.Errorf("failed to update rsvp: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rsvp result: %w", err)
	}
	if rowsAffected == 0 {
		return nil, sql.ErrNoRows
	}

	if _, err := tx.Exec("DELETE FROM plus_ones WHERE guest_id = ?", guestID); err != nil {
		return nil, fmt.Errorf("failed to clear plus-ones: %w", err)
	}

	if attending {
		for _, po := range plusOnes {
			_, err := tx.Exec(`
				INSERT INTO plus_ones (guest_id, first_name, last_name, dietary_restrictions, is_child, age)
				VALUES (?, ?, ?, ?, ?, ?)
			`, guestID, po.FirstName, po.LastName, po.DietaryRestrictions, po.IsChild, po.Age)
			if err != nil {
				return nil, fmt.Errorf("failed to insert plus-one: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit rsvp: %w", err)
	}

	return r.GetByID(guestID)
}

// Stats returns guest-list counters for the admin dashboard
func (r *GuestRepository) Stats() (*models.GuestStats, error) {
	stats := &models.GuestStats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM guests", &stats.Total},
		{"SELECT COUNT(*) FROM guests WHERE invitation_sent_at IS NOT NULL", &stats.Invited},
		{"SELECT COUNT(*) FROM guests WHERE rsvp_received_at IS NOT NULL", &stats.RSVPReceived},
		{"SELECT COUNT(*) FROM guests WHERE attending = ?", &stats.Attending},
		{"SELECT COUNT(*) FROM guests WHERE attending = ?", &stats.NotAttending},
		{"SELECT COUNT(*) FROM plus_ones", &stats.PlusOnes},
	}

	for i, c := range counts {
		var args []interface{}
		switch i {
		case 3:
			args = []interface{}{true}
		case 4:
			args = []interface{}{false}
		}
		if err := r.db.QueryRow(c.query, args...).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to count guests: %w", err)
		}
	}

	stats.NoResponse = stats.Invited - stats.RSVPReceived
	if stats.NoResponse < 0 {
		stats.NoResponse = 0
	}

	return stats, nil
}

// SaveTheDateStats returns invitation-code coverage counters for the
// save-the-date campaign page
func (r *GuestRepository) SaveTheDateStats() (*models.SaveTheDateStats, error) {
	stats := &models.SaveTheDateStats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM guests", &stats.TotalGuests},
		{"SELECT COUNT(*) FROM guests WHERE email <> ''", &stats.WithEmail},
		{"SELECT COUNT(*) FROM guests WHERE invitation_code IS NOT NULL", &stats.WithCode},
		{"SELECT COUNT(*) FROM guests WHERE invitation_code IS NULL AND email <> ''", &stats.MissingCode},
		{"SELECT COUNT(*) FROM guests WHERE invitation_sent_at IS NOT NULL", &stats.Invited},
		{`SELECT COUNT(*) FROM guests
			WHERE invitation_code IS NOT NULL AND email <> '' AND invitation_sent_at IS NULL`, &stats.PendingSend},
	}

	for _, c := range counts {
		if err := r.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to count guests: %w", err)
		}
	}

	return stats, nil
}

// ListMissingCode returns guests that have an email but no invitation code
func (r *GuestRepository) ListMissingCode() ([]models.Guest, error) {
	query := "SELECT " + guestColumns + " FROM guests WHERE invitation_code IS NULL AND email <> ''"
	return r.queryGuests(query)
}

// ListNeedingInvitation returns guests with a code and email that have not
// yet been sent a save-the-date
func (r *GuestRepository) ListNeedingInvitation() ([]models.Guest, error) {
	query := "SELECT " + guestColumns + ` FROM guests
		WHERE invitation_code IS NOT NULL AND email <> '' AND invitation_sent_at IS NULL`
	return r.queryGuests(query)
}

// CodeExists reports whether any guest already holds the invitation code
func (r *GuestRepository) CodeExists(code string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM guests WHERE invitation_code = ?"
	if err := r.db.QueryRow(query, code).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check invitation code: %w", err)
	}
	return count > 0, nil
}

// SetInvitationCode assigns an invitation code to a guest
func (r *GuestRepository) SetInvitationCode(guestID, code string) error {
	query := "UPDATE guests SET invitation_code = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := r.db.Exec(query, code, guestID); err != nil {
		return fmt.Errorf("failed to set invitation code: %w", err)
	}
	return nil
}

// MarkInvited stamps the invitation-sent timestamp
func (r *GuestRepository) MarkInvited(guestID string, at time.Time) error {
	query := "UPDATE guests SET invitation_sent_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := r.db.Exec(query, at, guestID); err != nil {
		return fmt.Errorf("failed to mark invited: %w", err)
	}
	return nil
}

func (r *GuestRepository) queryGuests(query string, args ...interface{}) ([]models.Guest, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query guests: %w", err)
	}
	defer rows.Close()

	var guests []models.Guest
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate guests: %w", err)
	}
	return guests, nil
}

func (r *GuestRepository) attachPlusOnes(g *models.Guest) error {
	rows, err := r.db.Query(`
		SELECT id, guest_id, first_name, last_name, dietary_restrictions, is_child, age, created_at
		FROM plus_ones WHERE guest_id = ? ORDER BY id ASC
	`, g.ID)
	if err != nil {
		return fmt.Errorf("failed to query plus-ones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var po models.PlusOne
		if err := rows.Scan(&po.ID, &po.GuestID, &po.FirstName, &po.LastName,
			&po.DietaryRestrictions, &po.IsChild, &po.Age, &po.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan plus-one: %w", err)
		}
		g.PlusOnes = append(g.PlusOnes, po)
	}
	return rows.Err()
}
