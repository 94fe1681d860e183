package repository

import (
	"database/sql"
	"fmt"

	"weddinghub/internal/database"
	"weddinghub/internal/models"
)

// VenueRepository handles database operations for venues, events and hotels
type VenueRepository struct {
	db *database.DB
}

// NewVenueRepository creates a new venue repository
func NewVenueRepository(db *database.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

// GetVenue retrieves the primary venue, or nil when none is configured
func (r *VenueRepository) GetVenue() (*models.Venue, error) {
	v := &models.Venue{}
	err := r.db.QueryRow(`
		SELECT id, name, description, address_line1, city, state, zip_code, phone, website
		FROM venues ORDER BY id ASC LIMIT 1
	`).Scan(&v.ID, &v.Name, &v.Description, &v.AddressLine1, &v.City, &v.State,
		&v.ZipCode, &v.Phone, &v.Website)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return v, nil
}

// ListPublicEvents returns public events with their venues, in schedule order
func (r *VenueRepository) ListPublicEvents() ([]models.Event, error) {
	rows, err := r.db.Query(`
		SELECT e.id, e.venue_id, e.name, e.description, e.start_time, e.end_time, e.attire, e.is_public,
			v.id, v.name, v.description, v.address_line1, v.city, v.state, v.zip_code, v.phone, v.website
		FROM events e
		LEFT JOIN venues v ON v.id = e.venue_id
		WHERE e.is_public = ?
		ORDER BY e.start_time ASC
	`, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		var venueID *int64
		var venueName, venueDesc, venueAddr, venueCity, venueState, venueZip, venuePhone, venueWebsite *string
		if err := rows.Scan(&e.ID, &e.VenueID, &e.Name, &e.Description, &e.StartTime, &e.EndTime,
			&e.Attire, &e.IsPublic,
			&venueID, &venueName, &venueDesc, &venueAddr, &venueCity, &venueState,
			&venueZip, &venuePhone, &venueWebsite); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if venueID != nil && venueName != nil {
			e.Venue = &models.Venue{
				ID: *venueID, Name: *venueName, Description: venueDesc,
				AddressLine1: venueAddr, City: venueCity, State: venueState,
				ZipCode: venueZip, Phone: venuePhone, Website: venueWebsite,
			}
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

// ListHotels returns accommodation suggestions, recommended first
func (r *VenueRepository) ListHotels() ([]models.Hotel, error) {
	rows, err := r.db.Query(`
		SELECT id, name, description, address_line1, city, state, zip_code, phone, website,
			room_block_code, is_recommended
		FROM hotels ORDER BY is_recommended DESC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query hotels: %w", err)
	}
	defer rows.Close()

	var hotels []models.Hotel
	for rows.Next() {
		var h models.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Description, &h.AddressLine1, &h.City,
			&h.State, &h.ZipCode, &h.Phone, &h.Website, &h.RoomBlockCode, &h.IsRecommended); err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hotels: %w", err)
	}
	return hotels, nil
}
