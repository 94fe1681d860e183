package models

import "time"

// Venue describes a wedding location shown on the public venue page
type Venue struct {
	ID           int64
	Name         string
	Description  *string
	AddressLine1 *string
	City         *string
	State        *string
	ZipCode      *string
	Phone        *string
	Website      *string
}

// Event is a scheduled happening (ceremony, reception, brunch) at a venue
type Event struct {
	ID          int64
	VenueID     *int64
	Name        string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Attire      *string
	IsPublic    bool

	// Populated by queries that join venues
	Venue *Venue
}

// Hotel is an accommodation suggestion for traveling guests
type Hotel struct {
	ID            int64
	Name          string
	Description   *string
	AddressLine1  *string
	City          *string
	State         *string
	ZipCode       *string
	Phone         *string
	Website       *string
	RoomBlockCode *string
	IsRecommended bool
}
