package models

import "time"

// Email categories recorded in email_logs
const (
	EmailTypeSaveTheDate             = "save_the_date"
	EmailTypeSaveTheDateConfirmation = "save_the_date_confirmation"
	EmailTypeRSVPConfirmation        = "rsvp_confirmation"
	EmailTypeSecurityAlert           = "security_alert"
	EmailTypeTest                    = "test"
)

// Email delivery statuses
const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// EmailLog records one outbound email attempt. Rows are append-only;
// only an external open-tracking webhook ever sets OpenedAt.
type EmailLog struct {
	ID             int64
	GuestID        *string
	EmailType      string
	RecipientEmail string
	Subject        string
	Status         string
	MessageID      *string
	OpenedAt       *time.Time
	CreatedAt      time.Time
}

// EmailStats summarizes delivery outcomes for the admin dashboard
type EmailStats struct {
	TotalSent int `json:"totalSent"`
	Delivered int `json:"delivered"`
	Opened    int `json:"opened"`
	Failed    int `json:"failed"`
}
