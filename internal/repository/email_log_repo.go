package repository

import (
	"fmt"

	"weddinghub/internal/database"
	"weddinghub/internal/models"
)

// EmailLogRepository records every email send attempt
type EmailLogRepository struct {
	db *database.DB
}

// NewEmailLogRepository creates a new email log repository
func NewEmailLogRepository(db *database.DB) *EmailLogRepository {
	return &EmailLogRepository{db: db}
}

// Create appends a send-attempt record. Logs are append-only.
func (r *EmailLogRepository) Create(log *models.EmailLog) error {
	query := `
		INSERT INTO email_logs (guest_id, email_type, recipient_email, subject, status, message_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		log.GuestID, log.EmailType, log.RecipientEmail, log.Subject,
		log.Status, log.MessageID,
	)
	if err != nil {
		return fmt.Errorf("failed to create email log: %w", err)
	}
	log.ID = id
	return nil
}

// MarkOpened stamps the open-tracking timestamp on a sent message
func (r *EmailLogRepository) MarkOpened(messageID string) error {
	query := `
		UPDATE email_logs SET opened_at = CURRENT_TIMESTAMP
		WHERE message_id = ? AND opened_at IS NULL
	`
	if _, err := r.db.Exec(query, messageID); err != nil {
		return fmt.Errorf("failed to mark email opened: %w", err)
	}
	return nil
}

// ListRecent returns the most recent send attempts, newest first
func (r *EmailLogRepository) ListRecent(limit int) ([]models.EmailLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(`
		SELECT id, guest_id, email_type, recipient_email, subject, status, message_id, opened_at, created_at
		FROM email_logs ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query email logs: %w", err)
	}
	defer rows.Close()

	var logs []models.EmailLog
	for rows.Next() {
		var l models.EmailLog
		if err := rows.Scan(&l.ID, &l.GuestID, &l.EmailType, &l.RecipientEmail, &l.Subject,
			&l.Status, &l.MessageID, &l.OpenedAt, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan email log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate email logs: %w", err)
	}
	return logs, nil
}

// Stats returns aggregate delivery counters
func (r *EmailLogRepository) Stats() (*models.EmailStats, error) {
	stats := &models.EmailStats{}

	err := r.db.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN opened_at IS NOT NULL THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)
		FROM email_logs
	`, models.EmailStatusSent, models.EmailStatusFailed).Scan(
		&stats.TotalSent, &stats.Delivered, &stats.Opened, &stats.Failed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count email logs: %w", err)
	}

	return stats, nil
}
