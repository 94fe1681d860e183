package repository

import (
	"database/sql"
	"fmt"

	"weddinghub/internal/database"
	"weddinghub/internal/models"
)

// PartyRepository handles database operations for wedding party members
type PartyRepository struct {
	db *database.DB
}

// NewPartyRepository creates a new wedding party repository
func NewPartyRepository(db *database.DB) *PartyRepository {
	return &PartyRepository{db: db}
}

// Create inserts a new wedding party member
func (r *PartyRepository) Create(m *models.WeddingPartyMember) error {
	query := `
		INSERT INTO wedding_party (name, role, side, bio, image_url, sort_order)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, m.Name, m.Role, m.Side, m.Bio, m.ImageURL, m.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to create party member: %w", err)
	}
	m.ID = id
	return nil
}

// GetByID retrieves a wedding party member, or nil if not found
func (r *PartyRepository) GetByID(id int64) (*models.WeddingPartyMember, error) {
	m := &models.WeddingPartyMember{}
	err := r.db.QueryRow(`
		SELECT id, name, role, side, bio, image_url, sort_order, created_at, updated_at
		FROM wedding_party WHERE id = ?
	`, id).Scan(&m.ID, &m.Name, &m.Role, &m.Side, &m.Bio, &m.ImageURL, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get party member: %w", err)
	}
	return m, nil
}

// ListAll returns all members grouped by side, then display order
func (r *PartyRepository) ListAll() ([]models.WeddingPartyMember, error) {
	rows, err := r.db.Query(`
		SELECT id, name, role, side, bio, image_url, sort_order, created_at, updated_at
		FROM wedding_party ORDER BY side ASC, sort_order ASC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query party members: %w", err)
	}
	defer rows.Close()

	var members []models.WeddingPartyMember
	for rows.Next() {
		var m models.WeddingPartyMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.Side, &m.Bio, &m.ImageURL,
			&m.SortOrder, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan party member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate party members: %w", err)
	}
	return members, nil
}

// Update modifies an existing wedding party member
func (r *PartyRepository) Update(m *models.WeddingPartyMember) error {
	query := `
		UPDATE wedding_party
		SET name = ?, role = ?, side = ?, bio = ?, image_url = ?, sort_order = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Exec(query, m.Name, m.Role, m.Side, m.Bio, m.ImageURL, m.SortOrder, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update party member: %w", err)
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

// Delete removes a wedding party member
func (r *PartyRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM wedding_party WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete party member: %w", err)
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
