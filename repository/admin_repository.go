package repository

import (
	"context"
	"fmt"

	"ticketbot/database"
	"ticketbot/models"

	"github.com/jackc/pgx/v5"
)

// AdminRepository implements the AdminRepository interface
type AdminRepository struct {
	q queryable
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *database.DB) *AdminRepository {
	return &AdminRepository{q: db.Pool}
}

// newAdminRepositoryWithTx creates a new admin repository with a transaction
func newAdminRepositoryWithTx(tx queryable) *AdminRepository {
	return &AdminRepository{q: tx}
}

// GetByUserID retrieves an admin record by user ID. Absence is a valid
// negative result, not an error.
func (r *AdminRepository) GetByUserID(ctx context.Context, userID int64) (*models.AdminRecord, error) {
	query := `
		SELECT user_id, username, level, granted_by, is_active, created_at, updated_at
		FROM admin_users
		WHERE user_id = $1
	`

	var record models.AdminRecord
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&record.UserID,
		&record.Username,
		&record.Level,
		&record.GrantedBy,
		&record.IsActive,
		&record.CreatedAt,
		&record.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin record for user %d: %w", userID, err)
	}

	return &record, nil
}

// Upsert creates an admin record or reactivates and updates an existing one
func (r *AdminRepository) Upsert(ctx context.Context, record *models.AdminRecord) error {
	query := `
		INSERT INTO admin_users (user_id, username, level, granted_by, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET username = EXCLUDED.username,
		    level = EXCLUDED.level,
		    granted_by = EXCLUDED.granted_by,
		    is_active = EXCLUDED.is_active,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		record.UserID,
		record.Username,
		record.Level,
		record.GrantedBy,
		record.IsActive,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert admin record for user %d: %w", record.UserID, err)
	}

	return nil
}

// Deactivate soft-deletes an admin record. Records are never hard-deleted.
func (r *AdminRepository) Deactivate(ctx context.Context, userID int64) (int64, error) {
	query := `
		UPDATE admin_users
		SET is_active = FALSE,
		    updated_at = NOW()
		WHERE user_id = $1 AND is_active = TRUE
	`

	result, err := r.q.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate admin record for user %d: %w", userID, err)
	}

	return result.RowsAffected(), nil
}
