package repository

import (
	"context"
	"fmt"

	"ticketbot/database"
	"ticketbot/models"
)

// ActivityLogRepository implements the ActivityLogRepository interface.
// The log is append-only; the engine never reads it back.
type ActivityLogRepository struct {
	q queryable
}

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *database.DB) *ActivityLogRepository {
	return &ActivityLogRepository{q: db.Pool}
}

// newActivityLogRepositoryWithTx creates a new activity log repository with a transaction
func newActivityLogRepositoryWithTx(tx queryable) *ActivityLogRepository {
	return &ActivityLogRepository{q: tx}
}

// Record appends an audit entry
func (r *ActivityLogRepository) Record(ctx context.Context, entry *models.ActivityLogEntry) error {
	query := `
		INSERT INTO activity_log (actor_id, action, target_id, guild_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.ActorID,
		entry.Action,
		entry.TargetID,
		entry.GuildID,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record activity log entry: %w", err)
	}

	return nil
}
