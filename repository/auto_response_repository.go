package repository

import (
	"context"
	"fmt"

	"ticketbot/database"
	"ticketbot/models"
)

// AutoResponseRepository implements the AutoResponseRepository interface
type AutoResponseRepository struct {
	q queryable
}

// NewAutoResponseRepository creates a new auto-response repository
func NewAutoResponseRepository(db *database.DB) *AutoResponseRepository {
	return &AutoResponseRepository{q: db.Pool}
}

// newAutoResponseRepositoryWithTx creates a new auto-response repository with a transaction
func newAutoResponseRepositoryWithTx(tx queryable) *AutoResponseRepository {
	return &AutoResponseRepository{q: tx}
}

// Create inserts a new auto-response
func (r *AutoResponseRepository) Create(ctx context.Context, response *models.AutoResponse) (*models.AutoResponse, error) {
	query := `
		INSERT INTO auto_responses (guild_id, trigger, response, exact_match, created_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (guild_id, trigger) DO UPDATE
		SET response = EXCLUDED.response,
		    exact_match = EXCLUDED.exact_match,
		    updated_at = NOW()
		RETURNING id, guild_id, trigger, response, exact_match, created_by, created_at, updated_at
	`

	var created models.AutoResponse
	err := r.q.QueryRow(ctx, query,
		response.GuildID,
		response.Trigger,
		response.Response,
		response.ExactMatch,
		response.CreatedBy,
	).Scan(
		&created.ID,
		&created.GuildID,
		&created.Trigger,
		&created.Response,
		&created.ExactMatch,
		&created.CreatedBy,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create auto-response for guild %d: %w", response.GuildID, err)
	}

	return &created, nil
}

// GetByGuild returns all auto-responses for a guild ordered by trigger
func (r *AutoResponseRepository) GetByGuild(ctx context.Context, guildID int64) ([]*models.AutoResponse, error) {
	query := `
		SELECT id, guild_id, trigger, response, exact_match, created_by, created_at, updated_at
		FROM auto_responses
		WHERE guild_id = $1
		ORDER BY trigger
	`

	rows, err := r.q.Query(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get auto-responses for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	var responses []*models.AutoResponse
	for rows.Next() {
		var response models.AutoResponse
		err := rows.Scan(
			&response.ID,
			&response.GuildID,
			&response.Trigger,
			&response.Response,
			&response.ExactMatch,
			&response.CreatedBy,
			&response.CreatedAt,
			&response.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan auto-response: %w", err)
		}
		responses = append(responses, &response)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read auto-responses for guild %d: %w", guildID, err)
	}

	return responses, nil
}

// DeleteByTrigger removes an auto-response by its trigger, returning the
// number of rows affected
func (r *AutoResponseRepository) DeleteByTrigger(ctx context.Context, guildID int64, trigger string) (int64, error) {
	query := `
		DELETE FROM auto_responses
		WHERE guild_id = $1 AND trigger = $2
	`

	result, err := r.q.Exec(ctx, query, guildID, trigger)
	if err != nil {
		return 0, fmt.Errorf("failed to delete auto-response for guild %d: %w", guildID, err)
	}

	return result.RowsAffected(), nil
}
