package repository

import (
	"context"
	"fmt"

	"ticketbot/database"
	"ticketbot/models"

	"github.com/jackc/pgx/v5"
)

// GuildConfigRepository implements the GuildConfigRepository interface
type GuildConfigRepository struct {
	q queryable
}

// NewGuildConfigRepository creates a new guild config repository
func NewGuildConfigRepository(db *database.DB) *GuildConfigRepository {
	return &GuildConfigRepository{q: db.Pool}
}

// newGuildConfigRepositoryWithTx creates a new guild config repository with a transaction
func newGuildConfigRepositoryWithTx(tx queryable) *GuildConfigRepository {
	return &GuildConfigRepository{q: tx}
}

// GetOrCreate retrieves a guild's config, creating a row with the default
// feature set if none exists yet
func (r *GuildConfigRepository) GetOrCreate(ctx context.Context, guildID int64) (*models.GuildConfig, error) {
	query := `
		SELECT guild_id, enabled_features, settings, created_at, updated_at
		FROM guild_configs
		WHERE guild_id = $1
	`

	config, err := r.scanConfig(r.q.QueryRow(ctx, query, guildID))
	if err == nil {
		return config, nil
	}
	if err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to get guild config for guild %d: %w", guildID, err)
	}

	insertQuery := `
		INSERT INTO guild_configs (guild_id, enabled_features)
		VALUES ($1, $2)
		ON CONFLICT (guild_id) DO UPDATE SET guild_id = EXCLUDED.guild_id
		RETURNING guild_id, enabled_features, settings, created_at, updated_at
	`

	config, err = r.scanConfig(r.q.QueryRow(ctx, insertQuery, guildID, models.DefaultFeatures().Names()))
	if err != nil {
		return nil, fmt.Errorf("failed to create guild config for guild %d: %w", guildID, err)
	}

	return config, nil
}

// UpdateFeatures persists a guild's enabled feature set
func (r *GuildConfigRepository) UpdateFeatures(ctx context.Context, guildID int64, enabled models.FeatureSet) error {
	query := `
		UPDATE guild_configs
		SET enabled_features = $2,
		    updated_at = NOW()
		WHERE guild_id = $1
	`

	result, err := r.q.Exec(ctx, query, guildID, enabled.Names())
	if err != nil {
		return fmt.Errorf("failed to update features for guild %d: %w", guildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("guild config for guild %d not found", guildID)
	}

	return nil
}

// SetSetting writes a single key into the guild's settings map
func (r *GuildConfigRepository) SetSetting(ctx context.Context, guildID int64, key, value string) error {
	query := `
		UPDATE guild_configs
		SET settings = settings || jsonb_build_object($2::text, $3::text),
		    updated_at = NOW()
		WHERE guild_id = $1
	`

	result, err := r.q.Exec(ctx, query, guildID, key, value)
	if err != nil {
		return fmt.Errorf("failed to set %q for guild %d: %w", key, guildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("guild config for guild %d not found", guildID)
	}

	return nil
}

func (r *GuildConfigRepository) scanConfig(row pgx.Row) (*models.GuildConfig, error) {
	var config models.GuildConfig
	var features []string

	err := row.Scan(
		&config.GuildID,
		&features,
		&config.Settings,
		&config.CreatedAt,
		&config.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	config.EnabledFeatures = models.FeatureSetFromNames(features)
	return &config, nil
}
