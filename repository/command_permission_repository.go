package repository

import (
	"context"
	"fmt"

	"ticketbot/database"
	"ticketbot/models"
)

// CommandPermissionRepository implements the CommandPermissionRepository interface
type CommandPermissionRepository struct {
	q queryable
}

// NewCommandPermissionRepository creates a new command permission repository
func NewCommandPermissionRepository(db *database.DB) *CommandPermissionRepository {
	return &CommandPermissionRepository{q: db.Pool}
}

// newCommandPermissionRepositoryWithTx creates a new command permission repository with a transaction
func newCommandPermissionRepositoryWithTx(tx queryable) *CommandPermissionRepository {
	return &CommandPermissionRepository{q: tx}
}

// GetByGuildAndRoles returns the rules for the given roles in a guild.
// Roles without a rule are absent from the result.
func (r *CommandPermissionRepository) GetByGuildAndRoles(ctx context.Context, guildID int64, roleIDs []int64) ([]*models.CommandPermissionRule, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT guild_id, role_id, allowed_commands, denied_commands, created_at, updated_at
		FROM command_permission_rules
		WHERE guild_id = $1 AND role_id = ANY($2)
	`

	rows, err := r.q.Query(ctx, query, guildID, roleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get permission rules for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	var rules []*models.CommandPermissionRule
	for rows.Next() {
		var rule models.CommandPermissionRule
		err := rows.Scan(
			&rule.GuildID,
			&rule.RoleID,
			&rule.AllowedCommands,
			&rule.DeniedCommands,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan permission rule: %w", err)
		}
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read permission rules for guild %d: %w", guildID, err)
	}

	return rules, nil
}

// Upsert creates or replaces the rule for a (guild, role) pair
func (r *CommandPermissionRepository) Upsert(ctx context.Context, rule *models.CommandPermissionRule) error {
	query := `
		INSERT INTO command_permission_rules (guild_id, role_id, allowed_commands, denied_commands)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guild_id, role_id) DO UPDATE
		SET allowed_commands = EXCLUDED.allowed_commands,
		    denied_commands = EXCLUDED.denied_commands,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		rule.GuildID,
		rule.RoleID,
		rule.AllowedCommands,
		rule.DeniedCommands,
	).Scan(&rule.CreatedAt, &rule.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert permission rule for guild %d role %d: %w", rule.GuildID, rule.RoleID, err)
	}

	return nil
}

// Delete removes the rule for a (guild, role) pair
func (r *CommandPermissionRepository) Delete(ctx context.Context, guildID, roleID int64) error {
	query := `
		DELETE FROM command_permission_rules
		WHERE guild_id = $1 AND role_id = $2
	`

	_, err := r.q.Exec(ctx, query, guildID, roleID)
	if err != nil {
		return fmt.Errorf("failed to delete permission rule for guild %d role %d: %w", guildID, roleID, err)
	}

	return nil
}
