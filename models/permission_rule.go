package models

import (
	"time"
)

// CommandPermissionRule holds a role's explicit allow/deny lists for named
// commands within a guild. At most one rule exists per (guild, role) pair.
type CommandPermissionRule struct {
	GuildID         int64     `db:"guild_id"`
	RoleID          int64     `db:"role_id"`
	AllowedCommands []string  `db:"allowed_commands"`
	DeniedCommands  []string  `db:"denied_commands"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Allows reports whether the rule explicitly allows the command
func (r *CommandPermissionRule) Allows(command string) bool {
	return containsString(r.AllowedCommands, command)
}

// Denies reports whether the rule explicitly denies the command
func (r *CommandPermissionRule) Denies(command string) bool {
	return containsString(r.DeniedCommands, command)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
