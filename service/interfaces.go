package service

import (
	"context"
	"errors"

	"ticketbot/events"
	"ticketbot/models"
)

// ErrUnknownFeature is returned when a feature patch references a name
// outside the closed feature enumeration. Validated before any store access.
var ErrUnknownFeature = errors.New("unknown feature name")

// GuildConfigRepository defines the interface for guild configuration access
type GuildConfigRepository interface {
	// GetOrCreate retrieves a guild's config, lazily creating a row with
	// the default feature set on first access
	GetOrCreate(ctx context.Context, guildID int64) (*models.GuildConfig, error)

	// UpdateFeatures persists a guild's enabled feature set
	UpdateFeatures(ctx context.Context, guildID int64, enabled models.FeatureSet) error

	// SetSetting writes a single key in the guild's opaque settings map
	SetSetting(ctx context.Context, guildID int64, key, value string) error
}

// AdminRepository defines the interface for the global-admin roster
type AdminRepository interface {
	// GetByUserID retrieves an admin record by user ID, nil if absent
	GetByUserID(ctx context.Context, userID int64) (*models.AdminRecord, error)

	// Upsert creates or reactivates an admin record
	Upsert(ctx context.Context, record *models.AdminRecord) error

	// Deactivate soft-deletes an admin record. Returns the number of
	// rows affected; deactivating an unknown user affects zero rows.
	Deactivate(ctx context.Context, userID int64) (int64, error)
}

// CommandPermissionRepository defines the interface for per-role command rules
type CommandPermissionRepository interface {
	// GetByGuildAndRoles returns the rules for the given roles in a guild.
	// Roles without a rule are simply absent from the result.
	GetByGuildAndRoles(ctx context.Context, guildID int64, roleIDs []int64) ([]*models.CommandPermissionRule, error)

	// Upsert creates or replaces the rule for a (guild, role) pair
	Upsert(ctx context.Context, rule *models.CommandPermissionRule) error

	// Delete removes the rule for a (guild, role) pair
	Delete(ctx context.Context, guildID, roleID int64) error
}

// ActivityLogRepository is the append-only audit log. Write-only from the
// engine's perspective.
type ActivityLogRepository interface {
	Record(ctx context.Context, entry *models.ActivityLogEntry) error
}

// AutoResponseRepository defines the interface for guild auto-responses
type AutoResponseRepository interface {
	Create(ctx context.Context, response *models.AutoResponse) (*models.AutoResponse, error)
	GetByGuild(ctx context.Context, guildID int64) ([]*models.AutoResponse, error)
	DeleteByTrigger(ctx context.Context, guildID int64, trigger string) (int64, error)
}

// UnitOfWork provides transactional access to repositories
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	GuildConfigRepository() GuildConfigRepository
	AdminRepository() AdminRepository
	CommandPermissionRepository() CommandPermissionRepository
	ActivityLogRepository() ActivityLogRepository
	AutoResponseRepository() AutoResponseRepository

	// EventBus returns the transactional publisher; events published here
	// are emitted only after Commit
	EventBus() EventPublisher
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// AdminService resolves and mutates the global admin roster
type AdminService interface {
	// IsGlobalAdmin reports whether the user is an active global admin
	// and at which level. Cached with a fixed TTL, including negatives.
	IsGlobalAdmin(ctx context.Context, userID int64) (models.AdminStatus, error)

	// Grant upserts an active admin record and invalidates the cache entry
	Grant(ctx context.Context, userID int64, username string, level int, grantedBy int64) error

	// Revoke deactivates an admin record and invalidates the cache entry.
	// Revoking an unknown user succeeds as a no-op.
	Revoke(ctx context.Context, actorID, userID int64) error
}

// FeatureService resolves and mutates per-guild feature flags
type FeatureService interface {
	// GetEnabledFeatures returns the guild's enabled feature set. Store
	// failures fail open: the full known feature set is returned.
	GetEnabledFeatures(ctx context.Context, guildID int64) models.FeatureSet

	// IsFeatureEnabled reports whether a single feature is enabled
	IsFeatureEnabled(ctx context.Context, guildID int64, feature models.FeatureName) bool

	// UpdateFeatures applies an enable/disable patch, persists the new
	// set, writes it through to the cache, and publishes a
	// FeaturesChanged event after commit
	UpdateFeatures(ctx context.Context, guildID int64, actorID int64, patch map[models.FeatureName]bool) (models.FeatureSet, error)
}

// PermissionCheck carries everything the resolver needs for one decision
type PermissionCheck struct {
	GuildID     int64
	UserID      int64
	OwnerID     int64
	RoleIDs     []int64
	Permissions int64 // raw Discord permission bits for the member
	Command     string
	Subcommand  string
}

// DecisionReason explains which rule produced a decision, so callers can
// distinguish "feature disabled" from "permission denied" in user messages
type DecisionReason string

const (
	ReasonFeatureDisabled DecisionReason = "feature_disabled"
	ReasonGuildOwner      DecisionReason = "guild_owner"
	ReasonGlobalAdmin     DecisionReason = "global_admin"
	ReasonRoleAllowed     DecisionReason = "role_allowed"
	ReasonRoleDenied      DecisionReason = "role_denied"
	ReasonCapability      DecisionReason = "capability"
	ReasonNoCapability    DecisionReason = "missing_capability"
	ReasonUnrestricted    DecisionReason = "unrestricted"
)

// Decision is the resolver's answer for one command invocation
type Decision struct {
	Allowed bool
	Reason  DecisionReason
}

// PermissionService decides whether a command invocation is permitted
type PermissionService interface {
	CheckCommand(ctx context.Context, check PermissionCheck) Decision
}

// GuildSettingsService manages the opaque per-guild settings map
type GuildSettingsService interface {
	// GetSettings returns the guild's settings map, creating the guild
	// config on first access
	GetSettings(ctx context.Context, guildID int64) (map[string]string, error)

	// SetSetting writes a single settings key
	SetSetting(ctx context.Context, guildID int64, key, value string) error
}

// AutoResponseService manages guild auto-responses
type AutoResponseService interface {
	Add(ctx context.Context, guildID int64, trigger, response string, exactMatch bool, createdBy int64) (*models.AutoResponse, error)
	List(ctx context.Context, guildID int64) ([]*models.AutoResponse, error)
	Remove(ctx context.Context, guildID int64, trigger string) (bool, error)
}
