package models

import (
	"time"
)

// Activity log actions recorded by the engine
const (
	ActivityAdminGranted    = "admin_granted"
	ActivityAdminRevoked    = "admin_revoked"
	ActivityFeaturesUpdated = "features_updated"
)

// ActivityLogEntry is an append-only audit record. GuildID is nil for
// global-scope actions such as admin grants.
type ActivityLogEntry struct {
	ID        int64     `db:"id"`
	ActorID   int64     `db:"actor_id"`
	Action    string    `db:"action"`
	TargetID  int64     `db:"target_id"`
	GuildID   *int64    `db:"guild_id"`
	CreatedAt time.Time `db:"created_at"`
}
