package models

import (
	"time"
)

// AutoResponse is a per-guild trigger/response pair. When ExactMatch is
// false the trigger matches as a substring.
type AutoResponse struct {
	ID         int64     `db:"id"`
	GuildID    int64     `db:"guild_id"`
	Trigger    string    `db:"trigger"`
	Response   string    `db:"response"`
	ExactMatch bool      `db:"exact_match"`
	CreatedBy  int64     `db:"created_by"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
