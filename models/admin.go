package models

import (
	"time"
)

// Admin levels. Higher is more privileged.
const (
	AdminLevelSupport  = 1
	AdminLevelManager  = 2
	AdminLevelOwner    = 3
	AdminLevelMin      = AdminLevelSupport
	AdminLevelMax      = AdminLevelOwner
)

// AdminRecord represents a global administrator. Records are soft-deleted
// via IsActive rather than removed.
type AdminRecord struct {
	UserID    int64     `db:"user_id"`
	Username  string    `db:"username"`
	Level     int       `db:"level"`
	GrantedBy int64     `db:"granted_by"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// AdminStatus is the resolved answer to "is this user a global admin right now"
type AdminStatus struct {
	IsAdmin bool
	Level   int
}
