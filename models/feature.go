package models

import (
	"sort"
	"time"
)

// FeatureName identifies a per-guild toggleable feature
type FeatureName string

const (
	FeatureTickets       FeatureName = "tickets"
	FeatureAutoResponses FeatureName = "autoresponses"
	FeatureStatistics    FeatureName = "statistics"
	FeatureAutoRoles     FeatureName = "autoroles"
	FeatureWebhooks      FeatureName = "webhooks"
)

// AllFeatures returns every feature name known to this deployment
func AllFeatures() []FeatureName {
	return []FeatureName{
		FeatureTickets,
		FeatureAutoResponses,
		FeatureStatistics,
		FeatureAutoRoles,
		FeatureWebhooks,
	}
}

// DefaultFeatures returns the feature set enabled for a guild on first access.
// Webhooks are opt-in.
func DefaultFeatures() FeatureSet {
	return NewFeatureSet(
		FeatureTickets,
		FeatureAutoResponses,
		FeatureStatistics,
		FeatureAutoRoles,
	)
}

// IsKnownFeature reports whether name is part of the closed feature enumeration
func IsKnownFeature(name FeatureName) bool {
	for _, f := range AllFeatures() {
		if f == name {
			return true
		}
	}
	return false
}

// FeatureSet is the set of features enabled for a guild
type FeatureSet map[FeatureName]struct{}

// NewFeatureSet builds a set from the given feature names
func NewFeatureSet(features ...FeatureName) FeatureSet {
	set := make(FeatureSet, len(features))
	for _, f := range features {
		set[f] = struct{}{}
	}
	return set
}

// AllFeaturesEnabled returns a set containing every known feature
func AllFeaturesEnabled() FeatureSet {
	return NewFeatureSet(AllFeatures()...)
}

// Contains reports whether the feature is in the set
func (s FeatureSet) Contains(feature FeatureName) bool {
	_, ok := s[feature]
	return ok
}

// Names returns the set's members as strings, sorted for stable persistence
func (s FeatureSet) Names() []string {
	names := make([]string, 0, len(s))
	for f := range s {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of the set
func (s FeatureSet) Clone() FeatureSet {
	clone := make(FeatureSet, len(s))
	for f := range s {
		clone[f] = struct{}{}
	}
	return clone
}

// FeatureSetFromNames rebuilds a set from persisted string values.
// Unknown names are kept; the closed enumeration is enforced at write time.
func FeatureSetFromNames(names []string) FeatureSet {
	set := make(FeatureSet, len(names))
	for _, n := range names {
		set[FeatureName(n)] = struct{}{}
	}
	return set
}

// GuildConfig holds per-guild configuration, created lazily on first access
type GuildConfig struct {
	GuildID         int64             `db:"guild_id"`
	EnabledFeatures FeatureSet        `db:"enabled_features"`
	Settings        map[string]string `db:"settings"`
	CreatedAt       time.Time         `db:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at"`
}
