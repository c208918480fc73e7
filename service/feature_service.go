package service

import (
	"context"
	"fmt"
	"time"

	"ticketbot/events"
	"ticketbot/models"

	log "github.com/sirupsen/logrus"
)

// featureService implements the FeatureService interface
type featureService struct {
	uowFactory   UnitOfWorkFactory
	cache        *Cache[int64, models.FeatureSet]
	storeTimeout time.Duration
}

// NewFeatureService creates a new feature flag service with an expiring
// cache in front of the store
func NewFeatureService(uowFactory UnitOfWorkFactory, cacheTTL, storeTimeout time.Duration) FeatureService {
	return &featureService{
		uowFactory:   uowFactory,
		cache:        NewCache[int64, models.FeatureSet](cacheTTL),
		storeTimeout: storeTimeout,
	}
}

// GetEnabledFeatures returns the guild's enabled feature set. A store
// failure fails open: every known feature is reported enabled so a store
// outage never locks commands out. The fallback is not cached.
func (s *featureService) GetEnabledFeatures(ctx context.Context, guildID int64) models.FeatureSet {
	if set, ok := s.cache.Get(guildID); ok {
		return set
	}

	set, err := s.loadFromStore(ctx, guildID)
	if err != nil {
		log.WithFields(log.Fields{
			"guildId": guildID,
			"error":   err,
		}).Warn("Feature flag lookup failed, failing open with all features enabled")
		return models.AllFeaturesEnabled()
	}

	s.cache.Set(guildID, set)
	return set
}

// IsFeatureEnabled reports whether a single feature is enabled for the guild
func (s *featureService) IsFeatureEnabled(ctx context.Context, guildID int64, feature models.FeatureName) bool {
	return s.GetEnabledFeatures(ctx, guildID).Contains(feature)
}

// UpdateFeatures applies the patch over the currently persisted set,
// persists the result, writes it through to the cache, and publishes a
// FeaturesChanged event once the transaction commits. Unknown feature
// names are rejected before any store access.
func (s *featureService) UpdateFeatures(ctx context.Context, guildID int64, actorID int64, patch map[models.FeatureName]bool) (models.FeatureSet, error) {
	for name := range patch {
		if !models.IsKnownFeature(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	config, err := uow.GuildConfigRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild config for guild %d: %w", guildID, err)
	}

	enabled := config.EnabledFeatures.Clone()
	for name, on := range patch {
		if on {
			enabled[name] = struct{}{}
		} else {
			delete(enabled, name)
		}
	}

	if err := uow.GuildConfigRepository().UpdateFeatures(ctx, guildID, enabled); err != nil {
		return nil, fmt.Errorf("failed to persist feature set for guild %d: %w", guildID, err)
	}

	if err := uow.ActivityLogRepository().Record(ctx, &models.ActivityLogEntry{
		ActorID:  actorID,
		Action:   models.ActivityFeaturesUpdated,
		TargetID: guildID,
		GuildID:  &guildID,
	}); err != nil {
		return nil, fmt.Errorf("failed to record feature update: %w", err)
	}

	uow.EventBus().Publish(events.FeaturesChangedEvent{
		GuildID: guildID,
		Enabled: enabled.Clone(),
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Write the new set through to the cache so an immediate read is
	// consistent without a store round-trip
	s.cache.Set(guildID, enabled)

	log.WithFields(log.Fields{
		"guildId":  guildID,
		"actorId":  actorID,
		"features": enabled.Names(),
	}).Info("Guild feature set updated")

	return enabled, nil
}

// loadFromStore reads the guild's feature set, lazily creating the
// config row with defaults on first access
func (s *featureService) loadFromStore(ctx context.Context, guildID int64) (models.FeatureSet, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	config, err := uow.GuildConfigRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild config for guild %d: %w", guildID, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return config.EnabledFeatures, nil
}
