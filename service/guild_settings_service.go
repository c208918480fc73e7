package service

import (
	"context"
	"fmt"
	"time"
)

// guildSettingsService implements the GuildSettingsService interface
type guildSettingsService struct {
	uowFactory   UnitOfWorkFactory
	storeTimeout time.Duration
}

// NewGuildSettingsService creates a new guild settings service
func NewGuildSettingsService(uowFactory UnitOfWorkFactory, storeTimeout time.Duration) GuildSettingsService {
	return &guildSettingsService{
		uowFactory:   uowFactory,
		storeTimeout: storeTimeout,
	}
}

// GetSettings returns the guild's settings map, creating the config row
// on first access
func (s *guildSettingsService) GetSettings(ctx context.Context, guildID int64) (map[string]string, error) {
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

	return config.Settings, nil
}

// SetSetting writes a single settings key for the guild
func (s *guildSettingsService) SetSetting(ctx context.Context, guildID int64, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// Ensure the config row exists before patching settings
	if _, err := uow.GuildConfigRepository().GetOrCreate(ctx, guildID); err != nil {
		return fmt.Errorf("failed to load guild config for guild %d: %w", guildID, err)
	}

	if err := uow.GuildConfigRepository().SetSetting(ctx, guildID, key, value); err != nil {
		return fmt.Errorf("failed to save setting %q for guild %d: %w", key, guildID, err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
