package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ticketbot/events"
	"ticketbot/models"
)

// autoResponseService implements the AutoResponseService interface
type autoResponseService struct {
	uowFactory   UnitOfWorkFactory
	storeTimeout time.Duration
}

// NewAutoResponseService creates a new auto-response service
func NewAutoResponseService(uowFactory UnitOfWorkFactory, storeTimeout time.Duration) AutoResponseService {
	return &autoResponseService{
		uowFactory:   uowFactory,
		storeTimeout: storeTimeout,
	}
}

// Add creates a new auto-response for the guild
func (s *autoResponseService) Add(ctx context.Context, guildID int64, trigger, response string, exactMatch bool, createdBy int64) (*models.AutoResponse, error) {
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		return nil, fmt.Errorf("auto-response trigger cannot be empty")
	}
	if strings.TrimSpace(response) == "" {
		return nil, fmt.Errorf("auto-response message cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	created, err := uow.AutoResponseRepository().Create(ctx, &models.AutoResponse{
		GuildID:    guildID,
		Trigger:    trigger,
		Response:   response,
		ExactMatch: exactMatch,
		CreatedBy:  createdBy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create auto-response for guild %d: %w", guildID, err)
	}

	uow.EventBus().Publish(events.AutoResponseChangedEvent{
		GuildID: guildID,
		Trigger: trigger,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return created, nil
}

// List returns all auto-responses for the guild
func (s *autoResponseService) List(ctx context.Context, guildID int64) ([]*models.AutoResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	responses, err := uow.AutoResponseRepository().GetByGuild(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list auto-responses for guild %d: %w", guildID, err)
	}

	return responses, nil
}

// Remove deletes the auto-response with the given trigger. Returns false
// when no matching trigger existed.
func (s *autoResponseService) Remove(ctx context.Context, guildID int64, trigger string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	affected, err := uow.AutoResponseRepository().DeleteByTrigger(ctx, guildID, trigger)
	if err != nil {
		return false, fmt.Errorf("failed to delete auto-response for guild %d: %w", guildID, err)
	}

	if affected > 0 {
		uow.EventBus().Publish(events.AutoResponseChangedEvent{
			GuildID: guildID,
			Trigger: trigger,
			Removed: true,
		})
	}

	if err := uow.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return affected > 0, nil
}
