package service

import (
	"context"
	"fmt"
	"time"

	"ticketbot/events"
	"ticketbot/models"

	log "github.com/sirupsen/logrus"
)

// adminService implements the AdminService interface
type adminService struct {
	uowFactory   UnitOfWorkFactory
	cache        *Cache[int64, models.AdminStatus]
	storeTimeout time.Duration
}

// NewAdminService creates a new admin service with an expiring cache in
// front of the store
func NewAdminService(uowFactory UnitOfWorkFactory, cacheTTL, storeTimeout time.Duration) AdminService {
	return &adminService{
		uowFactory:   uowFactory,
		cache:        NewCache[int64, models.AdminStatus](cacheTTL),
		storeTimeout: storeTimeout,
	}
}

// IsGlobalAdmin reports whether the user is an active global admin.
// Negative results are cached with the same TTL as positive ones.
func (s *adminService) IsGlobalAdmin(ctx context.Context, userID int64) (models.AdminStatus, error) {
	if status, ok := s.cache.Get(userID); ok {
		return status, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return models.AdminStatus{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	record, err := uow.AdminRepository().GetByUserID(ctx, userID)
	if err != nil {
		return models.AdminStatus{}, fmt.Errorf("failed to look up admin record for user %d: %w", userID, err)
	}

	status := models.AdminStatus{}
	if record != nil && record.IsActive {
		status = models.AdminStatus{IsAdmin: true, Level: record.Level}
	}

	s.cache.Set(userID, status)
	return status, nil
}

// Grant upserts an active admin record, records the grant in the
// activity log, and invalidates the user's cache entry so the next
// check re-queries the store.
func (s *adminService) Grant(ctx context.Context, userID int64, username string, level int, grantedBy int64) error {
	if level < models.AdminLevelMin || level > models.AdminLevelMax {
		return fmt.Errorf("admin level %d out of range [%d, %d]", level, models.AdminLevelMin, models.AdminLevelMax)
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	record := &models.AdminRecord{
		UserID:    userID,
		Username:  username,
		Level:     level,
		GrantedBy: grantedBy,
		IsActive:  true,
	}
	if err := uow.AdminRepository().Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to upsert admin record for user %d: %w", userID, err)
	}

	if err := uow.ActivityLogRepository().Record(ctx, &models.ActivityLogEntry{
		ActorID:  grantedBy,
		Action:   models.ActivityAdminGranted,
		TargetID: userID,
	}); err != nil {
		return fmt.Errorf("failed to record admin grant: %w", err)
	}

	uow.EventBus().Publish(events.AdminRosterChangedEvent{
		UserID:  userID,
		ActorID: grantedBy,
		Granted: true,
		Level:   level,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.cache.Invalidate(userID)

	log.WithFields(log.Fields{
		"userId":    userID,
		"level":     level,
		"grantedBy": grantedBy,
	}).Info("Global admin granted")

	return nil
}

// Revoke deactivates an admin record and invalidates the cache entry.
// Revoking a user with no record is a no-op success.
func (s *adminService) Revoke(ctx context.Context, actorID, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	affected, err := uow.AdminRepository().Deactivate(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate admin record for user %d: %w", userID, err)
	}

	if affected > 0 {
		if err := uow.ActivityLogRepository().Record(ctx, &models.ActivityLogEntry{
			ActorID:  actorID,
			Action:   models.ActivityAdminRevoked,
			TargetID: userID,
		}); err != nil {
			return fmt.Errorf("failed to record admin revoke: %w", err)
		}

		uow.EventBus().Publish(events.AdminRosterChangedEvent{
			UserID:  userID,
			ActorID: actorID,
			Granted: false,
		})
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.cache.Invalidate(userID)

	log.WithFields(log.Fields{
		"userId":  userID,
		"actorId": actorID,
	}).Info("Global admin revoked")

	return nil
}
