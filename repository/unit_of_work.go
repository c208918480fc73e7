package repository

import (
	"context"
	"fmt"

	"ticketbot/database"
	"ticketbot/events"
	"ticketbot/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus

	guildConfigRepo       service.GuildConfigRepository
	adminRepo             service.AdminRepository
	commandPermissionRepo service.CommandPermissionRepository
	activityLogRepo       service.ActivityLogRepository
	autoResponseRepo      service.AutoResponseRepository
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.guildConfigRepo = newGuildConfigRepositoryWithTx(tx)
	u.adminRepo = newAdminRepositoryWithTx(tx)
	u.commandPermissionRepo = newCommandPermissionRepositoryWithTx(tx)
	u.activityLogRepo = newActivityLogRepositoryWithTx(tx)
	u.autoResponseRepo = newAutoResponseRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction and discards pending events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// GuildConfigRepository returns the guild config repository for this unit of work
func (u *unitOfWork) GuildConfigRepository() service.GuildConfigRepository {
	if u.guildConfigRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.guildConfigRepo
}

// AdminRepository returns the admin repository for this unit of work
func (u *unitOfWork) AdminRepository() service.AdminRepository {
	if u.adminRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.adminRepo
}

// CommandPermissionRepository returns the command permission repository for this unit of work
func (u *unitOfWork) CommandPermissionRepository() service.CommandPermissionRepository {
	if u.commandPermissionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.commandPermissionRepo
}

// ActivityLogRepository returns the activity log repository for this unit of work
func (u *unitOfWork) ActivityLogRepository() service.ActivityLogRepository {
	if u.activityLogRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.activityLogRepo
}

// AutoResponseRepository returns the auto-response repository for this unit of work
func (u *unitOfWork) AutoResponseRepository() service.AutoResponseRepository {
	if u.autoResponseRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.autoResponseRepo
}

// EventBus returns the transactional event publisher for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	return u.transactionalBus
}
