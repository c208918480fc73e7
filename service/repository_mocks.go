package service

import (
	"context"

	"ticketbot/events"
	"ticketbot/models"

	"github.com/stretchr/testify/mock"
)

// MockGuildConfigRepository is a mock implementation of GuildConfigRepository
type MockGuildConfigRepository struct {
	mock.Mock
}

func (m *MockGuildConfigRepository) GetOrCreate(ctx context.Context, guildID int64) (*models.GuildConfig, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildConfig), args.Error(1)
}

func (m *MockGuildConfigRepository) UpdateFeatures(ctx context.Context, guildID int64, enabled models.FeatureSet) error {
	args := m.Called(ctx, guildID, enabled)
	return args.Error(0)
}

func (m *MockGuildConfigRepository) SetSetting(ctx context.Context, guildID int64, key, value string) error {
	args := m.Called(ctx, guildID, key, value)
	return args.Error(0)
}

// MockAdminRepository is a mock implementation of AdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) GetByUserID(ctx context.Context, userID int64) (*models.AdminRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminRecord), args.Error(1)
}

func (m *MockAdminRepository) Upsert(ctx context.Context, record *models.AdminRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAdminRepository) Deactivate(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCommandPermissionRepository is a mock implementation of CommandPermissionRepository
type MockCommandPermissionRepository struct {
	mock.Mock
}

func (m *MockCommandPermissionRepository) GetByGuildAndRoles(ctx context.Context, guildID int64, roleIDs []int64) ([]*models.CommandPermissionRule, error) {
	args := m.Called(ctx, guildID, roleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CommandPermissionRule), args.Error(1)
}

func (m *MockCommandPermissionRepository) Upsert(ctx context.Context, rule *models.CommandPermissionRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockCommandPermissionRepository) Delete(ctx context.Context, guildID, roleID int64) error {
	args := m.Called(ctx, guildID, roleID)
	return args.Error(0)
}

// MockActivityLogRepository is a mock implementation of ActivityLogRepository
type MockActivityLogRepository struct {
	mock.Mock
}

func (m *MockActivityLogRepository) Record(ctx context.Context, entry *models.ActivityLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockAutoResponseRepository is a mock implementation of AutoResponseRepository
type MockAutoResponseRepository struct {
	mock.Mock
}

func (m *MockAutoResponseRepository) Create(ctx context.Context, response *models.AutoResponse) (*models.AutoResponse, error) {
	args := m.Called(ctx, response)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AutoResponse), args.Error(1)
}

func (m *MockAutoResponseRepository) GetByGuild(ctx context.Context, guildID int64) ([]*models.AutoResponse, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AutoResponse), args.Error(1)
}

func (m *MockAutoResponseRepository) DeleteByTrigger(ctx context.Context, guildID int64, trigger string) (int64, error) {
	args := m.Called(ctx, guildID, trigger)
	return args.Get(0).(int64), args.Error(1)
}

// RecordingPublisher captures events published inside a unit of work
type RecordingPublisher struct {
	Events []events.Event
}

func (p *RecordingPublisher) Publish(event events.Event) {
	p.Events = append(p.Events, event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repository
// accessors return the mocks wired via SetRepositories without going
// through expectation matching.
type MockUnitOfWork struct {
	mock.Mock

	guildConfigRepo       GuildConfigRepository
	adminRepo             AdminRepository
	commandPermissionRepo CommandPermissionRepository
	activityLogRepo       ActivityLogRepository
	autoResponseRepo      AutoResponseRepository
	publisher             *RecordingPublisher
}

// SetRepositories wires the repository mocks this unit of work hands out
func (m *MockUnitOfWork) SetRepositories(guildConfig GuildConfigRepository, admin AdminRepository, commandPermission CommandPermissionRepository, activityLog ActivityLogRepository, autoResponse AutoResponseRepository) {
	m.guildConfigRepo = guildConfig
	m.adminRepo = admin
	m.commandPermissionRepo = commandPermission
	m.activityLogRepo = activityLog
	m.autoResponseRepo = autoResponse
	m.publisher = &RecordingPublisher{}
}

// PublishedEvents returns the events published through this unit of work
func (m *MockUnitOfWork) PublishedEvents() []events.Event {
	if m.publisher == nil {
		return nil
	}
	return m.publisher.Events
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) GuildConfigRepository() GuildConfigRepository {
	return m.guildConfigRepo
}

func (m *MockUnitOfWork) AdminRepository() AdminRepository {
	return m.adminRepo
}

func (m *MockUnitOfWork) CommandPermissionRepository() CommandPermissionRepository {
	return m.commandPermissionRepo
}

func (m *MockUnitOfWork) ActivityLogRepository() ActivityLogRepository {
	return m.activityLogRepo
}

func (m *MockUnitOfWork) AutoResponseRepository() AutoResponseRepository {
	return m.autoResponseRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.publisher
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
