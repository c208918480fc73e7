package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"ticketbot/events"
	"ticketbot/models"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRegistrar is a mock implementation of CommandRegistrar
type MockRegistrar struct {
	mock.Mock
}

func (m *MockRegistrar) OverwriteGuildCommands(guildID string, commands []*discordgo.ApplicationCommand) error {
	args := m.Called(guildID, commands)
	return args.Error(0)
}

// MockFeatureService is a mock implementation of service.FeatureService
type MockFeatureService struct {
	mock.Mock
}

func (m *MockFeatureService) GetEnabledFeatures(ctx context.Context, guildID int64) models.FeatureSet {
	args := m.Called(ctx, guildID)
	return args.Get(0).(models.FeatureSet)
}

func (m *MockFeatureService) IsFeatureEnabled(ctx context.Context, guildID int64, feature models.FeatureName) bool {
	args := m.Called(ctx, guildID, feature)
	return args.Bool(0)
}

func (m *MockFeatureService) UpdateFeatures(ctx context.Context, guildID int64, actorID int64, patch map[models.FeatureName]bool) (models.FeatureSet, error) {
	args := m.Called(ctx, guildID, actorID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.FeatureSet), args.Error(1)
}

// newTestSynchronizer builds a synchronizer with retries disabled so
// failure tests do not sit in backoff sleeps
func newTestSynchronizer(registrar CommandRegistrar, featureService *MockFeatureService) *CatalogSynchronizer {
	s := NewCatalogSynchronizer(registrar, featureService)
	s.maxRetries = 0
	return s
}

func TestResync_PublishesFilteredCatalog(t *testing.T) {
	registrar := new(MockRegistrar)
	featureService := new(MockFeatureService)
	sync := newTestSynchronizer(registrar, featureService)

	featureService.On("GetEnabledFeatures", mock.Anything, int64(100)).
		Return(models.NewFeatureSet(models.FeatureTickets))
	registrar.On("OverwriteGuildCommands", "100", mock.MatchedBy(func(commands []*discordgo.ApplicationCommand) bool {
		names := make(map[string]bool)
		for _, cmd := range commands {
			names[cmd.Name] = true
		}
		return names["ticket"] && !names["stats"] && names["help"]
	})).Return(nil)

	err := sync.Resync(context.Background(), 100)

	require.NoError(t, err)
	registrar.AssertExpectations(t)
}

func TestResyncWithFeatures_SkipsResolverRead(t *testing.T) {
	registrar := new(MockRegistrar)
	featureService := new(MockFeatureService)
	sync := newTestSynchronizer(registrar, featureService)

	registrar.On("OverwriteGuildCommands", "100", mock.Anything).Return(nil)

	err := sync.ResyncWithFeatures(context.Background(), 100, models.NewFeatureSet(models.FeatureStatistics))

	require.NoError(t, err)
	featureService.AssertNotCalled(t, "GetEnabledFeatures")
}

func TestResync_PublishFailureIsReturnedNotPanicked(t *testing.T) {
	registrar := new(MockRegistrar)
	featureService := new(MockFeatureService)
	sync := newTestSynchronizer(registrar, featureService)

	featureService.On("GetEnabledFeatures", mock.Anything, int64(100)).
		Return(models.NewFeatureSet())
	registrar.On("OverwriteGuildCommands", "100", mock.Anything).
		Return(errors.New("rate limited"))

	err := sync.Resync(context.Background(), 100)

	assert.Error(t, err)
}

func TestSubscribeToFeatureChanges_ResyncsWithTheEventSet(t *testing.T) {
	registrar := new(MockRegistrar)
	featureService := new(MockFeatureService)
	sync := newTestSynchronizer(registrar, featureService)

	done := make(chan struct{})
	registrar.On("OverwriteGuildCommands", "100", mock.MatchedBy(func(commands []*discordgo.ApplicationCommand) bool {
		names := make(map[string]bool)
		for _, cmd := range commands {
			names[cmd.Name] = true
		}
		return names["webhook"] && !names["ticket"]
	})).Run(func(args mock.Arguments) {
		close(done)
	}).Return(nil)

	bus := events.NewBus()
	sync.SubscribeToFeatureChanges(bus)

	bus.Emit(context.Background(), events.FeaturesChangedEvent{
		GuildID: 100,
		Enabled: models.NewFeatureSet(models.FeatureWebhooks),
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for catalog resync")
	}

	// The enabled set carried on the event is authoritative; no separate
	// resolver read happens
	featureService.AssertNotCalled(t, "GetEnabledFeatures")
	registrar.AssertExpectations(t)
}
