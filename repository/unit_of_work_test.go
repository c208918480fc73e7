package repository

import (
	"context"
	"testing"
	"time"

	"ticketbot/events"
	"ticketbot/models"
	"ticketbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitPersistsAndFlushesEvents(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeFeaturesChanged, func(ctx context.Context, event events.Event) {
		received <- event
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)
	ctx := context.Background()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.GuildConfigRepository().GetOrCreate(ctx, 100)
	require.NoError(t, err)

	enabled := models.NewFeatureSet(models.FeatureTickets)
	require.NoError(t, uow.GuildConfigRepository().UpdateFeatures(ctx, 100, enabled))
	uow.EventBus().Publish(events.FeaturesChangedEvent{GuildID: 100, Enabled: enabled})

	require.NoError(t, uow.Commit())

	select {
	case event := <-received:
		changed, ok := event.(events.FeaturesChangedEvent)
		require.True(t, ok)
		assert.Equal(t, int64(100), changed.GuildID)
	case <-time.After(2 * time.Second):
		t.Fatal("expected event after commit")
	}

	// The write is visible outside the transaction
	config, err := NewGuildConfigRepository(testDB.DB).GetOrCreate(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"tickets"}, config.EnabledFeatures.Names())
}

func TestUnitOfWork_RollbackDiscardsWritesAndEvents(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeFeaturesChanged, func(ctx context.Context, event events.Event) {
		received <- event
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)
	ctx := context.Background()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.GuildConfigRepository().GetOrCreate(ctx, 100)
	require.NoError(t, err)
	require.NoError(t, uow.GuildConfigRepository().UpdateFeatures(ctx, 100, models.NewFeatureSet()))
	uow.EventBus().Publish(events.FeaturesChangedEvent{GuildID: 100, Enabled: models.NewFeatureSet()})

	require.NoError(t, uow.Rollback())

	select {
	case <-received:
		t.Fatal("event must not fire after rollback")
	case <-time.After(200 * time.Millisecond):
	}

	// The guild row was never created
	uow2 := factory.Create()
	require.NoError(t, uow2.Begin(ctx))
	defer uow2.Rollback()

	config, err := uow2.GuildConfigRepository().GetOrCreate(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFeatures().Names(), config.EnabledFeatures.Names())
}

func TestUnitOfWork_AccessBeforeBeginPanics(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	uow := factory.Create()

	assert.Panics(t, func() {
		uow.GuildConfigRepository()
	})
}
