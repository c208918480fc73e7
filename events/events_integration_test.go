package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"ticketbot/models"

	"github.com/stretchr/testify/assert"
)

// TestEventDeliveryIntegration tests the complete event flow from TransactionalBus to main Bus
func TestEventDeliveryIntegration(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan FeaturesChangedEvent, 1)
	var wg sync.WaitGroup
	wg.Add(1)

	mainBus.Subscribe(EventTypeFeaturesChanged, func(ctx context.Context, event Event) {
		defer wg.Done()
		if changedEvent, ok := event.(FeaturesChangedEvent); ok {
			select {
			case eventReceived <- changedEvent:
			case <-time.After(1 * time.Second):
				t.Error("Timeout sending event to channel")
			}
		} else {
			t.Errorf("Expected FeaturesChangedEvent, got %T", event)
		}
	})

	testEvent := FeaturesChangedEvent{
		GuildID: 789,
		Enabled: models.NewFeatureSet(models.FeatureTickets, models.FeatureStatistics),
	}

	// Publish event to transactional bus (simulating service layer)
	transactionalBus.Publish(testEvent)

	// Flush events (simulating successful transaction commit)
	ctx := context.Background()
	err := transactionalBus.Flush(ctx)
	assert.NoError(t, err)

	wg.Wait()

	select {
	case receivedEvent := <-eventReceived:
		assert.Equal(t, testEvent.GuildID, receivedEvent.GuildID)
		assert.Equal(t, testEvent.Enabled.Names(), receivedEvent.Enabled.Names())
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not received within timeout")
	}
}

// TestMultipleEventsDelivery tests delivering multiple events in sequence
func TestMultipleEventsDelivery(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventsReceived := make(chan AdminRosterChangedEvent, 3)
	var wg sync.WaitGroup
	wg.Add(3)

	mainBus.Subscribe(EventTypeAdminRosterChanged, func(ctx context.Context, event Event) {
		defer wg.Done()
		if rosterEvent, ok := event.(AdminRosterChangedEvent); ok {
			eventsReceived <- rosterEvent
		}
	})

	pending := []AdminRosterChangedEvent{
		{UserID: 1, ActorID: 100, Granted: true, Level: models.AdminLevelSupport},
		{UserID: 2, ActorID: 100, Granted: true, Level: models.AdminLevelManager},
		{UserID: 3, ActorID: 100, Granted: false},
	}

	for _, event := range pending {
		transactionalBus.Publish(event)
	}

	ctx := context.Background()
	err := transactionalBus.Flush(ctx)
	assert.NoError(t, err)

	wg.Wait()

	receivedEvents := make([]AdminRosterChangedEvent, 0, 3)
	for i := 0; i < 3; i++ {
		select {
		case event := <-eventsReceived:
			receivedEvents = append(receivedEvents, event)
		case <-time.After(2 * time.Second):
			t.Fatalf("Only received %d out of 3 events", len(receivedEvents))
		}
	}

	assert.Len(t, receivedEvents, 3)

	// Handlers run concurrently, so delivery order may vary
	userIDs := make(map[int64]bool)
	for _, received := range receivedEvents {
		userIDs[received.UserID] = true
	}

	assert.True(t, userIDs[1])
	assert.True(t, userIDs[2])
	assert.True(t, userIDs[3])
}

// TestTransactionalBusDiscard tests that discarded events are not delivered
func TestTransactionalBusDiscard(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan bool, 1)

	mainBus.Subscribe(EventTypeFeaturesChanged, func(ctx context.Context, event Event) {
		eventReceived <- true
	})

	transactionalBus.Publish(FeaturesChangedEvent{
		GuildID: 789,
		Enabled: models.NewFeatureSet(models.FeatureTickets),
	})

	// Discard instead of flush (simulating transaction rollback)
	transactionalBus.Discard()

	select {
	case <-eventReceived:
		t.Fatal("Event was received despite being discarded")
	case <-time.After(100 * time.Millisecond):
		// Expected - no event should be received
	}
}
