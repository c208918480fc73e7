package service

import (
	"context"
	"testing"
	"time"

	"ticketbot/events"
	"ticketbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAutoResponseFixture() (AutoResponseService, *MockUnitOfWorkFactory, *MockUnitOfWork, *MockAutoResponseRepository) {
	mockFactory := new(MockUnitOfWorkFactory)
	mockUoW := new(MockUnitOfWork)
	mockRepo := new(MockAutoResponseRepository)
	mockUoW.SetRepositories(nil, nil, nil, nil, mockRepo)

	svc := NewAutoResponseService(mockFactory, time.Second)
	return svc, mockFactory, mockUoW, mockRepo
}

func TestAutoResponseService_Add(t *testing.T) {
	svc, mockFactory, mockUoW, mockRepo := newAutoResponseFixture()
	ctx := context.Background()

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", mock.Anything).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.AutoResponse) bool {
		return r.GuildID == 100 && r.Trigger == "hello" && r.CreatedBy == 7
	})).Return(&models.AutoResponse{ID: 1, GuildID: 100, Trigger: "hello", Response: "Hi!"}, nil)

	created, err := svc.Add(ctx, 100, "  hello  ", "Hi!", false, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	published := mockUoW.PublishedEvents()
	require.Len(t, published, 1)
	changed, ok := published[0].(events.AutoResponseChangedEvent)
	require.True(t, ok)
	assert.Equal(t, "hello", changed.Trigger)
	assert.False(t, changed.Removed)
}

func TestAutoResponseService_Add_RejectsBlankInput(t *testing.T) {
	svc, mockFactory, _, _ := newAutoResponseFixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, 100, "   ", "Hi!", false, 7)
	require.Error(t, err)

	_, err = svc.Add(ctx, 100, "hello", "   ", false, 7)
	require.Error(t, err)

	mockFactory.AssertNotCalled(t, "Create")
}

func TestAutoResponseService_Remove(t *testing.T) {
	svc, mockFactory, mockUoW, mockRepo := newAutoResponseFixture()
	ctx := context.Background()

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", mock.Anything).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockRepo.On("DeleteByTrigger", mock.Anything, int64(100), "hello").Return(int64(1), nil)

	removed, err := svc.Remove(ctx, 100, "hello")

	require.NoError(t, err)
	assert.True(t, removed)

	published := mockUoW.PublishedEvents()
	require.Len(t, published, 1)
	changed := published[0].(events.AutoResponseChangedEvent)
	assert.True(t, changed.Removed)
}

func TestAutoResponseService_Remove_MissingTrigger(t *testing.T) {
	svc, mockFactory, mockUoW, mockRepo := newAutoResponseFixture()
	ctx := context.Background()

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", mock.Anything).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockRepo.On("DeleteByTrigger", mock.Anything, int64(100), "nothing").Return(int64(0), nil)

	removed, err := svc.Remove(ctx, 100, "nothing")

	require.NoError(t, err)
	assert.False(t, removed)
	assert.Empty(t, mockUoW.PublishedEvents())
}
