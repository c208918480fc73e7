package repository

import (
	"context"
	"testing"

	"ticketbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoResponseRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAutoResponseRepository(testDB.DB)
	ctx := context.Background()

	t.Run("inserts and assigns an id", func(t *testing.T) {
		created, err := repo.Create(ctx, testutil.CreateTestAutoResponse(100, "hello", "Hello there!"))
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.NotZero(t, created.ID)
		assert.Equal(t, "hello", created.Trigger)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("same trigger overwrites the response", func(t *testing.T) {
		_, err := repo.Create(ctx, testutil.CreateTestAutoResponse(100, "rules", "Read the rules."))
		require.NoError(t, err)

		updated, err := repo.Create(ctx, testutil.CreateTestAutoResponse(100, "rules", "See #rules."))
		require.NoError(t, err)

		responses, err := repo.GetByGuild(ctx, 100)
		require.NoError(t, err)

		var found int
		for _, r := range responses {
			if r.Trigger == "rules" {
				found++
				assert.Equal(t, "See #rules.", r.Response)
			}
		}
		assert.Equal(t, 1, found)
		assert.Equal(t, "See #rules.", updated.Response)
	})

	t.Run("same trigger in another guild is a separate row", func(t *testing.T) {
		_, err := repo.Create(ctx, testutil.CreateTestAutoResponse(200, "hello", "Hi from guild 200"))
		require.NoError(t, err)

		responses, err := repo.GetByGuild(ctx, 200)
		require.NoError(t, err)
		require.Len(t, responses, 1)
		assert.Equal(t, "Hi from guild 200", responses[0].Response)
	})
}

func TestAutoResponseRepository_GetByGuild(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAutoResponseRepository(testDB.DB)
	ctx := context.Background()

	t.Run("empty guild returns no responses", func(t *testing.T) {
		responses, err := repo.GetByGuild(ctx, 999999)
		require.NoError(t, err)
		assert.Empty(t, responses)
	})

	t.Run("orders by trigger", func(t *testing.T) {
		for _, trigger := range []string{"zebra", "apple", "mango"} {
			_, err := repo.Create(ctx, testutil.CreateTestAutoResponse(100, trigger, "response"))
			require.NoError(t, err)
		}

		responses, err := repo.GetByGuild(ctx, 100)
		require.NoError(t, err)
		require.Len(t, responses, 3)

		assert.Equal(t, "apple", responses[0].Trigger)
		assert.Equal(t, "mango", responses[1].Trigger)
		assert.Equal(t, "zebra", responses[2].Trigger)
	})
}

func TestAutoResponseRepository_DeleteByTrigger(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAutoResponseRepository(testDB.DB)
	ctx := context.Background()

	t.Run("removes the matching trigger", func(t *testing.T) {
		_, err := repo.Create(ctx, testutil.CreateTestAutoResponse(100, "hello", "Hello!"))
		require.NoError(t, err)

		affected, err := repo.DeleteByTrigger(ctx, 100, "hello")
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		responses, err := repo.GetByGuild(ctx, 100)
		require.NoError(t, err)
		assert.Empty(t, responses)
	})

	t.Run("missing trigger affects zero rows", func(t *testing.T) {
		affected, err := repo.DeleteByTrigger(ctx, 100, "nothing")
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})
}
