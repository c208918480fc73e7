package repository

import (
	"context"
	"testing"

	"ticketbot/models"
	"ticketbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuildConfigRepository_GetOrCreate(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGuildConfigRepository(testDB.DB)
	ctx := context.Background()

	t.Run("creates row with default features on first access", func(t *testing.T) {
		config, err := repo.GetOrCreate(ctx, 100)
		require.NoError(t, err)
		require.NotNil(t, config)

		assert.Equal(t, int64(100), config.GuildID)
		assert.Equal(t, models.DefaultFeatures().Names(), config.EnabledFeatures.Names())
		assert.False(t, config.CreatedAt.IsZero())
	})

	t.Run("returns existing row on subsequent access", func(t *testing.T) {
		first, err := repo.GetOrCreate(ctx, 200)
		require.NoError(t, err)

		err = repo.UpdateFeatures(ctx, 200, models.NewFeatureSet(models.FeatureTickets))
		require.NoError(t, err)

		second, err := repo.GetOrCreate(ctx, 200)
		require.NoError(t, err)

		assert.Equal(t, first.GuildID, second.GuildID)
		assert.Equal(t, []string{"tickets"}, second.EnabledFeatures.Names())
	})
}

func TestGuildConfigRepository_UpdateFeatures(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGuildConfigRepository(testDB.DB)
	ctx := context.Background()

	t.Run("persists the feature set", func(t *testing.T) {
		_, err := repo.GetOrCreate(ctx, 100)
		require.NoError(t, err)

		enabled := models.NewFeatureSet(models.FeatureStatistics, models.FeatureWebhooks)
		err = repo.UpdateFeatures(ctx, 100, enabled)
		require.NoError(t, err)

		config, err := repo.GetOrCreate(ctx, 100)
		require.NoError(t, err)
		assert.True(t, config.EnabledFeatures.Contains(models.FeatureStatistics))
		assert.True(t, config.EnabledFeatures.Contains(models.FeatureWebhooks))
		assert.False(t, config.EnabledFeatures.Contains(models.FeatureTickets))
	})

	t.Run("empty set disables everything", func(t *testing.T) {
		_, err := repo.GetOrCreate(ctx, 200)
		require.NoError(t, err)

		err = repo.UpdateFeatures(ctx, 200, models.NewFeatureSet())
		require.NoError(t, err)

		config, err := repo.GetOrCreate(ctx, 200)
		require.NoError(t, err)
		assert.Empty(t, config.EnabledFeatures)
	})

	t.Run("missing guild is an error", func(t *testing.T) {
		err := repo.UpdateFeatures(ctx, 999999, models.NewFeatureSet(models.FeatureTickets))
		assert.Error(t, err)
	})
}

func TestGuildConfigRepository_SetSetting(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGuildConfigRepository(testDB.DB)
	ctx := context.Background()

	t.Run("writes and overwrites a key", func(t *testing.T) {
		_, err := repo.GetOrCreate(ctx, 100)
		require.NoError(t, err)

		err = repo.SetSetting(ctx, 100, "autorole_role_id", "12345")
		require.NoError(t, err)
		err = repo.SetSetting(ctx, 100, "webhook_url", "https://example.com/hook")
		require.NoError(t, err)
		err = repo.SetSetting(ctx, 100, "autorole_role_id", "67890")
		require.NoError(t, err)

		config, err := repo.GetOrCreate(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, "67890", config.Settings["autorole_role_id"])
		assert.Equal(t, "https://example.com/hook", config.Settings["webhook_url"])
	})

	t.Run("missing guild is an error", func(t *testing.T) {
		err := repo.SetSetting(ctx, 999999, "key", "value")
		assert.Error(t, err)
	})
}
