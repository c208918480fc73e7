package repository

import (
	"context"
	"testing"

	"ticketbot/models"
	"ticketbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityLogRepository_Record(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewActivityLogRepository(testDB.DB)
	ctx := context.Background()

	t.Run("assigns id and timestamp", func(t *testing.T) {
		entry := &models.ActivityLogEntry{
			ActorID:  7,
			Action:   models.ActivityAdminGranted,
			TargetID: 42,
		}

		require.NoError(t, repo.Record(ctx, entry))

		assert.NotZero(t, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("accepts a guild-scoped entry", func(t *testing.T) {
		guildID := int64(100)
		entry := &models.ActivityLogEntry{
			ActorID:  7,
			Action:   models.ActivityFeaturesUpdated,
			TargetID: 100,
			GuildID:  &guildID,
		}

		require.NoError(t, repo.Record(ctx, entry))
		assert.NotZero(t, entry.ID)
	})
}
