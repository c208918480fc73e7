package repository

import (
	"context"
	"testing"

	"ticketbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandPermissionRepository_GetByGuildAndRoles(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewCommandPermissionRepository(testDB.DB)
	ctx := context.Background()

	t.Run("empty role list short-circuits", func(t *testing.T) {
		rules, err := repo.GetByGuildAndRoles(ctx, 100, nil)
		require.NoError(t, err)
		assert.Nil(t, rules)
	})

	t.Run("returns only rules for the requested roles", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, testutil.CreateTestPermissionRule(100, 5, []string{"ticket"}, nil)))
		require.NoError(t, repo.Upsert(ctx, testutil.CreateTestPermissionRule(100, 6, nil, []string{"stats"})))
		require.NoError(t, repo.Upsert(ctx, testutil.CreateTestPermissionRule(100, 7, []string{"embed"}, nil)))

		rules, err := repo.GetByGuildAndRoles(ctx, 100, []int64{5, 6})
		require.NoError(t, err)
		require.Len(t, rules, 2)

		byRole := make(map[int64]bool)
		for _, rule := range rules {
			byRole[rule.RoleID] = true
		}
		assert.True(t, byRole[5])
		assert.True(t, byRole[6])
	})

	t.Run("does not leak rules across guilds", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, testutil.CreateTestPermissionRule(200, 5, []string{"config"}, nil)))

		rules, err := repo.GetByGuildAndRoles(ctx, 300, []int64{5})
		require.NoError(t, err)
		assert.Empty(t, rules)
	})
}

func TestCommandPermissionRepository_Upsert(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewCommandPermissionRepository(testDB.DB)
	ctx := context.Background()

	t.Run("replaces the lists for an existing pair", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, testutil.CreateTestPermissionRule(100, 5, []string{"ticket"}, nil)))
		require.NoError(t, repo.Upsert(ctx, testutil.CreateTestPermissionRule(100, 5, nil, []string{"ticket"})))

		rules, err := repo.GetByGuildAndRoles(ctx, 100, []int64{5})
		require.NoError(t, err)
		require.Len(t, rules, 1)

		assert.Empty(t, rules[0].AllowedCommands)
		assert.True(t, rules[0].Denies("ticket"))
	})

	t.Run("fills timestamps", func(t *testing.T) {
		rule := testutil.CreateTestPermissionRule(100, 8, []string{"stats"}, nil)
		require.NoError(t, repo.Upsert(ctx, rule))

		assert.False(t, rule.CreatedAt.IsZero())
		assert.False(t, rule.UpdatedAt.IsZero())
	})
}

func TestCommandPermissionRepository_Delete(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewCommandPermissionRepository(testDB.DB)
	ctx := context.Background()

	t.Run("removes the rule", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, testutil.CreateTestPermissionRule(100, 5, []string{"ticket"}, nil)))
		require.NoError(t, repo.Delete(ctx, 100, 5))

		rules, err := repo.GetByGuildAndRoles(ctx, 100, []int64{5})
		require.NoError(t, err)
		assert.Empty(t, rules)
	})

	t.Run("deleting a missing rule is not an error", func(t *testing.T) {
		assert.NoError(t, repo.Delete(ctx, 100, 999))
	})
}
