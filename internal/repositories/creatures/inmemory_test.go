package creatures_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/combat-tracker/internal/domain/combat"
	trackererr "github.com/KirkDiggler/combat-tracker/internal/errors"
	"github.com/KirkDiggler/combat-tracker/internal/repositories/creatures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepository_CreateAndGet(t *testing.T) {
	repo := creatures.NewInMemoryRepository()
	ctx := context.Background()

	goblin := combat.NewCreature("id-1", "Goblin", 10)
	require.NoError(t, repo.Create(ctx, goblin))

	t.Run("get returns the stored creature", func(t *testing.T) {
		found, err := repo.Get(ctx, "Goblin")
		require.NoError(t, err)
		assert.Equal(t, "Goblin", found.Name)
		assert.Equal(t, 10, found.MaxHP)
	})

	t.Run("lookup is case-sensitive", func(t *testing.T) {
		_, err := repo.Get(ctx, "goblin")
		assert.True(t, trackererr.IsNotFound(err))
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		err := repo.Create(ctx, combat.NewCreature("id-2", "Goblin", 20))
		assert.True(t, trackererr.IsAlreadyExists(err))
	})

	t.Run("nil creature rejected", func(t *testing.T) {
		err := repo.Create(ctx, nil)
		assert.True(t, trackererr.IsInvalidArgument(err))
	})
}

func TestInMemoryRepository_ListOrder(t *testing.T) {
	repo := creatures.NewInMemoryRepository()
	ctx := context.Background()

	for _, name := range []string{"Goblin", "Aragorn", "Zombie"} {
		require.NoError(t, repo.Create(ctx, combat.NewCreature("id-"+name, name, 10)))
	}

	t.Run("list preserves insertion order", func(t *testing.T) {
		listed, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, listed, 3)
		assert.Equal(t, "Goblin", listed[0].Name)
		assert.Equal(t, "Aragorn", listed[1].Name)
		assert.Equal(t, "Zombie", listed[2].Name)
	})

	t.Run("delete keeps remaining order", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "Aragorn"))

		listed, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, listed, 2)
		assert.Equal(t, "Goblin", listed[0].Name)
		assert.Equal(t, "Zombie", listed[1].Name)
	})

	t.Run("delete of missing creature reports not found", func(t *testing.T) {
		err := repo.Delete(ctx, "Aragorn")
		assert.True(t, trackererr.IsNotFound(err))
	})
}

func TestInMemoryRepository_Update(t *testing.T) {
	repo := creatures.NewInMemoryRepository()
	ctx := context.Background()

	goblin := combat.NewCreature("id-1", "Goblin", 10)
	require.NoError(t, repo.Create(ctx, goblin))

	t.Run("update persists changes", func(t *testing.T) {
		fetched, err := repo.Get(ctx, "Goblin")
		require.NoError(t, err)

		fetched.ChangeHP(4, false)
		require.NoError(t, repo.Update(ctx, fetched))

		refetched, err := repo.Get(ctx, "Goblin")
		require.NoError(t, err)
		assert.Equal(t, 6, refetched.CurrentHP)
	})

	t.Run("update of missing creature reports not found", func(t *testing.T) {
		err := repo.Update(ctx, combat.NewCreature("id-9", "Dragon", 100))
		assert.True(t, trackererr.IsNotFound(err))
	})
}

func TestInMemoryRepository_CopyIsolation(t *testing.T) {
	repo := creatures.NewInMemoryRepository()
	ctx := context.Background()

	goblin := combat.NewCreature("id-1", "Goblin", 10)
	goblin.ApplyEffect(combat.NewStatusEffect("Poisoned", 3, "ongoing"))
	require.NoError(t, repo.Create(ctx, goblin))

	// Mutating a fetched copy must not leak into the store
	fetched, err := repo.Get(ctx, "Goblin")
	require.NoError(t, err)
	fetched.CurrentHP = -5
	fetched.Effects[0].RoundsRemaining = 99

	stored, err := repo.Get(ctx, "Goblin")
	require.NoError(t, err)
	assert.Equal(t, 10, stored.CurrentHP)
	assert.Equal(t, 3, stored.Effects[0].RoundsRemaining)
}
