package tracker_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/KirkDiggler/combat-tracker/internal/domain/combat"
	trackererr "github.com/KirkDiggler/combat-tracker/internal/errors"
	"github.com/KirkDiggler/combat-tracker/internal/repositories/creatures"
	mockcreatures "github.com/KirkDiggler/combat-tracker/internal/repositories/creatures/mock"
	"github.com/KirkDiggler/combat-tracker/internal/services/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fixedIDGenerator hands out sequential IDs for deterministic tests
type fixedIDGenerator struct {
	next int
}

func (g *fixedIDGenerator) New() string {
	g.next++
	return fmt.Sprintf("test-id-%d", g.next)
}

func newTestService() tracker.Service {
	return tracker.NewService(&tracker.ServiceConfig{
		Repository:    creatures.NewInMemoryRepository(),
		UUIDGenerator: &fixedIDGenerator{},
	})
}

func TestService_AddCreature(t *testing.T) {
	ctx := context.Background()

	t.Run("creates at full HP", func(t *testing.T) {
		svc := newTestService()

		output, err := svc.AddCreature(ctx, &tracker.AddCreatureInput{Name: "Goblin", MaxHP: 10})
		require.NoError(t, err)
		require.NotNil(t, output.Creature)
		assert.Equal(t, "test-id-1", output.Creature.ID)
		assert.Equal(t, 10, output.Creature.CurrentHP)
		assert.Equal(t, 10, output.Creature.MaxHP)
	})

	t.Run("duplicate name reports already exists without mutation", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.AddCreature(ctx, &tracker.AddCreatureInput{Name: "Goblin", MaxHP: 10})
		require.NoError(t, err)

		_, err = svc.AddCreature(ctx, &tracker.AddCreatureInput{Name: "Goblin", MaxHP: 50})
		assert.True(t, trackererr.IsAlreadyExists(err))

		snapshot, err := svc.GetStatusSnapshot(ctx)
		require.NoError(t, err)
		require.Len(t, snapshot.Creatures, 1)
		assert.Equal(t, 10, snapshot.Creatures[0].MaxHP)
	})

	t.Run("blank and whitespace-only names are silently ignored", func(t *testing.T) {
		svc := newTestService()

		for _, name := range []string{"", "   ", "\t"} {
			output, err := svc.AddCreature(ctx, &tracker.AddCreatureInput{Name: name, MaxHP: 10})
			require.NoError(t, err)
			assert.Nil(t, output.Creature)
		}

		snapshot, err := svc.GetStatusSnapshot(ctx)
		require.NoError(t, err)
		assert.Empty(t, snapshot.Creatures)
	})

	t.Run("name is trimmed before use", func(t *testing.T) {
		svc := newTestService()

		output, err := svc.AddCreature(ctx, &tracker.AddCreatureInput{Name: "  Goblin  ", MaxHP: 10})
		require.NoError(t, err)
		assert.Equal(t, "Goblin", output.Creature.Name)
	})
}

func TestService_RemoveCreature(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.AddCreature(ctx, &tracker.AddCreatureInput{Name: "Goblin", MaxHP: 10})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveCreature(ctx, "Goblin"))

	t.Run("every later operation reports creature not found", func(t *testing.T) {
		assert.True(t, trackererr.IsNotFound(svc.RemoveCreature(ctx, "Goblin")))

		_, err := svc.ModifyHP(ctx, &tracker.ModifyHPInput{CreatureName: "Goblin", Amount: 3})
		assert.True(t, trackererr.IsNotFound(err))

		_, err = svc.ApplyEffect(ctx, &tracker.ApplyEffectInput{
			CreatureName: "Goblin", EffectName: "Poisoned", Duration: 3,
		})
		assert.True(t, trackererr.IsNotFound(err))

		err = svc.RemoveEffect(ctx, &tracker.RemoveEffectInput{
			CreatureName: "Goblin", EffectName: "Poisoned",
		})
		assert.True(t, trackererr.IsNotFound(err))
	})
}

func TestService_ApplyEffect(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.AddCreature(ctx, &tracker.AddCreatureInput{Name: "Goblin", MaxHP: 10})
	require.NoError(t, err)

	t.Run("new timed effect", func(t *testing.T) {
		output, err := svc.ApplyEffect(ctx, &tracker.ApplyEffectInput{
			CreatureName: "Goblin",
			EffectName:   "Poisoned",
			Duration:     3,
			Description:  "saves at disadvantage",
		})
		require.NoError(t, err)
		assert.Equal(t, combat.OutcomeAppliedTimed, output.Outcome)
	})

	t.Run("timed reapply resets the duration", func(t *testing.T) {
		output, err := svc.ApplyEffect(ctx, &tracker.ApplyEffectInput{
			CreatureName: "Goblin",
			EffectName:   "poisoned",
			Duration:     5,
			Description:  "stronger venom",
		})
		require.NoError(t, err)
		assert.Equal(t, combat.OutcomeDurationReset, output.Outcome)
		assert.Equal(t, 5, output.Effect.RoundsRemaining)
	})

	t.Run("untimed reapply only updates notes", func(t *testing.T) {
		output, err := svc.ApplyEffect(ctx, &tracker.ApplyEffectInput{
			CreatureName: "Goblin",
			EffectName:   "Poisoned",
			Duration:     0,
			Description:  "flavor text",
		})
		require.NoError(t, err)
		assert.Equal(t, combat.OutcomeNotesUpdated, output.Outcome)

		snapshot, err := svc.GetStatusSnapshot(ctx)
		require.NoError(t, err)
		require.Len(t, snapshot.Creatures[0].Effects, 1)
		assert.Contains(t, snapshot.Creatures[0].Effects[0], "5 rounds remaining")
		assert.Contains(t, snapshot.Creatures[0].Effects[0], "flavor text")
	})
}

func TestService_RemoveEffect(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.AddCreature(ctx, &tracker.AddCreatureInput{Name: "Goblin", MaxHP: 10})
	require.NoError(t, err)
	_, err = svc.ApplyEffect(ctx, &tracker.ApplyEffectInput{
		CreatureName: "Goblin", EffectName: "Poisoned", Duration: 3,
	})
	require.NoError(t, err)

	t.Run("missing effect reports not found without mutation", func(t *testing.T) {
		err := svc.RemoveEffect(ctx, &tracker.RemoveEffectInput{
			CreatureName: "Goblin", EffectName: "Blessed",
		})
		assert.True(t, trackererr.IsNotFound(err))

		snapshot, err := svc.GetStatusSnapshot(ctx)
		require.NoError(t, err)
		assert.Len(t, snapshot.Creatures[0].Effects, 1)
	})

	t.Run("case-insensitive removal", func(t *testing.T) {
		err := svc.RemoveEffect(ctx, &tracker.RemoveEffectInput{
			CreatureName: "Goblin", EffectName: "POISONED",
		})
		require.NoError(t, err)

		snapshot, err := svc.GetStatusSnapshot(ctx)
		require.NoError(t, err)
		assert.Empty(t, snapshot.Creatures[0].Effects)
	})
}

func TestService_ModifyHP_GoblinScenario(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.AddCreature(ctx, &tracker.AddCreatureInput{Name: "Goblin", MaxHP: 10})
	require.NoError(t, err)

	steps := []struct {
		amount     int
		isHeal     bool
		wantHP     int
		wantStatus combat.CreatureStatus
	}{
		{amount: 4, wantHP: 6, wantStatus: combat.StatusAlive},
		{amount: 3, wantHP: 3, wantStatus: combat.StatusBloodied},
		{amount: 5, wantHP: -2, wantStatus: combat.StatusDefeated},
	}

	for _, step := range steps {
		output, err := svc.ModifyHP(ctx, &tracker.ModifyHPInput{
			CreatureName: "Goblin",
			Amount:       step.amount,
			IsHeal:       step.isHeal,
		})
		require.NoError(t, err)
		assert.Equal(t, step.wantHP, output.CurrentHP)
		assert.Equal(t, step.wantStatus, output.Status)
	}

	t.Run("healing clamps at max HP", func(t *testing.T) {
		output, err := svc.ModifyHP(ctx, &tracker.ModifyHPInput{
			CreatureName: "Goblin",
			Amount:       100,
			IsHeal:       true,
		})
		require.NoError(t, err)
		assert.Equal(t, 10, output.CurrentHP)
		assert.Equal(t, 12, output.Change)
	})
}

func TestService_AdvanceRound(t *testing.T) {
	ctx := context.Background()

	t.Run("round increments even with zero creatures", func(t *testing.T) {
		svc := newTestService()

		output, err := svc.AdvanceRound(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, output.Round)
		assert.Empty(t, output.Expired)

		output, err = svc.AdvanceRound(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, output.Round)
	})

	t.Run("duration-3 effect expires on exactly the third round", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.AddCreature(ctx, &tracker.AddCreatureInput{Name: "Goblin", MaxHP: 10})
		require.NoError(t, err)
		_, err = svc.ApplyEffect(ctx, &tracker.ApplyEffectInput{
			CreatureName: "Goblin", EffectName: "Poisoned", Duration: 3,
		})
		require.NoError(t, err)

		for round := 1; round <= 2; round++ {
			output, err := svc.AdvanceRound(ctx)
			require.NoError(t, err)
			assert.Empty(t, output.Expired, "round %d", round)
		}

		output, err := svc.AdvanceRound(ctx)
		require.NoError(t, err)
		require.Len(t, output.Expired, 1)
		assert.Equal(t, "Goblin", output.Expired[0].CreatureName)
		assert.Equal(t, []string{"Poisoned"}, output.Expired[0].Expired)

		snapshot, err := svc.GetStatusSnapshot(ctx)
		require.NoError(t, err)
		assert.Empty(t, snapshot.Creatures[0].Effects)
	})

	t.Run("tick-downs persist even when nothing expires", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.AddCreature(ctx, &tracker.AddCreatureInput{Name: "Goblin", MaxHP: 10})
		require.NoError(t, err)
		_, err = svc.ApplyEffect(ctx, &tracker.ApplyEffectInput{
			CreatureName: "Goblin", EffectName: "Blinded", Duration: 2,
		})
		require.NoError(t, err)

		output, err := svc.AdvanceRound(ctx)
		require.NoError(t, err)
		assert.Empty(t, output.Expired)

		// A fresh read from the store must see the decrement
		snapshot, err := svc.GetStatusSnapshot(ctx)
		require.NoError(t, err)
		require.Len(t, snapshot.Creatures[0].Effects, 1)
		assert.Contains(t, snapshot.Creatures[0].Effects[0], "1 rounds remaining")

		output, err = svc.AdvanceRound(ctx)
		require.NoError(t, err)
		require.Len(t, output.Expired, 1, "duration-2 effect must expire on exactly the 2nd round")
		assert.Equal(t, []string{"Blinded"}, output.Expired[0].Expired)

		snapshot, err = svc.GetStatusSnapshot(ctx)
		require.NoError(t, err)
		assert.Empty(t, snapshot.Creatures[0].Effects)
	})

	t.Run("permanent and note effects survive ticking untouched", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.AddCreature(ctx, &tracker.AddCreatureInput{Name: "Goblin", MaxHP: 10})
		require.NoError(t, err)

		for _, input := range []*tracker.ApplyEffectInput{
			{CreatureName: "Goblin", EffectName: "Cursed", Duration: -1, Description: "until dispelled"},
			{CreatureName: "Goblin", EffectName: "Rope", Duration: 0, Description: "50 feet"},
		} {
			_, err = svc.ApplyEffect(ctx, input)
			require.NoError(t, err)
		}

		output, err := svc.AdvanceRound(ctx)
		require.NoError(t, err)
		assert.Empty(t, output.Expired)
		require.Len(t, output.Snapshot.Creatures, 1)
		assert.Len(t, output.Snapshot.Creatures[0].Effects, 2)
	})

	t.Run("creatures tick in insertion order", func(t *testing.T) {
		svc := newTestService()
		for _, name := range []string{"Goblin", "Orc"} {
			_, err := svc.AddCreature(ctx, &tracker.AddCreatureInput{Name: name, MaxHP: 10})
			require.NoError(t, err)
			_, err = svc.ApplyEffect(ctx, &tracker.ApplyEffectInput{
				CreatureName: name, EffectName: "Stunned", Duration: 1,
			})
			require.NoError(t, err)
		}

		output, err := svc.AdvanceRound(ctx)
		require.NoError(t, err)
		require.Len(t, output.Expired, 2)
		assert.Equal(t, "Goblin", output.Expired[0].CreatureName)
		assert.Equal(t, "Orc", output.Expired[1].CreatureName)
	})
}

func TestService_GetStatusSnapshot(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	t.Run("empty tracker", func(t *testing.T) {
		snapshot, err := svc.GetStatusSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, snapshot.Round)
		assert.Empty(t, snapshot.Creatures)
	})

	t.Run("rendered effects and derived status", func(t *testing.T) {
		_, err := svc.AddCreature(ctx, &tracker.AddCreatureInput{Name: "Goblin", MaxHP: 10})
		require.NoError(t, err)
		_, err = svc.ApplyEffect(ctx, &tracker.ApplyEffectInput{
			CreatureName: "Goblin", EffectName: "Poisoned", Duration: 3, Description: "ongoing",
		})
		require.NoError(t, err)
		_, err = svc.ModifyHP(ctx, &tracker.ModifyHPInput{CreatureName: "Goblin", Amount: 7})
		require.NoError(t, err)

		snapshot, err := svc.GetStatusSnapshot(ctx)
		require.NoError(t, err)
		require.Len(t, snapshot.Creatures, 1)

		goblin := snapshot.Creatures[0]
		assert.Equal(t, 3, goblin.CurrentHP)
		assert.Equal(t, combat.StatusBloodied, goblin.Status)
		require.Len(t, goblin.Effects, 1)
		assert.Equal(t, "Poisoned (3 rounds remaining). Details: ongoing", goblin.Effects[0])
	})
}

func TestService_RepositoryFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("AdvanceRound propagates list failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mockcreatures.NewMockRepository(ctrl)
		repo.EXPECT().List(gomock.Any()).Return(nil, trackererr.Internal("store unavailable"))

		svc := tracker.NewService(&tracker.ServiceConfig{Repository: repo})

		_, err := svc.AdvanceRound(ctx)
		assert.True(t, trackererr.IsInternal(err))
	})

	t.Run("ModifyHP does not update after a failed get", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mockcreatures.NewMockRepository(ctrl)
		repo.EXPECT().Get(gomock.Any(), "Goblin").Return(nil, trackererr.NotFound("creature 'Goblin' not found"))

		svc := tracker.NewService(&tracker.ServiceConfig{Repository: repo})

		_, err := svc.ModifyHP(ctx, &tracker.ModifyHPInput{CreatureName: "Goblin", Amount: 3})
		assert.True(t, trackererr.IsNotFound(err))
	})
}
