package achievement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseit/courseit-core/internal/domain/achievement"
	"github.com/courseit/courseit-core/internal/domain/shared"
	"github.com/courseit/courseit-core/internal/domain/stats"
	"github.com/courseit/courseit-core/internal/infrastructure/persistence/memory"
)

func TestDefinitions_CatalogIsComplete(t *testing.T) {
	defs := achievement.Definitions()
	require.Len(t, defs, 9)
	for _, def := range defs {
		assert.NotEmpty(t, def.ID)
		assert.NotEmpty(t, def.Name)
		assert.NotNil(t, def.Criteria, "achievement %s has no criteria", def.ID)
	}
}

func TestDefinitionByID(t *testing.T) {
	def := achievement.DefinitionByID("streak_10")
	require.NotNil(t, def)
	assert.Equal(t, "Streak Star", def.Name)

	assert.Nil(t, achievement.DefinitionByID("unknown"))
}

func TestEngine_EarnedEmptyByDefault(t *testing.T) {
	engine := achievement.NewEngine(memory.NewStore(), nil)
	assert.Empty(t, engine.Earned(context.Background()))
}

func TestEngine_EvaluateUnlocks(t *testing.T) {
	engine := achievement.NewEngine(memory.NewStore(), nil)
	ctx := context.Background()

	newly, err := engine.Evaluate(ctx, stats.Snapshot{
		TotalStagesCompleted: 1,
		CurrentStreak:        3,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"streak_3", "stages_1"}, newly)
	assert.ElementsMatch(t, []string{"streak_3", "stages_1"}, engine.Earned(ctx))
}

func TestEngine_EvaluateIsIdempotent(t *testing.T) {
	engine := achievement.NewEngine(memory.NewStore(), nil)
	ctx := context.Background()

	snapshot := stats.Snapshot{TotalStagesCompleted: 30, CurrentStreak: 7}

	newly, err := engine.Evaluate(ctx, snapshot)
	require.NoError(t, err)
	assert.NotEmpty(t, newly)

	// Same stats again: nothing new.
	newly, err = engine.Evaluate(ctx, snapshot)
	require.NoError(t, err)
	assert.Empty(t, newly)
}

func TestEngine_EarnedSurvivesStatsDrop(t *testing.T) {
	engine := achievement.NewEngine(memory.NewStore(), nil)
	ctx := context.Background()

	_, err := engine.Evaluate(ctx, stats.Snapshot{CurrentStreak: 3})
	require.NoError(t, err)
	assert.Contains(t, engine.Earned(ctx), "streak_3")

	// The streak broke, but the achievement stays earned.
	newly, err := engine.Evaluate(ctx, stats.Snapshot{CurrentStreak: 0})
	require.NoError(t, err)
	assert.Empty(t, newly)
	assert.Contains(t, engine.Earned(ctx), "streak_3")
}

func TestEngine_NoWriteWhenNothingNew(t *testing.T) {
	store := memory.NewStore()
	engine := achievement.NewEngine(store, nil)
	ctx := context.Background()

	newly, err := engine.Evaluate(ctx, stats.Snapshot{})
	require.NoError(t, err)
	assert.Empty(t, newly)
	assert.Equal(t, 0, store.Len())
}

func TestEngine_Milestones(t *testing.T) {
	engine := achievement.NewEngine(memory.NewStore(), nil)
	ctx := context.Background()

	newly, err := engine.Evaluate(ctx, stats.Snapshot{
		TotalStagesCompleted: 100,
		TotalTracksCompleted: 5,
		CurrentStreak:        10,
		TracksCreated:        1,
	})
	require.NoError(t, err)
	// Everything unlocks at once.
	assert.Len(t, newly, 9)
}

func TestEngine_EarnedDetailsSkipsUnknownIDs(t *testing.T) {
	store := memory.NewStore()
	engine := achievement.NewEngine(store, nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, shared.KeyAchievements, []byte(`["streak_3","legacy_id"]`)))

	details := engine.EarnedDetails(ctx)
	require.Len(t, details, 1)
	assert.Equal(t, "Consistent Learner", details[0].Name)
}

func TestEngine_CorruptedListTreatedAsEmpty(t *testing.T) {
	store := memory.NewStore()
	engine := achievement.NewEngine(store, nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, shared.KeyAchievements, []byte(`{"not":"an array"}`)))
	assert.Empty(t, engine.Earned(ctx))
}

func TestEngine_Reset(t *testing.T) {
	store := memory.NewStore()
	engine := achievement.NewEngine(store, nil)
	ctx := context.Background()

	_, err := engine.Evaluate(ctx, stats.Snapshot{TotalStagesCompleted: 1})
	require.NoError(t, err)
	require.NotEmpty(t, engine.Earned(ctx))

	require.NoError(t, engine.Reset(ctx))
	assert.Empty(t, engine.Earned(ctx))
	assert.Equal(t, 0, store.Len())
}
