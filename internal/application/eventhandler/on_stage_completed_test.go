package eventhandler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseit/courseit-core/internal/domain/achievement"
	"github.com/courseit/courseit-core/internal/domain/progress"
	"github.com/courseit/courseit-core/internal/domain/shared"
	"github.com/courseit/courseit-core/internal/domain/stats"
	"github.com/courseit/courseit-core/internal/domain/streak"
	"github.com/courseit/courseit-core/internal/domain/track"
	"github.com/courseit/courseit-core/internal/infrastructure/messaging"
	"github.com/courseit/courseit-core/internal/infrastructure/persistence/memory"
)

func TestAchievementEvaluator_UnlocksOnStageCompleted(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	ledger := progress.NewLedger(store, nil)
	wallet := progress.NewWallet(store, nil)
	streaks := streak.NewEngine(store, nil).WithClock(func() time.Time {
		return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	})
	catalog := track.NewCatalog(store, nil)
	achievements := achievement.NewEngine(store, nil)
	aggregator := stats.NewAggregator(ledger, wallet, streaks, catalog)

	bus := messaging.NewInMemoryEventBus(messaging.DefaultConfig())
	defer bus.Close()

	var unlocked []string
	require.NoError(t, bus.Subscribe(shared.EventAchievementUnlocked, func(event shared.Event) error {
		e := event.(shared.AchievementUnlockedEvent)
		unlocked = append(unlocked, e.AchievementID)
		return nil
	}))

	evaluator := NewAchievementEvaluator(aggregator, achievements, bus, nil)
	require.NoError(t, evaluator.Register(bus))

	// Simulate one completed stage, then announce it on the bus.
	require.NoError(t, ledger.Save(ctx, progress.ProgressMap{"chess-beginner": 1}))
	require.NoError(t, bus.Publish(shared.NewStageCompletedEvent("chess-beginner", 1, 8, 1)))

	assert.Equal(t, []string{"stages_1"}, unlocked)
	assert.Contains(t, achievements.Earned(ctx), "stages_1")
}

func TestAchievementEvaluator_NoDuplicateAnnouncements(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	ledger := progress.NewLedger(store, nil)
	aggregator := stats.NewAggregator(
		ledger,
		progress.NewWallet(store, nil),
		streak.NewEngine(store, nil),
		track.NewCatalog(store, nil),
	)
	achievements := achievement.NewEngine(store, nil)

	bus := messaging.NewInMemoryEventBus(messaging.DefaultConfig())
	defer bus.Close()

	var count int
	require.NoError(t, bus.Subscribe(shared.EventAchievementUnlocked, func(shared.Event) error {
		count++
		return nil
	}))

	evaluator := NewAchievementEvaluator(aggregator, achievements, bus, nil)
	require.NoError(t, evaluator.Register(bus))

	require.NoError(t, ledger.Save(ctx, progress.ProgressMap{"chess-beginner": 1}))
	require.NoError(t, bus.Publish(shared.NewStageCompletedEvent("chess-beginner", 1, 8, 1)))
	require.NoError(t, bus.Publish(shared.NewStageCompletedEvent("chess-beginner", 1, 8, 1)))

	assert.Equal(t, 1, count)
}
