// Package eventhandler contains subscribers that react to domain events.
package eventhandler

import (
	"context"
	"log/slog"

	"github.com/courseit/courseit-core/internal/domain/achievement"
	"github.com/courseit/courseit-core/internal/domain/shared"
	"github.com/courseit/courseit-core/internal/domain/stats"
)

// ══════════════════════════════════════════════════════════════════════════════
// ACHIEVEMENT EVALUATOR
// Re-evaluates achievement criteria whenever an event changes the stats that
// feed them, and announces newly unlocked achievements on the bus.
// ══════════════════════════════════════════════════════════════════════════════

// AchievementEvaluator evaluates achievements in response to domain events.
type AchievementEvaluator struct {
	aggregator   *stats.Aggregator
	achievements *achievement.Engine
	publisher    shared.EventPublisher
	logger       *slog.Logger
}

// NewAchievementEvaluator creates a new AchievementEvaluator.
func NewAchievementEvaluator(
	aggregator *stats.Aggregator,
	achievements *achievement.Engine,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) *AchievementEvaluator {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = shared.NoopPublisher{}
	}
	return &AchievementEvaluator{
		aggregator:   aggregator,
		achievements: achievements,
		publisher:    publisher,
		logger:       logger,
	}
}

// Register subscribes the evaluator to every event type that can move an
// achievement criteria.
func (e *AchievementEvaluator) Register(bus shared.EventSubscriber) error {
	for _, eventType := range []shared.EventType{
		shared.EventStageCompleted,
		shared.EventTrackMastered,
		shared.EventStreakExtended,
		shared.EventTrackCreated,
	} {
		if err := bus.Subscribe(eventType, e.Handle); err != nil {
			return err
		}
	}
	return nil
}

// Handle re-evaluates achievements against a fresh stats snapshot.
func (e *AchievementEvaluator) Handle(event shared.Event) error {
	ctx := context.Background()

	snapshot := e.aggregator.Collect(ctx)
	newlyUnlocked, err := e.achievements.Evaluate(ctx, snapshot)
	if err != nil {
		return err
	}

	for _, id := range newlyUnlocked {
		def := achievement.DefinitionByID(id)
		if def == nil {
			continue
		}
		e.logger.Info("achievement unlocked",
			"achievement_id", id,
			"trigger", event.EventType())
		if err := e.publisher.Publish(shared.NewAchievementUnlockedEvent(def.ID, def.Name)); err != nil {
			e.logger.Error("failed to publish event", "achievement_id", id, "error", err)
		}
	}
	return nil
}
