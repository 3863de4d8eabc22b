// Package shared contains common domain types, errors, events, and the
// key-value storage contract used across all domain packages.
package shared

import (
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types - these drive the event-driven architecture.
// Each event represents something significant that happened in the domain.
const (
	// Progress events
	EventStageCompleted  EventType = "progress.stage_completed"
	EventTrackMastered   EventType = "progress.track_mastered"
	EventProgressCleared EventType = "progress.cleared"

	// Streak events
	EventStreakExtended EventType = "streak.extended"
	EventStreakBroken   EventType = "streak.broken"

	// Coin events
	EventCoinsAdded    EventType = "coins.added"
	EventCoinsSpent    EventType = "coins.spent"
	EventCoinsRefunded EventType = "coins.refunded"

	// Achievement events
	EventAchievementUnlocked EventType = "achievement.unlocked"

	// Track catalog events
	EventTrackCreated EventType = "track.created"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type          EventType `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	AggregateId   string    `json:"aggregate_id"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
	}
}

// WithCorrelationID sets the correlation ID for tracing.
func (e BaseEvent) WithCorrelationID(id string) BaseEvent {
	e.CorrelationID = id
	return e
}

// ═══════════════════════════════════════════════════════════════════════════
// Progress Events
// ═══════════════════════════════════════════════════════════════════════════

// StageCompletedEvent is emitted when a checkpoint assessment passes and
// progress advances.
type StageCompletedEvent struct {
	BaseEvent
	TrackID        string `json:"track_id"`
	CheckpointID   int    `json:"checkpoint_id"`
	Score          int    `json:"score"`
	CompletedCount int    `json:"completed_count"`
}

// Payload implements Event interface.
func (e StageCompletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"track_id":        e.TrackID,
		"checkpoint_id":   e.CheckpointID,
		"score":           e.Score,
		"completed_count": e.CompletedCount,
	}
}

// NewStageCompletedEvent creates a new StageCompletedEvent.
func NewStageCompletedEvent(trackID string, checkpointID, score, completedCount int) StageCompletedEvent {
	return StageCompletedEvent{
		BaseEvent:      NewBaseEvent(EventStageCompleted, trackID),
		TrackID:        trackID,
		CheckpointID:   checkpointID,
		Score:          score,
		CompletedCount: completedCount,
	}
}

// ProgressClearedEvent is emitted when the learning data reset removes
// progress, coins and cached user tracks.
type ProgressClearedEvent struct {
	BaseEvent
	RemovedKeys []string `json:"removed_keys"`
}

// Payload implements Event interface.
func (e ProgressClearedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"removed_keys": e.RemovedKeys,
	}
}

// NewProgressClearedEvent creates a new ProgressClearedEvent.
func NewProgressClearedEvent(removedKeys []string) ProgressClearedEvent {
	return ProgressClearedEvent{
		BaseEvent:   NewBaseEvent(EventProgressCleared, "progress"),
		RemovedKeys: removedKeys,
	}
}

// TrackMasteredEvent is emitted when the last checkpoint of a track completes.
type TrackMasteredEvent struct {
	BaseEvent
	TrackID     string `json:"track_id"`
	Checkpoints int    `json:"checkpoints"`
}

// Payload implements Event interface.
func (e TrackMasteredEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"track_id":    e.TrackID,
		"checkpoints": e.Checkpoints,
	}
}

// NewTrackMasteredEvent creates a new TrackMasteredEvent.
func NewTrackMasteredEvent(trackID string, checkpoints int) TrackMasteredEvent {
	return TrackMasteredEvent{
		BaseEvent:   NewBaseEvent(EventTrackMastered, trackID),
		TrackID:     trackID,
		Checkpoints: checkpoints,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Streak Events
// ═══════════════════════════════════════════════════════════════════════════

// StreakExtendedEvent is emitted when the daily streak grows or starts.
type StreakExtendedEvent struct {
	BaseEvent
	CurrentStreak int    `json:"current_streak"`
	Date          string `json:"date"`
}

// Payload implements Event interface.
func (e StreakExtendedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"current_streak": e.CurrentStreak,
		"date":           e.Date,
	}
}

// NewStreakExtendedEvent creates a new StreakExtendedEvent.
func NewStreakExtendedEvent(currentStreak int, date string) StreakExtendedEvent {
	return StreakExtendedEvent{
		BaseEvent:     NewBaseEvent(EventStreakExtended, "streak"),
		CurrentStreak: currentStreak,
		Date:          date,
	}
}

// StreakBrokenEvent is emitted when a completion arrives after a gap and the
// streak restarts at 1.
type StreakBrokenEvent struct {
	BaseEvent
	PreviousStreak int    `json:"previous_streak"`
	LastDate       string `json:"last_date"`
}

// Payload implements Event interface.
func (e StreakBrokenEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"previous_streak": e.PreviousStreak,
		"last_date":       e.LastDate,
	}
}

// NewStreakBrokenEvent creates a new StreakBrokenEvent.
func NewStreakBrokenEvent(previousStreak int, lastDate string) StreakBrokenEvent {
	return StreakBrokenEvent{
		BaseEvent:      NewBaseEvent(EventStreakBroken, "streak"),
		PreviousStreak: previousStreak,
		LastDate:       lastDate,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Coin Events
// ═══════════════════════════════════════════════════════════════════════════

// CoinsChangedEvent is emitted for additions, spends and refunds.
type CoinsChangedEvent struct {
	BaseEvent
	Delta      int    `json:"delta"`
	NewBalance int    `json:"new_balance"`
	Reason     string `json:"reason"`
}

// Payload implements Event interface.
func (e CoinsChangedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"delta":       e.Delta,
		"new_balance": e.NewBalance,
		"reason":      e.Reason,
	}
}

// NewCoinsChangedEvent creates a coin event of the given type.
func NewCoinsChangedEvent(eventType EventType, delta, newBalance int, reason string) CoinsChangedEvent {
	return CoinsChangedEvent{
		BaseEvent:  NewBaseEvent(eventType, "wallet"),
		Delta:      delta,
		NewBalance: newBalance,
		Reason:     reason,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Achievement Events
// ═══════════════════════════════════════════════════════════════════════════

// AchievementUnlockedEvent is emitted once per achievement when its criteria
// first evaluates true.
type AchievementUnlockedEvent struct {
	BaseEvent
	AchievementID string `json:"achievement_id"`
	Name          string `json:"name"`
}

// Payload implements Event interface.
func (e AchievementUnlockedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"achievement_id": e.AchievementID,
		"name":           e.Name,
	}
}

// NewAchievementUnlockedEvent creates a new AchievementUnlockedEvent.
func NewAchievementUnlockedEvent(achievementID, name string) AchievementUnlockedEvent {
	return AchievementUnlockedEvent{
		BaseEvent:     NewBaseEvent(EventAchievementUnlocked, achievementID),
		AchievementID: achievementID,
		Name:          name,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Track Catalog Events
// ═══════════════════════════════════════════════════════════════════════════

// TrackCreatedEvent is emitted when a user-created track is generated and
// cached.
type TrackCreatedEvent struct {
	BaseEvent
	TrackID     string `json:"track_id"`
	Title       string `json:"title"`
	Checkpoints int    `json:"checkpoints"`
	Cost        int    `json:"cost"`
}

// Payload implements Event interface.
func (e TrackCreatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"track_id":    e.TrackID,
		"title":       e.Title,
		"checkpoints": e.Checkpoints,
		"cost":        e.Cost,
	}
}

// NewTrackCreatedEvent creates a new TrackCreatedEvent.
func NewTrackCreatedEvent(trackID, title string, checkpoints, cost int) TrackCreatedEvent {
	return TrackCreatedEvent{
		BaseEvent:   NewBaseEvent(EventTrackCreated, trackID),
		TrackID:     trackID,
		Title:       title,
		Checkpoints: checkpoints,
		Cost:        cost,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Event Bus Contracts
// ═══════════════════════════════════════════════════════════════════════════

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}

// NoopPublisher discards all events. Used where a caller does not care about
// event fan-out (tests, the dev console).
type NoopPublisher struct{}

// Publish implements EventPublisher.
func (NoopPublisher) Publish(Event) error { return nil }
