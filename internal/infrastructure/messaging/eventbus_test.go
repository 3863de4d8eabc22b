package messaging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseit/courseit-core/internal/domain/shared"
)

func TestInMemoryEventBus_PublishToSubscriber(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultConfig())
	defer bus.Close()

	var received []shared.Event
	err := bus.Subscribe(shared.EventStageCompleted, func(event shared.Event) error {
		received = append(received, event)
		return nil
	})
	require.NoError(t, err)

	event := shared.NewStageCompletedEvent("chess-beginner", 2, 7, 2)
	require.NoError(t, bus.Publish(event))

	require.Len(t, received, 1)
	assert.Equal(t, shared.EventStageCompleted, received[0].EventType())
	assert.Equal(t, "chess-beginner", received[0].AggregateID())
}

func TestInMemoryEventBus_TypeFiltering(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultConfig())
	defer bus.Close()

	var count int
	require.NoError(t, bus.Subscribe(shared.EventStreakExtended, func(shared.Event) error {
		count++
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewStageCompletedEvent("chess-beginner", 1, 6, 1)))
	require.NoError(t, bus.Publish(shared.NewStreakExtendedEvent(2, "2024-05-10")))

	assert.Equal(t, 1, count)
}

func TestInMemoryEventBus_SubscribeAll(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultConfig())
	defer bus.Close()

	var seen []shared.EventType
	require.NoError(t, bus.SubscribeAll(func(event shared.Event) error {
		seen = append(seen, event.EventType())
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewStageCompletedEvent("t", 1, 5, 1)))
	require.NoError(t, bus.Publish(shared.NewAchievementUnlockedEvent("stages_1", "First Step")))

	assert.Equal(t, []shared.EventType{shared.EventStageCompleted, shared.EventAchievementUnlocked}, seen)
}

func TestInMemoryEventBus_HandlerErrorDoesNotFailPublish(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultConfig())
	defer bus.Close()

	require.NoError(t, bus.Subscribe(shared.EventCoinsAdded, func(shared.Event) error {
		return errors.New("boom")
	}))

	event := shared.NewCoinsChangedEvent(shared.EventCoinsAdded, 7, 7, "assessment")
	assert.NoError(t, bus.Publish(event))
	assert.Equal(t, int64(1), bus.Metrics().HandlerErrors(shared.EventCoinsAdded))
}

func TestInMemoryEventBus_ClosedBusRejects(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultConfig())
	require.NoError(t, bus.Close())

	err := bus.Publish(shared.NewTrackMasteredEvent("chess-beginner", 6))
	assert.ErrorIs(t, err, ErrEventBusClosed)

	err = bus.Subscribe(shared.EventTrackMastered, func(shared.Event) error { return nil })
	assert.ErrorIs(t, err, ErrEventBusClosed)
}

func TestInMemoryEventBus_Metrics(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultConfig())
	defer bus.Close()

	require.NoError(t, bus.Publish(shared.NewStreakExtendedEvent(1, "2024-05-10")))
	require.NoError(t, bus.Publish(shared.NewStreakExtendedEvent(2, "2024-05-11")))

	assert.Equal(t, int64(2), bus.Metrics().Published(shared.EventStreakExtended))
}
