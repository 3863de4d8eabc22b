// Package saga contains business processes that orchestrate multiple domain
// operations and compensate on failures.
package saga

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/courseit/courseit-core/internal/domain/progress"
	"github.com/courseit/courseit-core/internal/domain/shared"
	"github.com/courseit/courseit-core/internal/domain/track"
)

// ══════════════════════════════════════════════════════════════════════════════
// TRACK CREATION SAGA
// Paid generation of a personal learning track.
// Flow: Validate → Spend Coins → Generate Track → Cache Track → Publish Event
// Compensation: restore the pre-spend coin balance when generation or caching
// fails after the coins were already taken.
// ══════════════════════════════════════════════════════════════════════════════

// DefaultTrackCreationCost is the coin price of generating one track.
const DefaultTrackCreationCost = 50

// TrackGenerator asks the remote backend to generate a learning track.
// Implemented by the courseit API client.
type TrackGenerator interface {
	CreateTrack(ctx context.Context, req track.CreateRequest) (*track.Track, error)
}

// TrackCreationInput contains all data required to create a personal track.
type TrackCreationInput struct {
	// Request describes the track to generate.
	Request track.CreateRequest

	// CorrelationID for tracing.
	CorrelationID string
}

// TrackCreationResult contains the result of a successful track creation.
type TrackCreationResult struct {
	// Track is the generated, cached track.
	Track *track.Track

	// CoinsSpent is the price paid.
	CoinsSpent int

	// NewBalance is the coin balance after payment.
	NewBalance int

	// CreatedAt is when the saga completed.
	CreatedAt time.Time
}

// TrackCreationStep represents a step in the creation process.
type TrackCreationStep string

const (
	StepValidateRequest TrackCreationStep = "validate_request"
	StepSpendCoins      TrackCreationStep = "spend_coins"
	StepGenerateTrack   TrackCreationStep = "generate_track"
	StepCacheTrack      TrackCreationStep = "cache_track"
	StepPublishEvent    TrackCreationStep = "publish_event"
	StepComplete        TrackCreationStep = "complete"
)

// ══════════════════════════════════════════════════════════════════════════════
// SAGA IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// TrackCreationSaga orchestrates the paid generation of a personal track.
type TrackCreationSaga struct {
	catalog   *track.Catalog
	wallet    *progress.Wallet
	generator TrackGenerator
	eventBus  shared.EventPublisher
	logger    *slog.Logger

	cost int
}

// TrackCreationSagaConfig contains configuration for the saga.
type TrackCreationSagaConfig struct {
	// Cost is the coin price of one generated track.
	Cost int

	// Logger for structured logging.
	Logger *slog.Logger
}

// DefaultTrackCreationConfig returns default configuration.
func DefaultTrackCreationConfig() TrackCreationSagaConfig {
	return TrackCreationSagaConfig{
		Cost: DefaultTrackCreationCost,
	}
}

// NewTrackCreationSaga creates a new track creation saga.
func NewTrackCreationSaga(
	catalog *track.Catalog,
	wallet *progress.Wallet,
	generator TrackGenerator,
	eventBus shared.EventPublisher,
	config TrackCreationSagaConfig,
) *TrackCreationSaga {
	if config.Cost <= 0 {
		config.Cost = DefaultTrackCreationCost
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if eventBus == nil {
		eventBus = shared.NoopPublisher{}
	}

	return &TrackCreationSaga{
		catalog:   catalog,
		wallet:    wallet,
		generator: generator,
		eventBus:  eventBus,
		logger:    config.Logger,
		cost:      config.Cost,
	}
}

// Cost returns the coin price of one generated track.
func (s *TrackCreationSaga) Cost() int {
	return s.cost
}

// Execute runs the complete track creation process.
func (s *TrackCreationSaga) Execute(ctx context.Context, input TrackCreationInput) (*TrackCreationResult, error) {
	// Step 1: Validate the request before touching any state.
	if err := input.Request.Validate(); err != nil {
		return nil, s.wrapError(StepValidateRequest, err)
	}

	// Step 2: Take payment. Spend returns the pre-spend balance, which is the
	// compensation snapshot for every later failure.
	snapshot, err := s.wallet.Spend(ctx, s.cost)
	if err != nil {
		return nil, s.wrapError(StepSpendCoins, err)
	}

	spendEvent := shared.NewCoinsChangedEvent(shared.EventCoinsSpent, -s.cost, snapshot-s.cost, "track_creation")
	if err := s.eventBus.Publish(spendEvent); err != nil {
		s.logger.Error("failed to publish event", "event_type", spendEvent.EventType(), "error", err)
	}

	// Step 3: Ask the backend to generate the track.
	generated, err := s.generator.CreateTrack(ctx, input.Request)
	if err != nil {
		s.refund(ctx, snapshot)
		return nil, s.wrapError(StepGenerateTrack, err)
	}

	// Step 4: Cache the track locally. A duplicate ID is absorbed by the
	// catalog, so a non-nil error here means the cache write itself failed.
	if err := s.catalog.AddUserTrack(ctx, *generated); err != nil {
		s.refund(ctx, snapshot)
		return nil, s.wrapError(StepCacheTrack, err)
	}

	// Step 5: Publish the event. Non-critical.
	event := shared.NewTrackCreatedEvent(generated.ID, generated.Title, generated.CheckpointCount(), s.cost)
	if input.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(input.CorrelationID)
	}
	if err := s.eventBus.Publish(event); err != nil {
		s.logger.Error("failed to publish event", "event_type", event.EventType(), "error", err)
	}

	s.logger.Info("track created",
		"track_id", generated.ID,
		"checkpoints", generated.CheckpointCount(),
		"cost", s.cost)

	return &TrackCreationResult{
		Track:      generated,
		CoinsSpent: s.cost,
		NewBalance: snapshot - s.cost,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// refund restores the pre-spend coin balance after a failed step.
func (s *TrackCreationSaga) refund(ctx context.Context, snapshot int) {
	if err := s.wallet.Save(ctx, snapshot); err != nil {
		// The user paid for nothing; this needs to be visible in the logs.
		s.logger.Error("refund failed, coin balance is inconsistent",
			"snapshot", snapshot, "cost", s.cost, "error", err)
		return
	}

	event := shared.NewCoinsChangedEvent(shared.EventCoinsRefunded, s.cost, snapshot, "track_creation_failed")
	if err := s.eventBus.Publish(event); err != nil {
		s.logger.Error("failed to publish event", "event_type", event.EventType(), "error", err)
	}
	s.logger.Info("coins refunded", "balance", snapshot)
}

// wrapError wraps an error with saga context.
func (s *TrackCreationSaga) wrapError(step TrackCreationStep, err error) error {
	return &TrackCreationError{
		Step:    step,
		Cause:   err,
		Message: fmt.Sprintf("track creation failed at step '%s': %v", step, err),
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// ERRORS
// ══════════════════════════════════════════════════════════════════════════════

// TrackCreationError represents an error during the track creation process.
type TrackCreationError struct {
	Step    TrackCreationStep
	Cause   error
	Message string
}

// Error implements the error interface.
func (e *TrackCreationError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TrackCreationError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns true if the failed step can be retried.
// Validation and payment failures need user action first; remote generation
// failures are worth another attempt.
func (e *TrackCreationError) IsRetryable() bool {
	switch e.Step {
	case StepValidateRequest, StepSpendCoins:
		return false
	case StepGenerateTrack:
		return !errors.Is(e.Cause, shared.ErrInvalidInput)
	}
	return true
}
