// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/courseit/courseit-core/internal/domain/progress"
	"github.com/courseit/courseit-core/internal/domain/shared"
	"github.com/courseit/courseit-core/internal/domain/streak"
	"github.com/courseit/courseit-core/internal/domain/track"
	"github.com/courseit/courseit-core/internal/infrastructure/external/courseit"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETE STAGE COMMAND
// Submits a free-text answer for a checkpoint, and on a passing assessment
// advances progress, awards coins and extends the daily streak.
// ══════════════════════════════════════════════════════════════════════════════

// DefaultPassingScore is the minimum assessment score that counts as a pass.
const DefaultPassingScore = 5

// AnswerAssessor grades a free-text answer for a checkpoint.
// Implemented by the courseit API client.
type AnswerAssessor interface {
	AssessAnswer(ctx context.Context, trackID string, checkpointID int, answer string) (*courseit.Assessment, error)
}

// CompleteStageCommand contains the data to complete a checkpoint.
type CompleteStageCommand struct {
	// TrackID identifies the track.
	TrackID string

	// CheckpointID is the 1-based checkpoint number being completed.
	CheckpointID int

	// Answer is the user's free-text answer to be assessed.
	Answer string

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c CompleteStageCommand) Validate() error {
	if c.TrackID == "" {
		return errors.New("complete_stage: track_id is required")
	}
	if c.CheckpointID < 1 {
		return errors.New("complete_stage: checkpoint_id must be positive")
	}
	if c.Answer == "" {
		return errors.New("complete_stage: answer is required")
	}
	return nil
}

// CompleteStageResult contains the outcome of the command.
type CompleteStageResult struct {
	// Passed indicates whether the assessment met the passing score.
	Passed bool

	// Score is the 0-10 assessment score.
	Score int

	// Feedback is the grader's explanation to show the user.
	Feedback string

	// CompletedCount is the track's completed-checkpoint count after the command.
	CompletedCount int

	// TrackMastered indicates the last checkpoint of the track was completed.
	TrackMastered bool

	// CoinsEarned is the coin reward (equal to the score on a pass).
	CoinsEarned int

	// NewBalance is the coin balance after the reward.
	NewBalance int

	// CurrentStreak is the daily streak after the command.
	CurrentStreak int

	// Events contains domain events generated.
	Events []shared.Event
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// CompleteStageHandler handles the CompleteStageCommand.
type CompleteStageHandler struct {
	catalog   *track.Catalog
	ledger    *progress.Ledger
	wallet    *progress.Wallet
	streaks   *streak.Engine
	assessor  AnswerAssessor
	publisher shared.EventPublisher
	logger    *slog.Logger

	passingScore int
}

// CompleteStageHandlerConfig contains configuration for the handler.
type CompleteStageHandlerConfig struct {
	PassingScore int
	Logger       *slog.Logger
}

// DefaultCompleteStageHandlerConfig returns default configuration.
func DefaultCompleteStageHandlerConfig() CompleteStageHandlerConfig {
	return CompleteStageHandlerConfig{
		PassingScore: DefaultPassingScore,
	}
}

// NewCompleteStageHandler creates a new CompleteStageHandler.
func NewCompleteStageHandler(
	catalog *track.Catalog,
	ledger *progress.Ledger,
	wallet *progress.Wallet,
	streaks *streak.Engine,
	assessor AnswerAssessor,
	publisher shared.EventPublisher,
	config CompleteStageHandlerConfig,
) *CompleteStageHandler {
	if config.PassingScore <= 0 {
		config.PassingScore = DefaultPassingScore
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if publisher == nil {
		publisher = shared.NoopPublisher{}
	}

	return &CompleteStageHandler{
		catalog:      catalog,
		ledger:       ledger,
		wallet:       wallet,
		streaks:      streaks,
		assessor:     assessor,
		publisher:    publisher,
		logger:       config.Logger,
		passingScore: config.PassingScore,
	}
}

// Handle executes the complete stage command.
// Checkpoints must be completed in order: the submitted checkpoint has to be
// the one right after the last completed checkpoint of the track.
func (h *CompleteStageHandler) Handle(ctx context.Context, cmd CompleteStageCommand) (*CompleteStageResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("complete_stage: validation failed: %w", err)
	}

	trk := h.catalog.TrackByID(ctx, cmd.TrackID)
	if trk == nil {
		return nil, shared.ErrTrackNotFound
	}
	if trk.CheckpointByID(cmd.CheckpointID) == nil {
		return nil, shared.WrapError("progress", "CompleteStage", shared.ErrNotFound,
			fmt.Sprintf("track %q has no checkpoint %d", cmd.TrackID, cmd.CheckpointID), nil)
	}

	completed := h.ledger.Load(ctx).Completed(cmd.TrackID)
	if cmd.CheckpointID != completed+1 {
		return nil, shared.ErrCheckpointOutOfTurn
	}

	assessment, err := h.assessor.AssessAnswer(ctx, cmd.TrackID, cmd.CheckpointID, cmd.Answer)
	if err != nil {
		return nil, fmt.Errorf("complete_stage: assessment failed: %w", err)
	}

	result := &CompleteStageResult{
		Score:          assessment.Score,
		Feedback:       assessment.Feedback,
		CompletedCount: completed,
		CurrentStreak:  h.streaks.CurrentStreak(ctx),
		NewBalance:     h.wallet.Balance(ctx),
		Events:         make([]shared.Event, 0, 4),
	}

	if !assessment.Passed(h.passingScore) {
		return result, nil
	}
	result.Passed = true

	// Progress is the source of truth for the pass: a failed write here fails
	// the whole command.
	if _, err := h.ledger.Advance(ctx, cmd.TrackID, cmd.CheckpointID); err != nil {
		return nil, fmt.Errorf("complete_stage: failed to persist progress: %w", err)
	}
	result.CompletedCount = cmd.CheckpointID
	result.TrackMastered = trk.IsMastered(cmd.CheckpointID)

	stageEvent := shared.NewStageCompletedEvent(cmd.TrackID, cmd.CheckpointID, assessment.Score, cmd.CheckpointID)
	if cmd.CorrelationID != "" {
		stageEvent.BaseEvent = stageEvent.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	result.Events = append(result.Events, stageEvent)

	if result.TrackMastered {
		result.Events = append(result.Events, shared.NewTrackMasteredEvent(cmd.TrackID, trk.CheckpointCount()))
	}

	// Coin and streak writes are rewards on top of an already-recorded pass.
	// Log failures, keep the pass.
	if balance, err := h.wallet.Add(ctx, assessment.Score); err != nil {
		h.logger.Error("failed to award coins", "track_id", cmd.TrackID, "error", err)
	} else {
		result.CoinsEarned = assessment.Score
		result.NewBalance = balance
		result.Events = append(result.Events,
			shared.NewCoinsChangedEvent(shared.EventCoinsAdded, assessment.Score, balance, "assessment"))
	}

	previousStreak := result.CurrentStreak
	if record, err := h.streaks.RecordCompletion(ctx); err != nil {
		h.logger.Error("failed to record streak completion", "error", err)
	} else {
		result.CurrentStreak = record.CurrentStreak
		// A second pass on the same day leaves the streak as is; only an
		// actual extension is announced.
		if record.CurrentStreak != previousStreak {
			result.Events = append(result.Events,
				shared.NewStreakExtendedEvent(record.CurrentStreak, record.LastCompletionDate))
		}
	}

	for _, event := range result.Events {
		if err := h.publisher.Publish(event); err != nil {
			h.logger.Error("failed to publish event", "event_type", event.EventType(), "error", err)
		}
	}

	h.logger.Info("stage completed",
		"track_id", cmd.TrackID,
		"checkpoint_id", cmd.CheckpointID,
		"score", assessment.Score,
		"mastered", result.TrackMastered)
	return result, nil
}
