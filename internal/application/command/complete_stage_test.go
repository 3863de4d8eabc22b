package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseit/courseit-core/internal/domain/progress"
	"github.com/courseit/courseit-core/internal/domain/shared"
	"github.com/courseit/courseit-core/internal/domain/streak"
	"github.com/courseit/courseit-core/internal/domain/track"
	"github.com/courseit/courseit-core/internal/infrastructure/external/courseit"
	"github.com/courseit/courseit-core/internal/infrastructure/persistence/memory"
)

type fakeAssessor struct {
	score    int
	feedback string
	err      error
	calls    int
}

func (f *fakeAssessor) AssessAnswer(ctx context.Context, trackID string, checkpointID int, answer string) (*courseit.Assessment, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &courseit.Assessment{Score: f.score, Feedback: f.feedback}, nil
}

type capturePublisher struct {
	events []shared.Event
}

func (p *capturePublisher) Publish(event shared.Event) error {
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) types() []shared.EventType {
	out := make([]shared.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

type stageFixture struct {
	store     *memory.Store
	catalog   *track.Catalog
	ledger    *progress.Ledger
	wallet    *progress.Wallet
	streaks   *streak.Engine
	assessor  *fakeAssessor
	publisher *capturePublisher
	handler   *CompleteStageHandler
}

func newStageFixture(t *testing.T, score int) *stageFixture {
	t.Helper()

	store := memory.NewStore()
	f := &stageFixture{
		store:     store,
		catalog:   track.NewCatalog(store, nil),
		ledger:    progress.NewLedger(store, nil),
		wallet:    progress.NewWallet(store, nil),
		assessor:  &fakeAssessor{score: score, feedback: "ok"},
		publisher: &capturePublisher{},
	}
	f.streaks = streak.NewEngine(store, nil).WithClock(func() time.Time {
		return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	})
	f.handler = NewCompleteStageHandler(
		f.catalog, f.ledger, f.wallet, f.streaks, f.assessor, f.publisher,
		DefaultCompleteStageHandlerConfig(),
	)
	return f
}

func TestCompleteStage_PassAdvancesEverything(t *testing.T) {
	f := newStageFixture(t, 7)
	ctx := context.Background()

	result, err := f.handler.Handle(ctx, CompleteStageCommand{
		TrackID:      "chess-beginner",
		CheckpointID: 1,
		Answer:       "The rook moves in straight lines.",
	})
	require.NoError(t, err)

	assert.True(t, result.Passed)
	assert.Equal(t, 7, result.Score)
	assert.Equal(t, 1, result.CompletedCount)
	assert.False(t, result.TrackMastered)
	assert.Equal(t, 7, result.CoinsEarned)
	assert.Equal(t, 7, result.NewBalance)
	assert.Equal(t, 1, result.CurrentStreak)

	assert.Equal(t, 1, f.ledger.Load(ctx).Completed("chess-beginner"))
	assert.Equal(t, 7, f.wallet.Balance(ctx))
	assert.Equal(t, 1, f.streaks.CurrentStreak(ctx))

	assert.Equal(t, []shared.EventType{
		shared.EventStageCompleted,
		shared.EventCoinsAdded,
		shared.EventStreakExtended,
	}, f.publisher.types())
}

func TestCompleteStage_FailingScoreChangesNothing(t *testing.T) {
	f := newStageFixture(t, 3)
	ctx := context.Background()

	result, err := f.handler.Handle(ctx, CompleteStageCommand{
		TrackID:      "chess-beginner",
		CheckpointID: 1,
		Answer:       "No idea.",
	})
	require.NoError(t, err)

	assert.False(t, result.Passed)
	assert.Equal(t, 3, result.Score)
	assert.Equal(t, 0, result.CompletedCount)
	assert.Equal(t, 0, result.CoinsEarned)

	assert.Equal(t, 0, f.ledger.Load(ctx).Completed("chess-beginner"))
	assert.Equal(t, 0, f.wallet.Balance(ctx))
	assert.Equal(t, 0, f.streaks.CurrentStreak(ctx))
	assert.Empty(t, f.publisher.events)
}

func TestCompleteStage_SameDaySecondPassKeepsStreakQuiet(t *testing.T) {
	f := newStageFixture(t, 7)
	ctx := context.Background()

	first, err := f.handler.Handle(ctx, CompleteStageCommand{
		TrackID:      "chess-beginner",
		CheckpointID: 1,
		Answer:       "The rook moves in straight lines.",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.CurrentStreak)

	f.publisher.events = nil

	// The second pass on the same calendar day is idempotent for the streak,
	// so no StreakExtended event is published for it.
	second, err := f.handler.Handle(ctx, CompleteStageCommand{
		TrackID:      "chess-beginner",
		CheckpointID: 2,
		Answer:       "Bishops stay on their color.",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.CurrentStreak)
	assert.Equal(t, []shared.EventType{
		shared.EventStageCompleted,
		shared.EventCoinsAdded,
	}, f.publisher.types())
}

func TestCompleteStage_OutOfTurnRejectedBeforeAssessment(t *testing.T) {
	f := newStageFixture(t, 9)

	_, err := f.handler.Handle(context.Background(), CompleteStageCommand{
		TrackID:      "chess-beginner",
		CheckpointID: 3,
		Answer:       "answer",
	})
	assert.ErrorIs(t, err, shared.ErrCheckpointOutOfTurn)
	assert.Equal(t, 0, f.assessor.calls)
}

func TestCompleteStage_UnknownTrack(t *testing.T) {
	f := newStageFixture(t, 9)

	_, err := f.handler.Handle(context.Background(), CompleteStageCommand{
		TrackID:      "no-such-track",
		CheckpointID: 1,
		Answer:       "answer",
	})
	assert.ErrorIs(t, err, shared.ErrTrackNotFound)
}

func TestCompleteStage_UnknownCheckpoint(t *testing.T) {
	f := newStageFixture(t, 9)
	ctx := context.Background()

	// chess-beginner has 6 checkpoints.
	require.NoError(t, f.ledger.Save(ctx, progress.ProgressMap{"chess-beginner": 6}))

	_, err := f.handler.Handle(ctx, CompleteStageCommand{
		TrackID:      "chess-beginner",
		CheckpointID: 7,
		Answer:       "answer",
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCompleteStage_LastCheckpointMastersTrack(t *testing.T) {
	f := newStageFixture(t, 8)
	ctx := context.Background()

	require.NoError(t, f.ledger.Save(ctx, progress.ProgressMap{"chess-beginner": 5}))

	result, err := f.handler.Handle(ctx, CompleteStageCommand{
		TrackID:      "chess-beginner",
		CheckpointID: 6,
		Answer:       "Checkmate patterns.",
	})
	require.NoError(t, err)

	assert.True(t, result.TrackMastered)
	assert.Contains(t, f.publisher.types(), shared.EventTrackMastered)
}

func TestCompleteStage_AssessmentErrorPropagates(t *testing.T) {
	f := newStageFixture(t, 0)
	f.assessor.err = shared.ErrTimeout

	_, err := f.handler.Handle(context.Background(), CompleteStageCommand{
		TrackID:      "chess-beginner",
		CheckpointID: 1,
		Answer:       "answer",
	})
	assert.ErrorIs(t, err, shared.ErrTimeout)
}

func TestCompleteStage_Validation(t *testing.T) {
	f := newStageFixture(t, 9)

	cases := []CompleteStageCommand{
		{TrackID: "", CheckpointID: 1, Answer: "a"},
		{TrackID: "chess-beginner", CheckpointID: 0, Answer: "a"},
		{TrackID: "chess-beginner", CheckpointID: 1, Answer: ""},
	}
	for _, cmd := range cases {
		_, err := f.handler.Handle(context.Background(), cmd)
		assert.Error(t, err)
	}
	assert.Equal(t, 0, f.assessor.calls)
}
