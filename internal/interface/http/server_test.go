package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseit/courseit-core/internal/application/command"
	"github.com/courseit/courseit-core/internal/application/query"
	"github.com/courseit/courseit-core/internal/application/saga"
	"github.com/courseit/courseit-core/internal/domain/achievement"
	"github.com/courseit/courseit-core/internal/domain/progress"
	"github.com/courseit/courseit-core/internal/domain/stats"
	"github.com/courseit/courseit-core/internal/domain/streak"
	"github.com/courseit/courseit-core/internal/domain/track"
	"github.com/courseit/courseit-core/internal/infrastructure/external/courseit"
	"github.com/courseit/courseit-core/internal/infrastructure/persistence/memory"
)

type fakeAssessor struct {
	score int
}

func (f *fakeAssessor) AssessAnswer(ctx context.Context, trackID string, checkpointID int, answer string) (*courseit.Assessment, error) {
	return &courseit.Assessment{Score: f.score, Feedback: "ok"}, nil
}

type fakeGenerator struct {
	track *track.Track
	err   error
}

func (f *fakeGenerator) CreateTrack(ctx context.Context, req track.CreateRequest) (*track.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.track, nil
}

type apiFixture struct {
	store     *memory.Store
	wallet    *progress.Wallet
	assessor  *fakeAssessor
	generator *fakeGenerator
	server    *httptest.Server
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	store := memory.NewStore()
	catalog := track.NewCatalog(store, nil)
	ledger := progress.NewLedger(store, nil)
	wallet := progress.NewWallet(store, nil)
	streaks := streak.NewEngine(store, nil).WithClock(func() time.Time {
		return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	})
	achievements := achievement.NewEngine(store, nil)
	aggregator := stats.NewAggregator(ledger, wallet, streaks, catalog)

	f := &apiFixture{
		store:    store,
		wallet:   wallet,
		assessor: &fakeAssessor{score: 7},
		generator: &fakeGenerator{track: &track.Track{
			ID:          "spanish-basics-a1b2",
			Title:       "Spanish Basics",
			UserCreated: true,
			Checkpoints: []track.Checkpoint{{CheckpointID: 1, Title: "Greetings"}},
		}},
	}

	handlers := Handlers{
		Tracks:        query.NewGetTracksHandler(catalog, ledger),
		Profile:       query.NewGetProfileHandler(aggregator, achievements, nil),
		CompleteStage: command.NewCompleteStageHandler(catalog, ledger, wallet, streaks, f.assessor, nil, command.DefaultCompleteStageHandlerConfig()),
		ClearData:     command.NewClearDataHandler(catalog, ledger, wallet, nil, nil),
		TrackCreation: saga.NewTrackCreationSaga(catalog, wallet, f.generator, nil, saga.DefaultTrackCreationConfig()),
	}

	srv := NewServer(DefaultConfig(), handlers)
	f.server = httptest.NewServer(srv.Routes())
	t.Cleanup(f.server.Close)
	return f
}

func (f *apiFixture) get(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(f.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func (f *apiFixture) post(t *testing.T, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(f.server.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func TestAPI_Health(t *testing.T) {
	f := newAPIFixture(t)
	resp, body := f.get(t, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"ok"`)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestAPI_ListTracks(t *testing.T) {
	f := newAPIFixture(t)
	resp, body := f.get(t, "/api/tracks")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var summaries []query.TrackSummary
	require.NoError(t, json.Unmarshal(body, &summaries))
	assert.Len(t, summaries, 3)
}

func TestAPI_GetTrackNotFound(t *testing.T) {
	f := newAPIFixture(t)
	resp, _ := f.get(t, "/api/tracks/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_AssessPassingAnswer(t *testing.T) {
	f := newAPIFixture(t)

	resp, body := f.post(t, "/api/tracks/chess-beginner/checkpoints/1/assess", assessRequest{Answer: "Rooks move straight."})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result command.CompleteStageResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.True(t, result.Passed)
	assert.Equal(t, 7, result.Score)
	assert.Equal(t, 1, result.CompletedCount)
}

func TestAPI_AssessOutOfTurnConflicts(t *testing.T) {
	f := newAPIFixture(t)

	resp, _ := f.post(t, "/api/tracks/chess-beginner/checkpoints/4/assess", assessRequest{Answer: "skip ahead"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_CreateTrack(t *testing.T) {
	f := newAPIFixture(t)
	require.NoError(t, f.wallet.Save(context.Background(), 100))

	resp, body := f.post(t, "/api/tracks", createTrackRequest{
		Name:           "Spanish Basics",
		Description:    "Conversational Spanish",
		Difficulty:     "Beginner",
		Timeframe:      "2 weeks",
		NumCheckpoints: 5,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var result saga.TrackCreationResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, "spanish-basics-a1b2", result.Track.ID)
	assert.Equal(t, 100-saga.DefaultTrackCreationCost, result.NewBalance)
}

func TestAPI_CreateTrackWithoutCoins(t *testing.T) {
	f := newAPIFixture(t)

	resp, _ := f.post(t, "/api/tracks", createTrackRequest{
		Name:           "Spanish Basics",
		Description:    "Conversational Spanish",
		Difficulty:     "Beginner",
		Timeframe:      "2 weeks",
		NumCheckpoints: 5,
	})
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
}

func TestAPI_CreateTrackInvalidCheckpoints(t *testing.T) {
	f := newAPIFixture(t)
	require.NoError(t, f.wallet.Save(context.Background(), 100))

	resp, _ := f.post(t, "/api/tracks", createTrackRequest{
		Name:           "Spanish Basics",
		Description:    "Conversational Spanish",
		Difficulty:     "Beginner",
		Timeframe:      "2 weeks",
		NumCheckpoints: 99,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ProfileAndReset(t *testing.T) {
	f := newAPIFixture(t)

	// Complete one checkpoint, then read the profile.
	resp, _ := f.post(t, "/api/tracks/chess-beginner/checkpoints/1/assess", assessRequest{Answer: "answer"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := f.get(t, "/api/profile")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var profile query.Profile
	require.NoError(t, json.Unmarshal(body, &profile))
	assert.Equal(t, 1, profile.Stats.TotalStagesCompleted)
	assert.Contains(t, profile.NewlyUnlocked, "stages_1")

	resp, _ = f.post(t, "/api/reset", struct{}{})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = f.get(t, "/api/profile")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &profile))
	assert.Equal(t, 0, profile.Stats.TotalStagesCompleted)
	// Earned achievements survive the reset.
	var stagesEarned bool
	for _, view := range profile.Achievements {
		if view.ID == "stages_1" {
			stagesEarned = view.Earned
		}
	}
	assert.True(t, stagesEarned)
}
