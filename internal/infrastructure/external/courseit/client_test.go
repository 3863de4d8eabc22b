package courseit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseit/courseit-core/internal/domain/shared"
	"github.com/courseit/courseit-core/internal/domain/track"
)

func TestTrackDTO_Parsing(t *testing.T) {
	jsonData := `{
    "id": "spanish-basics-a1b2",
    "title": "Spanish Basics",
    "description": "Conversational Spanish for travel",
    "difficulty": "Beginner",
    "timeframe": "2 weeks",
    "checkpoints": [
        {
            "checkpointId": 1,
            "title": "Greetings",
            "videoUrl": "https://www.youtube.com/watch?v=abc123def45",
            "description": "Common greetings and introductions.",
            "creatorName": "SpanishPod",
            "outcomes": ["Say hello and goodbye.", "Introduce yourself."]
        },
        {
            "checkpointId": 2,
            "title": "Numbers 1-20",
            "videoUrl": "https://www.youtube.com/watch?v=xyz987uvw65",
            "description": "Counting basics.",
            "creatorName": "SpanishPod",
            "outcomes": ["Count to twenty."]
        }
    ],
    "flashcards": [
        {"question": "How do you say 'hello'?", "answer": "Hola", "difficulty": "easy"}
    ]
}`

	var dto TrackDTO
	err := json.Unmarshal([]byte(jsonData), &dto)
	assert.NoError(t, err)

	assert.Equal(t, "spanish-basics-a1b2", dto.ID)
	assert.Equal(t, "Spanish Basics", dto.Title)
	assert.Len(t, dto.Checkpoints, 2)
	assert.Equal(t, 1, dto.Checkpoints[0].CheckpointID)
	assert.Equal(t, "Greetings", dto.Checkpoints[0].Title)
	assert.Len(t, dto.Flashcards, 1)

	domainTrack := dto.ToDomain()
	assert.True(t, domainTrack.UserCreated)
	assert.Equal(t, 2, domainTrack.CheckpointCount())
	require.NoError(t, domainTrack.Validate())
}

func validCreateRequest() track.CreateRequest {
	return track.CreateRequest{
		Name:           "Spanish Basics",
		Description:    "Conversational Spanish for travel",
		Difficulty:     track.DifficultyBeginner,
		Timeframe:      "2 weeks",
		NumCheckpoints: 5,
	}
}

func TestClient_CreateTrack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/create_track", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req CreateTrackRequestDTO
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Spanish Basics", req.TrackName)
		assert.Equal(t, 5, req.NumCheckpoints)

		json.NewEncoder(w).Encode(TrackDTO{
			ID:    "spanish-basics-a1b2",
			Title: req.TrackName,
			Checkpoints: []CheckpointDTO{
				{CheckpointID: 1, Title: "Greetings"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(DefaultClientConfig(server.URL))
	created, err := client.CreateTrack(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "spanish-basics-a1b2", created.ID)
	assert.True(t, created.UserCreated)
}

func TestClient_CreateTrack_InvalidRequestNotSent(t *testing.T) {
	client := NewClient(DefaultClientConfig("http://unreachable.invalid"))

	req := validCreateRequest()
	req.NumCheckpoints = 50
	_, err := client.CreateTrack(context.Background(), req)
	assert.ErrorIs(t, err, track.ErrInvalidCheckpointCount)
}

func TestClient_CreateTrack_InvalidResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No id, no checkpoints.
		json.NewEncoder(w).Encode(map[string]string{"title": "broken"})
	}))
	defer server.Close()

	client := NewClient(DefaultClientConfig(server.URL))
	_, err := client.CreateTrack(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, shared.ErrInvalidFormat)
}

func TestClient_CreateTrack_ErrorMessageExtracted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "num_checkpoints must be between 1 and 20"})
	}))
	defer server.Close()

	client := NewClient(DefaultClientConfig(server.URL))
	_, err := client.CreateTrack(context.Background(), validCreateRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "num_checkpoints must be between 1 and 20")
}

func TestClient_AssessAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/assess_answer", r.URL.Path)

		var req AssessRequestDTO
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "chess-beginner", req.TrackID)
		// Checkpoint id travels as a string.
		assert.Equal(t, "3", req.CheckpointID)

		json.NewEncoder(w).Encode(AssessmentDTO{Score: 7, Feedback: "Solid understanding."})
	}))
	defer server.Close()

	client := NewClient(DefaultClientConfig(server.URL))
	result, err := client.AssessAnswer(context.Background(), "chess-beginner", 3, "Rooks move in straight lines.")
	require.NoError(t, err)
	assert.Equal(t, 7, result.Score)
	assert.Equal(t, "Solid understanding.", result.Feedback)
	assert.True(t, result.Passed(5))
	assert.False(t, result.Passed(8))
}

func TestClient_AssessAnswer_ScoreOutOfRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(AssessmentDTO{Score: 15})
	}))
	defer server.Close()

	client := NewClient(DefaultClientConfig(server.URL))
	_, err := client.AssessAnswer(context.Background(), "chess-beginner", 1, "answer")
	assert.ErrorIs(t, err, shared.ErrValueOutOfRange)
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(AssessmentDTO{Score: 5})
	}))
	defer server.Close()

	cfg := DefaultClientConfig(server.URL)
	cfg.Timeout = 50 * time.Millisecond
	client := NewClient(cfg)

	_, err := client.AssessAnswer(context.Background(), "chess-beginner", 1, "answer")
	assert.ErrorIs(t, err, shared.ErrTimeout)
}

func TestClient_ServerErrorSurfacesAsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(DefaultClientConfig(server.URL))
	_, err := client.AssessAnswer(context.Background(), "chess-beginner", 1, "answer")
	assert.ErrorIs(t, err, shared.ErrServiceUnavailable)
}
