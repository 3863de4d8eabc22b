package courseit

import (
	"fmt"

	"github.com/courseit/courseit-core/internal/domain/track"
)

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST DTOs
// ══════════════════════════════════════════════════════════════════════════════

// CreateTrackRequestDTO is the payload for POST /create_track.
type CreateTrackRequestDTO struct {
	TrackName      string `json:"track_name"`
	Description    string `json:"description"`
	Difficulty     string `json:"difficulty"`
	Timeframe      string `json:"timeframe"`
	NumCheckpoints int    `json:"num_checkpoints"`
}

// NewCreateTrackRequestDTO maps a domain request to the wire format.
func NewCreateTrackRequestDTO(req track.CreateRequest) CreateTrackRequestDTO {
	return CreateTrackRequestDTO{
		TrackName:      req.Name,
		Description:    req.Description,
		Difficulty:     string(req.Difficulty),
		Timeframe:      req.Timeframe,
		NumCheckpoints: req.NumCheckpoints,
	}
}

// AssessRequestDTO is the payload for POST /assess_answer.
// CheckpointID is sent as a string - the backend expects it that way.
type AssessRequestDTO struct {
	TrackID      string `json:"trackId"`
	CheckpointID string `json:"checkpointId"`
	UserAnswer   string `json:"userAnswer"`
}

// ══════════════════════════════════════════════════════════════════════════════
// RESPONSE DTOs
// ══════════════════════════════════════════════════════════════════════════════

// TrackDTO mirrors the track JSON returned by /create_track. The field names
// match the persisted track format, so the generated track can be cached
// verbatim.
type TrackDTO struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Difficulty  string          `json:"difficulty,omitempty"`
	Timeframe   string          `json:"timeframe,omitempty"`
	Checkpoints []CheckpointDTO `json:"checkpoints"`
	Flashcards  []FlashcardDTO  `json:"flashcards,omitempty"`
}

// CheckpointDTO mirrors one checkpoint in the generated track.
type CheckpointDTO struct {
	CheckpointID int      `json:"checkpointId"`
	Title        string   `json:"title"`
	VideoURL     string   `json:"videoUrl,omitempty"`
	Description  string   `json:"description,omitempty"`
	CreatorName  string   `json:"creatorName,omitempty"`
	Outcomes     []string `json:"outcomes,omitempty"`
}

// FlashcardDTO mirrors one flashcard in the generated track.
type FlashcardDTO struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty"`
}

// ToDomain converts the DTO to a domain track.
func (d TrackDTO) ToDomain() track.Track {
	checkpoints := make([]track.Checkpoint, len(d.Checkpoints))
	for i, cp := range d.Checkpoints {
		checkpoints[i] = track.Checkpoint{
			CheckpointID: cp.CheckpointID,
			Title:        cp.Title,
			VideoURL:     cp.VideoURL,
			Description:  cp.Description,
			CreatorName:  cp.CreatorName,
			Outcomes:     cp.Outcomes,
		}
	}

	var flashcards []track.Flashcard
	for _, fc := range d.Flashcards {
		flashcards = append(flashcards, track.Flashcard{
			Question:   fc.Question,
			Answer:     fc.Answer,
			Difficulty: fc.Difficulty,
		})
	}

	return track.Track{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Difficulty:  d.Difficulty,
		Timeframe:   d.Timeframe,
		Checkpoints: checkpoints,
		Flashcards:  flashcards,
		UserCreated: true,
	}
}

// AssessmentDTO mirrors the response of /assess_answer.
type AssessmentDTO struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// APIErrorDTO is the error body the backend returns on 4xx/5xx.
type APIErrorDTO struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Error implements the error interface.
func (e *APIErrorDTO) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("courseit api: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("courseit api: %s", e.Message)
}
