package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/courseit/courseit-core/internal/application/command"
	"github.com/courseit/courseit-core/internal/application/saga"
	"github.com/courseit/courseit-core/internal/domain/shared"
	"github.com/courseit/courseit-core/internal/domain/track"
)

// ══════════════════════════════════════════════════════════════════════════════
// HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTracks(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.handlers.Tracks.Handle(r.Context()))
}

func (s *Server) handleGetTrack(w http.ResponseWriter, r *http.Request) {
	summary, err := s.handlers.Tracks.HandleOne(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

// createTrackRequest is the request body for POST /api/tracks.
type createTrackRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Difficulty     string `json:"difficulty"`
	Timeframe      string `json:"timeframe"`
	NumCheckpoints int    `json:"numCheckpoints"`
}

func (s *Server) handleCreateTrack(w http.ResponseWriter, r *http.Request) {
	var body createTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	result, err := s.handlers.TrackCreation.Execute(r.Context(), saga.TrackCreationInput{
		Request: track.CreateRequest{
			Name:           body.Name,
			Description:    body.Description,
			Difficulty:     track.Difficulty(body.Difficulty),
			Timeframe:      body.Timeframe,
			NumCheckpoints: body.NumCheckpoints,
		},
		CorrelationID: requestIDFrom(r.Context()),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, result)
}

// assessRequest is the request body for the assess endpoint.
type assessRequest struct {
	Answer string `json:"answer"`
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	checkpointID, err := strconv.Atoi(r.PathValue("checkpointId"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody("checkpoint id must be a number"))
		return
	}

	var body assessRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	result, err := s.handlers.CompleteStage.Handle(r.Context(), command.CompleteStageCommand{
		TrackID:       r.PathValue("id"),
		CheckpointID:  checkpointID,
		Answer:        body.Answer,
		CorrelationID: requestIDFrom(r.Context()),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.handlers.Profile.Handle(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	result, err := s.handlers.ClearData.Handle(r.Context(), command.ClearDataCommand{
		CorrelationID: requestIDFrom(r.Context()),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// RESPONSE HELPERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func errorBody(message string) map[string]string {
	return map[string]string{"message": message}
}

// writeError maps domain errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case shared.IsNotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, shared.ErrInsufficientCoins):
		status = http.StatusPaymentRequired
	case errors.Is(err, shared.ErrCheckpointOutOfTurn):
		status = http.StatusConflict
	case shared.IsValidation(err) || errors.Is(err, track.ErrInvalidCheckpointCount) ||
		errors.Is(err, track.ErrEmptyField) || errors.Is(err, track.ErrInvalidDifficulty):
		status = http.StatusBadRequest
	case shared.IsTimeout(err):
		status = http.StatusGatewayTimeout
	case shared.IsExternalService(err):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestIDFrom(r.Context()),
			"error", err)
	}
	s.writeJSON(w, status, errorBody(err.Error()))
}
