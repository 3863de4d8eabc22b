package query

import (
	"context"

	"github.com/courseit/courseit-core/internal/domain/progress"
	"github.com/courseit/courseit-core/internal/domain/shared"
	"github.com/courseit/courseit-core/internal/domain/track"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET TRACKS QUERY
// Lists the merged catalog (bundled + user-created) with per-track progress.
// ══════════════════════════════════════════════════════════════════════════════

// TrackSummary is one catalog track with its progress state.
type TrackSummary struct {
	track.Track

	// CompletedCount is how many checkpoints are completed.
	CompletedCount int `json:"completedCount"`

	// Mastered indicates every checkpoint is completed.
	Mastered bool `json:"mastered"`

	// NextCheckpointID is the 1-based id of the next checkpoint to take,
	// or 0 when the track is mastered.
	NextCheckpointID int `json:"nextCheckpointId,omitempty"`
}

// GetTracksHandler handles the track list query.
type GetTracksHandler struct {
	catalog *track.Catalog
	ledger  *progress.Ledger
}

// NewGetTracksHandler creates a new GetTracksHandler.
func NewGetTracksHandler(catalog *track.Catalog, ledger *progress.Ledger) *GetTracksHandler {
	return &GetTracksHandler{catalog: catalog, ledger: ledger}
}

// Handle returns every catalog track with its progress.
func (h *GetTracksHandler) Handle(ctx context.Context) []TrackSummary {
	tracks := h.catalog.Tracks(ctx)
	progressMap := h.ledger.Load(ctx)

	summaries := make([]TrackSummary, 0, len(tracks))
	for _, trk := range tracks {
		completed := progressMap.Completed(trk.ID)
		summary := TrackSummary{
			Track:          trk,
			CompletedCount: completed,
			Mastered:       trk.IsMastered(completed),
		}
		if next := trk.NextCheckpoint(completed); next != nil {
			summary.NextCheckpointID = next.CheckpointID
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// HandleOne returns a single track with its progress, or shared.ErrTrackNotFound.
func (h *GetTracksHandler) HandleOne(ctx context.Context, trackID string) (*TrackSummary, error) {
	trk := h.catalog.TrackByID(ctx, trackID)
	if trk == nil {
		return nil, shared.ErrTrackNotFound
	}

	completed := h.ledger.Load(ctx).Completed(trackID)
	summary := &TrackSummary{
		Track:          *trk,
		CompletedCount: completed,
		Mastered:       trk.IsMastered(completed),
	}
	if next := trk.NextCheckpoint(completed); next != nil {
		summary.NextCheckpointID = next.CheckpointID
	}
	return summary, nil
}
