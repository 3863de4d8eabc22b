// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"log/slog"

	"github.com/courseit/courseit-core/internal/domain/achievement"
	"github.com/courseit/courseit-core/internal/domain/stats"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PROFILE QUERY
// Builds the profile view: aggregated statistics plus the achievement list.
// Reading the profile is also the moment achievements are evaluated, so a
// milestone reached since the last visit unlocks here.
// ══════════════════════════════════════════════════════════════════════════════

// AchievementView is one achievement with its earned state.
type AchievementView struct {
	achievement.Definition

	// Earned indicates the achievement has been unlocked.
	Earned bool `json:"earned"`
}

// Profile is the complete profile view.
type Profile struct {
	// Stats are the aggregated learning statistics.
	Stats stats.Snapshot `json:"stats"`

	// Achievements lists every defined achievement with its earned state.
	Achievements []AchievementView `json:"achievements"`

	// NewlyUnlocked contains the IDs of achievements unlocked by this read.
	NewlyUnlocked []string `json:"newlyUnlocked,omitempty"`
}

// GetProfileHandler handles the profile query.
type GetProfileHandler struct {
	aggregator   *stats.Aggregator
	achievements *achievement.Engine
	logger       *slog.Logger
}

// NewGetProfileHandler creates a new GetProfileHandler.
func NewGetProfileHandler(
	aggregator *stats.Aggregator,
	achievements *achievement.Engine,
	logger *slog.Logger,
) *GetProfileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetProfileHandler{
		aggregator:   aggregator,
		achievements: achievements,
		logger:       logger,
	}
}

// Handle builds the profile view.
// An achievement evaluation failure degrades to the already-earned list
// instead of failing the whole profile read.
func (h *GetProfileHandler) Handle(ctx context.Context) (*Profile, error) {
	snapshot := h.aggregator.Collect(ctx)

	newlyUnlocked, err := h.achievements.Evaluate(ctx, snapshot)
	if err != nil {
		h.logger.Error("achievement evaluation failed", "error", err)
		newlyUnlocked = nil
	}

	earned := make(map[string]bool)
	for _, id := range h.achievements.Earned(ctx) {
		earned[id] = true
	}

	definitions := achievement.Definitions()
	views := make([]AchievementView, 0, len(definitions))
	for _, def := range definitions {
		views = append(views, AchievementView{
			Definition: def,
			Earned:     earned[def.ID],
		})
	}

	return &Profile{
		Stats:         snapshot,
		Achievements:  views,
		NewlyUnlocked: newlyUnlocked,
	}, nil
}
