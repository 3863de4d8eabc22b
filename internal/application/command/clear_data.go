package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/courseit/courseit-core/internal/domain/progress"
	"github.com/courseit/courseit-core/internal/domain/shared"
	"github.com/courseit/courseit-core/internal/domain/track"
)

// ══════════════════════════════════════════════════════════════════════════════
// CLEAR DATA COMMAND
// Resets the learning state: progress, coin balance and cached user tracks.
// The streak record and earned achievements deliberately survive the reset.
// ══════════════════════════════════════════════════════════════════════════════

// ClearDataCommand resets the learning state.
type ClearDataCommand struct {
	// CorrelationID for tracing.
	CorrelationID string
}

// ClearDataResult contains the outcome of the reset.
type ClearDataResult struct {
	// RemovedKeys lists the storage keys that were removed.
	RemovedKeys []string
}

// ClearDataHandler handles the ClearDataCommand.
type ClearDataHandler struct {
	catalog   *track.Catalog
	ledger    *progress.Ledger
	wallet    *progress.Wallet
	publisher shared.EventPublisher
	logger    *slog.Logger
}

// NewClearDataHandler creates a new ClearDataHandler.
func NewClearDataHandler(
	catalog *track.Catalog,
	ledger *progress.Ledger,
	wallet *progress.Wallet,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) *ClearDataHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = shared.NoopPublisher{}
	}
	return &ClearDataHandler{
		catalog:   catalog,
		ledger:    ledger,
		wallet:    wallet,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the clear data command.
// All three removals are attempted; the first failure aborts so the caller
// can retry without losing track of partial state.
func (h *ClearDataHandler) Handle(ctx context.Context, cmd ClearDataCommand) (*ClearDataResult, error) {
	result := &ClearDataResult{RemovedKeys: make([]string, 0, 3)}

	if err := h.ledger.Remove(ctx); err != nil {
		return nil, fmt.Errorf("clear_data: failed to remove progress: %w", err)
	}
	result.RemovedKeys = append(result.RemovedKeys, shared.KeyProgress)

	if err := h.wallet.Remove(ctx); err != nil {
		return nil, fmt.Errorf("clear_data: failed to remove coin balance: %w", err)
	}
	result.RemovedKeys = append(result.RemovedKeys, shared.KeyCoins)

	if err := h.catalog.RemoveUserTracks(ctx); err != nil {
		return nil, fmt.Errorf("clear_data: failed to remove user tracks: %w", err)
	}
	result.RemovedKeys = append(result.RemovedKeys, shared.KeyUserTracks)

	event := shared.NewProgressClearedEvent(result.RemovedKeys)
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	if err := h.publisher.Publish(event); err != nil {
		h.logger.Error("failed to publish event", "event_type", event.EventType(), "error", err)
	}

	h.logger.Info("learning data cleared", "removed_keys", result.RemovedKeys)
	return result, nil
}
