package achievement

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/courseit/courseit-core/internal/domain/shared"
	"github.com/courseit/courseit-core/internal/domain/stats"
)

// ══════════════════════════════════════════════════════════════════════════════
// ACHIEVEMENT ENGINE
// Заработанные достижения хранятся простым JSON-массивом идентификаторов.
// ══════════════════════════════════════════════════════════════════════════════

// Engine управляет выдачей достижений поверх хранилища.
type Engine struct {
	store shared.KeyValueStore
	log   *slog.Logger
}

// NewEngine создаёт движок достижений поверх хранилища.
func NewEngine(store shared.KeyValueStore, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{store: store, log: log}
}

// Earned возвращает список заработанных ID. Отсутствующий ключ и битые
// данные трактуются как пустой список.
func (e *Engine) Earned(ctx context.Context) []string {
	data, err := e.store.Get(ctx, shared.KeyAchievements)
	if err != nil {
		if !errors.Is(err, shared.ErrKeyNotFound) {
			e.log.Warn("failed to load achievements, treating as empty", "error", err)
		}
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		e.log.Warn("stored achievements are corrupted, treating as empty", "error", err)
		return []string{}
	}
	return ids
}

// EarnedDetails возвращает определения заработанных достижений в порядке их
// получения. Неизвестные ID молча пропускаются - каталог мог измениться.
func (e *Engine) EarnedDetails(ctx context.Context) []Definition {
	var details []Definition
	for _, id := range e.Earned(ctx) {
		if def := DefinitionByID(id); def != nil {
			details = append(details, *def)
		}
	}
	return details
}

// Evaluate проверяет статистику по всем ещё не заработанным достижениям и
// возвращает ID новых. Идемпотентен: уже выданные достижения не проверяются
// и не выдаются повторно. Если новых нет, запись в хранилище не происходит.
func (e *Engine) Evaluate(ctx context.Context, snapshot stats.Snapshot) ([]string, error) {
	earned := e.Earned(ctx)
	earnedSet := make(map[string]struct{}, len(earned))
	for _, id := range earned {
		earnedSet[id] = struct{}{}
	}

	var newlyEarned []string
	for _, def := range Definitions() {
		if _, ok := earnedSet[def.ID]; ok {
			continue
		}
		if def.Criteria == nil {
			continue
		}
		if e.passes(def, snapshot) {
			e.log.Info("achievement unlocked", "achievement_id", def.ID, "name", def.Name)
			newlyEarned = append(newlyEarned, def.ID)
		}
	}

	if len(newlyEarned) == 0 {
		return nil, nil
	}

	updated := append(earned, newlyEarned...)
	data, err := json.Marshal(updated)
	if err != nil {
		return nil, err
	}
	if err := e.store.Set(ctx, shared.KeyAchievements, data); err != nil {
		return nil, shared.WrapError("achievement", "Evaluate", shared.ErrStorageWrite, "failed to persist achievements", err)
	}
	return newlyEarned, nil
}

// passes вычисляет критерий, изолируя панику: сломанный критерий одного
// достижения не должен срывать проверку остальных.
func (e *Engine) passes(def Definition, snapshot stats.Snapshot) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("achievement criteria panicked", "achievement_id", def.ID, "panic", r)
			ok = false
		}
	}()
	return def.Criteria(snapshot)
}

// Reset удаляет все заработанные достижения из хранилища.
func (e *Engine) Reset(ctx context.Context) error {
	if err := e.store.Remove(ctx, shared.KeyAchievements); err != nil {
		return shared.WrapError("achievement", "Reset", shared.ErrStorageWrite, "failed to reset achievements", err)
	}
	return nil
}
