// Package progress содержит доменную модель прогресса пользователя:
// счётчики пройденных этапов по трекам и кошелёк с монетами.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/courseit/courseit-core/internal/domain/shared"
	"github.com/courseit/courseit-core/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS LEDGER
// Прогресс хранится как отображение "ID трека -> число пройденных этапов".
// Счётчик по треку только растёт: Advance с меньшим или равным значением
// молча игнорируется. Это защищает от повторной отправки уже пройденного
// этапа, но не проверяет порядок - порядок этапов контролирует вызывающий код.
// ══════════════════════════════════════════════════════════════════════════════

// ProgressMap - счётчики пройденных этапов по идентификаторам треков.
type ProgressMap map[string]int

// Completed возвращает число пройденных этапов трека (0 для незнакомого ID).
func (p ProgressMap) Completed(trackID string) int {
	return p[trackID]
}

// progressEnvelope - формат хранения прогресса.
// Timestamp - момент последней записи в формате ISO 8601.
type progressEnvelope struct {
	Progress  ProgressMap `json:"progress"`
	Timestamp string      `json:"timestamp"`
}

// Ledger управляет чтением и записью прогресса в хранилище.
type Ledger struct {
	store shared.KeyValueStore
	log   *slog.Logger
}

// NewLedger создаёт журнал прогресса поверх хранилища.
func NewLedger(store shared.KeyValueStore, log *slog.Logger) *Ledger {
	if log == nil {
		log = slog.Default()
	}
	return &Ledger{store: store, log: log}
}

// Load возвращает текущий прогресс. Отсутствующий ключ и битые данные
// трактуются как пустой прогресс - чтение никогда не фатально.
func (l *Ledger) Load(ctx context.Context) ProgressMap {
	data, err := l.store.Get(ctx, shared.KeyProgress)
	if err != nil {
		if !errors.Is(err, shared.ErrKeyNotFound) {
			l.log.Warn("failed to load progress, treating as empty", "error", err)
		}
		return ProgressMap{}
	}

	var envelope progressEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		l.log.Warn("stored progress is corrupted, treating as empty", "error", err)
		return ProgressMap{}
	}
	if envelope.Progress == nil {
		return ProgressMap{}
	}
	return envelope.Progress
}

// Save полностью перезаписывает прогресс вместе с меткой времени.
func (l *Ledger) Save(ctx context.Context, progress ProgressMap) error {
	envelope := progressEnvelope{
		Progress:  progress,
		Timestamp: timeutil.Timestamp(),
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	if err := l.store.Set(ctx, shared.KeyProgress, data); err != nil {
		return shared.WrapError("progress", "Save", shared.ErrStorageWrite, "failed to persist progress", err)
	}
	return nil
}

// Advance повышает счётчик трека до completedCount, если новое значение
// строго больше текущего. Меньшее или равное значение игнорируется без
// ошибки. Возвращает true, если запись произошла.
func (l *Ledger) Advance(ctx context.Context, trackID string, completedCount int) (bool, error) {
	current := l.Load(ctx)
	if completedCount <= current.Completed(trackID) {
		l.log.Debug("progress not advanced, count not greater than stored",
			"track_id", trackID, "count", completedCount, "stored", current.Completed(trackID))
		return false, nil
	}

	updated := make(ProgressMap, len(current)+1)
	for k, v := range current {
		updated[k] = v
	}
	updated[trackID] = completedCount

	if err := l.Save(ctx, updated); err != nil {
		return false, err
	}
	l.log.Info("progress advanced", "track_id", trackID, "completed", completedCount)
	return true, nil
}

// Remove удаляет весь прогресс из хранилища.
func (l *Ledger) Remove(ctx context.Context) error {
	if err := l.store.Remove(ctx, shared.KeyProgress); err != nil {
		return shared.WrapError("progress", "Remove", shared.ErrStorageWrite, "failed to remove progress", err)
	}
	return nil
}

// RawEnvelope возвращает сырой сохранённый конверт прогресса как есть.
// Используется отладочной командой дампа.
func (l *Ledger) RawEnvelope(ctx context.Context) (map[string]interface{}, error) {
	data, err := l.store.Get(ctx, shared.KeyProgress)
	if err != nil {
		if errors.Is(err, shared.ErrKeyNotFound) {
			return map[string]interface{}{}, nil
		}
		return nil, shared.WrapError("progress", "RawEnvelope", shared.ErrStorageRead, "failed to read progress", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, shared.WrapError("progress", "RawEnvelope", shared.ErrInvalidFormat, "stored progress is not valid JSON", err)
	}
	return raw, nil
}
