// Package streak содержит доменную модель ежедневной серии занятий.
// Серия считается по календарным дням в локальном часовом поясе: занятия в
// 23:59 и в 00:01 следующего дня - два последовательных дня.
package streak

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/courseit/courseit-core/internal/domain/shared"
	"github.com/courseit/courseit-core/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// STREAK RECORD
// ══════════════════════════════════════════════════════════════════════════════

// Record - сохранённое состояние серии.
// LastCompletionDate - дата последнего занятия в формате YYYY-MM-DD либо
// пустая строка, если занятий ещё не было.
type Record struct {
	LastCompletionDate string `json:"lastCompletionDate"`
	CurrentStreak      int    `json:"currentStreak"`
}

// IsEmpty возвращает true, если занятий ещё не было.
func (r Record) IsEmpty() bool {
	return r.LastCompletionDate == ""
}

// ══════════════════════════════════════════════════════════════════════════════
// TRANSITIONS
// Чистые функции переходов состояния. Вынесены отдельно, чтобы тестировать
// логику серии без хранилища и реального времени.
// ══════════════════════════════════════════════════════════════════════════════

// Advance вычисляет новое состояние серии после занятия в день today.
// Правила:
//   - первое занятие: серия = 1;
//   - занятие уже было сегодня: серия не меняется (идемпотентность);
//   - последнее занятие было вчера: серия +1;
//   - перерыв больше суток: серия начинается заново с 1.
func Advance(current Record, today string) Record {
	yesterday := timeutil.PreviousDay(today)

	next := Record{LastCompletionDate: today}
	switch {
	case current.IsEmpty():
		next.CurrentStreak = 1
	case current.LastCompletionDate == today:
		next.CurrentStreak = current.CurrentStreak
	case current.LastCompletionDate == yesterday:
		next.CurrentStreak = current.CurrentStreak + 1
	default:
		next.CurrentStreak = 1
	}
	return next
}

// Effective возвращает действующую длину серии на день today.
// Серия жива, если последнее занятие было сегодня или вчера; иначе 0.
// Состояние при этом не меняется - протухшая запись остаётся в хранилище
// до следующего занятия.
func Effective(current Record, today string) int {
	if current.IsEmpty() {
		return 0
	}
	if current.LastCompletionDate == today || current.LastCompletionDate == timeutil.PreviousDay(today) {
		return current.CurrentStreak
	}
	return 0
}

// ══════════════════════════════════════════════════════════════════════════════
// STREAK ENGINE
// ══════════════════════════════════════════════════════════════════════════════

// Engine управляет серией поверх хранилища.
// Поле now подменяется в тестах для контроля календарного дня.
type Engine struct {
	store shared.KeyValueStore
	log   *slog.Logger
	now   func() time.Time
}

// NewEngine создаёт движок серии поверх хранилища.
func NewEngine(store shared.KeyValueStore, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{store: store, log: log, now: time.Now}
}

// WithClock подменяет источник времени. Только для тестов.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Load возвращает сохранённое состояние серии. Отсутствующий ключ и битые
// данные трактуются как пустая запись.
func (e *Engine) Load(ctx context.Context) Record {
	data, err := e.store.Get(ctx, shared.KeyStreak)
	if err != nil {
		if !errors.Is(err, shared.ErrKeyNotFound) {
			e.log.Warn("failed to load streak, treating as empty", "error", err)
		}
		return Record{}
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		e.log.Warn("stored streak is corrupted, treating as empty", "error", err)
		return Record{}
	}
	return record
}

// RecordCompletion фиксирует занятие за сегодняшний день и возвращает новое
// состояние серии. Повторные вызовы в один день идемпотентны.
func (e *Engine) RecordCompletion(ctx context.Context) (Record, error) {
	today := timeutil.DateString(e.now())
	current := e.Load(ctx)
	next := Advance(current, today)

	if err := e.save(ctx, next); err != nil {
		return current, err
	}

	switch {
	case current.IsEmpty():
		e.log.Info("streak started", "streak", next.CurrentStreak)
	case next.CurrentStreak > current.CurrentStreak:
		e.log.Info("streak extended", "streak", next.CurrentStreak)
	case current.LastCompletionDate != today && next.CurrentStreak == 1:
		e.log.Info("streak reset after gap", "previous", current.CurrentStreak, "last_date", current.LastCompletionDate)
	}
	return next, nil
}

// CurrentStreak возвращает действующую длину серии для отображения.
// Протухшая запись даёт 0, но в хранилище не перезаписывается.
func (e *Engine) CurrentStreak(ctx context.Context) int {
	today := timeutil.DateString(e.now())
	return Effective(e.Load(ctx), today)
}

// Reset удаляет состояние серии из хранилища.
func (e *Engine) Reset(ctx context.Context) error {
	if err := e.store.Remove(ctx, shared.KeyStreak); err != nil {
		return shared.WrapError("streak", "Reset", shared.ErrStorageWrite, "failed to reset streak", err)
	}
	return nil
}

func (e *Engine) save(ctx context.Context, record Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := e.store.Set(ctx, shared.KeyStreak, data); err != nil {
		return shared.WrapError("streak", "Save", shared.ErrStorageWrite, "failed to persist streak", err)
	}
	return nil
}
