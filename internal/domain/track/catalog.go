package track

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/courseit/courseit-core/internal/domain/shared"
	"github.com/courseit/courseit-core/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// TRACK CATALOG
// Каталог объединяет встроенные треки и пользовательские треки из хранилища.
// Слияние идёт в порядке "встроенные, затем пользовательские": пользовательский
// трек с тем же ID перекрывает встроенный.
// ══════════════════════════════════════════════════════════════════════════════

// userTracksEnvelope - формат хранения пользовательских треков.
// Timestamp - момент последней записи в формате ISO 8601.
type userTracksEnvelope struct {
	Tracks    []Track `json:"tracks"`
	Timestamp string  `json:"timestamp"`
}

// Catalog предоставляет доступ к полному списку треков.
// Объединённый список кэшируется в памяти до вызова Invalidate.
// Потокобезопасен.
type Catalog struct {
	store shared.KeyValueStore
	log   *slog.Logger

	mu     sync.RWMutex
	merged []Track
	loaded bool
}

// NewCatalog создаёт каталог поверх хранилища.
func NewCatalog(store shared.KeyValueStore, log *slog.Logger) *Catalog {
	if log == nil {
		log = slog.Default()
	}
	return &Catalog{store: store, log: log}
}

// Tracks возвращает объединённый список треков: встроенные плюс
// пользовательские. Ошибки чтения хранилища не фатальны - в худшем случае
// возвращаются только встроенные треки.
func (c *Catalog) Tracks(ctx context.Context) []Track {
	c.mu.RLock()
	if c.loaded {
		tracks := make([]Track, len(c.merged))
		copy(tracks, c.merged)
		c.mu.RUnlock()
		return tracks
	}
	c.mu.RUnlock()

	merged := c.merge(ctx)

	c.mu.Lock()
	c.merged = merged
	c.loaded = true
	c.mu.Unlock()

	tracks := make([]Track, len(merged))
	copy(tracks, merged)
	return tracks
}

// TrackByID возвращает трек по идентификатору или nil, если трека нет.
// Отсутствие трека - не ошибка: вызывающий код сам решает, как реагировать.
func (c *Catalog) TrackByID(ctx context.Context, id string) *Track {
	for _, t := range c.Tracks(ctx) {
		if t.ID == id {
			found := t
			return &found
		}
	}
	return nil
}

// AddUserTrack добавляет пользовательский трек в хранилище и сбрасывает кэш.
// Трек с уже занятым ID молча пропускается (пишется только предупреждение в
// лог) - повторная генерация не должна ломать уже сохранённые данные.
func (c *Catalog) AddUserTrack(ctx context.Context, t Track) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.UserCreated = true

	cached, err := c.UserTracks(ctx)
	if err != nil {
		return err
	}
	for _, existing := range cached {
		if existing.ID == t.ID {
			c.log.Warn("track already cached, skipping", "track_id", t.ID)
			return nil
		}
	}
	cached = append(cached, t)

	envelope := userTracksEnvelope{
		Tracks:    cached,
		Timestamp: timeutil.Timestamp(),
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	if err := c.store.Set(ctx, shared.KeyUserTracks, data); err != nil {
		return shared.WrapError("track", "AddUserTrack", shared.ErrStorageWrite, "failed to cache user track", err)
	}

	c.Invalidate()
	return nil
}

// UserTracks возвращает пользовательские треки из хранилища.
// Отсутствующий ключ и битый JSON трактуются как пустой список.
func (c *Catalog) UserTracks(ctx context.Context) ([]Track, error) {
	data, err := c.store.Get(ctx, shared.KeyUserTracks)
	if err != nil {
		if errors.Is(err, shared.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, shared.WrapError("track", "UserTracks", shared.ErrStorageRead, "failed to read cached tracks", err)
	}

	var envelope userTracksEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		c.log.Warn("cached tracks are corrupted, treating as empty", "error", err)
		return nil, nil
	}
	return envelope.Tracks, nil
}

// UserTrackCount возвращает количество созданных пользователем треков.
func (c *Catalog) UserTrackCount(ctx context.Context) int {
	cached, err := c.UserTracks(ctx)
	if err != nil {
		return 0
	}
	return len(cached)
}

// RemoveUserTracks удаляет все пользовательские треки из хранилища и
// сбрасывает кэш.
func (c *Catalog) RemoveUserTracks(ctx context.Context) error {
	if err := c.store.Remove(ctx, shared.KeyUserTracks); err != nil {
		return shared.WrapError("track", "RemoveUserTracks", shared.ErrStorageWrite, "failed to remove cached tracks", err)
	}
	c.Invalidate()
	return nil
}

// Invalidate сбрасывает кэш объединённого списка. Следующий вызов Tracks
// перечитает пользовательские треки из хранилища.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.merged = nil
	c.loaded = false
	c.mu.Unlock()
}

// merge строит объединённый список: встроенные треки в исходном порядке,
// затем пользовательские. Совпадение ID - пользовательский трек побеждает.
func (c *Catalog) merge(ctx context.Context) []Track {
	merged := BundledTracks()

	user, err := c.UserTracks(ctx)
	if err != nil {
		c.log.Warn("failed to load user tracks, serving bundled only", "error", err)
		return merged
	}

	for _, ut := range user {
		// Запись без ID могла остаться от старых версий или битой записи -
		// пропускаем её, в каталог она не попадает.
		if !TrackID(ut.ID).IsValid() {
			c.log.Warn("skipping cached track without id", "title", ut.Title)
			continue
		}
		replaced := false
		for i := range merged {
			if merged[i].ID == ut.ID {
				merged[i] = ut
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, ut)
		}
	}
	return merged
}
