package track_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseit/courseit-core/internal/domain/shared"
	"github.com/courseit/courseit-core/internal/domain/track"
	"github.com/courseit/courseit-core/internal/infrastructure/persistence/memory"
)

func newCatalog(t *testing.T) (*track.Catalog, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return track.NewCatalog(store, nil), store
}

func userTrack(id string) track.Track {
	return track.Track{
		ID:    id,
		Title: "Custom " + id,
		Checkpoints: []track.Checkpoint{
			{CheckpointID: 1, Title: "Intro"},
			{CheckpointID: 2, Title: "Basics"},
		},
	}
}

func TestCatalog_BundledOnly(t *testing.T) {
	catalog, _ := newCatalog(t)

	tracks := catalog.Tracks(context.Background())
	require.Len(t, tracks, 3)
	assert.Equal(t, "chess-beginner", tracks[0].ID)
	assert.Equal(t, "guitar-basics", tracks[1].ID)
	assert.Equal(t, "poker-intro", tracks[2].ID)
	assert.Len(t, tracks[0].Checkpoints, 6)
	assert.Len(t, tracks[1].Checkpoints, 8)
	assert.Len(t, tracks[2].Checkpoints, 7)
}

func TestCatalog_AddUserTrack(t *testing.T) {
	catalog, _ := newCatalog(t)
	ctx := context.Background()

	err := catalog.AddUserTrack(ctx, userTrack("spanish-101"))
	require.NoError(t, err)

	tracks := catalog.Tracks(ctx)
	require.Len(t, tracks, 4)
	assert.Equal(t, "spanish-101", tracks[3].ID)
	assert.True(t, tracks[3].UserCreated)
}

func TestCatalog_AddUserTrack_DuplicateIsSkipped(t *testing.T) {
	catalog, _ := newCatalog(t)
	ctx := context.Background()

	first := userTrack("spanish-101")
	require.NoError(t, catalog.AddUserTrack(ctx, first))

	second := userTrack("spanish-101")
	second.Title = "Replacement"
	require.NoError(t, catalog.AddUserTrack(ctx, second))

	cached, err := catalog.UserTracks(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "Custom spanish-101", cached[0].Title)
}

func TestCatalog_AddUserTrack_Invalid(t *testing.T) {
	catalog, _ := newCatalog(t)
	ctx := context.Background()

	err := catalog.AddUserTrack(ctx, track.Track{Title: "no id"})
	assert.ErrorIs(t, err, track.ErrMissingID)

	err = catalog.AddUserTrack(ctx, track.Track{ID: "empty"})
	assert.ErrorIs(t, err, track.ErrNoCheckpoints)
}

func TestCatalog_UserTrackOverridesBundled(t *testing.T) {
	catalog, _ := newCatalog(t)
	ctx := context.Background()

	override := userTrack("chess-beginner")
	override.Title = "My Chess Remix"
	require.NoError(t, catalog.AddUserTrack(ctx, override))

	tracks := catalog.Tracks(ctx)
	require.Len(t, tracks, 3)
	assert.Equal(t, "My Chess Remix", tracks[0].Title)
	assert.Len(t, tracks[0].Checkpoints, 2)
}

func TestCatalog_TrackByID(t *testing.T) {
	catalog, _ := newCatalog(t)
	ctx := context.Background()

	found := catalog.TrackByID(ctx, "guitar-basics")
	require.NotNil(t, found)
	assert.Equal(t, "Campfire Guitar Chords", found.Title)

	assert.Nil(t, catalog.TrackByID(ctx, "does-not-exist"))
}

func TestCatalog_CorruptedCacheTreatedAsEmpty(t *testing.T) {
	catalog, store := newCatalog(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, shared.KeyUserTracks, []byte("{not json")))

	tracks := catalog.Tracks(ctx)
	assert.Len(t, tracks, 3)

	cached, err := catalog.UserTracks(ctx)
	require.NoError(t, err)
	assert.Empty(t, cached)
}

func TestCatalog_IdlessCachedTrackSkipped(t *testing.T) {
	catalog, store := newCatalog(t)
	ctx := context.Background()

	// A legacy or corrupt cache entry without an id must never surface.
	envelope := map[string]interface{}{
		"tracks":    []track.Track{{Title: "no id", Checkpoints: []track.Checkpoint{{CheckpointID: 1, Title: "Intro"}}}, userTrack("kept")},
		"timestamp": "2024-05-01T12:30:45.123Z",
	}
	data, err := json.Marshal(envelope)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, shared.KeyUserTracks, data))

	tracks := catalog.Tracks(ctx)
	require.Len(t, tracks, 4)
	for _, tr := range tracks {
		assert.NotEmpty(t, tr.ID)
	}
	assert.Nil(t, catalog.TrackByID(ctx, ""))
	assert.NotNil(t, catalog.TrackByID(ctx, "kept"))
}

func TestCatalog_InvalidatePicksUpExternalWrites(t *testing.T) {
	catalog, store := newCatalog(t)
	ctx := context.Background()

	// Warm the cache.
	require.Len(t, catalog.Tracks(ctx), 3)

	envelope := map[string]interface{}{
		"tracks":    []track.Track{userTrack("written-behind")},
		"timestamp": "2024-05-01T12:30:45.123Z",
	}
	data, err := json.Marshal(envelope)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, shared.KeyUserTracks, data))

	// Cache still serves the old merge until invalidated.
	assert.Len(t, catalog.Tracks(ctx), 3)

	catalog.Invalidate()
	assert.Len(t, catalog.Tracks(ctx), 4)
}

func TestCatalog_RemoveUserTracks(t *testing.T) {
	catalog, store := newCatalog(t)
	ctx := context.Background()

	require.NoError(t, catalog.AddUserTrack(ctx, userTrack("temp")))
	require.Len(t, catalog.Tracks(ctx), 4)

	require.NoError(t, catalog.RemoveUserTracks(ctx))
	assert.Len(t, catalog.Tracks(ctx), 3)
	assert.Equal(t, 0, store.Len())
}

func TestCatalog_UserTrackCount(t *testing.T) {
	catalog, _ := newCatalog(t)
	ctx := context.Background()

	assert.Equal(t, 0, catalog.UserTrackCount(ctx))
	require.NoError(t, catalog.AddUserTrack(ctx, userTrack("a")))
	require.NoError(t, catalog.AddUserTrack(ctx, userTrack("b")))
	assert.Equal(t, 2, catalog.UserTrackCount(ctx))
}

func TestTrack_Helpers(t *testing.T) {
	tr := userTrack("helpers")

	assert.Equal(t, 2, tr.CheckpointCount())
	assert.False(t, tr.IsMastered(1))
	assert.True(t, tr.IsMastered(2))

	next := tr.NextCheckpoint(1)
	require.NotNil(t, next)
	assert.Equal(t, 2, next.CheckpointID)
	assert.Nil(t, tr.NextCheckpoint(2))

	cp := tr.CheckpointByID(1)
	require.NotNil(t, cp)
	assert.Equal(t, "Intro", cp.Title)
	assert.Nil(t, tr.CheckpointByID(99))
}

func TestCreateRequest_Validate(t *testing.T) {
	valid := track.CreateRequest{
		Name:           "Spanish for Travel",
		Description:    "Conversational basics",
		Difficulty:     track.DifficultyBeginner,
		Timeframe:      "2 weeks",
		NumCheckpoints: 5,
	}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.Description = ""
	assert.ErrorIs(t, missing.Validate(), track.ErrEmptyField)

	tooMany := valid
	tooMany.NumCheckpoints = 21
	assert.ErrorIs(t, tooMany.Validate(), track.ErrInvalidCheckpointCount)

	tooFew := valid
	tooFew.NumCheckpoints = 0
	assert.ErrorIs(t, tooFew.Validate(), track.ErrInvalidCheckpointCount)

	noDifficulty := valid
	noDifficulty.Difficulty = ""
	assert.ErrorIs(t, noDifficulty.Validate(), track.ErrInvalidDifficulty)

	madeUp := valid
	madeUp.Difficulty = "Impossible"
	assert.ErrorIs(t, madeUp.Validate(), track.ErrInvalidDifficulty)
}
