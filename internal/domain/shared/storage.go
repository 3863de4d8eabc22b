// Package shared contains common domain types, errors, events, and the
// key-value storage contract used across all domain packages.
package shared

import (
	"context"
	"errors"
)

// ═══════════════════════════════════════════════════════════════════════════
// Key-Value Storage Contract
// ═══════════════════════════════════════════════════════════════════════════

// ErrKeyNotFound is returned by KeyValueStore.Get when the key is absent.
// Domain components treat an absent key as "first run" and fall back to a
// zero value, never to an error.
var ErrKeyNotFound = errors.New("storage: key not found")

// KeyValueStore is the durable string-keyed blob store all progress state is
// persisted into. Values are JSON documents encoded by the calling component;
// the store itself is payload-agnostic.
//
// Implementations live in infrastructure/persistence (redis, postgres, memory).
type KeyValueStore interface {
	// Get returns the raw value stored under key.
	// Returns ErrKeyNotFound when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Fixed storage keys for persisted user state. The envelope shape stored
// under each key is owned by the corresponding domain package.
const (
	// KeyProgress holds the per-track completed-checkpoint counts.
	KeyProgress = "user:progress"

	// KeyCoins holds the coin balance.
	KeyCoins = "user:coins"

	// KeyUserTracks holds the cached user-created tracks.
	KeyUserTracks = "user:tracks"

	// KeyStreak holds the streak record.
	KeyStreak = "user:streak"

	// KeyAchievements holds the earned achievement IDs.
	KeyAchievements = "user:achievements"
)
