package config

import (
	"hash/fnv"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// FeatureFlags manages feature toggles with gradual rollout support.
type FeatureFlags struct {
	mu sync.RWMutex

	features map[string]*Feature
}

// Feature represents a single feature flag.
type Feature struct {
	Name        string
	Description string
	Enabled     bool

	// Rollout percentage (0-100). Installations are assigned a stable
	// bucket by hashing their install ID.
	RolloutPercent int

	// Time-based activation
	EnabledFrom  *time.Time
	EnabledUntil *time.Time
}

// FeatureContext provides context for feature flag evaluation.
type FeatureContext struct {
	// InstallID identifies the installation, used for rollout bucketing.
	InstallID string
}

// Predefined feature flag names.
const (
	// === Learning Features ===
	FeatureFlashcards    = "learning.flashcards"     // Flashcard review per track
	FeatureStreaks       = "gamification.streaks"    // Daily streaks
	FeatureAchievements  = "gamification.achievements" // Achievement unlocks
	FeatureTrackCreation = "tracks.user_creation"    // Paid AI track generation

	// === Assessment Features ===
	FeatureAssessmentFeedback = "assessment.feedback" // Show grader feedback text

	// === Debug Features ===
	FeatureStateDump = "debug.state_dump" // Raw storage dump in dev console
)

// LoadFeatureFlags loads feature flags from environment variables.
func LoadFeatureFlags() *FeatureFlags {
	ff := &FeatureFlags{
		features: make(map[string]*Feature),
	}
	ff.initializeDefaults()
	ff.loadFromEnvironment()
	return ff
}

// initializeDefaults sets up all features with default values.
func (ff *FeatureFlags) initializeDefaults() {
	ff.features[FeatureFlashcards] = &Feature{
		Name:           FeatureFlashcards,
		Description:    "Flashcard review for tracks that ship them",
		Enabled:        true,
		RolloutPercent: 100,
	}

	ff.features[FeatureStreaks] = &Feature{
		Name:           FeatureStreaks,
		Description:    "Track daily completion streaks",
		Enabled:        true,
		RolloutPercent: 100,
	}

	ff.features[FeatureAchievements] = &Feature{
		Name:           FeatureAchievements,
		Description:    "Unlock achievements from learning milestones",
		Enabled:        true,
		RolloutPercent: 100,
	}

	ff.features[FeatureTrackCreation] = &Feature{
		Name:           FeatureTrackCreation,
		Description:    "Generate personal tracks for coins",
		Enabled:        true,
		RolloutPercent: 100,
	}

	ff.features[FeatureAssessmentFeedback] = &Feature{
		Name:           FeatureAssessmentFeedback,
		Description:    "Show the grader's feedback text after assessment",
		Enabled:        true,
		RolloutPercent: 100,
	}

	ff.features[FeatureStateDump] = &Feature{
		Name:           FeatureStateDump,
		Description:    "Raw storage dump in the dev console",
		Enabled:        false,
		RolloutPercent: 0,
	}
}

// loadFromEnvironment loads feature flag overrides from env vars.
// Format: FEATURE_<NAME>=true|false|<percent>
// Example: FEATURE_TRACKS_USER_CREATION=false
// Example: FEATURE_GAMIFICATION_ACHIEVEMENTS=50 (50% rollout)
func (ff *FeatureFlags) loadFromEnvironment() {
	for name, feature := range ff.features {
		envKey := featureNameToEnvKey(name)
		val := os.Getenv(envKey)
		if val == "" {
			continue
		}

		if b, err := strconv.ParseBool(val); err == nil {
			feature.Enabled = b
			if b {
				feature.RolloutPercent = 100
			} else {
				feature.RolloutPercent = 0
			}
			continue
		}

		if p, err := strconv.Atoi(val); err == nil && p >= 0 && p <= 100 {
			feature.Enabled = p > 0
			feature.RolloutPercent = p
		}
	}
}

// featureNameToEnvKey converts feature name to environment variable key.
// "tracks.user_creation" -> "FEATURE_TRACKS_USER_CREATION"
func featureNameToEnvKey(name string) string {
	key := strings.ToUpper(name)
	key = strings.ReplaceAll(key, ".", "_")
	return "FEATURE_" + key
}

// IsEnabled checks if a feature is enabled for the given context.
func (ff *FeatureFlags) IsEnabled(featureName string, ctx *FeatureContext) bool {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	feature, ok := ff.features[featureName]
	if !ok {
		return false
	}
	if !feature.Enabled {
		return false
	}

	now := time.Now()
	if feature.EnabledFrom != nil && now.Before(*feature.EnabledFrom) {
		return false
	}
	if feature.EnabledUntil != nil && now.After(*feature.EnabledUntil) {
		return false
	}

	if feature.RolloutPercent < 100 && ctx != nil && ctx.InstallID != "" {
		return isInRollout(ctx.InstallID, featureName, feature.RolloutPercent)
	}
	return feature.RolloutPercent > 0
}

// isInRollout determines if an installation is in the rollout percentage.
// Uses consistent hashing so installations stay in their bucket.
func isInRollout(installID, featureName string, percent int) bool {
	h := fnv.New32a()
	h.Write([]byte(featureName))
	h.Write([]byte(installID))
	bucket := int(h.Sum32() % 100)
	return bucket < percent
}

// SetRolloutPercent updates the rollout percentage for a feature.
// Thread-safe for live updates.
func (ff *FeatureFlags) SetRolloutPercent(featureName string, percent int) error {
	ff.mu.Lock()
	defer ff.mu.Unlock()

	feature, ok := ff.features[featureName]
	if !ok {
		return ErrFeatureNotFound
	}
	if percent < 0 || percent > 100 {
		return ErrInvalidRolloutPercent
	}

	feature.RolloutPercent = percent
	feature.Enabled = percent > 0
	return nil
}

// EnableFeature enables a feature at 100% rollout.
func (ff *FeatureFlags) EnableFeature(featureName string) error {
	return ff.SetRolloutPercent(featureName, 100)
}

// DisableFeature disables a feature completely.
func (ff *FeatureFlags) DisableFeature(featureName string) error {
	return ff.SetRolloutPercent(featureName, 0)
}

// GetAllFeatures returns a copy of all feature configurations.
func (ff *FeatureFlags) GetAllFeatures() map[string]*Feature {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	result := make(map[string]*Feature, len(ff.features))
	for k, v := range ff.features {
		featureCopy := *v
		result[k] = &featureCopy
	}
	return result
}

// --- Errors ---

var (
	ErrFeatureNotFound       = &FeatureFlagError{Message: "feature not found"}
	ErrInvalidRolloutPercent = &FeatureFlagError{Message: "rollout percent must be 0-100"}
)

// FeatureFlagError represents a feature flag error.
type FeatureFlagError struct {
	Message string
}

func (e *FeatureFlagError) Error() string {
	return e.Message
}
