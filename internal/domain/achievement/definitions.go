// Package achievement содержит каталог достижений и движок их выдачи.
// Достижение выдаётся один раз и навсегда: заработанные ID хранятся списком,
// и движок никогда не отбирает уже выданное, даже если статистика просела.
package achievement

import (
	"github.com/courseit/courseit-core/internal/domain/stats"
)

// ══════════════════════════════════════════════════════════════════════════════
// DEFINITIONS
// ══════════════════════════════════════════════════════════════════════════════

// Criteria - предикат выдачи достижения по текущей статистике.
type Criteria func(s stats.Snapshot) bool

// Definition описывает одно достижение.
type Definition struct {
	// ID - стабильный идентификатор, под которым достижение хранится.
	ID string `json:"id"`
	// Name - отображаемое название.
	Name string `json:"name"`
	// Description - описание условия получения.
	Description string `json:"description"`
	// Icon - имя иконки для мобильного клиента.
	Icon string `json:"icon"`
	// Criteria - условие выдачи. Не сериализуется.
	Criteria Criteria `json:"-"`
}

// Definitions возвращает полный каталог достижений в порядке отображения.
func Definitions() []Definition {
	return definitions
}

// DefinitionByID возвращает достижение по ID или nil, если такого нет.
func DefinitionByID(id string) *Definition {
	for i := range definitions {
		if definitions[i].ID == id {
			return &definitions[i]
		}
	}
	return nil
}

var definitions = []Definition{
	{
		ID:          "streak_3",
		Name:        "Consistent Learner",
		Description: "Maintain a 3-day learning streak!",
		Icon:        "flame-outline",
		Criteria:    func(s stats.Snapshot) bool { return s.CurrentStreak >= 3 },
	},
	{
		ID:          "streak_7",
		Name:        "Weekly Warrior",
		Description: "Maintain a 7-day learning streak!",
		Icon:        "flame",
		Criteria:    func(s stats.Snapshot) bool { return s.CurrentStreak >= 7 },
	},
	{
		ID:          "streak_10",
		Name:        "Streak Star",
		Description: "Achieve a 10-day learning streak!",
		Icon:        "star",
		Criteria:    func(s stats.Snapshot) bool { return s.CurrentStreak >= 10 },
	},
	{
		ID:          "stages_1",
		Name:        "First Step",
		Description: "Complete your first stage.",
		Icon:        "footsteps-outline",
		Criteria:    func(s stats.Snapshot) bool { return s.TotalStagesCompleted >= 1 },
	},
	{
		ID:          "stages_25",
		Name:        "Quarter Century",
		Description: "Complete 25 stages.",
		Icon:        "rocket-outline",
		Criteria:    func(s stats.Snapshot) bool { return s.TotalStagesCompleted >= 25 },
	},
	{
		ID:          "stages_100",
		Name:        "Centurion",
		Description: "Complete 100 stages!",
		Icon:        "shield-checkmark-outline",
		Criteria:    func(s stats.Snapshot) bool { return s.TotalStagesCompleted >= 100 },
	},
	{
		ID:          "track_1",
		Name:        "Track Tackler",
		Description: "Complete your first full track.",
		Icon:        "ribbon-outline",
		Criteria:    func(s stats.Snapshot) bool { return s.TotalTracksCompleted >= 1 },
	},
	{
		ID:          "track_5",
		Name:        "Curriculum Conqueror",
		Description: "Complete 5 different tracks.",
		Icon:        "trophy-outline",
		Criteria:    func(s stats.Snapshot) bool { return s.TotalTracksCompleted >= 5 },
	},
	{
		ID:          "track_created_1",
		Name:        "AI Collaborator",
		Description: "Create your first track using AI.",
		Icon:        "sparkles-outline",
		Criteria:    func(s stats.Snapshot) bool { return s.TracksCreated >= 1 },
	},
}
