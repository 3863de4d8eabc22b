// Package stats вычисляет сводную статистику пользователя из данных
// остальных доменных движков. Статистика нигде не хранится - она каждый раз
// выводится заново из прогресса, кошелька, серии и каталога.
package stats

import (
	"context"

	"github.com/courseit/courseit-core/internal/domain/progress"
	"github.com/courseit/courseit-core/internal/domain/streak"
	"github.com/courseit/courseit-core/internal/domain/track"
)

// ══════════════════════════════════════════════════════════════════════════════
// SNAPSHOT
// ══════════════════════════════════════════════════════════════════════════════

// Snapshot - сводная статистика на момент вызова.
//
// Обратите внимание на асимметрию: TotalStagesCompleted суммирует счётчики
// по ВСЕМ записям прогресса, включая треки, которых уже нет в каталоге,
// а TotalTracksCompleted считает только треки, найденные в каталоге, -
// без трека неизвестно, сколько всего в нём этапов.
type Snapshot struct {
	// TotalStagesCompleted - суммарное число пройденных этапов по всем трекам.
	TotalStagesCompleted int `json:"totalStagesCompleted"`
	// TotalTracksCompleted - число полностью пройденных треков.
	TotalTracksCompleted int `json:"totalTracksCompleted"`
	// CurrentStreak - действующая длина серии (0, если серия прервана).
	CurrentStreak int `json:"currentStreak"`
	// Coins - текущий баланс монет.
	Coins int `json:"coins"`
	// TracksCreated - число треков, созданных пользователем.
	TracksCreated int `json:"tracksCreated"`
}

// ══════════════════════════════════════════════════════════════════════════════
// AGGREGATOR
// ══════════════════════════════════════════════════════════════════════════════

// Aggregator собирает Snapshot из доменных движков.
type Aggregator struct {
	ledger  *progress.Ledger
	wallet  *progress.Wallet
	streaks *streak.Engine
	catalog *track.Catalog
}

// NewAggregator создаёт агрегатор статистики.
func NewAggregator(ledger *progress.Ledger, wallet *progress.Wallet, streaks *streak.Engine, catalog *track.Catalog) *Aggregator {
	return &Aggregator{
		ledger:  ledger,
		wallet:  wallet,
		streaks: streaks,
		catalog: catalog,
	}
}

// Collect вычисляет текущую статистику. Ошибки чтения отдельных источников
// не фатальны: каждый движок сам деградирует к нулевому значению.
func (a *Aggregator) Collect(ctx context.Context) Snapshot {
	progressMap := a.ledger.Load(ctx)
	tracks := a.catalog.Tracks(ctx)

	totalStages := 0
	for _, count := range progressMap {
		totalStages += count
	}

	completedTracks := 0
	for trackID, count := range progressMap {
		for i := range tracks {
			if tracks[i].ID == trackID {
				if tracks[i].IsMastered(count) {
					completedTracks++
				}
				break
			}
		}
	}

	return Snapshot{
		TotalStagesCompleted: totalStages,
		TotalTracksCompleted: completedTracks,
		CurrentStreak:        a.streaks.CurrentStreak(ctx),
		Coins:                a.wallet.Balance(ctx),
		TracksCreated:        a.catalog.UserTrackCount(ctx),
	}
}
