// Package track содержит доменную модель учебного трека.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package track

import (
	"strings"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// TrackID представляет уникальный идентификатор трека.
type TrackID string

// IsValid проверяет, что идентификатор непустой и без пробелов.
func (t TrackID) IsValid() bool {
	s := string(t)
	return len(s) > 0 && !strings.ContainsAny(s, " \t\n\r")
}

// String возвращает строковое представление идентификатора.
func (t TrackID) String() string {
	return string(t)
}

// Difficulty представляет уровень сложности трека.
type Difficulty string

const (
	// DifficultyBeginner - трек для начинающих.
	DifficultyBeginner Difficulty = "Beginner"
	// DifficultyIntermediate - трек среднего уровня.
	DifficultyIntermediate Difficulty = "Intermediate"
	// DifficultyAdvanced - продвинутый трек.
	DifficultyAdvanced Difficulty = "Advanced"
)

// IsValid проверяет, что сложность корректна.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	default:
		return false
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// ENTITIES
// ══════════════════════════════════════════════════════════════════════════════

// Flashcard представляет карточку вопрос-ответ для повторения материала трека.
type Flashcard struct {
	// Question - текст вопроса.
	Question string `json:"question"`
	// Answer - текст ответа.
	Answer string `json:"answer"`
	// Difficulty - субъективная сложность карточки (easy/medium/hard).
	Difficulty string `json:"difficulty"`
}

// Checkpoint представляет один этап трека: видеоурок с ожидаемыми результатами.
// Этапы нумеруются с единицы и проходятся строго по порядку.
type Checkpoint struct {
	// CheckpointID - порядковый номер этапа внутри трека (с 1).
	CheckpointID int `json:"checkpointId"`
	// Title - название этапа.
	Title string `json:"title"`
	// VideoURL - ссылка на видеоурок этапа.
	VideoURL string `json:"videoUrl,omitempty"`
	// Description - краткое описание содержимого этапа.
	Description string `json:"description,omitempty"`
	// CreatorName - автор видеоурока.
	CreatorName string `json:"creatorName,omitempty"`
	// Outcomes - чему научится пользователь после прохождения этапа.
	Outcomes []string `json:"outcomes,omitempty"`
}

// Track представляет учебный трек - упорядоченную последовательность этапов.
// Трек либо встроенный (поставляется с приложением), либо создан пользователем
// через внешний API и закэширован в хранилище.
type Track struct {
	// ID - уникальный идентификатор трека.
	ID string `json:"id"`
	// Title - название трека.
	Title string `json:"title"`
	// Description - описание трека (заполняется для пользовательских треков).
	Description string `json:"description,omitempty"`
	// Difficulty - уровень сложности (заполняется для пользовательских треков).
	Difficulty string `json:"difficulty,omitempty"`
	// Timeframe - ожидаемый срок прохождения (заполняется для пользовательских треков).
	Timeframe string `json:"timeframe,omitempty"`
	// Checkpoints - этапы трека в порядке прохождения.
	Checkpoints []Checkpoint `json:"checkpoints"`
	// Flashcards - карточки для повторения материала.
	Flashcards []Flashcard `json:"flashcards,omitempty"`
	// UserCreated - true для треков, созданных пользователем.
	UserCreated bool `json:"isUserCreated,omitempty"`
}

// ══════════════════════════════════════════════════════════════════════════════
// BUSINESS LOGIC
// ══════════════════════════════════════════════════════════════════════════════

// Validate проверяет минимальную целостность трека.
func (t *Track) Validate() error {
	if !TrackID(t.ID).IsValid() {
		return ErrMissingID
	}
	if len(t.Checkpoints) == 0 {
		return ErrNoCheckpoints
	}
	return nil
}

// CheckpointCount возвращает количество этапов трека.
func (t *Track) CheckpointCount() int {
	return len(t.Checkpoints)
}

// CheckpointByID возвращает этап с заданным номером или nil, если его нет.
func (t *Track) CheckpointByID(checkpointID int) *Checkpoint {
	for i := range t.Checkpoints {
		if t.Checkpoints[i].CheckpointID == checkpointID {
			return &t.Checkpoints[i]
		}
	}
	return nil
}

// NextCheckpoint возвращает следующий ожидаемый этап после completed
// пройденных. Если трек завершён, возвращает nil.
func (t *Track) NextCheckpoint(completed int) *Checkpoint {
	if completed < 0 || completed >= len(t.Checkpoints) {
		return nil
	}
	return &t.Checkpoints[completed]
}

// IsMastered возвращает true, если пройдены все этапы трека.
func (t *Track) IsMastered(completed int) bool {
	return len(t.Checkpoints) > 0 && completed >= len(t.Checkpoints)
}

// HasFlashcards возвращает true, если у трека есть карточки для повторения.
func (t *Track) HasFlashcards() bool {
	return len(t.Flashcards) > 0
}
