package track

// ══════════════════════════════════════════════════════════════════════════════
// TRACK CREATION REQUEST
// ══════════════════════════════════════════════════════════════════════════════

// Ограничения на заявку создания пользовательского трека.
const (
	// MinCheckpoints - минимальное число этапов в пользовательском треке.
	MinCheckpoints = 1
	// MaxCheckpoints - максимальное число этапов в пользовательском треке.
	MaxCheckpoints = 20
)

// CreateRequest представляет заявку пользователя на генерацию нового трека
// внешним API.
type CreateRequest struct {
	// Name - желаемое название трека.
	Name string
	// Description - что пользователь хочет изучить.
	Description string
	// Difficulty - желаемый уровень сложности.
	Difficulty Difficulty
	// Timeframe - желаемый срок прохождения.
	Timeframe string
	// NumCheckpoints - желаемое число этапов (от 1 до 20).
	NumCheckpoints int
}

// Validate проверяет заявку перед отправкой во внешний API.
func (r CreateRequest) Validate() error {
	if r.Name == "" || r.Description == "" || r.Timeframe == "" {
		return ErrEmptyField
	}
	if !r.Difficulty.IsValid() {
		return ErrInvalidDifficulty
	}
	if r.NumCheckpoints < MinCheckpoints || r.NumCheckpoints > MaxCheckpoints {
		return ErrInvalidCheckpointCount
	}
	return nil
}
