package track

import "errors"

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrMissingID - трек без идентификатора.
	ErrMissingID = errors.New("invalid track: missing id")

	// ErrNoCheckpoints - трек без этапов.
	ErrNoCheckpoints = errors.New("invalid track: no checkpoints")

	// ErrNotFound - трек не найден в каталоге.
	ErrNotFound = errors.New("track not found")

	// ErrInvalidCheckpointCount - запрошенное число этапов вне допустимого диапазона.
	ErrInvalidCheckpointCount = errors.New("invalid checkpoint count: must be between 1 and 20")

	// ErrEmptyField - обязательное поле заявки на трек не заполнено.
	ErrEmptyField = errors.New("invalid track request: all fields are required")

	// ErrInvalidDifficulty - недопустимый уровень сложности в заявке.
	ErrInvalidDifficulty = errors.New("invalid track request: unknown difficulty")
)
