package apperror

import "errors"

// Sentinel errors for move rejections. Their text ends up verbatim in the
// "bad" play responses, so keep the wording stable.
var (
	ErrGameFinished = errors.New("game is no longer active")
	ErrNotYourTurn  = errors.New("is not on the move")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrOutOfRange   = errors.New("coordinate out of range")
)
