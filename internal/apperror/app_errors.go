package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")

	ErrInvalidIndex = errors.New("invalid token index")
	ErrIllegalMove  = errors.New("illegal move")
	ErrNoLegalMoves = errors.New("no legal moves")

	ErrHistoryOverflow = errors.New("history stack is full")
	ErrHistoryEmpty    = errors.New("history stack is empty")

	ErrSearchBudgetExceeded = errors.New("search node budget exceeded")
)
