package sugarpacket

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/sugarpacket-game/internal/apperror"
	"github.com/rocketscienceinc/sugarpacket-game/internal/entity"
	"github.com/rocketscienceinc/sugarpacket-game/internal/history"
)

var (
	ErrOffBoard      = errors.New("target is off board")
	ErrCornerCell    = errors.New("target is a corner")
	ErrNothingToJump = errors.New("no token to jump over")
	ErrCellOccupied  = errors.New("target cell is occupied")
)

// Engine applies moves to a state and records the pre-move snapshot in its
// own history. It is not safe for concurrent use.
type Engine struct {
	history *history.Stack
}

func NewEngine(stack *history.Stack) *Engine {
	if stack == nil {
		stack = history.NewStack(history.DefaultCapacity)
	}

	return &Engine{history: stack}
}

func (that *Engine) History() *history.Stack {
	return that.history
}

// MakeMove - validates and applies a move for the side to move. On any error
// the state is left unchanged.
func (that *Engine) MakeMove(state *entity.State, index int, jump bool) error {
	if state.Finished {
		return apperror.ErrGameFinished
	}

	next, err := Advance(*state, index, jump)
	if err != nil {
		return err
	}

	if err = that.history.Push(*state); err != nil {
		return fmt.Errorf("failed to record move: %w", err)
	}

	next.Finished = next.IsTerminal()
	*state = next

	return nil
}

// AttemptMove - boolean form of MakeMove for callers that only branch on success.
func (that *Engine) AttemptMove(state *entity.State, index int, jump bool) bool {
	return that.MakeMove(state, index, jump) == nil
}

// Undo - restores the most recent snapshot.
func (that *Engine) Undo(state *entity.State) error {
	previous, err := that.history.Pop()
	if err != nil {
		return fmt.Errorf("nothing to undo: %w", err)
	}

	*state = previous

	return nil
}

// Advance - pure transition: returns the state after the move without
// touching any history. The terminal latch of the input is ignored.
func Advance(state entity.State, index int, jump bool) (entity.State, error) {
	if index < 0 || index >= entity.TokensPerSide {
		return state, fmt.Errorf("%w: %d", apperror.ErrInvalidIndex, index)
	}

	distance := 1
	if jump {
		distance = 2
	}

	var token *entity.Position
	var dRow, dCol int

	switch state.Turn {
	case entity.SideA:
		token, dCol = &state.A[index], 1
	case entity.SideB:
		token, dRow = &state.B[index], 1
	default:
		return state, fmt.Errorf("%w: unknown turn %d", entity.ErrInvalidState, state.Turn)
	}

	target := entity.Position{Row: token.Row + dRow*distance, Col: token.Col + dCol*distance}

	if err := validateTarget(&state, *token, target, dRow, dCol, jump); err != nil {
		return state, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, err)
	}

	*token = target
	state.Turn = state.Turn.Opponent()

	return state, nil
}

// validateTarget - checks if the move is valid.
func validateTarget(state *entity.State, from, target entity.Position, dRow, dCol int, jump bool) error {
	if !target.OnBoard() {
		return ErrOffBoard
	}

	if entity.IsCorner(target.Row, target.Col) {
		return ErrCornerCell
	}

	if jump && !state.IsOccupied(from.Row+dRow, from.Col+dCol) {
		return ErrNothingToJump
	}

	if state.IsOccupied(target.Row, target.Col) {
		return ErrCellOccupied
	}

	return nil
}

// LegalMoves - the moves Advance accepts for the side to move, canonical order.
func LegalMoves(state entity.State) []Move {
	legal := make([]Move, 0, len(Moves))

	for _, move := range Moves {
		if _, err := Advance(state, move.Index, move.Jump); err == nil {
			legal = append(legal, move)
		}
	}

	return legal
}
