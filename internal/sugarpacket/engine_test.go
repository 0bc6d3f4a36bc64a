package sugarpacket

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/sugarpacket-game/internal/apperror"
	"github.com/rocketscienceinc/sugarpacket-game/internal/entity"
	"github.com/rocketscienceinc/sugarpacket-game/internal/history"
)

func newEngine(capacity int) *Engine {
	return NewEngine(history.NewStack(capacity))
}

func TestEngine_MakeMove(t *testing.T) {
	t.Run("Step", func(t *testing.T) {
		// Given: the initial state
		engine := newEngine(10)
		state := entity.NewState()
		before := state

		// When: A steps token 0
		err := engine.MakeMove(&state, 0, false)
		require.NoError(t, err)

		// Then: token 0 moved one column, the turn flipped and the old state was recorded
		assert.Equal(t, entity.Position{Row: 1, Col: 1}, state.A[0])
		assert.Equal(t, entity.SideB, state.Turn)
		assert.Equal(t, []entity.State{before}, engine.History().Snapshots())
	})

	t.Run("Jump without a token in between", func(t *testing.T) {
		// Given: the initial state, nothing on column 1 of row 1
		engine := newEngine(10)
		state := entity.NewState()
		before := state

		// When: A tries to jump token 0
		err := engine.MakeMove(&state, 0, true)

		// Then: the move is illegal and nothing changed
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		require.ErrorIs(t, err, ErrNothingToJump)
		assert.Equal(t, before, state)
		assert.True(t, engine.History().IsEmpty())
	})

	t.Run("Invalid index", func(t *testing.T) {
		engine := newEngine(10)
		state := entity.NewState()
		before := state

		for _, index := range []int{-1, entity.TokensPerSide, 5} {
			err := engine.MakeMove(&state, index, false)

			require.ErrorIs(t, err, apperror.ErrInvalidIndex)
			assert.Equal(t, before, state)
		}
		assert.True(t, engine.History().IsEmpty())
	})

	t.Run("Jump over an occupied cell", func(t *testing.T) {
		// Given: A has stepped token 0 to (1,1), B to move
		engine := newEngine(10)
		state := entity.NewState()
		require.NoError(t, engine.MakeMove(&state, 0, false))

		// When: B jumps token 0 from (0,1) over (1,1)
		err := engine.MakeMove(&state, 0, true)

		// Then: B token 0 lands on (2,1)
		require.NoError(t, err)
		assert.Equal(t, entity.Position{Row: 2, Col: 1}, state.B[0])
		assert.Equal(t, entity.SideA, state.Turn)
	})

	t.Run("Step onto an occupied cell", func(t *testing.T) {
		engine := newEngine(10)
		state := entity.NewState()
		require.NoError(t, engine.MakeMove(&state, 0, false))
		before := state

		// When: B steps token 0 from (0,1) onto A's token at (1,1)
		err := engine.MakeMove(&state, 0, false)

		require.ErrorIs(t, err, ErrCellOccupied)
		assert.Equal(t, before, state)
	})

	t.Run("Jump onto an occupied cell", func(t *testing.T) {
		engine := newEngine(10)
		state := entity.NewState()
		state.A[0] = entity.Position{Row: 1, Col: 1}
		state.A[1] = entity.Position{Row: 2, Col: 1}
		state.Turn = entity.SideB
		before := state

		err := engine.MakeMove(&state, 0, true)

		require.ErrorIs(t, err, ErrCellOccupied)
		assert.Equal(t, before, state)
	})

	t.Run("Corner target", func(t *testing.T) {
		// Given: tokens placed next to a corner on an edge line
		engine := newEngine(10)
		state := cornerState()
		before := state

		// When: B token 0 steps from (3,4) onto (4,4)
		err := engine.MakeMove(&state, 0, false)

		// Then: corners are forbidden
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		require.ErrorIs(t, err, ErrCornerCell)
		assert.Equal(t, before, state)

		// And: the same holds for A on the top edge
		state = entity.NewState()
		state.A[0] = entity.Position{Row: 0, Col: 2}
		state.B[1] = entity.Position{Row: 1, Col: 2}
		_, err = Advance(state, 0, true)
		require.ErrorIs(t, err, ErrCornerCell)
	})

	t.Run("Off board", func(t *testing.T) {
		state := entity.NewState()
		state.A[0] = entity.Position{Row: 1, Col: 4}

		_, err := Advance(state, 0, false)
		require.ErrorIs(t, err, ErrOffBoard)

		state.A[0] = entity.Position{Row: 1, Col: 3}
		state.A[1] = entity.Position{Row: 2, Col: 4}
		_, err = Advance(state, 0, true)
		require.ErrorIs(t, err, ErrOffBoard)
	})

	t.Run("History overflow leaves the state unchanged", func(t *testing.T) {
		// Given: an engine whose history holds a single snapshot
		engine := newEngine(1)
		state := entity.NewState()
		require.NoError(t, engine.MakeMove(&state, 0, false))
		before := state

		// When: a second legal move is made
		err := engine.MakeMove(&state, 1, false)

		// Then: the overflow is reported and the move is not applied
		require.ErrorIs(t, err, apperror.ErrHistoryOverflow)
		assert.Equal(t, before, state)
		assert.Equal(t, 1, engine.History().Len())
	})

	t.Run("Move after the game is finished", func(t *testing.T) {
		engine := newEngine(10)
		state := entity.NewState()
		state.Finished = true

		err := engine.MakeMove(&state, 0, false)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.False(t, engine.AttemptMove(&state, 0, false))
	})
}

// cornerState - B token 0 moved onto the right edge one row above a corner.
func cornerState() entity.State {
	state := entity.NewState()
	state.B[0] = entity.Position{Row: 3, Col: 4}
	state.A = [entity.TokensPerSide]entity.Position{{Row: 1, Col: 0}, {Row: 2, Col: 0}, {Row: 3, Col: 0}}
	state.Turn = entity.SideB

	return state
}

func TestEngine_AttemptMove(t *testing.T) {
	engine := newEngine(10)
	state := entity.NewState()

	assert.False(t, engine.AttemptMove(&state, 0, true))
	assert.True(t, engine.AttemptMove(&state, 0, false))
	assert.Equal(t, entity.SideB, state.Turn)
}

func TestEngine_Undo(t *testing.T) {
	// Given: two moves played from the start
	engine := newEngine(10)
	state := entity.NewState()
	require.NoError(t, engine.MakeMove(&state, 0, false))
	afterFirst := state
	require.NoError(t, engine.MakeMove(&state, 2, false))

	// When: undoing twice
	require.NoError(t, engine.Undo(&state))
	assert.Equal(t, afterFirst, state)

	require.NoError(t, engine.Undo(&state))
	assert.Equal(t, entity.NewState(), state)

	// Then: a third undo has nothing left
	err := engine.Undo(&state)
	require.ErrorIs(t, err, apperror.ErrHistoryEmpty)
	assert.Equal(t, entity.NewState(), state)
}

func TestEngine_AWinsByAdvancingEveryToken(t *testing.T) {
	// A walks token 0, then 1, then 2 to column 4 while B steps out of the way.
	type play struct {
		side  entity.Side
		index int
	}

	sequence := []play{
		{entity.SideA, 0}, {entity.SideB, 2}, {entity.SideA, 0}, {entity.SideB, 2},
		{entity.SideA, 0}, {entity.SideB, 0}, {entity.SideA, 0}, {entity.SideB, 1},
		{entity.SideA, 1}, {entity.SideB, 2}, {entity.SideA, 1}, {entity.SideB, 0},
		{entity.SideA, 1}, {entity.SideB, 0}, {entity.SideA, 1}, {entity.SideB, 0},
		{entity.SideA, 2}, {entity.SideB, 1}, {entity.SideA, 2}, {entity.SideB, 2},
		{entity.SideA, 2}, {entity.SideB, 1}, {entity.SideA, 2},
	}

	engine := newEngine(100)
	state := entity.NewState()

	for i, move := range sequence {
		require.Equal(t, move.side, state.Turn, "move %d", i)
		require.False(t, state.HasWon(entity.SideA), "A won early at move %d", i)

		require.NoError(t, engine.MakeMove(&state, move.index, false), "move %d", i)

		if move.side == entity.SideA && move.index == 0 && state.A[0].Col == entity.BoardSize-1 {
			// token 0 alone on the edge is not a win
			assert.False(t, state.HasWon(entity.SideA))
		}
	}

	assert.True(t, state.HasWon(entity.SideA))
	assert.False(t, state.HasWon(entity.SideB))
	assert.True(t, state.Finished)

	err := engine.MakeMove(&state, 0, false)
	require.ErrorIs(t, err, apperror.ErrGameFinished)
}

func TestLegalMoves(t *testing.T) {
	t.Run("Initial position", func(t *testing.T) {
		// only steps: nothing to jump over yet
		legal := LegalMoves(entity.NewState())

		assert.Equal(t, []Move{{Index: 0}, {Index: 1}, {Index: 2}}, legal)
	})

	t.Run("Jump becomes available", func(t *testing.T) {
		state := entity.NewState()
		state, err := Advance(state, 0, false)
		require.NoError(t, err)

		legal := LegalMoves(state)

		assert.Equal(t, []Move{{Index: 0, Jump: true}, {Index: 1}, {Index: 2}}, legal)
	})
}

func TestParseMove(t *testing.T) {
	move, err := ParseMove("2j")
	require.NoError(t, err)
	assert.Equal(t, Move{Index: 2, Jump: true}, move)
	assert.Equal(t, "2j", move.String())

	move, err = ParseMove("1")
	require.NoError(t, err)
	assert.Equal(t, Move{Index: 1}, move)
	assert.Equal(t, "1", move.String())

	_, err = ParseMove("3")
	require.ErrorIs(t, err, apperror.ErrInvalidIndex)

	_, err = ParseMove("x")
	require.ErrorIs(t, err, apperror.ErrInvalidIndex)
}

// Random playouts from the start: every reachable state stays valid, every
// move advances only the governing coordinate by 1 or 2, and a jump is legal
// exactly when the cell in between is occupied and the target is free.
func TestRandomPlayoutInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for game := 0; game < 200; game++ {
		state := entity.NewState()

		for ply := 0; !state.IsTerminal(); ply++ {
			require.NoError(t, state.Validate())
			require.Less(t, ply, 4*entity.TokensPerSide*2+1, "game %d does not terminate", game)

			for _, move := range Moves {
				checkJumpPrecondition(t, state, move)
			}

			legal := LegalMoves(state)
			if len(legal) == 0 {
				break
			}

			move := legal[rng.Intn(len(legal))]
			next, err := Advance(state, move.Index, move.Jump)
			require.NoError(t, err)

			checkMonotonic(t, state, next, move)
			state = next
		}
	}
}

func checkMonotonic(t *testing.T, before, after entity.State, move Move) {
	t.Helper()

	distance := 1
	if move.Jump {
		distance = 2
	}

	for i := range entity.TokensPerSide {
		switch {
		case before.Turn == entity.SideA && i == move.Index:
			assert.Equal(t, before.A[i].Row, after.A[i].Row)
			assert.Equal(t, before.A[i].Col+distance, after.A[i].Col)
		case before.Turn == entity.SideB && i == move.Index:
			assert.Equal(t, before.B[i].Col, after.B[i].Col)
			assert.Equal(t, before.B[i].Row+distance, after.B[i].Row)
		}

		if before.Turn != entity.SideA || i != move.Index {
			assert.Equal(t, before.A[i], after.A[i])
		}
		if before.Turn != entity.SideB || i != move.Index {
			assert.Equal(t, before.B[i], after.B[i])
		}

		// the fixed coordinate never leaves its starting line
		assert.Equal(t, i+1, after.A[i].Row)
		assert.Equal(t, i+1, after.B[i].Col)
	}
}

func checkJumpPrecondition(t *testing.T, state entity.State, move Move) {
	t.Helper()

	if !move.Jump {
		return
	}

	var from entity.Position
	var dRow, dCol int
	if state.Turn == entity.SideA {
		from, dCol = state.A[move.Index], 1
	} else {
		from, dRow = state.B[move.Index], 1
	}

	target := entity.Position{Row: from.Row + 2*dRow, Col: from.Col + 2*dCol}
	expected := state.IsOccupied(from.Row+dRow, from.Col+dCol) &&
		target.OnBoard() &&
		!entity.IsCorner(target.Row, target.Col) &&
		!state.IsOccupied(target.Row, target.Col)

	_, err := Advance(state, move.Index, true)
	assert.Equal(t, expected, err == nil, "jump %v from %v", move, from)
}
