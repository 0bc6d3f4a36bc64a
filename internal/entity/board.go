package entity

import "fmt"

const (
	BoardSize     = 5
	TokensPerSide = BoardSize - 2
)

type Side uint8

const (
	SideNone Side = iota
	SideA
	SideB
)

func (that Side) Opponent() Side {
	switch that {
	case SideA:
		return SideB
	case SideB:
		return SideA
	default:
		return SideNone
	}
}

func (that Side) String() string {
	switch that {
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return "-"
	}
}

// ParseSide - accepts "a"/"A" and "b"/"B".
func ParseSide(value string) (Side, error) {
	switch value {
	case "a", "A":
		return SideA, nil
	case "b", "B":
		return SideB, nil
	default:
		return SideNone, fmt.Errorf("%w: %q", ErrUnknownSide, value)
	}
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Position) OnBoard() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

// State is a value type: copying it copies the whole board.
// Index i of A or B always refers to the same logical token.
type State struct {
	A        [TokensPerSide]Position `json:"a"`
	B        [TokensPerSide]Position `json:"b"`
	Turn     Side                    `json:"turn"`
	Finished bool                    `json:"finished"`
}

// NewState - A's tokens on rows 1..N-2 of column 0, B's on columns 1..N-2 of row 0, A to move.
func NewState() State {
	var state State

	for i := range TokensPerSide {
		state.A[i] = Position{Row: i + 1, Col: 0}
		state.B[i] = Position{Row: 0, Col: i + 1}
	}
	state.Turn = SideA

	return state
}

func IsCorner(row, col int) bool {
	return (row == 0 || row == BoardSize-1) && (col == 0 || col == BoardSize-1)
}

func (that *State) IsOccupied(row, col int) bool {
	for i := range TokensPerSide {
		if that.A[i].Row == row && that.A[i].Col == col {
			return true
		}
		if that.B[i].Row == row && that.B[i].Col == col {
			return true
		}
	}

	return false
}

// Tokens - returns a copy of the side's token positions.
func (that *State) Tokens(side Side) [TokensPerSide]Position {
	if side == SideB {
		return that.B
	}

	return that.A
}

// HasWon - A needs every column at N-1, B every row at N-1.
func (that *State) HasWon(side Side) bool {
	switch side {
	case SideA:
		for _, token := range that.A {
			if token.Col < BoardSize-1 {
				return false
			}
		}
		return true
	case SideB:
		for _, token := range that.B {
			if token.Row < BoardSize-1 {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (that *State) IsTerminal() bool {
	return that.HasWon(SideA) || that.HasWon(SideB)
}

// Winner - A is checked first, matching the order the win is detected in.
func (that *State) Winner() Side {
	switch {
	case that.HasWon(SideA):
		return SideA
	case that.HasWon(SideB):
		return SideB
	default:
		return SideNone
	}
}

// Key packs every token cell (row*N+col, 5 bits each) and the turn into a
// canonical integer. Two states share a key iff they have the same
// positions and side to move; the terminal latch is not part of it.
func (that *State) Key() uint64 {
	var key uint64

	for _, token := range that.A {
		key = key<<5 | uint64(token.Row*BoardSize+token.Col)
	}
	for _, token := range that.B {
		key = key<<5 | uint64(token.Row*BoardSize+token.Col)
	}

	key <<= 1
	if that.Turn == SideB {
		key |= 1
	}

	return key
}

// Validate - checks bounds, corners and collisions.
func (that *State) Validate() error {
	seen := make(map[Position]struct{}, 2*TokensPerSide)

	for _, token := range append(that.A[:], that.B[:]...) {
		if !token.OnBoard() {
			return fmt.Errorf("%w: %v is off board", ErrInvalidState, token)
		}
		if IsCorner(token.Row, token.Col) {
			return fmt.Errorf("%w: %v is a corner", ErrInvalidState, token)
		}
		if _, ok := seen[token]; ok {
			return fmt.Errorf("%w: %v holds two tokens", ErrInvalidState, token)
		}
		seen[token] = struct{}{}
	}

	if that.Turn != SideA && that.Turn != SideB {
		return fmt.Errorf("%w: unknown turn %d", ErrInvalidState, that.Turn)
	}

	return nil
}
