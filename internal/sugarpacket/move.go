package sugarpacket

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/sugarpacket-game/internal/apperror"
	"github.com/rocketscienceinc/sugarpacket-game/internal/entity"
)

type Move struct {
	Index int  `json:"index"`
	Jump  bool `json:"jump"`
}

// String - "1" for a step of token 1, "1j" for a jump.
func (that Move) String() string {
	if that.Jump {
		return fmt.Sprintf("%dj", that.Index)
	}

	return strconv.Itoa(that.Index)
}

func ParseMove(value string) (Move, error) {
	jump := strings.HasSuffix(value, "j")

	index, err := strconv.Atoi(strings.TrimSuffix(value, "j"))
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q", apperror.ErrInvalidIndex, value)
	}

	if index < 0 || index >= entity.TokensPerSide {
		return Move{}, fmt.Errorf("%w: %d", apperror.ErrInvalidIndex, index)
	}

	return Move{Index: index, Jump: jump}, nil
}

// Moves - every (index, kind) pair in canonical order: token ascending, step before jump.
var Moves = func() []Move {
	moves := make([]Move, 0, 2*entity.TokensPerSide)
	for i := range entity.TokensPerSide {
		moves = append(moves, Move{Index: i}, Move{Index: i, Jump: true})
	}

	return moves
}()
