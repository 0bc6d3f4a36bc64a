package history

import (
	"fmt"

	"github.com/rocketscienceinc/sugarpacket-game/internal/apperror"
	"github.com/rocketscienceinc/sugarpacket-game/internal/entity"
)

// DefaultCapacity is used when no positive capacity is configured.
const DefaultCapacity = 10000

// Stack is a bounded LIFO of pre-move snapshots. It is not safe for
// concurrent use.
type Stack struct {
	items    []entity.State
	capacity int
}

func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Stack{
		items:    make([]entity.State, 0, min(capacity, 64)),
		capacity: capacity,
	}
}

// Push - stores a copy of state; a full stack is left untouched.
func (that *Stack) Push(state entity.State) error {
	if that.IsFull() {
		return fmt.Errorf("%w: capacity %d", apperror.ErrHistoryOverflow, that.capacity)
	}

	that.items = append(that.items, state)

	return nil
}

func (that *Stack) Pop() (entity.State, error) {
	if that.IsEmpty() {
		return entity.State{}, apperror.ErrHistoryEmpty
	}

	top := that.items[len(that.items)-1]
	that.items = that.items[:len(that.items)-1]

	return top, nil
}

func (that *Stack) Peek() (entity.State, error) {
	if that.IsEmpty() {
		return entity.State{}, apperror.ErrHistoryEmpty
	}

	return that.items[len(that.items)-1], nil
}

func (that *Stack) Len() int {
	return len(that.items)
}

func (that *Stack) Cap() int {
	return that.capacity
}

func (that *Stack) IsEmpty() bool {
	return len(that.items) == 0
}

func (that *Stack) IsFull() bool {
	return len(that.items) >= that.capacity
}

func (that *Stack) Clear() {
	that.items = that.items[:0]
}

// Snapshots - oldest first, copied.
func (that *Stack) Snapshots() []entity.State {
	return append([]entity.State(nil), that.items...)
}
