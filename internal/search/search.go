package search

import (
	"context"
	"fmt"
	"time"

	"github.com/rocketscienceinc/sugarpacket-game/internal/apperror"
	"github.com/rocketscienceinc/sugarpacket-game/internal/entity"
	"github.com/rocketscienceinc/sugarpacket-game/internal/sugarpacket"
)

const (
	DefaultMaxNodes = 2_000_000

	// how many expanded nodes pass between context checks
	cancelCheckInterval = 1024
)

type Options struct {
	MaxNodes int
	Timeout  time.Duration
}

type Stats struct {
	Nodes  int `json:"nodes"`
	Hits   int `json:"hits"`
	Cached int `json:"cached"`
}

// Searcher decides whether a position is won or lost by exhaustive
// backtracking over the move tree. Finished subtrees are kept in a
// transposition table across calls. A Searcher is not safe for concurrent use.
type Searcher struct {
	maxNodes int
	timeout  time.Duration

	table *table
	stats Stats
}

func New(opts Options) *Searcher {
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultMaxNodes
	}

	return &Searcher{
		maxNodes: opts.MaxNodes,
		timeout:  opts.Timeout,
		table:    newTable(),
	}
}

// Evaluate - runs the search from state. A won position is Good and a
// position B has won is Bad regardless of perspective; the perspective only
// selects which continuations are explored (see admissible). Each call may
// expand at most MaxNodes new positions and is bounded by Timeout; either
// limit yields ErrSearchBudgetExceeded.
func (that *Searcher) Evaluate(ctx context.Context, state entity.State, perspectiveIsA bool) (Verdict, error) {
	if that.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, that.timeout)
		defer cancel()
	}

	that.stats = Stats{}
	defer func() {
		that.stats.Cached = that.table.size()
	}()

	if err := ctx.Err(); err != nil {
		return Bad, fmt.Errorf("%w: %w", apperror.ErrSearchBudgetExceeded, err)
	}

	return that.evaluate(ctx, state, perspectiveIsA)
}

// Stats - counters of the last Evaluate call.
func (that *Searcher) Stats() Stats {
	return that.stats
}

// Reset - drops every memoized verdict.
func (that *Searcher) Reset() {
	that.table.reset()
	that.stats = Stats{}
}

func (that *Searcher) evaluate(ctx context.Context, state entity.State, perspectiveIsA bool) (Verdict, error) {
	if state.HasWon(entity.SideA) {
		return Good, nil
	}
	if state.HasWon(entity.SideB) {
		return Bad, nil
	}

	key := tableKey(state.Key(), perspectiveIsA)
	if verdict, ok := that.table.probe(key); ok {
		that.stats.Hits++
		return verdict, nil
	}

	if that.stats.Nodes >= that.maxNodes {
		return Bad, fmt.Errorf("%w: %d nodes", apperror.ErrSearchBudgetExceeded, that.maxNodes)
	}

	that.stats.Nodes++
	if that.stats.Nodes%cancelCheckInterval == 0 {
		if err := ctx.Err(); err != nil {
			return Bad, fmt.Errorf("%w: %w", apperror.ErrSearchBudgetExceeded, err)
		}
	}

	verdict := Bad
	for _, move := range sugarpacket.Moves {
		child, err := sugarpacket.Advance(state, move.Index, move.Jump)
		if err != nil {
			continue
		}

		if !admissible(perspectiveIsA, child) {
			continue
		}

		childVerdict, err := that.evaluate(ctx, child, !perspectiveIsA)
		if err != nil {
			return Bad, err
		}

		// a continuation that is bad for the next evaluation makes this node good
		if childVerdict == Bad {
			verdict = Good
			break
		}
	}

	that.table.store(key, verdict)

	return verdict, nil
}

// admissible reports whether a child position is explored at a node searched
// with the given perspective: with perspective A, any move that hands the
// turn away from A is skipped.
func admissible(perspectiveIsA bool, child entity.State) bool {
	return !perspectiveIsA || child.Turn == entity.SideA
}
