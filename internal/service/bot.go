package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/sugarpacket-game/internal/apperror"
	"github.com/rocketscienceinc/sugarpacket-game/internal/entity"
	"github.com/rocketscienceinc/sugarpacket-game/internal/search"
	"github.com/rocketscienceinc/sugarpacket-game/internal/sugarpacket"
)

type evaluator interface {
	Evaluate(ctx context.Context, state entity.State, perspectiveIsA bool) (search.Verdict, error)
}

// Choice is the bot's move. Forced is set when the search backed it, and
// unset when it is the first legal move taken as a fallback.
type Choice struct {
	Move   sugarpacket.Move
	Forced bool
}

type BotService interface {
	ChooseMove(ctx context.Context, state entity.State) (Choice, error)
	MakeTurn(ctx context.Context, engine *sugarpacket.Engine, state *entity.State) (Choice, error)
}

type botService struct {
	logger    *slog.Logger
	evaluator evaluator
}

func NewBotService(logger *slog.Logger, evaluator evaluator) BotService {
	return &botService{
		logger:    logger.With("component", "bot"),
		evaluator: evaluator,
	}
}

// ChooseMove - tries every candidate in canonical order and returns the first
// one the search reports as Good, evaluated with the bot's own side as the
// perspective. Without such a candidate the first legal move is returned.
// ErrNoLegalMoves means the bot is stuck.
func (that *botService) ChooseMove(ctx context.Context, state entity.State) (Choice, error) {
	botSide := state.Turn

	var fallback *sugarpacket.Move
	for _, move := range sugarpacket.Moves {
		next, err := sugarpacket.Advance(state, move.Index, move.Jump)
		if err != nil {
			continue
		}

		if fallback == nil {
			fallback = &move
		}

		if next.Turn != botSide.Opponent() {
			continue
		}

		verdict, err := that.evaluator.Evaluate(ctx, next, botSide == entity.SideA)
		if err != nil {
			return Choice{}, fmt.Errorf("failed to evaluate move %s: %w", move, err)
		}

		if verdict == search.Good {
			return Choice{Move: move, Forced: true}, nil
		}
	}

	if fallback == nil {
		return Choice{}, apperror.ErrNoLegalMoves
	}

	return Choice{Move: *fallback}, nil
}

// MakeTurn - chooses and commits a move through engine. If the search runs
// out of budget the first legal move is played instead and logged.
func (that *botService) MakeTurn(ctx context.Context, engine *sugarpacket.Engine, state *entity.State) (Choice, error) {
	log := that.logger.With("method", "MakeTurn", "side", state.Turn)

	choice, err := that.ChooseMove(ctx, *state)
	if errors.Is(err, apperror.ErrSearchBudgetExceeded) {
		log.Warn("search gave up, playing first legal move", "error", err)

		legal := sugarpacket.LegalMoves(*state)
		if len(legal) == 0 {
			return Choice{}, apperror.ErrNoLegalMoves
		}

		choice, err = Choice{Move: legal[0]}, nil
	}

	if err != nil {
		return Choice{}, fmt.Errorf("bot failed to choose move: %w", err)
	}

	if err = engine.MakeMove(state, choice.Move.Index, choice.Move.Jump); err != nil {
		return Choice{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Debug("bot moved", "token", choice.Move.Index, "jump", choice.Move.Jump, "forced", choice.Forced)

	return choice, nil
}
