package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rocketscienceinc/sugarpacket-game/internal/apperror"
)

var errGameOver = errors.New("game is over")

func (that *Server) handleSelect(index int) func(context.Context, io.Writer) error {
	return func(context.Context, io.Writer) error {
		that.selectedToken = index
		return nil
	}
}

func (that *Server) handleJump(context.Context, io.Writer) error {
	that.jumpMove = !that.jumpMove
	return nil
}

func (that *Server) handleMove(ctx context.Context, out io.Writer) error {
	log := that.logger.With("method", "handleMove", "gameID", that.session.Game.ID)

	if that.session.Game.IsFinished() {
		return errGameOver
	}

	jump := that.jumpMove
	// the jump flag resets after every attempt, successful or not
	that.jumpMove = false

	game, err := that.uGame.MakeTurn(ctx, that.session, that.selectedToken, jump)
	if err != nil {
		if errors.Is(err, apperror.ErrIllegalMove) || errors.Is(err, apperror.ErrInvalidIndex) {
			fmt.Fprintln(out, "Illegal move.")
			return nil
		}

		if errors.Is(err, apperror.ErrNoLegalMoves) {
			fmt.Fprintln(out, "Bot is stuck, no legal moves left.")
			return nil
		}

		log.Error("failed to make turn", "error", err)

		return err
	}

	if choice := that.session.LastBotChoice; choice != nil {
		kind := "step"
		if choice.Move.Jump {
			kind = "jump"
		}
		fmt.Fprintf(out, "Bot %s moved token %d (%s).\n", game.BotSide, choice.Move.Index, kind)
	}

	return nil
}

func (that *Server) handleUndo(ctx context.Context, out io.Writer) error {
	if _, err := that.uGame.Undo(ctx, that.session); err != nil {
		if errors.Is(err, apperror.ErrHistoryEmpty) {
			fmt.Fprintln(out, "Nothing to undo.")
			return nil
		}

		return err
	}

	fmt.Fprintln(out, "Turn undone.")

	return nil
}

func (that *Server) handleHelp(_ context.Context, out io.Writer) error {
	fmt.Fprintln(out, instructions)
	return nil
}
