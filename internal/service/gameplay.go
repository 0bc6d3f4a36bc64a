package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/sugarpacket-game/internal/apperror"
	"github.com/rocketscienceinc/sugarpacket-game/internal/entity"
	"github.com/rocketscienceinc/sugarpacket-game/internal/history"
	"github.com/rocketscienceinc/sugarpacket-game/internal/sugarpacket"
)

// Session ties a game to the engine that owns its history.
type Session struct {
	Game   *entity.Game
	Engine *sugarpacket.Engine

	// LastBotChoice is the reply to the most recent human move, if any.
	LastBotChoice *Choice
}

type GamePlayService interface {
	StartGame(ctx context.Context, botSide entity.Side) (*Session, error)
	MakeTurn(ctx context.Context, session *Session, index int, jump bool) (*entity.Game, error)
	Undo(ctx context.Context, session *Session) (*entity.Game, error)
}

type gamePlayService struct {
	logger *slog.Logger

	historyCapacity int
	botService      BotService
}

func NewGamePlayService(logger *slog.Logger, historyCapacity int, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:          logger.With("component", "gameplay"),
		historyCapacity: historyCapacity,
		botService:      botService,
	}
}

// StartGame - a fresh game; when the bot owns side A it opens immediately.
func (that *gamePlayService) StartGame(ctx context.Context, botSide entity.Side) (*Session, error) {
	if botSide != entity.SideA && botSide != entity.SideB {
		return nil, fmt.Errorf("%w: bot side %d", entity.ErrUnknownSide, botSide)
	}

	session := &Session{
		Game:   entity.NewGame(botSide),
		Engine: sugarpacket.NewEngine(history.NewStack(that.historyCapacity)),
	}

	that.logger.Info("game started", "gameID", session.Game.ID, "bot", botSide)

	if session.Game.IsBotTurn() {
		if err := that.botTurn(ctx, session); err != nil {
			return nil, err
		}
	}

	return session, nil
}

// MakeTurn - applies the human move, then lets the bot answer while it is its turn.
func (that *gamePlayService) MakeTurn(ctx context.Context, session *Session, index int, jump bool) (*entity.Game, error) {
	game := session.Game

	if err := game.ConfirmOngoingState(); err != nil {
		return game, err
	}

	if game.IsBotTurn() {
		return game, apperror.ErrNotYourTurn
	}

	if err := session.Engine.MakeMove(&game.State, index, jump); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	session.LastBotChoice = nil
	game.UpdateGameState()

	if game.IsFinished() {
		that.logger.Info("game finished", "gameID", game.ID, "winner", game.Winner)
		return game, nil
	}

	if game.IsBotTurn() {
		if err := that.botTurn(ctx, session); err != nil {
			return game, err
		}
	}

	return game, nil
}

// Undo - rolls back to the last position where the human was to move,
// taking back the bot's reply together with the human move.
func (that *gamePlayService) Undo(_ context.Context, session *Session) (*entity.Game, error) {
	game := session.Game
	snapshots := session.Engine.History().Snapshots()

	target := -1
	for i := len(snapshots) - 1; i >= 0; i-- {
		if snapshots[i].Turn == game.HumanSide() {
			target = i
			break
		}
	}

	if target < 0 {
		return game, fmt.Errorf("failed to undo: %w", apperror.ErrHistoryEmpty)
	}

	for range len(snapshots) - target {
		if err := session.Engine.Undo(&game.State); err != nil {
			return game, fmt.Errorf("failed to undo: %w", err)
		}
	}

	session.LastBotChoice = nil
	game.UpdateGameState()

	return game, nil
}

func (that *gamePlayService) botTurn(ctx context.Context, session *Session) error {
	game := session.Game

	choice, err := that.botService.MakeTurn(ctx, session.Engine, &game.State)
	if err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	session.LastBotChoice = &choice
	game.UpdateGameState()

	if game.IsFinished() {
		that.logger.Info("game finished", "gameID", game.ID, "winner", game.Winner)
	}

	return nil
}
