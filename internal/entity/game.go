package entity

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/sugarpacket-game/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

var (
	ErrInvalidState      = errors.New("invalid game state")
	ErrUnknownSide       = errors.New("unknown side")
	ErrUnknownGameStatus = errors.New("unknown game status")
)

// Game is one human-vs-bot session around a State.
type Game struct {
	ID      string `json:"id"`
	State   State  `json:"state"`
	Winner  Side   `json:"winner"`
	Status  string `json:"status"`
	BotSide Side   `json:"bot_side"`
}

func NewGame(botSide Side) *Game {
	return &Game{
		ID:      uuid.NewString(),
		State:   NewState(),
		Status:  StatusOngoing,
		BotSide: botSide,
	}
}

func (that *Game) HumanSide() Side {
	return that.BotSide.Opponent()
}

func (that *Game) IsBotTurn() bool {
	return !that.IsFinished() && that.State.Turn == that.BotSide
}

// UpdateGameState - latches the winner once a side has reached its far edge.
func (that *Game) UpdateGameState() {
	if winner := that.State.Winner(); winner != SideNone {
		that.Winner = winner
		that.Status = StatusFinished
		that.State.Finished = true
		return
	}

	that.Winner = SideNone
	that.Status = StatusOngoing
	that.State.Finished = false
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
