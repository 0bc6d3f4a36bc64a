package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/sugarpacket-game/internal/entity"
	"github.com/rocketscienceinc/sugarpacket-game/internal/service"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	errQuit           = errors.New("quit")
)

const instructions = "Use 0-2 to select token, j to toggle jump, m to move, u to undo, q to quit."

type uGame interface {
	StartGame(ctx context.Context, botSide entity.Side) (*service.Session, error)
	MakeTurn(ctx context.Context, session *service.Session, index int, jump bool) (*entity.Game, error)
	Undo(ctx context.Context, session *service.Session) (*entity.Game, error)
}

// Server is the text-mode shell around one game against the bot.
type Server struct {
	logger *slog.Logger
	uGame  uGame

	session       *service.Session
	selectedToken int
	jumpMove      bool

	handlers map[string]func(ctx context.Context, out io.Writer) error
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "console"),
		uGame:  uGame,

		handlers: make(map[string]func(context.Context, io.Writer) error),
	}

	for i := range entity.TokensPerSide {
		server.handlers[fmt.Sprint(i)] = server.handleSelect(i)
	}
	server.handlers["j"] = server.handleJump
	server.handlers["m"] = server.handleMove
	server.handlers["u"] = server.handleUndo
	server.handlers["h"] = server.handleHelp
	server.handlers["q"] = func(context.Context, io.Writer) error { return errQuit }

	return server
}

// Start - plays one game reading commands line by line from in until q, EOF
// or ctx is done.
func (that *Server) Start(ctx context.Context, botSide entity.Side, in io.Reader, out io.Writer) error {
	session, err := that.uGame.StartGame(ctx, botSide)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.session = session
	that.selectedToken = 0
	that.jumpMove = false

	fmt.Fprintln(out, instructions)
	that.render(out)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err = ctx.Err(); err != nil {
			return nil
		}

		command := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if command == "" {
			continue
		}

		if err = that.dispatch(ctx, command, out); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}

			fmt.Fprintf(out, "error: %v\n", err)
		}

		that.render(out)
	}

	if err = scanner.Err(); err != nil {
		return fmt.Errorf("failed to read command: %w", err)
	}

	return nil
}

func (that *Server) dispatch(ctx context.Context, command string, out io.Writer) error {
	handler, ok := that.handlers[command]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}

	return handler(ctx, out)
}
