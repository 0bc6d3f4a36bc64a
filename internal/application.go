package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/rocketscienceinc/sugarpacket-game/internal/config"
	"github.com/rocketscienceinc/sugarpacket-game/internal/entity"
	"github.com/rocketscienceinc/sugarpacket-game/internal/repository"
	"github.com/rocketscienceinc/sugarpacket-game/internal/repository/storage"
	"github.com/rocketscienceinc/sugarpacket-game/internal/search"
	"github.com/rocketscienceinc/sugarpacket-game/internal/service"
	"github.com/rocketscienceinc/sugarpacket-game/internal/sugarpacket"
	"github.com/rocketscienceinc/sugarpacket-game/transport/console"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

type evaluator interface {
	Evaluate(ctx context.Context, state entity.State, perspectiveIsA bool) (search.Verdict, error)
	Stats() search.Stats
}

type app struct {
	logger *slog.Logger
	conf   *config.Config

	in  io.Reader
	out io.Writer
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config, args []string) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	application := &app{
		logger: logger,
		conf:   conf,
		in:     os.Stdin,
		out:    os.Stdout,
	}

	if err := application.command().Run(ctx, args); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

func (that *app) command() *cli.Command {
	return &cli.Command{
		Name:           "sugarpacket",
		Usage:          "two-player sugar-packet race game against a forced-win bot",
		DefaultCommand: "play",
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play against the bot on the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "bot-side", Value: that.conf.Bot.Side, Usage: "side the bot plays, a or b"},
				},
				Action: that.play,
			},
			{
				Name:  "solve",
				Usage: "run the forced-win search on a position",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "moves", Usage: "moves from the start, e.g. \"0,1j,2\" (index, j for jump)"},
				},
				Action: that.solve,
			},
		},
	}
}

func (that *app) play(ctx context.Context, cmd *cli.Command) error {
	botSide, err := entity.ParseSide(cmd.String("bot-side"))
	if err != nil {
		return fmt.Errorf("invalid bot side: %w", err)
	}

	eval, closeEval, err := that.newEvaluator(ctx)
	if err != nil {
		return err
	}
	defer closeEval()

	botService := service.NewBotService(that.logger, eval)
	gamePlay := service.NewGamePlayService(that.logger, that.conf.History.Capacity, botService)

	return console.New(that.logger, gamePlay).Start(ctx, botSide, that.in, that.out)
}

func (that *app) solve(ctx context.Context, cmd *cli.Command) error {
	state, err := replay(cmd.String("moves"))
	if err != nil {
		return err
	}

	eval, closeEval, err := that.newEvaluator(ctx)
	if err != nil {
		return err
	}
	defer closeEval()

	mover := state.Turn
	fmt.Fprintf(that.out, "side to move: %s\n", mover)

	for _, move := range sugarpacket.LegalMoves(state) {
		next, err := sugarpacket.Advance(state, move.Index, move.Jump)
		if err != nil {
			return fmt.Errorf("failed to replay candidate %s: %w", move, err)
		}

		verdict, err := eval.Evaluate(ctx, next, mover == entity.SideA)
		if err != nil {
			return fmt.Errorf("failed to evaluate candidate %s: %w", move, err)
		}

		fmt.Fprintf(that.out, "move %-3s %s (nodes %d)\n", move, verdict, eval.Stats().Nodes)
	}

	verdict, err := eval.Evaluate(ctx, state, mover == entity.SideA)
	if err != nil {
		return fmt.Errorf("failed to evaluate position: %w", err)
	}

	stats := eval.Stats()
	fmt.Fprintf(that.out, "position %s (nodes %d, hits %d, cached %d)\n", verdict, stats.Nodes, stats.Hits, stats.Cached)

	return nil
}

// newEvaluator - the plain searcher, or the redis-cached solver when enabled.
func (that *app) newEvaluator(ctx context.Context) (evaluator, func(), error) {
	searcher := search.New(search.Options{
		MaxNodes: that.conf.Search.MaxNodes,
		Timeout:  that.conf.Search.Timeout,
	})

	if !that.conf.Redis.Enabled {
		return searcher, func() {}, nil
	}

	redisAddrString := that.conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeStorage := func() {
		if err := redisStorage.Close(); err != nil {
			that.logger.Error("could not close redis storage", "error", err)
		}
	}

	verdictRepo := repository.NewVerdictRepository(redisStorage, that.conf.Redis.TTL)

	return service.NewSolverService(that.logger, searcher, verdictRepo), closeStorage, nil
}

// replay - applies comma separated moves ("1", "2j") from the initial position.
func replay(moves string) (entity.State, error) {
	state := entity.NewState()

	for _, raw := range strings.Split(moves, ",") {
		raw = strings.TrimSpace(strings.ToLower(raw))
		if raw == "" {
			continue
		}

		move, err := sugarpacket.ParseMove(raw)
		if err != nil {
			return state, err
		}

		if state, err = sugarpacket.Advance(state, move.Index, move.Jump); err != nil {
			return state, fmt.Errorf("failed to replay %q: %w", raw, err)
		}
	}

	return state, nil
}
