package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/sugarpacket-game/internal/entity"
	"github.com/rocketscienceinc/sugarpacket-game/internal/repository"
	"github.com/rocketscienceinc/sugarpacket-game/internal/search"
)

type verdictRepo interface {
	Get(ctx context.Context, stateKey uint64, perspectiveIsA bool) (search.Verdict, error)
	Save(ctx context.Context, stateKey uint64, perspectiveIsA bool, verdict search.Verdict) error
}

// SolverService puts a shared verdict cache in front of a Searcher. Cache
// failures are logged and never fail an evaluation.
type SolverService struct {
	logger *slog.Logger

	searcher *search.Searcher
	repo     verdictRepo
}

func NewSolverService(logger *slog.Logger, searcher *search.Searcher, repo verdictRepo) *SolverService {
	return &SolverService{
		logger:   logger.With("component", "solver"),
		searcher: searcher,
		repo:     repo,
	}
}

func (that *SolverService) Evaluate(ctx context.Context, state entity.State, perspectiveIsA bool) (search.Verdict, error) {
	log := that.logger.With("method", "Evaluate", "key", state.Key(), "perspectiveA", perspectiveIsA)

	verdict, err := that.repo.Get(ctx, state.Key(), perspectiveIsA)
	switch {
	case err == nil:
		return verdict, nil
	case errors.Is(err, repository.ErrVerdictNotFound):
	default:
		log.Warn("verdict cache lookup failed", "error", err)
	}

	verdict, err = that.searcher.Evaluate(ctx, state, perspectiveIsA)
	if err != nil {
		return search.Bad, fmt.Errorf("failed to search position: %w", err)
	}

	if err = that.repo.Save(ctx, state.Key(), perspectiveIsA, verdict); err != nil {
		log.Warn("failed to cache verdict", "error", err)
	}

	return verdict, nil
}

func (that *SolverService) Stats() search.Stats {
	return that.searcher.Stats()
}
