package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/sugarpacket-game/internal/search"
)

var ErrVerdictNotFound = errors.New("verdict not found")

type VerdictRepository interface {
	Get(ctx context.Context, stateKey uint64, perspectiveIsA bool) (search.Verdict, error)
	Save(ctx context.Context, stateKey uint64, perspectiveIsA bool, verdict search.Verdict) error
	DeleteAll(ctx context.Context) error
}

type dbVerdict struct {
	client *redis.Client
	ttl    time.Duration
}

// NewVerdictRepository - ttl 0 keeps verdicts forever; they never go stale
// because a position's verdict is fixed.
func NewVerdictRepository(client *redis.Client, ttl time.Duration) VerdictRepository {
	return &dbVerdict{
		client: client,
		ttl:    ttl,
	}
}

func verdictKey(stateKey uint64, perspectiveIsA bool) string {
	perspective := "b"
	if perspectiveIsA {
		perspective = "a"
	}

	return "verdict:" + strconv.FormatUint(stateKey, 16) + ":" + perspective
}

func (that *dbVerdict) Get(ctx context.Context, stateKey uint64, perspectiveIsA bool) (search.Verdict, error) {
	response, err := that.client.Get(ctx, verdictKey(stateKey, perspectiveIsA)).Result()

	if errors.Is(err, redis.Nil) {
		return search.Bad, ErrVerdictNotFound
	}

	if err != nil {
		return search.Bad, fmt.Errorf("failed to get verdict: %w", err)
	}

	verdict, err := search.ParseVerdict(response)
	if err != nil {
		return search.Bad, fmt.Errorf("failed to parse verdict: %w", err)
	}

	return verdict, nil
}

func (that *dbVerdict) Save(ctx context.Context, stateKey uint64, perspectiveIsA bool, verdict search.Verdict) error {
	err := that.client.Set(ctx, verdictKey(stateKey, perspectiveIsA), verdict.String(), that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set verdict: %w", err)
	}

	return nil
}

// DeleteAll - drops every cached verdict, other keys are left alone.
func (that *dbVerdict) DeleteAll(ctx context.Context) error {
	iter := that.client.Scan(ctx, 0, "verdict:*", 100).Iterator()

	for iter.Next(ctx) {
		if err := that.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete verdict: %w", err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan verdicts: %w", err)
	}

	return nil
}
