package queue

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const stampKeyPrefix = "shop:index:stamp:"

// StampFence issues per-shop monotonic stamps and answers staleness queries.
// A stamp is issued at enqueue time; a worker holding a stamp older than the
// latest issued one is processing a job whose state a later job supersedes,
// and skips.
type StampFence struct {
	rdb redis.UniversalClient
}

// NewStampFence creates a new StampFence
func NewStampFence(rdb redis.UniversalClient) *StampFence {
	return &StampFence{rdb: rdb}
}

// Next issues the next stamp for a shop
func (f *StampFence) Next(ctx context.Context, shopID uuid.UUID) (int64, error) {
	stamp, err := f.rdb.Incr(ctx, stampKeyPrefix+shopID.String()).Result()
	if err != nil {
		return 0, fmt.Errorf("issue index stamp for shop %s: %w", shopID, err)
	}
	return stamp, nil
}

// Latest returns the most recently issued stamp for a shop, zero when none
// was ever issued
func (f *StampFence) Latest(ctx context.Context, shopID uuid.UUID) (int64, error) {
	val, err := f.rdb.Get(ctx, stampKeyPrefix+shopID.String()).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read index stamp for shop %s: %w", shopID, err)
	}
	stamp, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse index stamp for shop %s: %w", shopID, err)
	}
	return stamp, nil
}

// IsStale reports whether the given stamp was superseded by a later enqueue
func (f *StampFence) IsStale(ctx context.Context, shopID uuid.UUID, stamp int64) (bool, error) {
	latest, err := f.Latest(ctx, shopID)
	if err != nil {
		return false, err
	}
	return stamp < latest, nil
}
