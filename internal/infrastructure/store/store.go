package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/contract"
	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"
)

const statsKey = "players:stats"

// StatsCacheStore keeps the aggregate registration stats in Redis.
type StatsCacheStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ contract.IStatsCache = (*StatsCacheStore)(nil)

func NewStatsCacheStore(rdb *redis.Client, ttl time.Duration) *StatsCacheStore {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &StatsCacheStore{rdb: rdb, ttl: ttl}
}

func (c *StatsCacheStore) GetStats(ctx context.Context) (*entity.PlayerStats, bool, error) {
	b, err := c.rdb.Get(ctx, statsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var stats entity.PlayerStats
	if err := json.Unmarshal(b, &stats); err != nil {
		// unreadable entries are treated as a miss and overwritten on the next set
		return nil, false, nil
	}
	return &stats, true, nil
}

func (c *StatsCacheStore) SetStats(ctx context.Context, stats *entity.PlayerStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey, data, c.ttl).Err()
}

func (c *StatsCacheStore) InvalidateStats(ctx context.Context) error {
	return c.rdb.Del(ctx, statsKey).Err()
}
