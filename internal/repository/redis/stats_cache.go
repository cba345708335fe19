package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"lottoLens/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

const statsCacheTTL = 10 * time.Minute

// StatsCache keeps the computed per-game statistics projection. It is
// a pure cache: the projection is always re-derivable from the draw
// records, so losing an entry only costs a recompute.
type StatsCache struct {
	client *redis.Client
}

func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{
		client: client,
	}
}

func statsKey(gameType string) string {
	return fmt.Sprintf("stats:game:%s", gameType)
}

// Get returns the cached stats or (nil, nil) on a miss.
func (c *StatsCache) Get(ctx context.Context, gameType string) (*domain.GameStats, error) {
	val, err := c.client.Get(ctx, statsKey(gameType)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stats from Redis: %w", err)
	}

	var stats domain.GameStats
	if err := json.Unmarshal([]byte(val), &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached stats: %w", err)
	}

	return &stats, nil
}

func (c *StatsCache) Set(ctx context.Context, gameType string, stats *domain.GameStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	if err := c.client.Set(ctx, statsKey(gameType), raw, statsCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to store stats in Redis: %w", err)
	}

	return nil
}

// Invalidate drops the cached projection after new records land.
func (c *StatsCache) Invalidate(ctx context.Context, gameType string) error {
	if err := c.client.Del(ctx, statsKey(gameType)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate stats cache: %w", err)
	}

	return nil
}
