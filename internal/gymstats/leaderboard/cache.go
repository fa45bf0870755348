package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	cacheKeyPrefix     = "liftlog||leaderboard||"
	cacheGenerationKey = cacheKeyPrefix + "gen"
)

var _ Cache = (*RedisCache)(nil)

// RedisCache keeps aggregated leaderboards as JSON strings with a TTL, keyed by
// a generation counter. Invalidate bumps the counter, so an aggregation that
// started before a write can only store its result under a stale generation.
type RedisCache struct {
	redisClient redis.Cmdable
	ttl         time.Duration
}

func NewRedisCache(redisClient redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func entriesKey(generation int64) string {
	return cacheKeyPrefix + strconv.FormatInt(generation, 10)
}

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	generation, err := c.redisClient.Get(ctx, cacheGenerationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("get leaderboard generation: %w", err)
	}
	return generation, nil
}

func (c *RedisCache) Get(ctx context.Context) ([]Entry, int64, bool, error) {
	generation, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	cmd := c.redisClient.Get(ctx, entriesKey(generation))
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, generation, false, nil
		}
		return nil, generation, false, err
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(cmd.Val()), &entries); err != nil {
		return nil, generation, false, fmt.Errorf("unmarshal cached leaderboard: %w", err)
	}
	return entries, generation, true, nil
}

func (c *RedisCache) Set(ctx context.Context, generation int64, entries []Entry) error {
	entriesJson, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal leaderboard: %w", err)
	}
	return c.redisClient.Set(ctx, entriesKey(generation), string(entriesJson), c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.redisClient.Incr(ctx, cacheGenerationKey).Err()
}
