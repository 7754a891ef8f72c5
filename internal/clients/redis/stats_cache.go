package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/breakbetter-backend/internal/modules/breaks"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
)

// StatsCache memoizes computed stats per user and window.
//
// Every Invalidate bumps the user's generation. Callers read Generation before
// loading the records and pass it to Set; a write carrying an older generation
// is dropped, so stats computed before a session closed never land in the cache.
type StatsCache interface {
	Get(ctx context.Context, userID uuid.UUID, days int) (*breaks.Stats, bool, error)
	Generation(ctx context.Context, userID uuid.UUID) (int64, error)
	Set(ctx context.Context, userID uuid.UUID, days int, gen int64, stats breaks.Stats) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
	Close() error
}

// Outlives any single stats computation by a wide margin.
const generationTTL = 24 * time.Hour

type statsCache struct {
	log    *logger.Logger
	rdb    goredis.UniversalClient
	ttl    time.Duration
	prefix string
}

type StatsCacheConfig struct {
	Addr   string
	TTL    time.Duration
	Prefix string
}

func NewStatsCache(log *logger.Logger, cfg StatsCacheConfig) (StatsCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newStatsCacheWithClient(log, rdb, cfg.TTL, cfg.Prefix), nil
}

func newStatsCacheWithClient(log *logger.Logger, rdb goredis.UniversalClient, ttl time.Duration, prefix string) *statsCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if prefix == "" {
		prefix = "breakbetter:stats"
	}
	return &statsCache{
		log:    log.With("service", "RedisStatsCache"),
		rdb:    rdb,
		ttl:    ttl,
		prefix: prefix,
	}
}

// Each user has one hash; fields are window sizes. Invalidation drops the
// whole hash.
func (c *statsCache) key(userID uuid.UUID) string {
	return c.prefix + ":" + userID.String()
}

func (c *statsCache) genKey(userID uuid.UUID) string {
	return c.prefix + ":gen:" + userID.String()
}

func (c *statsCache) Generation(ctx context.Context, userID uuid.UUID) (int64, error) {
	gen, err := c.rdb.Get(ctx, c.genKey(userID)).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *statsCache) Get(ctx context.Context, userID uuid.UUID, days int) (*breaks.Stats, bool, error) {
	raw, err := c.rdb.HGet(ctx, c.key(userID), strconv.Itoa(days)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var stats breaks.Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("decode cached stats: %w", err)
	}
	return &stats, true, nil
}

func (c *statsCache) Set(ctx context.Context, userID uuid.UUID, days int, gen int64, stats breaks.Stats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	key, genKey := c.key(userID), c.genKey(userID)
	err = c.rdb.Watch(ctx, func(tx *goredis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, goredis.Nil) {
			return err
		}
		if cur != gen {
			c.log.Debug("Dropping stale stats write", "user_id", userID, "gen", gen, "current_gen", cur)
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.HSet(ctx, key, strconv.Itoa(days), raw)
			pipe.Expire(ctx, key, c.ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, goredis.TxFailedErr) {
		// Invalidated between the check and the write.
		return nil
	}
	return err
}

func (c *statsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	genKey := c.genKey(userID)
	_, err := c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, c.key(userID))
		return nil
	})
	return err
}

func (c *statsCache) Close() error {
	return c.rdb.Close()
}

// NopStatsCache is used when no redis is configured.
type NopStatsCache struct{}

func (NopStatsCache) Get(context.Context, uuid.UUID, int) (*breaks.Stats, bool, error) {
	return nil, false, nil
}
func (NopStatsCache) Generation(context.Context, uuid.UUID) (int64, error)           { return 0, nil }
func (NopStatsCache) Set(context.Context, uuid.UUID, int, int64, breaks.Stats) error { return nil }
func (NopStatsCache) Invalidate(context.Context, uuid.UUID) error                    { return nil }
func (NopStatsCache) Close() error                                                   { return nil }
