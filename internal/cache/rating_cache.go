package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"screenspeak/internal/http-api/models"

	"github.com/redis/go-redis/v9"
)

// RatingCache keeps per-movie rating aggregates in Redis hashes.
// A nil client turns every call into a no-op so the API runs without Redis.
type RatingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRatingCache(client *redis.Client, ttl time.Duration) *RatingCache {
	return &RatingCache{client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL; an explicit password overrides the URL's.
func NewRedisClient(ctx context.Context, url, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

func ratingKey(movieID int64) string {
	return fmt.Sprintf("rating:movie:%d", movieID)
}

// versionKey counts invalidations of a movie's entry. It never expires.
func versionKey(movieID int64) string {
	return ratingKey(movieID) + ":ver"
}

var errVersionChanged = errors.New("rating cache version changed")

// Get reports ok=false on a miss. The returned version must be passed to Set
// when the caller fills the miss.
func (c *RatingCache) Get(ctx context.Context, movieID int64) (models.RatingStats, int64, bool, error) {
	if c == nil || c.client == nil {
		return models.RatingStats{}, 0, false, nil
	}

	pipe := c.client.Pipeline()
	hash := pipe.HGetAll(ctx, ratingKey(movieID))
	ver := pipe.Get(ctx, versionKey(movieID))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return models.RatingStats{}, 0, false, err
	}

	version, err := readVersion(ver)
	if err != nil {
		return models.RatingStats{}, 0, false, err
	}
	fields, err := hash.Result()
	if err != nil {
		return models.RatingStats{}, version, false, err
	}
	if len(fields) == 0 {
		return models.RatingStats{}, version, false, nil
	}

	stats, err := parseStats(fields)
	if err != nil {
		return models.RatingStats{}, version, false, err
	}
	return stats, version, true, nil
}

func readVersion(cmd *redis.StringCmd) (int64, error) {
	v, err := cmd.Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("corrupt rating cache version: %w", err)
	}
	return v, nil
}

func parseStats(fields map[string]string) (models.RatingStats, error) {
	total, err := strconv.ParseFloat(fields["total"], 64)
	if err != nil {
		return models.RatingStats{}, fmt.Errorf("corrupt rating cache entry: %w", err)
	}
	count, err := strconv.ParseInt(fields["count"], 10, 64)
	if err != nil {
		return models.RatingStats{}, fmt.Errorf("corrupt rating cache entry: %w", err)
	}
	return models.RatingStats{Total: total, Count: count}, nil
}

// Set stores stats only while the entry is still at version, the value Get
// returned before the stats were read from the database. An Invalidate in
// between bumps the version and the write is dropped, so a stale aggregate
// never outlives the review write that replaced it.
func (c *RatingCache) Set(ctx context.Context, movieID int64, stats models.RatingStats, version int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	key, vkey := ratingKey(movieID), versionKey(movieID)

	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(tx.Get(ctx, vkey))
		if err != nil {
			return err
		}
		if current != version {
			return errVersionChanged
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, map[string]any{
				"total": strconv.FormatFloat(stats.Total, 'f', -1, 64),
				"count": stats.Count,
			})
			if c.ttl > 0 {
				pipe.Expire(ctx, key, c.ttl)
			}
			return nil
		})
		return err
	}, vkey)

	if errors.Is(err, errVersionChanged) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// Invalidate drops the entry and bumps its version in one transaction.
func (c *RatingCache) Invalidate(ctx context.Context, movieID int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, versionKey(movieID))
	pipe.Del(ctx, ratingKey(movieID))
	_, err := pipe.Exec(ctx)
	return err
}
