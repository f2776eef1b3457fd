package sanitize

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/socialscope/socialscope/internal/logger"
	"go.uber.org/zap"
)

// RedisStore is a registry backend for deployments where request handling
// spans multiple processes. Entries get a native TTL; a sorted-set index
// keyed by expiry time lets Sweep return an exact removed count.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *logger.Logger
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(redisURL, keyPrefix string, ttl time.Duration, log *logger.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if log != nil {
		log.Info("Redis tracking registry initialized",
			zap.String("redis_url", maskRedisURL(redisURL)),
			zap.Duration("ttl", ttl),
		)
	}

	return &RedisStore{
		client: client,
		prefix: keyPrefix,
		ttl:    ttl,
		logger: log,
	}, nil
}

func (s *RedisStore) entryKey(trackingID string) string {
	return s.prefix + ":" + trackingID
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":index"
}

// Register stores the payload with a native expiry and indexes the id by
// its expiry timestamp.
func (s *RedisStore) Register(ctx context.Context, trackingID string, data map[string]any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode tracked payload: %w", err)
	}

	expiresAt := time.Now().Add(s.ttl)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.entryKey(trackingID), payload, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), &redis.Z{
		Score:  float64(expiresAt.Unix()),
		Member: trackingID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to register tracked payload: %w", err)
	}

	return nil
}

// Release removes a single entry and its index member.
func (s *RedisStore) Release(ctx context.Context, trackingID string) (bool, error) {
	removed, err := s.client.Del(ctx, s.entryKey(trackingID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to release tracked payload: %w", err)
	}
	if err := s.client.ZRem(ctx, s.indexKey(), trackingID).Err(); err != nil {
		return false, fmt.Errorf("failed to drop index member: %w", err)
	}
	return removed > 0, nil
}

// Sweep deletes every indexed id whose expiry has passed. Redis drops the
// payload keys on its own; the index is authoritative for the count.
func (s *RedisStore) Sweep(ctx context.Context) (int, error) {
	now := strconv.FormatInt(time.Now().Unix(), 10)

	expired, err := s.client.ZRangeByScore(ctx, s.indexKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: now,
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list expired entries: %w", err)
	}
	if len(expired) == 0 {
		return 0, nil
	}

	pipe := s.client.TxPipeline()
	for _, id := range expired {
		pipe.Del(ctx, s.entryKey(id))
	}
	pipe.ZRemRangeByScore(ctx, s.indexKey(), "-inf", now)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to sweep expired entries: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Swept expired tracked payloads", zap.Int("count", len(expired)))
	}

	return len(expired), nil
}

// Stats reports registry occupancy from the expiry index.
func (s *RedisStore) Stats(ctx context.Context) (Stats, error) {
	now := time.Now()
	nowScore := strconv.FormatInt(now.Unix(), 10)

	total, err := s.client.ZCard(ctx, s.indexKey()).Result()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count entries: %w", err)
	}

	expired, err := s.client.ZCount(ctx, s.indexKey(), "-inf", nowScore).Result()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count expired entries: %w", err)
	}

	return Stats{
		TotalEntries:   int(total),
		ActiveEntries:  int(total - expired),
		ExpiredEntries: int(expired),
		CleanupNeeded:  expired > 0,
		Timestamp:      now,
	}, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// maskRedisURL hides credentials in a Redis URL for logging.
func maskRedisURL(redisURL string) string {
	if at := strings.LastIndex(redisURL, "@"); at != -1 {
		if scheme := strings.Index(redisURL, "://"); scheme != -1 {
			return redisURL[:scheme+3] + "***" + redisURL[at:]
		}
	}
	return redisURL
}
