package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists completion marks in Redis so that separate worker
// processes and restarted runs share one view of what is finished.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed checkpoint store.
func NewRedisStore(opts ...Option) (*RedisStore, error) {
	cfg := &Config{
		Addr:   "localhost:6379",
		Prefix: "starspin:done",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{
		client: client,
		prefix: cfg.Prefix,
	}, nil
}

func (r *RedisStore) Done(ctx context.Context, target string) (bool, error) {
	err := r.client.Get(ctx, r.wrapKey(target)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *RedisStore) MarkDone(ctx context.Context, target string) error {
	return r.client.Set(ctx, r.wrapKey(target), "1", 0).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) wrapKey(target string) string {
	return fmt.Sprintf("%s:%s", r.prefix, target)
}
