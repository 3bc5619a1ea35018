package state

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smileynet/contactbook/internal/config"
)

// pingTimeout bounds the Redis reachability check in Open.
const pingTimeout = 2 * time.Second

// Open builds the Store selected by cfg.Backend. The returned Closer releases
// backend connections and is always non-nil on success.
func Open(ctx context.Context, cfg config.Storage) (Store, io.Closer, error) {
	switch cfg.Backend {
	case "", config.BackendFile:
		return NewFileStore(cfg.Path), nopCloser{}, nil
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("state: redis ping %s: %w", cfg.Redis.Addr, err)
		}

		return NewRedisStore(rdb, WithKey(cfg.Redis.Key)), rdb, nil
	default:
		return nil, nil, fmt.Errorf("state: unknown storage backend %q", cfg.Backend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
