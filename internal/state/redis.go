package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/smileynet/contactbook/internal/contact"
)

// DefaultRedisKey is the key the book is stored under unless overridden.
const DefaultRedisKey = "contactbook:book"

// RedisStore persists the book as one JSON value in Redis.
type RedisStore struct {
	rdb *redis.Client
	key string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKey sets the key the book is stored under.
func WithKey(key string) RedisOption {
	return func(s *RedisStore) {
		if k := strings.TrimSpace(key); k != "" {
			s.key = k
		}
	}
}

// NewRedisStore creates a RedisStore using rdb.
func NewRedisStore(rdb *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{rdb: rdb, key: DefaultRedisKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the key the book is stored under.
func (s *RedisStore) Key() string {
	return s.key
}

// Save overwrites the stored book.
func (s *RedisStore) Save(ctx context.Context, book *contact.Book) error {
	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("state: marshaling: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("state: writing redis key %s: %w", s.key, err)
	}
	return nil
}

// Load reads the stored book. A missing key yields an empty book.
func (s *RedisStore) Load(ctx context.Context) (*contact.Book, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return contact.NewBook(), nil
		}
		return nil, fmt.Errorf("state: reading redis key %s: %w", s.key, err)
	}
	return decode(data, "redis key "+s.key)
}
