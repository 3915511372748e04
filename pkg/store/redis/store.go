package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flowbaker/alloybridge/pkg/domain"
	"github.com/redis/go-redis/v9"
)

type Store struct {
	client    *redis.Client
	keyPrefix string
}

type Opts struct {
	URL       string
	KeyPrefix string
}

var _ domain.KeyValueStore = (*Store)(nil)

func New(ctx context.Context, opts Opts) (*Store, error) {
	options, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(options)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewWithClient(client, opts.KeyPrefix), nil
}

func NewWithClient(client *redis.Client, keyPrefix string) *Store {
	return &Store{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *Store) key(key string) string {
	if s.keyPrefix != "" {
		return fmt.Sprintf("%s:%s", s.keyPrefix, key)
	}
	return key
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key %s: %w", key, err)
	}

	return value, true, nil
}

// Set stores value; a zero ttl maps to no expiry in Redis.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
