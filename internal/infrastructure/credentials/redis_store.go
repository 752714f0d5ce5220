package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"marketplace/pkg/config"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps cookies under one key per profile so several shells can
// share a session.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a store keyed by prefix and profile.
func NewRedisStore(client *redis.Client, prefix, profile string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    prefix + profile,
	}
}

// NewRedisClient parses the configured URL and pings the server once.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout
	opts.DialTimeout = cfg.DialTimeout

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func (r *RedisStore) Load(ctx context.Context) ([]*http.Cookie, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decode stored cookies: %w", err)
	}
	return fromStored(stored), nil
}

func (r *RedisStore) Save(ctx context.Context, cookies []*http.Cookie) error {
	data, err := json.Marshal(toStored(cookies))
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, data, 0).Err()
}

func (r *RedisStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
