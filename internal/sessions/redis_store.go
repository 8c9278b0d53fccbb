package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyOAuthState = "sbomhub:oauth_state:%s"

// keeps pending states in Redis so any instance can finish a login
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// creates a new Redis-backed state store from a URL
func NewRedisStoreFromURL(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Put(ctx context.Context, sessionID, state string, ttl time.Duration) error {
	key := fmt.Sprintf(keyOAuthState, sessionID)

	if err := s.client.Set(ctx, key, state, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store oauth state: %w", err)
	}

	return nil
}

// GETDEL keeps the read and delete atomic across instances
func (s *RedisStore) Take(ctx context.Context, sessionID string) (string, error) {
	key := fmt.Sprintf(keyOAuthState, sessionID)

	state, err := s.client.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrStateNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to take oauth state: %w", err)
	}

	return state, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
