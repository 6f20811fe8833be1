package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wordbot/internal/domain"

	"github.com/go-redis/redis/v8"
)

// RedisClient is the subset of redis commands the session store needs
type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}

var _ RedisClient = (*redClient)(nil)

type redClient struct {
	cli *redis.Client
}

// NewRedisClient connects to addr and checks the connection
func NewRedisClient(ctx context.Context, addr, password string) (RedisClient, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return nil, err
	}
	return &redClient{cli: c}, nil
}

func (c *redClient) Get(ctx context.Context, key string) (string, error) {
	return c.cli.Get(ctx, key).Result()
}

func (c *redClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.cli.Set(ctx, key, value, expiration).Err()
}

func (c *redClient) Ping(ctx context.Context) error { return c.cli.Ping(ctx).Err() }

func (c *redClient) Close() error { return c.cli.Close() }

// RedisStore keeps sessions as JSON in Redis. Idle sessions expire after ttl.
type RedisStore struct {
	client RedisClient
	ttl    time.Duration
}

// NewRedisStore creates a store on top of client
func NewRedisStore(client RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) sessionKey(chatID int64) string {
	return fmt.Sprintf("session:%d", chatID)
}

func (r *RedisStore) Load(ctx context.Context, chatID int64) (*domain.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(chatID))
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %d: %w", chatID, err)
	}

	var s domain.Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("decode session %d: %w", chatID, err)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *domain.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %d: %w", s.ChatID, err)
	}
	if err := r.client.Set(ctx, r.sessionKey(s.ChatID), data, r.ttl); err != nil {
		return fmt.Errorf("save session %d: %w", s.ChatID, err)
	}
	return nil
}
