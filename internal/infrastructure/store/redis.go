package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultConnectTimeout = 5 * time.Second
	defaultSessionKey     = "booking:session"
)

// Hash fields of the session record.
const (
	fieldToken    = "token"
	fieldUsername = "username"
	fieldRoles    = "roles"
	fieldUserID   = "user_id"
)

// RedisConfig captures the settings for establishing a Redis connection.
type RedisConfig struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// ConnectRedis initialises a Redis client and validates connectivity with a
// ping. A default timeout is applied when none is provided.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// RedisStore keeps the session record in one Redis hash, so Clear is a
// single DEL and can never leave stale fields behind.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, key: defaultSessionKey}
}

func (s *RedisStore) field(ctx context.Context, field string) (string, error) {
	val, err := s.client.HGet(ctx, s.key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session read %s: %w", field, err)
	}
	return val, nil
}

func (s *RedisStore) setField(ctx context.Context, field, value string) error {
	if err := s.client.HSet(ctx, s.key, field, value).Err(); err != nil {
		return fmt.Errorf("session write %s: %w", field, err)
	}
	return nil
}

func (s *RedisStore) Token(ctx context.Context) (string, error) {
	return s.field(ctx, fieldToken)
}

func (s *RedisStore) SetToken(ctx context.Context, token string) error {
	return s.setField(ctx, fieldToken, token)
}

func (s *RedisStore) Username(ctx context.Context) (string, error) {
	return s.field(ctx, fieldUsername)
}

func (s *RedisStore) SetUsername(ctx context.Context, username string) error {
	return s.setField(ctx, fieldUsername, username)
}

func (s *RedisStore) Roles(ctx context.Context) ([]string, error) {
	raw, err := s.field(ctx, fieldRoles)
	if err != nil || raw == "" {
		return nil, err
	}
	var roles []string
	if err := json.Unmarshal([]byte(raw), &roles); err != nil {
		return nil, fmt.Errorf("session roles corrupt: %w", err)
	}
	return roles, nil
}

func (s *RedisStore) SetRoles(ctx context.Context, roles []string) error {
	encoded, err := json.Marshal(roles)
	if err != nil {
		return fmt.Errorf("encode roles: %w", err)
	}
	return s.setField(ctx, fieldRoles, string(encoded))
}

func (s *RedisStore) UserID(ctx context.Context) (int64, bool, error) {
	raw, err := s.field(ctx, fieldUserID)
	if err != nil || raw == "" {
		return 0, false, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("session user id corrupt: %w", err)
	}
	return id, true, nil
}

func (s *RedisStore) SetUserID(ctx context.Context, id int64) error {
	return s.setField(ctx, fieldUserID, strconv.FormatInt(id, 10))
}

// Clear deletes the session hash atomically.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
