package session

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// TokenStore persists the bearer token of a workspace between requests and
// restarts. Get returns "" when nothing is stored.
type TokenStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, token string) error
	Delete(ctx context.Context, key string) error
}

// ====================================================
// MEMORY
// ====================================================

type memoryEntry struct {
	token   string
	expires time.Time
}

type MemoryTokenStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryTokenStore(ttl time.Duration) *MemoryTokenStore {
	return &MemoryTokenStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

// SetClock replaces the time source.
func (m *MemoryTokenStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

func (m *MemoryTokenStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", nil
	}
	now := m.now()
	if m.ttl > 0 && now.After(e.expires) {
		delete(m.entries, key)
		return "", nil
	}
	e.expires = now.Add(m.ttl)
	m.entries[key] = e
	return e.token, nil
}

func (m *MemoryTokenStore) Set(_ context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{token: token, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryTokenStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// ====================================================
// REDIS
// ====================================================

const redisKeyPrefix = "auth_token:"

type RedisTokenStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisTokenStore(rdb redis.Cmdable, ttl time.Duration) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb, ttl: ttl}
}

// RedisKey hashes the workspace id so raw cookie values never reach Redis.
func RedisKey(key string) string {
	sum := blake2b.Sum256([]byte(key))
	return redisKeyPrefix + hex.EncodeToString(sum[:])
}

func (s *RedisTokenStore) Get(ctx context.Context, key string) (string, error) {
	rk := RedisKey(key)
	token, err := s.rdb.Get(ctx, rk).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get token: %w", err)
	}
	if s.ttl > 0 {
		if err := s.rdb.Expire(ctx, rk, s.ttl).Err(); err != nil {
			return "", fmt.Errorf("redis refresh token: %w", err)
		}
	}
	return token, nil
}

func (s *RedisTokenStore) Set(ctx context.Context, key, token string) error {
	if err := s.rdb.Set(ctx, RedisKey(key), token, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, RedisKey(key)).Err(); err != nil {
		return fmt.Errorf("redis delete token: %w", err)
	}
	return nil
}

// NewRedisClient connects and verifies the server answers.
func NewRedisClient(ctx context.Context, addr, password string, db int, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", addr))
	return rdb, nil
}
