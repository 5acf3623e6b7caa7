package prompt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"

	"github.com/osse101/CrateBot_Go/internal/domain"
)

// Store keeps at most one pending prompt per viewer
type Store interface {
	Put(ctx context.Context, p domain.Prompt) error
	// Take removes and returns the viewer's prompt, or ErrNoPendingPrompt
	Take(ctx context.Context, viewerID string) (*domain.Prompt, error)
	Cancel(ctx context.Context, viewerID string) error
}

// MemoryStore keeps prompts in an expirable LRU
type MemoryStore struct {
	mu  sync.Mutex
	lru *expirable.LRU[string, domain.Prompt]
}

// NewMemoryStore creates a store whose prompts expire after ttl
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	if size <= 0 {
		size = DefaultMemorySize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{lru: expirable.NewLRU[string, domain.Prompt](size, nil, ttl)}
}

func (s *MemoryStore) Put(ctx context.Context, p domain.Prompt) error {
	s.lru.Add(p.ViewerID, p)
	return nil
}

func (s *MemoryStore) Take(ctx context.Context, viewerID string) (*domain.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.lru.Get(viewerID)
	if !ok {
		return nil, domain.ErrNoPendingPrompt
	}
	s.lru.Remove(viewerID)
	return &p, nil
}

func (s *MemoryStore) Cancel(ctx context.Context, viewerID string) error {
	s.lru.Remove(viewerID)
	return nil
}

// RedisStore keeps prompts in Redis so they survive an API restart. Menu sessions
// and presence stay in process, so the API still runs as a single instance.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	if client == nil {
		panic("redis client is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, p domain.Prompt) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEncodePrompt, err)
	}
	if err := s.client.Set(ctx, redisKey(p.ViewerID), string(data), s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgStorePrompt, err)
	}
	return nil
}

func (s *RedisStore) Take(ctx context.Context, viewerID string) (*domain.Prompt, error) {
	data, err := s.client.GetDel(ctx, redisKey(viewerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNoPendingPrompt
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgTakePrompt, err)
	}

	var p domain.Prompt
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgDecodePrompt, err)
	}
	return &p, nil
}

func (s *RedisStore) Cancel(ctx context.Context, viewerID string) error {
	return s.client.Del(ctx, redisKey(viewerID)).Err()
}

func redisKey(viewerID string) string {
	return RedisKeyPrefix + viewerID
}
