package fakes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/osse101/CrateBot_Go/internal/domain"
)

// KeyRepository implements repository.Key in memory
type KeyRepository struct {
	mu   sync.Mutex
	keys map[string]*domain.Key

	// Lookups counts GetKey and ListKeys calls
	Lookups int
}

// NewKeyRepository creates a KeyRepository seeded with keys
func NewKeyRepository(keys ...*domain.Key) *KeyRepository {
	r := &KeyRepository{keys: make(map[string]*domain.Key)}
	for _, k := range keys {
		r.keys[k.Name] = k
	}
	return r
}

func (r *KeyRepository) ListKeys(ctx context.Context) ([]domain.Key, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lookups++

	out := make([]domain.Key, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, *k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Slot != out[j].Slot {
			return out[i].Slot < out[j].Slot
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *KeyRepository) GetKey(ctx context.Context, name string) (*domain.Key, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lookups++

	if k, ok := r.keys[name]; ok {
		c := *k
		return &c, nil
	}
	return nil, domain.ErrKeyNotFound
}

func (r *KeyRepository) CountKeys(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys), nil
}

func (r *KeyRepository) InsertKey(ctx context.Context, key *domain.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.keys[key.Name]; ok {
		return domain.ErrKeyAlreadyRegistered
	}
	key.CreatedAt = time.Now()
	c := *key
	r.keys[key.Name] = &c
	return nil
}

func (r *KeyRepository) DeleteKey(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.keys[name]; !ok {
		return domain.ErrKeyNotFound
	}
	delete(r.keys, name)
	return nil
}

func (r *KeyRepository) UpdateKeySlot(ctx context.Context, name string, slot int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k, ok := r.keys[name]
	if !ok {
		return domain.ErrKeyNotFound
	}
	k.Slot = slot
	return nil
}
