package fakes

import (
	"context"
	"sort"
	"sync"

	"github.com/osse101/CrateBot_Go/internal/domain"
)

// CrateRepository implements repository.Crate in memory
type CrateRepository struct {
	mu     sync.Mutex
	crates map[string]*domain.Crate
	tags   map[string]domain.Tag
	meta   map[string]*domain.SyncMetadata
	nextID int

	// UpsertCalls counts UpsertCrate calls
	UpsertCalls int
}

// NewCrateRepository creates a CrateRepository seeded with crates
func NewCrateRepository(crates ...*domain.Crate) *CrateRepository {
	r := &CrateRepository{
		crates: make(map[string]*domain.Crate),
		tags:   make(map[string]domain.Tag),
		meta:   make(map[string]*domain.SyncMetadata),
	}
	for _, c := range crates {
		r.assignIDs(c)
		r.crates[c.Name] = c
	}
	return r
}

func (r *CrateRepository) assignIDs(c *domain.Crate) {
	for _, p := range c.Prizes {
		if p.ID == 0 {
			r.nextID++
			p.ID = r.nextID
		}
	}
}

func (r *CrateRepository) ListCrates(ctx context.Context) ([]domain.Crate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Crate, 0, len(r.crates))
	for _, c := range r.crates {
		out = append(out, cloneCrate(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CrateRepository) GetCrate(ctx context.Context, name string) (*domain.Crate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.crates[name]
	if !ok {
		return nil, domain.ErrCrateNotFound
	}
	clone := cloneCrate(c)
	return &clone, nil
}

func (r *CrateRepository) IsKeyUsed(ctx context.Context, keyName string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.crates {
		if c.KeyName == keyName {
			return true, nil
		}
	}
	return false, nil
}

func (r *CrateRepository) UpsertCrate(ctx context.Context, crate *domain.Crate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.UpsertCalls++
	r.assignIDs(crate)
	clone := cloneCrate(crate)
	r.crates[crate.Name] = &clone
	return nil
}

func (r *CrateRepository) UpdatePrize(ctx context.Context, crateName string, prize *domain.Prize) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.crates[crateName]
	if !ok {
		return domain.ErrPrizeNotFound
	}
	for i, p := range c.Prizes {
		if p.ID == prize.ID {
			updated := *p
			updated.Skin = prize.Skin
			updated.Chance = prize.Chance
			updated.Rarity = prize.Rarity
			updated.Tags = append([]domain.Tag{}, prize.Tags...)
			c.Prizes[i] = &updated
			return nil
		}
	}
	return domain.ErrPrizeNotFound
}

func (r *CrateRepository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Tag, 0, len(r.tags))
	for _, t := range r.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CrateRepository) GetTag(ctx context.Context, name string) (*domain.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tags[name]
	if !ok {
		return nil, domain.ErrTagNotFound
	}
	return &t, nil
}

func (r *CrateRepository) UpsertTag(ctx context.Context, tag domain.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags[tag.Name] = tag
	return nil
}

func (r *CrateRepository) GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.meta[configName]; ok {
		c := *m
		return &c, nil
	}
	return nil, nil
}

func (r *CrateRepository) UpsertSyncMetadata(ctx context.Context, metadata *domain.SyncMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *metadata
	r.meta[metadata.ConfigName] = &c
	return nil
}

func cloneCrate(c *domain.Crate) domain.Crate {
	clone := *c
	clone.Prizes = make([]*domain.Prize, len(c.Prizes))
	for i, p := range c.Prizes {
		pc := *p
		pc.Tags = append([]domain.Tag{}, p.Tags...)
		clone.Prizes[i] = &pc
	}
	return clone
}
