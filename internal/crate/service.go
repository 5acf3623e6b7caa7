package crate

import (
	"context"
	"fmt"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/repository"
)

// Service provides read access to the synced crate catalogue
type Service interface {
	List(ctx context.Context) ([]domain.Crate, error)
	Get(ctx context.Context, name string) (*domain.Crate, error)
	IsKeyUsed(ctx context.Context, keyName string) (bool, error)
}

type service struct {
	repo repository.Crate
}

// NewService creates a new crate service
func NewService(repo repository.Crate) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]domain.Crate, error) {
	crates, err := s.repo.ListCrates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListCratesFailed, err)
	}
	return crates, nil
}

// Get returns the crate or domain.ErrCrateNotFound
func (s *service) Get(ctx context.Context, name string) (*domain.Crate, error) {
	return s.repo.GetCrate(ctx, name)
}

// IsKeyUsed reports whether any crate is opened with the named key
func (s *service) IsKeyUsed(ctx context.Context, keyName string) (bool, error) {
	used, err := s.repo.IsKeyUsed(ctx, keyName)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgCheckKeyUsageFailed, err)
	}
	return used, nil
}
