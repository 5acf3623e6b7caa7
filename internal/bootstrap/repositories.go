package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CrateBot_Go/internal/database/postgres"
	"github.com/osse101/CrateBot_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Players repository.Player
	Keys    repository.Key
	Crates  repository.Crate
}

// InitializeRepositories creates the PostgreSQL repositories.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Players: postgres.NewPlayerRepository(dbPool),
		Keys:    postgres.NewKeyRepository(dbPool),
		Crates:  postgres.NewCrateRepository(dbPool),
	}
}
