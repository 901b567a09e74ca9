package kv

import (
	"context"
	"fmt"

	"github.com/jhoicas/vendas-api/internal/domain/repository"
	"github.com/jhoicas/vendas-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/vendas-api/internal/infrastructure/redis"
	"github.com/jhoicas/vendas-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/vendas-api/pkg/config"
)

// Backend es el repositorio de borradores elegido por DRAFT_STORE junto con su cierre.
type Backend struct {
	Name   string
	Repo   repository.DraftRepository
	close  func() error
	health func(ctx context.Context) error
}

// Close libera la conexión del backend (no-op para memoria y postgres, cuyo pool es compartido).
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Health verifica la conexión del backend. Memoria y SQLite siempre responden.
func (b *Backend) Health(ctx context.Context) error {
	if b.health == nil {
		return nil
	}
	return b.health(ctx)
}

// OpenBackend abre el repositorio de borradores configurado.
// pg solo se usa con DRAFT_STORE=postgres.
func OpenBackend(ctx context.Context, cfg config.DraftConfig, rcfg config.RedisConfig, pg postgres.Querier) (*Backend, error) {
	switch cfg.Store {
	case "", config.DraftStoreMemory:
		return &Backend{Name: config.DraftStoreMemory, Repo: NewMemoryDraftRepository()}, nil
	case config.DraftStoreSQLite:
		repo, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Backend{Name: cfg.Store, Repo: repo, close: repo.Close}, nil
	case config.DraftStoreRedis:
		client, err := infraredis.New(ctx, rcfg)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Name:   cfg.Store,
			Repo:   infraredis.NewDraftRepository(client.Client, cfg.TTL),
			close:  client.Close,
			health: client.Health,
		}, nil
	case config.DraftStorePostgres:
		if pg == nil {
			return nil, fmt.Errorf("kv: DRAFT_STORE=postgres sin conexión a PostgreSQL")
		}
		return &Backend{Name: cfg.Store, Repo: postgres.NewDraftRepository(pg)}, nil
	}
	return nil, fmt.Errorf("kv: DRAFT_STORE desconocido %q", cfg.Store)
}
