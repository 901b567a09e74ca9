// draftctl inspecciona y administra los borradores del asistente de venta
// directamente en el almacenamiento configurado (DRAFT_STORE).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/vendas-api/internal/infrastructure/kv"
	"github.com/jhoicas/vendas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/vendas-api/pkg/config"
	"github.com/jhoicas/vendas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "draftctl: configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn", Out: os.Stderr})

	open := func(ctx context.Context) (*kv.Backend, func(), error) {
		if cfg.Draft.Store != config.DraftStorePostgres {
			b, err := kv.OpenBackend(ctx, cfg.Draft, cfg.Redis, nil)
			if err != nil {
				return nil, nil, err
			}
			return b, func() { _ = b.Close() }, nil
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		b, err := kv.OpenBackend(ctx, cfg.Draft, cfg.Redis, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return b, pool.Close, nil
	}

	root := newRootCmd(open, log.Component("draftctl"), os.Stdout)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
