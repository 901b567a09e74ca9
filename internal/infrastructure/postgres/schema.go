package postgres

import (
	"context"
	"fmt"
)

// schema crea las tablas que usa el servicio. Es idempotente.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS sale_drafts (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		person_type TEXT NOT NULL,
		cpf         TEXT NOT NULL DEFAULT '',
		cnpj        TEXT NOT NULL DEFAULT '',
		phone       TEXT NOT NULL DEFAULT '',
		email       TEXT NOT NULL DEFAULT '',
		notes       TEXT NOT NULL DEFAULT '',
		contacts    JSONB NOT NULL DEFAULT '[]',
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS customers_cpf_uq ON customers (cpf) WHERE cpf <> ''`,
	`CREATE UNIQUE INDEX IF NOT EXISTS customers_cnpj_uq ON customers (cnpj) WHERE cnpj <> ''`,
	`CREATE TABLE IF NOT EXISTS catalog_items (
		id          TEXT NOT NULL,
		kind        TEXT NOT NULL CHECK (kind IN ('product', 'service')),
		name        TEXT NOT NULL,
		type        TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		price       NUMERIC(14, 2),
		PRIMARY KEY (kind, id)
	)`,
}

// Migrate aplica el esquema.
func Migrate(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
