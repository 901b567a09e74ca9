package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vendas-api/internal/domain/repository"
)

var _ repository.DraftRepository = (*DraftRepo)(nil)

// DraftRepo guarda los borradores en la tabla sale_drafts (valor JSONB).
type DraftRepo struct {
	q Querier
}

// NewDraftRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDraftRepository(q Querier) *DraftRepo {
	return &DraftRepo{q: q}
}

// Get devuelve el valor guardado bajo key; (nil, false, nil) si no existe.
func (r *DraftRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := r.q.QueryRow(ctx, `SELECT value FROM sale_drafts WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get draft: %w", err)
	}
	return value, true, nil
}

// Set guarda value bajo key, reemplazando el anterior.
func (r *DraftRepo) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO sale_drafts (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("upsert draft: %w", err)
	}
	return nil
}

// Delete borra la clave; no falla si no existe.
func (r *DraftRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sale_drafts WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
