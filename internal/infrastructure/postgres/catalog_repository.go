package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vendas-api/internal/domain/entity"
	"github.com/jhoicas/vendas-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo lee productos y servicios de catalog_items.
// Un precio NULL en la tabla llega como precio inválido a la línea.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// GetItem obtiene el ítem por tipo e ID. (nil, nil) si no existe.
func (r *CatalogRepo) GetItem(ctx context.Context, kind, id string) (*entity.CatalogItem, error) {
	query := `
		SELECT id, kind, name, type, description, price
		FROM catalog_items WHERE kind = $1 AND id = $2`
	var it entity.CatalogItem
	err := r.q.QueryRow(ctx, query, kind, id).Scan(&it.ID, &it.Kind, &it.Name, &it.Type, &it.Description, &it.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog item: %w", err)
	}
	return &it, nil
}
