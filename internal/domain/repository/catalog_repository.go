package repository

import (
	"context"

	"github.com/jhoicas/vendas-api/internal/domain/entity"
)

// CatalogRepository resuelve productos y servicios vendibles.
type CatalogRepository interface {
	// GetItem devuelve (nil, nil) si no existe un ítem de ese tipo con ese ID.
	GetItem(ctx context.Context, kind, id string) (*entity.CatalogItem, error)
}
