package repository

import (
	"context"

	"github.com/jhoicas/vendas-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	// GetByID devuelve (nil, nil) si el cliente no existe.
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Customer, error)
}
