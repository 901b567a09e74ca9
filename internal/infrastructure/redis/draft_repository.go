package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/vendas-api/internal/domain/repository"
)

var _ repository.DraftRepository = (*DraftRepo)(nil)

// DraftRepo guarda cada borrador como un string JSON bajo su clave.
// Con ttl > 0 los borradores abandonados expiran solos; cada escritura renueva el plazo.
type DraftRepo struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewDraftRepository construye el adaptador. ttl = 0 significa sin expiración.
func NewDraftRepository(client redis.UniversalClient, ttl time.Duration) *DraftRepo {
	return &DraftRepo{client: client, ttl: ttl}
}

// Get devuelve el valor guardado bajo key; (nil, false, nil) si no existe.
func (r *DraftRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get draft: %w", err)
	}
	return value, true, nil
}

// Set guarda value bajo key, reemplazando el anterior.
func (r *DraftRepo) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set draft: %w", err)
	}
	return nil
}

// Delete borra la clave; no falla si no existe.
func (r *DraftRepo) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del draft: %w", err)
	}
	return nil
}
