package kv

import (
	"context"
	"sync"

	"github.com/jhoicas/vendas-api/internal/domain/repository"
)

// MemoryDraftRepository guarda los borradores en un mapa del proceso. Se pierde al reiniciar.
type MemoryDraftRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ repository.DraftRepository = (*MemoryDraftRepository)(nil)

// NewMemoryDraftRepository crea un repositorio vacío.
func NewMemoryDraftRepository() *MemoryDraftRepository {
	return &MemoryDraftRepository{data: make(map[string][]byte)}
}

// Get devuelve el valor guardado bajo key; (nil, false, nil) si no existe.
func (r *MemoryDraftRepository) Get(_ context.Context, key string) ([]byte, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set guarda value bajo key, reemplazando el anterior.
func (r *MemoryDraftRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete borra la clave; no falla si no existe.
func (r *MemoryDraftRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}
