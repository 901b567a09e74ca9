// Package draft implementa el almacenamiento best-effort del borrador de venta
// y el gestor que aplica la política de guardado, desactivación y recuperación.
package draft

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/jhoicas/vendas-api/internal/domain/repository"
	"github.com/jhoicas/vendas-api/internal/infrastructure/metrics"
)

// Operaciones etiquetadas en vendas_draft_storage_failures_total.
const (
	opRead   = "read"
	opDecode = "decode"
	opEncode = "encode"
	opWrite  = "write"
	opDelete = "delete"
)

// Store serializa valores de tipo T en JSON sobre un DraftRepository.
// Nunca devuelve error: los fallos se registran y se ignoran, el borrador no es durable.
type Store[T any] struct {
	repo    repository.DraftRepository
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// NewStore construye el almacén. m puede ser nil.
func NewStore[T any](repo repository.DraftRepository, log zerolog.Logger, m *metrics.Metrics) *Store[T] {
	return &Store[T]{repo: repo, log: log, metrics: m}
}

// Lookup lee la clave. El bool es false si la clave no existe o no se pudo leer/decodificar;
// en ese caso el valor devuelto es initial.
func (s *Store[T]) Lookup(ctx context.Context, key string, initial T) (T, bool) {
	raw, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		s.fail(opRead, key, err)
		return initial, false
	}
	if !ok {
		return initial, false
	}
	v := initial
	if err := json.Unmarshal(raw, &v); err != nil {
		s.fail(opDecode, key, err)
		return initial, false
	}
	return v, true
}

// Read devuelve el valor guardado o initial si no existe o es ilegible.
func (s *Store[T]) Read(ctx context.Context, key string, initial T) T {
	v, _ := s.Lookup(ctx, key, initial)
	return v
}

// Write guarda value bajo key. Los fallos solo se registran.
func (s *Store[T]) Write(ctx context.Context, key string, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.fail(opEncode, key, err)
		return
	}
	if err := s.repo.Set(ctx, key, raw); err != nil {
		s.fail(opWrite, key, err)
	}
}

// Remove borra la clave. Los fallos solo se registran.
func (s *Store[T]) Remove(ctx context.Context, key string) {
	if err := s.repo.Delete(ctx, key); err != nil {
		s.fail(opDelete, key, err)
	}
}

func (s *Store[T]) fail(op, key string, err error) {
	s.log.Warn().Err(err).Str("op", op).Str("key", key).Msg("borrador: fallo de almacenamiento ignorado")
	s.metrics.IncDraftFailure(op)
}
