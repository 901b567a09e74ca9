package sales

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/vendas-api/internal/domain"
)

type entry struct {
	session  *Session
	lastUsed time.Time
}

// Registry guarda una sesión del asistente por usuario autenticado.
// Las sesiones sin uso se expulsan con EvictIdle; el borrador guardado sobrevive
// y la próxima sesión del usuario lo vuelve a ofrecer.
type Registry struct {
	mu       sync.Mutex
	deps     Deps
	sessions map[string]*entry
}

// NewRegistry construye el registro de sesiones.
func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps, sessions: make(map[string]*entry)}
}

// Get devuelve la sesión del usuario, creándola si no existe, y la marca como usada.
func (r *Registry) Get(ctx context.Context, userID string) (*Session, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.deps.now()
	if e, ok := r.sessions[userID]; ok {
		e.lastUsed = now
		return e.session, nil
	}
	s := NewSession(ctx, userID, r.deps)
	r.sessions[userID] = &entry{session: s, lastUsed: now}
	r.deps.Metrics.SetActiveSessions(len(r.sessions))
	return s, nil
}

// Len cantidad de sesiones abiertas.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// EvictIdle cierra las sesiones sin uso desde hace más de maxIdle y devuelve cuántas cerró.
// Una sesión con una finalización en curso nunca se expulsa.
func (r *Registry) EvictIdle(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.deps.now().Add(-maxIdle)
	evicted := 0
	for id, e := range r.sessions {
		if !e.lastUsed.Before(cutoff) || e.session.finalizing() {
			continue
		}
		e.session.Close()
		delete(r.sessions, id)
		evicted++
	}
	if evicted > 0 {
		r.deps.Metrics.SetActiveSessions(len(r.sessions))
		r.deps.Log.Debug().Int("evicted", evicted).Int("open", len(r.sessions)).Msg("sesiones inactivas expulsadas")
	}
	return evicted
}

// Run expulsa sesiones inactivas cada interval hasta que ctx se cancele.
func (r *Registry) Run(ctx context.Context, interval, maxIdle time.Duration) {
	if interval <= 0 || maxIdle <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.EvictIdle(maxIdle)
		}
	}
}

// Close cierra todas las sesiones (apagado del servidor).
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.sessions {
		e.session.Close()
		delete(r.sessions, id)
	}
	r.deps.Metrics.SetActiveSessions(0)
}
