package draft

import (
	"context"
	"time"

	"github.com/jhoicas/vendas-api/internal/domain/entity"
	"github.com/jhoicas/vendas-api/internal/domain/wizard"
)

// KeyPrefix es la clave fija del borrador; se agrega el ID del usuario autenticado.
const KeyPrefix = "venda_rascunho"

// LastSavedLayout es el formato dd/mm/aaaa hh:mm de la fecha del borrador.
const LastSavedLayout = "02/01/2006 15:04"

// KeyFor devuelve la clave de almacenamiento del borrador del usuario.
func KeyFor(userID string) string {
	return KeyPrefix + ":" + userID
}

// Info es el resumen del borrador que se ofrece para recuperar.
type Info struct {
	Step               int       `json:"step"`
	StepName           string    `json:"step_name"`
	CustomerName       string    `json:"customer_name,omitempty"`
	TotalItemCount     int       `json:"total_item_count"`
	LastSaved          time.Time `json:"last_saved"`
	LastSavedFormatted string    `json:"last_saved_formatted"`
	RelativeAge        string    `json:"relative_age"`
}

// Manager aplica la política del borrador sobre una única clave.
type Manager struct {
	store *Store[entity.SaleDraft]
	key   string
	now   func() time.Time
	loc   *time.Location
}

// Option configura el Manager.
type Option func(*Manager)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLocation fija la zona horaria usada para formatear la fecha del borrador.
func WithLocation(loc *time.Location) Option {
	return func(m *Manager) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// NewManager construye el gestor del borrador guardado bajo key.
func NewManager(store *Store[entity.SaleDraft], key string, opts ...Option) *Manager {
	m := &Manager{store: store, key: key, now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Key devuelve la clave de almacenamiento.
func (m *Manager) Key() string { return m.key }

func (m *Manager) lookup(ctx context.Context) (entity.SaleDraft, bool) {
	return m.store.Lookup(ctx, m.key, entity.DefaultSaleDraft())
}

// SaveDraft fusiona el parche con el borrador anterior (y los valores por defecto),
// marca la fecha de guardado y lo deja activo. Gana la última escritura.
func (m *Manager) SaveDraft(ctx context.Context, patch entity.DraftPatch) entity.SaleDraft {
	prev, _ := m.lookup(ctx)
	d := patch.Apply(prev)
	d.LastSaved = m.now()
	d.IsActive = true
	m.store.Write(ctx, m.key, d)
	return d
}

// ClearDraft elimina el borrador.
func (m *Manager) ClearDraft(ctx context.Context) {
	m.store.Remove(ctx, m.key)
}

// HasDraft indica si hay un borrador activo con algo que recuperar.
func (m *Manager) HasDraft(ctx context.Context) bool {
	d, ok := m.lookup(ctx)
	return ok && d.IsActive && d.HasContent()
}

// GetDraftInfo devuelve el resumen del borrador, o nil si HasDraft es false.
func (m *Manager) GetDraftInfo(ctx context.Context) *Info {
	d, ok := m.lookup(ctx)
	if !ok || !d.IsActive || !d.HasContent() {
		return nil
	}
	info := &Info{
		Step:               d.CurrentStep,
		StepName:           wizard.Step(d.CurrentStep).String(),
		TotalItemCount:     d.ItemCount(),
		LastSaved:          d.LastSaved,
		LastSavedFormatted: d.LastSaved.In(m.loc).Format(LastSavedLayout),
		RelativeAge:        FormatRelativeAge(d.LastSaved, m.now()),
	}
	if d.SelectedCustomer != nil {
		info.CustomerName = d.SelectedCustomer.Name
	}
	return info
}

// DeactivateDraft marca el borrador como inactivo sin tocar ningún otro campo (ni LastSaved).
// Sin borrador guardado no hace nada.
func (m *Manager) DeactivateDraft(ctx context.Context) {
	d, ok := m.lookup(ctx)
	if !ok {
		return
	}
	d.IsActive = false
	m.store.Write(ctx, m.key, d)
}

// LoadDraft devuelve el borrador guardado tal cual, o nil si no hay.
func (m *Manager) LoadDraft(ctx context.Context) *entity.SaleDraft {
	d, ok := m.lookup(ctx)
	if !ok {
		return nil
	}
	return &d
}
