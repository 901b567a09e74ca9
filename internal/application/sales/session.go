// Package sales expone el asistente de venta como una sesión por usuario:
// aplica las operaciones sobre la máquina de estados, refleja cada cambio en el
// borrador, ofrece recuperar el borrador anterior y finaliza la venta.
package sales

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/vendas-api/internal/application/draft"
	"github.com/jhoicas/vendas-api/internal/application/notify"
	"github.com/jhoicas/vendas-api/internal/domain"
	"github.com/jhoicas/vendas-api/internal/domain/entity"
	"github.com/jhoicas/vendas-api/internal/domain/repository"
	"github.com/jhoicas/vendas-api/internal/domain/wizard"
	"github.com/jhoicas/vendas-api/internal/infrastructure/metrics"
)

// Deps dependencias compartidas por todas las sesiones.
type Deps struct {
	Drafts    repository.DraftRepository
	Customers repository.CustomerRepository
	Catalog   repository.CatalogRepository
	Sellers   SellerLookup
	Creator   SaleCreator
	Renderer  ReportRenderer // opcional
	Log       zerolog.Logger
	Metrics   *metrics.Metrics // opcional
	Clock     func() time.Time
	Location  *time.Location

	NotifyDuration time.Duration
	Scheduler      notify.Scheduler
}

func (d Deps) now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now()
}

// View es la foto de la sesión que se devuelve al cliente.
type View struct {
	Step            wizard.Step
	Customer        *entity.CustomerRef
	Products        []entity.SaleLine
	Services        []entity.SaleLine
	Notes           string
	PaymentMethod   string
	Total           decimal.Decimal
	ItemCount       int
	InvalidLines    []entity.SaleLine
	DraftOffer      *draft.Info
	Notification    entity.Notification
	Finalizing      bool
	LastSale        *entity.Sale
	ReportAvailable bool
}

// Session es el asistente de un usuario. Todos los métodos son seguros para uso concurrente.
type Session struct {
	mu       sync.Mutex
	userID   string
	state    *wizard.State
	drafts   *draft.Manager
	notifier *notify.Notifier
	deps     Deps
	log      zerolog.Logger

	offer      *draft.Info
	lastSale   *entity.Sale
	lastSeller *entity.Seller
	lastReport *Document

	flight    singleflight.Group
	inflight  string
	completed map[string]*FinalizeResult
}

// NewSession crea la sesión del usuario y, si hay un borrador recuperable, lo deja ofrecido.
func NewSession(ctx context.Context, userID string, deps Deps) *Session {
	log := deps.Log.With().Str("user_id", userID).Logger()
	store := draft.NewStore[entity.SaleDraft](deps.Drafts, log, deps.Metrics)
	manager := draft.NewManager(store, draft.KeyFor(userID),
		draft.WithClock(deps.Clock), draft.WithLocation(deps.Location))
	notifier := notify.New(
		notify.WithDuration(notifyDuration(deps.NotifyDuration)),
		notify.WithScheduler(deps.Scheduler))
	s := &Session{
		userID:    userID,
		state:     wizard.New(),
		drafts:    manager,
		notifier:  notifier,
		deps:      deps,
		log:       log,
		completed: make(map[string]*FinalizeResult),
	}
	s.offer = s.drafts.GetDraftInfo(ctx)
	return s
}

func notifyDuration(d time.Duration) time.Duration {
	if d == 0 {
		return notify.DefaultDuration
	}
	return d
}

// UserID dueño de la sesión.
func (s *Session) UserID() string { return s.userID }

// Drafts devuelve el gestor del borrador de la sesión.
func (s *Session) Drafts() *draft.Manager { return s.drafts }

// Notifier devuelve el emisor de notificaciones de la sesión.
func (s *Session) Notifier() *notify.Notifier { return s.notifier }

// finalizing indica si hay una finalización en curso.
func (s *Session) finalizing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight != "" || s.state.Step == wizard.StepFinalizing
}

// Close libera el temporizador de notificaciones.
func (s *Session) Close() { s.notifier.Close() }

// View devuelve la foto actual.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	st := s.state.Clone()
	v := View{
		Step:            st.Step,
		Customer:        st.Customer,
		Products:        st.Products,
		Services:        st.Services,
		Notes:           st.Notes,
		PaymentMethod:   st.PaymentMethod,
		Total:           st.Total(),
		ItemCount:       st.ItemCount(),
		InvalidLines:    st.InvalidPriceLines(),
		Notification:    s.notifier.Current(),
		Finalizing:      st.Step == wizard.StepFinalizing,
		LastSale:        s.lastSale,
		ReportAvailable: s.lastReport != nil,
	}
	if s.offer != nil {
		offer := *s.offer
		v.DraftOffer = &offer
	}
	return v
}

// mutate aplica fn al estado y, si tuvo éxito, refleja la foto completa en el borrador.
// Cualquier cambio descarta la oferta de recuperar el borrador anterior.
func (s *Session) mutate(ctx context.Context, fn func(*wizard.State) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.state); err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			s.notifier.Error(ve.Message)
		}
		return s.viewLocked(), err
	}
	s.offer = nil
	// durante y después de finalizar el borrador ya no se toca
	if s.state.Step.Editable() {
		s.drafts.SaveDraft(ctx, s.state.Patch())
	}
	return s.viewLocked(), nil
}

// ── Navegación ───────────────────────────────────────────────────────────────

// Next avanza un paso.
func (s *Session) Next(ctx context.Context) (View, error) {
	return s.mutate(ctx, (*wizard.State).Next)
}

// Previous retrocede un paso.
func (s *Session) Previous(ctx context.Context) (View, error) {
	return s.mutate(ctx, (*wizard.State).Previous)
}

// Reset vuelve al inicio con todo vacío. Olvida la última venta finalizada.
// Desde Finalized no se escribe el borrador: el desactivado queda como registro de la
// última venta hasta la primera edición.
func (s *Session) Reset(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	afterSale := s.state.Step == wizard.StepFinalized
	if err := s.state.Reset(); err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			s.notifier.Error(ve.Message)
		}
		return s.viewLocked(), err
	}
	s.lastSale, s.lastSeller, s.lastReport = nil, nil, nil
	s.offer = nil
	if !afterSale {
		s.drafts.SaveDraft(ctx, s.state.Patch())
	}
	return s.viewLocked(), nil
}

// ── Cliente ──────────────────────────────────────────────────────────────────

// SelectCustomer busca el cliente por ID y lo fija en la venta.
func (s *Session) SelectCustomer(ctx context.Context, customerID string) (View, error) {
	c, err := s.deps.Customers.GetByID(ctx, customerID)
	if err != nil {
		return s.View(), err
	}
	if c == nil {
		return s.View(), domain.ErrNotFound
	}
	ref := c.Ref()
	return s.mutate(ctx, func(st *wizard.State) error { return st.SelectCustomer(*ref) })
}

// ClearCustomer quita el cliente seleccionado.
func (s *Session) ClearCustomer(ctx context.Context) (View, error) {
	return s.mutate(ctx, (*wizard.State).ClearCustomer)
}

// ── Líneas ───────────────────────────────────────────────────────────────────

// AddLine busca el ítem en el catálogo y lo agrega (o incrementa su cantidad).
func (s *Session) AddLine(ctx context.Context, kind, itemID string) (View, error) {
	if !entity.ValidLineKind(kind) {
		return s.View(), domain.NewValidationError(domain.ReasonUnknownLine, "Tipo de item inválido.")
	}
	item, err := s.deps.Catalog.GetItem(ctx, kind, itemID)
	if err != nil {
		return s.View(), err
	}
	if item == nil {
		return s.View(), domain.ErrNotFound
	}
	return s.mutate(ctx, func(st *wizard.State) error { return st.AddLine(*item) })
}

// RemoveLine quita la línea.
func (s *Session) RemoveLine(ctx context.Context, kind, itemID string) (View, error) {
	return s.mutate(ctx, func(st *wizard.State) error { return st.RemoveLine(kind, itemID) })
}

// UpdateLine cambia cantidad y/o zonificación de la línea. Campos nil no se tocan.
func (s *Session) UpdateLine(ctx context.Context, kind, itemID string, quantity *int, zoning *string) (View, error) {
	return s.mutate(ctx, func(st *wizard.State) error {
		if quantity != nil {
			if err := st.SetQuantity(kind, itemID, *quantity); err != nil {
				return err
			}
		}
		if zoning != nil {
			return st.SetZoning(kind, itemID, *zoning)
		}
		return nil
	})
}

// ── Pago y observaciones ─────────────────────────────────────────────────────

// SetPaymentMethod cambia la forma de pago.
func (s *Session) SetPaymentMethod(ctx context.Context, method string) (View, error) {
	return s.mutate(ctx, func(st *wizard.State) error { return st.SetPaymentMethod(method) })
}

// SetNotes reemplaza las observaciones.
func (s *Session) SetNotes(ctx context.Context, notes string) (View, error) {
	return s.mutate(ctx, func(st *wizard.State) error { return st.SetNotes(notes) })
}

// ── Borrador ─────────────────────────────────────────────────────────────────

// DraftOffer devuelve el resumen del borrador ofrecido, o nil si no hay oferta pendiente.
func (s *Session) DraftOffer() *draft.Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.offer == nil {
		return nil
	}
	offer := *s.offer
	return &offer
}

// RestoreDraft carga el borrador guardado en el asistente.
func (s *Session) RestoreDraft(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Step == wizard.StepFinalizing {
		return s.viewLocked(), domain.ErrFinalizeInProgress
	}
	if !s.drafts.HasDraft(ctx) {
		s.offer = nil
		return s.viewLocked(), domain.ErrNotFound
	}
	d := s.drafts.LoadDraft(ctx)
	if d == nil {
		s.offer = nil
		return s.viewLocked(), domain.ErrNotFound
	}
	s.state = wizard.FromDraft(*d)
	s.offer = nil
	s.lastSale, s.lastSeller, s.lastReport = nil, nil, nil
	s.notifier.Info(MsgDraftRestored)
	return s.viewLocked(), nil
}

// DiscardDraft borra el borrador y reinicia el asistente.
func (s *Session) DiscardDraft(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Step == wizard.StepFinalizing {
		return s.viewLocked(), domain.ErrFinalizeInProgress
	}
	s.drafts.ClearDraft(ctx)
	s.state = wizard.New()
	s.offer = nil
	s.lastSale, s.lastSeller, s.lastReport = nil, nil, nil
	s.notifier.Info(MsgDraftDiscarded)
	return s.viewLocked(), nil
}

// ── Comprobante ──────────────────────────────────────────────────────────────

// Report devuelve el comprobante de la última venta finalizada.
func (s *Session) Report() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastSale == nil {
		return nil, domain.ErrNoFinalizedSale
	}
	if s.lastReport == nil {
		return nil, domain.ErrReportNotAvailable
	}
	doc := *s.lastReport
	return &doc, nil
}
