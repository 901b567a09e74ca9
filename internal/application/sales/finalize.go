package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/vendas-api/internal/domain"
	"github.com/jhoicas/vendas-api/internal/domain/entity"
	"github.com/jhoicas/vendas-api/internal/domain/wizard"
	"github.com/jhoicas/vendas-api/internal/infrastructure/metrics"
)

const tracerName = "vendas-api/sales"

// FinalizeResult resultado de una finalización exitosa.
type FinalizeResult struct {
	IdempotencyKey  string
	Sale            *entity.Sale
	ReportAvailable bool
}

// Finalize valida la venta y la envía al colaborador externo.
//
// Cada intento se identifica con idempotencyKey (vacío = se genera uno):
//   - llamadas concurrentes con la misma clave comparten una única ejecución;
//   - una clave ya completada devuelve el resultado guardado sin volver a enviar;
//   - otra clave mientras hay una finalización en curso falla con domain.ErrFinalizeInProgress.
//
// Errores: *domain.ValidationError (nada se envió), *UpstreamError (falló un colaborador).
func (s *Session) Finalize(ctx context.Context, actorID, idempotencyKey string) (*FinalizeResult, error) {
	key := strings.TrimSpace(idempotencyKey)
	if key == "" {
		key = uuid.NewString()
	}

	s.mu.Lock()
	if res, ok := s.completed[key]; ok {
		s.mu.Unlock()
		return res, nil
	}
	if s.inflight != "" && s.inflight != key {
		s.mu.Unlock()
		s.deps.Metrics.IncFinalized(metrics.ResultDuplicate)
		s.notifier.Info(MsgFinalizeInFlight)
		return nil, domain.ErrFinalizeInProgress
	}
	s.inflight = key
	s.mu.Unlock()

	v, err, _ := s.flight.Do(key, func() (any, error) {
		return s.finalize(ctx, actorID, key)
	})
	if err != nil {
		return nil, err
	}
	return v.(*FinalizeResult), nil
}

func (s *Session) finalize(ctx context.Context, actorID, key string) (res *FinalizeResult, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "FinalizeSale")
	span.SetAttributes(attribute.String("sale.idempotency_key", key))
	start := time.Now()
	defer func() {
		s.deps.Metrics.ObserveFinalize(start)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	// ── 1. Validación local (sin red) ────────────────────────────────────────
	s.mu.Lock()
	if done, ok := s.completed[key]; ok {
		s.mu.Unlock()
		return done, nil
	}
	if verr := s.state.ValidateForFinalize(actorID); verr != nil {
		s.releaseLocked(key)
		s.mu.Unlock()
		s.reject(verr)
		return nil, verr
	}
	if verr := s.state.Fire(wizard.EventBeginFinalize); verr != nil {
		s.releaseLocked(key)
		s.mu.Unlock()
		s.reject(verr)
		return nil, verr
	}
	snapshot := s.state.Clone()
	s.mu.Unlock()
	span.SetAttributes(
		attribute.Int("sale.lines", snapshot.ItemCount()),
		attribute.String("sale.total", snapshot.Total().StringFixed(entity.MoneyDecimalPlaces)),
	)

	// ── 2. Vendedor ──────────────────────────────────────────────────────────
	seller, err := s.deps.Sellers.SellerForUser(ctx, actorID)
	if err == nil && (seller == nil || strings.TrimSpace(seller.ID) == "") {
		err = domain.ErrSellerNotFound
	}
	if err != nil {
		return nil, s.fail(key, fmt.Errorf("buscar vendedor: %w", err))
	}

	// ── 3. Creación de la venta ──────────────────────────────────────────────
	payload := BuildPayload(snapshot, seller.ID, s.deps.now())
	created, err := s.deps.Creator.CreateSale(ctx, key, payload)
	if err == nil && created == nil {
		err = errors.New("respuesta vacía del servidor de ventas")
	}
	if err != nil {
		return nil, s.fail(key, fmt.Errorf("crear venta: %w", err))
	}
	sale := completeSale(created, payload)
	span.SetAttributes(attribute.String("sale.id", sale.ID))

	// ── 4. Éxito: el borrador queda inactivo y la venta cerrada ──────────────
	s.mu.Lock()
	s.drafts.DeactivateDraft(ctx)
	if ferr := s.state.Fire(wizard.EventFinalizeOK); ferr != nil {
		s.log.Error().Err(ferr).Msg("finalizar venta: transición a finalizada")
	}
	s.lastSale = sale
	s.lastSeller = seller
	s.lastReport = nil
	customer := snapshot.Customer
	s.mu.Unlock()
	s.notifier.Success(MsgFinalizeSuccess)
	s.deps.Metrics.IncFinalized(metrics.ResultSuccess)
	s.log.Info().Str("sale_id", sale.ID).Str("total", sale.Total.StringFixed(2)).Msg("venta finalizada")

	// ── 5. Comprobante (un fallo no afecta a la venta) ───────────────────────
	doc := s.render(ctx, ReportInput{Sale: sale, Customer: customer, Seller: seller, GeneratedAt: s.deps.now()})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastSale == sale {
		s.lastReport = doc
	}
	res = &FinalizeResult{IdempotencyKey: key, Sale: sale, ReportAvailable: doc != nil}
	s.completed[key] = res
	s.releaseLocked(key)
	return res, nil
}

func (s *Session) render(ctx context.Context, in ReportInput) *Document {
	if s.deps.Renderer == nil {
		return nil
	}
	doc, err := s.deps.Renderer.Render(ctx, in)
	if err == nil && doc == nil {
		err = errors.New("documento vacío")
	}
	if err != nil {
		s.log.Warn().Err(err).Str("sale_id", in.Sale.ID).Msg("comprobante de venta no generado")
		s.notifier.Error(MsgReportFailed)
		return nil
	}
	return doc
}

// reject muestra el mensaje de una validación fallida.
func (s *Session) reject(verr error) {
	s.deps.Metrics.IncFinalized(metrics.ResultValidation)
	if ve, ok := domain.AsValidationError(verr); ok {
		s.notifier.Error(ve.Message)
	}
}

// fail devuelve el asistente a Review y muestra el error del colaborador. No hay reintento.
func (s *Session) fail(key string, err error) error {
	msg := FriendlyMessage(err)
	s.mu.Lock()
	if ferr := s.state.Fire(wizard.EventFinalizeFailed); ferr != nil {
		s.log.Error().Err(ferr).Msg("finalizar venta: volver a revisión")
	}
	s.releaseLocked(key)
	s.mu.Unlock()
	s.notifier.Error(msg)
	s.deps.Metrics.IncFinalized(metrics.ResultUpstream)
	s.log.Warn().Err(err).Msg("finalizar venta: fallo del colaborador")
	return &UpstreamError{Message: msg, Err: err}
}

func (s *Session) releaseLocked(key string) {
	if s.inflight == key {
		s.inflight = ""
	}
}
