package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vendas-api/internal/application/dto"
	"github.com/jhoicas/vendas-api/internal/application/sales"
)

// HeaderIdempotencyKey identifica un intento de finalización.
const HeaderIdempotencyKey = "Idempotency-Key"

// WizardHandler expone la sesión del asistente de venta del usuario autenticado.
type WizardHandler struct {
	registry *sales.Registry
	log      zerolog.Logger
}

// NewWizardHandler construye el handler.
func NewWizardHandler(registry *sales.Registry, log zerolog.Logger) *WizardHandler {
	return &WizardHandler{registry: registry, log: log}
}

type viewOp func(s *sales.Session, ctx context.Context) (sales.View, error)

// session resuelve la sesión del usuario del token (sin usuario: domain.ErrUnauthorized).
func (h *WizardHandler) session(c *fiber.Ctx) (*sales.Session, error) {
	return h.registry.Get(c.Context(), GetUserID(c))
}

// run ejecuta op y responde con la foto del asistente.
func (h *WizardHandler) run(c *fiber.Ctx, op viewOp) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	v, err := op(s, c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toWizardResponse(v))
}

// Get godoc
// @Summary      Estado del asistente de venta
// @Description  Paso actual, líneas con subtotales, total, líneas con precio inválido,
//
//	oferta de borrador y notificación vigente.
//
// @Tags         wizard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WizardResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sales/wizard [get]
func (h *WizardHandler) Get(c *fiber.Ctx) error {
	return h.run(c, func(s *sales.Session, _ context.Context) (sales.View, error) {
		return s.View(), nil
	})
}

// Next POST /api/sales/wizard/next
func (h *WizardHandler) Next(c *fiber.Ctx) error {
	return h.run(c, (*sales.Session).Next)
}

// Previous POST /api/sales/wizard/previous
func (h *WizardHandler) Previous(c *fiber.Ctx) error {
	return h.run(c, (*sales.Session).Previous)
}

// Reset POST /api/sales/wizard/reset
func (h *WizardHandler) Reset(c *fiber.Ctx) error {
	return h.run(c, (*sales.Session).Reset)
}

// SelectCustomer godoc
// @Summary      Seleccionar cliente
// @Tags         wizard
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectCustomerRequest  true  "customer_id"
// @Success      200  {object}  dto.WizardResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/sales/wizard/customer [put]
func (h *WizardHandler) SelectCustomer(c *fiber.Ctx) error {
	var in dto.SelectCustomerRequest
	if err := c.BodyParser(&in); err != nil || in.CustomerID == "" {
		return invalidBody(c)
	}
	return h.run(c, func(s *sales.Session, ctx context.Context) (sales.View, error) {
		return s.SelectCustomer(ctx, in.CustomerID)
	})
}

// ClearCustomer DELETE /api/sales/wizard/customer
func (h *WizardHandler) ClearCustomer(c *fiber.Ctx) error {
	return h.run(c, (*sales.Session).ClearCustomer)
}

// AddLine godoc
// @Summary      Agregar producto o servicio
// @Description  Una línea repetida incrementa su cantidad.
// @Tags         wizard
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddLineRequest  true  "kind (product|service), item_id"
// @Success      200  {object}  dto.WizardResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/sales/wizard/lines [post]
func (h *WizardHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddLineRequest
	if err := c.BodyParser(&in); err != nil || in.ItemID == "" {
		return invalidBody(c)
	}
	return h.run(c, func(s *sales.Session, ctx context.Context) (sales.View, error) {
		return s.AddLine(ctx, in.Kind, in.ItemID)
	})
}

// RemoveLine DELETE /api/sales/wizard/lines/:kind/:id
func (h *WizardHandler) RemoveLine(c *fiber.Ctx) error {
	kind, id := c.Params("kind"), c.Params("id")
	return h.run(c, func(s *sales.Session, ctx context.Context) (sales.View, error) {
		return s.RemoveLine(ctx, kind, id)
	})
}

// UpdateLine PATCH /api/sales/wizard/lines/:kind/:id
func (h *WizardHandler) UpdateLine(c *fiber.Ctx) error {
	kind, id := c.Params("kind"), c.Params("id")
	var in dto.UpdateLineRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.run(c, func(s *sales.Session, ctx context.Context) (sales.View, error) {
		return s.UpdateLine(ctx, kind, id, in.Quantity, in.Zoning)
	})
}

// SetPayment PUT /api/sales/wizard/payment
func (h *WizardHandler) SetPayment(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.run(c, func(s *sales.Session, ctx context.Context) (sales.View, error) {
		return s.SetPaymentMethod(ctx, in.PaymentMethod)
	})
}

// SetNotes PUT /api/sales/wizard/notes
func (h *WizardHandler) SetNotes(c *fiber.Ctx) error {
	var in dto.NotesRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.run(c, func(s *sales.Session, ctx context.Context) (sales.View, error) {
		return s.SetNotes(ctx, in.Notes)
	})
}

// DraftInfo GET /api/sales/wizard/draft
func (h *WizardHandler) DraftInfo(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	info := s.Drafts().GetDraftInfo(c.Context())
	return c.JSON(dto.DraftInfoResponse{HasDraft: info != nil, Info: info})
}

// RestoreDraft POST /api/sales/wizard/draft/restore
func (h *WizardHandler) RestoreDraft(c *fiber.Ctx) error {
	return h.run(c, (*sales.Session).RestoreDraft)
}

// DiscardDraft POST /api/sales/wizard/draft/discard
func (h *WizardHandler) DiscardDraft(c *fiber.Ctx) error {
	return h.run(c, (*sales.Session).DiscardDraft)
}

// Finalize godoc
// @Summary      Finalizar la venta
// @Description  Valida, resuelve el vendedor, crea la venta en el sistema externo y genera el comprobante.
//
//	Reintentos con el mismo Idempotency-Key devuelven la misma venta.
//
// @Tags         wizard
// @Security     Bearer
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "clave del intento (vacío = se genera)"
// @Success      201  {object}  dto.FinalizeResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/sales/wizard/finalize [post]
func (h *WizardHandler) Finalize(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	res, err := s.Finalize(c.Context(), GetUserID(c), c.Get(HeaderIdempotencyKey))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(HeaderIdempotencyKey, res.IdempotencyKey)
	return c.Status(fiber.StatusCreated).JSON(dto.FinalizeResponse{
		IdempotencyKey:  res.IdempotencyKey,
		Sale:            *toSaleResponse(res.Sale),
		ReportAvailable: res.ReportAvailable,
	})
}

// Report godoc
// @Summary      Comprobante de la última venta
// @Description  Descarga el archivo; con inline=true se abre en el navegador.
// @Tags         wizard
// @Security     Bearer
// @Produce      html
// @Produce      application/pdf
// @Param        inline  query  bool  false  "abrir en una pestaña nueva"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/wizard/report [get]
func (h *WizardHandler) Report(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	doc, err := s.Report()
	if err != nil {
		return writeError(c, h.log, err)
	}
	disposition := "attachment"
	if c.QueryBool("inline") {
		disposition = "inline"
	}
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("%s; filename=%q", disposition, doc.Filename))
	return c.Send(doc.Body)
}

// Notification GET /api/sales/wizard/notification
func (h *WizardHandler) Notification(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(s.Notifier().Current())
}

// HideNotification POST /api/sales/wizard/notification/hide
func (h *WizardHandler) HideNotification(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	s.Notifier().Hide()
	return c.JSON(s.Notifier().Current())
}
