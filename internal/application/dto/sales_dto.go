package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vendas-api/internal/application/draft"
	"github.com/jhoicas/vendas-api/internal/domain/entity"
)

// SelectCustomerRequest body para PUT /api/sales/wizard/customer.
type SelectCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

// AddLineRequest body para POST /api/sales/wizard/lines.
type AddLineRequest struct {
	Kind   string `json:"kind"`
	ItemID string `json:"item_id"`
}

// UpdateLineRequest body para PATCH /api/sales/wizard/lines/:kind/:id. Campos ausentes no cambian.
type UpdateLineRequest struct {
	Quantity *int    `json:"quantity,omitempty"`
	Zoning   *string `json:"zoning,omitempty"`
}

// PaymentRequest body para PUT /api/sales/wizard/payment.
type PaymentRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// NotesRequest body para PUT /api/sales/wizard/notes.
type NotesRequest struct {
	Notes string `json:"notes"`
}

// LineResponse línea del asistente con su subtotal recalculado.
type LineResponse struct {
	ItemID      string              `json:"item_id"`
	Kind        string              `json:"kind"`
	Name        string              `json:"name"`
	Type        string              `json:"type,omitempty"`
	Description string              `json:"description,omitempty"`
	UnitPrice   decimal.NullDecimal `json:"unit_price"`
	PriceValid  bool                `json:"price_valid"`
	Quantity    int                 `json:"quantity"`
	Zoning      string              `json:"zoning"`
	Subtotal    decimal.Decimal     `json:"subtotal"`
}

// LineKey identifica una línea.
type LineKey struct {
	Kind   string `json:"kind"`
	ItemID string `json:"item_id"`
}

// SaleItemResponse línea de una venta finalizada.
type SaleItemResponse struct {
	ItemID    string          `json:"item_id"`
	Kind      string          `json:"kind,omitempty"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Zoning    string          `json:"zoning,omitempty"`
}

// SaleResponse venta confirmada por el servidor.
type SaleResponse struct {
	ID            string             `json:"id"`
	SellerID      string             `json:"seller_id"`
	CustomerID    string             `json:"customer_id"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	Date          string             `json:"date"`
	Notes         string             `json:"notes,omitempty"`
	Items         []SaleItemResponse `json:"items"`
}

// WizardResponse estado completo del asistente para GET /api/sales/wizard y las mutaciones.
type WizardResponse struct {
	Step            int                 `json:"step"`
	StepName        string              `json:"step_name"`
	Customer        *entity.CustomerRef `json:"customer"`
	Products        []LineResponse      `json:"products"`
	Services        []LineResponse      `json:"services"`
	Notes           string              `json:"notes"`
	PaymentMethod   string              `json:"payment_method"`
	Total           decimal.Decimal     `json:"total"`
	ItemCount       int                 `json:"item_count"`
	InvalidLines    []LineKey           `json:"invalid_lines"`
	Finalizing      bool                `json:"finalizing"`
	DraftOffer      *draft.Info         `json:"draft_offer,omitempty"`
	Notification    entity.Notification `json:"notification"`
	LastSale        *SaleResponse       `json:"last_sale,omitempty"`
	ReportAvailable bool                `json:"report_available"`
}

// FinalizeResponse respuesta de POST /api/sales/wizard/finalize.
type FinalizeResponse struct {
	IdempotencyKey  string       `json:"idempotency_key"`
	Sale            SaleResponse `json:"sale"`
	ReportAvailable bool         `json:"report_available"`
}

// DraftInfoResponse respuesta de GET /api/sales/wizard/draft.
type DraftInfoResponse struct {
	HasDraft bool        `json:"has_draft"`
	Info     *draft.Info `json:"info,omitempty"`
}
