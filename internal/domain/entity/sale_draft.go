package entity

import "time"

// Métodos de pago aceptados por el asistente.
const (
	PaymentPix          = "pix"
	PaymentCash         = "dinheiro"
	PaymentCreditCard   = "cartao_credito"
	PaymentDebitCard    = "cartao_debito"
	PaymentBankSlip     = "boleto"
	PaymentBankTransfer = "transferencia"
)

// DefaultPaymentMethod se usa mientras el vendedor no elige otro.
const DefaultPaymentMethod = PaymentCash

// ValidPaymentMethod indica si m es un método de pago conocido.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentPix, PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentBankSlip, PaymentBankTransfer:
		return true
	}
	return false
}

// SaleDraft es el estado persistido de una venta en curso (borrador local del asistente).
// Hay un único borrador por vendedor; su clave de almacenamiento es fija.
type SaleDraft struct {
	CurrentStep      int          `json:"current_step"`
	SelectedCustomer *CustomerRef `json:"selected_customer"`
	Products         []SaleLine   `json:"products"`
	Services         []SaleLine   `json:"services"`
	Notes            string       `json:"notes"`
	PaymentMethod    string       `json:"payment_method"`
	LastSaved        time.Time    `json:"last_saved"`
	IsActive         bool         `json:"is_active"`
}

// DefaultSaleDraft devuelve el borrador vacío con los valores por defecto.
func DefaultSaleDraft() SaleDraft {
	return SaleDraft{
		Products:      []SaleLine{},
		Services:      []SaleLine{},
		PaymentMethod: DefaultPaymentMethod,
	}
}

// HasContent indica si el borrador tiene algo que valga la pena recuperar.
func (d *SaleDraft) HasContent() bool {
	return d.SelectedCustomer != nil || len(d.Products) > 0 || len(d.Services) > 0
}

// ItemCount es la cantidad de líneas (productos + servicios) del borrador.
func (d *SaleDraft) ItemCount() int {
	return len(d.Products) + len(d.Services)
}

// DraftPatch es una actualización parcial del borrador: solo los campos no nulos se aplican.
// ClearCustomer fuerza SelectedCustomer a nil (un puntero nulo significa "sin cambio").
type DraftPatch struct {
	CurrentStep      *int
	SelectedCustomer *CustomerRef
	ClearCustomer    bool
	Products         []SaleLine
	Services         []SaleLine
	Notes            *string
	PaymentMethod    *string
}

// Apply devuelve una copia de d con el parche aplicado.
func (p DraftPatch) Apply(d SaleDraft) SaleDraft {
	if p.CurrentStep != nil {
		d.CurrentStep = *p.CurrentStep
	}
	if p.ClearCustomer {
		d.SelectedCustomer = nil
	} else if p.SelectedCustomer != nil {
		c := *p.SelectedCustomer
		d.SelectedCustomer = &c
	}
	if p.Products != nil {
		d.Products = append([]SaleLine{}, p.Products...)
	}
	if p.Services != nil {
		d.Services = append([]SaleLine{}, p.Services...)
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	if p.PaymentMethod != nil {
		d.PaymentMethod = *p.PaymentMethod
	}
	return d
}
