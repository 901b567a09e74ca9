package wizard

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vendas-api/internal/domain"
	"github.com/jhoicas/vendas-api/internal/domain/entity"
)

// Mensajes mostrados al usuario cuando falla una validación.
const (
	MsgUnauthenticated  = "Usuário não autenticado. Faça login novamente."
	MsgNoItems          = "Adicione pelo menos um produto ou serviço à venda."
	MsgNoCustomer       = "Selecione um cliente válido para continuar."
	MsgInvalidPrice     = "Existem itens com preço inválido. Revise os valores antes de finalizar."
	MsgNonPositiveTotal = "O total da venda deve ser maior que zero."
	MsgNotEditable      = "A venda não pode ser alterada nesta etapa."
	MsgNotAtReview      = "Revise a venda antes de finalizar."
)

// State es el estado en memoria del asistente. El único escritor es la sesión que lo contiene.
type State struct {
	Step          Step
	Customer      *entity.CustomerRef
	Products      []entity.SaleLine
	Services      []entity.SaleLine
	Notes         string
	PaymentMethod string
}

// New devuelve un asistente vacío en el paso inicial.
func New() *State {
	return &State{
		Step:          StepStart,
		Products:      []entity.SaleLine{},
		Services:      []entity.SaleLine{},
		PaymentMethod: entity.DefaultPaymentMethod,
	}
}

// ── Transiciones ──────────────────────────────────────────────────────────────

// Fire aplica el evento según la tabla de transiciones.
// next/previous sin transición definida dejan el paso igual (clamp) y no son error.
func (s *State) Fire(ev Event) error {
	t, ok := transitions[s.Step][ev]
	if !ok {
		if ev == EventNext || ev == EventPrevious {
			return nil
		}
		msg := fmt.Sprintf("Ação %q não permitida na etapa %s.", ev, s.Step)
		if ev == EventBeginFinalize {
			msg = MsgNotAtReview
		}
		return domain.NewValidationError(domain.ReasonInvalidStep, msg)
	}
	if t.guard != nil {
		if verr := t.guard(s); verr != nil {
			return verr
		}
	}
	if ev == EventReset {
		*s = *New()
		return nil
	}
	s.Step = t.to
	return nil
}

// Next avanza un paso (bloqueado en Review).
func (s *State) Next() error { return s.Fire(EventNext) }

// Previous retrocede un paso (bloqueado en Start).
func (s *State) Previous() error { return s.Fire(EventPrevious) }

// Reset vuelve a Start con todos los datos vacíos.
func (s *State) Reset() error { return s.Fire(EventReset) }

// ── Datos de la venta ─────────────────────────────────────────────────────────

func (s *State) ensureEditable() error {
	if !s.Step.Editable() {
		return domain.NewValidationError(domain.ReasonInvalidStep, MsgNotEditable)
	}
	return nil
}

// SelectCustomer fija el cliente de la venta.
func (s *State) SelectCustomer(ref entity.CustomerRef) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	s.Customer = &ref
	return nil
}

// ClearCustomer quita el cliente seleccionado.
func (s *State) ClearCustomer() error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	s.Customer = nil
	return nil
}

// SetNotes reemplaza las observaciones.
func (s *State) SetNotes(notes string) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	s.Notes = notes
	return nil
}

// SetPaymentMethod cambia el método de pago.
func (s *State) SetPaymentMethod(method string) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	if !entity.ValidPaymentMethod(method) {
		return domain.NewValidationError(domain.ReasonInvalidPayment, "Forma de pagamento inválida.")
	}
	s.PaymentMethod = method
	return nil
}

func (s *State) linesOf(kind string) (*[]entity.SaleLine, error) {
	switch kind {
	case entity.LineKindProduct:
		return &s.Products, nil
	case entity.LineKindService:
		return &s.Services, nil
	}
	return nil, domain.NewValidationError(domain.ReasonUnknownLine, "Tipo de item inválido.")
}

// AddLine agrega el ítem con cantidad 1 y sin zonificación.
// Si ya hay una línea con el mismo ID, se incrementa su cantidad en vez de duplicarla.
func (s *State) AddLine(item entity.CatalogItem) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	lines, err := s.linesOf(item.Kind)
	if err != nil {
		return err
	}
	for i := range *lines {
		if (*lines)[i].ItemID == item.ID {
			(*lines)[i].Quantity++
			return nil
		}
	}
	*lines = append(*lines, entity.NewSaleLine(item))
	return nil
}

// RemoveLine quita la línea con ese ID (no-op si no existe).
func (s *State) RemoveLine(kind, id string) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	lines, err := s.linesOf(kind)
	if err != nil {
		return err
	}
	kept := make([]entity.SaleLine, 0, len(*lines))
	for _, l := range *lines {
		if l.ItemID != id {
			kept = append(kept, l)
		}
	}
	*lines = kept
	return nil
}

// SetQuantity cambia la cantidad de la línea. Cantidades menores que 1 se ignoran.
func (s *State) SetQuantity(kind, id string, q int) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	lines, err := s.linesOf(kind)
	if err != nil {
		return err
	}
	if q < 1 {
		return nil
	}
	for i := range *lines {
		if (*lines)[i].ItemID == id {
			(*lines)[i].Quantity = q
		}
	}
	return nil
}

// SetZoning reemplaza la nota de zonificación de la línea.
func (s *State) SetZoning(kind, id, text string) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	lines, err := s.linesOf(kind)
	if err != nil {
		return err
	}
	for i := range *lines {
		if (*lines)[i].ItemID == id {
			(*lines)[i].Zoning = text
		}
	}
	return nil
}

// ── Lecturas derivadas (nunca se cachean) ─────────────────────────────────────

// Lines devuelve productos seguidos de servicios.
func (s *State) Lines() []entity.SaleLine {
	out := make([]entity.SaleLine, 0, len(s.Products)+len(s.Services))
	out = append(out, s.Products...)
	return append(out, s.Services...)
}

// ItemCount cantidad de líneas de la venta.
func (s *State) ItemCount() int {
	return len(s.Products) + len(s.Services)
}

// Total = Σ precio × cantidad sobre todas las líneas; precios inválidos cuentan como cero.
func (s *State) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Lines() {
		total = total.Add(l.Subtotal())
	}
	return total
}

// BilledTotal = Σ BilledSubtotal: el total que se envía al crear la venta.
// Puede diferir de Total en centavos cuando hay precios con más de dos decimales.
func (s *State) BilledTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Lines() {
		total = total.Add(l.BilledSubtotal())
	}
	return total
}

// InvalidPriceLines devuelve las líneas cuyo precio no es utilizable.
func (s *State) InvalidPriceLines() []entity.SaleLine {
	var out []entity.SaleLine
	for _, l := range s.Lines() {
		if !l.PriceValid() {
			out = append(out, l)
		}
	}
	return out
}

// ValidateForFinalize verifica las precondiciones de finalización, en orden:
// actor autenticado, al menos una línea, cliente válido, total facturado > 0, precios válidos.
func (s *State) ValidateForFinalize(actorID string) error {
	if strings.TrimSpace(actorID) == "" {
		return domain.NewValidationError(domain.ReasonUnauthenticated, MsgUnauthenticated)
	}
	if s.ItemCount() == 0 {
		return domain.NewValidationError(domain.ReasonNoItems, MsgNoItems)
	}
	if !s.Customer.HasValidID() {
		return domain.NewValidationError(domain.ReasonNoCustomer, MsgNoCustomer)
	}
	if !s.BilledTotal().IsPositive() {
		return domain.NewValidationError(domain.ReasonNonPositiveTotal, MsgNonPositiveTotal)
	}
	if len(s.InvalidPriceLines()) > 0 {
		return domain.NewValidationError(domain.ReasonInvalidPrice, MsgInvalidPrice)
	}
	return nil
}

// ── Conversión con el borrador ────────────────────────────────────────────────

// Clone devuelve una copia independiente del estado.
func (s *State) Clone() *State {
	c := *s
	if s.Customer != nil {
		ref := *s.Customer
		c.Customer = &ref
	}
	c.Products = append([]entity.SaleLine{}, s.Products...)
	c.Services = append([]entity.SaleLine{}, s.Services...)
	return &c
}

// Patch devuelve el parche completo que refleja este estado en el borrador.
func (s *State) Patch() entity.DraftPatch {
	step := int(s.Step)
	notes := s.Notes
	payment := s.PaymentMethod
	p := entity.DraftPatch{
		CurrentStep:   &step,
		Products:      append([]entity.SaleLine{}, s.Products...),
		Services:      append([]entity.SaleLine{}, s.Services...),
		Notes:         &notes,
		PaymentMethod: &payment,
	}
	if s.Customer != nil {
		ref := *s.Customer
		p.SelectedCustomer = &ref
	} else {
		p.ClearCustomer = true
	}
	return p
}

// FromDraft reconstruye el estado desde un borrador guardado.
// Un borrador guardado a mitad de una finalización vuelve a Review.
func FromDraft(d entity.SaleDraft) *State {
	s := New()
	step := Step(d.CurrentStep)
	switch {
	case step < StepStart:
		step = StepStart
	case step > StepReview:
		step = StepReview
	}
	s.Step = step
	if d.SelectedCustomer != nil {
		ref := *d.SelectedCustomer
		s.Customer = &ref
	}
	s.Products = append(s.Products, d.Products...)
	s.Services = append(s.Services, d.Services...)
	s.Notes = d.Notes
	if entity.ValidPaymentMethod(d.PaymentMethod) {
		s.PaymentMethod = d.PaymentMethod
	}
	for i := range s.Products {
		if s.Products[i].Quantity < 1 {
			s.Products[i].Quantity = 1
		}
	}
	for i := range s.Services {
		if s.Services[i].Quantity < 1 {
			s.Services[i].Quantity = 1
		}
	}
	return s
}
