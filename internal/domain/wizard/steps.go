// Package wizard modela el asistente de venta en pasos como una máquina de estados pura:
// pasos con nombre, tabla de transiciones con guardas y operaciones sobre las líneas.
// No hace I/O; la sesión de la capa de aplicación lo persiste y lo expone.
package wizard

import "github.com/jhoicas/vendas-api/internal/domain"

// Step es el índice (base cero) del paso actual en la secuencia ordenada.
type Step int

// Secuencia de pasos. Start..Review son navegables con next/previous;
// Finalizing y Finalized solo se alcanzan finalizando la venta.
const (
	StepStart Step = iota
	StepSelectCustomer
	StepSelectProducts
	StepSelectServices
	StepReview
	StepFinalizing
	StepFinalized
)

var stepNames = [...]string{
	StepStart:          "start",
	StepSelectCustomer: "select_customer",
	StepSelectProducts: "select_products",
	StepSelectServices: "select_services",
	StepReview:         "review",
	StepFinalizing:     "finalizing",
	StepFinalized:      "finalized",
}

// String devuelve el nombre estable del paso.
func (s Step) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return stepNames[s]
}

// Valid indica si s pertenece a la secuencia.
func (s Step) Valid() bool {
	return s >= StepStart && s <= StepFinalized
}

// Editable indica si en este paso se pueden modificar cliente, líneas y datos de pago.
func (s Step) Editable() bool {
	return s >= StepStart && s <= StepReview
}

// Event es el nombre de una transición.
type Event string

const (
	EventNext           Event = "next"
	EventPrevious       Event = "previous"
	EventBeginFinalize  Event = "begin_finalize"
	EventFinalizeOK     Event = "finalize_ok"
	EventFinalizeFailed Event = "finalize_failed"
	EventReset          Event = "reset"
)

// guard devuelve un error de validación si la transición no puede ocurrir.
type guard func(s *State) *domain.ValidationError

type transition struct {
	to    Step
	guard guard
}

// transitions es la tabla completa. Un par (paso, evento) ausente significa:
// next/previous quedan en el mismo paso (clamp); cualquier otro evento es inválido.
var transitions = map[Step]map[Event]transition{
	StepStart: {
		EventNext:  {to: StepSelectCustomer},
		EventReset: {to: StepStart},
	},
	StepSelectCustomer: {
		EventNext:     {to: StepSelectProducts, guard: requireCustomer},
		EventPrevious: {to: StepStart},
		EventReset:    {to: StepStart},
	},
	StepSelectProducts: {
		EventNext:     {to: StepSelectServices},
		EventPrevious: {to: StepSelectCustomer},
		EventReset:    {to: StepStart},
	},
	StepSelectServices: {
		EventNext:     {to: StepReview},
		EventPrevious: {to: StepSelectProducts},
		EventReset:    {to: StepStart},
	},
	StepReview: {
		EventPrevious:      {to: StepSelectServices},
		EventBeginFinalize: {to: StepFinalizing},
		EventReset:         {to: StepStart},
	},
	StepFinalizing: {
		EventFinalizeOK:     {to: StepFinalized},
		EventFinalizeFailed: {to: StepReview},
	},
	StepFinalized: {
		EventReset: {to: StepStart},
	},
}

func requireCustomer(s *State) *domain.ValidationError {
	if !s.Customer.HasValidID() {
		return domain.NewValidationError(domain.ReasonNoCustomer, MsgNoCustomer)
	}
	return nil
}
