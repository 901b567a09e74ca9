package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrFinalizeInProgress = errors.New("finalización de venta en curso")
	ErrSellerNotFound     = errors.New("vendedor no encontrado para el usuario")
	ErrNoFinalizedSale    = errors.New("no hay venta finalizada en la sesión")
	ErrReportNotAvailable = errors.New("reporte no disponible")
)

// Razones de validación. Son estables: el frontend las usa para decidir qué campo resaltar.
const (
	ReasonUnauthenticated  = "unauthenticated"
	ReasonNoCustomer       = "no_customer"
	ReasonNoItems          = "no_items"
	ReasonInvalidPrice     = "invalid_price"
	ReasonNonPositiveTotal = "non_positive_total"
	ReasonInvalidStep      = "invalid_step"
	ReasonUnknownLine      = "unknown_line"
	ReasonCustomerName     = "customer_name"
	ReasonCustomerTaxID    = "customer_tax_id"
	ReasonCustomerContact  = "customer_contact"
	ReasonInvalidPayment   = "invalid_payment_method"
)

// ValidationError es un fallo esperado de validación: lleva una razón estable y
// el mensaje que se muestra al usuario. Se detecta antes de cualquier llamada de red.
type ValidationError struct {
	Reason  string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is permite errors.Is(err, domain.ErrInvalidInput) sobre cualquier ValidationError.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(reason, message string) *ValidationError {
	return &ValidationError{Reason: reason, Message: message}
}

// AsValidationError extrae el ValidationError de la cadena de err, si existe.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
