package dto

// ErrorResponse cuerpo de error HTTP.
// Reason solo viaja en errores de validación: identifica el campo o regla que falló.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

