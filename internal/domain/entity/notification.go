package entity

// Tipos de notificación.
const (
	NotificationSuccess = "success"
	NotificationError   = "error"
	NotificationInfo    = "info"
)

// Notification es un mensaje de estado efímero. No se persiste.
type Notification struct {
	Visible bool   `json:"visible"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
