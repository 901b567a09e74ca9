package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resultados posibles de una finalización.
const (
	ResultSuccess    = "success"
	ResultValidation = "validation"
	ResultUpstream   = "upstream"
	ResultDuplicate  = "duplicate"
)

// Metrics agrupa las métricas del asistente de venta.
type Metrics struct {
	DraftStorageFailures *prometheus.CounterVec
	SalesFinalized       *prometheus.CounterVec
	FinalizeDuration     prometheus.Histogram
	ActiveSessions       prometheus.Gauge
}

// NewWithRegisterer registra las métricas en reg (en tests: prometheus.NewRegistry()).
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		DraftStorageFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vendas_draft_storage_failures_total",
			Help: "Fallos de lectura/escritura del borrador que se registraron y se ignoraron",
		}, []string{"op"}),
		SalesFinalized: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vendas_sales_finalized_total",
			Help: "Intentos de finalización de venta por resultado",
		}, []string{"result"}),
		FinalizeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "vendas_finalize_duration_seconds",
			Help:    "Duración de la finalización (vendedor + creación de la venta)",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "vendas_wizard_sessions",
			Help: "Sesiones del asistente abiertas en memoria",
		}),
	}
}

// IncDraftFailure registra un fallo ignorado del almacenamiento del borrador.
// Los métodos aceptan receptor nil para que las métricas sean opcionales.
func (m *Metrics) IncDraftFailure(op string) {
	if m == nil {
		return
	}
	m.DraftStorageFailures.WithLabelValues(op).Inc()
}

// IncFinalized registra el resultado de una finalización.
func (m *Metrics) IncFinalized(result string) {
	if m == nil {
		return
	}
	m.SalesFinalized.WithLabelValues(result).Inc()
}

// ObserveFinalize registra la duración de una finalización. Llamar con time.Now() del inicio.
func (m *Metrics) ObserveFinalize(start time.Time) {
	if m == nil {
		return
	}
	m.FinalizeDuration.Observe(time.Since(start).Seconds())
}

// SetActiveSessions actualiza el número de sesiones abiertas.
func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.Set(float64(n))
}
