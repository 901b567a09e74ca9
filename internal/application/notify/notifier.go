// Package notify mantiene el mensaje de estado efímero de una sesión del asistente.
package notify

import (
	"sync"
	"time"

	"github.com/jhoicas/vendas-api/internal/domain/entity"
)

// DefaultDuration es el tiempo que un mensaje queda visible si no se configura otro.
const DefaultDuration = 4000 * time.Millisecond

// Timer es el temporizador cancelable devuelto por un Scheduler.
type Timer interface {
	Stop() bool
}

// Scheduler crea temporizadores. En producción es time.AfterFunc; en tests, uno manual.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// RealScheduler usa los temporizadores del runtime.
func RealScheduler() Scheduler { return realScheduler{} }

// Notifier muestra un único mensaje a la vez: cada Show reemplaza al anterior
// y se queda con el temporizador de auto-ocultado. Un temporizador viejo que ya
// disparó no puede ocultar un mensaje más nuevo (se compara la generación).
type Notifier struct {
	mu       sync.Mutex
	current  entity.Notification
	timer    Timer
	gen      uint64
	duration time.Duration
	sched    Scheduler
	closed   bool
}

// Option configura el Notifier.
type Option func(*Notifier)

// WithDuration cambia el tiempo de auto-ocultado. d <= 0 desactiva el auto-ocultado.
func WithDuration(d time.Duration) Option {
	return func(n *Notifier) { n.duration = d }
}

// WithScheduler reemplaza el planificador de temporizadores.
func WithScheduler(s Scheduler) Option {
	return func(n *Notifier) {
		if s != nil {
			n.sched = s
		}
	}
}

// New crea un Notifier sin mensaje visible.
func New(opts ...Option) *Notifier {
	n := &Notifier{duration: DefaultDuration, sched: RealScheduler()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Show hace visible el mensaje de inmediato y reinicia el auto-ocultado.
func (n *Notifier) Show(kind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked()
	n.current = entity.Notification{Visible: true, Kind: kind, Message: message}
	if n.closed || n.duration <= 0 {
		return
	}
	gen := n.gen
	n.timer = n.sched.AfterFunc(n.duration, func() { n.expire(gen) })
}

// Success muestra un mensaje de éxito.
func (n *Notifier) Success(message string) { n.Show(entity.NotificationSuccess, message) }

// Error muestra un mensaje de error.
func (n *Notifier) Error(message string) { n.Show(entity.NotificationError, message) }

// Info muestra un mensaje informativo.
func (n *Notifier) Info(message string) { n.Show(entity.NotificationInfo, message) }

// Hide oculta el mensaje actual y cancela su temporizador.
func (n *Notifier) Hide() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked()
	n.current.Visible = false
}

// Current devuelve una copia del estado actual.
func (n *Notifier) Current() entity.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Close cancela el temporizador pendiente; los Show posteriores ya no programan auto-ocultado.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked()
	n.closed = true
}

// stopLocked cancela el temporizador vigente e invalida cualquier disparo en vuelo.
func (n *Notifier) stopLocked() {
	n.gen++
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.gen {
		return
	}
	n.current.Visible = false
	n.timer = nil
}
