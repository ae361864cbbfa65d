package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	queueSize    = 100
	writeTimeout = 5 * time.Second
)

// ===============================
// Actions
// ===============================

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionAdd    = "add"
	ActionRemove = "remove"
	ActionLogin  = "login"
	ActionLogout = "logout"
)

const (
	EntityReserva      = "reserva"
	EntityLocal        = "local"
	EntitySala         = "sala"
	EntityParticipante = "participante"
	EntitySession      = "session"
)

type Event struct {
	UserEmail string
	Action    string
	Entity    string
	EntityID  *int64
	Metadata  any
}

// Recorder accepts audit events without blocking the caller.
type Recorder interface {
	Dispatch(ev Event)
}

type nopRecorder struct{}

func (nopRecorder) Dispatch(Event) {}

// Nop discards every event; used when no database is configured.
func Nop() Recorder {
	return nopRecorder{}
}

// ID is a helper for EntityID.
func ID(id int64) *int64 {
	return &id
}

// ===============================
// Dispatcher
// ===============================

type Dispatcher struct {
	logger *Logger
	log    *zap.Logger
	queue  chan Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(logger *Logger, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := d.logger.Log(ctx, ev); err != nil {
			d.log.Error("audit write failed",
				zap.String("action", ev.Action),
				zap.String("entity", ev.Entity),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// Dispatch queues ev; when the queue is full or the dispatcher is closed
// the event is dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("audit dispatcher closed, dropping event",
			zap.String("action", ev.Action),
			zap.String("entity", ev.Entity),
		)
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event",
			zap.String("action", ev.Action),
			zap.String("entity", ev.Entity),
		)
	}
}

// Close stops accepting events and waits for the queue to drain or ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
