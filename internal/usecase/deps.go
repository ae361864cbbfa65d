package usecase

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salas-reservas/internal/apiclient"
	"github.com/BruksfildServices01/salas-reservas/internal/audit"
	"github.com/BruksfildServices01/salas-reservas/internal/flash"
	"github.com/BruksfildServices01/salas-reservas/internal/modal"
)

// Actor is the user driving a workspace.
type Actor interface {
	Email() string
	IsAdmin() bool
}

// Deps is what every page controller of a workspace shares.
type Deps struct {
	API    *apiclient.Client
	Modals *modal.Store
	Banner *flash.Banner
	Audit  audit.Recorder
	Actor  Actor
	Now    func() time.Time
	Logger *zap.Logger
}

// WithDefaults fills the optional fields.
func (d Deps) WithDefaults() Deps {
	if d.Audit == nil {
		d.Audit = audit.Nop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Modals == nil {
		d.Modals = modal.New()
	}
	if d.Banner == nil {
		d.Banner = flash.New(flash.DefaultTTL, d.Now)
	}
	return d
}

// Event builds an audit event attributed to the actor.
func (d Deps) Event(action, entity string, id int64, meta any) audit.Event {
	return audit.Event{
		UserEmail: d.Actor.Email(),
		Action:    action,
		Entity:    entity,
		EntityID:  audit.ID(id),
		Metadata:  meta,
	}
}

// Guard rejects a second call while one is in flight.
type Guard struct {
	busy atomic.Bool
}

func (g *Guard) Run(fn func() error) error {
	if !g.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer g.busy.Store(false)
	return fn()
}

func (g *Guard) Busy() bool {
	return g.busy.Load()
}
