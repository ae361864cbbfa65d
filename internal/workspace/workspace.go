package workspace

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salas-reservas/internal/apiclient"
	"github.com/BruksfildServices01/salas-reservas/internal/audit"
	"github.com/BruksfildServices01/salas-reservas/internal/config"
	"github.com/BruksfildServices01/salas-reservas/internal/flash"
	"github.com/BruksfildServices01/salas-reservas/internal/modal"
	"github.com/BruksfildServices01/salas-reservas/internal/session"
	"github.com/BruksfildServices01/salas-reservas/internal/usecase"
	"github.com/BruksfildServices01/salas-reservas/internal/usecase/locais"
	"github.com/BruksfildServices01/salas-reservas/internal/usecase/participantes"
	"github.com/BruksfildServices01/salas-reservas/internal/usecase/reservas"
	"github.com/BruksfildServices01/salas-reservas/internal/usecase/salas"
	"github.com/BruksfildServices01/salas-reservas/internal/usecase/usuarios"
)

// Workspace is everything one browser session keeps between requests.
type Workspace struct {
	ID string

	Session *session.Store
	Modals  *modal.Store
	Banner  *flash.Banner
	API     *apiclient.Client

	Reservas      *reservas.Page
	Participantes *participantes.Manager
	Locais        *locais.Page
	Salas         *salas.Page
	Usuarios      *usuarios.Page

	mu       sync.Mutex
	lastSeen time.Time
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

func (w *Workspace) LastSeen() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

// DefaultMaxLive bounds the registry when Options.MaxLive is not set.
const DefaultMaxLive = 10000

// Options configure a Registry. API is the unauthenticated base client;
// each workspace binds its own token to a copy of it. When MaxLive
// workspaces are live, creating another evicts the least recently seen.
type Options struct {
	API     *apiclient.Client
	Tokens  session.TokenStore
	Admins  *config.Allowlist
	Audit   audit.Recorder
	Idle    time.Duration
	MaxLive int
	Now     func() time.Time
	Logger  *zap.Logger
}

// Registry owns the live workspaces, keyed by the session cookie.
type Registry struct {
	opts Options

	mu    sync.Mutex
	items map[string]*Workspace
}

func NewRegistry(opts Options) *Registry {
	if opts.Tokens == nil {
		opts.Tokens = session.NewMemoryTokenStore(0)
	}
	if opts.Audit == nil {
		opts.Audit = audit.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxLive <= 0 {
		opts.MaxLive = DefaultMaxLive
	}
	return &Registry{opts: opts, items: make(map[string]*Workspace)}
}

// Get returns the workspace for id, building it (and restoring any
// persisted token) on first use.
func (r *Registry) Get(ctx context.Context, id string) *Workspace {
	now := r.opts.Now()

	r.mu.Lock()
	ws, ok := r.items[id]
	r.mu.Unlock()
	if ok {
		ws.touch(now)
		return ws
	}

	built := r.build(ctx, id)
	built.touch(now)

	r.mu.Lock()
	defer r.mu.Unlock()
	if ws, ok := r.items[id]; ok {
		ws.touch(now)
		return ws
	}
	if len(r.items) >= r.opts.MaxLive {
		r.evictOldestLocked()
	}
	r.items[id] = built
	r.opts.Logger.Debug("workspace created", zap.Int("live", len(r.items)))
	return built
}

func (r *Registry) build(ctx context.Context, id string) *Workspace {
	logger := r.opts.Logger.With(zap.String("workspace", shortID(id)))

	sess := session.New(ctx, r.opts.Tokens, id, r.opts.Admins, r.opts.API, logger)
	ws := &Workspace{
		ID:      id,
		Session: sess,
		Modals:  modal.New(),
		Banner:  flash.New(flash.DefaultTTL, r.opts.Now),
		API:     r.opts.API.WithToken(sess.Token),
	}

	deps := usecase.Deps{
		API:    ws.API,
		Modals: ws.Modals,
		Banner: ws.Banner,
		Audit:  r.opts.Audit,
		Actor:  sess,
		Now:    r.opts.Now,
		Logger: logger,
	}
	ws.Reservas = reservas.New(deps)
	ws.Participantes = participantes.New(deps, ws.Reservas.Refresh)
	ws.Locais = locais.New(deps)
	ws.Salas = salas.New(deps)
	ws.Usuarios = usuarios.New(deps)
	return ws
}

// evictOldestLocked removes the least recently seen workspace. r.mu must be held.
func (r *Registry) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, ws := range r.items {
		if seen := ws.LastSeen(); oldestID == "" || seen.Before(oldest) {
			oldestID, oldest = id, seen
		}
	}
	if oldestID != "" {
		delete(r.items, oldestID)
		r.opts.Logger.Warn("workspace limit reached, evicting least recently seen",
			zap.String("workspace", shortID(oldestID)),
			zap.Int("limit", r.opts.MaxLive),
		)
	}
}

// Drop forgets a workspace. Its persisted token is left alone.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
}

// Sweep evicts workspaces idle for longer than the configured TTL and
// reports how many were removed.
func (r *Registry) Sweep() int {
	if r.opts.Idle <= 0 {
		return 0
	}
	cutoff := r.opts.Now().Add(-r.opts.Idle)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, ws := range r.items {
		if ws.LastSeen().Before(cutoff) {
			delete(r.items, id)
			removed++
		}
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
