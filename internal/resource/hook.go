package resource

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salas-reservas/internal/apiclient"
	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

// Params identifies a fetch; equal keys mean the same request.
type Params interface {
	Key() string
}

type Fetcher[P Params, T any] func(ctx context.Context, p P) ([]T, error)

type State[T any] struct {
	Items   []T    `json:"items"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Hook caches the last result of a parameterized list call and refetches
// when the parameters change.
type Hook[P Params, T any] struct {
	mu       sync.Mutex
	fetch    Fetcher[P, T]
	fallback string
	logger   *zap.Logger

	params  P
	loaded  bool
	gen     uint64
	items   []T
	loading bool
	errMsg  string
}

func New[P Params, T any](fetch Fetcher[P, T], fallback string, logger *zap.Logger) *Hook[P, T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hook[P, T]{fetch: fetch, fallback: fallback, logger: logger, items: []T{}}
}

// Load fetches when nothing was loaded yet or p differs from the last
// parameters; otherwise it keeps the cached state.
func (h *Hook[P, T]) Load(ctx context.Context, p P) State[T] {
	h.mu.Lock()
	if h.loaded && h.params.Key() == p.Key() {
		st := h.stateLocked()
		h.mu.Unlock()
		return st
	}
	h.mu.Unlock()
	return h.run(ctx, p)
}

// Refetch always fetches with the last parameters.
func (h *Hook[P, T]) Refetch(ctx context.Context) State[T] {
	h.mu.Lock()
	p := h.params
	h.mu.Unlock()
	return h.run(ctx, p)
}

func (h *Hook[P, T]) State() State[T] {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stateLocked()
}

// Items returns the cached items without fetching.
func (h *Hook[P, T]) Items() []T {
	return h.State().Items
}

func (h *Hook[P, T]) run(ctx context.Context, p P) State[T] {
	h.mu.Lock()
	h.gen++
	gen := h.gen
	h.params = p
	h.loaded = true
	h.loading = true
	h.mu.Unlock()

	items, err := h.fetch(ctx, p)

	h.mu.Lock()
	defer h.mu.Unlock()

	// a newer call owns the state
	if gen != h.gen {
		return h.stateLocked()
	}

	h.loading = false
	if err != nil {
		h.items = []T{}
		h.errMsg = apiclient.MessageOr(err, h.fallback)
		h.logger.Warn("list fetch failed", zap.String("params", p.Key()), zap.Error(err))
		return h.stateLocked()
	}

	if items == nil {
		items = []T{}
	}
	h.items = items
	h.errMsg = ""
	return h.stateLocked()
}

func (h *Hook[P, T]) stateLocked() State[T] {
	return State[T]{
		Items:   append([]T{}, h.items...),
		Loading: h.loading,
		Error:   h.errMsg,
	}
}

// ====================================================
// CONSTRUCTORS
// ====================================================

const (
	msgLocaisFailed   = "Erro ao carregar locais"
	msgSalasFailed    = "Erro ao carregar salas"
	msgReservasFailed = "Erro ao carregar reservas"
)

func NewLocais(api *apiclient.Client, logger *zap.Logger) *Hook[models.LocalFilters, models.Local] {
	return New[models.LocalFilters, models.Local](api.ListLocais, msgLocaisFailed, logger)
}

func NewSalas(api *apiclient.Client, logger *zap.Logger) *Hook[models.SalaFilters, models.Sala] {
	return New[models.SalaFilters, models.Sala](api.ListSalas, msgSalasFailed, logger)
}

func NewReservas(api *apiclient.Client, logger *zap.Logger) *Hook[models.ReservaFilters, models.Reserva] {
	return New[models.ReservaFilters, models.Reserva](api.ListReservas, msgReservasFailed, logger)
}
