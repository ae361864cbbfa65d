package participantes

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salas-reservas/internal/apiclient"
	"github.com/BruksfildServices01/salas-reservas/internal/audit"
	"github.com/BruksfildServices01/salas-reservas/internal/dto"
	"github.com/BruksfildServices01/salas-reservas/internal/models"
	"github.com/BruksfildServices01/salas-reservas/internal/usecase"
	"github.com/BruksfildServices01/salas-reservas/internal/validators"
)

const (
	DefaultSearchLimit = 20
	minSearchRunes     = 2

	msgListFailed   = "Erro ao carregar participantes"
	msgAddFailed    = "Erro ao adicionar participante"
	msgRemoveFailed = "Erro ao remover participante"
)

type View struct {
	ReservaID     int64                 `json:"reserva_id"`
	Participantes []dto.ParticipanteDTO `json:"participantes"`
	Error         string                `json:"error,omitempty"`
}

// SearchResult is one user search. Stale results were overtaken by a later
// search and are not kept.
type SearchResult struct {
	Seq   uint64           `json:"seq"`
	Users []models.Usuario `json:"users"`
	Stale bool             `json:"stale,omitempty"`
}

// Manager drives the participants panel of one workspace.
type Manager struct {
	usecase.Deps

	onUpdate func(ctx context.Context)

	mu      sync.Mutex
	current View
	seq     uint64
	results SearchResult

	adding   usecase.Guard
	removing usecase.Guard
}

// New builds the manager; onUpdate runs after every successful mutation so
// the reservations list can refresh.
func New(deps usecase.Deps, onUpdate func(ctx context.Context)) *Manager {
	if onUpdate == nil {
		onUpdate = func(context.Context) {}
	}
	return &Manager{Deps: deps.WithDefaults(), onUpdate: onUpdate}
}

func (m *Manager) List(ctx context.Context, reservaID int64) (View, error) {
	ps, err := m.API.ListParticipantes(ctx, reservaID)

	v := View{ReservaID: reservaID, Participantes: dto.NewParticipantes(ps)}
	if err != nil {
		m.Logger.Warn("participants not loaded", zap.Int64("reserva_id", reservaID), zap.Error(err))
		v.Error = apiclient.MessageOr(err, msgListFailed)
	}

	m.mu.Lock()
	m.current = v
	m.mu.Unlock()
	return v, err
}

// Current returns the last loaded list.
func (m *Manager) Current() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Add registers a participant, either a user or a free-typed name.
func (m *Manager) Add(ctx context.Context, in models.ParticipantePayload) (View, error) {
	var v View
	err := m.adding.Run(func() error {
		payload, err := validators.ValidateParticipante(in)
		if err != nil {
			return err
		}

		p, err := m.API.AddParticipante(ctx, payload)
		if err != nil {
			m.Logger.Info("participant not added", zap.Int64("reserva_id", in.ReservaID), zap.Error(err))
			return err
		}

		var id int64
		if p != nil {
			id = p.ID
		}
		m.Audit.Dispatch(m.Event(audit.ActionAdd, audit.EntityParticipante, id, map[string]any{
			"reserva_id": payload.ReservaID,
		}))

		v, _ = m.List(ctx, payload.ReservaID)
		m.onUpdate(ctx)
		return nil
	})
	return v, err
}

// Remove deletes participant id from reservation reservaID. Without
// confirmation nothing is sent.
func (m *Manager) Remove(ctx context.Context, reservaID, id int64, confirmed bool) (View, error) {
	if !confirmed {
		return m.Current(), usecase.ErrNotConfirmed
	}

	var v View
	err := m.removing.Run(func() error {
		if err := m.API.RemoveParticipante(ctx, id); err != nil {
			m.Logger.Info("participant not removed", zap.Int64("participante_id", id), zap.Error(err))
			return err
		}

		m.Audit.Dispatch(m.Event(audit.ActionRemove, audit.EntityParticipante, id, map[string]any{
			"reserva_id": reservaID,
		}))

		v, _ = m.List(ctx, reservaID)
		m.onUpdate(ctx)
		return nil
	})
	return v, err
}

// SearchUsers looks registered users up by name or email. Terms shorter
// than two characters return nothing without calling the backend.
func (m *Manager) SearchUsers(ctx context.Context, term string, limit int) (SearchResult, error) {
	term = strings.TrimSpace(term)
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	m.mu.Lock()
	m.seq++
	seq := m.seq
	m.mu.Unlock()

	if utf8.RuneCountInString(term) < minSearchRunes {
		res := SearchResult{Seq: seq, Users: []models.Usuario{}}
		m.store(res)
		return res, nil
	}

	users, err := m.API.SearchUsuarios(ctx, term, limit)
	if err != nil {
		m.Logger.Info("user search failed", zap.String("term", term), zap.Error(err))
		return SearchResult{Seq: seq, Users: []models.Usuario{}}, err
	}

	res := SearchResult{Seq: seq, Users: users}
	if !m.store(res) {
		res.Stale = true
	}
	return res, nil
}

// store keeps res unless a later search was issued meanwhile.
func (m *Manager) store(res SearchResult) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if res.Seq != m.seq {
		return false
	}
	m.results = res
	return true
}

// Results returns the latest kept search.
func (m *Manager) Results() SearchResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.results
}

// ErrorMessage is what the panel shows for a failed mutation.
func ErrorMessage(err error, adding bool) string {
	if validators.IsValidation(err) {
		return err.Error()
	}
	if adding {
		return apiclient.MessageOr(err, msgAddFailed)
	}
	return apiclient.MessageOr(err, msgRemoveFailed)
}
