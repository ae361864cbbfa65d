package modal

import (
	"strings"
	"sync"

	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindError      ErrorKind = "error"
)

// FormError is what a form dialog shows after a rejected submission.
type FormError struct {
	Code    int       `json:"code,omitempty"`
	Kind    ErrorKind `json:"kind"`
	Title   string    `json:"title,omitempty"`
	Message string    `json:"message"`
}

// IsConflict reports a scheduling conflict: a 409, or a message that names one.
func IsConflict(code int, message string) bool {
	if code == 409 {
		return true
	}
	lower := strings.ToLower(message)
	return strings.Contains(lower, "409") || strings.Contains(lower, "conflito")
}

// ====================================================
// SLICES
// ====================================================

type ReservationForm struct {
	Open  bool                `json:"open"`
	Mode  Mode                `json:"mode,omitempty"`
	Data  *models.ReservaForm `json:"data,omitempty"`
	Error *FormError          `json:"error,omitempty"`
}

type ReservationDelete struct {
	Open bool                  `json:"open"`
	Data *models.ReservaResumo `json:"data,omitempty"`
}

type Participants struct {
	Open      bool  `json:"open"`
	ReservaID int64 `json:"reserva_id,omitempty"`
}

type LocalForm struct {
	Open  bool                  `json:"open"`
	Data  *models.Local         `json:"data,omitempty"`
	Draft *models.LocalFormData `json:"draft,omitempty"`
	Error *FormError            `json:"error,omitempty"`
}

type LocalDelete struct {
	Open bool          `json:"open"`
	Data *models.Local `json:"data,omitempty"`
}

type SalaForm struct {
	Open  bool                 `json:"open"`
	Data  *models.Sala         `json:"data,omitempty"`
	Draft *models.SalaFormData `json:"draft,omitempty"`
	Error *FormError           `json:"error,omitempty"`
}

type SalaDelete struct {
	Open bool         `json:"open"`
	Data *models.Sala `json:"data,omitempty"`
}

// Snapshot is a point-in-time copy of every dialog.
type Snapshot struct {
	ReservationForm   ReservationForm   `json:"reservation_form"`
	ReservationDelete ReservationDelete `json:"reservation_delete"`
	Participants      Participants      `json:"participants"`
	LocalForm         LocalForm         `json:"local_form"`
	LocalDelete       LocalDelete       `json:"local_delete"`
	SalaForm          SalaForm          `json:"sala_form"`
	SalaDelete        SalaDelete        `json:"sala_delete"`
}

// ====================================================
// STORE
// ====================================================

// Store holds the open/closed state of the dialogs of one workspace.
// Payloads are copied in and out, so callers never share memory with it.
type Store struct {
	mu sync.Mutex
	s  Snapshot
}

func New() *Store {
	return &Store{}
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func (m *Store) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.s
	out.ReservationForm.Data = clone(m.s.ReservationForm.Data)
	out.ReservationForm.Error = clone(m.s.ReservationForm.Error)
	out.ReservationDelete.Data = clone(m.s.ReservationDelete.Data)
	out.LocalForm.Data = clone(m.s.LocalForm.Data)
	out.LocalForm.Draft = clone(m.s.LocalForm.Draft)
	out.LocalForm.Error = clone(m.s.LocalForm.Error)
	out.LocalDelete.Data = clone(m.s.LocalDelete.Data)
	out.SalaForm.Data = clone(m.s.SalaForm.Data)
	out.SalaForm.Draft = clone(m.s.SalaForm.Draft)
	out.SalaForm.Error = clone(m.s.SalaForm.Error)
	out.SalaDelete.Data = clone(m.s.SalaDelete.Data)
	return out
}

// Reset closes every dialog at once.
func (m *Store) Reset() {
	m.mu.Lock()
	m.s = Snapshot{}
	m.mu.Unlock()
}

// ----- reservation form -----

func (m *Store) OpenReservationForm(mode Mode, data *models.ReservaForm) {
	m.mu.Lock()
	m.s.ReservationForm = ReservationForm{Open: true, Mode: mode, Data: clone(data)}
	m.mu.Unlock()
}

func (m *Store) CloseReservationForm() {
	m.mu.Lock()
	m.s.ReservationForm = ReservationForm{}
	m.mu.Unlock()
}

// SetReservationFormError records err (nil clears it) and keeps the form open.
func (m *Store) SetReservationFormError(err *FormError) {
	m.mu.Lock()
	m.s.ReservationForm.Error = clone(err)
	m.mu.Unlock()
}

// UpdateReservationDraft replaces the form values, keeping mode and error.
func (m *Store) UpdateReservationDraft(data models.ReservaForm) {
	m.mu.Lock()
	m.s.ReservationForm.Data = &data
	m.mu.Unlock()
}

// ----- reservation delete -----

func (m *Store) OpenReservationDelete(data models.ReservaResumo) {
	m.mu.Lock()
	m.s.ReservationDelete = ReservationDelete{Open: true, Data: &data}
	m.mu.Unlock()
}

func (m *Store) CloseReservationDelete() {
	m.mu.Lock()
	m.s.ReservationDelete = ReservationDelete{}
	m.mu.Unlock()
}

// ----- participants -----

func (m *Store) OpenParticipants(reservaID int64) {
	m.mu.Lock()
	m.s.Participants = Participants{Open: true, ReservaID: reservaID}
	m.mu.Unlock()
}

func (m *Store) CloseParticipants() {
	m.mu.Lock()
	m.s.Participants = Participants{}
	m.mu.Unlock()
}

// ----- local form / delete -----

func (m *Store) OpenLocalForm(data *models.Local) {
	m.mu.Lock()
	m.s.LocalForm = LocalForm{Open: true, Data: clone(data)}
	m.mu.Unlock()
}

func (m *Store) CloseLocalForm() {
	m.mu.Lock()
	m.s.LocalForm = LocalForm{}
	m.mu.Unlock()
}

func (m *Store) SetLocalFormError(err *FormError) {
	m.mu.Lock()
	m.s.LocalForm.Error = clone(err)
	m.mu.Unlock()
}

func (m *Store) UpdateLocalDraft(draft models.LocalFormData) {
	m.mu.Lock()
	m.s.LocalForm.Draft = &draft
	m.mu.Unlock()
}

func (m *Store) OpenLocalDelete(data models.Local) {
	m.mu.Lock()
	m.s.LocalDelete = LocalDelete{Open: true, Data: &data}
	m.mu.Unlock()
}

func (m *Store) CloseLocalDelete() {
	m.mu.Lock()
	m.s.LocalDelete = LocalDelete{}
	m.mu.Unlock()
}

// ----- sala form / delete -----

func (m *Store) OpenSalaForm(data *models.Sala) {
	m.mu.Lock()
	m.s.SalaForm = SalaForm{Open: true, Data: clone(data)}
	m.mu.Unlock()
}

func (m *Store) CloseSalaForm() {
	m.mu.Lock()
	m.s.SalaForm = SalaForm{}
	m.mu.Unlock()
}

func (m *Store) SetSalaFormError(err *FormError) {
	m.mu.Lock()
	m.s.SalaForm.Error = clone(err)
	m.mu.Unlock()
}

func (m *Store) UpdateSalaDraft(draft models.SalaFormData) {
	m.mu.Lock()
	m.s.SalaForm.Draft = &draft
	m.mu.Unlock()
}

func (m *Store) OpenSalaDelete(data models.Sala) {
	m.mu.Lock()
	m.s.SalaDelete = SalaDelete{Open: true, Data: &data}
	m.mu.Unlock()
}

func (m *Store) CloseSalaDelete() {
	m.mu.Lock()
	m.s.SalaDelete = SalaDelete{}
	m.mu.Unlock()
}
