package reservas

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salas-reservas/internal/apiclient"
	"github.com/BruksfildServices01/salas-reservas/internal/audit"
	"github.com/BruksfildServices01/salas-reservas/internal/domain/reserva"
	"github.com/BruksfildServices01/salas-reservas/internal/dto"
	"github.com/BruksfildServices01/salas-reservas/internal/flash"
	"github.com/BruksfildServices01/salas-reservas/internal/modal"
	"github.com/BruksfildServices01/salas-reservas/internal/models"
	"github.com/BruksfildServices01/salas-reservas/internal/resource"
	"github.com/BruksfildServices01/salas-reservas/internal/timezone"
	"github.com/BruksfildServices01/salas-reservas/internal/usecase"
	"github.com/BruksfildServices01/salas-reservas/internal/validators"
)

const (
	msgCreated  = "Reserva criada com sucesso!"
	msgUpdated  = "Reserva atualizada com sucesso!"
	msgDeleted  = "Reserva deletada com sucesso!"
	msgDeleteKO = "Erro ao deletar reserva"

	msgLocalNotFound = "Local não encontrado"
	msgSalaNotFound  = "Sala não encontrada"

	titleConflict = "Conflito de horário"
	titleError    = "Não foi possível salvar a reserva"
	titleInvalid  = "Verifique os dados da reserva"

	msgBadRequest = "Dados inválidos. Verifique os campos preenchidos."
	msgGone       = "A reserva não existe mais ou foi excluída."
	msgConflict   = "Já existe uma reserva para esta sala neste intervalo de horário."
	msgServer     = "Erro interno do servidor. Tente novamente mais tarde."
	msgSaveFailed = "Erro ao salvar reserva. Tente novamente."
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

// Filters are the controls of the reservations page. Dates are YYYY-MM-DD.
type Filters struct {
	Search      string `form:"search" json:"search"`
	LocalID     int64  `form:"local_id" json:"local_id"`
	SalaID      int64  `form:"sala_id" json:"sala_id"`
	DataInicio  string `form:"data_inicio" json:"data_inicio"`
	DataFim     string `form:"data_fim" json:"data_fim"`
	Responsavel string `form:"responsavel" json:"responsavel"`
}

type View struct {
	Locais      []models.Local       `json:"locais"`
	Salas       []models.Sala        `json:"salas"`
	Reservas    []dto.ReservaCardDTO `json:"reservas"`
	Total       int                  `json:"total"`
	Error       string               `json:"error,omitempty"`
	LocaisError string               `json:"locais_error,omitempty"`
	SalasError  string               `json:"salas_error,omitempty"`
	Banner      *flash.Message       `json:"banner,omitempty"`
	Submitting  bool                 `json:"submitting"`
}

// FormOptions feeds the selects of the reservation form.
type FormOptions struct {
	Locais []models.Local `json:"locais"`
	Salas  []models.Sala  `json:"salas"`
}

// ======================================================
// PAGE
// ======================================================

type Page struct {
	usecase.Deps

	locais      *resource.Hook[models.LocalFilters, models.Local]
	filterSalas *resource.Hook[models.SalaFilters, models.Sala]
	formSalas   *resource.Hook[models.SalaFilters, models.Sala]
	reservas    *resource.Hook[models.ReservaFilters, models.Reserva]

	submitting usecase.Guard
	deleting   usecase.Guard
}

func New(deps usecase.Deps) *Page {
	deps = deps.WithDefaults()
	return &Page{
		Deps:        deps,
		locais:      resource.NewLocais(deps.API, deps.Logger),
		filterSalas: resource.NewSalas(deps.API, deps.Logger),
		formSalas:   resource.NewSalas(deps.API, deps.Logger),
		reservas:    resource.NewReservas(deps.API, deps.Logger),
	}
}

func activeLocais() models.LocalFilters {
	return models.LocalFilters{Ativo: models.Bool(true)}
}

func activeSalas() models.SalaFilters {
	return models.SalaFilters{Ativo: models.Bool(true)}
}

// View loads the page: active sites and rooms for the filters, then the
// reservations matching them.
func (p *Page) View(ctx context.Context, f Filters) (View, error) {
	locais := p.locais.Load(ctx, activeLocais())

	salaFilter := activeSalas()
	salaFilter.LocalID = f.LocalID
	salas := p.filterSalas.Load(ctx, salaFilter)

	rf := models.ReservaFilters{Responsavel: strings.TrimSpace(f.Responsavel)}
	if f.LocalID != 0 {
		rf.Local = localName(locais.Items, f.LocalID)
	}
	if f.SalaID != 0 {
		rf.Sala = salaName(salas.Items, f.SalaID)
	}

	var err error
	if rf.DataInicio, err = filterDate("data_inicio", f.DataInicio); err != nil {
		return View{}, err
	}
	if rf.DataFim, err = filterDate("data_fim", f.DataFim); err != nil {
		return View{}, err
	}

	list := p.reservas.Load(ctx, rf)

	now := p.Now()
	email := p.Actor.Email()
	cards := make([]dto.ReservaCardDTO, 0, len(list.Items))
	for _, r := range Search(list.Items, f.Search) {
		cards = append(cards, dto.NewReservaCard(r, now, email))
	}

	return View{
		Locais:      locais.Items,
		Salas:       salas.Items,
		Reservas:    cards,
		Total:       len(cards),
		Error:       list.Error,
		LocaisError: locais.Error,
		SalasError:  salas.Error,
		Banner:      p.Banner.Current(),
		Submitting:  p.submitting.Busy(),
	}, nil
}

// Refresh refetches the reservation list with the current filters.
func (p *Page) Refresh(ctx context.Context) {
	p.reservas.Refetch(ctx)
}

// FormOptions lists active sites and the active rooms of localID.
func (p *Page) FormOptions(ctx context.Context, localID int64) FormOptions {
	locais := p.locais.Load(ctx, activeLocais())
	all := p.formSalas.Load(ctx, activeSalas())

	salas := []models.Sala{}
	for _, s := range all.Items {
		if localID == 0 || s.LocalID == localID {
			salas = append(salas, s)
		}
	}
	return FormOptions{Locais: locais.Items, Salas: salas}
}

// Search keeps reservations whose room, person in charge or site contains
// term, ignoring case.
func Search(items []models.Reserva, term string) []models.Reserva {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	out := make([]models.Reserva, 0, len(items))
	for _, r := range items {
		if strings.Contains(strings.ToLower(r.SalaDisplay()), term) ||
			strings.Contains(strings.ToLower(r.Responsavel), term) ||
			strings.Contains(strings.ToLower(r.LocalDisplay()), term) {
			out = append(out, r)
		}
	}
	return out
}

// resolveNames maps the form ids to the names the backend stores, reloading
// the cached lists once when an id is unknown.
func (p *Page) resolveNames(ctx context.Context, localID, salaID int64) (local, sala string) {
	opts := p.FormOptions(ctx, localID)
	local, sala = localName(opts.Locais, localID), salaName(opts.Salas, salaID)
	if local != "" && sala != "" {
		return local, sala
	}

	p.locais.Refetch(ctx)
	p.formSalas.Refetch(ctx)
	opts = p.FormOptions(ctx, localID)
	return localName(opts.Locais, localID), salaName(opts.Salas, salaID)
}

func filterDate(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	d, err := time.Parse("2006-01-02", v)
	if err != nil {
		return "", &validators.ValidationError{Field: field, Message: validators.MsgInvalidDate}
	}
	return models.FormatISO(d), nil
}

func localName(items []models.Local, id int64) string {
	for _, l := range items {
		if l.ID == id {
			return l.Nome
		}
	}
	return ""
}

func salaName(items []models.Sala, id int64) string {
	for _, s := range items {
		if s.ID == id {
			return s.Nome
		}
	}
	return ""
}

// ======================================================
// DIALOGS
// ======================================================

func (p *Page) OpenCreate() {
	p.Modals.OpenReservationForm(modal.ModeCreate, nil)
}

func (p *Page) CloseForm() {
	p.Modals.CloseReservationForm()
}

// find looks in the loaded list first, then asks the backend.
func (p *Page) find(ctx context.Context, id int64) (models.Reserva, error) {
	for _, r := range p.reservas.Items() {
		if r.ID == id {
			return r, nil
		}
	}
	r, err := p.API.GetReserva(ctx, id)
	if err != nil {
		return models.Reserva{}, err
	}
	if r == nil {
		return models.Reserva{}, usecase.ErrNotFound
	}
	return *r, nil
}

func (p *Page) owned(ctx context.Context, id int64) (models.Reserva, error) {
	r, err := p.find(ctx, id)
	if err != nil {
		return r, err
	}
	if !reserva.CanEdit(r, p.Actor.Email()) {
		return r, usecase.ErrNotCreator
	}
	return r, nil
}

// OpenEdit opens the form prefilled with reservation id; only its creator
// may do so.
func (p *Page) OpenEdit(ctx context.Context, id int64) error {
	r, err := p.owned(ctx, id)
	if err != nil {
		return err
	}

	form := models.ReservaForm{
		ID:          r.ID,
		LocalID:     r.LocalID,
		SalaID:      r.SalaID,
		DataInicio:  timezone.FormInput(r.DataInicio.Time),
		DataFim:     timezone.FormInput(r.DataFim.Time),
		Responsavel: r.Responsavel,
		Cafe:        r.Cafe,
	}
	if r.Descricao != nil {
		form.Descricao = *r.Descricao
	}
	if r.QuantidadeCafe != nil {
		form.QuantidadeCafe = *r.QuantidadeCafe
	}

	p.Modals.OpenReservationForm(modal.ModeEdit, &form)
	return nil
}

func (p *Page) OpenDelete(ctx context.Context, id int64) error {
	r, err := p.owned(ctx, id)
	if err != nil {
		return err
	}
	p.Modals.OpenReservationDelete(reserva.Resumo(r))
	return nil
}

func (p *Page) CloseDelete() {
	p.Modals.CloseReservationDelete()
}

func (p *Page) OpenParticipants(ctx context.Context, id int64) error {
	if _, err := p.find(ctx, id); err != nil {
		return err
	}
	p.Modals.OpenParticipants(id)
	return nil
}

func (p *Page) CloseParticipants() {
	p.Modals.CloseParticipants()
}

// ======================================================
// SUBMIT
// ======================================================

// Submit validates and saves the open form. On failure the form stays open
// with the submitted values and the error to show.
func (p *Page) Submit(ctx context.Context, form models.ReservaForm) (*models.Reserva, error) {
	var saved *models.Reserva
	err := p.submitting.Run(func() error {
		slice := p.Modals.Snapshot().ReservationForm
		if !slice.Open {
			return usecase.ErrDialogClosed
		}
		editing := slice.Mode == modal.ModeEdit
		if editing && slice.Data != nil {
			form.ID = slice.Data.ID
		}
		p.Modals.UpdateReservationDraft(form)

		start, end, err := validators.ValidateReserva(form)
		if err != nil {
			p.Modals.SetReservationFormError(validationError(err))
			return err
		}
		p.Modals.SetReservationFormError(nil)

		local, sala := p.resolveNames(ctx, form.LocalID, form.SalaID)
		if local == "" {
			verr := &validators.ValidationError{Field: "local_id", Message: msgLocalNotFound}
			p.Modals.SetReservationFormError(validationError(verr))
			return verr
		}
		if sala == "" {
			verr := &validators.ValidationError{Field: "sala_id", Message: msgSalaNotFound}
			p.Modals.SetReservationFormError(validationError(verr))
			return verr
		}

		form.Responsavel = strings.TrimSpace(form.Responsavel)
		payload := models.NewReservaPayload(form, local, sala, start, end)

		action, banner := audit.ActionCreate, msgCreated
		if editing {
			action, banner = audit.ActionUpdate, msgUpdated
			saved, err = p.API.UpdateReserva(ctx, form.ID, payload)
		} else {
			saved, err = p.API.CreateReserva(ctx, payload)
		}
		if err != nil {
			p.Logger.Info("reservation not saved", zap.Bool("edit", editing), zap.Error(err))
			p.Modals.SetReservationFormError(FormErrorFor(err))
			return err
		}

		id := form.ID
		if saved != nil {
			id = saved.ID
		}
		p.Audit.Dispatch(p.Event(action, audit.EntityReserva, id, map[string]any{
			"local":       local,
			"sala":        sala,
			"data_inicio": payload.DataInicio,
			"data_fim":    payload.DataFim,
		}))

		p.reservas.Refetch(ctx)
		p.Modals.CloseReservationForm()
		p.Banner.Success(banner)
		return nil
	})
	return saved, err
}

// ConfirmDelete deletes the reservation shown in the delete dialog. On
// failure the dialog stays open and the error goes to the page banner.
func (p *Page) ConfirmDelete(ctx context.Context) error {
	return p.deleting.Run(func() error {
		slice := p.Modals.Snapshot().ReservationDelete
		if !slice.Open || slice.Data == nil {
			return usecase.ErrDialogClosed
		}
		id := slice.Data.ID

		if err := p.API.DeleteReserva(ctx, id); err != nil {
			p.Logger.Error("reservation delete failed", zap.Int64("reserva_id", id), zap.Error(err))
			p.Banner.Error(apiclient.MessageOr(err, msgDeleteKO))
			return err
		}

		p.Audit.Dispatch(p.Event(audit.ActionDelete, audit.EntityReserva, id, nil))
		p.reservas.Refetch(ctx)
		p.Modals.CloseReservationDelete()
		p.Banner.Success(msgDeleted)
		return nil
	})
}

// ======================================================
// ERROR PRESENTATION
// ======================================================

func validationError(err error) *modal.FormError {
	return &modal.FormError{Kind: modal.KindValidation, Title: titleInvalid, Message: err.Error()}
}

// FormErrorFor turns a save failure into what the form shows.
func FormErrorFor(err error) *modal.FormError {
	code := apiclient.StatusOf(err)
	backendMsg := apiclient.MessageOr(err, "")

	var msg string
	switch code {
	case http.StatusBadRequest:
		msg = backendMsg
		if msg == "" {
			msg = msgBadRequest
		}
	case http.StatusNotFound:
		msg = msgGone
	case http.StatusConflict:
		msg = msgConflict
	case http.StatusInternalServerError:
		msg = msgServer
	default:
		msg = backendMsg
		if msg == "" {
			msg = msgSaveFailed
		}
	}

	fe := &modal.FormError{Code: code, Kind: modal.KindError, Title: titleError, Message: msg}
	if modal.IsConflict(code, backendMsg) {
		fe.Kind = modal.KindConflict
		fe.Title = titleConflict
	}
	return fe
}
