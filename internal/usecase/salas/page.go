package salas

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salas-reservas/internal/apiclient"
	"github.com/BruksfildServices01/salas-reservas/internal/audit"
	"github.com/BruksfildServices01/salas-reservas/internal/dto"
	"github.com/BruksfildServices01/salas-reservas/internal/flash"
	"github.com/BruksfildServices01/salas-reservas/internal/modal"
	"github.com/BruksfildServices01/salas-reservas/internal/models"
	"github.com/BruksfildServices01/salas-reservas/internal/resource"
	"github.com/BruksfildServices01/salas-reservas/internal/usecase"
	"github.com/BruksfildServices01/salas-reservas/internal/validators"
)

const (
	msgCreated    = "Sala criada com sucesso!"
	msgUpdated    = "Sala atualizada com sucesso!"
	msgDeleted    = "Sala excluída com sucesso!"
	msgDuplicate  = "Já existe uma sala com este nome neste local"
	msgSaveFailed = "Erro ao salvar sala"
	msgDeleteKO   = "Erro ao excluir sala"
)

type View struct {
	Salas       []dto.SalaRowDTO `json:"salas"`
	Locais      []models.Local   `json:"locais"`
	LocalID     int64            `json:"local_id,omitempty"`
	Error       string           `json:"error,omitempty"`
	LocaisError string           `json:"locais_error,omitempty"`
	Banner      *flash.Message   `json:"banner,omitempty"`
}

// Page is the rooms administration page.
type Page struct {
	usecase.Deps

	salas  *resource.Hook[models.SalaFilters, models.Sala]
	locais *resource.Hook[models.LocalFilters, models.Local]

	saving   usecase.Guard
	deleting usecase.Guard
}

func New(deps usecase.Deps) *Page {
	deps = deps.WithDefaults()
	return &Page{
		Deps:   deps,
		salas:  resource.NewSalas(deps.API, deps.Logger),
		locais: resource.NewLocais(deps.API, deps.Logger),
	}
}

func (p *Page) admin() error {
	if !p.Actor.IsAdmin() {
		return usecase.ErrForbidden
	}
	return nil
}

// View lists every room, optionally only those of localID, with site names.
func (p *Page) View(ctx context.Context, localID int64) (View, error) {
	if err := p.admin(); err != nil {
		return View{}, err
	}
	locais := p.locais.Load(ctx, models.LocalFilters{})
	salas := p.salas.Load(ctx, models.SalaFilters{})

	items := salas.Items
	if localID != 0 {
		items = make([]models.Sala, 0, len(salas.Items))
		for _, s := range salas.Items {
			if s.LocalID == localID {
				items = append(items, s)
			}
		}
	}

	return View{
		Salas:       dto.NewSalaRows(items, locais.Items),
		Locais:      locais.Items,
		LocalID:     localID,
		Error:       salas.Error,
		LocaisError: locais.Error,
		Banner:      p.Banner.Current(),
	}, nil
}

func (p *Page) find(ctx context.Context, id int64) (models.Sala, error) {
	for _, s := range p.salas.Items() {
		if s.ID == id {
			return s, nil
		}
	}
	s, err := p.API.GetSala(ctx, id)
	if err != nil {
		return models.Sala{}, err
	}
	if s == nil {
		return models.Sala{}, usecase.ErrNotFound
	}
	return *s, nil
}

func (p *Page) OpenForm(ctx context.Context, id int64) error {
	if err := p.admin(); err != nil {
		return err
	}
	if id == 0 {
		p.Modals.OpenSalaForm(nil)
		return nil
	}
	s, err := p.find(ctx, id)
	if err != nil {
		return err
	}
	p.Modals.OpenSalaForm(&s)
	return nil
}

func (p *Page) CloseForm() {
	p.Modals.CloseSalaForm()
}

// payload trims the form; empty resources are sent as null.
func payload(d models.SalaFormData) models.SalaPayload {
	out := models.SalaPayload{
		LocalID:    d.LocalID,
		Nome:       strings.TrimSpace(d.Nome),
		Capacidade: d.Capacidade,
		Ativo:      d.Ativo,
	}
	if r := strings.TrimSpace(d.Recursos); r != "" {
		out.Recursos = &r
	}
	return out
}

func (p *Page) Submit(ctx context.Context, data models.SalaFormData) (*models.Sala, error) {
	if err := p.admin(); err != nil {
		return nil, err
	}

	var saved *models.Sala
	err := p.saving.Run(func() error {
		slice := p.Modals.Snapshot().SalaForm
		if !slice.Open {
			return usecase.ErrDialogClosed
		}
		p.Modals.UpdateSalaDraft(data)

		if err := validators.ValidateSala(data); err != nil {
			p.Modals.SetSalaFormError(&modal.FormError{Kind: modal.KindValidation, Message: err.Error()})
			return err
		}
		p.Modals.SetSalaFormError(nil)

		body := payload(data)
		var err error
		action, banner := audit.ActionCreate, msgCreated
		if slice.Data != nil {
			action, banner = audit.ActionUpdate, msgUpdated
			saved, err = p.API.UpdateSala(ctx, slice.Data.ID, body)
		} else {
			saved, err = p.API.CreateSala(ctx, body)
		}
		if err != nil {
			p.Logger.Info("room not saved", zap.Error(err))
			p.Modals.SetSalaFormError(FormErrorFor(err))
			return err
		}

		var id int64
		if saved != nil {
			id = saved.ID
		} else if slice.Data != nil {
			id = slice.Data.ID
		}
		p.Audit.Dispatch(p.Event(action, audit.EntitySala, id, map[string]any{
			"nome":     body.Nome,
			"local_id": body.LocalID,
		}))

		p.salas.Refetch(ctx)
		p.Modals.CloseSalaForm()
		p.Banner.Success(banner)
		return nil
	})
	return saved, err
}

func (p *Page) OpenDelete(ctx context.Context, id int64) error {
	if err := p.admin(); err != nil {
		return err
	}
	s, err := p.find(ctx, id)
	if err != nil {
		return err
	}
	p.Modals.OpenSalaDelete(s)
	return nil
}

func (p *Page) CloseDelete() {
	p.Modals.CloseSalaDelete()
}

func (p *Page) ConfirmDelete(ctx context.Context) error {
	if err := p.admin(); err != nil {
		return err
	}
	return p.deleting.Run(func() error {
		slice := p.Modals.Snapshot().SalaDelete
		if !slice.Open || slice.Data == nil {
			return usecase.ErrDialogClosed
		}
		id := slice.Data.ID

		if err := p.API.DeleteSala(ctx, id); err != nil {
			p.Logger.Error("room delete failed", zap.Int64("sala_id", id), zap.Error(err))
			p.Banner.Error(apiclient.MessageOr(err, msgDeleteKO))
			return err
		}

		p.Audit.Dispatch(p.Event(audit.ActionDelete, audit.EntitySala, id, map[string]any{"nome": slice.Data.Nome}))
		p.salas.Refetch(ctx)
		p.Modals.CloseSalaDelete()
		p.Banner.Success(msgDeleted)
		return nil
	})
}

func FormErrorFor(err error) *modal.FormError {
	code := apiclient.StatusOf(err)
	if code == http.StatusConflict {
		return &modal.FormError{Code: code, Kind: modal.KindConflict, Message: msgDuplicate}
	}
	return &modal.FormError{Code: code, Kind: modal.KindError, Message: apiclient.MessageOr(err, msgSaveFailed)}
}
