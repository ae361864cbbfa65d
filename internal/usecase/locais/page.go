package locais

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salas-reservas/internal/apiclient"
	"github.com/BruksfildServices01/salas-reservas/internal/audit"
	"github.com/BruksfildServices01/salas-reservas/internal/flash"
	"github.com/BruksfildServices01/salas-reservas/internal/modal"
	"github.com/BruksfildServices01/salas-reservas/internal/models"
	"github.com/BruksfildServices01/salas-reservas/internal/resource"
	"github.com/BruksfildServices01/salas-reservas/internal/usecase"
	"github.com/BruksfildServices01/salas-reservas/internal/validators"
)

const (
	msgCreated    = "Local criado com sucesso!"
	msgUpdated    = "Local atualizado com sucesso!"
	msgDeleted    = "Local excluído com sucesso!"
	msgDuplicate  = "Já existe um local com este nome"
	msgSaveFailed = "Erro ao salvar local"
	msgDeleteKO   = "Erro ao excluir local"
)

type View struct {
	Locais []models.Local `json:"locais"`
	Error  string         `json:"error,omitempty"`
	Banner *flash.Message `json:"banner,omitempty"`
}

// Page is the sites administration page.
type Page struct {
	usecase.Deps

	locais *resource.Hook[models.LocalFilters, models.Local]

	saving   usecase.Guard
	deleting usecase.Guard
}

func New(deps usecase.Deps) *Page {
	deps = deps.WithDefaults()
	return &Page{Deps: deps, locais: resource.NewLocais(deps.API, deps.Logger)}
}

func (p *Page) admin() error {
	if !p.Actor.IsAdmin() {
		return usecase.ErrForbidden
	}
	return nil
}

// View lists every site, active or not.
func (p *Page) View(ctx context.Context) (View, error) {
	if err := p.admin(); err != nil {
		return View{}, err
	}
	st := p.locais.Load(ctx, models.LocalFilters{})
	return View{Locais: st.Items, Error: st.Error, Banner: p.Banner.Current()}, nil
}

func (p *Page) find(ctx context.Context, id int64) (models.Local, error) {
	for _, l := range p.locais.Items() {
		if l.ID == id {
			return l, nil
		}
	}
	l, err := p.API.GetLocal(ctx, id)
	if err != nil {
		return models.Local{}, err
	}
	if l == nil {
		return models.Local{}, usecase.ErrNotFound
	}
	return *l, nil
}

// OpenForm opens the form empty (id 0) or with site id loaded.
func (p *Page) OpenForm(ctx context.Context, id int64) error {
	if err := p.admin(); err != nil {
		return err
	}
	if id == 0 {
		p.Modals.OpenLocalForm(nil)
		return nil
	}
	l, err := p.find(ctx, id)
	if err != nil {
		return err
	}
	p.Modals.OpenLocalForm(&l)
	return nil
}

func (p *Page) CloseForm() {
	p.Modals.CloseLocalForm()
}

func (p *Page) Submit(ctx context.Context, data models.LocalFormData) (*models.Local, error) {
	if err := p.admin(); err != nil {
		return nil, err
	}

	var saved *models.Local
	err := p.saving.Run(func() error {
		slice := p.Modals.Snapshot().LocalForm
		if !slice.Open {
			return usecase.ErrDialogClosed
		}
		p.Modals.UpdateLocalDraft(data)

		if err := validators.ValidateLocal(data); err != nil {
			p.Modals.SetLocalFormError(&modal.FormError{Kind: modal.KindValidation, Message: err.Error()})
			return err
		}
		p.Modals.SetLocalFormError(nil)

		data.Nome = strings.TrimSpace(data.Nome)
		data.Descricao = strings.TrimSpace(data.Descricao)

		var err error
		action, banner := audit.ActionCreate, msgCreated
		if slice.Data != nil {
			action, banner = audit.ActionUpdate, msgUpdated
			saved, err = p.API.UpdateLocal(ctx, slice.Data.ID, data)
		} else {
			saved, err = p.API.CreateLocal(ctx, data)
		}
		if err != nil {
			p.Logger.Info("site not saved", zap.Error(err))
			p.Modals.SetLocalFormError(FormErrorFor(err))
			return err
		}

		var id int64
		if saved != nil {
			id = saved.ID
		} else if slice.Data != nil {
			id = slice.Data.ID
		}
		p.Audit.Dispatch(p.Event(action, audit.EntityLocal, id, map[string]any{"nome": data.Nome}))

		p.locais.Refetch(ctx)
		p.Modals.CloseLocalForm()
		p.Banner.Success(banner)
		return nil
	})
	return saved, err
}

func (p *Page) OpenDelete(ctx context.Context, id int64) error {
	if err := p.admin(); err != nil {
		return err
	}
	l, err := p.find(ctx, id)
	if err != nil {
		return err
	}
	p.Modals.OpenLocalDelete(l)
	return nil
}

func (p *Page) CloseDelete() {
	p.Modals.CloseLocalDelete()
}

func (p *Page) ConfirmDelete(ctx context.Context) error {
	if err := p.admin(); err != nil {
		return err
	}
	return p.deleting.Run(func() error {
		slice := p.Modals.Snapshot().LocalDelete
		if !slice.Open || slice.Data == nil {
			return usecase.ErrDialogClosed
		}
		id := slice.Data.ID

		if err := p.API.DeleteLocal(ctx, id); err != nil {
			p.Logger.Error("site delete failed", zap.Int64("local_id", id), zap.Error(err))
			p.Banner.Error(apiclient.MessageOr(err, msgDeleteKO))
			return err
		}

		p.Audit.Dispatch(p.Event(audit.ActionDelete, audit.EntityLocal, id, map[string]any{"nome": slice.Data.Nome}))
		p.locais.Refetch(ctx)
		p.Modals.CloseLocalDelete()
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
