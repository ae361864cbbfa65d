package usuarios

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salas-reservas/internal/apiclient"
	"github.com/BruksfildServices01/salas-reservas/internal/dto"
	"github.com/BruksfildServices01/salas-reservas/internal/usecase"
)

const (
	PageSize = 50

	msgListFailed = "Erro ao carregar usuários"
)

type View struct {
	Usuarios []dto.UsuarioDTO `json:"usuarios"`
	Search   string           `json:"search,omitempty"`
	Page     int              `json:"page"`
	HasMore  bool             `json:"has_more"`
	Error    string           `json:"error,omitempty"`
}

// Page is the registered-users listing.
type Page struct {
	usecase.Deps
}

func New(deps usecase.Deps) *Page {
	return &Page{Deps: deps.WithDefaults()}
}

// View lists page (zero-based) of users matching search. A full page means
// there may be more.
func (p *Page) View(ctx context.Context, search string, page int) (View, error) {
	if !p.Actor.IsAdmin() {
		return View{Usuarios: []dto.UsuarioDTO{}, Error: usecase.ErrForbidden.Message}, usecase.ErrForbidden
	}
	if page < 0 {
		page = 0
	}
	search = strings.TrimSpace(search)

	v := View{Search: search, Page: page, Usuarios: []dto.UsuarioDTO{}}

	users, err := p.API.ListUsuarios(ctx, search, page*PageSize, PageSize)
	if err != nil {
		p.Logger.Warn("users not loaded", zap.Error(err))
		if apiclient.StatusOf(err) == http.StatusForbidden {
			v.Error = usecase.ErrForbidden.Message
			return v, usecase.ErrForbidden
		}
		v.Error = apiclient.MessageOr(err, msgListFailed)
		return v, err
	}

	v.Usuarios = dto.NewUsuarios(users)
	v.HasMore = len(users) == PageSize
	return v, nil
}
