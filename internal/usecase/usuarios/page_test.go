package usuarios

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/BruksfildServices01/salas-reservas/internal/testfixtures"
	"github.com/BruksfildServices01/salas-reservas/internal/usecase"
)

type actor struct{ admin bool }

func (actor) Email() string   { return "admin@example.com" }
func (a actor) IsAdmin() bool { return a.admin }

func newPage(t *testing.T, admin bool) (*testfixtures.Backend, *Page) {
	t.Helper()
	backend := testfixtures.NewBackend(t)
	token := testfixtures.Token("1", "admin@example.com", "Admin")
	return backend, New(usecase.Deps{
		API:   backend.Client().WithToken(func() string { return token }),
		Actor: actor{admin: admin},
	})
}

func TestPagination(t *testing.T) {
	backend, p := newPage(t, true)
	for i := 0; i < 60; i++ {
		backend.SeedUsuario(fmt.Sprintf("User %02d", i), fmt.Sprintf("u%02d@example.com", i))
	}
	ctx := context.Background()

	v, err := p.View(ctx, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Usuarios) != 50 || !v.HasMore {
		t.Fatalf("page 0: %d users, has_more=%v", len(v.Usuarios), v.HasMore)
	}

	v, _ = p.View(ctx, "", 1)
	if len(v.Usuarios) != 10 || v.HasMore {
		t.Fatalf("page 1: %d users, has_more=%v", len(v.Usuarios), v.HasMore)
	}
	call, _ := backend.LastCall(http.MethodGet, "/usuarios")
	q, _ := url.ParseQuery(call.Query)
	if q.Get("skip") != "50" || q.Get("limit") != "50" {
		t.Fatalf("query = %v", q)
	}
	if call.Auth == "" {
		t.Fatal("listing users must be authenticated")
	}
}

func TestForbidden(t *testing.T) {
	backend, p := newPage(t, true)
	backend.Fail(http.MethodGet, "/usuarios", http.StatusForbidden, `{"message":"forbidden"}`)

	v, err := p.View(context.Background(), "", 0)
	if !errors.Is(err, usecase.ErrForbidden) {
		t.Fatalf("err = %v", err)
	}
	if v.Error != "Você não tem permissão para acessar esta página" {
		t.Fatalf("error = %q", v.Error)
	}

	_, p = newPage(t, false)
	if _, err := p.View(context.Background(), "", 0); !errors.Is(err, usecase.ErrForbidden) {
		t.Fatalf("non-admin err = %v", err)
	}
}
