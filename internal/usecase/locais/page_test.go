package locais

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/BruksfildServices01/salas-reservas/internal/modal"
	"github.com/BruksfildServices01/salas-reservas/internal/models"
	"github.com/BruksfildServices01/salas-reservas/internal/testfixtures"
	"github.com/BruksfildServices01/salas-reservas/internal/usecase"
	"github.com/BruksfildServices01/salas-reservas/internal/validators"
)

type actor struct{ admin bool }

func (actor) Email() string   { return "admin@example.com" }
func (a actor) IsAdmin() bool { return a.admin }

func newPage(t *testing.T, admin bool) (*testfixtures.Backend, *Page) {
	t.Helper()
	backend := testfixtures.NewBackend(t)
	return backend, New(usecase.Deps{API: backend.Client(), Actor: actor{admin: admin}})
}

func TestNonAdminIsRejected(t *testing.T) {
	backend, p := newPage(t, false)
	if _, err := p.View(context.Background()); !errors.Is(err, usecase.ErrForbidden) {
		t.Fatalf("View = %v", err)
	}
	if err := p.OpenForm(context.Background(), 0); !errors.Is(err, usecase.ErrForbidden) {
		t.Fatalf("OpenForm = %v", err)
	}
	if len(backend.Calls()) != 0 {
		t.Fatal("backend called for non-admin")
	}
}

func TestViewListsActiveAndInactive(t *testing.T) {
	backend, p := newPage(t, true)
	backend.SeedLocal("Sede", true)
	backend.SeedLocal("Antigo", false)

	v, err := p.View(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Locais) != 2 {
		t.Fatalf("locais = %+v", v.Locais)
	}
	if call, _ := backend.LastCall(http.MethodGet, "/locais"); call.Query != "" {
		t.Fatalf("unexpected filter %q", call.Query)
	}
}

func TestCreateAndUpdate(t *testing.T) {
	backend, p := newPage(t, true)
	ctx := context.Background()
	p.View(ctx)

	p.OpenForm(ctx, 0)
	saved, err := p.Submit(ctx, models.LocalFormData{Nome: "  Filial Norte ", Ativo: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if saved.Nome != "Filial Norte" {
		t.Fatalf("name not trimmed: %q", saved.Nome)
	}
	if b := p.Banner.Current(); b == nil || b.Text != "Local criado com sucesso!" {
		t.Fatalf("banner = %+v", b)
	}
	if p.Modals.Snapshot().LocalForm.Open {
		t.Fatal("form still open")
	}

	if err := p.OpenForm(ctx, saved.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Submit(ctx, models.LocalFormData{Nome: "Filial Sul", Ativo: false}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if backend.CallCount(http.MethodPut, "/locais/"+strconv.FormatInt(saved.ID, 10)) != 1 {
		t.Fatal("PUT not sent")
	}
	if b := p.Banner.Current(); b == nil || b.Text != "Local atualizado com sucesso!" {
		t.Fatalf("banner = %+v", b)
	}
}

func TestSubmitValidationAndConflict(t *testing.T) {
	backend, p := newPage(t, true)
	ctx := context.Background()
	backend.SeedLocal("Sede", true)
	p.OpenForm(ctx, 0)

	_, err := p.Submit(ctx, models.LocalFormData{Nome: strings.Repeat("x", 101)})
	if err == nil || err.Error() != validators.MsgNomeLen {
		t.Fatalf("err = %v", err)
	}
	if backend.CallCount(http.MethodPost, "/locais") != 0 {
		t.Fatal("invalid form was sent")
	}

	_, err = p.Submit(ctx, models.LocalFormData{Nome: "sede"})
	if err == nil {
		t.Fatal("expected conflict")
	}
	slice := p.Modals.Snapshot().LocalForm
	if !slice.Open || slice.Error == nil || slice.Error.Kind != modal.KindConflict {
		t.Fatalf("slice = %+v", slice)
	}
	if slice.Error.Message != "Já existe um local com este nome" {
		t.Fatalf("message = %q", slice.Error.Message)
	}
	if slice.Draft == nil || slice.Draft.Nome != "sede" {
		t.Fatalf("draft = %+v", slice.Draft)
	}
}

func TestDelete(t *testing.T) {
	backend, p := newPage(t, true)
	ctx := context.Background()
	l := backend.SeedLocal("Sede", true)
	p.View(ctx)

	if err := p.OpenDelete(ctx, l.ID); err != nil {
		t.Fatal(err)
	}
	if err := p.ConfirmDelete(ctx); err != nil {
		t.Fatal(err)
	}
	v, _ := p.View(ctx)
	if len(v.Locais) != 0 {
		t.Fatalf("locais = %+v", v.Locais)
	}
	if v.Banner == nil || v.Banner.Text != "Local excluído com sucesso!" {
		t.Fatalf("banner = %+v", v.Banner)
	}
	if p.Modals.Snapshot().LocalDelete.Open {
		t.Fatal("delete dialog still open")
	}
}
