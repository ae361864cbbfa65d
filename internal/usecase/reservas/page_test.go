package reservas

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/BruksfildServices01/salas-reservas/internal/apiclient"
	"github.com/BruksfildServices01/salas-reservas/internal/flash"
	"github.com/BruksfildServices01/salas-reservas/internal/modal"
	"github.com/BruksfildServices01/salas-reservas/internal/models"
	"github.com/BruksfildServices01/salas-reservas/internal/testfixtures"
	"github.com/BruksfildServices01/salas-reservas/internal/usecase"
	"github.com/BruksfildServices01/salas-reservas/internal/validators"
)

type actor struct {
	email string
	admin bool
}

func (a actor) Email() string { return a.email }
func (a actor) IsAdmin() bool { return a.admin }

type fixture struct {
	backend *testfixtures.Backend
	clock   *testfixtures.Clock
	page    *Page
	local   models.Local
	sala    models.Sala
	salaB   models.Sala
}

const me = "ana@example.com"

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := testfixtures.NewBackend(t)
	clock := testfixtures.NewClock(time.Time{})
	token := testfixtures.Token("1", me, "Ana")

	f := &fixture{backend: backend, clock: clock}
	f.local = backend.SeedLocal("Sede", true)
	f.sala = backend.SeedSala(f.local.ID, "Sala A", true)
	f.salaB = backend.SeedSala(f.local.ID, "Sala B", true)

	f.page = New(usecase.Deps{
		API:    backend.Client().WithToken(func() string { return token }),
		Modals: modal.New(),
		Banner: flash.New(flash.DefaultTTL, clock.Now),
		Actor:  actor{email: me},
		Now:    clock.Now,
	})
	return f
}

// form builds a valid form for room s; hours are America/Sao_Paulo.
func (f *fixture) form(s models.Sala, from, to string) models.ReservaForm {
	return models.ReservaForm{
		LocalID:     f.local.ID,
		SalaID:      s.ID,
		DataInicio:  "2025-01-20T" + from,
		DataFim:     "2025-01-20T" + to,
		Responsavel: "Ana",
	}
}

func TestViewMapsFiltersAndSearches(t *testing.T) {
	f := newFixture(t)
	ref := testfixtures.ReferenceTime()
	f.backend.SeedReserva(testfixtures.Reserva(f.local, f.sala, ref.Add(30*time.Minute), time.Hour, "Ana", me))
	f.backend.SeedReserva(testfixtures.Reserva(f.local, f.sala, ref.Add(3*time.Hour), time.Hour, "Bruno", "bruno@example.com"))
	f.backend.SeedReserva(testfixtures.Reserva(f.local, f.salaB, ref.Add(4*time.Hour), time.Hour, "Carla", me))

	v, err := f.page.View(context.Background(), Filters{
		LocalID:    f.local.ID,
		SalaID:     f.sala.ID,
		DataInicio: "2025-01-15",
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}

	call, _ := f.backend.LastCall(http.MethodGet, "/reservas")
	q, _ := url.ParseQuery(call.Query)
	if q.Get("local") != "Sede" || q.Get("sala") != "Sala A" {
		t.Errorf("server filters = %v", q)
	}
	if q.Get("data_inicio") != "2025-01-15T00:00:00.000Z" {
		t.Errorf("data_inicio = %q", q.Get("data_inicio"))
	}

	if v.Total != 2 {
		t.Fatalf("total = %d", v.Total)
	}
	first := v.Reservas[0]
	if first.Status != "Em Breve" || !first.CanEdit {
		t.Errorf("first card = %+v", first)
	}
	if v.Reservas[1].CanEdit {
		t.Error("someone else's reservation must not be editable")
	}

	v, _ = f.page.View(context.Background(), Filters{Search: "BRU"})
	if v.Total != 1 || v.Reservas[0].Responsavel != "Bruno" {
		t.Fatalf("search result = %+v", v.Reservas)
	}
}

func TestViewRejectsBadDate(t *testing.T) {
	f := newFixture(t)
	_, err := f.page.View(context.Background(), Filters{DataFim: "15/01/2025"})
	if !validators.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestViewLoadsListsOncePerFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.page.View(ctx, Filters{})
	f.page.View(ctx, Filters{Search: "x"})

	if n := f.backend.CallCount(http.MethodGet, "/reservas"); n != 1 {
		t.Fatalf("reservas fetched %d times", n)
	}
	f.page.View(ctx, Filters{Responsavel: "Ana"})
	if n := f.backend.CallCount(http.MethodGet, "/reservas"); n != 2 {
		t.Fatalf("filter change did not refetch, calls = %d", n)
	}
}

func TestSubmitCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.page.View(ctx, Filters{})
	f.page.OpenCreate()

	form := f.form(f.sala, "10:00", "11:00")
	form.Cafe, form.QuantidadeCafe = true, 6
	saved, err := f.page.Submit(ctx, form)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if saved == nil || saved.CreatorEmail() != me {
		t.Fatalf("saved = %+v", saved)
	}

	call, _ := f.backend.LastCall(http.MethodPost, "/reservas")
	var body map[string]any
	json.Unmarshal(call.Body, &body)
	if body["local"] != "Sede" || body["sala"] != "Sala A" || body["quantidade_cafe"] != float64(6) {
		t.Errorf("payload = %v", body)
	}
	if body["data_inicio"] != "2025-01-20T13:00:00.000Z" {
		t.Errorf("data_inicio = %v", body["data_inicio"])
	}

	if f.page.Modals.Snapshot().ReservationForm.Open {
		t.Error("form should close on success")
	}
	if b := f.page.Banner.Current(); b == nil || b.Text != "Reserva criada com sucesso!" {
		t.Errorf("banner = %+v", b)
	}
	if n := f.backend.CallCount(http.MethodGet, "/reservas"); n != 2 {
		t.Errorf("list not refetched, GET calls = %d", n)
	}

	f.clock.Advance(3 * time.Second)
	if f.page.Banner.Current() != nil {
		t.Error("banner should expire after 3s")
	}
}

func TestSubmitRejectsBeforeNetwork(t *testing.T) {
	cases := map[string]struct {
		mutate func(*models.ReservaForm)
		want   string
	}{
		"end not after start": {func(r *models.ReservaForm) { r.DataFim = r.DataInicio }, validators.MsgEndBeforeStart},
		"cafe without amount": {func(r *models.ReservaForm) { r.Cafe = true }, validators.MsgCafeQuantity},
		"missing fields":      {func(r *models.ReservaForm) { r.Responsavel = "" }, validators.MsgRequiredFields},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.page.OpenCreate()
			form := f.form(f.sala, "10:00", "11:00")
			tc.mutate(&form)

			_, err := f.page.Submit(context.Background(), form)
			if err == nil || err.Error() != tc.want {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
			if n := f.backend.CallCount(http.MethodPost, "/reservas"); n != 0 {
				t.Fatalf("POST made %d times", n)
			}
			slice := f.page.Modals.Snapshot().ReservationForm
			if !slice.Open || slice.Error == nil || slice.Error.Kind != modal.KindValidation {
				t.Fatalf("form slice = %+v", slice)
			}
		})
	}
}

func TestSubmitConflictKeepsFormOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start, _ := models.ParseInstant("2025-01-20T10:30")
	f.backend.SeedReserva(testfixtures.Reserva(f.local, f.sala, start, time.Hour, "Outro", "x@example.com"))

	f.page.OpenCreate()
	form := f.form(f.sala, "10:00", "11:00")
	_, err := f.page.Submit(ctx, form)
	if apiclient.StatusOf(err) != http.StatusConflict {
		t.Fatalf("err = %v", err)
	}

	slice := f.page.Modals.Snapshot().ReservationForm
	if !slice.Open {
		t.Fatal("form closed on conflict")
	}
	if slice.Data == nil || slice.Data.Responsavel != "Ana" || slice.Data.SalaID != f.sala.ID {
		t.Fatalf("submitted values lost: %+v", slice.Data)
	}
	if slice.Error.Kind != modal.KindConflict || slice.Error.Title != "Conflito de horário" {
		t.Fatalf("error = %+v", slice.Error)
	}
	if slice.Error.Message != "Já existe uma reserva para esta sala neste intervalo de horário." {
		t.Fatalf("message = %q", slice.Error.Message)
	}

	// the next attempt starts from a clean error
	form = f.form(f.salaB, "10:00", "11:00")
	if _, err := f.page.Submit(ctx, form); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestSubmitUnknownSala(t *testing.T) {
	f := newFixture(t)
	f.page.OpenCreate()
	form := f.form(f.sala, "10:00", "11:00")
	form.SalaID = 9999

	_, err := f.page.Submit(context.Background(), form)
	if err == nil || err.Error() != "Sala não encontrada" {
		t.Fatalf("err = %v", err)
	}
	if n := f.backend.CallCount(http.MethodPost, "/reservas"); n != 0 {
		t.Fatal("unexpected POST")
	}
}

func TestSubmitWithClosedFormFails(t *testing.T) {
	f := newFixture(t)
	_, err := f.page.Submit(context.Background(), f.form(f.sala, "10:00", "11:00"))
	if !errors.Is(err, usecase.ErrDialogClosed) {
		t.Fatalf("err = %v", err)
	}
}

func TestSubmitWhileBusy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.page.OpenCreate()
	release := f.backend.HoldWrites()
	defer release()

	done := make(chan error, 1)
	go func() {
		_, err := f.page.Submit(ctx, f.form(f.sala, "10:00", "11:00"))
		done <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for f.backend.CallCount(http.MethodPost, "/reservas") == 0 {
		if time.Now().After(deadline) {
			t.Fatal("first submit never reached the backend")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := f.page.Submit(ctx, f.form(f.salaB, "10:00", "11:00")); !errors.Is(err, usecase.ErrBusy) {
		t.Fatalf("second submit = %v, want ErrBusy", err)
	}

	release()
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
}

func TestEditOnlyForCreator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start, _ := models.ParseInstant("2025-01-20T14:00")
	mine := f.backend.SeedReserva(testfixtures.Reserva(f.local, f.sala, start, time.Hour, "Ana", "ANA@example.com"))
	theirs := f.backend.SeedReserva(testfixtures.Reserva(f.local, f.salaB, start, time.Hour, "Bia", "bia@example.com"))
	f.page.View(ctx, Filters{})

	if err := f.page.OpenEdit(ctx, theirs.ID); !errors.Is(err, usecase.ErrNotCreator) {
		t.Fatalf("OpenEdit(theirs) = %v", err)
	}
	if err := f.page.OpenDelete(ctx, theirs.ID); !errors.Is(err, usecase.ErrNotCreator) {
		t.Fatalf("OpenDelete(theirs) = %v", err)
	}
	if f.page.Modals.Snapshot().ReservationForm.Open {
		t.Fatal("form opened for non-creator")
	}

	if err := f.page.OpenEdit(ctx, mine.ID); err != nil {
		t.Fatalf("OpenEdit(mine) = %v", err)
	}
	slice := f.page.Modals.Snapshot().ReservationForm
	if slice.Mode != modal.ModeEdit || slice.Data.DataInicio != "2025-01-20T14:00" {
		t.Fatalf("edit slice = %+v", slice)
	}

	form := *slice.Data
	form.DataFim = "2025-01-20T16:00"
	if _, err := f.page.Submit(ctx, form); err != nil {
		t.Fatalf("Submit edit: %v", err)
	}
	if f.backend.CallCount(http.MethodPut, "/reservas/"+itoa(mine.ID)) != 1 {
		t.Fatal("update not sent")
	}
	if b := f.page.Banner.Current(); b == nil || b.Text != "Reserva atualizada com sucesso!" {
		t.Fatalf("banner = %+v", b)
	}
}

func TestConfirmDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start, _ := models.ParseInstant("2025-01-20T14:00")
	r := f.backend.SeedReserva(testfixtures.Reserva(f.local, f.sala, start, time.Hour, "Ana", me))
	f.page.View(ctx, Filters{})

	if err := f.page.OpenDelete(ctx, r.ID); err != nil {
		t.Fatal(err)
	}

	f.backend.Fail(http.MethodDelete, "/reservas/"+itoa(r.ID), http.StatusInternalServerError, `{"message":"falha ao excluir"}`)
	if err := f.page.ConfirmDelete(ctx); err == nil {
		t.Fatal("expected failure")
	}
	if !f.page.Modals.Snapshot().ReservationDelete.Open {
		t.Fatal("dialog closed on failure")
	}
	if b := f.page.Banner.Current(); b == nil || b.Kind != flash.Error || b.Text != "falha ao excluir" {
		t.Fatalf("banner = %+v", b)
	}

	f.backend.ClearFailures()
	if err := f.page.ConfirmDelete(ctx); err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}
	if f.page.Modals.Snapshot().ReservationDelete.Open {
		t.Fatal("dialog still open")
	}
	if len(f.backend.Reservas()) != 0 {
		t.Fatal("reservation not deleted")
	}
	if b := f.page.Banner.Current(); b == nil || b.Text != "Reserva deletada com sucesso!" {
		t.Fatalf("banner = %+v", b)
	}
}

func TestDialogsAreIndependent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start, _ := models.ParseInstant("2025-01-20T14:00")
	r := f.backend.SeedReserva(testfixtures.Reserva(f.local, f.sala, start, time.Hour, "Ana", me))
	f.page.View(ctx, Filters{})

	f.page.OpenParticipants(ctx, r.ID)
	f.page.OpenCreate()
	f.page.CloseForm()

	snap := f.page.Modals.Snapshot()
	if !snap.Participants.Open || snap.Participants.ReservaID != r.ID {
		t.Fatalf("participants slice = %+v", snap.Participants)
	}
}

func TestFormErrorFor(t *testing.T) {
	cases := []struct {
		err   error
		kind  modal.ErrorKind
		title string
		msg   string
	}{
		{&apiclient.APIError{Code: 400, Message: "sala inativa"}, modal.KindError, titleError, "sala inativa"},
		{&apiclient.APIError{Code: 400}, modal.KindError, titleError, msgBadRequest},
		{&apiclient.APIError{Code: 404, Message: "x"}, modal.KindError, titleError, msgGone},
		{&apiclient.APIError{Code: 409, Message: "duplicado"}, modal.KindConflict, titleConflict, msgConflict},
		{&apiclient.APIError{Code: 500, Message: "boom"}, modal.KindError, titleError, msgServer},
		{&apiclient.APIError{Code: 422, Message: "Conflito com outra reserva"}, modal.KindConflict, titleConflict, "Conflito com outra reserva"},
		{&apiclient.APIError{Code: 0, Message: ""}, modal.KindError, titleError, msgSaveFailed},
	}
	for _, tc := range cases {
		got := FormErrorFor(tc.err)
		if got.Kind != tc.kind || got.Title != tc.title || got.Message != tc.msg {
			t.Errorf("FormErrorFor(%v) = %+v", tc.err, got)
		}
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
