package modal

import (
	"reflect"
	"sync"
	"testing"

	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

func TestOpenDoesNotTouchOtherSlices(t *testing.T) {
	m := New()
	m.OpenParticipants(9)
	m.OpenLocalDelete(models.Local{ID: 1, Nome: "Sede"})
	before := m.Snapshot()

	m.OpenReservationForm(ModeCreate, nil)

	after := m.Snapshot()
	if !after.ReservationForm.Open || after.ReservationForm.Mode != ModeCreate {
		t.Fatalf("reservation form = %+v", after.ReservationForm)
	}
	after.ReservationForm = before.ReservationForm
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("other slices changed:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestOpenClearsPreviousError(t *testing.T) {
	m := New()
	m.OpenReservationForm(ModeCreate, nil)
	m.SetReservationFormError(&FormError{Code: 409, Kind: KindConflict, Message: "x"})

	if m.Snapshot().ReservationForm.Error == nil {
		t.Fatal("error not recorded")
	}
	if !m.Snapshot().ReservationForm.Open {
		t.Fatal("setting an error must not close the form")
	}

	m.OpenReservationForm(ModeEdit, &models.ReservaForm{ID: 3})
	s := m.Snapshot().ReservationForm
	if s.Error != nil || s.Mode != ModeEdit || s.Data.ID != 3 {
		t.Fatalf("reopened form = %+v", s)
	}
}

func TestCloseDiscardsPayload(t *testing.T) {
	m := New()
	m.OpenSalaForm(&models.Sala{ID: 2})
	m.SetSalaFormError(&FormError{Message: "dup"})
	m.UpdateSalaDraft(models.SalaFormData{Nome: "A"})
	m.CloseSalaForm()

	if got := m.Snapshot().SalaForm; !reflect.DeepEqual(got, SalaForm{}) {
		t.Fatalf("closed slice = %+v", got)
	}
}

func TestResetClosesEverything(t *testing.T) {
	m := New()
	m.OpenReservationForm(ModeCreate, nil)
	m.OpenReservationDelete(models.ReservaResumo{ID: 1})
	m.OpenParticipants(1)
	m.OpenLocalForm(nil)
	m.OpenLocalDelete(models.Local{ID: 1})
	m.OpenSalaForm(nil)
	m.OpenSalaDelete(models.Sala{ID: 1})

	m.Reset()

	if got := m.Snapshot(); !reflect.DeepEqual(got, Snapshot{}) {
		t.Fatalf("after reset = %+v", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	m := New()
	data := &models.ReservaForm{Responsavel: "Ana"}
	m.OpenReservationForm(ModeEdit, data)
	data.Responsavel = "changed by caller"

	snap := m.Snapshot()
	if snap.ReservationForm.Data.Responsavel != "Ana" {
		t.Fatal("store shares memory with caller input")
	}
	snap.ReservationForm.Data.Responsavel = "changed by reader"
	if m.Snapshot().ReservationForm.Data.Responsavel != "Ana" {
		t.Fatal("store shares memory with snapshot")
	}
}

func TestIsConflict(t *testing.T) {
	cases := []struct {
		code int
		msg  string
		want bool
	}{
		{409, "", true},
		{400, "Conflito de horário", true},
		{0, "erro 409 do servidor", true},
		{500, "Erro interno", false},
	}
	for _, tc := range cases {
		if got := IsConflict(tc.code, tc.msg); got != tc.want {
			t.Errorf("IsConflict(%d, %q) = %v", tc.code, tc.msg, got)
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			m.OpenParticipants(id)
			m.CloseParticipants()
		}(int64(i))
		go func() {
			defer wg.Done()
			m.OpenLocalForm(nil)
			_ = m.Snapshot()
			m.Reset()
		}()
	}
	wg.Wait()
}
