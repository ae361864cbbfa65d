package validators

import (
	"strings"
	"testing"

	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

func validReserva() models.ReservaForm {
	return models.ReservaForm{
		LocalID:     1,
		SalaID:      2,
		DataInicio:  "2025-01-15T10:00",
		DataFim:     "2025-01-15T11:00",
		Responsavel: "Ana",
	}
}

func TestValidateReserva(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.ReservaForm)
		want   string
	}{
		{"valid", func(*models.ReservaForm) {}, ""},
		{"missing sala", func(f *models.ReservaForm) { f.SalaID = 0 }, MsgRequiredFields},
		{"blank responsavel", func(f *models.ReservaForm) { f.Responsavel = "   " }, MsgRequiredFields},
		{"missing start", func(f *models.ReservaForm) { f.DataInicio = "" }, MsgRequiredFields},
		{"end equals start", func(f *models.ReservaForm) { f.DataFim = f.DataInicio }, MsgEndBeforeStart},
		{"end before start", func(f *models.ReservaForm) { f.DataFim = "2025-01-15T09:00" }, MsgEndBeforeStart},
		{"bad date", func(f *models.ReservaForm) { f.DataFim = "amanhã" }, MsgInvalidDate},
		{"cafe zero", func(f *models.ReservaForm) { f.Cafe = true }, MsgCafeQuantity},
		{"cafe negative", func(f *models.ReservaForm) { f.Cafe, f.QuantidadeCafe = true, -1 }, MsgCafeQuantity},
		{"cafe ok", func(f *models.ReservaForm) { f.Cafe, f.QuantidadeCafe = true, 10 }, ""},
		{"no cafe ignores quantity", func(f *models.ReservaForm) { f.QuantidadeCafe = 0 }, ""},
		{"long responsavel", func(f *models.ReservaForm) { f.Responsavel = strings.Repeat("a", 151) }, MsgResponsavelLen},
		{"responsavel at limit", func(f *models.ReservaForm) { f.Responsavel = strings.Repeat("ã", 150) }, ""},
		{"long descricao", func(f *models.ReservaForm) { f.Descricao = strings.Repeat("d", 1001) }, MsgDescricaoLen},
		{"required wins over dates", func(f *models.ReservaForm) { f.LocalID, f.DataFim = 0, f.DataInicio }, MsgRequiredFields},
		{"dates win over cafe", func(f *models.ReservaForm) { f.DataFim, f.Cafe = f.DataInicio, true }, MsgEndBeforeStart},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validReserva()
			tc.mutate(&f)
			_, _, err := ValidateReserva(f)
			got := ""
			if err != nil {
				if !IsValidation(err) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				got = err.Error()
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValidateReservaReturnsInstants(t *testing.T) {
	start, end, err := ValidateReserva(validReserva())
	if err != nil {
		t.Fatal(err)
	}
	if end.Sub(start).Hours() != 1 {
		t.Fatalf("span = %v", end.Sub(start))
	}
	// datetime-local values are read in America/Sao_Paulo (UTC-3)
	if start.UTC().Hour() != 13 {
		t.Fatalf("start UTC hour = %d", start.UTC().Hour())
	}
}

func TestValidateLocal(t *testing.T) {
	cases := map[string]struct {
		nome string
		want string
	}{
		"ok":      {"Sede", ""},
		"empty":   {"", MsgNomeRequired},
		"spaces":  {"   ", MsgNomeRequired},
		"too big": {strings.Repeat("x", 101), MsgNomeLen},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := ValidateLocal(models.LocalFormData{Nome: tc.nome})
			if got := errText(err); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValidateSala(t *testing.T) {
	zero, ten := 0, 10
	cases := map[string]struct {
		data models.SalaFormData
		want string
	}{
		"ok":               {models.SalaFormData{LocalID: 1, Nome: "A"}, ""},
		"ok with capacity": {models.SalaFormData{LocalID: 1, Nome: "A", Capacidade: &ten}, ""},
		"no local":         {models.SalaFormData{Nome: "A"}, MsgLocalRequired},
		"no name":          {models.SalaFormData{LocalID: 1}, MsgNomeRequired},
		"long name":        {models.SalaFormData{LocalID: 1, Nome: strings.Repeat("n", 101)}, MsgNomeLen},
		"zero capacity":    {models.SalaFormData{LocalID: 1, Nome: "A", Capacidade: &zero}, MsgCapacidade},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := errText(ValidateSala(tc.data)); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValidateParticipante(t *testing.T) {
	uid := int64(4)
	name := "  Visitante  "
	blank := "   "

	if _, err := ValidateParticipante(models.ParticipantePayload{ReservaID: 1}); errText(err) != MsgParticipantNone {
		t.Fatalf("none: %v", err)
	}
	if _, err := ValidateParticipante(models.ParticipantePayload{ReservaID: 1, UsuarioID: &uid, NomeManual: &name}); errText(err) != MsgParticipantBoth {
		t.Fatalf("both: %v", err)
	}
	if _, err := ValidateParticipante(models.ParticipantePayload{ReservaID: 1, NomeManual: &blank}); errText(err) != MsgParticipantEmpty {
		t.Fatalf("blank: %v", err)
	}

	p, err := ValidateParticipante(models.ParticipantePayload{ReservaID: 1, NomeManual: &name})
	if err != nil || *p.NomeManual != "Visitante" {
		t.Fatalf("manual = %+v, %v", p, err)
	}
	if name != "  Visitante  " {
		t.Fatal("input was modified")
	}

	p, err = ValidateParticipante(models.ParticipantePayload{ReservaID: 1, UsuarioID: &uid})
	if err != nil || *p.UsuarioID != 4 {
		t.Fatalf("user = %+v, %v", p, err)
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
