package dto

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

func TestNewReservaCard(t *testing.T) {
	creator := "ana@example.com"
	qtd := 8
	r := models.Reserva{
		ID:             1,
		LocalNome:      "Sede",
		Sala:           "Sala A",
		DataInicio:     models.NewInstant(time.Date(2025, 1, 15, 13, 0, 0, 0, time.UTC)),
		DataFim:        models.NewInstant(time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC)),
		Responsavel:    "Ana",
		Cafe:           true,
		QuantidadeCafe: &qtd,
		CriadoPorEmail: &creator,
	}
	now := time.Date(2025, 1, 15, 12, 30, 0, 0, time.UTC)

	card := NewReservaCard(r, now, "ANA@example.com")

	if card.Local != "Sede" || card.Sala != "Sala A" {
		t.Errorf("names = %q / %q", card.Local, card.Sala)
	}
	if card.Data != "qua., 15 de jan." {
		t.Errorf("data = %q", card.Data)
	}
	if card.HoraInicio != "10:00" || card.HoraFim != "11:00" {
		t.Errorf("horas = %s-%s", card.HoraInicio, card.HoraFim)
	}
	if card.Status != "Em Breve" || card.StatusSlug != "em-breve" {
		t.Errorf("status = %q (%s)", card.Status, card.StatusSlug)
	}
	if !card.CanEdit {
		t.Error("creator should be able to edit")
	}
	if card.QuantidadeCafe == nil || *card.QuantidadeCafe != 8 {
		t.Error("coffee quantity lost")
	}
}

func TestNewReservaCardAtEndIsConcluded(t *testing.T) {
	end := time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC)
	r := models.Reserva{
		ID:          2,
		Sala:        "Sala A",
		DataInicio:  models.NewInstant(end.Add(-time.Hour)),
		DataFim:     models.NewInstant(end),
		Responsavel: "Ana",
	}

	card := NewReservaCard(r, end, "")
	if card.Status != "Concluída" || card.StatusSlug != "concluida" {
		t.Errorf("status = %q (%s)", card.Status, card.StatusSlug)
	}
}

func TestNewSalaRows(t *testing.T) {
	rows := NewSalaRows(
		[]models.Sala{{ID: 1, LocalID: 10, Nome: "A"}, {ID: 2, LocalID: 99, Nome: "B"}},
		[]models.Local{{ID: 10, Nome: "Sede"}},
	)
	if rows[0].LocalNome != "Sede" || rows[1].LocalNome != "" {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestNewParticipantes(t *testing.T) {
	manual := "Visitante"
	rows := NewParticipantes([]models.Participante{
		{ID: 1, Usuario: &models.Usuario{Nome: "Ana", Email: "ana@x.com"}},
		{ID: 2, NomeManual: &manual},
		{ID: 3},
	})
	if rows[0].Nome != "Ana" || rows[0].Manual {
		t.Errorf("registered = %+v", rows[0])
	}
	if rows[1].Nome != "Visitante" || !rows[1].Manual {
		t.Errorf("manual = %+v", rows[1])
	}
	if rows[2].Nome != "Nome não disponível" {
		t.Errorf("fallback = %+v", rows[2])
	}
}
