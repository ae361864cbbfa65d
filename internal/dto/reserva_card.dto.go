package dto

import (
	"time"

	"github.com/BruksfildServices01/salas-reservas/internal/domain/reserva"
	"github.com/BruksfildServices01/salas-reservas/internal/models"
	"github.com/BruksfildServices01/salas-reservas/internal/timezone"
)

type ReservaCardDTO struct {
	ID             int64     `json:"id"`
	Local          string    `json:"local"`
	Sala           string    `json:"sala"`
	Responsavel    string    `json:"responsavel"`
	Descricao      string    `json:"descricao,omitempty"`
	Data           string    `json:"data"`
	HoraInicio     string    `json:"hora_inicio"`
	HoraFim        string    `json:"hora_fim"`
	DataInicio     time.Time `json:"data_inicio"`
	DataFim        time.Time `json:"data_fim"`
	Status         string    `json:"status"`
	StatusSlug     string    `json:"status_slug"`
	Cafe           bool      `json:"cafe"`
	QuantidadeCafe *int      `json:"quantidade_cafe,omitempty"`
	CriadoPorEmail string    `json:"criado_por_email,omitempty"`
	CanEdit        bool      `json:"can_edit"`
}

// NewReservaCard renders r for the list as seen by email at now.
func NewReservaCard(r models.Reserva, now time.Time, email string) ReservaCardDTO {
	status := reserva.StatusAt(now, r.DataInicio.Time, r.DataFim.Time)

	card := ReservaCardDTO{
		ID:             r.ID,
		Local:          r.LocalDisplay(),
		Sala:           r.SalaDisplay(),
		Responsavel:    r.Responsavel,
		Data:           timezone.FormatCardDate(r.DataInicio.Time),
		HoraInicio:     timezone.FormatTime(r.DataInicio.Time),
		HoraFim:        timezone.FormatTime(r.DataFim.Time),
		DataInicio:     r.DataInicio.UTC(),
		DataFim:        r.DataFim.UTC(),
		Status:         string(status),
		StatusSlug:     status.Slug(),
		Cafe:           r.Cafe,
		CriadoPorEmail: r.CreatorEmail(),
		CanEdit:        reserva.CanEdit(r, email),
	}
	if r.Descricao != nil {
		card.Descricao = *r.Descricao
	}
	if r.Cafe {
		card.QuantidadeCafe = r.QuantidadeCafe
	}
	return card
}
