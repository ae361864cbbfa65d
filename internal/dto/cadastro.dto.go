package dto

import (
	"github.com/BruksfildServices01/salas-reservas/internal/models"
	"github.com/BruksfildServices01/salas-reservas/internal/timezone"
)

type SalaRowDTO struct {
	models.Sala
	LocalNome string `json:"local_nome"`
}

// NewSalaRows joins rooms with their site names.
func NewSalaRows(salas []models.Sala, locais []models.Local) []SalaRowDTO {
	names := make(map[int64]string, len(locais))
	for _, l := range locais {
		names[l.ID] = l.Nome
	}

	rows := make([]SalaRowDTO, 0, len(salas))
	for _, s := range salas {
		rows = append(rows, SalaRowDTO{Sala: s, LocalNome: names[s.LocalID]})
	}
	return rows
}

type ParticipanteDTO struct {
	ID        int64  `json:"id"`
	ReservaID int64  `json:"reserva_id"`
	Nome      string `json:"nome"`
	Email     string `json:"email,omitempty"`
	Manual    bool   `json:"manual"`
}

func NewParticipantes(ps []models.Participante) []ParticipanteDTO {
	out := make([]ParticipanteDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, ParticipanteDTO{
			ID:        p.ID,
			ReservaID: p.ReservaID,
			Nome:      p.DisplayName(),
			Email:     p.Email(),
			Manual:    p.Usuario == nil,
		})
	}
	return out
}

type UsuarioDTO struct {
	ID          int64  `json:"id"`
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	FotoURL     string `json:"foto_url,omitempty"`
	CriadoEm    string `json:"criado_em,omitempty"`
	UltimoLogin string `json:"ultimo_login,omitempty"`
}

func NewUsuarios(us []models.Usuario) []UsuarioDTO {
	out := make([]UsuarioDTO, 0, len(us))
	for _, u := range us {
		row := UsuarioDTO{ID: u.ID, Nome: u.Nome, Email: u.Email}
		if u.FotoURL != nil {
			row.FotoURL = *u.FotoURL
		}
		if u.CreatedAt != nil && !u.CreatedAt.IsZero() {
			row.CriadoEm = timezone.FormatDate(u.CreatedAt.Time)
		}
		if u.LastLoginAt != nil && !u.LastLoginAt.IsZero() {
			row.UltimoLogin = timezone.FormatDateTime(u.LastLoginAt.Time)
		}
		out = append(out, row)
	}
	return out
}
