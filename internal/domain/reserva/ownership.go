package reserva

import (
	"strings"

	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

// CanEdit reports whether email created r. Edit and delete are offered only
// to the creator; the backend still decides.
func CanEdit(r models.Reserva, email string) bool {
	creator := r.CreatorEmail()
	return creator != "" && email != "" && strings.EqualFold(creator, email)
}

// Resumo is what the delete confirmation shows for r.
func Resumo(r models.Reserva) models.ReservaResumo {
	return models.ReservaResumo{
		ID:          r.ID,
		Local:       r.LocalDisplay(),
		Sala:        r.SalaDisplay(),
		DataInicio:  r.DataInicio,
		DataFim:     r.DataFim,
		Responsavel: r.Responsavel,
	}
}
