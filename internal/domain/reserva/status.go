package reserva

import "time"

// ===============================
// Temporal Status
// ===============================

type Status string

const (
	StatusConcluida   Status = "Concluída"
	StatusEmAndamento Status = "Em Andamento"
	StatusEmBreve     Status = "Em Breve"
	StatusAgendada    Status = "Agendada"
)

// SoonWindow is how far ahead a booking counts as "Em Breve".
const SoonWindow = time.Hour

// StatusAt classifies a booking relative to now. now == end counts as
// concluded; start-now == 1h is still scheduled.
func StatusAt(now, start, end time.Time) Status {
	switch {
	case !now.Before(end):
		return StatusConcluida
	case !now.Before(start):
		return StatusEmAndamento
	case start.Sub(now) < SoonWindow:
		return StatusEmBreve
	default:
		return StatusAgendada
	}
}

// Slug is a stable identifier for styling.
func (s Status) Slug() string {
	switch s {
	case StatusConcluida:
		return "concluida"
	case StatusEmAndamento:
		return "em-andamento"
	case StatusEmBreve:
		return "em-breve"
	default:
		return "agendada"
	}
}
