package validators

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

const (
	MsgRequiredFields   = "Por favor, preencha todos os campos obrigatórios"
	MsgEndBeforeStart   = "A data de fim deve ser posterior à data de início"
	MsgCafeQuantity     = "Se café está marcado, a quantidade deve ser maior que zero"
	MsgResponsavelLen   = "O nome do responsável não pode ter mais de 150 caracteres"
	MsgDescricaoLen     = "A descrição não pode ter mais de 1000 caracteres"
	MsgInvalidDate      = "Data inválida"
	MsgNomeRequired     = "O nome é obrigatório"
	MsgNomeLen          = "O nome não pode ter mais de 100 caracteres"
	MsgLocalRequired    = "O local é obrigatório"
	MsgCapacidade       = "A capacidade deve ser maior que zero"
	MsgParticipantNone  = "Selecione um usuário ou informe um nome"
	MsgParticipantBoth  = "Informe um usuário ou um nome, não ambos"
	MsgParticipantEmpty = "O nome do participante é obrigatório"
)

// ValidationError is a client-side rejection; nothing was sent.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// failures indexes the failed tags of a struct by Go field name.
func failures(s any) map[string]string {
	out := map[string]string{}
	err := validate.Struct(s)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if _, seen := out[fe.StructField()]; !seen {
				out[fe.StructField()] = fe.Tag()
			}
		}
	}
	return out
}

func fail(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// ====================================================
// RESERVA
// ====================================================

// ValidateReserva checks the reservation form and returns its parsed
// instants. Checks run in order: required fields, date order, coffee,
// lengths.
func ValidateReserva(f models.ReservaForm) (start, end time.Time, err error) {
	f.Responsavel = strings.TrimSpace(f.Responsavel)
	failed := failures(f)

	for _, field := range []string{"LocalID", "SalaID", "DataInicio", "DataFim", "Responsavel"} {
		if failed[field] == "required" {
			return start, end, fail("", MsgRequiredFields)
		}
	}

	start, perr := models.ParseInstant(f.DataInicio)
	if perr != nil {
		return start, end, fail("data_inicio", MsgInvalidDate)
	}
	end, perr = models.ParseInstant(f.DataFim)
	if perr != nil {
		return start, end, fail("data_fim", MsgInvalidDate)
	}
	if !end.After(start) {
		return start, end, fail("data_fim", MsgEndBeforeStart)
	}

	if f.Cafe && f.QuantidadeCafe <= 0 {
		return start, end, fail("quantidade_cafe", MsgCafeQuantity)
	}

	if failed["Responsavel"] == "max" {
		return start, end, fail("responsavel", MsgResponsavelLen)
	}
	if failed["Descricao"] == "max" {
		return start, end, fail("descricao", MsgDescricaoLen)
	}
	return start, end, nil
}

// ====================================================
// LOCAL / SALA
// ====================================================

func ValidateLocal(d models.LocalFormData) error {
	d.Nome = strings.TrimSpace(d.Nome)
	switch failures(d)["Nome"] {
	case "required":
		return fail("nome", MsgNomeRequired)
	case "max":
		return fail("nome", MsgNomeLen)
	}
	return nil
}

func ValidateSala(d models.SalaFormData) error {
	d.Nome = strings.TrimSpace(d.Nome)
	failed := failures(d)

	if failed["LocalID"] != "" {
		return fail("local_id", MsgLocalRequired)
	}
	switch failed["Nome"] {
	case "required":
		return fail("nome", MsgNomeRequired)
	case "max":
		return fail("nome", MsgNomeLen)
	}
	if failed["Capacidade"] != "" {
		return fail("capacidade", MsgCapacidade)
	}
	return nil
}

// ====================================================
// PARTICIPANTE
// ====================================================

// ValidateParticipante requires exactly one identity: a registered user or
// a manual name. The returned payload carries the trimmed name.
func ValidateParticipante(p models.ParticipantePayload) (models.ParticipantePayload, error) {
	hasUser := p.UsuarioID != nil && *p.UsuarioID > 0
	hasName := p.NomeManual != nil

	switch {
	case hasUser && hasName:
		return p, fail("", MsgParticipantBoth)
	case !hasUser && !hasName:
		return p, fail("", MsgParticipantNone)
	case hasName:
		name := strings.TrimSpace(*p.NomeManual)
		if name == "" {
			return p, fail("nome_manual", MsgParticipantEmpty)
		}
		p.NomeManual = &name
		p.UsuarioID = nil
	}
	return p, nil
}
