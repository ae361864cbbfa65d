package models

type Participante struct {
	ID         int64    `json:"id"`
	ReservaID  int64    `json:"reserva_id"`
	UsuarioID  *int64   `json:"usuario_id,omitempty"`
	NomeManual *string  `json:"nome_manual,omitempty"`
	CreatedAt  *Instant `json:"created_at,omitempty"`
	Usuario    *Usuario `json:"usuario,omitempty"`
}

func (p Participante) DisplayName() string {
	if p.Usuario != nil {
		return p.Usuario.Nome
	}
	if p.NomeManual != nil && *p.NomeManual != "" {
		return *p.NomeManual
	}
	return "Nome não disponível"
}

func (p Participante) Email() string {
	if p.Usuario != nil {
		return p.Usuario.Email
	}
	return ""
}

type ParticipantePayload struct {
	ReservaID  int64   `json:"reserva_id"`
	UsuarioID  *int64  `json:"usuario_id,omitempty"`
	NomeManual *string `json:"nome_manual,omitempty"`
}
