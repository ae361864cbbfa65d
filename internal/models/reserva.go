package models

import (
	"net/url"
	"strconv"
	"time"
)

type Reserva struct {
	ID             int64    `json:"id"`
	LocalID        int64    `json:"local_id"`
	SalaID         int64    `json:"sala_id"`
	Local          string   `json:"local,omitempty"`
	LocalNome      string   `json:"local_nome,omitempty"`
	Sala           string   `json:"sala,omitempty"`
	SalaNome       string   `json:"sala_nome,omitempty"`
	DataInicio     Instant  `json:"data_inicio"`
	DataFim        Instant  `json:"data_fim"`
	Responsavel    string   `json:"responsavel"`
	Descricao      *string  `json:"descricao,omitempty"`
	Cafe           bool     `json:"cafe"`
	QuantidadeCafe *int     `json:"quantidade_cafe,omitempty"`
	CriadoPorEmail *string  `json:"criado_por_email,omitempty"`
	CreatedAt      *Instant `json:"created_at,omitempty"`
	UpdatedAt      *Instant `json:"updated_at,omitempty"`
	DeletedAt      *Instant `json:"deleted_at,omitempty"`
}

// LocalDisplay prefers the denormalized name, falling back to local_nome.
func (r Reserva) LocalDisplay() string {
	if r.Local != "" {
		return r.Local
	}
	return r.LocalNome
}

func (r Reserva) SalaDisplay() string {
	if r.Sala != "" {
		return r.Sala
	}
	return r.SalaNome
}

func (r Reserva) CreatorEmail() string {
	if r.CriadoPorEmail == nil {
		return ""
	}
	return *r.CriadoPorEmail
}

// ReservaForm holds the reservation form fields. Dates use the
// datetime-local layout (or RFC 3339).
type ReservaForm struct {
	ID             int64  `json:"id,omitempty"`
	LocalID        int64  `json:"local_id" validate:"required"`
	SalaID         int64  `json:"sala_id" validate:"required"`
	DataInicio     string `json:"data_inicio" validate:"required"`
	DataFim        string `json:"data_fim" validate:"required"`
	Responsavel    string `json:"responsavel" validate:"required,max=150"`
	Descricao      string `json:"descricao" validate:"max=1000"`
	Cafe           bool   `json:"cafe"`
	QuantidadeCafe int    `json:"quantidade_cafe"`
}

// ReservaPayload is the body sent to POST/PUT /reservas. The backend
// requires both ids and the denormalized names.
type ReservaPayload struct {
	LocalID        int64  `json:"local_id"`
	SalaID         int64  `json:"sala_id"`
	Local          string `json:"local"`
	Sala           string `json:"sala"`
	DataInicio     string `json:"data_inicio"`
	DataFim        string `json:"data_fim"`
	Responsavel    string `json:"responsavel"`
	Descricao      string `json:"descricao"`
	Cafe           bool   `json:"cafe"`
	QuantidadeCafe *int   `json:"quantidade_cafe"`
}

// NewReservaPayload builds the request body from a validated form. The
// coffee quantity is only sent when coffee was requested.
func NewReservaPayload(form ReservaForm, local, sala string, start, end time.Time) ReservaPayload {
	p := ReservaPayload{
		LocalID:     form.LocalID,
		SalaID:      form.SalaID,
		Local:       local,
		Sala:        sala,
		DataInicio:  FormatISO(start),
		DataFim:     FormatISO(end),
		Responsavel: form.Responsavel,
		Descricao:   form.Descricao,
		Cafe:        form.Cafe,
	}
	if form.Cafe {
		q := form.QuantidadeCafe
		p.QuantidadeCafe = &q
	}
	return p
}

// ReservaResumo is what the delete confirmation shows.
type ReservaResumo struct {
	ID          int64   `json:"id"`
	Local       string  `json:"local"`
	Sala        string  `json:"sala"`
	DataInicio  Instant `json:"data_inicio"`
	DataFim     Instant `json:"data_fim"`
	Responsavel string  `json:"responsavel"`
}

type ReservaFilters struct {
	DataInicio  string
	DataFim     string
	Sala        string
	Local       string
	Responsavel string
	Page        int
	PageSize    int
}

func (f ReservaFilters) Query() url.Values {
	q := url.Values{}
	if f.DataInicio != "" {
		q.Set("data_inicio", f.DataInicio)
	}
	if f.DataFim != "" {
		q.Set("data_fim", f.DataFim)
	}
	if f.Sala != "" {
		q.Set("sala", f.Sala)
	}
	if f.Local != "" {
		q.Set("local", f.Local)
	}
	if f.Responsavel != "" {
		q.Set("responsavel", f.Responsavel)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(f.PageSize))
	}
	return q
}

func (f ReservaFilters) Key() string {
	return f.Query().Encode()
}
