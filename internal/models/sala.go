package models

import (
	"net/url"
	"strconv"
)

type Sala struct {
	ID         int64    `json:"id"`
	LocalID    int64    `json:"local_id"`
	Nome       string   `json:"nome"`
	Capacidade *int     `json:"capacidade,omitempty"`
	Recursos   *string  `json:"recursos,omitempty"`
	Ativo      bool     `json:"ativo"`
	CreatedAt  *Instant `json:"created_at,omitempty"`
	UpdatedAt  *Instant `json:"updated_at,omitempty"`
	DeletedAt  *Instant `json:"deleted_at,omitempty"`
}

// SalaFormData is what the room form submits. Capacidade is optional.
type SalaFormData struct {
	LocalID    int64  `json:"local_id" validate:"required"`
	Nome       string `json:"nome" validate:"required,max=100"`
	Capacidade *int   `json:"capacidade" validate:"omitempty,gt=0"`
	Recursos   string `json:"recursos"`
	Ativo      bool   `json:"ativo"`
}

type SalaPayload struct {
	LocalID    int64   `json:"local_id"`
	Nome       string  `json:"nome"`
	Capacidade *int    `json:"capacidade"`
	Recursos   *string `json:"recursos"`
	Ativo      bool    `json:"ativo"`
}

type SalaFilters struct {
	LocalID       int64
	Ativo         *bool
	CapacidadeMin int
}

func (f SalaFilters) Query() url.Values {
	q := url.Values{}
	if f.LocalID != 0 {
		q.Set("local_id", strconv.FormatInt(f.LocalID, 10))
	}
	if f.Ativo != nil {
		q.Set("ativo", strconv.FormatBool(*f.Ativo))
	}
	if f.CapacidadeMin > 0 {
		q.Set("capacidade_min", strconv.Itoa(f.CapacidadeMin))
	}
	return q
}

func (f SalaFilters) Key() string {
	return f.Query().Encode()
}
