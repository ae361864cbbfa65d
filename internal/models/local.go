package models

import (
	"net/url"
	"strconv"
)

type Local struct {
	ID        int64    `json:"id"`
	Nome      string   `json:"nome"`
	Descricao string   `json:"descricao,omitempty"`
	Ativo     bool     `json:"ativo"`
	CreatedAt *Instant `json:"created_at,omitempty"`
	UpdatedAt *Instant `json:"updated_at,omitempty"`
	DeletedAt *Instant `json:"deleted_at,omitempty"`
}

type LocalFormData struct {
	Nome      string `json:"nome" validate:"required,max=100"`
	Descricao string `json:"descricao"`
	Ativo     bool   `json:"ativo"`
}

type LocalFilters struct {
	Ativo *bool
}

func (f LocalFilters) Query() url.Values {
	q := url.Values{}
	if f.Ativo != nil {
		q.Set("ativo", strconv.FormatBool(*f.Ativo))
	}
	return q
}

func (f LocalFilters) Key() string {
	return f.Query().Encode()
}

// Bool returns a pointer to v, for optional filter fields.
func Bool(v bool) *bool {
	return &v
}
