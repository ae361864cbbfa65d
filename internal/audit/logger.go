package audit

import (
	"context"
	"encoding/json"

	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

// Repository persists audit rows.
type Repository interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

type Logger struct {
	repo Repository
}

func New(repo Repository) *Logger {
	return &Logger{repo: repo}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		UserEmail: ev.UserEmail,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
	}

	return l.repo.Create(ctx, &row)
}
