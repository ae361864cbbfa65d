package apiclient

import (
	"context"
	"net/http"

	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

const participantesPath = "/participantes"

func (c *Client) ListParticipantes(ctx context.Context, reservaID int64) ([]models.Participante, error) {
	return decodeList[models.Participante](c.do(ctx, request{
		method: http.MethodGet,
		path:   idPath(reservasPath, reservaID) + participantesPath,
		auth:   true,
	}))
}

func (c *Client) AddParticipante(ctx context.Context, p models.ParticipantePayload) (*models.Participante, error) {
	return decodeOne[models.Participante](c.do(ctx, request{method: http.MethodPost, path: participantesPath, body: p, auth: true}))
}

func (c *Client) RemoveParticipante(ctx context.Context, id int64) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: idPath(participantesPath, id), auth: true})
	return err
}
