package apiclient

import (
	"context"
	"net/http"

	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

const reservasPath = "/reservas"

// Reads are public; writes need the bearer token.

func (c *Client) ListReservas(ctx context.Context, f models.ReservaFilters) ([]models.Reserva, error) {
	return decodeList[models.Reserva](c.do(ctx, request{method: http.MethodGet, path: reservasPath, query: f.Query()}))
}

func (c *Client) GetReserva(ctx context.Context, id int64) (*models.Reserva, error) {
	return decodeOne[models.Reserva](c.do(ctx, request{method: http.MethodGet, path: idPath(reservasPath, id)}))
}

func (c *Client) CreateReserva(ctx context.Context, p models.ReservaPayload) (*models.Reserva, error) {
	return decodeOne[models.Reserva](c.do(ctx, request{method: http.MethodPost, path: reservasPath, body: p, auth: true}))
}

func (c *Client) UpdateReserva(ctx context.Context, id int64, p models.ReservaPayload) (*models.Reserva, error) {
	return decodeOne[models.Reserva](c.do(ctx, request{method: http.MethodPut, path: idPath(reservasPath, id), body: p, auth: true}))
}

func (c *Client) DeleteReserva(ctx context.Context, id int64) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: idPath(reservasPath, id), auth: true})
	return err
}
