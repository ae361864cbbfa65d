package apiclient

import (
	"context"
	"net/http"

	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

const salasPath = "/salas"

func (c *Client) ListSalas(ctx context.Context, f models.SalaFilters) ([]models.Sala, error) {
	return decodeList[models.Sala](c.do(ctx, request{method: http.MethodGet, path: salasPath, query: f.Query()}))
}

func (c *Client) GetSala(ctx context.Context, id int64) (*models.Sala, error) {
	return decodeOne[models.Sala](c.do(ctx, request{method: http.MethodGet, path: idPath(salasPath, id)}))
}

func (c *Client) CreateSala(ctx context.Context, p models.SalaPayload) (*models.Sala, error) {
	return decodeOne[models.Sala](c.do(ctx, request{method: http.MethodPost, path: salasPath, body: p}))
}

func (c *Client) UpdateSala(ctx context.Context, id int64, p models.SalaPayload) (*models.Sala, error) {
	return decodeOne[models.Sala](c.do(ctx, request{method: http.MethodPut, path: idPath(salasPath, id), body: p}))
}

func (c *Client) DeleteSala(ctx context.Context, id int64) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: idPath(salasPath, id)})
	return err
}
