package apiclient

import (
	"context"
	"net/http"

	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

const locaisPath = "/locais"

func (c *Client) ListLocais(ctx context.Context, f models.LocalFilters) ([]models.Local, error) {
	return decodeList[models.Local](c.do(ctx, request{method: http.MethodGet, path: locaisPath, query: f.Query()}))
}

func (c *Client) GetLocal(ctx context.Context, id int64) (*models.Local, error) {
	return decodeOne[models.Local](c.do(ctx, request{method: http.MethodGet, path: idPath(locaisPath, id)}))
}

func (c *Client) CreateLocal(ctx context.Context, data models.LocalFormData) (*models.Local, error) {
	return decodeOne[models.Local](c.do(ctx, request{method: http.MethodPost, path: locaisPath, body: data}))
}

func (c *Client) UpdateLocal(ctx context.Context, id int64, data models.LocalFormData) (*models.Local, error) {
	return decodeOne[models.Local](c.do(ctx, request{method: http.MethodPut, path: idPath(locaisPath, id), body: data}))
}

func (c *Client) DeleteLocal(ctx context.Context, id int64) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: idPath(locaisPath, id)})
	return err
}
