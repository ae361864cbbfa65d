package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

func (c *Client) ListUsuarios(ctx context.Context, search string, skip, limit int) ([]models.Usuario, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	if search != "" {
		q.Set("search", search)
	}
	return decodeList[models.Usuario](c.do(ctx, request{method: http.MethodGet, path: "/usuarios", query: q, auth: true}))
}

func (c *Client) SearchUsuarios(ctx context.Context, term string, limit int) ([]models.Usuario, error) {
	q := url.Values{}
	q.Set("q", term)
	q.Set("limit", strconv.Itoa(limit))
	return decodeList[models.Usuario](c.do(ctx, request{method: http.MethodGet, path: "/usuarios/search", query: q, auth: true}))
}
