package apiclient

import (
	"context"
	"net/http"

	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

type googleLoginRequest struct {
	Token string `json:"token"`
}

// LoginWithGoogle exchanges a Google ID token for a backend token.
func (c *Client) LoginWithGoogle(ctx context.Context, idToken string) (*models.AuthResponse, error) {
	return decodeOne[models.AuthResponse](c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/google",
		body:   googleLoginRequest{Token: idToken},
	}))
}
