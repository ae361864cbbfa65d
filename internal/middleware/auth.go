package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salas-reservas/internal/httperr"
)

// RequireAuth rejects workspaces without a session token.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := CurrentWorkspace(c)
		if !ws.Session.IsAuthenticated() {
			httperr.Unauthorized(c, "not_authenticated", "Faça login para continuar")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin checks the session email against the allowlist as it is at
// request time.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := CurrentWorkspace(c)
		if !ws.Session.IsAuthenticated() {
			httperr.Unauthorized(c, "not_authenticated", "Faça login para continuar")
			c.Abort()
			return
		}
		if !ws.Session.IsAdmin() {
			httperr.Forbidden(c, "forbidden", "Você não tem permissão para acessar esta página")
			c.Abort()
			return
		}
		c.Next()
	}
}
