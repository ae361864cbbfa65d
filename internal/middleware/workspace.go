package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salas-reservas/internal/workspace"
)

const ContextWorkspace = "workspace"

type CookieOptions struct {
	Name   string
	Secure bool
	MaxAge int
}

// WorkspaceMiddleware resolves the caller's workspace from the session
// cookie, issuing a fresh id when it is missing or not a uuid.
func WorkspaceMiddleware(reg *workspace.Registry, opts CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(opts.Name)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(opts.Name, id, opts.MaxAge, "/", "", opts.Secure, true)

		c.Set(ContextWorkspace, reg.Get(c.Request.Context(), id))
		c.Next()
	}
}

// CurrentWorkspace is only valid behind WorkspaceMiddleware.
func CurrentWorkspace(c *gin.Context) *workspace.Workspace {
	return c.MustGet(ContextWorkspace).(*workspace.Workspace)
}
