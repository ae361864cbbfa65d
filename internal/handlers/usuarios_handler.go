package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salas-reservas/internal/httperr"
	"github.com/BruksfildServices01/salas-reservas/internal/httpresp"
	"github.com/BruksfildServices01/salas-reservas/internal/middleware"
)

type UsuariosHandler struct{}

func NewUsuariosHandler() *UsuariosHandler {
	return &UsuariosHandler{}
}

// View lists registered users; ?page is zero-based.
func (h *UsuariosHandler) View(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))

	ws := middleware.CurrentWorkspace(c)
	view, err := ws.Usuarios.View(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		httperr.FromError(c, err, view)
		return
	}
	httpresp.OK(c, view)
}
