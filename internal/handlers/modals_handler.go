package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salas-reservas/internal/httpresp"
	"github.com/BruksfildServices01/salas-reservas/internal/middleware"
)

type ModalsHandler struct{}

func NewModalsHandler() *ModalsHandler {
	return &ModalsHandler{}
}

func (h *ModalsHandler) Snapshot(c *gin.Context) {
	ws := middleware.CurrentWorkspace(c)
	httpresp.OK(c, gin.H{
		"modals": ws.Modals.Snapshot(),
		"banner": ws.Banner.Current(),
	})
}

func (h *ModalsHandler) Reset(c *gin.Context) {
	middleware.CurrentWorkspace(c).Modals.Reset()
	httpresp.NoContent(c)
}
