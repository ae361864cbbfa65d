package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salas-reservas/internal/httperr"
	"github.com/BruksfildServices01/salas-reservas/internal/httpresp"
	"github.com/BruksfildServices01/salas-reservas/internal/middleware"
	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

type SalasHandler struct{}

func NewSalasHandler() *SalasHandler {
	return &SalasHandler{}
}

// View lists rooms, optionally only those of ?local_id.
func (h *SalasHandler) View(c *gin.Context) {
	ws := middleware.CurrentWorkspace(c)
	view, err := ws.Salas.View(c.Request.Context(), queryInt64(c, "local_id"))
	if err != nil {
		httperr.FromError(c, err, nil)
		return
	}
	httpresp.OK(c, view)
}

func (h *SalasHandler) OpenForm(c *gin.Context) {
	var id int64
	if c.Param("id") != "" {
		var ok bool
		if id, ok = paramID(c, "id"); !ok {
			return
		}
	}

	ws := middleware.CurrentWorkspace(c)
	if err := ws.Salas.OpenForm(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err, nil)
		return
	}
	httpresp.OK(c, ws.Modals.Snapshot().SalaForm)
}

func (h *SalasHandler) CloseForm(c *gin.Context) {
	middleware.CurrentWorkspace(c).Salas.CloseForm()
	httpresp.NoContent(c)
}

func (h *SalasHandler) Submit(c *gin.Context) {
	var data models.SalaFormData
	if !bindJSON(c, &data) {
		return
	}

	ws := middleware.CurrentWorkspace(c)
	editing := ws.Modals.Snapshot().SalaForm.Data != nil

	saved, err := ws.Salas.Submit(c.Request.Context(), data)
	if err != nil {
		httperr.FromError(c, err, details(ws.Modals.Snapshot().SalaForm.Error))
		return
	}

	status := http.StatusCreated
	if editing {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"sala":   saved,
		"banner": ws.Banner.Current(),
	})
}

func (h *SalasHandler) OpenDelete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ws := middleware.CurrentWorkspace(c)
	if err := ws.Salas.OpenDelete(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err, nil)
		return
	}
	httpresp.OK(c, ws.Modals.Snapshot().SalaDelete)
}

func (h *SalasHandler) CloseDelete(c *gin.Context) {
	middleware.CurrentWorkspace(c).Salas.CloseDelete()
	httpresp.NoContent(c)
}

func (h *SalasHandler) ConfirmDelete(c *gin.Context) {
	ws := middleware.CurrentWorkspace(c)
	if err := ws.Salas.ConfirmDelete(c.Request.Context()); err != nil {
		httperr.FromError(c, err, details(ws.Banner.Current()))
		return
	}
	httpresp.OK(c, gin.H{"banner": ws.Banner.Current()})
}
