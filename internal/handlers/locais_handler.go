package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salas-reservas/internal/httperr"
	"github.com/BruksfildServices01/salas-reservas/internal/httpresp"
	"github.com/BruksfildServices01/salas-reservas/internal/middleware"
	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

type LocaisHandler struct{}

func NewLocaisHandler() *LocaisHandler {
	return &LocaisHandler{}
}

func (h *LocaisHandler) View(c *gin.Context) {
	ws := middleware.CurrentWorkspace(c)
	view, err := ws.Locais.View(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err, nil)
		return
	}
	httpresp.OK(c, view)
}

// OpenForm opens the create form, or the edit form when the path has an id.
func (h *LocaisHandler) OpenForm(c *gin.Context) {
	var id int64
	if c.Param("id") != "" {
		var ok bool
		if id, ok = paramID(c, "id"); !ok {
			return
		}
	}

	ws := middleware.CurrentWorkspace(c)
	if err := ws.Locais.OpenForm(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err, nil)
		return
	}
	httpresp.OK(c, ws.Modals.Snapshot().LocalForm)
}

func (h *LocaisHandler) CloseForm(c *gin.Context) {
	middleware.CurrentWorkspace(c).Locais.CloseForm()
	httpresp.NoContent(c)
}

func (h *LocaisHandler) Submit(c *gin.Context) {
	var data models.LocalFormData
	if !bindJSON(c, &data) {
		return
	}

	ws := middleware.CurrentWorkspace(c)
	editing := ws.Modals.Snapshot().LocalForm.Data != nil

	saved, err := ws.Locais.Submit(c.Request.Context(), data)
	if err != nil {
		httperr.FromError(c, err, details(ws.Modals.Snapshot().LocalForm.Error))
		return
	}

	status := http.StatusCreated
	if editing {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"local":  saved,
		"banner": ws.Banner.Current(),
	})
}

func (h *LocaisHandler) OpenDelete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ws := middleware.CurrentWorkspace(c)
	if err := ws.Locais.OpenDelete(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err, nil)
		return
	}
	httpresp.OK(c, ws.Modals.Snapshot().LocalDelete)
}

func (h *LocaisHandler) CloseDelete(c *gin.Context) {
	middleware.CurrentWorkspace(c).Locais.CloseDelete()
	httpresp.NoContent(c)
}

func (h *LocaisHandler) ConfirmDelete(c *gin.Context) {
	ws := middleware.CurrentWorkspace(c)
	if err := ws.Locais.ConfirmDelete(c.Request.Context()); err != nil {
		httperr.FromError(c, err, details(ws.Banner.Current()))
		return
	}
	httpresp.OK(c, gin.H{"banner": ws.Banner.Current()})
}
