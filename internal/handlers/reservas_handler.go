package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salas-reservas/internal/httperr"
	"github.com/BruksfildServices01/salas-reservas/internal/httpresp"
	"github.com/BruksfildServices01/salas-reservas/internal/middleware"
	"github.com/BruksfildServices01/salas-reservas/internal/modal"
	"github.com/BruksfildServices01/salas-reservas/internal/models"
	"github.com/BruksfildServices01/salas-reservas/internal/usecase/reservas"
)

// ======================================================
// HANDLER
// ======================================================

type ReservasHandler struct{}

func NewReservasHandler() *ReservasHandler {
	return &ReservasHandler{}
}

// ======================================================
// VIEW
// ======================================================

func (h *ReservasHandler) View(c *gin.Context) {
	var f reservas.Filters
	if err := c.ShouldBindQuery(&f); err != nil {
		httperr.BadRequest(c, "invalid_filters", "Filtros inválidos")
		return
	}

	ws := middleware.CurrentWorkspace(c)
	view, err := ws.Reservas.View(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, err, nil)
		return
	}
	httpresp.OK(c, view)
}

func (h *ReservasHandler) FormOptions(c *gin.Context) {
	ws := middleware.CurrentWorkspace(c)
	httpresp.OK(c, ws.Reservas.FormOptions(c.Request.Context(), queryInt64(c, "local_id")))
}

// ======================================================
// FORM DIALOG
// ======================================================

func (h *ReservasHandler) OpenCreate(c *gin.Context) {
	ws := middleware.CurrentWorkspace(c)
	ws.Reservas.OpenCreate()
	httpresp.OK(c, ws.Modals.Snapshot().ReservationForm)
}

func (h *ReservasHandler) OpenEdit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ws := middleware.CurrentWorkspace(c)
	if err := ws.Reservas.OpenEdit(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err, nil)
		return
	}
	httpresp.OK(c, ws.Modals.Snapshot().ReservationForm)
}

func (h *ReservasHandler) CloseForm(c *gin.Context) {
	middleware.CurrentWorkspace(c).Reservas.CloseForm()
	httpresp.NoContent(c)
}

// Submit saves the open form. Failures carry the form error to show in
// details; the dialog stays open with the submitted values.
func (h *ReservasHandler) Submit(c *gin.Context) {
	var form models.ReservaForm
	if !bindJSON(c, &form) {
		return
	}

	ws := middleware.CurrentWorkspace(c)
	editing := ws.Modals.Snapshot().ReservationForm.Mode == modal.ModeEdit

	saved, err := ws.Reservas.Submit(c.Request.Context(), form)
	if err != nil {
		httperr.FromError(c, err, details(ws.Modals.Snapshot().ReservationForm.Error))
		return
	}

	status := http.StatusCreated
	if editing {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"reserva": saved,
		"banner":  ws.Banner.Current(),
	})
}

// ======================================================
// DELETE DIALOG
// ======================================================

func (h *ReservasHandler) OpenDelete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ws := middleware.CurrentWorkspace(c)
	if err := ws.Reservas.OpenDelete(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err, nil)
		return
	}
	httpresp.OK(c, ws.Modals.Snapshot().ReservationDelete)
}

func (h *ReservasHandler) CloseDelete(c *gin.Context) {
	middleware.CurrentWorkspace(c).Reservas.CloseDelete()
	httpresp.NoContent(c)
}

func (h *ReservasHandler) ConfirmDelete(c *gin.Context) {
	ws := middleware.CurrentWorkspace(c)
	if err := ws.Reservas.ConfirmDelete(c.Request.Context()); err != nil {
		httperr.FromError(c, err, details(ws.Banner.Current()))
		return
	}
	httpresp.OK(c, gin.H{"banner": ws.Banner.Current()})
}

// ======================================================
// PARTICIPANTS DIALOG
// ======================================================

func (h *ReservasHandler) OpenParticipants(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ws := middleware.CurrentWorkspace(c)
	if err := ws.Reservas.OpenParticipants(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err, nil)
		return
	}
	view, _ := ws.Participantes.List(c.Request.Context(), id)
	httpresp.OK(c, view)
}

func (h *ReservasHandler) CloseParticipants(c *gin.Context) {
	middleware.CurrentWorkspace(c).Reservas.CloseParticipants()
	httpresp.NoContent(c)
}
