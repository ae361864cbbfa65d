package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salas-reservas/internal/httperr"
	"github.com/BruksfildServices01/salas-reservas/internal/httpresp"
	"github.com/BruksfildServices01/salas-reservas/internal/middleware"
	"github.com/BruksfildServices01/salas-reservas/internal/models"
	"github.com/BruksfildServices01/salas-reservas/internal/usecase/participantes"
)

type ParticipantesHandler struct{}

func NewParticipantesHandler() *ParticipantesHandler {
	return &ParticipantesHandler{}
}

type AddParticipanteRequest struct {
	UsuarioID  *int64  `json:"usuario_id"`
	NomeManual *string `json:"nome_manual"`
}

type panelError struct {
	Message string             `json:"message"`
	View    participantes.View `json:"view"`
}

func (h *ParticipantesHandler) List(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ws := middleware.CurrentWorkspace(c)
	view, err := ws.Participantes.List(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err, view)
		return
	}
	httpresp.OK(c, view)
}

func (h *ParticipantesHandler) Add(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req AddParticipanteRequest
	if !bindJSON(c, &req) {
		return
	}

	ws := middleware.CurrentWorkspace(c)
	view, err := ws.Participantes.Add(c.Request.Context(), models.ParticipantePayload{
		ReservaID:  id,
		UsuarioID:  req.UsuarioID,
		NomeManual: req.NomeManual,
	})
	if err != nil {
		httperr.FromError(c, err, panelError{
			Message: participantes.ErrorMessage(err, true),
			View:    ws.Participantes.Current(),
		})
		return
	}
	httpresp.Created(c, view)
}

// Remove needs ?confirm=true; without it nothing reaches the backend.
func (h *ParticipantesHandler) Remove(c *gin.Context) {
	reservaID, ok := paramID(c, "id")
	if !ok {
		return
	}
	id, ok := paramID(c, "participanteId")
	if !ok {
		return
	}
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))

	ws := middleware.CurrentWorkspace(c)
	view, err := ws.Participantes.Remove(c.Request.Context(), reservaID, id, confirmed)
	if err != nil {
		httperr.FromError(c, err, panelError{
			Message: participantes.ErrorMessage(err, false),
			View:    ws.Participantes.Current(),
		})
		return
	}
	httpresp.OK(c, view)
}

func (h *ParticipantesHandler) SearchUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	ws := middleware.CurrentWorkspace(c)
	res, err := ws.Participantes.SearchUsers(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		httperr.FromError(c, err, nil)
		return
	}
	httpresp.OK(c, res)
}
