package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salas-reservas/internal/audit"
	"github.com/BruksfildServices01/salas-reservas/internal/config"
	"github.com/BruksfildServices01/salas-reservas/internal/httperr"
	"github.com/BruksfildServices01/salas-reservas/internal/httpresp"
	"github.com/BruksfildServices01/salas-reservas/internal/middleware"
	"github.com/BruksfildServices01/salas-reservas/internal/session"
	"github.com/BruksfildServices01/salas-reservas/internal/workspace"
)

type AuthHandler struct {
	config *config.Config
	audit  audit.Recorder
}

func NewAuthHandler(cfg *config.Config, rec audit.Recorder) *AuthHandler {
	if rec == nil {
		rec = audit.Nop()
	}
	return &AuthHandler{config: cfg, audit: rec}
}

// --------- Requests ---------

type LoginRequest struct {
	Credential string `json:"credential" binding:"required"`
}

type MeResponse struct {
	Authenticated bool          `json:"authenticated"`
	IsAdmin       bool          `json:"is_admin"`
	User          *session.User `json:"user"`
}

func me(ws *workspace.Workspace) MeResponse {
	return MeResponse{
		Authenticated: ws.Session.IsAuthenticated(),
		IsAdmin:       ws.Session.IsAdmin(),
		User:          ws.Session.User(),
	}
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	ws := middleware.CurrentWorkspace(c)
	res := ws.Session.Login(c.Request.Context(), req.Credential)
	if !res.Success {
		httperr.Unauthorized(c, "login_failed", res.Error)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserEmail: ws.Session.Email(),
		Action:    audit.ActionLogin,
		Entity:    audit.EntitySession,
	})

	httpresp.OK(c, me(ws))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ws := middleware.CurrentWorkspace(c)
	email := ws.Session.Email()

	ws.Session.Logout(c.Request.Context())
	ws.Modals.Reset()
	ws.Banner.Clear()

	if email != "" {
		h.audit.Dispatch(audit.Event{
			UserEmail: email,
			Action:    audit.ActionLogout,
			Entity:    audit.EntitySession,
		})
	}

	httpresp.NoContent(c)
}

func (h *AuthHandler) Me(c *gin.Context) {
	httpresp.OK(c, me(middleware.CurrentWorkspace(c)))
}

// Config is what the browser shell needs before login.
func (h *AuthHandler) Config(c *gin.Context) {
	httpresp.OK(c, gin.H{
		"google_client_id": h.config.GoogleClientID,
		"api_base_url":     h.config.APIBaseURL,
	})
}
