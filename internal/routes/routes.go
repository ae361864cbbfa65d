package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salas-reservas/internal/audit"
	"github.com/BruksfildServices01/salas-reservas/internal/config"
	"github.com/BruksfildServices01/salas-reservas/internal/handlers"
	"github.com/BruksfildServices01/salas-reservas/internal/httperr"
	"github.com/BruksfildServices01/salas-reservas/internal/middleware"
	"github.com/BruksfildServices01/salas-reservas/internal/workspace"
)

// Deps are the singletons the routes share. AuditLogs is nil when no
// database is configured.
type Deps struct {
	Config    *config.Config
	Registry  *workspace.Registry
	Audit     audit.Recorder
	AuditLogs handlers.AuditLister
	Logger    *zap.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.NoRoute(func(c *gin.Context) {
		httperr.NotFound(c, "route_not_found", "Rota não encontrada")
	})

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Config, d.Audit)
	reservasHandler := handlers.NewReservasHandler()
	participantesHandler := handlers.NewParticipantesHandler()
	locaisHandler := handlers.NewLocaisHandler()
	salasHandler := handlers.NewSalasHandler()
	usuariosHandler := handlers.NewUsuariosHandler()
	modalsHandler := handlers.NewModalsHandler()
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs, d.Logger)

	// ======================================================
	// API (JSON)
	// ======================================================
	r.GET("/api/config", authHandler.Config)

	api := r.Group("/api")
	api.Use(middleware.WorkspaceMiddleware(d.Registry, middleware.CookieOptions{
		Name:   d.Config.CookieName,
		Secure: d.Config.CookieSecure,
		MaxAge: int(d.Config.SessionTTL.Seconds()),
	}))
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.GET("/me", authHandler.Me)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.RequireAuth())
		{
			secured.GET("/modals", modalsHandler.Snapshot)
			secured.DELETE("/modals", modalsHandler.Reset)

			secured.GET("/reservas", reservasHandler.View)
			secured.GET("/reservas/form-options", reservasHandler.FormOptions)

			secured.POST("/reservas/form", reservasHandler.OpenCreate)
			secured.DELETE("/reservas/form", reservasHandler.CloseForm)
			secured.POST("/reservas/form/submit", reservasHandler.Submit)
			secured.POST("/reservas/:id/edit", reservasHandler.OpenEdit)

			secured.POST("/reservas/:id/delete", reservasHandler.OpenDelete)
			secured.DELETE("/reservas/delete", reservasHandler.CloseDelete)
			secured.POST("/reservas/delete/confirm", reservasHandler.ConfirmDelete)

			// ------------------------------
			// PARTICIPANTS
			// ------------------------------
			secured.POST("/reservas/:id/participantes/open", reservasHandler.OpenParticipants)
			secured.DELETE("/reservas/participantes", reservasHandler.CloseParticipants)
			secured.GET("/reservas/:id/participantes", participantesHandler.List)
			secured.POST("/reservas/:id/participantes", participantesHandler.Add)
			secured.DELETE("/reservas/:id/participantes/:participanteId", participantesHandler.Remove)
			secured.GET("/usuarios/search", participantesHandler.SearchUsers)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/locais", locaisHandler.View)
			admin.POST("/locais/form", locaisHandler.OpenForm)
			admin.DELETE("/locais/form", locaisHandler.CloseForm)
			admin.POST("/locais/form/submit", locaisHandler.Submit)
			admin.POST("/locais/:id/edit", locaisHandler.OpenForm)
			admin.POST("/locais/:id/delete", locaisHandler.OpenDelete)
			admin.DELETE("/locais/delete", locaisHandler.CloseDelete)
			admin.POST("/locais/delete/confirm", locaisHandler.ConfirmDelete)

			admin.GET("/salas", salasHandler.View)
			admin.POST("/salas/form", salasHandler.OpenForm)
			admin.DELETE("/salas/form", salasHandler.CloseForm)
			admin.POST("/salas/form/submit", salasHandler.Submit)
			admin.POST("/salas/:id/edit", salasHandler.OpenForm)
			admin.POST("/salas/:id/delete", salasHandler.OpenDelete)
			admin.DELETE("/salas/delete", salasHandler.CloseDelete)
			admin.POST("/salas/delete/confirm", salasHandler.ConfirmDelete)

			admin.GET("/usuarios", usuariosHandler.View)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
