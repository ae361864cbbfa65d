package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salas-reservas/internal/httperr"
	"github.com/BruksfildServices01/salas-reservas/internal/httpresp"
	"github.com/BruksfildServices01/salas-reservas/internal/infra/repository"
	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLister interface {
	List(ctx context.Context, f repository.AuditFilter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	repo   AuditLister
	logger *zap.Logger
}

// NewAuditLogsHandler takes a nil repo when no database is configured.
func NewAuditLogsHandler(repo AuditLister, logger *zap.Logger) *AuditLogsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditLogsHandler{repo: repo, logger: logger}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	if h.repo == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "audit_disabled", "Auditoria desativada.")
		return
	}

	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "50")

	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := repository.AuditFilter{
		Action:    c.Query("action"),
		Entity:    c.Query("entity"),
		UserEmail: c.Query("user_email"),
		Page:      page,
		Limit:     limit,
	}

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			f.From = from
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			f.To = to.Add(24 * time.Hour)
		}
	}

	logs, total, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		h.logger.Error("audit list failed", zap.Error(err))
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Page(c, page, limit, total, logs)
}
