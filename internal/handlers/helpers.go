package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salas-reservas/internal/httperr"
)

// paramID reads a positive path id, answering 400 when it is not one.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido")
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.WriteDetails(c, http.StatusBadRequest, "invalid_request", "Dados inválidos", err.Error())
		return false
	}
	return true
}

func queryInt64(c *gin.Context, name string) int64 {
	v, _ := strconv.ParseInt(c.Query(name), 10, 64)
	return v
}

// details keeps a nil pointer out of an error body.
func details[T any](v *T) any {
	if v == nil {
		return nil
	}
	return v
}
