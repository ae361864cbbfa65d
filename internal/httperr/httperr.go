package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salas-reservas/internal/apiclient"
	"github.com/BruksfildServices01/salas-reservas/internal/validators"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

// WriteDetails is Write with an extra payload, e.g. the form error to show.
func WriteDetails(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// ===============================
// Error mapping
// ===============================

// FromError answers err with the status it carries: validation errors are
// 400, business errors use their own status, backend errors are relayed and
// an unreachable backend is 502.
func FromError(c *gin.Context, err error, details any) {
	var verr *validators.ValidationError
	if errors.As(err, &verr) {
		WriteDetails(c, http.StatusBadRequest, "validation_error", verr.Message, details)
		return
	}

	var be BusinessError
	if errors.As(err, &be) {
		status := be.Status
		if status == 0 {
			status = http.StatusUnprocessableEntity
		}
		msg := be.Message
		if msg == "" {
			msg = be.Code
		}
		WriteDetails(c, status, be.Code, msg, details)
		return
	}

	if apiErr, ok := apiclient.AsAPIError(err); ok {
		if apiErr.IsNetwork() {
			WriteDetails(c, http.StatusBadGateway, "backend_unreachable", apiErr.Message, details)
			return
		}
		WriteDetails(c, apiErr.Code, "backend_error", apiErr.Message, details)
		return
	}

	WriteDetails(c, http.StatusInternalServerError, "internal_error", "Erro interno", details)
}
