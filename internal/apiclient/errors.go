package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	databaseErrorCode = "DATABASE_ERROR"

	msgDatabaseUnreachable = "Erro ao conectar com o banco de dados. Verifique se o serviço está rodando."
	msgDatabaseGeneric     = "Erro no banco de dados. Tente novamente mais tarde."
	msgNetwork             = "Não foi possível conectar ao servidor. Verifique sua conexão."
)

// APIError is the typed error for every non-2xx answer (and for transport
// failures, where Code is 0).
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// IsNetwork reports a failure that never produced an HTTP response.
func (e *APIError) IsNetwork() bool {
	return e.Code == 0
}

func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Code
	}
	return 0
}

// MessageOr returns the API message carried by err, falling back to def.
func MessageOr(err error, def string) string {
	if apiErr, ok := AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return def
}

func networkError(err error) *APIError {
	return &APIError{Code: 0, Message: msgNetwork, Details: err.Error()}
}

// decodeError builds an APIError from a non-2xx response body.
func decodeError(resp *http.Response, raw []byte) *APIError {
	statusText := statusTextOf(resp)

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		body = map[string]any{"message": statusText}
	}

	backendMessage, _ := body["message"].(string)
	message := backendMessage
	if message == "" {
		message = detailText(body["detail"])
	}
	if message == "" {
		message = statusText
	}

	if code, _ := body["code"].(string); code == databaseErrorCode {
		switch {
		case strings.Contains(backendMessage, "conectar"), strings.Contains(backendMessage, "banco de dados"):
			message = msgDatabaseUnreachable
		case backendMessage != "":
			message = backendMessage
		default:
			message = msgDatabaseGeneric
		}
	}

	var details any = body
	if d, ok := body["details"]; ok && d != nil {
		details = d
	}

	return &APIError{
		Code:    resp.StatusCode,
		Message: message,
		Details: details,
	}
}

// detailText flattens a "detail" field, which is either a string or a list
// of validation entries carrying "msg".
func detailText(v any) string {
	switch d := v.(type) {
	case string:
		return d
	case []any:
		msgs := make([]string, 0, len(d))
		for _, item := range d {
			if m, ok := item.(map[string]any); ok {
				if s, ok := m["msg"].(string); ok && s != "" {
					msgs = append(msgs, s)
				}
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

func statusTextOf(resp *http.Response) string {
	if text, ok := strings.CutPrefix(resp.Status, fmt.Sprintf("%d ", resp.StatusCode)); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
