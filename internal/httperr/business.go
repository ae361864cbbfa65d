package httperr

import "net/http"

// BusinessError is a rule violation raised by the BFF itself.
type BusinessError struct {
	Code    string
	Status  int
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

// NewBusiness builds a BusinessError answered with status and message.
func NewBusiness(status int, code, message string) BusinessError {
	if status == 0 {
		status = http.StatusUnprocessableEntity
	}
	return BusinessError{Code: code, Status: status, Message: message}
}
