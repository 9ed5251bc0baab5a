package apperrors

import (
	"fmt"
	"net/http"
)

// Error is the application error carried from services up to the HTTP layer.
// Code is the HTTP status the handler should respond with.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// NewValidation marks a malformed client request.
func NewValidation(message string, err error) *Error {
	return New(http.StatusBadRequest, message, err)
}

// NewUpstream marks a payment-provider failure. Not retried here; the caller
// decides what to do with the 5xx.
func NewUpstream(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}

// NewSignature marks a webhook signature-verification failure. Must surface as
// a 400 so Stripe's redelivery kicks in.
func NewSignature(err error) *Error {
	return New(http.StatusBadRequest, "webhook signature verification failed", err)
}
