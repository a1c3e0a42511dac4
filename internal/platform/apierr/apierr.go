package apierr

import (
	"errors"
	"fmt"
	"net/http"

	domainagg "github.com/yungbote/slotswapper-backend/internal/domain/aggregates"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

var statusByCode = map[domainagg.ErrorCode]int{
	domainagg.CodeNotFound:        http.StatusNotFound,
	domainagg.CodeForbidden:       http.StatusForbidden,
	domainagg.CodeInvalidState:    http.StatusConflict,
	domainagg.CodeInvalidStatus:   http.StatusBadRequest,
	domainagg.CodeConflict:        http.StatusConflict,
	domainagg.CodeUnauthenticated: http.StatusUnauthorized,
	domainagg.CodeValidation:      http.StatusBadRequest,
	domainagg.CodeRetryable:       http.StatusServiceUnavailable,
	domainagg.CodeInternal:        http.StatusInternalServerError,
}

// StatusFor returns the HTTP status an aggregate error code is rendered with.
func StatusFor(code domainagg.ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// From converts any error into an API error. Internal failures keep their
// cause but expose only a generic message.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	code := domainagg.CodeOf(err)
	if code == "" {
		code = domainagg.CodeInternal
	}
	if code == domainagg.CodeInternal {
		return New(http.StatusInternalServerError, string(code), errors.New("internal error"))
	}
	return New(StatusFor(code), string(code), errors.New(domainagg.MessageOf(err)))
}
