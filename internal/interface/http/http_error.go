package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/auth"
	"github.com/space-cap/saju-lotto-firebase/internal/domain/fortune"
	"github.com/space-cap/saju-lotto-firebase/internal/domain/saju"
	"github.com/space-cap/saju-lotto-firebase/internal/domain/ticket"
	apperrors "github.com/space-cap/saju-lotto-firebase/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

var statusByCode = map[string]int{
	saju.CodeInvalidBirthInput:        http.StatusBadRequest,
	saju.CodeLunarConversionUncertain: http.StatusUnprocessableEntity,
	saju.CodeTableLookupGap:           http.StatusInternalServerError,
	fortune.CodeInvalidRequest:        http.StatusBadRequest,
	fortune.CodeFortuneError:          http.StatusInternalServerError,
	auth.CodeInvalidInput:             http.StatusBadRequest,
	auth.CodeInvalidCredentials:       http.StatusUnauthorized,
	auth.CodeInvalidToken:             http.StatusUnauthorized,
	auth.CodeEmailExists:              http.StatusConflict,
	auth.CodeMemberNotFound:           http.StatusNotFound,
	ticket.CodeInvalidTicket:          http.StatusBadRequest,
	ticket.CodeInvalidDraw:            http.StatusBadRequest,
	ticket.CodeNotFound:               http.StatusNotFound,
	ticket.CodeNoDraw:                 http.StatusNotFound,
	ticket.CodeRoundExists:            http.StatusConflict,
	ticket.CodeLimitReached:           http.StatusConflict,
}

// fromDomainError maps a service error onto a response. Unknown codes are
// reported as internal errors without leaking the cause.
func fromDomainError(err error) *HTTPError {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return NewHTTPError(http.StatusInternalServerError, "internal_error", "something went wrong", err)
	}
	status, known := statusByCode[appErr.Code]
	if !known || status >= http.StatusInternalServerError {
		if !known {
			status = http.StatusInternalServerError
		}
		return NewHTTPError(status, appErr.Code, "something went wrong", err)
	}
	return NewHTTPError(status, appErr.Code, appErr.Message, err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return fromDomainError(err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

// fail reports a service error through the error middleware.
func fail(c *gin.Context, err error) {
	abortWithError(c, fromDomainError(err))
}

func badRequest(c *gin.Context, err error) {
	abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
