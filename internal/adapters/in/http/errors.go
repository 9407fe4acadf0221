package http

import (
	"errors"
	"net/http"

	"handoff/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrExpiredLink), errors.Is(err, errs.ErrRevokedLink):
		return http.StatusGone
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrAlreadyAttested),
		errors.Is(err, errs.ErrConfirmationClosed),
		errors.Is(err, errs.ErrLinkAlreadyUsed),
		errors.Is(err, errs.ErrRecordBusy):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidAttestation),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error body. Internal errors are logged and their
// details are not exposed.
func (s *Server) fail(c echo.Context, err error) error {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		return c.JSON(code, Error{Code: code, Message: "internal error"})
	}
	return c.JSON(code, Error{Code: code, Message: err.Error()})
}
