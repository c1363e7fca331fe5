package http

import (
	"errors"
	"net/http"

	"pancakehouse/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusCode maps domain errors onto HTTP statuses. A caller asking for an
// order it cannot see gets 404, any other authorization failure 403.
func statusCode(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.Is(err, errs.ErrAuthenticationFailed):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrOrderNotFound), errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrAuthorizationFailed):
		return http.StatusForbidden
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrIllegalState):
		return http.StatusConflict
	case errors.As(err, &httpErr):
		return httpErr.Code
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(c echo.Context, err error) error {
	code := statusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		message = http.StatusText(code)
	}
	return c.JSON(code, Error{Code: code, Message: message})
}
