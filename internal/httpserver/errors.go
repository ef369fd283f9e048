package httpserver

import (
	"errors"
	"net/http"

	"github.com/Skotchmaster/academic_records/internal/logging"
	"github.com/Skotchmaster/academic_records/internal/service"
	"github.com/Skotchmaster/academic_records/internal/transport"
	"github.com/labstack/echo/v4"
)

// validationHTTPError keeps the field list for the envelope.
type validationHTTPError struct {
	*echo.HTTPError
	fields []service.FieldError
}

func (e *validationHTTPError) Unwrap() error { return e.HTTPError }

// toHTTPError maps service errors onto statuses. Server-side failures get a
// generic message; the cause is already logged by the service.
func toHTTPError(err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return &validationHTTPError{
			HTTPError: echo.NewHTTPError(http.StatusBadRequest, "Validation failed"),
			fields:    ve.Fields,
		}
	case errors.Is(err, service.ErrInvalidRole):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid role specified")
	case errors.Is(err, service.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, "Email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrTimeout), errors.Is(err, service.ErrUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Service temporarily unavailable, retry later")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
}

// ErrorHandler renders every failure as {success:false, message, errors?}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	resp := transport.ErrorResponse{Success: false}
	code := http.StatusInternalServerError

	var vhe *validationHTTPError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &vhe):
		code = vhe.Code
		resp.Message = messageOf(vhe.HTTPError)
		resp.Errors = vhe.fields
	case errors.As(err, &he):
		code = he.Code
		resp.Message = messageOf(he)
		if code >= http.StatusInternalServerError && he.Internal != nil {
			// Internal details stay in the logs.
			resp.Message = http.StatusText(code)
		}
	default:
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "status", code, "error", err)
		resp.Message = "Server error"
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, resp)
}

func messageOf(he *echo.HTTPError) string {
	if s, ok := he.Message.(string); ok {
		return s
	}
	return http.StatusText(he.Code)
}
