package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/services/auth/internal/service"
	"github.com/Skotchmaster/storefront/services/auth/internal/transport"
)

const (
	MsgCredentialsRequired = "Email and password are required"
	MsgInvalidBody         = "Invalid request body"
	MsgInvalidCredentials  = "Invalid email or password"
	MsgAccountDeactivated  = "Account is deactivated"
	MsgUserNotFound        = "User not found"
	MsgUserExists          = "User already exists"
	MsgInternal            = "Internal server error"
)

// toHTTPError maps service errors onto the fixed public messages.
func toHTTPError(l *slog.Logger, op string, err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, MsgCredentialsRequired)
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, MsgInvalidCredentials)
	case errors.Is(err, service.ErrAccountDeactivated):
		return echo.NewHTTPError(http.StatusUnauthorized, MsgAccountDeactivated)
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, MsgUserNotFound)
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, MsgUserExists)
	}
	l.Error(op+"_failed", "status", 500, "reason", "internal error", "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, MsgInternal).SetInternal(err)
}

// ErrorHandler renders every error as {"error": "<message>"}; 5xx details never leave the process.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := MsgInternal

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(code)
		}
	}
	if code >= http.StatusInternalServerError {
		msg = MsgInternal
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, transport.ErrorResponse{Error: msg})
	}
	if werr != nil {
		logging.FromContext(c.Request().Context()).Error("error_response_failed", "error", werr)
	}
}
