package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

const (
	CtxAccountID = "account_id"
	CtxEmail     = "email"

	bearerPrefix = "Bearer "
)

const (
	MsgTokenRequired = "Authorization token required"
	MsgInvalidToken  = "Invalid token"
)

type BearerAuth struct {
	JWTSecret []byte
}

func NewBearerAuth(secret []byte) *BearerAuth {
	return &BearerAuth{JWTSecret: secret}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	tok := strings.TrimSpace(header[len(bearerPrefix):])
	if tok == "" {
		return "", false
	}
	return tok, true
}

// RequireAuth verifies the bearer token and stores the account id and email in the
// echo context. All verification failures collapse into one 401 message.
func (m *BearerAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("middleware", "bearer_auth")

		raw, ok := BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			l.Warn("auth_failed", "status", 401, "reason", "missing bearer token")
			return echo.NewHTTPError(http.StatusUnauthorized, MsgTokenRequired)
		}

		claims, err := tokens.SessionClaimsFromToken(raw, m.JWTSecret)
		if err != nil {
			l.Warn("auth_failed", "status", 401, "reason", "invalid token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, MsgInvalidToken)
		}
		id, _ := claims.AccountID()

		c.Set(CtxAccountID, id)
		c.Set(CtxEmail, claims.Email)

		return next(c)
	}
}

func AccountID(c echo.Context) (uint, bool) {
	id, ok := c.Get(CtxAccountID).(uint)
	return id, ok && id != 0
}
