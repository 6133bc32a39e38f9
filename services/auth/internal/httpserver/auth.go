package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/pkg/logging"
	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
	"github.com/Skotchmaster/storefront/services/auth/internal/service"
	"github.com/Skotchmaster/storefront/services/auth/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidBody)
	}

	account, err := h.Svc.Register(ctx, req)
	if err != nil {
		return toHTTPError(l, "register", err)
	}

	l.Info("register_success", "account_id", account.ID)
	return c.JSON(http.StatusCreated, transport.RegisterResponse{
		Success: true,
		Message: "Registration successful",
		User:    transport.NewAccountView(account),
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidBody)
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return toHTTPError(l, "login", err)
	}

	l.Info("login_successful", "account_id", res.Account.ID)
	return c.JSON(http.StatusOK, transport.LoginResponse{
		Success: true,
		Message: "Login successful",
		User:    transport.NewAccountView(res.Account),
		Token:   res.Token,
	})
}

// Me must run behind BearerAuth.RequireAuth.
func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_me")

	id, ok := middleware.AccountID(c)
	if !ok {
		l.Warn("me_failed", "status", 401, "reason", "no account in context")
		return echo.NewHTTPError(http.StatusUnauthorized, middleware.MsgInvalidToken)
	}

	account, err := h.Svc.Me(ctx, id)
	if err != nil {
		return toHTTPError(l, "me", err)
	}

	return c.JSON(http.StatusOK, transport.MeResponse{
		Success: true,
		User: transport.ProfileView{
			AccountView: transport.NewAccountView(account),
		},
	})
}
