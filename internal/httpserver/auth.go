package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/food_order/internal/models"
	"github.com/Skotchmaster/food_order/internal/service"
	"github.com/Skotchmaster/food_order/internal/transport"
	"github.com/Skotchmaster/food_order/pkg/logging"
	middleware "github.com/Skotchmaster/food_order/pkg/middleware/auth"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

type authResource struct {
	*models.User
	AccessToken string `json:"access_token,omitempty"`
	IsAdmin     bool   `json:"is_admin"`
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return bindError(l, "register_error", err)
	}

	res, err := h.Svc.Register(ctx, req)
	if err != nil {
		return serviceError(l, "register_error", err)
	}

	l.Info("register_success", "user_id", res.User.ID)
	return c.JSON(http.StatusCreated, transport.OK(authResource{User: res.User, AccessToken: res.AccessToken, IsAdmin: res.IsAdmin}))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return bindError(l, "login_error", err)
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		return serviceError(l, "login_error", err)
	}

	l.Info("login_success", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, transport.OK(authResource{User: res.User, AccessToken: res.AccessToken, IsAdmin: res.IsAdmin}))
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.me")

	user, err := h.Svc.Me(ctx, middleware.UserID(c))
	if err != nil {
		return serviceError(l, "me_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(authResource{User: user, IsAdmin: user.Admin}))
}

func (h *AuthHTTP) RefreshToken(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	res, err := h.Svc.Refresh(ctx, middleware.UserID(c))
	if err != nil {
		return serviceError(l, "refresh_error", err)
	}

	l.Info("refresh_success", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, transport.OK(map[string]any{"access_token": res.AccessToken}))
}
