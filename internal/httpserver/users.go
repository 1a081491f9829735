package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/food_order/internal/service"
	"github.com/Skotchmaster/food_order/internal/transport"
	"github.com/Skotchmaster/food_order/pkg/logging"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	offset, limit := page(c)
	total, users, err := h.Svc.ListUsers(ctx, offset, limit)
	if err != nil {
		return serviceError(l, "list_users_error", err)
	}
	return c.JSON(http.StatusOK, transport.Page(users, total))
}

func (h *UserHTTP) BlockUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.block")

	id, err := pathID(c, "user_id")
	if err != nil {
		return badRequest(l, "block_user_error", "user_id is not a valid id", err)
	}

	user, err := h.Svc.BlockUser(ctx, id)
	if err != nil {
		return serviceError(l, "block_user_error", err)
	}

	l.Info("block_user_success", "user_id", id)
	return c.JSON(http.StatusOK, transport.OK(user))
}
