package httpserver

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/food_order/internal/service"
	"github.com/Skotchmaster/food_order/internal/transport"
	"github.com/Skotchmaster/food_order/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	offset, limit := page(c)
	total, orders, err := h.Svc.ListOrders(ctx, viewer(c), c.QueryParam("cancel") == "true", offset, limit)
	if err != nil {
		return serviceError(l, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, transport.Page(orders, total))
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	return h.place(c, false)
}

func (h *OrderHTTP) Checkout(c echo.Context) error {
	return h.place(c, true)
}

func (h *OrderHTTP) place(c echo.Context, preview bool) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place", "preview", preview)

	var req transport.OrderRequest
	if err := c.Bind(&req); err != nil {
		return bindError(l, "place_order_error", err)
	}

	v := viewer(c)
	if !v.Admin && !ownsRequest(v, req.UserID) {
		return serviceError(l, "place_order_error", service.ErrForbidden)
	}

	order, err := h.Svc.Place(ctx, req, preview)
	if err != nil {
		return serviceError(l, "place_order_error", err)
	}

	if preview {
		return c.JSON(http.StatusOK, transport.OK(order))
	}
	l.Info("place_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, transport.OK(order))
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel")

	id, err := pathID(c, "order_id")
	if err != nil {
		return serviceError(l, "cancel_order_error", service.ErrStatusConflict)
	}

	order, err := h.Svc.Cancel(ctx, viewer(c), id)
	if err != nil {
		return serviceError(l, "cancel_order_error", err)
	}

	l.Info("cancel_order_success", "order_id", id)
	return c.JSON(http.StatusOK, transport.OK(order))
}

// ownsRequest reports whether a user_id in the body names the caller. A missing
// or malformed id is left for validation to report.
func ownsRequest(v service.Viewer, userID string) bool {
	id, err := uuid.Parse(strings.TrimSpace(userID))
	if err != nil {
		return true
	}
	caller, err := uuid.Parse(v.UserID)
	return err == nil && caller == id
}
