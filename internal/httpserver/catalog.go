package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/food_order/internal/repo"
	"github.com/Skotchmaster/food_order/internal/service"
	"github.com/Skotchmaster/food_order/internal/transport"
	"github.com/Skotchmaster/food_order/pkg/logging"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) ListDishes(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dish.list")

	order := c.QueryParam("order")
	f := repo.DishFilter{
		Name:     c.QueryParam("name"),
		Category: c.QueryParam("category"),
		SortBy:   c.QueryParam("sortBy"),
		Asc:      order == "asc" || order == "1",
	}
	offset, limit := page(c)

	total, items, err := h.Svc.ListDishes(ctx, viewer(c), f, offset, limit)
	if err != nil {
		return serviceError(l, "list_dishes_error", err)
	}
	return c.JSON(http.StatusOK, transport.Page(items, total))
}

func (h *CatalogHTTP) SearchDishes(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dish.search")

	offset, limit := page(c)
	total, items, err := h.Svc.SearchDishes(ctx, viewer(c), c.QueryParam("q"), offset, limit)
	if err != nil {
		return serviceError(l, "search_dishes_error", err)
	}
	return c.JSON(http.StatusOK, transport.Page(items, total))
}

func (h *CatalogHTTP) GetDish(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dish.get")

	id, err := pathID(c, "dish_id")
	if err != nil {
		return badRequest(l, "get_dish_error", "dish_id is not a valid id", err)
	}

	dish, err := h.Svc.GetDish(ctx, viewer(c), id)
	if err != nil {
		return serviceError(l, "get_dish_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(dish))
}

func (h *CatalogHTTP) CreateDish(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dish.create")

	var req transport.CreateDishRequest
	if err := c.Bind(&req); err != nil {
		return bindError(l, "create_dish_error", err)
	}

	dish, err := h.Svc.CreateDish(ctx, req)
	if err != nil {
		return serviceError(l, "create_dish_error", err)
	}

	l.Info("create_dish_success", "dish_id", dish.ID)
	return c.JSON(http.StatusCreated, transport.OK(dish))
}

func (h *CatalogHTTP) PatchDish(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dish.patch")

	id, err := pathID(c, "dish_id")
	if err != nil {
		return badRequest(l, "patch_dish_error", "dish_id is not a valid id", err)
	}

	var req transport.PatchDishRequest
	if err := c.Bind(&req); err != nil {
		return bindError(l, "patch_dish_error", err)
	}

	dish, err := h.Svc.PatchDish(ctx, id, req)
	if err != nil {
		return serviceError(l, "patch_dish_error", err)
	}

	l.Info("patch_dish_success", "dish_id", id)
	return c.JSON(http.StatusOK, transport.OK(dish))
}

func (h *CatalogHTTP) DeleteDish(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dish.delete")

	id, err := pathID(c, "dish_id")
	if err != nil {
		return badRequest(l, "delete_dish_error", "dish_id is not a valid id", err)
	}

	if err := h.Svc.DeleteDish(ctx, id); err != nil {
		return serviceError(l, "delete_dish_error", err)
	}

	l.Info("delete_dish_success", "dish_id", id)
	return c.JSON(http.StatusOK, transport.OK(nil))
}

func (h *CatalogHTTP) ListModifiers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "modifier.list")

	offset, limit := page(c)
	total, items, err := h.Svc.ListModifiers(ctx, viewer(c), c.QueryParam("name"), offset, limit)
	if err != nil {
		return serviceError(l, "list_modifiers_error", err)
	}
	return c.JSON(http.StatusOK, transport.Page(items, total))
}

func (h *CatalogHTTP) GetModifier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "modifier.get")

	id, err := pathID(c, "modifier_id")
	if err != nil {
		return badRequest(l, "get_modifier_error", "modifier_id is not a valid id", err)
	}

	mod, err := h.Svc.GetModifier(ctx, viewer(c), id)
	if err != nil {
		return serviceError(l, "get_modifier_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(mod))
}

func (h *CatalogHTTP) CreateModifier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "modifier.create")

	var req transport.CreateModifierRequest
	if err := c.Bind(&req); err != nil {
		return bindError(l, "create_modifier_error", err)
	}

	mod, err := h.Svc.CreateModifier(ctx, req)
	if err != nil {
		return serviceError(l, "create_modifier_error", err)
	}

	l.Info("create_modifier_success", "modifier_id", mod.ID)
	return c.JSON(http.StatusCreated, transport.OK(mod))
}

func (h *CatalogHTTP) PatchModifier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "modifier.patch")

	id, err := pathID(c, "modifier_id")
	if err != nil {
		return badRequest(l, "patch_modifier_error", "modifier_id is not a valid id", err)
	}

	var req transport.PatchModifierRequest
	if err := c.Bind(&req); err != nil {
		return bindError(l, "patch_modifier_error", err)
	}

	mod, err := h.Svc.PatchModifier(ctx, id, req)
	if err != nil {
		return serviceError(l, "patch_modifier_error", err)
	}

	l.Info("patch_modifier_success", "modifier_id", id)
	return c.JSON(http.StatusOK, transport.OK(mod))
}

func (h *CatalogHTTP) DeleteModifier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "modifier.delete")

	id, err := pathID(c, "modifier_id")
	if err != nil {
		return badRequest(l, "delete_modifier_error", "modifier_id is not a valid id", err)
	}

	if err := h.Svc.DeleteModifier(ctx, id); err != nil {
		return serviceError(l, "delete_modifier_error", err)
	}

	l.Info("delete_modifier_success", "modifier_id", id)
	return c.JSON(http.StatusOK, transport.OK(nil))
}
