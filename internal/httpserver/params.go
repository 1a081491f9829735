package httpserver

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/food_order/internal/service"
	"github.com/Skotchmaster/food_order/internal/util"
	middleware "github.com/Skotchmaster/food_order/pkg/middleware/auth"
)

func viewer(c echo.Context) service.Viewer {
	return service.Viewer{UserID: middleware.UserID(c), Admin: middleware.IsAdmin(c)}
}

// page reads limit and page from the query and returns offset and limit.
func page(c echo.Context) (int, int) {
	p := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	return util.Calculate(p, size)
}

func pathID(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}
