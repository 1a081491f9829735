package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/food_order/internal/events"
	"github.com/Skotchmaster/food_order/internal/push"
	"github.com/Skotchmaster/food_order/pkg/db"
	"github.com/Skotchmaster/food_order/pkg/metrics"
	middleware "github.com/Skotchmaster/food_order/pkg/middleware/auth"
)

type Deps struct {
	Auth    *AuthHTTP
	Users   *UserHTTP
	Catalog *CatalogHTTP
	Orders  *OrderHTTP

	DB        *gorm.DB
	Hub       *push.Hub
	JWTSecret []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context(), d.DB); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable").SetInternal(err)
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	if d.Hub != nil {
		e.GET("/ws/orders", d.Hub.Handler(events.OrdersChannel))
	}

	authMW := middleware.NewTokenMiddleware(d.JWTSecret)
	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.GET("/me", d.Auth.Me, authMW.RequireAuth)
	auth.GET("/refresh-token", d.Auth.RefreshToken, authMW.RequireAuth)

	users := api.Group("/user", authMW.RequireAdmin)
	users.GET("", d.Users.ListUsers)
	users.PATCH("/:user_id/block", d.Users.BlockUser)

	dishes := api.Group("/restaurant/dish")
	dishes.GET("", d.Catalog.ListDishes, authMW.RequireAuth)
	dishes.GET("/search", d.Catalog.SearchDishes, authMW.RequireAuth)
	dishes.GET("/:dish_id", d.Catalog.GetDish, authMW.RequireAuth)
	dishes.POST("", d.Catalog.CreateDish, authMW.RequireAdmin)
	dishes.PATCH("/:dish_id", d.Catalog.PatchDish, authMW.RequireAdmin)
	dishes.DELETE("/:dish_id", d.Catalog.DeleteDish, authMW.RequireAdmin)

	modifiers := api.Group("/restaurant/modifier")
	modifiers.GET("", d.Catalog.ListModifiers, authMW.RequireAuth)
	modifiers.GET("/:modifier_id", d.Catalog.GetModifier, authMW.RequireAuth)
	modifiers.POST("", d.Catalog.CreateModifier, authMW.RequireAdmin)
	modifiers.PATCH("/:modifier_id", d.Catalog.PatchModifier, authMW.RequireAdmin)
	modifiers.DELETE("/:modifier_id", d.Catalog.DeleteModifier, authMW.RequireAdmin)

	orders := api.Group("/order", authMW.RequireAuth)
	orders.GET("", d.Orders.ListOrders)
	orders.POST("", d.Orders.CreateOrder)
	orders.POST("/checkout", d.Orders.Checkout)
	orders.POST("/:order_id/cancel", d.Orders.CancelOrder)
}
