package middleware

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/food_order/pkg/tokens"
)

// HeaderAuthToken carries the access token on every authenticated request.
const HeaderAuthToken = "x-auth-user"

const (
	ctxUserID = "user_id"
	ctxAdmin  = "admin"
)

type TokenMiddleware struct {
	JWTSecret []byte
}

func NewTokenMiddleware(secret []byte) *TokenMiddleware {
	return &TokenMiddleware{JWTSecret: secret}
}

type ValidatorFunc func(claims *tokens.AccessClaims) error

func (m *TokenMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *TokenMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
		if !claims.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *TokenMiddleware) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Request().Header.Get(HeaderAuthToken)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized.")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return echo.NewHTTPError(http.StatusForbidden, "Token expired.")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized.")
		}

		if validator != nil {
			if validationErr := validator(claims); validationErr != nil {
				return validationErr
			}
		}

		setUserContext(c, claims)
		return next(c)
	}
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxAdmin, claims.IsAdmin())
}

// SetUser is what the token middleware stores; handler tests use it to fake a session.
func SetUser(c echo.Context, userID string, admin bool) {
	c.Set(ctxUserID, userID)
	c.Set(ctxAdmin, admin)
}

func UserID(c echo.Context) string {
	s, _ := c.Get(ctxUserID).(string)
	return s
}

func IsAdmin(c echo.Context) bool {
	b, _ := c.Get(ctxAdmin).(bool)
	return b
}
