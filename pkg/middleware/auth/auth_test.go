package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/food_order/pkg/tokens"
)

var secret = []byte("test-jwt-secret")

func run(t *testing.T, h echo.HandlerFunc, token string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(HeaderAuthToken, token)
	}
	rec := httptest.NewRecorder()
	return rec, h(e.NewContext(req, rec))
}

func ok(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"user_id": UserID(c), "admin": IsAdmin(c)})
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	mw := NewTokenMiddleware(secret)
	valid, _, err := tokens.NewAccessToken("u-1", false, time.Minute, secret)
	require.NoError(t, err)
	expired, _, err := tokens.NewAccessToken("u-1", false, -time.Minute, secret)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{name: "missing", token: "", status: http.StatusUnauthorized},
		{name: "garbage", token: "not-a-jwt", status: http.StatusUnauthorized},
		{name: "expired", token: expired, status: http.StatusForbidden},
		{name: "valid", token: valid, status: http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, err := run(t, mw.RequireAuth(ok), tt.token)
			if tt.status == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), `"user_id":"u-1"`)
				return
			}
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.status, he.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	mw := NewTokenMiddleware(secret)
	user, _, err := tokens.NewAccessToken("u-1", false, time.Minute, secret)
	require.NoError(t, err)
	admin, _, err := tokens.NewAccessToken("a-1", true, time.Minute, secret)
	require.NoError(t, err)

	_, err = run(t, mw.RequireAdmin(ok), user)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)

	rec, err := run(t, mw.RequireAdmin(ok), admin)
	require.NoError(t, err)
	assert.Contains(t, rec.Body.String(), `"admin":true`)
}
