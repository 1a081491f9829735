package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-jwt-secret")

func TestNewAccessToken_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		admin bool
	}{
		{name: "user", admin: false},
		{name: "admin", admin: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userID := uuid.NewString()
			token, exp, err := NewAccessToken(userID, tt.admin, 5*time.Minute, secret)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			claims, err := AccessClaimsFromToken(token, secret)
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
			assert.Equal(t, tt.admin, claims.IsAdmin())
			require.NotNil(t, claims.ExpiresAt)
			assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestAccessClaimsFromToken_Expired(t *testing.T) {
	t.Parallel()

	token, _, err := NewAccessToken(uuid.NewString(), false, -time.Minute, secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, secret)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAccessClaimsFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := NewAccessToken(uuid.NewString(), false, time.Minute, secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("other"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAccessClaimsFromToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := AccessClaims{UserID: "x", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, secret)
	require.Error(t, err)
}
