package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidCardNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		number string
		want   bool
	}{
		{"4111111111111111", true},
		{"4111 1111 1111 1111", true},
		{"5500-0000-0000-0004", true},
		{"378282246310005", true},
		{"4111111111111112", false},
		{"411111111111111a", false},
		{"4111", false},
		{"", false},
		{"41111111111111111111", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.number, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValidCardNumber(tt.number))
		})
	}
}

func TestValidExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		expiry string
		want   bool
	}{
		{"12/2030", true},
		{"00/2030", true},
		{"01/2026", true}, // earlier month this year still passes
		{"13/2030", false},
		{"-1/2030", false},
		{"12/2025", false},
		{"12/30", false},
		{"aa/2030", false},
		{"12-2030", false},
		{"12/2030/1", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.expiry, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValidExpiry(tt.expiry, now))
		})
	}
}

func TestCheckCard(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, CheckCard("4111111111111111", "10/2027", now))
	assert.ErrorIs(t, CheckCard("4111111111111112", "10/2027", now), ErrPaymentInvalid)
	assert.ErrorIs(t, CheckCard("4111111111111111", "13/2030", now), ErrPaymentInvalid)
}

func TestMaskCardNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "************1111", MaskCardNumber("4111 1111 1111 1111"))
	assert.Equal(t, "123", MaskCardNumber("123"))
}
