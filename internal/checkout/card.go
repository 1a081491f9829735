package checkout

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/food_order/internal/validation"
)

const expiryTag = "card_expiry"

var cardSeparators = strings.NewReplacer(" ", "", "-", "")

func init() {
	validation.MustRegister(expiryTag, func(fl validator.FieldLevel) bool {
		now, ok := fl.Parent().Interface().(time.Time)
		return ok && ValidExpiry(fl.Field().String(), now)
	})
}

// CheckCard validates a card number and an "MM/YYYY" expiry against now.
// The month only has to fall in 0..12 and the year must not be in the past;
// months within the current year are not compared.
func CheckCard(number, expiry string, now time.Time) error {
	if !ValidCardNumber(number) {
		return fmt.Errorf("%w: card number", ErrPaymentInvalid)
	}
	if !validation.VarWith(expiry, now, expiryTag) {
		return fmt.Errorf("%w: card expiry", ErrPaymentInvalid)
	}
	return nil
}

// ValidCardNumber accepts digits separated by optional spaces or dashes that
// pass the credit_card rule (length and Luhn checksum).
func ValidCardNumber(number string) bool {
	return validation.Var(cardSeparators.Replace(number), "credit_card")
}

func ValidExpiry(expiry string, now time.Time) bool {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 {
		return false
	}

	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || month < 0 || month > 12 {
		return false
	}

	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return false
	}
	return year >= now.Year()
}

// MaskCardNumber keeps the last four digits; orders never store full card numbers.
func MaskCardNumber(number string) string {
	digits := cardSeparators.Replace(number)
	if len(digits) <= 4 {
		return digits
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}
