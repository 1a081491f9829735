package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/food_order/internal/checkout"
)

var (
	ErrValidation     = checkout.ErrValidation
	ErrPaymentInvalid = checkout.ErrPaymentInvalid
	ErrUserNotFound   = checkout.ErrUserNotFound
	ErrUserBlocked    = checkout.ErrUserBlocked
	ErrNoItems        = checkout.ErrNoItems

	ErrNotFound           = errors.New("not found")
	ErrStatusConflict     = errors.New("order is not in the required status")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)

type FieldErrors = checkout.FieldErrors

func invalid(fe FieldErrors) error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Viewer is the caller a read is performed for. Non-admins only see
// available catalog entries and their own orders.
type Viewer struct {
	UserID string
	Admin  bool
}

func (v Viewer) OnlyAvailable() bool {
	return !v.Admin
}
