package checkout

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrValidation     = errors.New("validation")
	ErrPaymentInvalid = errors.New("payment data invalid")
	ErrUserNotFound   = errors.New("user not found")
	ErrUserBlocked    = errors.New("user blocked")
	ErrNoItems        = errors.New("no items resolved")
)

// FieldErrors maps a request field (dotted for nested items, e.g. "items.0.dish_id")
// to its messages. It matches ErrValidation under errors.Is.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(f[k], ", "))
	}
	return "validation: " + strings.Join(parts, "; ")
}

func (f FieldErrors) Unwrap() error {
	return ErrValidation
}

func (f FieldErrors) orNil() error {
	if len(f) == 0 {
		return nil
	}
	return f
}
