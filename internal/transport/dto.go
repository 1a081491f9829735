package transport

import (
	"encoding/json"
	"reflect"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Number holds a JSON number, or a string spelling one, verbatim. Anything
// else fails as a *json.UnmarshalTypeError so the decoder can name the field.
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return &json.UnmarshalTypeError{Value: jsonKind(b), Type: reflect.TypeOf(*n)}
	}
	*n = Number(num)
	return nil
}

func jsonKind(b []byte) string {
	if len(b) == 0 {
		return "value"
	}
	switch b[0] {
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case '[':
		return "array"
	case '{':
		return "object"
	default:
		return "number"
	}
}

type OrderItemRequest struct {
	DishID    string   `json:"dish_id"   validate:"required,uuid"`
	Modifiers []string `json:"modifiers" validate:"dive,required,uuid"`
}

// OrderRequest is the raw checkout body. Card fields are only required when
// the order is not paid on delivery; their format is checked separately.
type OrderRequest struct {
	UserID        string             `json:"user_id"         validate:"required,uuid"`
	Items         []OrderItemRequest `json:"items"           validate:"required,min=1,dive"`
	Tip           Number             `json:"tip"             validate:"required,oneof=0 5 10 15"`
	AddressLine1  string             `json:"address_line_1"  validate:"required"`
	AddressLine2  string             `json:"address_line_2"  validate:"required"`
	PayOnDelivery *bool              `json:"pay_on_delivery" validate:"required"`
	CardNumber    string             `json:"card_number"     validate:"required_if=PayOnDelivery false"`
	CardExpDate   string             `json:"card_exp_date"   validate:"required_if=PayOnDelivery false"`
}

// Prices are checked by the service; the validator only sees strings and ids.
type CreateDishRequest struct {
	Name      string           `json:"name"      validate:"required"`
	Notes     string           `json:"notes"`
	Category  string           `json:"category"  validate:"required,oneof='entrada' 'plato fuerte' 'postre' 'bebida'"`
	Price     *decimal.Decimal `json:"price"`
	Available *bool            `json:"available"`
	Image     string           `json:"image"`
	Modifiers []string         `json:"modifiers" validate:"omitempty,dive,uuid"`
}

type PatchDishRequest struct {
	Name      *string          `json:"name"      validate:"omitnil,min=1"`
	Notes     *string          `json:"notes"`
	Category  *string          `json:"category"  validate:"omitnil,oneof='entrada' 'plato fuerte' 'postre' 'bebida'"`
	Price     *decimal.Decimal `json:"price"`
	Available *bool            `json:"available"`
	Image     *string          `json:"image"`
	Modifiers *[]string        `json:"modifiers" validate:"omitnil,dive,uuid"`
}

type CreateModifierRequest struct {
	Name      string           `json:"name"      validate:"required"`
	Price     *decimal.Decimal `json:"price"`
	Available *bool            `json:"available"`
}

type PatchModifierRequest struct {
	Name      *string          `json:"name"      validate:"omitnil,min=1"`
	Price     *decimal.Decimal `json:"price"`
	Available *bool            `json:"available"`
}
