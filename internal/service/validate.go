package service

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/food_order/internal/validation"
)

var one = decimal.NewFromInt(1)

func validateStruct(s any, fe FieldErrors) {
	validation.Struct(s, fe)
}

func checkPrice(fe FieldErrors, field string, price *decimal.Decimal, required bool) {
	if price == nil {
		if required {
			fe.Add(field, field+" is required")
		}
		return
	}
	if price.LessThan(one) {
		fe.Add(field, field+" must be at least 1")
	}
}
