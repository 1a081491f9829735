package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate   = newValidator()
	indexToKey = strings.NewReplacer("[", ".", "]", "")
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// MustRegister adds a custom tag. Call it from package init only.
func MustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Struct runs tag validation on s and adds one message per failing field to
// into, keyed by JSON path with slice indexes dotted ("items.0.dish_id").
func Struct(s any, into map[string][]string) {
	err := validate.Struct(s)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		into["body"] = append(into["body"], err.Error())
		return
	}
	for _, e := range verrs {
		field := Key(e.Namespace())
		into[field] = append(into[field], message(field, e))
	}
}

// Var reports whether v passes tag.
func Var(v any, tag string) bool {
	return validate.Var(v, tag) == nil
}

// VarWith is Var for rules that compare against other, which custom rules
// read through FieldLevel.Parent.
func VarWith(v, other any, tag string) bool {
	return validate.VarWithValue(v, other, tag) == nil
}

// Key turns a validator namespace ("OrderRequest.items[0].dish_id") into the
// field key clients see ("items.0.dish_id").
func Key(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		namespace = rest
	}
	return indexToKey.Replace(namespace)
}

func message(field string, e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "required_if":
		return field + " is required when pay_on_delivery is false"
	case "email":
		return field + " must be a valid email"
	case "oneof":
		return field + " must be one of " + strings.Join(oneofValues(e.Param()), ", ")
	case "uuid":
		return field + " must be a valid id"
	case "min":
		return field + " must not be empty"
	case "credit_card":
		return field + " must be a valid card number"
	default:
		return field + " is invalid"
	}
}

func oneofValues(param string) []string {
	if !strings.Contains(param, "'") {
		return strings.Fields(param)
	}
	var out []string
	for _, v := range strings.Split(param, "' '") {
		out = append(out, strings.Trim(v, "'"))
	}
	return out
}
