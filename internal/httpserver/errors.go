package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/food_order/internal/service"
	"github.com/Skotchmaster/food_order/internal/transport"
)

const msgInternal = "Something broke. Try again."

// ErrorHandler renders every error as the response envelope. Field-level
// validation messages travel in the HTTPError's Internal error.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := msgInternal
	var fields map[string][]string

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		switch m := he.Message.(type) {
		case string:
			msg = m
		case error:
			msg = m.Error()
		default:
			msg = http.StatusText(status)
		}
		var fe service.FieldErrors
		if errors.As(he.Internal, &fe) {
			fields = fe
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, transport.Fail(msg, fields))
}

// serviceError maps a service failure to its HTTP status and logs it under event.
func serviceError(l *slog.Logger, event string, err error) error {
	status, msg := http.StatusInternalServerError, msgInternal
	switch {
	case errors.Is(err, service.ErrValidation):
		status, msg = http.StatusBadRequest, "Validation failed."
	case errors.Is(err, service.ErrPaymentInvalid):
		status, msg = http.StatusBadRequest, "Payment card data is not valid"
	case errors.Is(err, service.ErrUserNotFound):
		status, msg = http.StatusBadRequest, "User not found."
	case errors.Is(err, service.ErrNoItems):
		status, msg = http.StatusBadRequest, "None of the requested dishes exist."
	case errors.Is(err, service.ErrUserBlocked):
		status, msg = http.StatusForbidden, "User is blocked."
	case errors.Is(err, service.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Invalid credentials."
	case errors.Is(err, service.ErrForbidden):
		status, msg = http.StatusForbidden, "Forbidden."
	case errors.Is(err, service.ErrStatusConflict):
		status, msg = http.StatusNotFound, "Not found or unable to cancel."
	case errors.Is(err, service.ErrNotFound):
		status, msg = http.StatusNotFound, "Not found."
	case errors.Is(err, service.ErrConflict):
		status, msg = http.StatusConflict, "Email already registered."
	}

	if status >= http.StatusInternalServerError {
		l.Error(event, "status", status, "error", err)
	} else {
		l.Warn(event, "status", status, "reason", msg, "error", err)
	}
	return echo.NewHTTPError(status, msg).SetInternal(err)
}

// bindError reports a body that could not be decoded. Wrongly typed fields come
// back as ValidationFailed keyed by the JSON path the decoder reached.
func bindError(l *slog.Logger, event string, err error) error {
	var ute *json.UnmarshalTypeError
	if !errors.As(err, &ute) {
		return badRequest(l, event, "invalid body", err)
	}
	field := ute.Field
	if field == "" {
		field = "body"
	}
	fe := service.FieldErrors{}
	fe.Add(field, field+" must be "+typeNoun(ute.Type))
	return serviceError(l, event, fe)
}

func typeNoun(t reflect.Type) string {
	if t == nil {
		return "valid"
	}
	if t == reflect.TypeOf(transport.Number("")) {
		return "a number"
	}
	switch t.Kind() {
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "a list"
	case reflect.Struct, reflect.Map:
		return "an object"
	default:
		return "valid"
	}
}

func badRequest(l *slog.Logger, event, reason string, err error) error {
	l.Warn(event, "status", http.StatusBadRequest, "reason", reason, "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, reason)
}
