package validation

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	ID   string   `json:"id"   validate:"required,uuid"`
	Tags []string `json:"tags" validate:"dive,required"`
}

type sample struct {
	Name  string  `json:"name"  validate:"required"`
	Kind  string  `json:"kind"  validate:"oneof='plato fuerte' 'postre'"`
	Size  string  `json:"size"  validate:"oneof=0 5 10"`
	Lines []line  `json:"lines" validate:"required,min=1,dive"`
	Flag  *bool   `json:"flag"  validate:"required"`
	Card  string  `json:"card"  validate:"required_if=Flag false"`
	Skip  string  `json:"-"`
	Ptr   *string `json:"ptr,omitempty"`
}

func TestStruct_Keys(t *testing.T) {
	t.Parallel()

	no := false
	s := sample{
		Kind:  "sopa",
		Size:  "7",
		Lines: []line{{ID: "x", Tags: []string{"a", ""}}},
		Flag:  &no,
	}
	got := map[string][]string{}
	Struct(s, got)

	assert.Equal(t, []string{"name is required"}, got["name"])
	assert.Equal(t, []string{"kind must be one of plato fuerte, postre"}, got["kind"])
	assert.Equal(t, []string{"size must be one of 0, 5, 10"}, got["size"])
	assert.Equal(t, []string{"lines.0.id must be a valid id"}, got["lines.0.id"])
	assert.Equal(t, []string{"lines.0.tags.1 is required"}, got["lines.0.tags.1"])
	assert.Equal(t, []string{"card is required when pay_on_delivery is false"}, got["card"])
	assert.Len(t, got, 6)
}

func TestStruct_EmptySliceAndNilPointer(t *testing.T) {
	t.Parallel()

	got := map[string][]string{}
	Struct(sample{Name: "a", Kind: "postre", Size: "0", Lines: []line{}}, got)

	assert.Contains(t, got, "lines")
	assert.Contains(t, got, "flag")
	// required_if is not triggered while flag is absent
	assert.NotContains(t, got, "card")
}

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "items.0.modifiers.1", Key("OrderRequest.items[0].modifiers[1]"))
	assert.Equal(t, "email", Key("RegisterRequest.email"))
	assert.Equal(t, "plain", Key("plain"))
}

func TestVar(t *testing.T) {
	t.Parallel()

	assert.True(t, Var("4111111111111111", "credit_card"))
	assert.False(t, Var("4111111111111112", "credit_card"))
}

func TestVarWith(t *testing.T) {
	MustRegister("test_after", func(fl validator.FieldLevel) bool {
		ref, ok := fl.Parent().Interface().(time.Time)
		return ok && fl.Field().Interface().(time.Time).After(ref)
	})

	now := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	require.True(t, VarWith(now.Add(time.Hour), now, "test_after"))
	require.False(t, VarWith(now.Add(-time.Hour), now, "test_after"))
}
