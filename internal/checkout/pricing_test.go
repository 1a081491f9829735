package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/food_order/internal/models"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestPrice_WorkedExample(t *testing.T) {
	t.Parallel()

	m1 := models.Modifier{ID: uuid.New(), Name: "queso extra", Price: dec(20)}
	m2 := models.Modifier{ID: uuid.New(), Name: "guacamole", Price: dec(30)}
	dishA := models.Dish{ID: uuid.New(), Name: "tacos", Price: dec(100), Image: "tacos.png", Modifiers: []models.Modifier{m1}}
	user := &models.User{ID: uuid.New(), Name: "Ana"}

	req := Request{
		UserID:  user.ID,
		Items:   []Item{{DishID: dishA.ID, ModifierIDs: []uuid.UUID{m1.ID, m2.ID}}},
		Tip:     10,
		Payment: models.Payment{PayOnDelivery: true},
	}

	order, err := Price(user, []models.Dish{dishA}, req)
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	require.Len(t, order.Items[0].Modifiers, 1)
	assert.Equal(t, m1.ID, order.Items[0].Modifiers[0].ID)
	assert.Equal(t, "tacos.png", order.Items[0].Dish.Image)

	assert.True(t, order.TotalDishes.Equal(dec(100)))
	assert.True(t, order.TotalModifiers.Equal(dec(20)))
	assert.True(t, order.Subtotal.Equal(dec(120)))
	assert.True(t, order.Tip.Equal(dec(12)))
	assert.True(t, order.Total.Equal(dec(132)))
	assert.Equal(t, models.StatusPreparing, order.Status)
	assert.Equal(t, models.UserSnapshot{ID: user.ID, Name: "Ana"}, order.User)
}

func TestPrice_ModifiersScopedPerDish(t *testing.T) {
	t.Parallel()

	shared := models.Modifier{ID: uuid.New(), Name: "salsa", Price: dec(5)}
	onlyB := models.Modifier{ID: uuid.New(), Name: "hielo", Price: dec(2)}
	dishA := models.Dish{ID: uuid.New(), Name: "sopa", Price: dec(50), Modifiers: []models.Modifier{shared}}
	dishB := models.Dish{ID: uuid.New(), Name: "agua", Price: dec(20), Modifiers: []models.Modifier{shared, onlyB}}

	req := Request{Items: []Item{
		{DishID: dishA.ID, ModifierIDs: []uuid.UUID{onlyB.ID}},
		{DishID: dishB.ID, ModifierIDs: []uuid.UUID{shared.ID, onlyB.ID}},
	}}

	order, err := Price(&models.User{ID: uuid.New()}, []models.Dish{dishA, dishB}, req)
	require.NoError(t, err)

	require.Len(t, order.Items, 2)
	assert.Empty(t, order.Items[0].Modifiers)
	assert.Len(t, order.Items[1].Modifiers, 2)
	assert.True(t, order.TotalModifiers.Equal(dec(7)))
	assert.True(t, order.Subtotal.Equal(order.TotalDishes.Add(order.TotalModifiers)))
	assert.True(t, order.Total.Equal(order.Subtotal))
}

func TestPrice_UnknownDishesIgnored(t *testing.T) {
	t.Parallel()

	dish := models.Dish{ID: uuid.New(), Name: "flan", Price: dec(40)}
	req := Request{Items: []Item{{DishID: dish.ID}, {DishID: uuid.New()}}}

	order, err := Price(&models.User{ID: uuid.New()}, []models.Dish{dish}, req)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.True(t, order.Total.Equal(dec(40)))
}

func TestPrice_Rejections(t *testing.T) {
	t.Parallel()

	dish := models.Dish{ID: uuid.New(), Price: dec(10)}

	_, err := Price(nil, []models.Dish{dish}, Request{})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = Price(&models.User{ID: uuid.New(), Blocked: true}, []models.Dish{dish}, Request{})
	assert.ErrorIs(t, err, ErrUserBlocked)

	_, err = Price(&models.User{ID: uuid.New()}, nil, Request{})
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestPrice_MasksCard(t *testing.T) {
	t.Parallel()

	dish := models.Dish{ID: uuid.New(), Price: dec(10)}
	req := Request{
		Items:   []Item{{DishID: dish.ID}},
		Payment: models.Payment{CardNumber: "4111111111111111", CardExpDate: "12/2030"},
	}

	order, err := Price(&models.User{ID: uuid.New()}, []models.Dish{dish}, req)
	require.NoError(t, err)
	assert.Equal(t, "************1111", order.Payment.CardNumber)
	assert.Equal(t, "12/2030", order.Payment.CardExpDate)
}

func TestTipAmount(t *testing.T) {
	t.Parallel()

	subtotal := decimal.RequireFromString("99.90")

	tests := []struct {
		code int
		want string
	}{
		{0, "0"},
		{5, "4.995"},
		{10, "9.99"},
		{15, "14.985"},
		{7, "0"},
		{-10, "0"},
		{100, "0"},
	}

	for _, tt := range tests {
		got := TipAmount(subtotal, tt.code)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "code %d: got %s", tt.code, got)
		assert.True(t, subtotal.Add(got).Sub(got).Equal(subtotal))
	}
}
