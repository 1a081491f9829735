package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/food_order/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Price turns a validated request plus resolved catalog data into an unsaved order.
// user is nil when the id did not resolve. dishes must carry their full modifier lists.
//
// Dishes are walked in resolved order, so requested ids that did not resolve are
// ignored, and only modifiers owned by each dish can be picked up for it.
func Price(user *models.User, dishes []models.Dish, req Request) (*models.Order, error) {
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Blocked {
		return nil, ErrUserBlocked
	}
	if len(dishes) == 0 {
		return nil, ErrNoItems
	}

	requested := make(map[uuid.UUID]map[uuid.UUID]struct{}, len(req.Items))
	for _, it := range req.Items {
		set := make(map[uuid.UUID]struct{}, len(it.ModifierIDs))
		for _, id := range it.ModifierIDs {
			set[id] = struct{}{}
		}
		requested[it.DishID] = set
	}

	dishTotal := decimal.Zero
	modifierTotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(dishes))

	for i := range dishes {
		dish := &dishes[i]
		dishTotal = dishTotal.Add(dish.Price)

		item := models.OrderItem{
			Dish:      models.SnapshotDish(dish),
			Modifiers: []models.ModifierSnapshot{},
		}
		picked := requested[dish.ID]
		for j := range dish.Modifiers {
			mod := &dish.Modifiers[j]
			if _, ok := picked[mod.ID]; !ok {
				continue
			}
			modifierTotal = modifierTotal.Add(mod.Price)
			item.Modifiers = append(item.Modifiers, models.SnapshotModifier(mod))
		}
		items = append(items, item)
	}

	subtotal := dishTotal.Add(modifierTotal)
	tip := TipAmount(subtotal, req.Tip)

	payment := req.Payment
	if !payment.PayOnDelivery {
		payment.CardNumber = MaskCardNumber(payment.CardNumber)
	}

	return &models.Order{
		User:           models.SnapshotUser(user),
		Items:          items,
		TotalDishes:    dishTotal,
		TotalModifiers: modifierTotal,
		Subtotal:       subtotal,
		Tip:            tip,
		Total:          subtotal.Add(tip),
		Address:        req.Address,
		Payment:        payment,
		Status:         models.StatusPreparing,
	}, nil
}

// TipAmount charges a percentage of subtotal for 5, 10 and 15; any other code is free.
func TipAmount(subtotal decimal.Decimal, code int) decimal.Decimal {
	switch code {
	case 5, 10, 15:
		return subtotal.Mul(decimal.NewFromInt(int64(code))).Div(hundred)
	default:
		return decimal.Zero
	}
}
