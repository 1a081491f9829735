package checkout

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/food_order/internal/models"
	"github.com/Skotchmaster/food_order/internal/transport"
	"github.com/Skotchmaster/food_order/internal/validation"
)

type Item struct {
	DishID      uuid.UUID
	ModifierIDs []uuid.UUID
}

// Request is an order request that passed Validate.
type Request struct {
	UserID  uuid.UUID
	Items   []Item
	Tip     int
	Address models.Address
	Payment models.Payment
}

// Validate checks presence, type and conditional rules and converts ids.
// It never touches the catalog.
func Validate(raw transport.OrderRequest) (Request, error) {
	req := normalize(raw)

	errs := FieldErrors{}
	validation.Struct(req, errs)
	if err := errs.orNil(); err != nil {
		return Request{}, err
	}

	out := Request{
		UserID:  uuid.MustParse(req.UserID),
		Address: models.Address{Line1: req.AddressLine1, Line2: req.AddressLine2},
		Payment: models.Payment{PayOnDelivery: *req.PayOnDelivery},
	}
	out.Tip, _ = strconv.Atoi(string(req.Tip))
	for _, it := range req.Items {
		item := Item{DishID: uuid.MustParse(it.DishID)}
		for _, m := range it.Modifiers {
			item.ModifierIDs = append(item.ModifierIDs, uuid.MustParse(m))
		}
		out.Items = append(out.Items, item)
	}
	if !out.Payment.PayOnDelivery {
		out.Payment.CardNumber = req.CardNumber
		out.Payment.CardExpDate = req.CardExpDate
	}
	return out, nil
}

// normalize trims every string and lowercases ids so the uuid rule accepts
// any casing uuid.Parse would.
func normalize(raw transport.OrderRequest) transport.OrderRequest {
	req := raw
	req.UserID = normalizeID(raw.UserID)
	req.Tip = transport.Number(strings.TrimSpace(string(raw.Tip)))
	req.AddressLine1 = strings.TrimSpace(raw.AddressLine1)
	req.AddressLine2 = strings.TrimSpace(raw.AddressLine2)
	req.CardNumber = strings.TrimSpace(raw.CardNumber)
	req.CardExpDate = strings.TrimSpace(raw.CardExpDate)

	if raw.Items != nil {
		req.Items = make([]transport.OrderItemRequest, len(raw.Items))
		for i, it := range raw.Items {
			req.Items[i].DishID = normalizeID(it.DishID)
			if it.Modifiers != nil {
				req.Items[i].Modifiers = make([]string, len(it.Modifiers))
				for j, m := range it.Modifiers {
					req.Items[i].Modifiers[j] = normalizeID(m)
				}
			}
		}
	}
	return req
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
