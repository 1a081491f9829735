package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/food_order/internal/checkout"
	"github.com/Skotchmaster/food_order/internal/events"
	"github.com/Skotchmaster/food_order/internal/models"
	"github.com/Skotchmaster/food_order/internal/notify"
	"github.com/Skotchmaster/food_order/internal/repo"
	"github.com/Skotchmaster/food_order/internal/transport"
	"github.com/Skotchmaster/food_order/pkg/logging"
	"github.com/Skotchmaster/food_order/pkg/metrics"
)

type Emitter interface {
	Emit(ctx context.Context, event string, order *models.Order)
}

type OrderService struct {
	Repo     *repo.GormRepo
	Events   Emitter
	Notifier Notifier
	Metrics  *metrics.OrderMetrics
	// AdvanceAfter is how long an order stays in preparation before AdvanceDue delivers it.
	AdvanceAfter time.Duration
	Now          func() time.Time
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Place validates and prices an order request. With preview set the priced
// order is returned without being stored, announced or mailed.
func (s *OrderService) Place(ctx context.Context, raw transport.OrderRequest, preview bool) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.place", "preview", preview)

	req, err := checkout.Validate(raw)
	if err != nil {
		return nil, err
	}
	if !req.Payment.PayOnDelivery {
		if err := checkout.CheckCard(req.Payment.CardNumber, req.Payment.CardExpDate, s.now()); err != nil {
			return nil, err
		}
	}

	user, err := s.Repo.GetUser(ctx, req.UserID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrUserNotFound
	case err != nil:
		return nil, err
	case user.Blocked:
		return nil, ErrUserBlocked
	}

	dishes, err := s.Repo.FindDishesByIDs(ctx, dishIDs(req.Items))
	if err != nil {
		return nil, err
	}

	order, err := checkout.Price(user, dishes, req)
	if err != nil {
		return nil, err
	}
	if preview {
		return order, nil
	}

	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	l.Info("order_placed", "order_id", order.ID, "total", order.Total.String())
	s.Metrics.OrderPlaced()

	if s.Events != nil {
		s.Events.Emit(ctx, events.EventCreate, order)
	}
	if s.Notifier != nil {
		s.Notifier.Enqueue(notify.OrderConfirmation(user, order))
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, v Viewer, includeCancelled bool, offset, limit int) (int64, []models.Order, error) {
	f := repo.OrderFilter{IncludeCancelled: includeCancelled}
	if !v.Admin {
		id, err := uuid.Parse(v.UserID)
		if err != nil {
			return 0, []models.Order{}, nil
		}
		f.UserID = &id
	}
	return s.Repo.ListOrders(ctx, f, offset, limit)
}

// Cancel moves an order from preparing to cancelled. Orders that are gone,
// already moved on, or owned by someone else all yield ErrStatusConflict.
func (s *OrderService) Cancel(ctx context.Context, v Viewer, id uuid.UUID) (*models.Order, error) {
	if !v.Admin {
		order, err := s.Repo.GetOrder(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStatusConflict
			}
			return nil, err
		}
		if order.User.ID.String() != v.UserID {
			return nil, ErrStatusConflict
		}
	}

	order, err := s.transition(ctx, id, models.StatusPreparing, models.StatusCancelled)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("order_cancelled", "order_id", id)
	return order, nil
}

// AdvanceDue delivers every order that has been preparing for at least
// AdvanceAfter. Orders that change status concurrently are skipped.
func (s *OrderService) AdvanceDue(ctx context.Context) (int, error) {
	orders, err := s.Repo.FindOrdersByStatus(ctx, models.StatusPreparing)
	if err != nil {
		return 0, fmt.Errorf("load preparing orders: %w", err)
	}

	cutoff := s.now().Add(-s.AdvanceAfter)
	advanced := 0
	var errs []error
	for i := range orders {
		if orders[i].CreatedAt.After(cutoff) {
			continue
		}
		_, err := s.transition(ctx, orders[i].ID, models.StatusPreparing, models.StatusDelivered)
		switch {
		case err == nil:
			advanced++
		case errors.Is(err, ErrStatusConflict):
			// cancelled in the meantime
		default:
			errs = append(errs, fmt.Errorf("advance %s: %w", orders[i].ID, err))
		}
	}
	return advanced, errors.Join(errs...)
}

func (s *OrderService) transition(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (*models.Order, error) {
	order, err := s.Repo.TransitionStatus(ctx, id, from, to, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusConflict
		}
		return nil, err
	}
	s.Metrics.StatusChanged(string(to))
	if s.Events != nil {
		s.Events.Emit(ctx, events.EventStatusUpdate, order)
	}
	return order, nil
}

func dishIDs(items []checkout.Item) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.DishID]; ok {
			continue
		}
		seen[it.DishID] = struct{}{}
		ids = append(ids, it.DishID)
	}
	return ids
}
