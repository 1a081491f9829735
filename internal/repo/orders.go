package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/food_order/internal/models"
)

type OrderFilter struct {
	IncludeCancelled bool
	// UserID restricts the listing to one customer when non-nil.
	UserID *uuid.UUID
}

func (f OrderFilter) scope(db *gorm.DB) *gorm.DB {
	if !f.IncludeCancelled {
		db = db.Where("status <> ?", models.StatusCancelled)
	}
	if f.UserID != nil {
		db = db.Where("user_id = ?", *f.UserID)
	}
	return db
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, f OrderFilter, offset, limit int) (int64, []models.Order, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).Scopes(f.scope).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := []models.Order{}
	if err := r.DB.WithContext(ctx).
		Scopes(f.scope).
		Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) FindOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// TransitionStatus moves an order from one status to another in a single
// conditional UPDATE. gorm.ErrRecordNotFound means the order does not exist
// or is no longer in status from.
func (r *GormRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to models.OrderStatus, at time.Time) (*models.Order, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": at})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetOrder(ctx, id)
}
