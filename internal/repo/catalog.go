package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/food_order/internal/models"
	"github.com/Skotchmaster/food_order/internal/transport"
)

var ErrUnknownModifier = errors.New("unknown modifier")

type DishFilter struct {
	Name     string
	Category string
	// SortBy is one of name, category, price; anything else sorts by newest first.
	SortBy        string
	Asc           bool
	OnlyAvailable bool
	IDs           []uuid.UUID
}

type ModifierFilter struct {
	Name          string
	OnlyAvailable bool
}

var dishSortColumns = map[string]string{
	"name":     "name",
	"category": "category",
	"price":    "price",
}

func (f DishFilter) scope(db *gorm.DB) *gorm.DB {
	switch {
	case f.Name != "" && f.Category != "":
		db = db.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\'`,
			containsPattern(f.Name), containsPattern(f.Category))
	case f.Name != "":
		db = db.Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(f.Name))
	case f.Category != "":
		db = db.Where(`LOWER(category) LIKE ? ESCAPE '\'`, containsPattern(f.Category))
	}
	if f.OnlyAvailable {
		db = db.Where("available = ?", true)
	}
	if f.IDs != nil {
		db = db.Where("id IN ?", f.IDs)
	}
	return db
}

func (f DishFilter) order() clause.OrderByColumn {
	col, ok := dishSortColumns[f.SortBy]
	if !ok {
		return clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}
	}
	return clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: !f.Asc}
}

func preloadModifiers(db *gorm.DB, onlyAvailable bool) *gorm.DB {
	if onlyAvailable {
		return db.Preload("Modifiers", "available = ?", true)
	}
	return db.Preload("Modifiers")
}

func (r *GormRepo) ListDishes(ctx context.Context, f DishFilter, offset, limit int) (int64, []models.Dish, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Dish{}).Scopes(f.scope).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := []models.Dish{}
	q := preloadModifiers(r.DB.WithContext(ctx), f.OnlyAvailable)
	if err := q.Scopes(f.scope).
		Order(f.order()).
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) GetDish(ctx context.Context, id uuid.UUID, onlyAvailable bool) (*models.Dish, error) {
	var dish models.Dish
	q := preloadModifiers(r.DB.WithContext(ctx), onlyAvailable).Where("id = ?", id)
	if onlyAvailable {
		q = q.Where("available = ?", true)
	}
	if err := q.First(&dish).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

// FindDishesByIDs resolves dishes for pricing, each with its complete modifier list.
func (r *GormRepo) FindDishesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Dish, error) {
	if len(ids) == 0 {
		return []models.Dish{}, nil
	}
	var dishes []models.Dish
	if err := r.DB.WithContext(ctx).
		Preload("Modifiers").
		Where("id IN ?", ids).
		Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// FindModifiersByIDs fails with ErrUnknownModifier unless every id exists.
func (r *GormRepo) FindModifiersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Modifier, error) {
	mods := []models.Modifier{}
	if len(ids) == 0 {
		return mods, nil
	}
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&mods).Error; err != nil {
		return nil, err
	}
	if len(mods) != len(uniqueIDs(ids)) {
		return nil, ErrUnknownModifier
	}
	return mods, nil
}

func (r *GormRepo) CreateDish(ctx context.Context, dish *models.Dish) (*models.Dish, error) {
	if err := r.DB.WithContext(ctx).Omit("Modifiers.*").Create(dish).Error; err != nil {
		return nil, err
	}
	return r.GetDish(ctx, dish.ID, false)
}

func (r *GormRepo) PatchDish(ctx context.Context, id uuid.UUID, req transport.PatchDishRequest, mods []models.Modifier) (*models.Dish, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dish models.Dish
		if err := tx.Where("id = ?", id).First(&dish).Error; err != nil {
			return err
		}

		if req.Name != nil {
			dish.Name = *req.Name
		}
		if req.Notes != nil {
			dish.Notes = *req.Notes
		}
		if req.Category != nil {
			dish.Category = *req.Category
		}
		if req.Price != nil {
			dish.Price = *req.Price
		}
		if req.Available != nil {
			dish.Available = *req.Available
		}
		if req.Image != nil {
			dish.Image = *req.Image
		}

		if err := tx.Omit(clause.Associations).Save(&dish).Error; err != nil {
			return err
		}

		if req.Modifiers != nil {
			if err := tx.Model(&dish).Association("Modifiers").Replace(mods); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetDish(ctx, id, false)
}

func (r *GormRepo) DeleteDish(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dish := models.Dish{ID: id}
		if err := tx.Model(&dish).Association("Modifiers").Clear(); err != nil {
			return err
		}

		res := tx.Delete(&models.Dish{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) ListModifiers(ctx context.Context, f ModifierFilter, offset, limit int) (int64, []models.Modifier, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if f.Name != "" {
			db = db.Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(f.Name))
		}
		if f.OnlyAvailable {
			db = db.Where("available = ?", true)
		}
		return db
	}

	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Modifier{}).Scopes(scope).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := []models.Modifier{}
	if err := r.DB.WithContext(ctx).
		Scopes(scope).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) GetModifier(ctx context.Context, id uuid.UUID, onlyAvailable bool) (*models.Modifier, error) {
	var mod models.Modifier
	q := r.DB.WithContext(ctx).Where("id = ?", id)
	if onlyAvailable {
		q = q.Where("available = ?", true)
	}
	if err := q.First(&mod).Error; err != nil {
		return nil, err
	}
	return &mod, nil
}

func (r *GormRepo) CreateModifier(ctx context.Context, mod *models.Modifier) (*models.Modifier, error) {
	if err := r.DB.WithContext(ctx).Create(mod).Error; err != nil {
		return nil, err
	}
	return mod, nil
}

func (r *GormRepo) PatchModifier(ctx context.Context, id uuid.UUID, req transport.PatchModifierRequest) (*models.Modifier, error) {
	var mod models.Modifier
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&mod).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		mod.Name = *req.Name
	}
	if req.Price != nil {
		mod.Price = *req.Price
	}
	if req.Available != nil {
		mod.Available = *req.Available
	}

	if err := r.DB.WithContext(ctx).Save(&mod).Error; err != nil {
		return nil, err
	}
	return &mod, nil
}

func (r *GormRepo) DeleteModifier(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM dish_modifiers WHERE modifier_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Modifier{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
