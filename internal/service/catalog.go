package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/food_order/internal/models"
	"github.com/Skotchmaster/food_order/internal/repo"
	"github.com/Skotchmaster/food_order/internal/search"
	"github.com/Skotchmaster/food_order/internal/transport"
	"github.com/Skotchmaster/food_order/pkg/logging"
)

type DishIndex interface {
	IndexDish(ctx context.Context, d *models.Dish) error
	DeleteDish(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, onlyAvailable bool, offset, limit int) ([]uuid.UUID, int64, error)
}

type CatalogService struct {
	Repo *repo.GormRepo
	// Index is optional; writes skip it and Search falls back to the database.
	Index DishIndex
}

func (s *CatalogService) ListDishes(ctx context.Context, v Viewer, f repo.DishFilter, offset, limit int) (int64, []models.Dish, error) {
	f.OnlyAvailable = v.OnlyAvailable()
	f.IDs = nil
	return s.Repo.ListDishes(ctx, f, offset, limit)
}

func (s *CatalogService) GetDish(ctx context.Context, v Viewer, id uuid.UUID) (*models.Dish, error) {
	dish, err := s.Repo.GetDish(ctx, id, v.OnlyAvailable())
	if err != nil {
		return nil, notFound(err)
	}
	return dish, nil
}

func (s *CatalogService) CreateDish(ctx context.Context, req transport.CreateDishRequest) (*models.Dish, error) {
	req.Name = strings.TrimSpace(req.Name)
	fe := FieldErrors{}
	validateStruct(req, fe)
	checkPrice(fe, "price", req.Price, true)
	if err := invalid(fe); err != nil {
		return nil, err
	}

	mods, err := s.resolveModifiers(ctx, req.Modifiers)
	if err != nil {
		return nil, err
	}

	dish := &models.Dish{
		Name:      req.Name,
		Notes:     req.Notes,
		Category:  req.Category,
		Price:     *req.Price,
		Available: req.Available == nil || *req.Available,
		Image:     req.Image,
		Modifiers: mods,
	}
	created, err := s.Repo.CreateDish(ctx, dish)
	if err != nil {
		return nil, err
	}
	s.reindex(ctx, created)
	return created, nil
}

func (s *CatalogService) PatchDish(ctx context.Context, id uuid.UUID, req transport.PatchDishRequest) (*models.Dish, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	fe := FieldErrors{}
	validateStruct(req, fe)
	checkPrice(fe, "price", req.Price, false)
	if err := invalid(fe); err != nil {
		return nil, err
	}

	var mods []models.Modifier
	if req.Modifiers != nil {
		var err error
		if mods, err = s.resolveModifiers(ctx, *req.Modifiers); err != nil {
			return nil, err
		}
	}

	dish, err := s.Repo.PatchDish(ctx, id, req, mods)
	if err != nil {
		return nil, notFound(err)
	}
	s.reindex(ctx, dish)
	return dish, nil
}

func (s *CatalogService) DeleteDish(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteDish(ctx, id); err != nil {
		return notFound(err)
	}
	if s.Index != nil {
		if err := s.Index.DeleteDish(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_delete_failed", "dish_id", id, "error", err)
		}
	}
	return nil
}

// SearchDishes prefers the search index and falls back to a name or category
// substring match when the index is missing or failing.
func (s *CatalogService) SearchDishes(ctx context.Context, v Viewer, q string, offset, limit int) (int64, []models.Dish, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		fe := FieldErrors{}
		fe.Add("q", "q is required")
		return 0, nil, fe
	}

	if s.Index != nil {
		ids, total, err := s.Index.Search(ctx, q, v.OnlyAvailable(), offset, limit)
		switch {
		case err == nil:
			return s.loadInOrder(ctx, v, ids, total)
		case !errors.Is(err, search.ErrDisabled):
			logging.FromContext(ctx).Warn("search_failed", "reason", "falling back to database", "error", err)
		}
	}
	return s.Repo.ListDishes(ctx, repo.DishFilter{Name: q, Category: q, OnlyAvailable: v.OnlyAvailable()}, offset, limit)
}

func (s *CatalogService) loadInOrder(ctx context.Context, v Viewer, ids []uuid.UUID, total int64) (int64, []models.Dish, error) {
	if len(ids) == 0 {
		return total, []models.Dish{}, nil
	}
	_, found, err := s.Repo.ListDishes(ctx, repo.DishFilter{IDs: ids, OnlyAvailable: v.OnlyAvailable()}, 0, len(ids))
	if err != nil {
		return 0, nil, err
	}
	byID := make(map[uuid.UUID]models.Dish, len(found))
	for _, d := range found {
		byID[d.ID] = d
	}
	out := make([]models.Dish, 0, len(found))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			out = append(out, d)
		}
	}
	return total, out, nil
}

func (s *CatalogService) reindex(ctx context.Context, d *models.Dish) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexDish(ctx, d); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "dish_id", d.ID, "error", err)
	}
}

func (s *CatalogService) resolveModifiers(ctx context.Context, raw []string) ([]models.Modifier, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		// already checked by the validator
		ids = append(ids, uuid.MustParse(r))
	}
	mods, err := s.Repo.FindModifiersByIDs(ctx, ids)
	if errors.Is(err, repo.ErrUnknownModifier) {
		fe := FieldErrors{}
		fe.Add("modifiers", "modifiers must reference existing modifiers")
		return nil, fe
	}
	return mods, err
}

func (s *CatalogService) ListModifiers(ctx context.Context, v Viewer, name string, offset, limit int) (int64, []models.Modifier, error) {
	return s.Repo.ListModifiers(ctx, repo.ModifierFilter{Name: strings.TrimSpace(name), OnlyAvailable: v.OnlyAvailable()}, offset, limit)
}

func (s *CatalogService) GetModifier(ctx context.Context, v Viewer, id uuid.UUID) (*models.Modifier, error) {
	mod, err := s.Repo.GetModifier(ctx, id, v.OnlyAvailable())
	if err != nil {
		return nil, notFound(err)
	}
	return mod, nil
}

func (s *CatalogService) CreateModifier(ctx context.Context, req transport.CreateModifierRequest) (*models.Modifier, error) {
	req.Name = strings.TrimSpace(req.Name)
	fe := FieldErrors{}
	validateStruct(req, fe)
	checkPrice(fe, "price", req.Price, true)
	if err := invalid(fe); err != nil {
		return nil, err
	}

	return s.Repo.CreateModifier(ctx, &models.Modifier{
		Name:      req.Name,
		Price:     *req.Price,
		Available: req.Available == nil || *req.Available,
	})
}

func (s *CatalogService) PatchModifier(ctx context.Context, id uuid.UUID, req transport.PatchModifierRequest) (*models.Modifier, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	fe := FieldErrors{}
	validateStruct(req, fe)
	checkPrice(fe, "price", req.Price, false)
	if err := invalid(fe); err != nil {
		return nil, err
	}

	mod, err := s.Repo.PatchModifier(ctx, id, req)
	if err != nil {
		return nil, notFound(err)
	}
	return mod, nil
}

func (s *CatalogService) DeleteModifier(ctx context.Context, id uuid.UUID) error {
	return notFound(s.Repo.DeleteModifier(ctx, id))
}
