package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/food_order/internal/models"
	"github.com/Skotchmaster/food_order/internal/repo"
)

type UserService struct {
	Repo *repo.GormRepo
}

func (s *UserService) ListUsers(ctx context.Context, offset, limit int) (int64, []models.User, error) {
	return s.Repo.ListUsers(ctx, offset, limit)
}

func (s *UserService) BlockUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.Repo.BlockUser(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}
