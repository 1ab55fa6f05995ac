package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/repository"
)

var (
	ErrInvalidFood = errors.New("invalid food")
)

// FoodService handles business logic for the food catalog
type FoodService struct {
	repo repository.FoodRepository
}

// NewFoodService creates a new food service
func NewFoodService(repo repository.FoodRepository) *FoodService {
	return &FoodService{
		repo: repo,
	}
}

// ListFoods returns every food in catalog order
func (s *FoodService) ListFoods(ctx context.Context) ([]models.FoodItem, error) {
	return s.repo.List(ctx)
}

// GetFood returns a food by ID
func (s *FoodService) GetFood(ctx context.Context, id int64) (*models.FoodItem, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateFood validates and stores a new food
func (s *FoodService) CreateFood(ctx context.Context, food models.NewFood) (*models.FoodItem, error) {
	if err := validate.Struct(food); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFood, validationMessage(err))
	}
	return s.repo.Create(ctx, food)
}

// ReplaceFood overwrites the food stored under id
// The id from the path wins over any id in the body
func (s *FoodService) ReplaceFood(ctx context.Context, id int64, food models.FoodItem) (*models.FoodItem, error) {
	food.ID = id
	if err := validate.Struct(food); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFood, validationMessage(err))
	}
	return s.repo.Replace(ctx, food)
}

// DeleteFood removes a food by ID
func (s *FoodService) DeleteFood(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
