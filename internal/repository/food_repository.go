package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/models"
)

var (
	ErrFoodNotFound = errors.New("food not found")
)

// FoodRepository defines the interface for food data access
type FoodRepository interface {
	List(ctx context.Context) ([]models.FoodItem, error)
	GetByID(ctx context.Context, id int64) (*models.FoodItem, error)
	Create(ctx context.Context, food models.NewFood) (*models.FoodItem, error)
	Replace(ctx context.Context, food models.FoodItem) (*models.FoodItem, error)
	Delete(ctx context.Context, id int64) error
}

// InMemoryFoodRepository implements FoodRepository with in-memory storage
// Foods are listed in insertion order
type InMemoryFoodRepository struct {
	mu     sync.RWMutex
	foods  []models.FoodItem
	nextID int64
}

// NewInMemoryFoodRepository creates a repository holding the given foods
func NewInMemoryFoodRepository(seed []models.FoodItem) *InMemoryFoodRepository {
	foods := make([]models.FoodItem, len(seed))
	copy(foods, seed)

	var maxID int64
	for _, food := range foods {
		if food.ID > maxID {
			maxID = food.ID
		}
	}

	return &InMemoryFoodRepository{
		foods:  foods,
		nextID: maxID + 1,
	}
}

// NewSeededFoodRepository creates an in-memory repository with the demo menu
func NewSeededFoodRepository() *InMemoryFoodRepository {
	return NewInMemoryFoodRepository([]models.FoodItem{
		{ID: 1, Name: "Ao molho", Image: "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-food/food1.png", Price: "19.90", Description: "Macarrão ao molho branco, fughi e cheiro verde das montanhas.", Available: true},
		{ID: 2, Name: "Veggie", Image: "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-food/food2.png", Price: "21.90", Description: "Macarrão com pimentão, ervilha e ervas finas colhidas no himalaia.", Available: true},
		{ID: 3, Name: "A la Camarón", Image: "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-food/food3.png", Price: "25.90", Description: "Macarrão com vegetais de primeira linha e camarão dos 7 mares.", Available: false},
	})
}

// List returns all foods
func (r *InMemoryFoodRepository) List(ctx context.Context) ([]models.FoodItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	foods := make([]models.FoodItem, len(r.foods))
	copy(foods, r.foods)
	return foods, nil
}

// GetByID returns a food by its ID
func (r *InMemoryFoodRepository) GetByID(ctx context.Context, id int64) (*models.FoodItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrFoodNotFound
	}
	food := r.foods[i]
	return &food, nil
}

// Create stores a new food under the next free ID
func (r *InMemoryFoodRepository) Create(ctx context.Context, food models.NewFood) (*models.FoodItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := models.FoodItem{
		ID:          r.nextID,
		Name:        food.Name,
		Image:       food.Image,
		Price:       food.Price,
		Description: food.Description,
		Available:   food.Available,
	}
	r.nextID++
	r.foods = append(r.foods, created)

	return &created, nil
}

// Replace overwrites the food with the same ID
func (r *InMemoryFoodRepository) Replace(ctx context.Context, food models.FoodItem) (*models.FoodItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(food.ID)
	if i < 0 {
		return nil, ErrFoodNotFound
	}
	r.foods[i] = food
	return &food, nil
}

// Delete removes a food by its ID
func (r *InMemoryFoodRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrFoodNotFound
	}
	r.foods = append(r.foods[:i:i], r.foods[i+1:]...)
	return nil
}

// indexOf must be called with r.mu held
func (r *InMemoryFoodRepository) indexOf(id int64) int {
	for i, food := range r.foods {
		if food.ID == id {
			return i
		}
	}
	return -1
}
