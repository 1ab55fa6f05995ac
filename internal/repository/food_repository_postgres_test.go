package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/models"
)

// TestPostgresFoodRepository runs against a real database
// It is skipped unless TEST_DATABASE_URL is set
func TestPostgresFoodRepository(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("skipping postgres test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := ConnectPostgres(ctx, dsn, 2)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer db.Close()

	repo := NewPostgresFoodRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE foods RESTART IDENTITY"); err != nil {
		t.Fatalf("failed to truncate foods: %v", err)
	}

	created, err := repo.Create(ctx, models.NewFood{Name: "Pizza", Image: "http://img/p.png", Price: "10.00"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == 0 {
		t.Error("expected database to assign an ID")
	}
	if created.Available {
		t.Error("expected created food to be unavailable")
	}

	created.Available = true
	created.Price = "12.50"
	if _, err := repo.Replace(ctx, *created); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	stored, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if *stored != *created {
		t.Errorf("stored = %+v, want %+v", *stored, *created)
	}

	foods, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(foods) != 1 {
		t.Errorf("expected 1 food, got %d", len(foods))
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, ErrFoodNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrFoodNotFound", err)
	}
	if _, err := repo.Replace(ctx, models.FoodItem{ID: created.ID}); !errors.Is(err, ErrFoodNotFound) {
		t.Errorf("Replace() on deleted food error = %v, want ErrFoodNotFound", err)
	}
}
