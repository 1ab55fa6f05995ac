package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const foodsTableSQL = `
	CREATE TABLE IF NOT EXISTS foods (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		image VARCHAR(1000) NOT NULL,
		price VARCHAR(32) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		available BOOLEAN NOT NULL DEFAULT FALSE
	)
`

// PostgresFoodRepository implements FoodRepository on a pgx connection pool
type PostgresFoodRepository struct {
	db *pgxpool.Pool
}

// ConnectPostgres opens a pool for dsn and checks the connection
func ConnectPostgres(ctx context.Context, dsn string, maxConns int) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	if maxConns > 0 {
		config.MaxConns = int32(maxConns)
	}
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	return db, nil
}

// NewPostgresFoodRepository creates a repository on an open pool
func NewPostgresFoodRepository(db *pgxpool.Pool) *PostgresFoodRepository {
	return &PostgresFoodRepository{db: db}
}

// EnsureSchema creates the foods table if needed
func (r *PostgresFoodRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, foodsTableSQL); err != nil {
		return fmt.Errorf("failed to create foods table: %w", err)
	}
	return nil
}

// List returns all foods ordered by ID
func (r *PostgresFoodRepository) List(ctx context.Context) ([]models.FoodItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, image, price, description, available
		FROM foods
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	foods := make([]models.FoodItem, 0)
	for rows.Next() {
		var food models.FoodItem
		if err := rows.Scan(
			&food.ID,
			&food.Name,
			&food.Image,
			&food.Price,
			&food.Description,
			&food.Available,
		); err != nil {
			return nil, err
		}
		foods = append(foods, food)
	}

	return foods, rows.Err()
}

// GetByID returns a food by its ID
func (r *PostgresFoodRepository) GetByID(ctx context.Context, id int64) (*models.FoodItem, error) {
	var food models.FoodItem
	err := r.db.QueryRow(ctx, `
		SELECT id, name, image, price, description, available
		FROM foods
		WHERE id = $1
	`, id).Scan(
		&food.ID,
		&food.Name,
		&food.Image,
		&food.Price,
		&food.Description,
		&food.Available,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFoodNotFound
	}
	if err != nil {
		return nil, err
	}
	return &food, nil
}

// Create inserts a food and returns it with its generated ID
func (r *PostgresFoodRepository) Create(ctx context.Context, food models.NewFood) (*models.FoodItem, error) {
	created := models.FoodItem{
		Name:        food.Name,
		Image:       food.Image,
		Price:       food.Price,
		Description: food.Description,
		Available:   food.Available,
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO foods (name, image, price, description, available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		food.Name,
		food.Image,
		food.Price,
		food.Description,
		food.Available,
	).Scan(&created.ID)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// Replace overwrites the food with the same ID
func (r *PostgresFoodRepository) Replace(ctx context.Context, food models.FoodItem) (*models.FoodItem, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE foods
		SET name = $2, image = $3, price = $4, description = $5, available = $6
		WHERE id = $1
	`,
		food.ID,
		food.Name,
		food.Image,
		food.Price,
		food.Description,
		food.Available,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrFoodNotFound
	}
	return &food, nil
}

// Delete removes a food by its ID
func (r *PostgresFoodRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM foods WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFoodNotFound
	}
	return nil
}
