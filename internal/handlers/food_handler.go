package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/service"
	"github.com/go-chi/chi/v5"
)

// FoodHandler handles food-related HTTP requests
type FoodHandler struct {
	service *service.FoodService
	logger  *slog.Logger
}

// NewFoodHandler creates a new food handler
func NewFoodHandler(service *service.FoodService, logger *slog.Logger) *FoodHandler {
	return &FoodHandler{
		service: service,
		logger:  logger,
	}
}

// Routes mounts the food endpoints on r
func (h *FoodHandler) Routes(r chi.Router) {
	r.Get("/foods", h.ListFoods)
	r.Post("/foods", h.CreateFood)
	r.Get("/foods/{foodId}", h.GetFood)
	r.Put("/foods/{foodId}", h.ReplaceFood)
	r.Delete("/foods/{foodId}", h.DeleteFood)
}

// ListFoods handles GET /foods
func (h *FoodHandler) ListFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.service.ListFoods(r.Context())
	if err != nil {
		h.logger.Error("failed to list foods", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, foods, h.logger)
}

// GetFood handles GET /foods/{foodId}
func (h *FoodHandler) GetFood(w http.ResponseWriter, r *http.Request) {
	id, ok := h.foodID(w, r)
	if !ok {
		return
	}

	food, err := h.service.GetFood(r.Context(), id)
	if err != nil {
		h.handleError(w, "failed to get food", id, err)
		return
	}

	WriteJSON(w, http.StatusOK, food, h.logger)
}

// CreateFood handles POST /foods
// Responds 201 with the stored food including its new ID
func (h *FoodHandler) CreateFood(w http.ResponseWriter, r *http.Request) {
	var req models.NewFood
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode food request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	food, err := h.service.CreateFood(r.Context(), req)
	if err != nil {
		h.handleError(w, "failed to create food", 0, err)
		return
	}

	h.logger.Info("food created", "food_id", food.ID, "name", food.Name)
	WriteJSON(w, http.StatusCreated, food, h.logger)
}

// ReplaceFood handles PUT /foods/{foodId}
func (h *FoodHandler) ReplaceFood(w http.ResponseWriter, r *http.Request) {
	id, ok := h.foodID(w, r)
	if !ok {
		return
	}

	var req models.FoodItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode food request", "foodId", id, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	food, err := h.service.ReplaceFood(r.Context(), id, req)
	if err != nil {
		h.handleError(w, "failed to replace food", id, err)
		return
	}

	h.logger.Info("food replaced", "food_id", food.ID, "available", food.Available)
	WriteJSON(w, http.StatusOK, food, h.logger)
}

// DeleteFood handles DELETE /foods/{foodId}
func (h *FoodHandler) DeleteFood(w http.ResponseWriter, r *http.Request) {
	id, ok := h.foodID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteFood(r.Context(), id); err != nil {
		h.handleError(w, "failed to delete food", id, err)
		return
	}

	h.logger.Info("food deleted", "food_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// foodID parses the {foodId} URL parameter, writing 400 when it is not an integer
func (h *FoodHandler) foodID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "foodId")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.logger.Warn("invalid food ID format", "foodId", raw, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return 0, false
	}

	return id, true
}

func (h *FoodHandler) handleError(w http.ResponseWriter, msg string, id int64, err error) {
	switch {
	case errors.Is(err, repository.ErrFoodNotFound):
		h.logger.Info("food not found", "foodId", id)
		WriteError(w, http.StatusNotFound, "Food not found", h.logger)
	case errors.Is(err, service.ErrInvalidFood):
		h.logger.Warn(msg, "foodId", id, "error", err)
		WriteError(w, http.StatusBadRequest, validationDetail(err), h.logger)
	default:
		h.logger.Error(msg, "foodId", id, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}

// validationDetail drops the sentinel prefix from a wrapped validation error
func validationDetail(err error) string {
	return strings.TrimPrefix(err.Error(), service.ErrInvalidFood.Error()+": ")
}
