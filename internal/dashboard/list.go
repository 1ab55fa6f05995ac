package dashboard

import "github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/models"

// The helpers below never modify their input; each returns a fresh slice.

func indexOf(foods []models.FoodItem, id int64) int {
	for i, food := range foods {
		if food.ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(foods []models.FoodItem) []models.FoodItem {
	out := make([]models.FoodItem, len(foods))
	copy(out, foods)
	return out
}

func appendItem(foods []models.FoodItem, item models.FoodItem) []models.FoodItem {
	out := make([]models.FoodItem, len(foods), len(foods)+1)
	copy(out, foods)
	return append(out, item)
}

func replaceAt(foods []models.FoodItem, i int, item models.FoodItem) []models.FoodItem {
	out := cloneItems(foods)
	out[i] = item
	return out
}

func replaceByID(foods []models.FoodItem, id int64, item models.FoodItem) []models.FoodItem {
	out := make([]models.FoodItem, len(foods))
	for i, food := range foods {
		if food.ID == id {
			out[i] = item
		} else {
			out[i] = food
		}
	}
	return out
}

func removeByID(foods []models.FoodItem, id int64) []models.FoodItem {
	out := make([]models.FoodItem, 0, len(foods))
	for _, food := range foods {
		if food.ID != id {
			out = append(out, food)
		}
	}
	return out
}
