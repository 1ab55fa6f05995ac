package models

// FoodItem represents a food plate in the catalog
// The id is always assigned by the API, never by a client
type FoodItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required"`
	Image       string `json:"image" validate:"required,uri"`
	Price       string `json:"price" validate:"required,decimal"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

// FoodDraft is the input of the create form: a food item without id and availability
type FoodDraft struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

// NewFood is the body of a create request
type NewFood struct {
	Name        string `json:"name" validate:"required"`
	Image       string `json:"image" validate:"required,uri"`
	Price       string `json:"price" validate:"required,decimal"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

// NewFoodFromDraft builds a create request body; new plates start unavailable.
func NewFoodFromDraft(draft FoodDraft) NewFood {
	return NewFood{
		Name:        draft.Name,
		Image:       draft.Image,
		Price:       draft.Price,
		Description: draft.Description,
		Available:   false,
	}
}

// FoodPatch holds the fields submitted by the edit form
// A nil field keeps the current value
type FoodPatch struct {
	Name        *string `json:"name,omitempty"`
	Image       *string `json:"image,omitempty"`
	Price       *string `json:"price,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply returns item with the patch fields merged over it.
func (p FoodPatch) Apply(item FoodItem) FoodItem {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Image != nil {
		item.Image = *p.Image
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	return item
}
