// Package dashboard keeps a local copy of the food catalog in sync with the
// food API and holds the state of the create and edit forms.
//
// Every mutation calls the API first and patches the local list only when the
// call succeeds. The list is never modified in place: each patch builds a new
// slice and swaps it in under the view's lock, so snapshots handed to
// renderers stay valid.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/models"
)

var (
	// ErrNoSelection is returned by UpdateItem when no food is being edited
	ErrNoSelection = errors.New("no food selected for editing")
)

// Collection is the remote food collection the view synchronizes with.
type Collection interface {
	List(ctx context.Context) ([]models.FoodItem, error)
	Create(ctx context.Context, food models.NewFood) (*models.FoodItem, error)
	Replace(ctx context.Context, id int64, food models.FoodItem) (*models.FoodItem, error)
	Delete(ctx context.Context, id int64) error
}

// LoadState tracks the initial fetch of the catalog.
type LoadState int

const (
	LoadIdle LoadState = iota
	LoadPending
	LoadReady
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadIdle:
		return "idle"
	case LoadPending:
		return "loading"
	case LoadReady:
		return "ready"
	case LoadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the view state for rendering.
type Snapshot struct {
	Foods           []models.FoodItem
	Editing         *models.FoodItem
	CreateModalOpen bool
	EditModalOpen   bool
	LoadState       LoadState
	LoadErr         error
}

// View is the catalog dashboard state.
type View struct {
	client Collection
	logger *slog.Logger

	mu              sync.Mutex
	foods           []models.FoodItem
	editing         *models.FoodItem
	createModalOpen bool
	editModalOpen   bool
	loadState       LoadState
	loadErr         error
}

// New creates an empty view backed by client.
func New(client Collection, logger *slog.Logger) *View {
	return &View{
		client: client,
		logger: logger,
		foods:  []models.FoodItem{},
	}
}

// Load replaces the local list with the API's list, keeping API order.
// On failure the list is left as it was and the view reports LoadFailed.
func (v *View) Load(ctx context.Context) error {
	v.mu.Lock()
	v.loadState = LoadPending
	v.loadErr = nil
	v.mu.Unlock()

	foods, err := v.client.List(ctx)
	if err != nil {
		v.logger.Error("failed to load foods", "error", err)
		v.mu.Lock()
		v.loadState = LoadFailed
		v.loadErr = err
		v.mu.Unlock()
		return err
	}

	foods = v.dedupe(foods)

	v.mu.Lock()
	v.foods = foods
	v.loadState = LoadReady
	v.mu.Unlock()

	v.logger.Debug("foods loaded", "count", len(foods))
	return nil
}

// Retry repeats Load after a failed load. It does nothing in any other state.
func (v *View) Retry(ctx context.Context) error {
	v.mu.Lock()
	state := v.loadState
	v.mu.Unlock()

	if state != LoadFailed {
		return nil
	}
	return v.Load(ctx)
}

// dedupe keeps the first entry for each ID
func (v *View) dedupe(foods []models.FoodItem) []models.FoodItem {
	seen := make(map[int64]bool, len(foods))
	out := make([]models.FoodItem, 0, len(foods))
	for _, food := range foods {
		if seen[food.ID] {
			v.logger.Warn("duplicate food id from api", "food_id", food.ID)
			continue
		}
		seen[food.ID] = true
		out = append(out, food)
	}
	return out
}

// AddItem creates a food from draft. New foods start unavailable.
// The stored food, with the API-assigned ID, is appended to the list.
func (v *View) AddItem(ctx context.Context, draft models.FoodDraft) (*models.FoodItem, error) {
	created, err := v.client.Create(ctx, models.NewFoodFromDraft(draft))
	if err != nil {
		v.logger.Error("failed to add food", "name", draft.Name, "error", err)
		return nil, err
	}

	v.mu.Lock()
	if i := indexOf(v.foods, created.ID); i >= 0 {
		v.foods = replaceAt(v.foods, i, *created)
	} else {
		v.foods = appendItem(v.foods, *created)
	}
	v.mu.Unlock()

	v.logger.Info("food added", "food_id", created.ID, "name", created.Name)
	return created, nil
}

// UpdateItem sends the food being edited with patch merged over it and
// swaps the stored version into the list.
func (v *View) UpdateItem(ctx context.Context, patch models.FoodPatch) (*models.FoodItem, error) {
	v.mu.Lock()
	if v.editing == nil {
		v.mu.Unlock()
		return nil, ErrNoSelection
	}
	selected := *v.editing
	v.mu.Unlock()

	updated, err := v.client.Replace(ctx, selected.ID, patch.Apply(selected))
	if err != nil {
		v.logger.Error("failed to update food", "food_id", selected.ID, "error", err)
		return nil, err
	}

	// the list is keyed by the id we asked for, whatever the reply says
	updated.ID = selected.ID

	v.mu.Lock()
	v.foods = replaceByID(v.foods, selected.ID, *updated)
	if v.editing != nil && v.editing.ID == selected.ID {
		item := *updated
		v.editing = &item
	}
	v.mu.Unlock()

	v.logger.Info("food updated", "food_id", updated.ID)
	return updated, nil
}

// ToggleAvailability flips the availability of the food with id.
// Unknown ids are ignored. The flip is computed from the local copy, so two
// toggles of the same food in flight together both send the same value.
func (v *View) ToggleAvailability(ctx context.Context, id int64) error {
	v.mu.Lock()
	i := indexOf(v.foods, id)
	if i < 0 {
		v.mu.Unlock()
		return nil
	}
	toggled := v.foods[i]
	v.mu.Unlock()

	toggled.Available = !toggled.Available

	updated, err := v.client.Replace(ctx, id, toggled)
	if err != nil {
		v.logger.Error("failed to toggle food availability", "food_id", id, "error", err)
		return err
	}

	updated.ID = id

	v.mu.Lock()
	v.foods = replaceByID(v.foods, id, *updated)
	if v.editing != nil && v.editing.ID == id {
		item := *updated
		v.editing = &item
	}
	v.mu.Unlock()

	v.logger.Info("food availability changed", "food_id", id, "available", updated.Available)
	return nil
}

// DeleteItem deletes the food with id and drops it from the list.
func (v *View) DeleteItem(ctx context.Context, id int64) error {
	if err := v.client.Delete(ctx, id); err != nil {
		v.logger.Error("failed to delete food", "food_id", id, "error", err)
		return err
	}

	v.mu.Lock()
	v.foods = removeByID(v.foods, id)
	if v.editing != nil && v.editing.ID == id {
		v.editing = nil
		v.editModalOpen = false
	}
	v.mu.Unlock()

	v.logger.Info("food deleted", "food_id", id)
	return nil
}

// OpenCreateModal shows the create form.
func (v *View) OpenCreateModal() {
	v.mu.Lock()
	v.createModalOpen = true
	v.mu.Unlock()
}

// CloseCreateModal hides the create form.
func (v *View) CloseCreateModal() {
	v.mu.Lock()
	v.createModalOpen = false
	v.mu.Unlock()
}

// OpenEditModal selects item for editing and opens the edit form.
// The item does not have to be in the list.
func (v *View) OpenEditModal(item models.FoodItem) {
	v.mu.Lock()
	v.editing = &item
	v.editModalOpen = true
	v.mu.Unlock()
}

// CloseEditModal hides the edit form; the selection is kept.
func (v *View) CloseEditModal() {
	v.mu.Lock()
	v.editModalOpen = false
	v.mu.Unlock()
}

// Items returns a copy of the local list.
func (v *View) Items() []models.FoodItem {
	v.mu.Lock()
	defer v.mu.Unlock()

	return cloneItems(v.foods)
}

// Find returns the local copy of the food with id.
func (v *View) Find(id int64) (models.FoodItem, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if i := indexOf(v.foods, id); i >= 0 {
		return v.foods[i], true
	}
	return models.FoodItem{}, false
}

// Editing returns the food selected for editing, if any.
func (v *View) Editing() (models.FoodItem, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.editing == nil {
		return models.FoodItem{}, false
	}
	return *v.editing, true
}

// Snapshot copies the whole view state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := Snapshot{
		Foods:           cloneItems(v.foods),
		CreateModalOpen: v.createModalOpen,
		EditModalOpen:   v.editModalOpen,
		LoadState:       v.loadState,
		LoadErr:         v.loadErr,
	}
	if v.editing != nil {
		item := *v.editing
		s.Editing = &item
	}
	return s
}
