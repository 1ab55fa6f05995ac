package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/foodapi"
	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/pkg/logger"
)

// mockCollection is a scripted Collection for failure paths
type mockCollection struct {
	mu sync.Mutex

	foods      []models.FoodItem
	listErr    error
	createErr  error
	replaceErr error
	deleteErr  error

	// created overrides the food returned by Create when set
	created *models.FoodItem
	// replyID overrides the ID of the food returned by Replace when non-zero
	replyID int64

	listCalls    int
	replaceCalls int
	lastReplace  models.FoodItem
}

func (m *mockCollection) List(ctx context.Context) ([]models.FoodItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return cloneItems(m.foods), nil
}

func (m *mockCollection) Create(ctx context.Context, food models.NewFood) (*models.FoodItem, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.created != nil {
		item := *m.created
		return &item, nil
	}
	return &models.FoodItem{ID: 100, Name: food.Name, Image: food.Image, Price: food.Price, Available: food.Available}, nil
}

func (m *mockCollection) Replace(ctx context.Context, id int64, food models.FoodItem) (*models.FoodItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.replaceCalls++
	m.lastReplace = food
	if m.replaceErr != nil {
		return nil, m.replaceErr
	}
	if m.replyID != 0 {
		food.ID = m.replyID
	}
	return &food, nil
}

func (m *mockCollection) Delete(ctx context.Context, id int64) error {
	return m.deleteErr
}

var errUnreachable = errors.New("dial tcp: connection refused")

func TestView_LoadFailureAndRetry(t *testing.T) {
	mock := &mockCollection{
		foods:   []models.FoodItem{food(1, "soup", "8", false)},
		listErr: errUnreachable,
	}
	view := New(mock, logger.New("error"))
	ctx := context.Background()

	err := view.Load(ctx)
	if !errors.Is(err, errUnreachable) {
		t.Fatalf("Load() error = %v, want %v", err, errUnreachable)
	}

	snap := view.Snapshot()
	if snap.LoadState != LoadFailed {
		t.Errorf("load state = %v, want failed", snap.LoadState)
	}
	if !errors.Is(snap.LoadErr, errUnreachable) {
		t.Errorf("load error = %v, want %v", snap.LoadErr, errUnreachable)
	}
	if len(snap.Foods) != 0 {
		t.Errorf("expected empty list after failed load, got %d foods", len(snap.Foods))
	}

	mock.mu.Lock()
	mock.listErr = nil
	mock.mu.Unlock()

	if err := view.Retry(ctx); err != nil {
		t.Fatalf("Retry() unexpected error = %v", err)
	}

	snap = view.Snapshot()
	if snap.LoadState != LoadReady || snap.LoadErr != nil {
		t.Errorf("load state = %v (%v), want ready", snap.LoadState, snap.LoadErr)
	}
	if len(snap.Foods) != 1 {
		t.Errorf("expected 1 food after retry, got %d", len(snap.Foods))
	}

	// Retry is a no-op once loaded
	if err := view.Retry(ctx); err != nil {
		t.Fatalf("Retry() unexpected error = %v", err)
	}
	if mock.listCalls != 2 {
		t.Errorf("list calls = %d, want 2", mock.listCalls)
	}
}

func TestView_LoadKeepsFirstDuplicate(t *testing.T) {
	mock := &mockCollection{foods: []models.FoodItem{
		food(1, "soup", "8", false),
		food(2, "salad", "9", false),
		food(1, "other soup", "7", true),
	}}
	view := New(mock, logger.New("error"))

	if err := view.Load(context.Background()); err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}

	items := view.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 foods, got %d", len(items))
	}
	if items[0].Name != "soup" || items[1].ID != 2 {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestView_AddItem_ServerOverrides(t *testing.T) {
	tests := []struct {
		name      string
		created   models.FoodItem
		wantLen   int
		wantAvail bool
	}{
		{
			name:      "server marks food available",
			created:   food(5, "pizza", "10", true),
			wantLen:   2,
			wantAvail: true,
		},
		{
			name:      "server reuses an existing id",
			created:   food(1, "pizza", "10", false),
			wantLen:   1,
			wantAvail: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := tt.created
			mock := &mockCollection{
				foods:   []models.FoodItem{food(1, "soup", "8", false)},
				created: &created,
			}
			view := New(mock, logger.New("error"))
			ctx := context.Background()

			if err := view.Load(ctx); err != nil {
				t.Fatalf("Load() unexpected error = %v", err)
			}
			if _, err := view.AddItem(ctx, models.FoodDraft{Name: "pizza"}); err != nil {
				t.Fatalf("AddItem() unexpected error = %v", err)
			}

			items := view.Items()
			if len(items) != tt.wantLen {
				t.Fatalf("expected %d foods, got %d", tt.wantLen, len(items))
			}
			got, _ := view.Find(tt.created.ID)
			if got.Available != tt.wantAvail || got.Name != "pizza" {
				t.Errorf("stored = %+v", got)
			}
			assertUniqueIDs(t, items)
		})
	}
}

func TestView_MutationFailuresLeaveListUnchanged(t *testing.T) {
	seed := []models.FoodItem{food(1, "soup", "8", false), food(2, "salad", "9", true)}
	networkErr := errors.Join(foodapi.ErrNetwork, errUnreachable)

	tests := []struct {
		name string
		mock *mockCollection
		run  func(ctx context.Context, v *View) error
	}{
		{
			name: "add",
			mock: &mockCollection{createErr: networkErr},
			run: func(ctx context.Context, v *View) error {
				_, err := v.AddItem(ctx, models.FoodDraft{Name: "pizza"})
				return err
			},
		},
		{
			name: "update",
			mock: &mockCollection{replaceErr: networkErr},
			run: func(ctx context.Context, v *View) error {
				v.OpenEditModal(seed[0])
				price := "99"
				_, err := v.UpdateItem(ctx, models.FoodPatch{Price: &price})
				return err
			},
		},
		{
			name: "toggle",
			mock: &mockCollection{replaceErr: networkErr},
			run: func(ctx context.Context, v *View) error {
				return v.ToggleAvailability(ctx, 1)
			},
		},
		{
			name: "delete",
			mock: &mockCollection{deleteErr: networkErr},
			run: func(ctx context.Context, v *View) error {
				return v.DeleteItem(ctx, 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock.foods = seed
			view := New(tt.mock, logger.New("error"))
			ctx := context.Background()

			if err := view.Load(ctx); err != nil {
				t.Fatalf("Load() unexpected error = %v", err)
			}

			err := tt.run(ctx, view)
			if !errors.Is(err, foodapi.ErrNetwork) {
				t.Fatalf("error = %v, want ErrNetwork", err)
			}

			items := view.Items()
			if len(items) != len(seed) {
				t.Fatalf("expected %d foods, got %d", len(seed), len(items))
			}
			for i := range seed {
				if items[i] != seed[i] {
					t.Errorf("items[%d] = %+v, want %+v", i, items[i], seed[i])
				}
			}
		})
	}
}

func TestView_ToggleSendsFlippedCopy(t *testing.T) {
	mock := &mockCollection{foods: []models.FoodItem{food(1, "soup", "8", false)}}
	view := New(mock, logger.New("error"))
	ctx := context.Background()

	if err := view.Load(ctx); err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}

	if err := view.ToggleAvailability(ctx, 1); err != nil {
		t.Fatalf("ToggleAvailability() unexpected error = %v", err)
	}
	if !mock.lastReplace.Available || mock.lastReplace.ID != 1 {
		t.Errorf("sent %+v, want food 1 available", mock.lastReplace)
	}

	if err := view.ToggleAvailability(ctx, 1); err != nil {
		t.Fatalf("ToggleAvailability() unexpected error = %v", err)
	}
	if mock.lastReplace.Available {
		t.Error("second toggle should send available=false")
	}
	if got, _ := view.Find(1); got.Available {
		t.Error("expected food 1 unavailable after two toggles")
	}
}

func TestView_ConcurrentMutations(t *testing.T) {
	seed := make([]models.FoodItem, 0, 20)
	for i := int64(1); i <= 20; i++ {
		seed = append(seed, food(i, "dish", "5", false))
	}
	mock := &mockCollection{foods: seed}
	view := New(mock, logger.New("error"))
	ctx := context.Background()

	if err := view.Load(ctx); err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}

	var wg sync.WaitGroup
	for i := int64(1); i <= 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if id%2 == 0 {
				_ = view.DeleteItem(ctx, id)
				return
			}
			_ = view.ToggleAvailability(ctx, id)
		}(i)
	}
	wg.Wait()

	items := view.Items()
	if len(items) != 10 {
		t.Fatalf("expected 10 foods, got %d", len(items))
	}
	for _, item := range items {
		if item.ID%2 == 0 {
			t.Errorf("deleted food %d still listed", item.ID)
		}
		if !item.Available {
			t.Errorf("food %d was not toggled", item.ID)
		}
	}
	assertUniqueIDs(t, items)
}

func TestView_ReplaceReplyWithOtherID(t *testing.T) {
	seed := []models.FoodItem{food(1, "soup", "9", false), food(2, "salad", "2", true)}

	tests := []struct {
		name string
		run  func(ctx context.Context, v *View) error
	}{
		{
			name: "update",
			run: func(ctx context.Context, v *View) error {
				v.OpenEditModal(seed[0])
				price := "10"
				_, err := v.UpdateItem(ctx, models.FoodPatch{Price: &price})
				return err
			},
		},
		{
			name: "toggle",
			run: func(ctx context.Context, v *View) error {
				return v.ToggleAvailability(ctx, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockCollection{foods: seed, replyID: 2}
			view := New(mock, logger.New("error"))
			ctx := context.Background()

			if err := view.Load(ctx); err != nil {
				t.Fatalf("Load() unexpected error = %v", err)
			}
			if err := tt.run(ctx, view); err != nil {
				t.Fatalf("unexpected error = %v", err)
			}

			items := view.Items()
			assertUniqueIDs(t, items)
			if len(items) != 2 || items[0].ID != 1 || items[1] != seed[1] {
				t.Errorf("unexpected items: %+v", items)
			}
			if items[0].Name != "soup" {
				t.Errorf("entry 1 = %+v, want the soup reply", items[0])
			}
		})
	}
}
