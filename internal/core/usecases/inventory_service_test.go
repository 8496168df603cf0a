package usecases_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/freshconnect/api/internal/core/domain"
	"github.com/freshconnect/api/internal/core/ports"
	"github.com/freshconnect/api/internal/core/usecases"
)

type mockPublisher struct {
	itemOps   []string
	items     []domain.ProduceItem
	vendorIDs []string
}

func (m *mockPublisher) PublishItemChange(ctx context.Context, op string, item *domain.ProduceItem) error {
	m.itemOps = append(m.itemOps, op)
	m.items = append(m.items, *item)
	return nil
}
func (m *mockPublisher) PublishVendorUpdate(ctx context.Context, vendor *domain.Vendor) error {
	m.vendorIDs = append(m.vendorIDs, vendor.ID)
	return nil
}
func (m *mockPublisher) PublishBroadcast(ctx context.Context, data []byte) error { return nil }

func TestInventoryService_AddItem(t *testing.T) {
	var added *domain.ProduceItem
	itemRepo := &mockItemRepo{
		addFn: func(ctx context.Context, item *domain.ProduceItem) error {
			added = item
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := usecases.NewInventoryService(&mockVendorRepo{}, itemRepo, pub, nil)

	item, err := svc.AddItem(context.Background(), "vendor-1", usecases.NewItem{
		Name:        "Fresh Tomatoes",
		Category:    domain.CategoryVegetables,
		PricePerKg:  40,
		Quantity:    25,
		IsAvailable: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(item.ID, "item-") {
		t.Errorf("expected timestamp-derived ID, got %q", item.ID)
	}
	if item.VendorID != "vendor-1" {
		t.Errorf("expected item scoped to vendor-1, got %q", item.VendorID)
	}
	if item.LastUpdated.IsZero() {
		t.Error("expected LastUpdated to be stamped")
	}
	if added == nil || added.ID != item.ID {
		t.Error("expected item to reach the repository")
	}
	if len(pub.itemOps) != 1 || pub.itemOps[0] != "created" {
		t.Errorf("expected a created event, got %v", pub.itemOps)
	}
}

func TestInventoryService_AddItemValidation(t *testing.T) {
	svc := usecases.NewInventoryService(&mockVendorRepo{}, &mockItemRepo{}, nil, nil)

	cases := []struct {
		name string
		in   usecases.NewItem
	}{
		{"missing name", usecases.NewItem{Category: domain.CategoryFruits}},
		{"bad category", usecases.NewItem{Name: "Okra", Category: "Snacks"}},
		{"negative price", usecases.NewItem{Name: "Okra", Category: domain.CategoryVegetables, PricePerKg: -1}},
		{"negative quantity", usecases.NewItem{Name: "Okra", Category: domain.CategoryVegetables, Quantity: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddItem(context.Background(), "vendor-1", tc.in); !errors.Is(err, usecases.ErrInvalidItem) {
				t.Errorf("expected ErrInvalidItem, got %v", err)
			}
		})
	}
}

func vendorScopedItemRepo(owned []domain.ProduceItem) *mockItemRepo {
	return &mockItemRepo{
		listByVendorFn: func(ctx context.Context, vendorID string) ([]domain.ProduceItem, error) {
			var out []domain.ProduceItem
			for _, it := range owned {
				if it.VendorID == vendorID {
					out = append(out, it)
				}
			}
			return out, nil
		},
	}
}

func TestInventoryService_UpdateItemOtherVendor(t *testing.T) {
	itemRepo := vendorScopedItemRepo([]domain.ProduceItem{
		{ID: "item-1", Name: "Spinach", VendorID: "vendor-2"},
	})
	svc := usecases.NewInventoryService(&mockVendorRepo{}, itemRepo, nil, nil)

	_, err := svc.UpdateItem(context.Background(), "vendor-1", "item-1", usecases.NewItem{
		Name: "Spinach", Category: domain.CategoryVegetables,
	})
	if !errors.Is(err, ports.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound for foreign item, got %v", err)
	}
}

func TestInventoryService_ToggleAvailability(t *testing.T) {
	var updated *domain.ProduceItem
	itemRepo := vendorScopedItemRepo([]domain.ProduceItem{
		{ID: "item-1", Name: "Spinach", VendorID: "vendor-1", IsAvailable: true},
	})
	itemRepo.updateFn = func(ctx context.Context, item *domain.ProduceItem) error {
		updated = item
		return nil
	}
	pub := &mockPublisher{}
	svc := usecases.NewInventoryService(&mockVendorRepo{}, itemRepo, pub, nil)

	item, err := svc.ToggleAvailability(context.Background(), "vendor-1", "item-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.IsAvailable {
		t.Error("expected availability to flip to false")
	}
	if updated == nil || updated.IsAvailable {
		t.Error("expected flipped item to reach the repository")
	}
	if len(pub.itemOps) != 1 || pub.itemOps[0] != "updated" {
		t.Errorf("expected an updated event, got %v", pub.itemOps)
	}
}

func TestInventoryService_DeleteItem(t *testing.T) {
	var deleted string
	itemRepo := vendorScopedItemRepo([]domain.ProduceItem{
		{ID: "item-1", Name: "Spinach", VendorID: "vendor-1"},
	})
	itemRepo.deleteFn = func(ctx context.Context, id string) error {
		deleted = id
		return nil
	}
	pub := &mockPublisher{}
	svc := usecases.NewInventoryService(&mockVendorRepo{}, itemRepo, pub, nil)

	if err := svc.DeleteItem(context.Background(), "vendor-1", "item-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "item-1" {
		t.Errorf("expected delete of item-1, got %q", deleted)
	}
	if len(pub.itemOps) != 1 || pub.itemOps[0] != "deleted" {
		t.Errorf("expected a deleted event, got %v", pub.itemOps)
	}
}

func TestInventoryService_Summary(t *testing.T) {
	itemRepo := vendorScopedItemRepo([]domain.ProduceItem{
		{ID: "1", VendorID: "vendor-1", Category: domain.CategoryVegetables, PricePerKg: 40, Quantity: 10, IsAvailable: true},
		{ID: "2", VendorID: "vendor-1", Category: domain.CategoryVegetables, PricePerKg: 30, Quantity: 0, IsAvailable: false},
		{ID: "3", VendorID: "vendor-1", Category: domain.CategoryFruits, PricePerKg: 120, Quantity: 5, IsAvailable: true},
	})
	svc := usecases.NewInventoryService(&mockVendorRepo{}, itemRepo, nil, nil)

	sum, err := svc.Summary(context.Background(), "vendor-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.TotalItems != 3 || sum.AvailableItems != 2 || sum.OutOfStock != 1 {
		t.Errorf("unexpected counts: %+v", sum)
	}
	if want := 40.0*10 + 120.0*5; sum.TotalValue != want {
		t.Errorf("expected total value %v, got %v", want, sum.TotalValue)
	}
	if sum.ByCategory[domain.CategoryVegetables] != 2 || sum.ByCategory[domain.CategoryFruits] != 1 {
		t.Errorf("unexpected category breakdown: %v", sum.ByCategory)
	}
}

func TestInventoryService_UpdateProfile(t *testing.T) {
	stored := domain.Vendor{
		ID:          "vendor-1",
		Name:        "Fresh Farm Market",
		Description: "Farm produce",
		Rating:      4.5,
		IsActive:    true,
	}
	var saved *domain.Vendor
	vendorRepo := &mockVendorRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Vendor, error) {
			v := stored
			return &v, nil
		},
	}
	vendorRepo.updateFn = func(ctx context.Context, v *domain.Vendor) error {
		saved = v
		return nil
	}
	pub := &mockPublisher{}
	svc := usecases.NewInventoryService(vendorRepo, &mockItemRepo{}, pub, nil)

	name := "Fresh Farm Market & Sons"
	vendor, err := svc.UpdateProfile(context.Background(), "vendor-1", usecases.ProfileUpdate{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vendor.Name != name {
		t.Errorf("expected updated name, got %q", vendor.Name)
	}
	if vendor.Description != "Farm produce" || vendor.Rating != 4.5 {
		t.Error("untouched fields must be preserved")
	}
	if saved == nil || saved.Name != name {
		t.Error("expected update to reach the repository")
	}
	if len(pub.vendorIDs) != 1 || pub.vendorIDs[0] != "vendor-1" {
		t.Errorf("expected a vendor update event, got %v", pub.vendorIDs)
	}
}
