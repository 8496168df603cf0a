package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/freshconnect/api/internal/adapters/memory"
	"github.com/freshconnect/api/internal/adapters/storage"
	"github.com/freshconnect/api/internal/core/domain"
)

func newGateway() *storage.Gateway {
	return storage.NewGateway(memory.NewKVStore())
}

func TestGateway_EmptyCollections(t *testing.T) {
	g := newGateway()
	ctx := context.Background()

	vendors, err := g.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vendors) != 0 {
		t.Errorf("expected empty vendor list, got %d", len(vendors))
	}

	loc, err := g.LastLocation(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc != nil {
		t.Errorf("expected nil location, got %+v", loc)
	}

	current, err := g.CurrentVendor(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current != "" {
		t.Errorf("expected empty session, got %q", current)
	}
}

func TestGateway_InitializeData_NoClobber(t *testing.T) {
	g := newGateway()
	ctx := context.Background()

	first := []domain.Vendor{{ID: "vendor-1", Name: "Fresh Farm Market", IsActive: true}}
	second := []domain.Vendor{{ID: "vendor-9", Name: "Imposter Market"}}

	if err := g.InitializeData(ctx, first, nil, nil); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := g.InitializeData(ctx, second, nil, nil); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	vendors, err := g.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vendors) != 1 || vendors[0].ID != "vendor-1" {
		t.Errorf("second seed clobbered storage: %+v", vendors)
	}
}

func TestGateway_InitializeData_SeedsEmptyCollectionsIndependently(t *testing.T) {
	g := newGateway()
	ctx := context.Background()

	vendors := []domain.Vendor{{ID: "vendor-1", Name: "Fresh Farm Market"}}
	if err := g.SaveAll(ctx, vendors); err != nil {
		t.Fatalf("save vendors: %v", err)
	}

	// Vendors already populated; items and creds still empty.
	seedItems := []domain.ProduceItem{{ID: "item-1", Name: "Tomatoes", VendorID: "vendor-1"}}
	seedCreds := []domain.VendorCredential{{Username: "freshfarm", Password: "delhi123", VendorID: "vendor-1"}}
	if err := g.InitializeData(ctx, []domain.Vendor{{ID: "vendor-2"}}, seedItems, seedCreds); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, _ := g.List(ctx)
	if len(got) != 1 || got[0].ID != "vendor-1" {
		t.Errorf("vendor collection was overwritten: %+v", got)
	}
	items, _ := g.Items().List(ctx)
	if len(items) != 1 {
		t.Errorf("expected items seeded, got %d", len(items))
	}
	creds, _ := g.Credentials().List(ctx)
	if len(creds) != 1 {
		t.Errorf("expected credentials seeded, got %d", len(creds))
	}
}

func TestGateway_AddItem_RoundTrip(t *testing.T) {
	g := newGateway()
	ctx := context.Background()

	stamp := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)
	item := domain.ProduceItem{
		ID:          "item-1",
		Name:        "Alphonso Mangoes",
		Category:    domain.CategoryFruits,
		PricePerKg:  120,
		Quantity:    25,
		Description: "Sweet seasonal mangoes",
		VendorID:    "vendor-1",
		LastUpdated: stamp,
		IsAvailable: true,
	}
	if err := g.Items().Add(ctx, &item); err != nil {
		t.Fatalf("add: %v", err)
	}

	items, err := g.Items().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	got := items[0]
	if !got.LastUpdated.Equal(stamp) {
		t.Errorf("LastUpdated did not round-trip: %v vs %v", got.LastUpdated, stamp)
	}
	if got.Name != item.Name || got.Category != item.Category ||
		got.PricePerKg != item.PricePerKg || got.Quantity != item.Quantity ||
		got.VendorID != item.VendorID || got.IsAvailable != item.IsAvailable {
		t.Errorf("item fields did not round-trip: %+v", got)
	}
}

func TestGateway_UpdateItem_StampsLastUpdated(t *testing.T) {
	g := newGateway()
	ctx := context.Background()

	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	item := domain.ProduceItem{ID: "item-1", Name: "Spinach", VendorID: "vendor-1", LastUpdated: old}
	if err := g.Items().Add(ctx, &item); err != nil {
		t.Fatalf("add: %v", err)
	}

	item.Quantity = 12
	before := time.Now()
	if err := g.Items().Update(ctx, &item); err != nil {
		t.Fatalf("update: %v", err)
	}

	items, _ := g.Items().List(ctx)
	if items[0].LastUpdated.Before(before) {
		t.Errorf("expected LastUpdated refreshed, got %v", items[0].LastUpdated)
	}
	if items[0].Quantity != 12 {
		t.Errorf("expected quantity 12, got %d", items[0].Quantity)
	}
}

func TestGateway_UpdateItem_Unknown(t *testing.T) {
	g := newGateway()
	item := domain.ProduceItem{ID: "nope"}
	if err := g.Items().Update(context.Background(), &item); err != storage.ErrItemNotFound {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestGateway_DeleteItem(t *testing.T) {
	g := newGateway()
	ctx := context.Background()

	_ = g.Items().Add(ctx, &domain.ProduceItem{ID: "item-1", VendorID: "vendor-1"})
	_ = g.Items().Add(ctx, &domain.ProduceItem{ID: "item-2", VendorID: "vendor-1"})

	if err := g.Items().Delete(ctx, "item-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	items, _ := g.Items().List(ctx)
	if len(items) != 1 || items[0].ID != "item-2" {
		t.Errorf("unexpected items after delete: %+v", items)
	}
}

func TestGateway_Session(t *testing.T) {
	g := newGateway()
	ctx := context.Background()

	if err := g.SetCurrentVendor(ctx, "vendor-3"); err != nil {
		t.Fatalf("set: %v", err)
	}
	current, _ := g.CurrentVendor(ctx)
	if current != "vendor-3" {
		t.Errorf("expected vendor-3, got %q", current)
	}

	if err := g.ClearCurrentVendor(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	current, _ = g.CurrentVendor(ctx)
	if current != "" {
		t.Errorf("expected cleared session, got %q", current)
	}
}

func TestGateway_Location_RoundTrip(t *testing.T) {
	g := newGateway()
	ctx := context.Background()

	loc := domain.UserLocation{GeoPoint: domain.GeoPoint{Lat: 28.6139, Lon: 77.2090}, Accuracy: 35}
	if err := g.SaveLocation(ctx, loc); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := g.LastLocation(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || *got != loc {
		t.Errorf("location did not round-trip: %+v", got)
	}
}

func TestGateway_VendorUpdate_UnknownIsNoop(t *testing.T) {
	g := newGateway()
	ctx := context.Background()

	_ = g.SaveAll(ctx, []domain.Vendor{{ID: "vendor-1", Name: "Fresh Farm Market"}})
	if err := g.Update(ctx, &domain.Vendor{ID: "vendor-404", Name: "Ghost"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	vendors, _ := g.List(ctx)
	if len(vendors) != 1 || vendors[0].Name != "Fresh Farm Market" {
		t.Errorf("unexpected vendors: %+v", vendors)
	}
}
