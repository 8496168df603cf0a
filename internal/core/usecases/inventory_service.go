package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/freshconnect/api/internal/core/domain"
	"github.com/freshconnect/api/internal/core/ports"
)

var (
	// ErrInvalidItem is returned when an item fails validation.
	ErrInvalidItem = errors.New("invalid item")
)

// NewItem carries the caller-supplied fields of a produce item. ID and
// LastUpdated are assigned by the service.
type NewItem struct {
	Name        string          `json:"name"`
	Category    domain.Category `json:"category"`
	PricePerKg  float64         `json:"price_per_kg"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description"`
	IsAvailable bool            `json:"is_available"`
}

// ProfileUpdate holds the vendor profile fields a dashboard user may
// change. Nil fields are left untouched.
type ProfileUpdate struct {
	Name          *string               `json:"name"`
	Description   *string               `json:"description"`
	Specialties   []string              `json:"specialties"`
	Contact       *domain.Contact       `json:"contact"`
	BusinessHours *domain.BusinessHours `json:"business_hours"`
}

// InventorySummary aggregates a vendor's stock for the dashboard.
type InventorySummary struct {
	TotalItems     int                     `json:"total_items"`
	AvailableItems int                     `json:"available_items"`
	OutOfStock     int                     `json:"out_of_stock"`
	TotalValue     float64                 `json:"total_value"` // price x quantity, summed
	ByCategory     map[domain.Category]int `json:"by_category"`
}

// InventoryService implements the vendor dashboard: item CRUD, stock
// aggregates and profile edits. Every mutation is scoped to the vendor
// performing it; items belonging to other vendors read as not found.
type InventoryService struct {
	vendors ports.VendorRepository
	items   ports.ItemRepository
	events  ports.EventPublisher
	logger  *slog.Logger
	now     func() time.Time
}

func NewInventoryService(vendors ports.VendorRepository, items ports.ItemRepository, events ports.EventPublisher, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		vendors: vendors,
		items:   items,
		events:  events,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *InventoryService) validate(in NewItem) error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if !in.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidItem, in.Category)
	}
	if in.PricePerKg < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidItem)
	}
	if in.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidItem)
	}
	return nil
}

// AddItem creates a new item for the vendor. IDs are derived from the
// creation timestamp, matching the existing data format.
func (s *InventoryService) AddItem(ctx context.Context, vendorID string, in NewItem) (*domain.ProduceItem, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	now := s.now()
	item := domain.ProduceItem{
		ID:          fmt.Sprintf("item-%d", now.UnixMilli()),
		Name:        in.Name,
		Category:    in.Category,
		PricePerKg:  in.PricePerKg,
		Quantity:    in.Quantity,
		Description: in.Description,
		VendorID:    vendorID,
		LastUpdated: now,
		IsAvailable: in.IsAvailable,
	}
	if err := s.items.Add(ctx, &item); err != nil {
		return nil, err
	}
	s.publishItem(ctx, "created", &item)
	return &item, nil
}

// UpdateItem replaces the vendor's item with new field values. The item
// keeps its ID and vendor; LastUpdated is stamped by the repository.
func (s *InventoryService) UpdateItem(ctx context.Context, vendorID, itemID string, in NewItem) (*domain.ProduceItem, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	existing, err := s.ownedItem(ctx, vendorID, itemID)
	if err != nil {
		return nil, err
	}
	item := *existing
	item.Name = in.Name
	item.Category = in.Category
	item.PricePerKg = in.PricePerKg
	item.Quantity = in.Quantity
	item.Description = in.Description
	item.IsAvailable = in.IsAvailable
	if err := s.items.Update(ctx, &item); err != nil {
		return nil, err
	}
	s.publishItem(ctx, "updated", &item)
	return &item, nil
}

// DeleteItem removes the vendor's item.
func (s *InventoryService) DeleteItem(ctx context.Context, vendorID, itemID string) error {
	item, err := s.ownedItem(ctx, vendorID, itemID)
	if err != nil {
		return err
	}
	if err := s.items.Delete(ctx, itemID); err != nil {
		return err
	}
	s.publishItem(ctx, "deleted", item)
	return nil
}

// ToggleAvailability flips the item's availability flag.
func (s *InventoryService) ToggleAvailability(ctx context.Context, vendorID, itemID string) (*domain.ProduceItem, error) {
	existing, err := s.ownedItem(ctx, vendorID, itemID)
	if err != nil {
		return nil, err
	}
	item := *existing
	item.IsAvailable = !item.IsAvailable
	if err := s.items.Update(ctx, &item); err != nil {
		return nil, err
	}
	s.publishItem(ctx, "updated", &item)
	return &item, nil
}

// Items lists the vendor's own inventory.
func (s *InventoryService) Items(ctx context.Context, vendorID string) ([]domain.ProduceItem, error) {
	return s.items.ListByVendor(ctx, vendorID)
}

// Summary computes stock aggregates over the vendor's inventory.
func (s *InventoryService) Summary(ctx context.Context, vendorID string) (*InventorySummary, error) {
	items, err := s.items.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	sum := &InventorySummary{ByCategory: make(map[domain.Category]int)}
	for _, item := range items {
		sum.TotalItems++
		if item.IsAvailable {
			sum.AvailableItems++
		}
		if item.Quantity == 0 {
			sum.OutOfStock++
		}
		sum.TotalValue += item.PricePerKg * float64(item.Quantity)
		sum.ByCategory[item.Category]++
	}
	return sum, nil
}

// UpdateProfile applies a partial update to the vendor's own record.
// Rating, activity and location are not editable from the dashboard.
func (s *InventoryService) UpdateProfile(ctx context.Context, vendorID string, update ProfileUpdate) (*domain.Vendor, error) {
	vendor, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		if *update.Name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidItem)
		}
		vendor.Name = *update.Name
	}
	if update.Description != nil {
		vendor.Description = *update.Description
	}
	if update.Specialties != nil {
		vendor.Specialties = update.Specialties
	}
	if update.Contact != nil {
		vendor.Contact = *update.Contact
	}
	if update.BusinessHours != nil {
		vendor.BusinessHours = *update.BusinessHours
	}
	if err := s.vendors.Update(ctx, vendor); err != nil {
		return nil, err
	}
	if s.events != nil {
		if err := s.events.PublishVendorUpdate(ctx, vendor); err != nil {
			s.warn("publish vendor update", err)
		}
	}
	return vendor, nil
}

// ownedItem resolves itemID within the vendor's inventory. Items owned
// by anyone else read as not found.
func (s *InventoryService) ownedItem(ctx context.Context, vendorID, itemID string) (*domain.ProduceItem, error) {
	items, err := s.items.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == itemID {
			return &items[i], nil
		}
	}
	return nil, ports.ErrItemNotFound
}

// publishItem emits a change event; mutations never fail on a broker
// error.
func (s *InventoryService) publishItem(ctx context.Context, op string, item *domain.ProduceItem) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishItemChange(ctx, op, item); err != nil {
		s.warn("publish item change", err)
	}
}

func (s *InventoryService) warn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, "error", err)
	}
}
