package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/freshconnect/api/internal/core/domain"
	"github.com/freshconnect/api/internal/core/ports"
)

// Storage keys, one JSON document per collection. The key names are part
// of the persisted data format and must not change.
const (
	keyVendors     = "produce-app-vendors"
	keyItems       = "produce-app-items"
	keyAuth        = "produce-app-auth"
	keyUserLoc     = "produce-app-user-location"
	keyCurrentUser = "produce-app-current-user"
)

// ErrItemNotFound is returned when an item ID has no match.
var ErrItemNotFound = ports.ErrItemNotFound

// Gateway implements the repository ports over a ports.KeyValueStore.
// A missing key reads as an empty collection; malformed data surfaces as
// an error rather than being silently dropped.
type Gateway struct {
	kv  ports.KeyValueStore
	now func() time.Time
}

// NewGateway creates a storage gateway on the given key-value backend.
func NewGateway(kv ports.KeyValueStore) *Gateway {
	return &Gateway{kv: kv, now: time.Now}
}

func getCollection[T any](ctx context.Context, kv ports.KeyValueStore, key string) ([]T, error) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

func setCollection[T any](ctx context.Context, kv ports.KeyValueStore, key string, values []T) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// --- Vendors ---

func (g *Gateway) List(ctx context.Context) ([]domain.Vendor, error) {
	return getCollection[domain.Vendor](ctx, g.kv, keyVendors)
}

func (g *Gateway) SaveAll(ctx context.Context, vendors []domain.Vendor) error {
	return setCollection(ctx, g.kv, keyVendors, vendors)
}

func (g *Gateway) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	vendors, err := g.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range vendors {
		if vendors[i].ID == id {
			return &vendors[i], nil
		}
	}
	return nil, fmt.Errorf("vendor %s: not found", id)
}

// Update replaces the vendor with a matching ID. Unknown IDs are a
// silent no-op, matching the seeded-collection lifecycle.
func (g *Gateway) Update(ctx context.Context, vendor *domain.Vendor) error {
	vendors, err := g.List(ctx)
	if err != nil {
		return err
	}
	for i := range vendors {
		if vendors[i].ID == vendor.ID {
			vendors[i] = *vendor
			return g.SaveAll(ctx, vendors)
		}
	}
	return nil
}

// --- Items ---

// Items returns an item-facing view of the gateway so one Gateway can
// satisfy both the vendor and item repository ports.
func (g *Gateway) Items() *ItemStore { return &ItemStore{g: g} }

// ItemStore implements ports.ItemRepository.
type ItemStore struct {
	g *Gateway
}

func (s *ItemStore) List(ctx context.Context) ([]domain.ProduceItem, error) {
	return getCollection[domain.ProduceItem](ctx, s.g.kv, keyItems)
}

func (s *ItemStore) SaveAll(ctx context.Context, items []domain.ProduceItem) error {
	return setCollection(ctx, s.g.kv, keyItems, items)
}

func (s *ItemStore) ListByVendor(ctx context.Context, vendorID string) ([]domain.ProduceItem, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.ProduceItem
	for _, item := range items {
		if item.VendorID == vendorID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *ItemStore) Add(ctx context.Context, item *domain.ProduceItem) error {
	items, err := s.List(ctx)
	if err != nil {
		return err
	}
	items = append(items, *item)
	return s.SaveAll(ctx, items)
}

// Update replaces the stored item and stamps LastUpdated.
func (s *ItemStore) Update(ctx context.Context, item *domain.ProduceItem) error {
	items, err := s.List(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == item.ID {
			item.LastUpdated = s.g.now()
			items[i] = *item
			return s.SaveAll(ctx, items)
		}
	}
	return ErrItemNotFound
}

func (s *ItemStore) Delete(ctx context.Context, id string) error {
	items, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	return s.SaveAll(ctx, kept)
}

// --- Credentials ---

// Credentials returns the credential-facing view of the gateway.
func (g *Gateway) Credentials() *CredentialStore { return &CredentialStore{g: g} }

// CredentialStore implements ports.CredentialRepository.
type CredentialStore struct {
	g *Gateway
}

func (s *CredentialStore) List(ctx context.Context) ([]domain.VendorCredential, error) {
	return getCollection[domain.VendorCredential](ctx, s.g.kv, keyAuth)
}

func (s *CredentialStore) SaveAll(ctx context.Context, creds []domain.VendorCredential) error {
	return setCollection(ctx, s.g.kv, keyAuth, creds)
}

// --- Session ---

// CurrentVendor returns the logged-in vendor ID, "" when no session.
func (g *Gateway) CurrentVendor(ctx context.Context) (string, error) {
	data, err := g.kv.Get(ctx, keyCurrentUser)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", keyCurrentUser, err)
	}
	return string(data), nil
}

func (g *Gateway) SetCurrentVendor(ctx context.Context, vendorID string) error {
	return g.kv.Set(ctx, keyCurrentUser, []byte(vendorID))
}

func (g *Gateway) ClearCurrentVendor(ctx context.Context) error {
	return g.kv.Delete(ctx, keyCurrentUser)
}

// --- User location ---

// LastLocation returns the persisted fix, or nil when none was saved.
func (g *Gateway) LastLocation(ctx context.Context) (*domain.UserLocation, error) {
	data, err := g.kv.Get(ctx, keyUserLoc)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", keyUserLoc, err)
	}
	var loc domain.UserLocation
	if err := json.Unmarshal(data, &loc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", keyUserLoc, err)
	}
	return &loc, nil
}

func (g *Gateway) SaveLocation(ctx context.Context, loc domain.UserLocation) error {
	data, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", keyUserLoc, err)
	}
	return g.kv.Set(ctx, keyUserLoc, data)
}

// --- Seeding ---

// InitializeData seeds each collection only when it is currently empty.
// Calling it against populated storage never overwrites existing data.
func (g *Gateway) InitializeData(ctx context.Context, vendors []domain.Vendor, items []domain.ProduceItem, creds []domain.VendorCredential) error {
	existing, err := g.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		if err := g.SaveAll(ctx, vendors); err != nil {
			return err
		}
	}

	existingItems, err := g.Items().List(ctx)
	if err != nil {
		return err
	}
	if len(existingItems) == 0 {
		if err := g.Items().SaveAll(ctx, items); err != nil {
			return err
		}
	}

	existingCreds, err := g.Credentials().List(ctx)
	if err != nil {
		return err
	}
	if len(existingCreds) == 0 {
		if err := g.Credentials().SaveAll(ctx, creds); err != nil {
			return err
		}
	}
	return nil
}
