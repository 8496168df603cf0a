package ports

import (
	"context"
	"errors"

	"github.com/freshconnect/api/internal/core/domain"
)

// ErrKeyNotFound is returned by a KeyValueStore when a key is absent.
var ErrKeyNotFound = errors.New("key not found")

// ErrItemNotFound is returned when an item ID has no match.
var ErrItemNotFound = errors.New("item not found")

// KeyValueStore is the persistence primitive every storage backend
// provides. Collections are stored as whole JSON documents under fixed
// keys; writes are visible to subsequent reads.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// VendorRepository persists the vendor collection.
type VendorRepository interface {
	List(ctx context.Context) ([]domain.Vendor, error)
	SaveAll(ctx context.Context, vendors []domain.Vendor) error
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)
	// Update replaces the vendor with a matching ID; vendors are never
	// created or deleted this way.
	Update(ctx context.Context, vendor *domain.Vendor) error
}

// ItemRepository persists produce items.
type ItemRepository interface {
	List(ctx context.Context) ([]domain.ProduceItem, error)
	SaveAll(ctx context.Context, items []domain.ProduceItem) error
	ListByVendor(ctx context.Context, vendorID string) ([]domain.ProduceItem, error)
	Add(ctx context.Context, item *domain.ProduceItem) error
	// Update replaces the item with a matching ID and stamps LastUpdated.
	Update(ctx context.Context, item *domain.ProduceItem) error
	Delete(ctx context.Context, id string) error
}

// CredentialRepository persists vendor login records.
type CredentialRepository interface {
	List(ctx context.Context) ([]domain.VendorCredential, error)
	SaveAll(ctx context.Context, creds []domain.VendorCredential) error
}

// SessionRepository persists the current vendor session.
type SessionRepository interface {
	// CurrentVendor returns the logged-in vendor ID, or "" when no
	// session exists.
	CurrentVendor(ctx context.Context) (string, error)
	SetCurrentVendor(ctx context.Context, vendorID string) error
	ClearCurrentVendor(ctx context.Context) error
}

// LocationRepository persists the last-known user location.
type LocationRepository interface {
	// LastLocation returns nil when no fix has been saved.
	LastLocation(ctx context.Context) (*domain.UserLocation, error)
	SaveLocation(ctx context.Context, loc domain.UserLocation) error
}
