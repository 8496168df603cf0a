package ports

import (
	"context"

	"github.com/freshconnect/api/internal/core/domain"
)

// EventPublisher publishes market change events to a message broker.
type EventPublisher interface {
	PublishItemChange(ctx context.Context, op string, item *domain.ProduceItem) error
	PublishVendorUpdate(ctx context.Context, vendor *domain.Vendor) error
	PublishBroadcast(ctx context.Context, data []byte) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// LocationProvider acquires a geolocation fix from some host facility.
// Implementations perform no retries; callers decide when to re-acquire.
type LocationProvider interface {
	Locate(ctx context.Context) (*domain.UserLocation, error)
}
