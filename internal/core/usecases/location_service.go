package usecases

import (
	"context"
	"time"

	"github.com/freshconnect/api/internal/core/domain"
	"github.com/freshconnect/api/internal/core/ports"
)

// LocationService acquires geolocation fixes and remembers the last one
// so discovery can rank by distance across restarts.
type LocationService struct {
	provider ports.LocationProvider
	store    ports.LocationRepository
	timeout  time.Duration
}

func NewLocationService(provider ports.LocationProvider, store ports.LocationRepository, timeout time.Duration) *LocationService {
	return &LocationService{provider: provider, store: store, timeout: timeout}
}

// Acquire requests a fresh fix from the provider, bounded by the
// configured timeout, and persists it on success.
func (s *LocationService) Acquire(ctx context.Context) (*domain.UserLocation, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	loc, err := s.provider.Locate(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveLocation(ctx, *loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// LastKnown returns the persisted fix, nil when none exists.
func (s *LocationService) LastKnown(ctx context.Context) (*domain.UserLocation, error) {
	return s.store.LastLocation(ctx)
}

// SaveFix persists a caller-supplied location, for clients that pin a
// position manually instead of acquiring one.
func (s *LocationService) SaveFix(ctx context.Context, loc domain.UserLocation) error {
	return s.store.SaveLocation(ctx, loc)
}
