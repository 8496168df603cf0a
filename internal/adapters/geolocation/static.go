package geolocation

import (
	"context"

	"github.com/freshconnect/api/internal/core/domain"
)

// StaticProvider always resolves to a configured fix. Intended for
// deployments pinned to a single market area and for development.
type StaticProvider struct {
	Fix domain.UserLocation
}

func (p *StaticProvider) Locate(ctx context.Context) (*domain.UserLocation, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrTimeout
	}
	fix := p.Fix
	return &fix, nil
}

// UnsupportedProvider is used when no location capability is configured;
// every acquisition fails with ErrUnsupported.
type UnsupportedProvider struct{}

func (p *UnsupportedProvider) Locate(ctx context.Context) (*domain.UserLocation, error) {
	return nil, ErrUnsupported
}
