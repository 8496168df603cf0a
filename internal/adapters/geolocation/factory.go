package geolocation

import (
	"fmt"
	"log/slog"

	"github.com/freshconnect/api/internal/core/domain"
)

// ProviderType represents the type of location provider.
type ProviderType string

const (
	// ProviderTypeIPAPI resolves a coarse fix from the caller's public IP.
	ProviderTypeIPAPI ProviderType = "ipapi"
	// ProviderTypeStatic returns a fixed coordinate from configuration.
	ProviderTypeStatic ProviderType = "static"
	// ProviderTypeNone reports ErrUnsupported on every acquisition.
	ProviderTypeNone ProviderType = "none"
)

// ProviderConfig holds configuration for creating a location provider.
type ProviderConfig struct {
	Type    ProviderType
	BaseURL string              // ipapi endpoint (used by the ipapi provider)
	Static  domain.UserLocation // fix returned by the static provider
	Logger  *slog.Logger
}

// NewProvider creates a location provider from configuration. The
// factory keeps provider instantiation out of the services that acquire
// fixes.
func NewProvider(cfg ProviderConfig) (Provider, error) {
	switch cfg.Type {
	case ProviderTypeIPAPI:
		return NewIPAPIProvider(cfg.BaseURL, cfg.Logger), nil
	case ProviderTypeStatic:
		return &StaticProvider{Fix: cfg.Static}, nil
	case ProviderTypeNone:
		return &UnsupportedProvider{}, nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", cfg.Type)
	}
}
