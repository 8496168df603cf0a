package geolocation

import (
	"context"
	"errors"
	"testing"

	"github.com/freshconnect/api/internal/core/domain"
)

func TestNewProvider_Static(t *testing.T) {
	fix := domain.UserLocation{GeoPoint: domain.GeoPoint{Lat: 19.076, Lon: 72.8777}, Accuracy: 100}
	p, err := NewProvider(ProviderConfig{Type: ProviderTypeStatic, Static: fix})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := p.Locate(context.Background())
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if *got != fix {
		t.Errorf("expected %+v, got %+v", fix, *got)
	}
}

func TestNewProvider_None(t *testing.T) {
	p, err := NewProvider(ProviderConfig{Type: ProviderTypeNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Locate(context.Background()); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestNewProvider_UnknownType(t *testing.T) {
	if _, err := NewProvider(ProviderConfig{Type: "gps"}); err == nil {
		t.Error("expected error for unknown provider type")
	}
}
