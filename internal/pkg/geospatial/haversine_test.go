package geospatial

import (
	"math"
	"testing"

	"github.com/freshconnect/api/internal/core/domain"
)

func TestDistance_Symmetry(t *testing.T) {
	pairs := [][2]domain.GeoPoint{
		{{Lat: 28.6139, Lon: 77.2090}, {Lat: 19.0760, Lon: 72.8777}}, // Delhi-Mumbai
		{{Lat: 43.263, Lon: -2.935}, {Lat: 40.4168, Lon: -3.7038}},
		{{Lat: 0, Lon: 0}, {Lat: -33.8688, Lon: 151.2093}},
	}
	for _, p := range pairs {
		ab := Distance(p[0], p[1])
		ba := Distance(p[1], p[0])
		if math.Abs(ab-ba) > 1e-6 {
			t.Errorf("distance not symmetric: %f vs %f", ab, ba)
		}
	}
}

func TestDistance_Identity(t *testing.T) {
	p := domain.GeoPoint{Lat: 12.9716, Lon: 77.5946}
	if d := Distance(p, p); d != 0 {
		t.Errorf("expected 0 for identical points, got %f", d)
	}
}

func TestDistance_OneDegree(t *testing.T) {
	// One degree of longitude or latitude at the equator is ~111.19 km.
	origin := domain.GeoPoint{Lat: 0, Lon: 0}

	dLon := Distance(origin, domain.GeoPoint{Lat: 0, Lon: 1})
	if math.Abs(dLon-111.19) > 0.05 {
		t.Errorf("one degree longitude at equator: expected ~111.19 km, got %f", dLon)
	}

	dLat := Distance(origin, domain.GeoPoint{Lat: 1, Lon: 0})
	if math.Abs(dLat-111.19) > 0.05 {
		t.Errorf("one degree latitude: expected ~111.19 km, got %f", dLat)
	}
}

func TestDistance_NaNPropagates(t *testing.T) {
	d := Distance(domain.GeoPoint{Lat: math.NaN(), Lon: 0}, domain.GeoPoint{Lat: 0, Lon: 1})
	if !math.IsNaN(d) {
		t.Errorf("expected NaN to propagate, got %f", d)
	}
}

func TestFormatDistance(t *testing.T) {
	cases := []struct {
		km   float64
		want string
	}{
		{0.35, "350 m"},
		{12.34, "12.3 km"},
		{1.0, "1.0 km"}, // boundary: exactly 1 km renders in km
		{0.9994, "999 m"},
		{25, "25.0 km"},
	}
	for _, c := range cases {
		if got := FormatDistance(c.km); got != c.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", c.km, got, c.want)
		}
	}
}
