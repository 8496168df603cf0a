package geospatial

import (
	"fmt"
	"math"

	"github.com/freshconnect/api/internal/core/domain"
)

const earthRadiusKm = 6371.0

// Distance calculates the great-circle distance in kilometers between
// two points using the haversine formula. Inputs are not range-checked;
// out-of-range coordinates degrade through NaN, which downstream
// consumers treat as "undefined distance".
func Distance(a, b domain.GeoPoint) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// FormatDistance renders a distance for display: sub-kilometer values in
// whole meters, everything from 1 km up with one decimal place.
func FormatDistance(km float64) string {
	if km < 1.0 {
		return fmt.Sprintf("%.0f m", km*1000)
	}
	return fmt.Sprintf("%.1f km", km)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
