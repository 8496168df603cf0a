package domain

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// UserLocation is a resolved geolocation fix: a coordinate plus the
// provider's accuracy estimate in meters. A fix is never mutated
// partially; a new acquisition replaces it wholesale.
type UserLocation struct {
	GeoPoint
	Accuracy float64 `json:"accuracy"`
}
