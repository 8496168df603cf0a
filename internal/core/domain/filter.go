package domain

// SortMode selects the ordering of discovery results.
type SortMode string

const (
	SortByDistance SortMode = "distance"
	SortByRating   SortMode = "rating"
	SortByName     SortMode = "name"
)

// FilterOptions are the user-supplied discovery criteria. They live only
// for the duration of a request and are never persisted.
type FilterOptions struct {
	Categories  []Category `json:"categories"`
	MaxDistance float64    `json:"max_distance"` // km; 0 disables distance filtering
	SearchTerm  string     `json:"search_term"`
	SortBy      SortMode   `json:"sort_by"`
}
