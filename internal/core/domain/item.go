package domain

import "time"

// Category classifies a produce item.
type Category string

const (
	CategoryVegetables Category = "Vegetables"
	CategoryFruits     Category = "Fruits"
	CategoryOrganic    Category = "Organic"
	CategoryLocal      Category = "Local"
	CategorySeasonal   Category = "Seasonal"
)

// Categories returns all known produce categories in display order.
func Categories() []Category {
	return []Category{
		CategoryVegetables,
		CategoryFruits,
		CategoryOrganic,
		CategoryLocal,
		CategorySeasonal,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryVegetables, CategoryFruits, CategoryOrganic, CategoryLocal, CategorySeasonal:
		return true
	}
	return false
}

// ProduceItem is a sellable good offered by exactly one vendor.
// VendorID is not enforced referentially: an item pointing at a missing
// vendor is simply invisible to discovery.
type ProduceItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	PricePerKg  float64   `json:"price_per_kg"`
	Quantity    int       `json:"quantity"` // kilograms on hand
	Description string    `json:"description"`
	VendorID    string    `json:"vendor_id"`
	LastUpdated time.Time `json:"last_updated"`
	IsAvailable bool      `json:"is_available"`
}
