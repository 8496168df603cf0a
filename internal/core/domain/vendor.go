package domain

// Contact holds a vendor's public contact details.
type Contact struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// BusinessHours describes when a vendor is open. Days is an ordered
// list of weekday names.
type BusinessHours struct {
	Open  string   `json:"open"`
	Close string   `json:"close"`
	Days  []string `json:"days"`
}

// Vendor represents a produce seller with a fixed market location.
type Vendor struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Location      GeoPoint      `json:"location"`
	Contact       Contact       `json:"contact"`
	BusinessHours BusinessHours `json:"business_hours"`
	Specialties   []string      `json:"specialties"`
	Rating        float64       `json:"rating"` // 0–5
	Description   string        `json:"description"`
	IsActive      bool          `json:"is_active"`
	Distance      *float64      `json:"distance,omitempty"` // computed field, km
}
