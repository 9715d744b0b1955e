package listing

import "fmt"

// Category is one of the fixed marketplace listing categories
type Category string

const (
	CategoryAccessories Category = "Accessories"
	CategoryBottoms     Category = "Bottoms"
	CategoryFootwear    Category = "Footwear"
	CategoryOuterwear   Category = "Outerwear"
	CategoryTops        Category = "Tops"
)

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryAccessories, CategoryBottoms, CategoryFootwear, CategoryOuterwear, CategoryTops:
		return true
	}
	return false
}

// Condition is the marketplace condition vocabulary
type Condition string

const (
	ConditionBrandNew Condition = "Brand New"
	ConditionLikeNew  Condition = "Like New"
	ConditionGood     Condition = "Good"
	ConditionFair     Condition = "Fair"
	ConditionPoor     Condition = "Poor"
)

// Gender is the marketplace gender vocabulary
type Gender string

const (
	GenderMen    Gender = "Men"
	GenderWomen  Gender = "Women"
	GenderUnisex Gender = "Unisex"
)

// ShippingOption is the marketplace shipping vocabulary
type ShippingOption string

const (
	ShippingStandard ShippingOption = "Standard"
	ShippingExpress  ShippingOption = "Express"
	ShippingMeetUp   ShippingOption = "Meet-up"
)

// Draft is the canonical listing payload sent to the creation API.
// It is constructed once per successfully scraped page and not mutated after.
type Draft struct {
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Price          float64        `json:"price"`
	Category       Category       `json:"category"`
	ShippingOption ShippingOption `json:"shippingOption"`
	Brand          string         `json:"brand"`
	Size           *string        `json:"size"`
	Condition      Condition      `json:"condition"`
	Material       *string        `json:"material"`
	Tags           []string       `json:"tags"`
	Gender         Gender         `json:"gender"`
	Images         []string       `json:"images"`
	ShippingFee    *float64       `json:"shippingFee"`
	Location       *string        `json:"location"`
	Quantity       int            `json:"quantity"`
	Listed         bool           `json:"listed"`
	Sold           bool           `json:"sold"`
}

// Validate checks the draft invariants before submission
func (d *Draft) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if d.Price <= 0 {
		return fmt.Errorf("price must be positive, got %v", d.Price)
	}
	if !d.Category.Valid() {
		return fmt.Errorf("unknown category: %q", d.Category)
	}
	if d.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	return nil
}
