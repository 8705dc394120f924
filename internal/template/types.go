package template

// Template is a pre-built, named product bundle recommended for a
// property-type/room-count/budget combination.
//
// Templates are static, versioned registry data: created by catalogue
// authors, loaded once at startup, never mutated at runtime. Their
// declaration order in the seed file is a deliberate priority ordering:
// when several templates match a profile equally well, the first
// declared wins.
type Template struct {
	// Identity
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	// Matching criteria
	PropertyType PropertyType `json:"property_type" yaml:"property_type"`
	RoomRange    Range        `json:"room_range" yaml:"room_range"`

	// EstimatedBudget is the inclusive currency range this bundle was
	// designed for. Used as an advisory filter only: a budget outside
	// every template's range falls back to room-range matching.
	EstimatedBudget BudgetRange `json:"estimated_budget" yaml:"estimated_budget"`

	// Products is the ordered bundle content.
	Products []Entry `json:"products" yaml:"products"`

	// Descriptive strings for the presentation layer.
	Features []string `json:"features,omitempty" yaml:"features,omitempty"`
	Benefits []string `json:"benefits,omitempty" yaml:"benefits,omitempty"`
}

// Entry is one product line within a template bundle.
type Entry struct {
	ProductID string   `json:"product_id" yaml:"product_id"`
	Quantity  int      `json:"quantity" yaml:"quantity"`
	Priority  Priority `json:"priority" yaml:"priority"`
}

// Range is an inclusive [Min, Max] integer range.
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Contains reports whether n falls within the range, bounds inclusive.
func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// BudgetRange is an inclusive [Min, Max] currency range.
type BudgetRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v falls within the range, bounds inclusive.
func (b BudgetRange) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// PropertyType classifies the property being configured.
type PropertyType string

// PropertyType constants.
const (
	PropertyHotel           PropertyType = "hotel"
	PropertyHostel          PropertyType = "hostel"
	PropertyAparthotel      PropertyType = "aparthotel"
	PropertyShortTermRental PropertyType = "short_term_rental"
	PropertyBnB             PropertyType = "bnb"
)

// AllPropertyTypes returns all valid property type values.
func AllPropertyTypes() []PropertyType {
	return []PropertyType{
		PropertyHotel, PropertyHostel, PropertyAparthotel,
		PropertyShortTermRental, PropertyBnB,
	}
}

// Priority is the template author's judgement of how necessary a product
// is within the bundle.
type Priority string

// Priority constants.
const (
	PriorityEssential   Priority = "essential"
	PriorityRecommended Priority = "recommended"
	PriorityOptional    Priority = "optional"
)

// AllPriorities returns all valid priority values.
func AllPriorities() []Priority {
	return []Priority{PriorityEssential, PriorityRecommended, PriorityOptional}
}
