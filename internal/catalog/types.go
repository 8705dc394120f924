package catalog

// Product represents a single orderable smart-device product.
//
// Products are immutable reference data: they are loaded once from the
// catalogue seed file at startup and never mutated at runtime. Price is the
// per-unit price; for room-scoped products (locks, switches, sensors) the
// quantity is multiplied by the room count when pricing a bundle.
type Product struct {
	// Identity
	ID   string `json:"id" yaml:"id"`
	SKU  string `json:"sku" yaml:"sku"`
	Name string `json:"name" yaml:"name"`

	// Classification
	Category Category `json:"category" yaml:"category"`

	// Price per unit, non-negative. Presentation-layer rounding is the
	// caller's responsibility; the engine works in exact decimal values.
	Price float64 `json:"price" yaml:"price"`

	// Features are free-text capability tags used by the compatibility
	// rules and the recommendation scorer.
	// Example: ["battery-powered", "mobile-key", "guest-experience"]
	Features []string `json:"features,omitempty" yaml:"features,omitempty"`

	// Region is an optional market tag. Empty means available everywhere.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Certifications lists compliance marks (e.g., "CE", "FCC", "ANSI-A156.25").
	Certifications []string `json:"certifications,omitempty" yaml:"certifications,omitempty"`

	// Attributes holds vendor-specific extended attributes that have no
	// fixed schema. Access is explicit and checked; nothing in the engine
	// assumes a key exists.
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// HasFeature reports whether the product carries the given feature tag.
func (p Product) HasFeature(tag string) bool {
	for _, f := range p.Features {
		if f == tag {
			return true
		}
	}
	return false
}

// DeepCopy creates a complete independent copy of the Product.
// Slice and map fields are cloned so modifications to the copy do not
// affect the original. This keeps the accessor's cache isolated.
func (p *Product) DeepCopy() *Product {
	if p == nil {
		return nil
	}

	cpy := *p // Shallow copy of value fields

	if p.Features != nil {
		cpy.Features = make([]string, len(p.Features))
		copy(cpy.Features, p.Features)
	}

	if p.Certifications != nil {
		cpy.Certifications = make([]string, len(p.Certifications))
		copy(cpy.Certifications, p.Certifications)
	}

	if p.Attributes != nil {
		cpy.Attributes = make(map[string]any, len(p.Attributes))
		for k, v := range p.Attributes {
			cpy.Attributes[k] = v
		}
	}

	return &cpy
}

// Category represents the functional kind of a product.
type Category string

// Category constants.
const (
	CategoryLock   Category = "lock"
	CategoryKiosk  Category = "kiosk"
	CategorySwitch Category = "switch"
	CategoryDimmer Category = "dimmer"
	CategorySensor Category = "sensor"
	CategoryBlinds Category = "blinds"
	CategoryOther  Category = "other"
)

// AllCategories returns all valid category values.
func AllCategories() []Category {
	return []Category{
		CategoryLock, CategoryKiosk, CategorySwitch, CategoryDimmer,
		CategorySensor, CategoryBlinds, CategoryOther,
	}
}

// Well-known feature tags consumed by the compatibility rules.
//
// Catalogue authors tag products with these; the checker never inspects
// product names or SKUs.
const (
	// FeatureBatteryPowered marks a battery-operated device (typically locks).
	FeatureBatteryPowered = "battery-powered"

	// FeatureWired marks a mains-wired device of the same family.
	FeatureWired = "wired"

	// FeatureCardDispensing marks a kiosk capability that needs a card
	// dispenser unit in the same selection.
	FeatureCardDispensing = "card-dispensing"

	// FeatureCardDispenser marks the dispenser peripheral itself.
	FeatureCardDispenser = "card-dispenser"
)
