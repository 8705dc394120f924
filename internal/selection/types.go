package selection

import (
	"time"

	"github.com/staykit/staykit-core/internal/catalog"
	"github.com/staykit/staykit-core/internal/compat"
	"github.com/staykit/staykit-core/internal/pricing"
	"github.com/staykit/staykit-core/internal/recommend"
	"github.com/staykit/staykit-core/internal/template"
)

// Item is a selected product and the per-room quantity chosen for it.
type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Configuration is an operator-owned property configuration: the property
// profile plus the currently selected items. Quotes are always recomputed
// from this record, never stored alongside it.
type Configuration struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	PropertyType template.PropertyType `json:"property_type"`
	Rooms        int                   `json:"rooms"`
	Region       string                `json:"region,omitempty"`
	Budget       *float64              `json:"budget,omitempty"`
	Priorities   []string              `json:"priorities,omitempty"`
	Items        []Item                `json:"items"`
	TemplateID   *string               `json:"template_id,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// Quote is the full engine output for a configuration at a moment in time:
// resolved line items, the price breakdown, compatibility warnings, and the
// top-ranked recommendations for what to add next.
type Quote struct {
	ConfigurationID string                     `json:"configuration_id"`
	Lines           []QuoteLine                `json:"lines"`
	Pricing         pricing.Breakdown          `json:"pricing"`
	Warnings        []compat.Warning           `json:"warnings"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	GeneratedAt     time.Time                  `json:"generated_at"`
}

// QuoteLine is a resolved line item: the catalogue product joined with the
// quantity selected for it.
type QuoteLine struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}
