package recommend

import (
	"github.com/staykit/staykit-core/internal/catalog"
	"github.com/staykit/staykit-core/internal/template"
)

// Context is the immutable property profile a recommendation run scores
// against. Callers construct a fresh Context per call and own all state;
// the scorer never mutates or retains it.
type Context struct {
	// PropertyType and Rooms describe the property being configured.
	PropertyType template.PropertyType `json:"property_type"`
	Rooms        int                   `json:"rooms"`

	// Region restricts the candidate pool: products tagged with a
	// different market are excluded. Untagged products always qualify.
	Region string `json:"region,omitempty"`

	// Budget is the optional total budget. Candidates that would exceed
	// the remaining headroom are down-weighted, never excluded.
	Budget *float64 `json:"budget,omitempty"`

	// Priorities are the operator's strategic tags in order of importance
	// (e.g., "guest-experience", "automation", "energy-saving").
	Priorities []string `json:"priorities,omitempty"`

	// Existing is the current selection. Products already selected are
	// excluded from the candidate pool by ID.
	Existing []catalog.Product `json:"existing_products,omitempty"`
}

// Category is the engine's own strength label for a single suggestion.
// It is distinct from a template entry's priority: a template priority is
// the bundle author's judgement, a recommendation category is the
// scorer's judgement for this specific property profile.
type Category string

// Category constants, strongest first.
const (
	CategoryEssential   Category = "essential"
	CategoryRecommended Category = "recommended"
	CategoryPremium     Category = "premium"
	CategoryOptional    Category = "optional"
)

// Recommendation is one scored suggestion.
type Recommendation struct {
	Product  catalog.Product `json:"product"`
	Category Category        `json:"category"`

	// Reasons describe which scoring factors fired, most important first.
	Reasons []string `json:"reasons"`

	// Score is the internal ranking number. Ordering is the contract;
	// the absolute value is not guaranteed stable across releases.
	Score float64 `json:"score"`
}
