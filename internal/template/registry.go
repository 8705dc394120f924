package template

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/staykit/staykit-core/internal/catalog"
)

// validPropertyTypes and validPriorities are pre-computed sets for O(1)
// lookups during load-time validation.
var (
	validPropertyTypes map[PropertyType]struct{}
	validPriorities    map[Priority]struct{}
)

func init() {
	validPropertyTypes = make(map[PropertyType]struct{}, len(AllPropertyTypes()))
	for _, t := range AllPropertyTypes() {
		validPropertyTypes[t] = struct{}{}
	}

	validPriorities = make(map[Priority]struct{}, len(AllPriorities()))
	for _, p := range AllPriorities() {
		validPriorities[p] = struct{}{}
	}
}

// Registry holds the loaded templates in declaration order.
//
// Declaration order is a deliberate priority ordering maintained by the
// catalogue authors; the registry never re-sorts it.
//
// Thread Safety: Registry is immutable after construction and safe for
// concurrent use without locking.
type Registry struct {
	templates []Template
	byID      map[string]int
}

// seedFile is the on-disk shape of the template seed.
type seedFile struct {
	Templates []Template `yaml:"templates"`
}

// Load reads the template seed file, validates every template against
// the catalogue, and returns the immutable Registry.
//
// As with the catalogue, all structural validation happens at this load
// boundary. Malformed ranges (min > max), unknown priorities, unknown
// property types and dangling product references are rejected here so
// the matcher and scorer can assume well-formed registry data.
//
// Parameters:
//   - path: Path to the YAML seed file
//   - cat: Loaded catalogue, used to verify product references
//
// Returns:
//   - *Registry: Loaded registry in declaration order
//   - error: If the file cannot be read or any template is invalid
func Load(path string, cat *catalog.Catalog) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template seed: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing template seed: %w", err)
	}

	if len(seed.Templates) == 0 {
		return nil, ErrEmptyRegistry
	}

	seen := make(map[string]struct{}, len(seed.Templates))
	for i := range seed.Templates {
		t := &seed.Templates[i]
		if err := ValidateTemplate(t, cat); err != nil {
			return nil, err
		}
		if _, ok := seen[t.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTemplate, t.ID)
		}
		seen[t.ID] = struct{}{}
	}

	return NewRegistry(seed.Templates), nil
}

// NewRegistry builds a Registry from an already-validated template list.
func NewRegistry(templates []Template) *Registry {
	byID := make(map[string]int, len(templates))
	for i, t := range templates {
		byID[t.ID] = i
	}
	return &Registry{
		templates: templates,
		byID:      byID,
	}
}

// Templates returns all templates in declaration order.
// The returned slice is a copy; mutating it does not affect the registry.
func (r *Registry) Templates() []Template {
	out := make([]Template, len(r.templates))
	copy(out, r.templates)
	return out
}

// Get returns the template with the given ID, or false if absent.
func (r *Registry) Get(id string) (Template, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Template{}, false
	}
	return r.templates[i], true
}

// Len returns the number of templates in the registry.
func (r *Registry) Len() int {
	return len(r.templates)
}

// ValidateTemplate performs comprehensive validation on a template.
// Returns an error describing the first validation failure found.
// When cat is non-nil, product references are checked against it.
func ValidateTemplate(t *Template, cat *catalog.Catalog) error {
	if t == nil {
		return ErrInvalidTemplate
	}

	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidTemplate)
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: %q: name is required", ErrInvalidTemplate, t.ID)
	}

	if _, ok := validPropertyTypes[t.PropertyType]; !ok {
		return fmt.Errorf("%w: %q: %q", ErrInvalidPropertyType, t.ID, t.PropertyType)
	}

	if t.RoomRange.Min < 1 || t.RoomRange.Min > t.RoomRange.Max {
		return fmt.Errorf("%w: %q: room range [%d,%d]", ErrInvalidRange, t.ID, t.RoomRange.Min, t.RoomRange.Max)
	}
	if t.EstimatedBudget.Min < 0 || t.EstimatedBudget.Min > t.EstimatedBudget.Max {
		return fmt.Errorf("%w: %q: budget range [%v,%v]", ErrInvalidRange, t.ID, t.EstimatedBudget.Min, t.EstimatedBudget.Max)
	}

	if len(t.Products) == 0 {
		return fmt.Errorf("%w: %q: at least one product entry is required", ErrInvalidTemplate, t.ID)
	}

	for _, e := range t.Products {
		if strings.TrimSpace(e.ProductID) == "" {
			return fmt.Errorf("%w: %q: entry with empty product id", ErrInvalidTemplate, t.ID)
		}
		if e.Quantity < 1 {
			return fmt.Errorf("%w: %q: entry %q has quantity %d", ErrInvalidTemplate, t.ID, e.ProductID, e.Quantity)
		}
		if _, ok := validPriorities[e.Priority]; !ok {
			return fmt.Errorf("%w: %q: entry %q has priority %q", ErrInvalidPriority, t.ID, e.ProductID, e.Priority)
		}
		if cat != nil {
			if _, err := cat.Get(e.ProductID); err != nil {
				return fmt.Errorf("%w: %q references %q", ErrUnknownProduct, t.ID, e.ProductID)
			}
		}
	}

	return nil
}
