package catalog

import (
	"fmt"
	"strings"
)

// Validation constants.
const (
	maxNameLength    = 100
	maxFeatureTags   = 30
	maxFeatureTagLen = 64
)

// validCategories is a pre-computed set for O(1) lookups.
var validCategories map[Category]struct{}

func init() {
	validCategories = make(map[Category]struct{}, len(AllCategories()))
	for _, c := range AllCategories() {
		validCategories[c] = struct{}{}
	}
}

// ValidateProduct performs comprehensive validation on a product.
// Returns an error describing the first validation failure found.
//
// This is the load-boundary check: the engine itself assumes validated
// input, so every product must pass here before entering the catalogue.
func ValidateProduct(p *Product) error {
	if p == nil {
		return ErrInvalidProduct
	}

	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidProduct)
	}

	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: %q: name is required", ErrInvalidProduct, p.ID)
	}
	if len(p.Name) > maxNameLength {
		return fmt.Errorf("%w: %q: name exceeds %d characters", ErrInvalidProduct, p.ID, maxNameLength)
	}

	if _, ok := validCategories[p.Category]; !ok {
		return fmt.Errorf("%w: %q: %q", ErrInvalidCategory, p.ID, p.Category)
	}

	if p.Price < 0 {
		return fmt.Errorf("%w: %q: price %v is negative", ErrInvalidPrice, p.ID, p.Price)
	}

	if len(p.Features) > maxFeatureTags {
		return fmt.Errorf("%w: %q: more than %d feature tags", ErrInvalidProduct, p.ID, maxFeatureTags)
	}
	for _, tag := range p.Features {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: %q: empty feature tag", ErrInvalidProduct, p.ID)
		}
		if len(tag) > maxFeatureTagLen {
			return fmt.Errorf("%w: %q: feature tag exceeds %d characters", ErrInvalidProduct, p.ID, maxFeatureTagLen)
		}
	}

	return nil
}
