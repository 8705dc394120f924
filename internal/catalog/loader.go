package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk shape of the catalogue seed.
type seedFile struct {
	Products []Product `yaml:"products"`
}

// Load reads the catalogue seed file, validates every product, and
// returns the immutable Catalog.
//
// Validation happens here, once, at the load boundary. Downstream
// consumers (matcher, scorer, checker, calculator) assume validated
// input per the engine contract.
//
// Parameters:
//   - path: Path to the YAML seed file
//
// Returns:
//   - *Catalog: Loaded catalogue in declaration order
//   - error: If the file cannot be read or any product is invalid
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalogue seed: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing catalogue seed: %w", err)
	}

	if len(seed.Products) == 0 {
		return nil, ErrEmptyCatalog
	}

	seen := make(map[string]struct{}, len(seed.Products))
	for i := range seed.Products {
		p := &seed.Products[i]
		if err := ValidateProduct(p); err != nil {
			return nil, err
		}
		if _, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProduct, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	return New(seed.Products), nil
}
