package catalog

// Catalog is the read-only accessor over the loaded product list.
//
// It preserves the seed file's declaration order, which downstream
// consumers rely on for stable listings. The engine components receive
// plain []Product slices; Catalog only exists so callers have cheap
// indexed lookups without re-scanning the slice.
//
// Thread Safety: Catalog is immutable after construction and safe for
// concurrent use without locking.
type Catalog struct {
	products []Product
	byID     map[string]int // index into products
}

// New builds a Catalog from an already-validated product list.
// Use Load to read and validate a seed file in one step.
func New(products []Product) *Catalog {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}
	return &Catalog{
		products: products,
		byID:     byID,
	}
}

// Products returns all products in declaration order.
// The returned slice is a copy; mutating it does not affect the catalogue.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product with the given ID.
func (c *Catalog) Get(id string) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return c.products[i], nil
}

// ByCategory returns products in the given category, in declaration order.
func (c *Catalog) ByCategory(cat Category) []Product {
	var out []Product
	for _, p := range c.products {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

// ForRegion returns products available in the given region: products with
// no region tag plus products tagged with exactly that region. An empty
// region returns only untagged products.
func (c *Catalog) ForRegion(region string) []Product {
	var out []Product
	for _, p := range c.products {
		if p.Region == "" || p.Region == region {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of products in the catalogue.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Resolve maps a list of product IDs to products, skipping unknown IDs.
// Used when rehydrating a stored selection against the current catalogue;
// a product retired from the catalogue silently drops out of the
// selection rather than failing the whole configuration.
func (c *Catalog) Resolve(ids []string) []Product {
	var out []Product
	for _, id := range ids {
		if i, ok := c.byID[id]; ok {
			out = append(out, c.products[i])
		}
	}
	return out
}
