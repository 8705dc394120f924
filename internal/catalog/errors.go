package catalog

import "errors"

// Domain errors for the catalog package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, catalog.ErrProductNotFound) {
//	    // handle not found case
//	}
var (
	// ErrProductNotFound is returned when a product ID does not exist.
	ErrProductNotFound = errors.New("catalog: product not found")

	// ErrDuplicateProduct is returned when the seed file declares the same
	// product ID twice.
	ErrDuplicateProduct = errors.New("catalog: duplicate product id")

	// ErrInvalidProduct is returned when product validation fails.
	ErrInvalidProduct = errors.New("catalog: invalid product")

	// ErrInvalidCategory is returned when a category value is not recognised.
	ErrInvalidCategory = errors.New("catalog: invalid category")

	// ErrInvalidPrice is returned when a product price is negative.
	ErrInvalidPrice = errors.New("catalog: invalid price")

	// ErrEmptyCatalog is returned when the seed file contains no products.
	ErrEmptyCatalog = errors.New("catalog: empty catalogue")
)
