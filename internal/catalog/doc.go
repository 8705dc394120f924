// Package catalog provides the product catalogue for StayKit Core.
//
// The catalogue is the flat list of orderable smart-device products
// (locks, kiosks, switches, dimmers, sensors, blinds) that the template
// matcher, recommendation scorer, compatibility checker and price
// calculator operate over.
//
// # Key Types
//
//   - Product: A single orderable product with category, price, feature
//     tags and optional region/certification metadata
//   - Category: Functional product kind (lock, kiosk, switch, ...)
//   - Catalog: Immutable accessor built from the seed file
//
// # Lifecycle
//
// The catalogue is static reference data. It is loaded once at startup
// from a YAML seed file maintained by catalogue authors and never
// mutated at runtime. All validation happens at this load boundary:
//
//	cat, err := catalog.Load(cfg.Registry.CatalogPath)
//	if err != nil {
//	    return err
//	}
//	products := cat.Products()
//
// # Thread Safety
//
// Catalog is immutable after construction and safe for concurrent use.
package catalog
