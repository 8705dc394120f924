package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/staykit/staykit-core/internal/catalog"
)

// maxQueryParamLen bounds free-text query parameters before they reach
// any lookup. Longer values are rejected, not truncated.
const maxQueryParamLen = 100

// handleListProducts returns the product catalogue, optionally filtered
// by category and/or region query parameters.
//
// Region filtering follows catalogue semantics: an empty region parameter
// is treated as absent (full catalogue), a set region returns products
// tagged with that market plus all untagged products.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	region := r.URL.Query().Get("region")
	if len(category) > maxQueryParamLen || len(region) > maxQueryParamLen {
		writeBadRequest(w, "query parameter too long")
		return
	}

	var products []catalog.Product
	switch {
	case category != "":
		if !validCategory(category) {
			writeBadRequest(w, "unknown category: "+category)
			return
		}
		products = s.catalog.ByCategory(catalog.Category(category))
		if region != "" {
			products = filterRegion(products, region)
		}
	case region != "":
		products = s.catalog.ForRegion(region)
	default:
		products = s.catalog.Products()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"products": products,
		"count":    len(products),
	})
}

// handleGetProduct returns a single product by ID.
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := s.catalog.Get(id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			writeNotFound(w, "product not found: "+id)
			return
		}
		writeInternalError(w, "failed to load product")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func validCategory(category string) bool {
	for _, known := range catalog.AllCategories() {
		if catalog.Category(category) == known {
			return true
		}
	}
	return false
}

// filterRegion narrows a product list to one market plus untagged products.
func filterRegion(products []catalog.Product, region string) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if p.Region == "" || p.Region == region {
			out = append(out, p)
		}
	}
	return out
}
