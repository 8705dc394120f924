package api

import (
	"encoding/json"
	"net/http"

	"github.com/staykit/staykit-core/internal/catalog"
	"github.com/staykit/staykit-core/internal/compat"
	"github.com/staykit/staykit-core/internal/pricing"
	"github.com/staykit/staykit-core/internal/recommend"
	"github.com/staykit/staykit-core/internal/template"
)

// Stateless engine endpoints. Each request carries the full property
// profile and selection; nothing here reads or writes the database.

// recommendationsRequest is the body for POST /recommendations.
type recommendationsRequest struct {
	PropertyType string   `json:"property_type"`
	Rooms        int      `json:"rooms"`
	Region       string   `json:"region,omitempty"`
	Budget       *float64 `json:"budget,omitempty"`
	Priorities   []string `json:"priorities,omitempty"`
	TemplateID   *string  `json:"template_id,omitempty"`
	ProductIDs   []string `json:"product_ids"`
	Limit        int      `json:"limit,omitempty"`
}

// productSelectionRequest is the body for POST /compatibility and
// POST /price: a quantified selection by product ID.
type productSelectionRequest struct {
	Rooms int `json:"rooms,omitempty"`
	Items []struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
}

// handleRecommendations scores the catalogue against a property profile
// and returns ranked suggestions for products to add.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	propertyType := template.PropertyType(req.PropertyType)
	if !validPropertyTypeParam(propertyType) {
		writeBadRequest(w, "unknown property type: "+req.PropertyType)
		return
	}
	if req.Rooms < 1 {
		writeBadRequest(w, "rooms must be at least 1")
		return
	}

	existing, badID := s.resolveProducts(req.ProductIDs)
	if badID != "" {
		writeBadRequest(w, "unknown product: "+badID)
		return
	}

	var tmpl *template.Template
	if req.TemplateID != nil {
		t, ok := s.templates.Get(*req.TemplateID)
		if !ok {
			writeBadRequest(w, "unknown template: "+*req.TemplateID)
			return
		}
		tmpl = &t
	} else {
		tmpl = template.Match(s.templates.Templates(), propertyType, req.Rooms, req.Budget)
	}

	recs := recommend.Recommend(recommend.Context{
		PropertyType: propertyType,
		Rooms:        req.Rooms,
		Region:       req.Region,
		Budget:       req.Budget,
		Priorities:   req.Priorities,
		Existing:     existing,
	}, tmpl, s.catalog.ForRegion(req.Region))

	if req.Limit > 0 && len(recs) > req.Limit {
		recs = recs[:req.Limit]
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"recommendations": recs,
		"count":           len(recs),
	})
}

// handleCompatibility runs the compatibility rules over a selection and
// returns the warnings. Warnings are advisory; an incompatible selection
// is still priceable and saveable.
func (s *Server) handleCompatibility(w http.ResponseWriter, r *http.Request) {
	var req productSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	selected, badID := s.resolveSelection(req)
	if badID != "" {
		writeBadRequest(w, "unknown product: "+badID)
		return
	}

	warnings := compat.Check(selected)
	writeJSON(w, http.StatusOK, map[string]any{
		"compatible": len(warnings) == 0,
		"warnings":   warnings,
	})
}

// handlePrice computes the volume-discounted price breakdown for a
// quantified selection.
func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	var req productSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Rooms < 1 {
		writeBadRequest(w, "rooms must be at least 1")
		return
	}

	lineItems := make([]pricing.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			writeBadRequest(w, "quantity for "+item.ProductID+" must be at least 1")
			return
		}
		product, err := s.catalog.Get(item.ProductID)
		if err != nil {
			writeBadRequest(w, "unknown product: "+item.ProductID)
			return
		}
		lineItems = append(lineItems, pricing.LineItem{Product: product, Quantity: item.Quantity})
	}

	writeJSON(w, http.StatusOK, pricing.Calculate(lineItems, req.Rooms))
}

// resolveProducts maps product IDs to catalogue products. The second
// return value is the first unknown ID, empty when all resolved.
func (s *Server) resolveProducts(ids []string) ([]catalog.Product, string) {
	products := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.catalog.Get(id)
		if err != nil {
			return nil, id
		}
		products = append(products, product)
	}
	return products, ""
}

func (s *Server) resolveSelection(req productSelectionRequest) ([]catalog.Product, string) {
	ids := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ProductID)
	}
	return s.resolveProducts(ids)
}
