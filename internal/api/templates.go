package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/staykit/staykit-core/internal/template"
)

// matchTemplateRequest is the body for POST /templates/match.
type matchTemplateRequest struct {
	PropertyType string   `json:"property_type"`
	Rooms        int      `json:"rooms"`
	Budget       *float64 `json:"budget,omitempty"`
}

// handleListTemplates returns all registered templates, optionally
// filtered by property_type.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	propertyType := r.URL.Query().Get("property_type")
	if len(propertyType) > maxQueryParamLen {
		writeBadRequest(w, "query parameter too long")
		return
	}

	templates := s.templates.Templates()
	if propertyType != "" {
		filtered := make([]template.Template, 0, len(templates))
		for _, t := range templates {
			if t.PropertyType == template.PropertyType(propertyType) {
				filtered = append(filtered, t)
			}
		}
		templates = filtered
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"templates": templates,
		"count":     len(templates),
	})
}

// handleGetTemplate returns a single template by ID.
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tmpl, ok := s.templates.Get(id)
	if !ok {
		writeNotFound(w, "template not found: "+id)
		return
	}

	writeJSON(w, http.StatusOK, tmpl)
}

// handleMatchTemplate finds the best starter template for a property
// profile. A profile no template covers returns matched=false rather
// than an error; the operator builds from scratch in that case.
func (s *Server) handleMatchTemplate(w http.ResponseWriter, r *http.Request) {
	var req matchTemplateRequest
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
	if req.Budget != nil && *req.Budget <= 0 {
		writeBadRequest(w, "budget must be positive")
		return
	}

	tmpl := s.selection.MatchTemplate(propertyType, req.Rooms, req.Budget)

	if s.analytics != nil {
		matchedID := ""
		if tmpl != nil {
			matchedID = tmpl.ID
		}
		s.analytics.WriteTemplateMatch(req.PropertyType, req.Rooms, matchedID)
	}

	if tmpl == nil {
		writeJSON(w, http.StatusOK, map[string]any{"matched": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"matched":  true,
		"template": tmpl,
	})
}

func validPropertyTypeParam(pt template.PropertyType) bool {
	for _, known := range template.AllPropertyTypes() {
		if pt == known {
			return true
		}
	}
	return false
}
