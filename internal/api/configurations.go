package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/staykit/staykit-core/internal/selection"
	"github.com/staykit/staykit-core/internal/template"
)

// configurationRequest is the body for creating or updating a
// configuration. Identity and timestamps are server-assigned.
type configurationRequest struct {
	Name         string           `json:"name"`
	PropertyType string           `json:"property_type"`
	Rooms        int              `json:"rooms"`
	Region       string           `json:"region,omitempty"`
	Budget       *float64         `json:"budget,omitempty"`
	Priorities   []string         `json:"priorities,omitempty"`
	Items        []selection.Item `json:"items,omitempty"`
	TemplateID   *string          `json:"template_id,omitempty"`
}

// handleListConfigurations returns all saved configurations, optionally
// filtered by property_type.
func (s *Server) handleListConfigurations(w http.ResponseWriter, r *http.Request) {
	propertyType := r.URL.Query().Get("property_type")
	if len(propertyType) > maxQueryParamLen {
		writeBadRequest(w, "query parameter too long")
		return
	}

	var (
		configs []selection.Configuration
		err     error
	)
	if propertyType != "" {
		if !validPropertyTypeParam(template.PropertyType(propertyType)) {
			writeBadRequest(w, "unknown property type: "+propertyType)
			return
		}
		configs, err = s.selection.ListByPropertyType(r.Context(), template.PropertyType(propertyType))
	} else {
		configs, err = s.selection.List(r.Context())
	}
	if err != nil {
		s.logger.Error("failed to list configurations", "error", err)
		writeInternalError(w, "failed to list configurations")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"configurations": configs,
		"count":          len(configs),
	})
}

// handleCreateConfiguration creates a new configuration. When a
// template_id is supplied without items, the template seeds the
// selection.
func (s *Server) handleCreateConfiguration(w http.ResponseWriter, r *http.Request) {
	var req configurationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	now := time.Now().UTC()
	cfg := &selection.Configuration{
		Name:         req.Name,
		PropertyType: template.PropertyType(req.PropertyType),
		Rooms:        req.Rooms,
		Region:       req.Region,
		Budget:       req.Budget,
		Priorities:   req.Priorities,
		Items:        req.Items,
		TemplateID:   req.TemplateID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.selection.Create(r.Context(), cfg); err != nil {
		s.writeSelectionError(w, err, "failed to create configuration")
		return
	}

	writeJSON(w, http.StatusCreated, cfg)
}

// handleGetConfiguration returns a single configuration by ID.
func (s *Server) handleGetConfiguration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cfg, err := s.selection.Get(r.Context(), id)
	if err != nil {
		s.writeSelectionError(w, err, "failed to load configuration")
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// handleUpdateConfiguration replaces a configuration's profile and
// selection. The path ID wins over any ID in the body.
func (s *Server) handleUpdateConfiguration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := s.selection.Get(r.Context(), id)
	if err != nil {
		s.writeSelectionError(w, err, "failed to load configuration")
		return
	}

	var req configurationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	cfg := &selection.Configuration{
		ID:           id,
		Name:         req.Name,
		PropertyType: template.PropertyType(req.PropertyType),
		Rooms:        req.Rooms,
		Region:       req.Region,
		Budget:       req.Budget,
		Priorities:   req.Priorities,
		Items:        req.Items,
		TemplateID:   req.TemplateID,
		CreatedAt:    existing.CreatedAt,
		UpdatedAt:    time.Now().UTC(),
	}

	if err := s.selection.Update(r.Context(), cfg); err != nil {
		s.writeSelectionError(w, err, "failed to update configuration")
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// handleDeleteConfiguration removes a configuration.
func (s *Server) handleDeleteConfiguration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.selection.Delete(r.Context(), id); err != nil {
		s.writeSelectionError(w, err, "failed to delete configuration")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleQuoteConfiguration runs the full engine over a saved
// configuration: resolved lines, price breakdown, compatibility
// warnings, and next-step recommendations.
func (s *Server) handleQuoteConfiguration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	quote, err := s.selection.Quote(r.Context(), id)
	if err != nil {
		s.writeSelectionError(w, err, "failed to generate quote")
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

// writeSelectionError maps selection service errors onto HTTP responses.
func (s *Server) writeSelectionError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, selection.ErrConfigurationNotFound):
		writeNotFound(w, "configuration not found")
	case errors.Is(err, selection.ErrConfigurationExists):
		writeConflict(w, "configuration already exists")
	case errors.Is(err, selection.ErrInvalidConfiguration),
		errors.Is(err, selection.ErrUnknownProduct):
		writeBadRequest(w, err.Error())
	default:
		s.logger.Error(logMsg, "error", err)
		writeInternalError(w, logMsg)
	}
}
