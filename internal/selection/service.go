package selection

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/staykit/staykit-core/internal/catalog"
	"github.com/staykit/staykit-core/internal/compat"
	"github.com/staykit/staykit-core/internal/infrastructure/logging"
	"github.com/staykit/staykit-core/internal/pricing"
	"github.com/staykit/staykit-core/internal/recommend"
	"github.com/staykit/staykit-core/internal/template"
)

// maxQuoteRecommendations caps how many ranked suggestions a quote carries.
const maxQuoteRecommendations = 5

// Events receives configuration lifecycle notifications. Implementations
// must not block; the service calls them synchronously after each
// successful mutation.
type Events interface {
	ConfigurationCreated(cfg *Configuration)
	ConfigurationUpdated(cfg *Configuration)
	ConfigurationDeleted(id string)
	QuoteGenerated(cfg *Configuration, quote *Quote)
}

// Service owns configuration lifecycle and quote assembly. It validates
// mutations against the catalogue, persists through the repository, and
// recomputes engine output on demand.
type Service struct {
	repo     Repository
	catalog  *catalog.Catalog
	registry *template.Registry
	events   Events
	logger   *logging.Logger
}

// NewService creates a configuration service. events may be nil when no
// downstream consumers are wired.
func NewService(repo Repository, cat *catalog.Catalog, reg *template.Registry, events Events, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:     repo,
		catalog:  cat,
		registry: reg,
		events:   events,
		logger:   logger.With("component", "selection"),
	}
}

// SetEvents wires the lifecycle event sink. Called once during startup,
// after the consumer (which needs the service to construct) exists.
func (s *Service) SetEvents(events Events) {
	s.events = events
}

// MatchTemplate finds the best starter template for a property profile.
// Returns nil when no template covers the room count.
func (s *Service) MatchTemplate(propertyType template.PropertyType, rooms int, budget *float64) *template.Template {
	return template.Match(s.registry.Templates(), propertyType, rooms, budget)
}

// Create validates and persists a new configuration. A missing ID is
// assigned. When TemplateID is set and no items were supplied, the
// template's product entries seed the selection.
func (s *Service) Create(ctx context.Context, cfg *Configuration) error {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}

	if cfg.TemplateID != nil && len(cfg.Items) == 0 {
		tmpl, ok := s.registry.Get(*cfg.TemplateID)
		if !ok {
			return fmt.Errorf("%w: template %q not found", ErrInvalidConfiguration, *cfg.TemplateID)
		}
		cfg.Items = itemsFromTemplate(&tmpl)
	}

	if err := s.validate(cfg); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, cfg); err != nil {
		return err
	}

	s.logger.Info("configuration created",
		"id", cfg.ID,
		"property_type", string(cfg.PropertyType),
		"rooms", cfg.Rooms,
		"items", len(cfg.Items))

	if s.events != nil {
		s.events.ConfigurationCreated(cfg)
	}
	return nil
}

// Get retrieves a configuration by ID.
func (s *Service) Get(ctx context.Context, id string) (*Configuration, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all configurations.
func (s *Service) List(ctx context.Context) ([]Configuration, error) {
	return s.repo.List(ctx)
}

// ListByPropertyType retrieves all configurations for one property type.
func (s *Service) ListByPropertyType(ctx context.Context, pt template.PropertyType) ([]Configuration, error) {
	return s.repo.ListByPropertyType(ctx, pt)
}

// Update validates and persists changes to an existing configuration.
func (s *Service) Update(ctx context.Context, cfg *Configuration) error {
	if err := s.validate(cfg); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, cfg); err != nil {
		return err
	}

	s.logger.Info("configuration updated", "id", cfg.ID, "items", len(cfg.Items))

	if s.events != nil {
		s.events.ConfigurationUpdated(cfg)
	}
	return nil
}

// Delete removes a configuration.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("configuration deleted", "id", id)

	if s.events != nil {
		s.events.ConfigurationDeleted(id)
	}
	return nil
}

// Quote loads a configuration and runs the full engine over it: resolved
// line items, price breakdown, compatibility warnings, and the top-ranked
// recommendations for what to add next.
func (s *Service) Quote(ctx context.Context, id string) (*Quote, error) {
	cfg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	quote, err := s.QuoteConfiguration(cfg)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.QuoteGenerated(cfg, quote)
	}
	return quote, nil
}

// QuoteConfiguration computes a quote for a configuration without touching
// the repository. Used for ad-hoc quoting of unsaved selections.
func (s *Service) QuoteConfiguration(cfg *Configuration) (*Quote, error) {
	lines := make([]QuoteLine, 0, len(cfg.Items))
	lineItems := make([]pricing.LineItem, 0, len(cfg.Items))
	selected := make([]catalog.Product, 0, len(cfg.Items))

	for _, item := range cfg.Items {
		product, err := s.catalog.Get(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProduct, item.ProductID)
		}
		lines = append(lines, QuoteLine{Product: product, Quantity: item.Quantity})
		lineItems = append(lineItems, pricing.LineItem{Product: product, Quantity: item.Quantity})
		selected = append(selected, product)
	}

	tmpl := s.templateFor(cfg)
	recs := recommend.Recommend(recommend.Context{
		PropertyType: cfg.PropertyType,
		Rooms:        cfg.Rooms,
		Region:       cfg.Region,
		Budget:       cfg.Budget,
		Priorities:   cfg.Priorities,
		Existing:     selected,
	}, tmpl, s.catalog.ForRegion(cfg.Region))
	if len(recs) > maxQuoteRecommendations {
		recs = recs[:maxQuoteRecommendations]
	}

	quote := &Quote{
		ConfigurationID: cfg.ID,
		Lines:           lines,
		Pricing:         pricing.Calculate(lineItems, cfg.Rooms),
		Warnings:        compat.Check(selected),
		Recommendations: recs,
		GeneratedAt:     time.Now().UTC(),
	}

	s.logger.Debug("quote generated",
		"id", cfg.ID,
		"total", quote.Pricing.Total,
		"warnings", len(quote.Warnings),
		"recommendations", len(quote.Recommendations))

	return quote, nil
}

// templateFor resolves the template backing a configuration: the one that
// seeded it if still registered, otherwise a fresh match for the profile.
func (s *Service) templateFor(cfg *Configuration) *template.Template {
	if cfg.TemplateID != nil {
		if tmpl, ok := s.registry.Get(*cfg.TemplateID); ok {
			return &tmpl
		}
	}
	return template.Match(s.registry.Templates(), cfg.PropertyType, cfg.Rooms, cfg.Budget)
}

// validate checks a configuration against structural rules and the
// catalogue.
func (s *Service) validate(cfg *Configuration) error {
	if cfg.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfiguration)
	}
	if !validPropertyType(cfg.PropertyType) {
		return fmt.Errorf("%w: unknown property type %q", ErrInvalidConfiguration, cfg.PropertyType)
	}
	if cfg.Rooms < 1 {
		return fmt.Errorf("%w: rooms must be at least 1", ErrInvalidConfiguration)
	}
	if cfg.Budget != nil && *cfg.Budget <= 0 {
		return fmt.Errorf("%w: budget must be positive", ErrInvalidConfiguration)
	}
	for _, item := range cfg.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: quantity for %q must be at least 1", ErrInvalidConfiguration, item.ProductID)
		}
		if _, err := s.catalog.Get(item.ProductID); err != nil {
			return fmt.Errorf("%w: %q", ErrUnknownProduct, item.ProductID)
		}
	}
	return nil
}

func validPropertyType(pt template.PropertyType) bool {
	for _, known := range template.AllPropertyTypes() {
		if pt == known {
			return true
		}
	}
	return false
}

func itemsFromTemplate(tmpl *template.Template) []Item {
	items := make([]Item, 0, len(tmpl.Products))
	for _, entry := range tmpl.Products {
		items = append(items, Item{ProductID: entry.ProductID, Quantity: entry.Quantity})
	}
	return items
}
