package selection

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/staykit/staykit-core/internal/catalog"
	"github.com/staykit/staykit-core/internal/template"
)

func serviceCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalog.New([]catalog.Product{
		{ID: "lock-battery-01", SKU: "LCK-100", Name: "Smart Lock 100", Category: catalog.CategoryLock,
			Price: 249, Features: []string{"battery-powered", "mobile-key"}},
		{ID: "lock-wired-01", SKU: "LCK-200", Name: "Smart Lock 200", Category: catalog.CategoryLock,
			Price: 329, Features: []string{"wired"}},
		{ID: "sensor-door-01", SKU: "SNS-10", Name: "Door Sensor", Category: catalog.CategorySensor,
			Price: 39, Features: []string{"battery-powered"}},
		{ID: "kiosk-checkin-01", SKU: "KSK-900", Name: "Check-in Kiosk", Category: catalog.CategoryKiosk,
			Price: 1899, Features: []string{"card-dispensing", "self-checkin", "automation"}},
		{ID: "dispenser-01", SKU: "DSP-20", Name: "Card Dispenser", Category: catalog.CategoryOther,
			Price: 450, Features: []string{"card-dispenser"}},
	})
}

func serviceRegistry(t *testing.T) *template.Registry {
	t.Helper()
	return template.NewRegistry([]template.Template{
		{
			ID:           "hotel-boutique",
			Name:         "Boutique Hotel Starter",
			PropertyType: template.PropertyHotel,
			RoomRange:    template.Range{Min: 10, Max: 40},
			Products: []template.Entry{
				{ProductID: "lock-battery-01", Quantity: 1, Priority: template.PriorityEssential},
				{ProductID: "sensor-door-01", Quantity: 2, Priority: template.PriorityRecommended},
			},
		},
		{
			ID:           "hotel-midscale",
			Name:         "Midscale Hotel",
			PropertyType: template.PropertyHotel,
			RoomRange:    template.Range{Min: 41, Max: 150},
			Products: []template.Entry{
				{ProductID: "lock-wired-01", Quantity: 1, Priority: template.PriorityEssential},
				{ProductID: "kiosk-checkin-01", Quantity: 2, Priority: template.PriorityEssential},
			},
		},
	})
}

// recordingEvents captures lifecycle notifications for assertions.
type recordingEvents struct {
	created []string
	updated []string
	deleted []string
	quoted  []string
}

func (r *recordingEvents) ConfigurationCreated(cfg *Configuration) { r.created = append(r.created, cfg.ID) }
func (r *recordingEvents) ConfigurationUpdated(cfg *Configuration) { r.updated = append(r.updated, cfg.ID) }
func (r *recordingEvents) ConfigurationDeleted(id string)          { r.deleted = append(r.deleted, id) }
func (r *recordingEvents) QuoteGenerated(cfg *Configuration, q *Quote) {
	r.quoted = append(r.quoted, cfg.ID)
}

func newTestService(t *testing.T) (*Service, *recordingEvents) {
	t.Helper()
	repo := NewSQLiteRepository(setupTestDB(t))
	events := &recordingEvents{}
	return NewService(repo, serviceCatalog(t), serviceRegistry(t), events, nil), events
}

func TestService_Create(t *testing.T) {
	svc, events := newTestService(t)
	ctx := context.Background()

	t.Run("assigns id and emits event", func(t *testing.T) {
		cfg := &Configuration{
			Name:         "Harbour Hotel",
			PropertyType: template.PropertyHotel,
			Rooms:        24,
			Items:        []Item{{ProductID: "lock-battery-01", Quantity: 1}},
		}
		if err := svc.Create(ctx, cfg); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if cfg.ID == "" {
			t.Error("ID not assigned")
		}
		if len(events.created) != 1 || events.created[0] != cfg.ID {
			t.Errorf("created events = %v, want [%s]", events.created, cfg.ID)
		}
	})

	t.Run("seeds items from template", func(t *testing.T) {
		tmplID := "hotel-boutique"
		cfg := &Configuration{
			Name:         "Seeded Hotel",
			PropertyType: template.PropertyHotel,
			Rooms:        20,
			TemplateID:   &tmplID,
		}
		if err := svc.Create(ctx, cfg); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if len(cfg.Items) != 2 {
			t.Fatalf("got %d items, want 2 from template", len(cfg.Items))
		}
		if cfg.Items[0].ProductID != "lock-battery-01" || cfg.Items[0].Quantity != 1 {
			t.Errorf("first item = %+v, want lock-battery-01 x1", cfg.Items[0])
		}
		if cfg.Items[1].ProductID != "sensor-door-01" || cfg.Items[1].Quantity != 2 {
			t.Errorf("second item = %+v, want sensor-door-01 x2", cfg.Items[1])
		}
	})

	t.Run("unknown template rejected", func(t *testing.T) {
		tmplID := "no-such-template"
		cfg := &Configuration{
			Name:         "Broken",
			PropertyType: template.PropertyHotel,
			Rooms:        20,
			TemplateID:   &tmplID,
		}
		if err := svc.Create(ctx, cfg); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("expected ErrInvalidConfiguration, got: %v", err)
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name    string
			mutate  func(*Configuration)
			wantErr error
		}{
			{"empty name", func(c *Configuration) { c.Name = "" }, ErrInvalidConfiguration},
			{"bad property type", func(c *Configuration) { c.PropertyType = "castle" }, ErrInvalidConfiguration},
			{"zero rooms", func(c *Configuration) { c.Rooms = 0 }, ErrInvalidConfiguration},
			{"negative budget", func(c *Configuration) { b := -1.0; c.Budget = &b }, ErrInvalidConfiguration},
			{"zero quantity", func(c *Configuration) { c.Items[0].Quantity = 0 }, ErrInvalidConfiguration},
			{"unknown product", func(c *Configuration) { c.Items[0].ProductID = "ghost" }, ErrUnknownProduct},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg := &Configuration{
					Name:         "Valid Base",
					PropertyType: template.PropertyHotel,
					Rooms:        10,
					Items:        []Item{{ProductID: "lock-battery-01", Quantity: 1}},
				}
				tt.mutate(cfg)
				if err := svc.Create(ctx, cfg); !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got: %v", tt.wantErr, err)
				}
			})
		}
	})
}

func TestService_MatchTemplate(t *testing.T) {
	svc, _ := newTestService(t)

	tmpl := svc.MatchTemplate(template.PropertyHotel, 50, nil)
	if tmpl == nil {
		t.Fatal("MatchTemplate returned nil")
	}
	if tmpl.ID != "hotel-midscale" {
		t.Errorf("matched %q, want hotel-midscale", tmpl.ID)
	}

	if got := svc.MatchTemplate(template.PropertyHostel, 50, nil); got != nil {
		t.Errorf("expected nil for uncovered property type, got %q", got.ID)
	}
}

func TestService_UpdateDelete(t *testing.T) {
	svc, events := newTestService(t)
	ctx := context.Background()

	cfg := &Configuration{
		Name:         "Mutable Hotel",
		PropertyType: template.PropertyHotel,
		Rooms:        15,
		Items:        []Item{{ProductID: "lock-battery-01", Quantity: 1}},
	}
	if err := svc.Create(ctx, cfg); err != nil {
		t.Fatalf("Create: %v", err)
	}

	cfg.Items = append(cfg.Items, Item{ProductID: "sensor-door-01", Quantity: 2})
	if err := svc.Update(ctx, cfg); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(events.updated) != 1 {
		t.Errorf("updated events = %v, want one entry", events.updated)
	}

	got, err := svc.Get(ctx, cfg.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Items) != 2 {
		t.Errorf("got %d items after update, want 2", len(got.Items))
	}

	if err := svc.Delete(ctx, cfg.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(events.deleted) != 1 || events.deleted[0] != cfg.ID {
		t.Errorf("deleted events = %v, want [%s]", events.deleted, cfg.ID)
	}
	if _, err := svc.Get(ctx, cfg.ID); !errors.Is(err, ErrConfigurationNotFound) {
		t.Errorf("expected ErrConfigurationNotFound, got: %v", err)
	}
}

func TestService_Quote(t *testing.T) {
	svc, events := newTestService(t)
	ctx := context.Background()

	budget := 100000.0
	cfg := &Configuration{
		Name:         "Quoted Hotel",
		PropertyType: template.PropertyHotel,
		Rooms:        25,
		Budget:       &budget,
		Items: []Item{
			{ProductID: "lock-battery-01", Quantity: 1},
			{ProductID: "lock-wired-01", Quantity: 1},
			{ProductID: "sensor-door-01", Quantity: 2},
		},
	}
	if err := svc.Create(ctx, cfg); err != nil {
		t.Fatalf("Create: %v", err)
	}

	quote, err := svc.Quote(ctx, cfg.ID)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}

	if quote.ConfigurationID != cfg.ID {
		t.Errorf("ConfigurationID = %q, want %q", quote.ConfigurationID, cfg.ID)
	}
	if len(quote.Lines) != 3 {
		t.Errorf("got %d lines, want 3", len(quote.Lines))
	}

	// 25 rooms: (249 + 329 + 2*39) * 25 = 656 * 25 = 16400, 5% tier.
	if quote.Pricing.Subtotal != 16400 {
		t.Errorf("Subtotal = %v, want 16400", quote.Pricing.Subtotal)
	}
	if quote.Pricing.DiscountRate != 0.05 {
		t.Errorf("DiscountRate = %v, want 0.05", quote.Pricing.DiscountRate)
	}
	if math.Abs(quote.Pricing.Total-15580) > 1e-9 {
		t.Errorf("Total = %v, want 15580", quote.Pricing.Total)
	}

	// Battery and wired locks in one selection trigger the power warning.
	if len(quote.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(quote.Warnings), quote.Warnings)
	}

	if len(quote.Recommendations) == 0 {
		t.Error("expected at least one recommendation")
	}
	if len(quote.Recommendations) > maxQuoteRecommendations {
		t.Errorf("got %d recommendations, cap is %d", len(quote.Recommendations), maxQuoteRecommendations)
	}
	for _, rec := range quote.Recommendations {
		for _, item := range cfg.Items {
			if rec.Product.ID == item.ProductID {
				t.Errorf("recommendation %q duplicates a selected item", rec.Product.ID)
			}
		}
	}

	if quote.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
	if len(events.quoted) != 1 {
		t.Errorf("quoted events = %v, want one entry", events.quoted)
	}

	t.Run("missing configuration", func(t *testing.T) {
		_, err := svc.Quote(ctx, "no-such-config")
		if !errors.Is(err, ErrConfigurationNotFound) {
			t.Errorf("expected ErrConfigurationNotFound, got: %v", err)
		}
	})
}
