package api

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/staykit/staykit-core/internal/selection"
)

func TestCreateAndGetConfiguration(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	body := `{
		"name": "Harbour View Hotel",
		"property_type": "hotel",
		"rooms": 24,
		"region": "eu",
		"budget": 60000,
		"priorities": ["guest-experience"],
		"items": [
			{"product_id": "lock-battery-01", "quantity": 1},
			{"product_id": "sensor-door-01", "quantity": 2}
		]
	}`
	req := authReq(t, srv, httptest.NewRequest(http.MethodPost, "/api/v1/configurations", strings.NewReader(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d; body: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var created selection.Configuration
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal created: %v", err)
	}

	if created.ID == "" {
		t.Error("expected configuration ID to be auto-generated")
	}
	if len(created.Items) != 2 {
		t.Errorf("items = %d, want 2", len(created.Items))
	}

	// Get by ID
	req = authReq(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/configurations/"+created.ID, nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", w.Code, http.StatusOK)
	}

	var got selection.Configuration
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal got: %v", err)
	}

	if got.Name != "Harbour View Hotel" {
		t.Errorf("name = %q, want Harbour View Hotel", got.Name)
	}
	if got.Budget == nil || *got.Budget != 60000 {
		t.Errorf("budget = %v, want 60000", got.Budget)
	}
}

func TestCreateConfiguration_SeedsFromTemplate(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	body := `{
		"name": "Templated Hotel",
		"property_type": "hotel",
		"rooms": 12,
		"template_id": "hotel-boutique"
	}`
	req := authReq(t, srv, httptest.NewRequest(http.MethodPost, "/api/v1/configurations", strings.NewReader(body)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var created selection.Configuration
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// hotel-boutique has three product entries
	if len(created.Items) != 3 {
		t.Errorf("seeded items = %d, want 3", len(created.Items))
	}
}

func TestCreateConfiguration_Validation(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", "{{"},
		{"missing name", `{"property_type": "hotel", "rooms": 10}`},
		{"unknown property type", `{"name": "X", "property_type": "yacht", "rooms": 10}`},
		{"zero rooms", `{"name": "X", "property_type": "hotel", "rooms": 0}`},
		{"unknown product", `{"name": "X", "property_type": "hotel", "rooms": 10, "items": [{"product_id": "ghost", "quantity": 1}]}`},
		{"unknown template", `{"name": "X", "property_type": "hotel", "rooms": 10, "template_id": "ghost"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authReq(t, srv, httptest.NewRequest(http.MethodPost, "/api/v1/configurations", strings.NewReader(tt.body)))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d; body: %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
		})
	}
}

func TestUpdateConfiguration(t *testing.T) {
	srv, svc := testServer(t)
	router := srv.buildRouter()

	created := createTestConfiguration(t, srv, router)

	body := `{
		"name": "Renamed Hotel",
		"property_type": "hotel",
		"rooms": 30,
		"items": [{"product_id": "lock-wired-01", "quantity": 1}]
	}`
	req := authReq(t, srv, httptest.NewRequest(http.MethodPut, "/api/v1/configurations/"+created.ID, strings.NewReader(body)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var updated selection.Configuration
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if updated.Name != "Renamed Hotel" {
		t.Errorf("name = %q, want Renamed Hotel", updated.Name)
	}
	if updated.Rooms != 30 {
		t.Errorf("rooms = %d, want 30", updated.Rooms)
	}
	// Stored timestamps are RFC3339, second precision
	if !updated.CreatedAt.Equal(created.CreatedAt.Truncate(time.Second)) {
		t.Errorf("CreatedAt changed on update: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}

	// Persisted
	got, err := svc.Get(req.Context(), created.ID)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if got.Name != "Renamed Hotel" {
		t.Errorf("persisted name = %q, want Renamed Hotel", got.Name)
	}
}

func TestUpdateConfiguration_NotFound(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	body := `{"name": "X", "property_type": "hotel", "rooms": 10}`
	req := authReq(t, srv, httptest.NewRequest(http.MethodPut, "/api/v1/configurations/nonexistent", strings.NewReader(body)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestDeleteConfiguration(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	created := createTestConfiguration(t, srv, router)

	req := authReq(t, srv, httptest.NewRequest(http.MethodDelete, "/api/v1/configurations/"+created.ID, nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want %d", w.Code, http.StatusNoContent)
	}

	// Confirm gone
	req = authReq(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/configurations/"+created.ID, nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestListConfigurations_FilterByPropertyType(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	createTestConfiguration(t, srv, router)

	req := authReq(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/configurations?property_type=hotel", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("hotel count = %d, want 1", resp.Count)
	}

	req = authReq(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/configurations?property_type=hostel", nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("hostel count = %d, want 0", resp.Count)
	}
}

func TestQuoteConfiguration(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	created := createTestConfiguration(t, srv, router)

	req := authReq(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/configurations/"+created.ID+"/quote", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("quote status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var quote selection.Quote
	if err := json.Unmarshal(w.Body.Bytes(), &quote); err != nil {
		t.Fatalf("unmarshal quote: %v", err)
	}

	if quote.ConfigurationID != created.ID {
		t.Errorf("configuration_id = %q, want %q", quote.ConfigurationID, created.ID)
	}
	if len(quote.Lines) != 2 {
		t.Errorf("lines = %d, want 2", len(quote.Lines))
	}

	// (249 + 2*39) * 24 rooms = 7848 subtotal, 5% tier
	if math.Abs(quote.Pricing.Subtotal-7848) > 1e-9 {
		t.Errorf("subtotal = %v, want 7848", quote.Pricing.Subtotal)
	}
	if math.Abs(quote.Pricing.DiscountRate-0.05) > 1e-9 {
		t.Errorf("discount rate = %v, want 0.05", quote.Pricing.DiscountRate)
	}

	if len(quote.Recommendations) == 0 {
		t.Error("expected recommendations on the quote")
	}
	if len(quote.Recommendations) > 5 {
		t.Errorf("recommendations = %d, want at most 5", len(quote.Recommendations))
	}
}

func TestQuoteConfiguration_NotFound(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := authReq(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/configurations/nonexistent/quote", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// createTestConfiguration creates a 24-room hotel with a battery lock and
// two door sensors through the API and returns the stored record.
func createTestConfiguration(t *testing.T, srv *Server, router http.Handler) selection.Configuration {
	t.Helper()

	body := `{
		"name": "Fixture Hotel",
		"property_type": "hotel",
		"rooms": 24,
		"region": "eu",
		"items": [
			{"product_id": "lock-battery-01", "quantity": 1},
			{"product_id": "sensor-door-01", "quantity": 2}
		]
	}`
	req := authReq(t, srv, httptest.NewRequest(http.MethodPost, "/api/v1/configurations", strings.NewReader(body)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("fixture create status = %d, body: %s", w.Code, w.Body.String())
	}

	var created selection.Configuration
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	return created
}
