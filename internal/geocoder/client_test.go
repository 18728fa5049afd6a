package geocoder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/platemate/internal/upstream"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	return NewClient(server.Client(), logger, nil, Options{BaseURL: server.URL})
}

func placesJSON(n int) []byte {
	places := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		places = append(places, map[string]any{
			"place_id":     i,
			"lat":          "40.7",
			"lon":          "-74.0",
			"display_name": fmt.Sprintf("Restaurant %d, Manhattan, New York", i),
		})
	}
	b, _ := json.Marshal(places)
	return b
}

func TestClient_SearchCity_BuildsRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("format") != "json" {
			t.Errorf("format = %q, want json", q.Get("format"))
		}
		if q.Get("q") != "restaurants in New York" {
			t.Errorf("q = %q, want %q", q.Get("q"), "restaurants in New York")
		}
		if q.Get("limit") != "5" {
			t.Errorf("limit = %q, want 5", q.Get("limit"))
		}
		if ua := r.Header.Get("User-Agent"); ua != "PlateMateApp/1.0" {
			t.Errorf("User-Agent = %q, want PlateMateApp/1.0", ua)
		}
		w.Write(placesJSON(2))
	})

	restaurants, err := c.SearchCity(context.Background(), "New York")
	if err != nil {
		t.Fatalf("SearchCity returned error: %v", err)
	}
	if len(restaurants) != 2 {
		t.Fatalf("len = %d, want 2", len(restaurants))
	}
	want := "Restaurant 0, Manhattan, New York"
	if restaurants[0].DisplayName != want || restaurants[0].Address != want {
		t.Errorf("unexpected restaurant: %+v", restaurants[0])
	}
}

func TestClient_SearchCity_NameKeepsPlainCharacters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"display_name":"Joe's Bar & Grill, Austin, TX"}]`))
	})

	restaurants, err := c.SearchCity(context.Background(), "Austin")
	if err != nil {
		t.Fatalf("SearchCity returned error: %v", err)
	}
	want := "Joe's Bar & Grill, Austin, TX"
	if restaurants[0].DisplayName != want || restaurants[0].Address != want {
		t.Errorf("unexpected restaurant: %+v", restaurants[0])
	}
}

func TestClient_SearchCity_TruncatesToFive(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(placesJSON(8))
	})

	restaurants, err := c.SearchCity(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("SearchCity returned error: %v", err)
	}
	if len(restaurants) != MaxResults {
		t.Errorf("len = %d, want %d", len(restaurants), MaxResults)
	}
}

func TestClient_SearchCity_NoResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	restaurants, err := c.SearchCity(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("SearchCity returned error: %v", err)
	}
	if restaurants == nil || len(restaurants) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", restaurants)
	}
}

func TestClient_SearchCity_Failure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.SearchCity(context.Background(), "Tokyo")
	if upstream.KindOf(err) != upstream.KindBadStatus {
		t.Errorf("kind = %q, want %q", upstream.KindOf(err), upstream.KindBadStatus)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(http.DefaultClient, slog.Default(), nil, Options{})
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}
}
