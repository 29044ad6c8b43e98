package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"golang.org/x/time/rate"
)

func TestClientGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Boulder, CO" {
			t.Errorf("query = %q", got)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing user agent")
		}
		fmt.Fprint(w, `[{"lat":"40.0150","lon":"-105.2705","display_name":"Boulder, Colorado, USA","address":{"country":"United States","postcode":"80302"}}]`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithRateLimit(rate.Inf))

	result, err := client.Geocode(context.Background(), "Boulder, CO")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if result.Latitude != 40.0150 || result.Longitude != -105.2705 {
		t.Errorf("coordinates = (%v, %v)", result.Latitude, result.Longitude)
	}
	if result.Country != "United States" || result.PostalCode != "80302" {
		t.Errorf("address = %+v", result)
	}
}

func TestClientGeocodeNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithRateLimit(rate.Inf))
	if _, err := client.Geocode(context.Background(), "nowhere at all"); err == nil {
		t.Error("expected error for empty result set")
	}
}

func TestClientGeocodeEmptyQuery(t *testing.T) {
	client := NewClient(WithRateLimit(rate.Inf))
	if _, err := client.Geocode(context.Background(), "   "); err == nil {
		t.Error("expected error for empty query")
	}
}

type countingGeocoder struct {
	calls int32
	fail  bool
}

func (g *countingGeocoder) Geocode(ctx context.Context, query string) (*Result, error) {
	atomic.AddInt32(&g.calls, 1)
	if g.fail {
		return nil, fmt.Errorf("no match for %q", query)
	}
	return &Result{Latitude: 1, Longitude: 2}, nil
}

func TestCacheMemoizesSuccess(t *testing.T) {
	upstream := &countingGeocoder{}
	cache := NewCache(upstream)

	for i := 0; i < 3; i++ {
		// Key normalization: casing and padding collapse to one entry.
		if _, err := cache.Geocode(context.Background(), "  Denver, CO "); err != nil {
			t.Fatal(err)
		}
		if _, err := cache.Geocode(context.Background(), "denver, co"); err != nil {
			t.Fatal(err)
		}
	}
	if upstream.calls != 1 {
		t.Errorf("upstream calls = %d, want 1", upstream.calls)
	}
}

func TestCacheMemoizesFailure(t *testing.T) {
	upstream := &countingGeocoder{fail: true}
	cache := NewCache(upstream)

	for i := 0; i < 3; i++ {
		if _, err := cache.Geocode(context.Background(), "bad place"); err == nil {
			t.Fatal("expected cached failure")
		}
	}
	if upstream.calls != 1 {
		t.Errorf("upstream calls = %d, want 1", upstream.calls)
	}
}
