package routeprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/hoopscheduler/internal/conflict"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
)

func geoVenues() (venue.Venue, venue.Venue) {
	from := venue.Venue{ID: "V1", Geo: &venue.GeoPoint{Lat: 47.6062, Lng: -122.3321}}
	to := venue.Venue{ID: "V2", Geo: &venue.GeoPoint{Lat: 47.2529, Lng: -122.4443}}
	return from, to
}

func TestHTTPProvider_UsesRoutingServiceDuration(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"duration_seconds": 1800, "distance_meters": 42000}`))
	}))
	defer server.Close()

	fallback := NewHaversineProvider(conflict.DefaultConfig())
	provider := NewHTTPProvider(HTTPProviderConfig{BaseURL: server.URL, APIKey: "k1", Fallback: fallback})

	from, to := geoVenues()
	minutes, err := provider.RouteMinutes(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, minutes)
}

func TestHTTPProvider_FallsBackOnServiceError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fallback := NewHaversineProvider(conflict.DefaultConfig())
	provider := NewHTTPProvider(HTTPProviderConfig{BaseURL: server.URL, APIKey: "k1", Fallback: fallback})

	from, to := geoVenues()
	got, err := provider.RouteMinutes(context.Background(), from, to)
	require.NoError(t, err)

	want, _ := fallback.RouteMinutes(context.Background(), from, to)
	assert.Equal(t, want, got)
}

func TestHTTPProvider_MissingGeoUsesFallbackWithoutCallingService(t *testing.T) {
	t.Parallel()

	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	fallback := NewHaversineProvider(conflict.DefaultConfig())
	provider := NewHTTPProvider(HTTPProviderConfig{BaseURL: server.URL, APIKey: "k1", Fallback: fallback})

	from := venue.Venue{ID: "V1"}
	to := venue.Venue{ID: "V2"}
	_, err := provider.RouteMinutes(context.Background(), from, to)
	require.NoError(t, err)
	assert.False(t, called)
}
