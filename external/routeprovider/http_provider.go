package routeprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/conflict"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
	"github.com/riskibarqy/hoopscheduler/internal/platform/logging"
	"github.com/riskibarqy/hoopscheduler/internal/platform/resilience"
)

// HTTPProviderConfig configures the routing-service-backed provider.
type HTTPProviderConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	// Fallback estimates travel time when the routing service is
	// unreachable or a venue lacks a geo-point. It is required.
	Fallback Port
}

// HTTPProvider calls an external routing service for a driving-time estimate
// between two venues and falls back to a cheaper estimate on any failure,
// so an outage in the routing service never blocks scheduling.
type HTTPProvider struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	breaker    *resilience.CircuitBreaker
	fallback   Port
}

var _ Port = (*HTTPProvider)(nil)

func NewHTTPProvider(cfg HTTPProviderConfig) *HTTPProvider {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if httpClient.Timeout <= 0 {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		httpClient.Timeout = timeout
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &HTTPProvider{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		breaker:    resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		fallback:   cfg.Fallback,
	}
}

// RouteMinutes returns the routing service's driving-time estimate, or the
// fallback estimate if either venue has no geo-point, the circuit is open,
// or the call itself fails.
func (p *HTTPProvider) RouteMinutes(ctx context.Context, from, to venue.Venue) (time.Duration, error) {
	if from.Geo == nil || to.Geo == nil {
		return p.fallback.RouteMinutes(ctx, from, to)
	}

	if err := p.breaker.Allow(); err != nil {
		logging.Default().WarnContext(ctx, "route provider circuit breaker open, using fallback estimate", "state", p.breaker.State())
		return p.fallback.RouteMinutes(ctx, from, to)
	}

	minutes, err := p.fetchRouteMinutes(ctx, from, to)
	if err != nil {
		p.breaker.RecordFailure()
		logging.Default().WarnContext(ctx, "route provider call failed, using fallback estimate", "error", err)
		return p.fallback.RouteMinutes(ctx, from, to)
	}

	p.breaker.RecordSuccess()
	return minutes, nil
}

func (p *HTTPProvider) fetchRouteMinutes(ctx context.Context, from, to venue.Venue) (time.Duration, error) {
	values := url.Values{}
	values.Set("origin", formatGeo(*from.Geo))
	values.Set("destination", formatGeo(*to.Geo))
	values.Set("api_key", p.apiKey)

	fullURL := p.baseURL + "/route?" + values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return 0, fmt.Errorf("build route request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send route request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return 0, fmt.Errorf("route provider status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var payload routeResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode route provider payload: %w", err)
	}
	if payload.DurationSeconds < 0 {
		return 0, fmt.Errorf("route provider returned negative duration")
	}

	return time.Duration(payload.DurationSeconds) * time.Second, nil
}

func formatGeo(g venue.GeoPoint) string {
	return strconv.FormatFloat(g.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(g.Lng, 'f', 6, 64)
}

type routeResponse struct {
	DurationSeconds float64 `json:"duration_seconds"`
	DistanceMeters  float64 `json:"distance_meters"`
}
