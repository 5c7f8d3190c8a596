// Package weather is the external collaborator behind heatpolicy.Port: a
// forecast/current-conditions HTTP client with retries, a circuit breaker,
// and single-flight de-duplication of concurrent lookups for the same
// city/state/time key.
package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sony/gobreaker/v2"

	"github.com/riskibarqy/hoopscheduler/internal/heatpolicy"
	"github.com/riskibarqy/hoopscheduler/internal/platform/logging"
	"github.com/riskibarqy/hoopscheduler/internal/platform/resilience"
)

var errWeatherTransient = errors.New("weather provider transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
}

// Client implements heatpolicy.Port against an HTTP weather provider. It
// wraps every outbound call in a gobreaker circuit breaker independent of
// the platform's own hand-rolled one, since this is the one collaborator in
// the core that makes a genuinely unreliable third-party network call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxRetries int
	breaker    *gobreaker.CircuitBreaker[[]byte]
	flight     resilience.SingleFlight
}

var _ heatpolicy.Port = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")

	settings := gobreaker.Settings{
		Name:        "weather-provider",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		maxRetries: maxInt(cfg.MaxRetries, 0),
		breaker:    gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

// GetForecast returns the forecast sample closest to targetTime.
func (c *Client) GetForecast(ctx context.Context, city, state string, targetTime time.Time) (heatpolicy.Reading, error) {
	path := "/forecast"
	query := map[string]string{"city": city, "state": state}

	var envelope forecastEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return heatpolicy.Reading{}, fmt.Errorf("fetch forecast city=%s state=%s: %w", city, state, err)
	}

	samples := make([]heatpolicy.Reading, 0, len(envelope.Samples))
	for _, s := range envelope.Samples {
		samples = append(samples, s.toReading())
	}

	reading, ok := heatpolicy.PickClosestForecast(samples, targetTime)
	if !ok {
		return heatpolicy.Reading{}, fmt.Errorf("no forecast samples returned for city=%s state=%s", city, state)
	}
	return reading, nil
}

// GetCurrent returns the current observed conditions.
func (c *Client) GetCurrent(ctx context.Context, city, state string) (heatpolicy.Reading, error) {
	path := "/current"
	query := map[string]string{"city": city, "state": state}

	var envelope currentEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return heatpolicy.Reading{}, fmt.Errorf("fetch current conditions city=%s state=%s: %w", city, state, err)
	}
	return envelope.Current.toReading(), nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	values := url.Values{}
	for k, v := range query {
		values.Set(k, v)
	}
	values.Set("api_key", c.apiKey)

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	raw, err, _ := c.flight.Do(key, func() (any, error) {
		return c.breaker.Execute(func() ([]byte, error) {
			return c.executeRequest(ctx, fullURL)
		})
	})
	if err != nil {
		return err
	}

	body, ok := raw.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", raw)
	}

	if err := jsoniter.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode weather provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errWeatherTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errWeatherTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d", errWeatherTransient, resp.StatusCode)
			} else {
				return nil, fmt.Errorf("provider status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	logging.Default().WarnContext(ctx, "weather provider request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("api_key") {
		query.Set("api_key", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

type forecastEnvelope struct {
	Samples []readingDTO `json:"samples"`
}

type currentEnvelope struct {
	Current readingDTO `json:"current"`
}

type readingDTO struct {
	TemperatureF float64 `json:"temperature_f"`
	HumidityPct  float64 `json:"humidity_pct"`
	Conditions   string  `json:"conditions"`
	WindMPH      float64 `json:"wind_mph"`
	At           string  `json:"at"`
}

func (r readingDTO) toReading() heatpolicy.Reading {
	at, _ := time.Parse(time.RFC3339, r.At)
	return heatpolicy.Reading{
		TemperatureF: r.TemperatureF,
		HumidityPct:  r.HumidityPct,
		Conditions:   r.Conditions,
		WindMPH:      r.WindMPH,
		At:           at,
	}
}
