// Package routeprovider is the external collaborator behind travel-time
// estimation between venues. The scheduling core's own conflict detector
// computes a haversine-based estimate purely from geo-points (see
// internal/conflict.EstimateTravelMinutes); this package adds an optional
// HTTP-backed provider that calls a real routing service for a sharper
// estimate, falling back to the haversine estimate whenever the call fails
// or a venue is missing its geo-point.
package routeprovider

import (
	"context"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/conflict"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
)

// Port is what usecase services depend on for travel-time estimates between
// two venues.
type Port interface {
	RouteMinutes(ctx context.Context, from, to venue.Venue) (time.Duration, error)
}

// HaversineProvider is the zero-dependency Port implementation: a pure
// function of the two venues' geo-points and the supplied config, with no
// network call and no failure mode.
type HaversineProvider struct {
	config conflict.Config
}

func NewHaversineProvider(config conflict.Config) HaversineProvider {
	return HaversineProvider{config: config}
}

func (p HaversineProvider) RouteMinutes(_ context.Context, from, to venue.Venue) (time.Duration, error) {
	return conflict.EstimateTravelMinutes(from, to, p.config), nil
}
