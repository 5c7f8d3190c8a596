package conflict

import (
	"math"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
)

const earthRadiusMiles = 3958.8

// EstimateTravelMinutes returns the estimated drive time between two venues.
// When both have geo-points, it uses haversine distance times a
// minutes-per-mile constant with a floor; otherwise it falls back to a flat
// estimate, both per spec.
func EstimateTravelMinutes(from, to venue.Venue, cfg Config) time.Duration {
	if from.ID == to.ID {
		return 0
	}
	if from.Geo == nil || to.Geo == nil {
		return 30 * time.Minute
	}

	miles := haversineMiles(*from.Geo, *to.Geo)
	minutes := miles * cfg.MinutesPerMile
	if minutes < cfg.MinTravelFloorMins {
		minutes = cfg.MinTravelFloorMins
	}
	return time.Duration(minutes * float64(time.Minute))
}

func haversineMiles(a, b venue.GeoPoint) float64 {
	lat1, lng1 := toRadians(a.Lat), toRadians(a.Lng)
	lat2, lng2 := toRadians(b.Lat), toRadians(b.Lng)

	dLat := lat2 - lat1
	dLng := lng2 - lng1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
