package heatpolicy

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
	"github.com/riskibarqy/hoopscheduler/internal/platform/logging"
)

// Level is the closed set of heat-policy warning levels.
type Level string

const (
	LevelNone    Level = "NONE"
	LevelCaution Level = "CAUTION"
	LevelWarning Level = "WARNING"
	LevelDanger  Level = "DANGER"
	LevelExtreme Level = "EXTREME"
)

// Reading is a single weather observation or forecast sample.
type Reading struct {
	TemperatureF float64
	HumidityPct  float64
	HeatIndexF   float64
	Conditions   string
	WindMPH      float64
	At           time.Time
}

// Port is the weather source. A real provider backs this in production; a
// deterministic fake backs it in tests.
type Port interface {
	GetForecast(ctx context.Context, city, state string, targetTime time.Time) (Reading, error)
	GetCurrent(ctx context.Context, city, state string) (Reading, error)
}

// Config holds the tunables named in the decision table.
type Config struct {
	DangerousHourStart int // local hour, inclusive; default 11
	DangerousHourEnd   int // local hour, exclusive; default 18
}

// DefaultConfig matches the spec's default dangerous-hours window.
func DefaultConfig() Config {
	return Config{DangerousHourStart: 11, DangerousHourEnd: 18}
}

func (c Config) inDangerousHours(local time.Time) bool {
	h := local.Hour()
	return h >= c.DangerousHourStart && h < c.DangerousHourEnd
}

// Result is the outcome of evaluating a venue/time pair against the heat
// policy.
type Result struct {
	Allowed              bool
	Level                Level
	TemperatureF         float64
	HeatIndexF           float64
	Recommendations      []string
	Restrictions         []string
	AutomaticCancellation bool
	Reason               string
}

// Evaluator applies the heat-policy decision table to outdoor venues.
type Evaluator struct {
	weather Port
	config  Config
}

func NewEvaluator(weather Port, config Config) *Evaluator {
	return &Evaluator{weather: weather, config: config}
}

// Evaluate computes the policy outcome for venue v at localStart. If
// reading is the zero value, the evaluator fetches a forecast from the
// weather port; forPreScheduling controls the fallback on weather errors
// (conservative reject before a game is scheduled, permissive during live
// play so telemetry outages never halt a game in progress).
func (e *Evaluator) Evaluate(ctx context.Context, v venue.Venue, localStart time.Time, reading *Reading, forPreScheduling bool) (Result, error) {
	if !v.Type.IsOutdoor() {
		return Result{Allowed: true, Level: LevelNone}, nil
	}

	r, err := e.resolveReading(ctx, v, localStart, reading)
	if err != nil {
		return e.fallbackResult(forPreScheduling, err), nil
	}

	hi := r.HeatIndexF
	if hi == 0 {
		hi = HeatIndexF(r.TemperatureF, r.HumidityPct)
	}
	dangerousHour := e.config.inDangerousHours(localStart)

	result := Result{TemperatureF: r.TemperatureF, HeatIndexF: hi}

	switch {
	case hi >= 115:
		result.Level = LevelExtreme
		result.Allowed = false
		result.AutomaticCancellation = true
		result.Reason = "heat index at or above extreme threshold"
	case hi >= 105 && dangerousHour:
		result.Level = LevelDanger
		result.Allowed = false
		result.Reason = "heat index at or above danger threshold during dangerous hours"
	case hi >= 105:
		result.Level = LevelWarning
		result.Allowed = true
		result.Restrictions = []string{"mandatory water breaks every quarter", "shaded bench area required"}
	case hi >= 95 && dangerousHour:
		result.Level = LevelWarning
		result.Allowed = true
		result.Restrictions = []string{"mandatory water breaks every quarter", "shaded bench area required"}
	case hi >= 95:
		result.Level = LevelCaution
		result.Allowed = true
		result.Recommendations = []string{"encourage frequent hydration"}
	default:
		result.Level = LevelNone
		result.Allowed = true
	}

	return result, nil
}

func (e *Evaluator) resolveReading(ctx context.Context, v venue.Venue, localStart time.Time, reading *Reading) (Reading, error) {
	if reading != nil {
		return *reading, nil
	}
	if e.weather == nil {
		return Reading{}, fmt.Errorf("no weather reading supplied and no weather port configured")
	}
	return e.weather.GetForecast(ctx, v.City, v.State, localStart)
}

func (e *Evaluator) fallbackResult(forPreScheduling bool, err error) Result {
	logging.Default().Warn("heat policy: weather lookup failed, applying conservative fallback", "error", err)
	if forPreScheduling {
		return Result{Level: LevelWarning, Allowed: false, Reason: "weather unavailable; refusing to schedule outdoors"}
	}
	return Result{Level: LevelWarning, Allowed: true, Reason: "weather unavailable; allowing in-progress game to continue"}
}

// PickClosestForecast selects the sample with the smallest absolute
// difference between its At time and targetTime.
func PickClosestForecast(samples []Reading, targetTime time.Time) (Reading, bool) {
	if len(samples) == 0 {
		return Reading{}, false
	}
	best := samples[0]
	bestDiff := absDuration(best.At.Sub(targetTime))
	for _, s := range samples[1:] {
		d := absDuration(s.At.Sub(targetTime))
		if d < bestDiff {
			best = s
			bestDiff = d
		}
	}
	return best, true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
