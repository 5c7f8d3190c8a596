// Package scheduler builds a season's game schedule: it constructs matchups,
// enumerates candidate slots, and places matchups into slots honoring
// blackouts, venue and team booking overlaps, and heat policy. Venue
// availability rules and team rest gaps are not checked during placement;
// the post-pass conflict detector reports them on the placed games.
package scheduler

import (
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/conflict"
	"github.com/riskibarqy/hoopscheduler/internal/heatpolicy"
)

// Algorithm is the closed set of matchup-construction schemes.
type Algorithm string

const (
	AlgorithmRoundRobin       Algorithm = "ROUND_ROBIN"
	AlgorithmDoubleRoundRobin Algorithm = "DOUBLE_ROUND_ROBIN"
	AlgorithmTournament       Algorithm = "TOURNAMENT"
)

// Team is the generator's view of a roster entry. The team directory itself
// lives in an external collaborator; the generator only needs these fields.
type Team struct {
	ID               string
	Name             string
	DivisionID       string
	PreferredVenues  []string
	BlackoutDates    []time.Time
	MaxGamesPerWeek  int
}

// VenuePreference ranks a venue's suitability for a division; higher
// priority wins when more than one preference matches.
type VenuePreference struct {
	VenueID    string
	DivisionID string
	Priority   int
}

// Params configures one generation run.
type Params struct {
	Algorithm               Algorithm
	PreferredDays           []time.Weekday
	PreferredTimes          []string // "HH:MM" local
	GameDurationMinutes     int
	BufferMinutes           int
	MaxGamesPerDay          int
	MaxGamesPerWeek         int
	EnforceHeatPolicy       bool
	AllowOverlappingDivisions bool
	RespectBlackoutDates    bool
	VenuePreferences        []VenuePreference
	MaxConcurrentWorkers    int
}

// DefaultParams mirrors the spec's stated defaults where one is named.
func DefaultParams() Params {
	return Params{
		Algorithm:            AlgorithmRoundRobin,
		GameDurationMinutes:  90,
		BufferMinutes:        30,
		MaxConcurrentWorkers: 5,
	}
}

// ScheduledGame is one successfully placed matchup.
type ScheduledGame struct {
	Home               Team
	Away               Team
	VenueID            string
	ScheduledStart     time.Time
	DivisionID         string
	GameNumber         string
	EstimatedDuration  time.Duration
	Conflicts          []conflict.Conflict
	HeatWarning        *heatpolicy.Result
}

// Stats summarizes one generation run.
type Stats struct {
	TotalGames       int
	Scheduled        int
	WithConflicts    int
	WithHeatWarnings int
	VenueUtilization map[string]int
	GenerationTimeMS int64
}

// Result is the full output of Generate: the plan plus statistics and
// warnings for unplaceable matchups. The generator never persists games;
// persistence happens at publish time.
type Result struct {
	Games    []ScheduledGame
	Stats    Stats
	Warnings []string
}
