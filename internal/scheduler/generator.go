package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/conflict"
	"github.com/riskibarqy/hoopscheduler/internal/domain/blackout"
	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
	"github.com/riskibarqy/hoopscheduler/internal/heatpolicy"
)

// Division groups the teams the generator should build matchups for.
type Division struct {
	ID    string
	Teams []Team
}

// Request is everything Generate needs for one run.
type Request struct {
	SeasonStart  time.Time
	SeasonEnd    time.Time
	Location     *time.Location
	Divisions    []Division
	Venues       map[string]venue.Venue
	Availability map[string][]venue.Availability
	Blackouts    []blackout.BlackoutDate
	Params       Params
}

// Generator builds a complete schedule plan for a season. It does not
// persist anything; callers cache and later publish the plan.
type Generator struct {
	heat *heatpolicy.Evaluator
}

func NewGenerator(heat *heatpolicy.Evaluator) *Generator {
	return &Generator{heat: heat}
}

// Generate runs matchup construction, slot enumeration, and placement, then
// a post-pass that attaches residual conflicts and heat warnings.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	started := time.Now()

	var allMatchups []Matchup
	for _, div := range req.Divisions {
		allMatchups = append(allMatchups, BuildMatchups(div.Teams, div.ID, req.Params.Algorithm)...)
	}

	slots := EnumerateSlots(req.SeasonStart, req.SeasonEnd, req.Params.PreferredDays, req.Params.PreferredTimes, req.Location)

	placer := NewPlacer(req.Params, req.Venues, req.Availability, req.Blackouts, g.heat)
	placed, unplaced, err := placer.Place(ctx, allMatchups, slots)
	if err != nil {
		return Result{}, fmt.Errorf("place matchups: %w", err)
	}

	sort.Slice(placed, func(i, j int) bool { return placed[i].ScheduledStart.Before(placed[j].ScheduledStart) })

	detector := conflict.NewDetector(conflict.DefaultConfig())
	games := toProvisionalGames(placed)
	detected := detector.Detect(conflict.Input{
		Games:             games,
		Venues:            req.Venues,
		VenueAvailability: req.Availability,
		Blackouts:         req.Blackouts,
		Now:               started,
	})
	conflictsByGame := groupConflictsByGame(detected)

	withConflicts := 0
	withHeatWarnings := 0
	venueUtilization := map[string]int{}

	for i := range placed {
		sg := &placed[i]
		venueUtilization[sg.VenueID]++

		if cs, ok := conflictsByGame[games[i].ID]; ok {
			sg.Conflicts = cs
			withConflicts++
		}

		v := req.Venues[sg.VenueID]
		if v.Type.IsOutdoor() && g.heat != nil {
			result, evalErr := g.heat.Evaluate(ctx, v, sg.ScheduledStart, nil, true)
			if evalErr == nil && result.Level != heatpolicy.LevelNone {
				sg.HeatWarning = &result
				withHeatWarnings++
			}
		}
	}

	var warnings []string
	for _, m := range unplaced {
		warnings = append(warnings, fmt.Sprintf("could not place matchup %s vs %s in division %s", m.Home.Name, m.Away.Name, m.DivisionID))
	}

	return Result{
		Games: placed,
		Stats: Stats{
			TotalGames:       len(allMatchups),
			Scheduled:        len(placed),
			WithConflicts:    withConflicts,
			WithHeatWarnings: withHeatWarnings,
			VenueUtilization: venueUtilization,
			GenerationTimeMS: time.Since(started).Milliseconds(),
		},
		Warnings: warnings,
	}, nil
}

// toProvisionalGames gives the conflict detector game.Game values to work
// against without requiring persisted IDs yet.
func toProvisionalGames(placed []ScheduledGame) []game.Game {
	out := make([]game.Game, len(placed))
	for i, sg := range placed {
		out[i] = game.Game{
			ID:              sg.GameNumber,
			DivisionID:      sg.DivisionID,
			HomeTeamID:      sg.Home.ID,
			AwayTeamID:      sg.Away.ID,
			VenueID:         sg.VenueID,
			GameNumber:      sg.GameNumber,
			ScheduledStart:  sg.ScheduledStart,
			DurationMinutes: int(sg.EstimatedDuration / time.Minute),
			Status:          game.StatusScheduled,
		}
	}
	return out
}

func groupConflictsByGame(conflicts []conflict.Conflict) map[string][]conflict.Conflict {
	out := map[string][]conflict.Conflict{}
	for _, c := range conflicts {
		for _, gameID := range c.AffectedGames {
			out[gameID] = append(out[gameID], c)
		}
	}
	return out
}
