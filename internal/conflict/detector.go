package conflict

import (
	"fmt"
	"sort"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/hoopscheduler/internal/domain/assignment"
	"github.com/riskibarqy/hoopscheduler/internal/domain/blackout"
	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/domain/official"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
)

// Input bundles everything the detector needs. All fields are read-only from
// the detector's perspective; it never mutates or persists anything.
type Input struct {
	Games             []game.Game
	Venues            map[string]venue.Venue
	VenueAvailability map[string][]venue.Availability
	Blackouts         []blackout.BlackoutDate
	Assignments       []assignment.Assignment
	Officials         map[string]official.Official
	Now               time.Time
}

// Detector evaluates a season's games (or a single proposed game) against
// the scheduling rules and returns a sorted, deterministic list of
// conflicts. It holds no mutable state and performs no I/O.
type Detector struct {
	config Config
}

func NewDetector(config Config) *Detector {
	return &Detector{config: config}
}

// Detect runs all independent checks concurrently and merges the results.
func (d *Detector) Detect(in Input) []Conflict {
	active := make([]game.Game, 0, len(in.Games))
	for _, g := range in.Games {
		if g.Status != game.StatusCancelled {
			active = append(active, g)
		}
	}

	var results [6][]Conflict
	var wg conc.WaitGroup

	wg.Go(func() { results[0] = d.checkVenueDoubleBooking(active) })
	wg.Go(func() { results[1] = d.checkTeamConflicts(active) })
	wg.Go(func() { results[2] = d.checkTravelTimeConflicts(active, in.Venues) })
	wg.Go(func() { results[3] = d.checkHeatPolicy(active, in.Venues) })
	wg.Go(func() { results[4] = d.checkOfficialDoubleBooking(in.Assignments, active) })
	wg.Go(func() { results[5] = d.checkVenueAndBlackout(active, in.Venues, in.VenueAvailability, in.Blackouts) })

	wg.Wait()

	var all []Conflict
	for _, r := range results {
		all = append(all, r...)
	}
	for i := range all {
		all[i].inputOrder = i
		if all[i].CreatedAt.IsZero() {
			all[i].CreatedAt = in.Now
		}
	}
	Sort(all)
	return all
}

// DetectGameConflicts evaluates a single proposed game against the rest of
// the season's games, used by reschedule/publish guards.
func (d *Detector) DetectGameConflicts(proposed game.Game, rest []game.Game, venues map[string]venue.Venue, blackouts []blackout.BlackoutDate) []Conflict {
	games := make([]game.Game, 0, len(rest)+1)
	for _, g := range rest {
		if g.ID != proposed.ID {
			games = append(games, g)
		}
	}
	games = append(games, proposed)
	return d.Detect(Input{Games: games, Venues: venues, Blackouts: blackouts, Now: proposed.UpdatedAt})
}

func (d *Detector) checkVenueDoubleBooking(games []game.Game) []Conflict {
	byVenue := map[string][]game.Game{}
	for _, g := range games {
		byVenue[g.VenueID] = append(byVenue[g.VenueID], g)
	}

	buffer := time.Duration(d.config.BufferMinutes) * time.Minute
	var out []Conflict
	for _, vg := range byVenue {
		sort.Slice(vg, func(i, j int) bool { return vg[i].ScheduledStart.Before(vg[j].ScheduledStart) })
		for i := 0; i < len(vg); i++ {
			for j := i + 1; j < len(vg); j++ {
				aStart, aEnd := vg[i].WindowWithBuffer(buffer)
				bStart, bEnd := vg[j].WindowWithBuffer(buffer)
				if !overlaps(aStart, aEnd, bStart, bEnd) {
					continue
				}
				out = append(out, Conflict{
					ID:            fmt.Sprintf("VENUE_DOUBLE_BOOKING:%s:%s", vg[i].ID, vg[j].ID),
					Type:          TypeVenueDoubleBooking,
					Severity:      SeverityHigh,
					Description:   fmt.Sprintf("games %s and %s overlap at venue %s", vg[i].ID, vg[j].ID, vg[i].VenueID),
					AffectedGames: []string{vg[i].ID, vg[j].ID},
					AffectedVenues: []string{vg[i].VenueID},
					ScheduledTime: vg[j].ScheduledStart,
					ResolutionOptions: []ResolutionOption{
						{Strategy: StrategyRescheduleGame, Effort: EffortMedium},
						{Strategy: StrategyChangeVenue, Effort: EffortMedium},
					},
					SuggestedResolution: string(StrategyRescheduleGame),
				})
			}
		}
	}
	return out
}

func (d *Detector) checkTeamConflicts(games []game.Game) []Conflict {
	byTeam := map[string][]game.Game{}
	for _, g := range games {
		byTeam[g.HomeTeamID] = append(byTeam[g.HomeTeamID], g)
		byTeam[g.AwayTeamID] = append(byTeam[g.AwayTeamID], g)
	}

	var out []Conflict
	restWindow := time.Duration(d.config.MinRestHours * float64(time.Hour))
	for team, tg := range byTeam {
		sort.Slice(tg, func(i, j int) bool { return tg[i].ScheduledStart.Before(tg[j].ScheduledStart) })
		for i := 0; i < len(tg)-1; i++ {
			a, b := tg[i], tg[i+1]
			aEnd := a.EndTime()
			if overlaps(a.ScheduledStart, aEnd, b.ScheduledStart, b.EndTime()) {
				overlapMinutes := int(aEnd.Sub(b.ScheduledStart).Minutes())
				if overlapMinutes < 0 {
					overlapMinutes = int(b.EndTime().Sub(a.ScheduledStart).Minutes())
				}
				out = append(out, Conflict{
					ID:            fmt.Sprintf("TEAM_DOUBLE_BOOKING:%s:%s", a.ID, b.ID),
					Type:          TypeTeamDoubleBooking,
					Severity:      SeverityCritical,
					Description:   fmt.Sprintf("team %s is booked in overlapping games %s and %s", team, a.ID, b.ID),
					AffectedGames: []string{a.ID, b.ID},
					AffectedTeams: []string{team},
					ScheduledTime: b.ScheduledStart,
					Metadata:      map[string]any{"overlap_minutes": overlapMinutes},
					ResolutionOptions: []ResolutionOption{
						{Strategy: StrategyRescheduleGame, Effort: EffortHigh},
						{Strategy: StrategySwapHomeAway, Effort: EffortLow},
					},
					SuggestedResolution: string(StrategyRescheduleGame),
				})
				continue
			}

			gap := b.ScheduledStart.Sub(aEnd)
			if gap < restWindow {
				out = append(out, Conflict{
					ID:            fmt.Sprintf("INSUFFICIENT_REST_TIME:%s:%s", a.ID, b.ID),
					Type:          TypeInsufficientRest,
					Severity:      SeverityMedium,
					Description:   fmt.Sprintf("team %s has only %.1fh rest between games %s and %s", team, gap.Hours(), a.ID, b.ID),
					AffectedGames: []string{a.ID, b.ID},
					AffectedTeams: []string{team},
					ScheduledTime: b.ScheduledStart,
					Metadata:      map[string]any{"gap_hours": gap.Hours()},
					ResolutionOptions: []ResolutionOption{
						{Strategy: StrategyRescheduleGame, Effort: EffortMedium},
					},
					SuggestedResolution: string(StrategyRescheduleGame),
				})
			}
		}
	}
	return out
}

func (d *Detector) checkTravelTimeConflicts(games []game.Game, venues map[string]venue.Venue) []Conflict {
	byTeam := map[string][]game.Game{}
	for _, g := range games {
		byTeam[g.HomeTeamID] = append(byTeam[g.HomeTeamID], g)
		byTeam[g.AwayTeamID] = append(byTeam[g.AwayTeamID], g)
	}

	var out []Conflict
	for team, tg := range byTeam {
		sort.Slice(tg, func(i, j int) bool { return tg[i].ScheduledStart.Before(tg[j].ScheduledStart) })
		for i := 0; i < len(tg)-1; i++ {
			a, b := tg[i], tg[i+1]
			if a.VenueID == b.VenueID {
				continue
			}
			gap := b.ScheduledStart.Sub(a.EndTime())
			if gap <= 0 {
				continue // already flagged as a double-booking
			}
			travel := EstimateTravelMinutes(venues[a.VenueID], venues[b.VenueID], d.config)
			maxAllowed := time.Duration(d.config.MaxTravelMinutes) * time.Minute
			if travel <= gap && travel <= maxAllowed {
				continue
			}
			out = append(out, Conflict{
				ID:             fmt.Sprintf("TRAVEL_TIME_CONFLICT:%s:%s", a.ID, b.ID),
				Type:           TypeTravelTimeConflict,
				Severity:       SeverityMedium,
				Description:    fmt.Sprintf("team %s has %s of travel but only %s between games %s and %s", team, travel, gap, a.ID, b.ID),
				AffectedGames:  []string{a.ID, b.ID},
				AffectedTeams:  []string{team},
				AffectedVenues: []string{a.VenueID, b.VenueID},
				ScheduledTime:  b.ScheduledStart,
				Metadata:       map[string]any{"travel_minutes": travel.Minutes(), "gap_minutes": gap.Minutes()},
				ResolutionOptions: []ResolutionOption{
					{Strategy: StrategyRescheduleGame, Effort: EffortMedium},
					{Strategy: StrategyChangeVenue, Effort: EffortHigh},
				},
				SuggestedResolution: string(StrategyRescheduleGame),
			})
		}
	}
	return out
}

func (d *Detector) checkHeatPolicy(games []game.Game, venues map[string]venue.Venue) []Conflict {
	var out []Conflict
	for _, g := range games {
		v, ok := venues[g.VenueID]
		if !ok || !v.Type.IsOutdoor() {
			continue
		}
		month := g.ScheduledStart.Month()
		if month < time.May || month > time.October {
			continue
		}
		hour := g.ScheduledStart.Hour()
		if hour < d.config.DangerousHourStart || hour >= d.config.DangerousHourEnd {
			continue
		}
		out = append(out, Conflict{
			ID:             fmt.Sprintf("HEAT_POLICY_VIOLATION:%s", g.ID),
			Type:           TypeHeatPolicyViolation,
			Severity:       SeverityHigh,
			Description:    fmt.Sprintf("game %s is scheduled outdoors during dangerous heat hours", g.ID),
			AffectedGames:  []string{g.ID},
			AffectedVenues: []string{g.VenueID},
			ScheduledTime:  g.ScheduledStart,
			ResolutionOptions: []ResolutionOption{
				{Strategy: StrategyRescheduleGame, Effort: EffortMedium},
				{Strategy: StrategyChangeVenue, Effort: EffortHigh},
			},
			SuggestedResolution: string(StrategyRescheduleGame),
		})
	}
	return out
}

func (d *Detector) checkOfficialDoubleBooking(assignments []assignment.Assignment, games []game.Game) []Conflict {
	gameByID := map[string]game.Game{}
	for _, g := range games {
		gameByID[g.ID] = g
	}

	byOfficial := map[string][]assignment.Assignment{}
	for _, a := range assignments {
		if !a.Status.Active() {
			continue
		}
		byOfficial[a.OfficialID] = append(byOfficial[a.OfficialID], a)
	}

	var out []Conflict
	for officialID, assigns := range byOfficial {
		sort.Slice(assigns, func(i, j int) bool {
			return gameByID[assigns[i].GameID].ScheduledStart.Before(gameByID[assigns[j].GameID].ScheduledStart)
		})
		for i := 0; i < len(assigns); i++ {
			gi, ok := gameByID[assigns[i].GameID]
			if !ok {
				continue
			}
			for j := i + 1; j < len(assigns); j++ {
				gj, ok := gameByID[assigns[j].GameID]
				if !ok {
					continue
				}
				if !overlaps(gi.ScheduledStart, gi.EndTime(), gj.ScheduledStart, gj.EndTime()) {
					continue
				}
				out = append(out, Conflict{
					ID:                fmt.Sprintf("OFFICIAL_DOUBLE_BOOKING:%s:%s", gi.ID, gj.ID),
					Type:              TypeOfficialDoubleBooking,
					Severity:          SeverityCritical,
					Description:       fmt.Sprintf("official %s is assigned to overlapping games %s and %s", officialID, gi.ID, gj.ID),
					AffectedGames:     []string{gi.ID, gj.ID},
					AffectedOfficials: []string{officialID},
					ScheduledTime:     gj.ScheduledStart,
					ResolutionOptions: []ResolutionOption{
						{Strategy: StrategyManualResolution, Effort: EffortMedium},
					},
					SuggestedResolution: string(StrategyManualResolution),
				})
			}
		}
	}
	return out
}

func (d *Detector) checkVenueAndBlackout(games []game.Game, venues map[string]venue.Venue, availability map[string][]venue.Availability, blackouts []blackout.BlackoutDate) []Conflict {
	var out []Conflict
	for _, g := range games {
		_, hasVenue := venues[g.VenueID]
		if hasVenue {
			if ok, reason := venueEffectivelyAvailable(availability[g.VenueID], g); !ok {
				out = append(out, Conflict{
					ID:             fmt.Sprintf("VENUE_UNAVAILABLE:%s", g.ID),
					Type:           TypeVenueUnavailable,
					Severity:       SeverityHigh,
					Description:    fmt.Sprintf("game %s falls outside venue %s's availability: %s", g.ID, g.VenueID, reason),
					AffectedGames:  []string{g.ID},
					AffectedVenues: []string{g.VenueID},
					ScheduledTime:  g.ScheduledStart,
					ResolutionOptions: []ResolutionOption{
						{Strategy: StrategyChangeVenue, Effort: EffortMedium},
						{Strategy: StrategyRescheduleGame, Effort: EffortMedium},
					},
					SuggestedResolution: string(StrategyChangeVenue),
				})
			}
		}

		date := g.ScheduledStart
		for _, b := range blackouts {
			if b.AppliesTo(date, g.VenueID, g.DivisionID) {
				out = append(out, Conflict{
					ID:             fmt.Sprintf("BLACKOUT_DATE:%s:%s", g.ID, b.ID),
					Type:           TypeBlackoutDate,
					Severity:       SeverityHigh,
					Description:    fmt.Sprintf("game %s falls inside blackout %q", g.ID, b.Name),
					AffectedGames:  []string{g.ID},
					AffectedVenues: []string{g.VenueID},
					ScheduledTime:  g.ScheduledStart,
					ResolutionOptions: []ResolutionOption{
						{Strategy: StrategyRescheduleGame, Effort: EffortLow},
					},
					SuggestedResolution: string(StrategyRescheduleGame),
				})
			}
		}
	}
	return out
}

// venueEffectivelyAvailable checks the venue's weekly availability rules. No
// rules at all means unrestricted. Overlapping rules resolve by priority
// (higher wins); an expired rule is treated as inactive.
func venueEffectivelyAvailable(rules []venue.Availability, g game.Game) (bool, string) {
	if len(rules) == 0 {
		return true, ""
	}

	dow := venue.DayOfWeekFromTime(g.ScheduledStart)
	clock := g.ScheduledStart.Format("15:04")
	today := g.ScheduledStart

	var winner *venue.Availability
	for i := range rules {
		r := rules[i]
		if r.DayOfWeek != dow || !r.Active(today) {
			continue
		}
		if clock < r.StartTime || clock >= r.EndTime {
			continue
		}
		if winner == nil || r.Priority > winner.Priority {
			winner = &r
		}
	}

	if winner == nil {
		return false, "no availability rule covers this time"
	}
	if winner.Kind != venue.KindAvailable {
		return false, fmt.Sprintf("covered by a %s rule", winner.Kind)
	}
	return true, ""
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
