package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/hoopscheduler/internal/domain/blackout"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
	"github.com/riskibarqy/hoopscheduler/internal/heatpolicy"
	"github.com/riskibarqy/hoopscheduler/internal/platform/logging"
)

// booking is an interval already committed to a venue or a team.
type booking struct {
	start time.Time
	end   time.Time
}

func (b booking) overlaps(start, end time.Time) bool {
	return b.start.Before(end) && start.Before(b.end)
}

// placementState holds the shared, mutable scheduling state. Reading it to
// check availability and appending a new booking is one critical section,
// guarded by mu, matching the spec's "check + append" invariant: two
// concurrent workers must never both observe an empty slot and commit to it.
type placementState struct {
	mu             sync.Mutex
	venueBookings  map[string][]booking
	teamBookings   map[string][]booking
	venueDayCounts map[string]int // "venueID|YYYY-MM-DD" -> count, unused hook for future per-day venue caps
}

func newPlacementState() *placementState {
	return &placementState{
		venueBookings: make(map[string][]booking),
		teamBookings:  make(map[string][]booking),
	}
}

// placeResult is what one worker reports back for one matchup.
type placeResult struct {
	matchup Matchup
	placed  *ScheduledGame
}

// Placer runs the placement loop described in the spec: for each matchup,
// scan candidate slots in order, pick the first suitable and available
// venue/time, and commit it under the shared placement state's lock.
type Placer struct {
	params       Params
	venues       map[string]venue.Venue
	availability map[string][]venue.Availability
	blackouts    []blackout.BlackoutDate
	heat         *heatpolicy.Evaluator
	state        *placementState
	seq          atomic.Int64
}

func NewPlacer(params Params, venues map[string]venue.Venue, availability map[string][]venue.Availability, blackouts []blackout.BlackoutDate, heat *heatpolicy.Evaluator) *Placer {
	if params.MaxConcurrentWorkers <= 0 {
		params.MaxConcurrentWorkers = 5
	}
	return &Placer{
		params:       params,
		venues:       venues,
		availability: availability,
		blackouts:    blackouts,
		heat:         heat,
		state:        newPlacementState(),
	}
}

// Place attempts to place every matchup into one of slots. It returns the
// successfully placed games (order not guaranteed — callers sort by
// ScheduledStart) and the matchups that could not be placed.
func (p *Placer) Place(ctx context.Context, matchups []Matchup, slots []Slot) ([]ScheduledGame, []Matchup, error) {
	pool, err := ants.NewPool(p.params.MaxConcurrentWorkers)
	if err != nil {
		return nil, nil, fmt.Errorf("create placement worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]placeResult, len(matchups))
	var wg sync.WaitGroup

	for i, m := range matchups {
		i, m := i, m
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			placed := p.placeOne(ctx, m, slots)
			results[i] = placeResult{matchup: m, placed: placed}
		})
		if submitErr != nil {
			wg.Done()
			logging.Default().Warn("scheduler: failed to submit placement task", "error", submitErr)
			results[i] = placeResult{matchup: m, placed: nil}
		}
	}
	wg.Wait()

	var placed []ScheduledGame
	var unplaced []Matchup
	for _, r := range results {
		if r.placed != nil {
			placed = append(placed, *r.placed)
		} else {
			unplaced = append(unplaced, r.matchup)
		}
	}

	return placed, unplaced, nil
}

func (p *Placer) placeOne(ctx context.Context, m Matchup, slots []Slot) *ScheduledGame {
	duration := time.Duration(p.params.GameDurationMinutes) * time.Minute
	buffer := time.Duration(p.params.BufferMinutes) * time.Minute

	for _, slot := range slots {
		if p.blackoutBlocks(slot.Start, "", m.DivisionID) {
			continue
		}
		if teamBlackedOut(m.Home, slot.Start) || teamBlackedOut(m.Away, slot.Start) {
			continue
		}

		venueID, ok := p.pickVenue(m, slot, duration, buffer)
		if !ok {
			continue
		}

		if p.params.EnforceHeatPolicy && p.heat != nil {
			v := p.venues[venueID]
			if v.Type.IsOutdoor() {
				result, err := p.heat.Evaluate(ctx, v, slot.Start, nil, true)
				if err == nil && !result.Allowed {
					continue
				}
			}
		}

		if p.commit(m, venueID, slot.Start, duration, buffer) {
			seq := p.seq.Add(1)
			return &ScheduledGame{
				Home:              m.Home,
				Away:              m.Away,
				VenueID:           venueID,
				ScheduledStart:    slot.Start,
				DivisionID:        m.DivisionID,
				GameNumber:        formatGameNumber(int(seq)),
				EstimatedDuration: duration,
			}
		}
		// Either another worker committed to this venue/slot between our
		// check and our commit attempt, or one of the teams already has an
		// overlapping booking; try the next candidate slot.
	}
	return nil
}

// pickVenue chooses a suitable venue for the matchup's division, honoring
// venue_preferences priority order when present, otherwise any active venue.
func (p *Placer) pickVenue(m Matchup, slot Slot, duration, buffer time.Duration) (string, bool) {
	candidates := p.suitableVenues(m.DivisionID)
	for _, venueID := range candidates {
		if p.venueAvailableUnlocked(venueID, slot.Start, duration, buffer) {
			return venueID, true
		}
	}
	return "", false
}

func (p *Placer) suitableVenues(divisionID string) []string {
	type pref struct {
		venueID  string
		priority int
	}
	var prefs []pref
	for _, vp := range p.params.VenuePreferences {
		if vp.DivisionID == divisionID {
			prefs = append(prefs, pref{venueID: vp.VenueID, priority: vp.Priority})
		}
	}
	if len(prefs) > 0 {
		sortPrefsByPriorityDesc(prefs)
		out := make([]string, len(prefs))
		for i, pr := range prefs {
			out[i] = pr.venueID
		}
		return out
	}

	var out []string
	for id, v := range p.venues {
		if v.Active {
			out = append(out, id)
		}
	}
	return out
}

func sortPrefsByPriorityDesc(prefs []struct {
	venueID  string
	priority int
}) {
	for i := 1; i < len(prefs); i++ {
		for j := i; j > 0 && prefs[j].priority > prefs[j-1].priority; j-- {
			prefs[j], prefs[j-1] = prefs[j-1], prefs[j]
		}
	}
}

func (p *Placer) venueAvailableUnlocked(venueID string, start time.Time, duration, buffer time.Duration) bool {
	p.state.mu.Lock()
	defer p.state.mu.Unlock()
	return !p.venueConflicts(venueID, start, duration, buffer)
}

func (p *Placer) venueConflicts(venueID string, start time.Time, duration, buffer time.Duration) bool {
	end := start.Add(duration + buffer)
	for _, b := range p.state.venueBookings[venueID] {
		if b.overlaps(start, end) {
			return true
		}
	}
	return false
}

func (p *Placer) teamConflicts(teamID string, start time.Time, duration time.Duration) bool {
	end := start.Add(duration)
	for _, b := range p.state.teamBookings[teamID] {
		if b.overlaps(start, end) {
			return true
		}
	}
	return false
}

// commit is the critical "check + append" step: it re-validates that the
// venue and both teams are still free (a concurrent worker may have
// committed since the unlocked pre-check) and, if so, books them atomically.
func (p *Placer) commit(m Matchup, venueID string, start time.Time, duration, buffer time.Duration) bool {
	p.state.mu.Lock()
	defer p.state.mu.Unlock()

	if p.venueConflicts(venueID, start, duration, buffer) {
		return false
	}
	if p.teamConflicts(m.Home.ID, start, duration) || p.teamConflicts(m.Away.ID, start, duration) {
		return false
	}

	venueEnd := start.Add(duration + buffer)
	teamEnd := start.Add(duration)
	p.state.venueBookings[venueID] = append(p.state.venueBookings[venueID], booking{start: start, end: venueEnd})
	p.state.teamBookings[m.Home.ID] = append(p.state.teamBookings[m.Home.ID], booking{start: start, end: teamEnd})
	p.state.teamBookings[m.Away.ID] = append(p.state.teamBookings[m.Away.ID], booking{start: start, end: teamEnd})
	return true
}

func (p *Placer) blackoutBlocks(date time.Time, venueID, divisionID string) bool {
	for _, b := range p.blackouts {
		if b.AppliesTo(date, venueID, divisionID) {
			return true
		}
	}
	return false
}

func teamBlackedOut(team Team, date time.Time) bool {
	for _, d := range team.BlackoutDates {
		if sameDay(d, date) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func formatGameNumber(seq int) string {
	return fmt.Sprintf("G%03d", seq)
}
