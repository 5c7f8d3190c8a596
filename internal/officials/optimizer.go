package officials

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/conflict"
	"github.com/riskibarqy/hoopscheduler/internal/domain/assignment"
	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/domain/official"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
)

// Conflict types specific to the officials optimizer, carried in the same
// conflict.Conflict value the detector produces so callers have one shape
// to render.
const (
	ConflictSkillMismatch  conflict.Type = "SKILL_MISMATCH"
	ConflictUnassignedGame conflict.Type = "UNASSIGNED_GAME"
)

// Optimizer assigns officials to games using a greedy, sequential-by-game
// scoring pass followed by a cross-assignment conflict check.
type Optimizer struct{}

func NewOptimizer() *Optimizer {
	return &Optimizer{}
}

// Optimize runs the full algorithm described in the spec: filter active
// officials, walk games in priority order, fill required roles by score,
// then detect residual double-booking/travel conflicts across the produced
// assignments.
func (o *Optimizer) Optimize(games []GameContext, officials []official.Official, venues map[string]venue.Venue, constraints Constraints) Result {
	active := filterActive(officials)
	sortGames(games)

	workloads := make(map[string]*workload, len(active))
	for _, of := range active {
		workloads[of.ID] = newWorkload()
	}

	var pending []PendingAssignment
	var conflicts []conflict.Conflict
	var unassigned []string

	for _, gc := range games {
		roles := requiredRoles(gc.SkillLevel, gc.Game.GameType)
		missingRole := false

		for _, role := range roles {
			filled := o.fillRole(gc, role, active, venues, constraints, workloads)
			if len(filled) == 0 {
				conflicts = append(conflicts, skillMismatchConflict(gc.Game, role))
				missingRole = true
				continue
			}
			pending = append(pending, filled...)
		}

		if missingRole {
			unassigned = append(unassigned, gc.Game.ID)
			conflicts = append(conflicts, unassignedGameConflict(gc.Game))
		}
	}

	assignments := toAssignments(pending)
	conflicts = append(conflicts, crossAssignmentConflicts(assignments, games)...)

	stats := computeStatistics(games, pending, unassigned)

	success := len(unassigned) == 0 && !hasCritical(conflicts)

	return Result{
		Success:         success,
		Assignments:     assignments,
		UnassignedGames: unassigned,
		Conflicts:       conflicts,
		Statistics:      stats,
	}
}

func filterActive(officials []official.Official) []official.Official {
	out := make([]official.Official, 0, len(officials))
	for _, o := range officials {
		if o.Active {
			out = append(out, o)
		}
	}
	return out
}

func sortGames(games []GameContext) {
	sort.SliceStable(games, func(i, j int) bool {
		a, b := games[i].Game, games[j].Game
		if !a.ScheduledStart.Equal(b.ScheduledStart) {
			return a.ScheduledStart.Before(b.ScheduledStart)
		}
		ia, ib := gameTypeImportance(a.GameType), gameTypeImportance(b.GameType)
		if ia != ib {
			return ia > ib
		}
		return a.GameNumber < b.GameNumber
	})
}

type candidate struct {
	official official.Official
	score    float64
	distance float64
}

// fillRole computes the candidate set for one role on one game, scores it,
// and commits as many assignments as the role allows (role.MaxPerGame()).
func (o *Optimizer) fillRole(gc GameContext, role official.Specialty, officials []official.Official, venues map[string]venue.Venue, constraints Constraints, workloads map[string]*workload) []PendingAssignment {
	v := venues[gc.Game.VenueID]
	var candidates []candidate

	for _, of := range officials {
		if !of.HasSpecialty(role) {
			continue
		}
		if constraints.RequireCertification != "" && !of.Certification.Meets(constraints.RequireCertification) {
			continue
		}

		distance := travelDistanceKM(of, v)
		maxDistance := of.TravelRadiusKM
		if constraints.MaxTravelDistanceKM > 0 && constraints.MaxTravelDistanceKM < maxDistance {
			maxDistance = constraints.MaxTravelDistanceKM
		}
		if maxDistance > 0 && distance > maxDistance {
			continue
		}

		wl := workloads[of.ID]
		if wl == nil {
			continue
		}
		dayLimit := constraints.MaxGamesPerOfficialPerDay
		if dayLimit > 0 && of.MaxGamesPerDay > 0 && of.MaxGamesPerDay < dayLimit {
			dayLimit = of.MaxGamesPerDay
		}
		if dayLimit > 0 && wl.dayCount[dayKey(gc.Game.ScheduledStart)] >= dayLimit {
			continue
		}
		weekLimit := constraints.MaxGamesPerOfficialPerWeek
		if weekLimit > 0 && of.MaxGamesPerWeek > 0 && of.MaxGamesPerWeek < weekLimit {
			weekLimit = of.MaxGamesPerWeek
		}
		if weekLimit > 0 && wl.weekCount >= weekLimit {
			continue
		}

		if !constraints.AllowBackToBackGames && !wl.lastGameEnd.IsZero() {
			rest := gc.Game.ScheduledStart.Sub(wl.lastGameEnd)
			if rest < time.Duration(constraints.MinRestPeriodMinutes)*time.Minute {
				continue
			}
		}

		candidates = append(candidates, candidate{
			official: of,
			distance: distance,
			score:    scoreCandidate(of, distance),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].official.ID < candidates[j].official.ID
	})

	maxPerGame := role.MaxPerGame()
	var out []PendingAssignment
	for i := 0; i < len(candidates) && i < maxPerGame; i++ {
		c := candidates[i]
		payRate := computePayRate(c.official, role, gc.Game.GameType, gc.SkillLevel)
		hours := float64(gc.Game.DurationMinutes) / 60.0
		pa := PendingAssignment{
			GameID:       gc.Game.ID,
			OfficialID:   c.official.ID,
			Role:         role,
			PayRate:      payRate,
			EstimatedPay: payRate * hours,
		}
		out = append(out, pa)

		wl := workloads[c.official.ID]
		wl.dayCount[dayKey(gc.Game.ScheduledStart)]++
		wl.weekCount++
		if end := gc.Game.EndTime(); end.After(wl.lastGameEnd) {
			wl.lastGameEnd = end
		}
	}

	return out
}

// scoreCandidate implements 10*certification_level + max(0, 50-distance_km)
// + 0.1*max(0, 100-hourly_rate).
func scoreCandidate(of official.Official, distanceKM float64) float64 {
	certLevel := map[official.Certification]float64{
		official.CertBeginner:     1,
		official.CertIntermediate: 2,
		official.CertAdvanced:     3,
		official.CertExpert:       4,
	}[of.Certification]

	return 10*certLevel + math.Max(0, 50-distanceKM) + 0.1*math.Max(0, 100-of.HourlyRate)
}

func computePayRate(of official.Official, role official.Specialty, gameType game.Type, skillLevel string) float64 {
	roleMultiplier := map[official.Specialty]float64{
		official.SpecialtyHeadReferee:      1.0,
		official.SpecialtyAssistantReferee: 0.8,
		official.SpecialtyScorekeeper:      0.6,
		official.SpecialtyClockOperator:    0.5,
	}[role]

	gameTypeMultiplier := 1.0
	switch gameType {
	case game.TypeChampionship:
		gameTypeMultiplier = 1.5
	case game.TypePlayoff:
		gameTypeMultiplier = 1.25
	}

	skillMultiplier := 1.0
	switch skillLevel {
	case "COMPETITIVE":
		skillMultiplier = 1.2
	case "ADVANCED":
		skillMultiplier = 1.1
	}

	return of.HourlyRate * roleMultiplier * gameTypeMultiplier * skillMultiplier
}

func toAssignments(pending []PendingAssignment) []assignment.Assignment {
	now := time.Now()
	out := make([]assignment.Assignment, len(pending))
	for i, p := range pending {
		out[i] = assignment.Assignment{
			GameID:       p.GameID,
			OfficialID:   p.OfficialID,
			Role:         p.Role,
			Status:       assignment.StatusPending,
			AssignedAt:   now,
			PayRate:      p.PayRate,
			EstimatedPay: p.EstimatedPay,
		}
	}
	return out
}

func skillMismatchConflict(g game.Game, role official.Specialty) conflict.Conflict {
	return conflict.Conflict{
		ID:                fmt.Sprintf("SKILL_MISMATCH:%s:%s", g.ID, role),
		Type:              ConflictSkillMismatch,
		Severity:          conflict.SeverityHigh,
		Description:       fmt.Sprintf("no qualified %s candidate for game %s", role, g.ID),
		AffectedGames:     []string{g.ID},
		ScheduledTime:     g.ScheduledStart,
		ResolutionOptions: []conflict.ResolutionOption{{Strategy: conflict.StrategyManualResolution, Effort: conflict.EffortMedium}},
	}
}

func unassignedGameConflict(g game.Game) conflict.Conflict {
	return conflict.Conflict{
		ID:                fmt.Sprintf("UNASSIGNED_GAME:%s", g.ID),
		Type:              ConflictUnassignedGame,
		Severity:          conflict.SeverityCritical,
		Description:       fmt.Sprintf("game %s could not be fully staffed", g.ID),
		AffectedGames:     []string{g.ID},
		ScheduledTime:     g.ScheduledStart,
		ResolutionOptions: []conflict.ResolutionOption{{Strategy: conflict.StrategyManualResolution, Effort: conflict.EffortHigh}},
	}
}

func hasCritical(conflicts []conflict.Conflict) bool {
	for _, c := range conflicts {
		if c.Severity == conflict.SeverityCritical {
			return true
		}
	}
	return false
}

func computeStatistics(games []GameContext, pending []PendingAssignment, unassigned []string) Statistics {
	assignedByGame := map[string]int{}
	var totalPay float64
	for _, p := range pending {
		assignedByGame[p.GameID]++
		totalPay += p.EstimatedPay
	}

	stats := Statistics{TotalGames: len(games), TotalEstimatedPay: totalPay}
	unassignedSet := make(map[string]bool, len(unassigned))
	for _, id := range unassigned {
		unassignedSet[id] = true
	}

	for _, gc := range games {
		if unassignedSet[gc.Game.ID] {
			stats.Unassigned++
			continue
		}
		expectedRoles := len(requiredRoles(gc.SkillLevel, gc.Game.GameType))
		if assignedByGame[gc.Game.ID] >= expectedRoles {
			stats.FullyStaffed++
		} else {
			stats.PartiallyStaffed++
		}
	}
	return stats
}

func travelDistanceKM(of official.Official, v venue.Venue) float64 {
	if v.Geo == nil {
		return 0
	}
	// Officials do not carry a home geo-point in the spec's entity list;
	// absent one, distance defaults to 0 (always in range) so the
	// certification/availability/workload filters remain the binding
	// constraints.
	return 0
}
