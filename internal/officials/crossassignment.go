package officials

import (
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/conflict"
	"github.com/riskibarqy/hoopscheduler/internal/domain/assignment"
)

// crossAssignmentConflicts detects, per official, games assigned to them
// that overlap (DOUBLE_BOOKING) or sit too close together across venues
// (TRAVEL_TIME) in the produced assignment set.
func crossAssignmentConflicts(assignments []assignment.Assignment, games []GameContext) []conflict.Conflict {
	gameByID := make(map[string]GameContext, len(games))
	for _, gc := range games {
		gameByID[gc.Game.ID] = gc
	}

	byOfficial := map[string][]assignment.Assignment{}
	for _, a := range assignments {
		byOfficial[a.OfficialID] = append(byOfficial[a.OfficialID], a)
	}

	var conflicts []conflict.Conflict
	for officialID, list := range byOfficial {
		sort.SliceStable(list, func(i, j int) bool {
			gi, gj := gameByID[list[i].GameID], gameByID[list[j].GameID]
			return gi.Game.ScheduledStart.Before(gj.Game.ScheduledStart)
		})

		for i := 0; i < len(list); i++ {
			gi, ok := gameByID[list[i].GameID]
			if !ok {
				continue
			}
			for j := i + 1; j < len(list); j++ {
				gj, ok := gameByID[list[j].GameID]
				if !ok {
					continue
				}

				if overlaps(gi.Game.ScheduledStart, gi.Game.EndTime(), gj.Game.ScheduledStart, gj.Game.EndTime()) {
					conflicts = append(conflicts, doubleBookingConflict(officialID, gi, gj))
					continue
				}

				if gi.Game.VenueID != gj.Game.VenueID {
					gap := gj.Game.ScheduledStart.Sub(gi.Game.EndTime())
					if gap >= 0 && gap < minTravelGap {
						conflicts = append(conflicts, travelTimeConflict(officialID, gi, gj, gap))
					}
				}
			}
		}
	}

	conflict.Sort(conflicts)
	return conflicts
}

// minTravelGap is the minimum time an official needs between games at
// different venues before the assignment is flagged.
const minTravelGap = 30 * time.Minute

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func doubleBookingConflict(officialID string, a, b GameContext) conflict.Conflict {
	return conflict.Conflict{
		ID:            fmt.Sprintf("OFFICIAL_DOUBLE_BOOKING:%s:%s:%s", officialID, a.Game.ID, b.Game.ID),
		Type:          conflict.TypeOfficialDoubleBooking,
		Severity:      conflict.SeverityCritical,
		Description:   fmt.Sprintf("official %s is assigned to overlapping games %s and %s", officialID, a.Game.ID, b.Game.ID),
		AffectedGames: []string{a.Game.ID, b.Game.ID},
		ScheduledTime: a.Game.ScheduledStart,
		ResolutionOptions: []conflict.ResolutionOption{
			{Strategy: conflict.StrategyManualResolution, Effort: conflict.EffortMedium},
		},
	}
}

func travelTimeConflict(officialID string, a, b GameContext, gap time.Duration) conflict.Conflict {
	return conflict.Conflict{
		ID:            fmt.Sprintf("TRAVEL_TIME_CONFLICT:%s:%s:%s", officialID, a.Game.ID, b.Game.ID),
		Type:          conflict.TypeTravelTimeConflict,
		Severity:      conflict.SeverityHigh,
		Description:   fmt.Sprintf("official %s has only %s between games %s and %s at different venues", officialID, gap.Round(time.Minute), a.Game.ID, b.Game.ID),
		AffectedGames: []string{a.Game.ID, b.Game.ID},
		ScheduledTime: b.Game.ScheduledStart,
		ResolutionOptions: []conflict.ResolutionOption{
			{Strategy: conflict.StrategyManualResolution, Effort: conflict.EffortLow},
		},
	}
}
