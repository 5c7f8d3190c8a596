package officials

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/hoopscheduler/internal/conflict"
	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/domain/official"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
)

func saturdayGame(n int, hour int) game.Game {
	number := fmt.Sprintf("G%03d", n)
	return game.Game{
		ID:              number,
		VenueID:         "V1",
		GameNumber:      number,
		GameType:        game.TypeRegular,
		ScheduledStart:  time.Date(2024, 7, 6, hour, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          game.StatusScheduled,
	}
}

func TestOptimize_DayLimitProducesSkillMismatchOnFourthGame(t *testing.T) {
	games := []GameContext{
		{Game: saturdayGame(1, 9), SkillLevel: "RECREATIONAL"},
		{Game: saturdayGame(2, 11), SkillLevel: "RECREATIONAL"},
		{Game: saturdayGame(3, 13), SkillLevel: "RECREATIONAL"},
		{Game: saturdayGame(4, 15), SkillLevel: "RECREATIONAL"},
	}

	officials := []official.Official{
		{
			ID:              "ref1",
			Name:            "Head Ref",
			Certification:   official.CertAdvanced,
			Specialties:     []official.Specialty{official.SpecialtyHeadReferee},
			MaxGamesPerDay:  3,
			MaxGamesPerWeek: 20,
			HourlyRate:      40,
			Active:          true,
		},
		{
			ID:              "score1",
			Name:            "Scorekeeper",
			Certification:   official.CertBeginner,
			Specialties:     []official.Specialty{official.SpecialtyScorekeeper},
			MaxGamesPerDay:  10,
			MaxGamesPerWeek: 20,
			HourlyRate:      20,
			Active:          true,
		},
		{
			ID:              "clock1",
			Name:            "Clock Operator",
			Certification:   official.CertBeginner,
			Specialties:     []official.Specialty{official.SpecialtyClockOperator},
			MaxGamesPerDay:  10,
			MaxGamesPerWeek: 20,
			HourlyRate:      20,
			Active:          true,
		},
	}

	venues := map[string]venue.Venue{
		"V1": {ID: "V1", Name: "V1", Type: venue.TypeIndoor, Active: true},
	}

	constraints := DefaultConstraints()
	constraints.AllowBackToBackGames = true

	opt := NewOptimizer()
	result := opt.Optimize(games, officials, venues, constraints)

	assert.False(t, result.Success)
	assert.Equal(t, []string{"G004"}, result.UnassignedGames)

	var skillMismatches int
	for _, c := range result.Conflicts {
		if c.Type == ConflictSkillMismatch {
			skillMismatches++
			assert.Contains(t, c.AffectedGames, "G004")
		}
	}
	assert.Equal(t, 1, skillMismatches)

	headRefAssignments := 0
	for _, a := range result.Assignments {
		if a.OfficialID == "ref1" {
			headRefAssignments++
		}
	}
	assert.Equal(t, 3, headRefAssignments)
}

func TestRequiredRoles_AddsAssistantForAdvancedOrNonRegular(t *testing.T) {
	roles := requiredRoles("ADVANCED", game.TypeRegular)
	require.Contains(t, roles, official.SpecialtyAssistantReferee)

	roles = requiredRoles("RECREATIONAL", game.TypePlayoff)
	require.Contains(t, roles, official.SpecialtyAssistantReferee)

	roles = requiredRoles("RECREATIONAL", game.TypeRegular)
	require.NotContains(t, roles, official.SpecialtyAssistantReferee)
}

func TestScoreCandidate_PrefersHigherCertAndCloserDistance(t *testing.T) {
	expert := official.Official{Certification: official.CertExpert, HourlyRate: 30}
	beginner := official.Official{Certification: official.CertBeginner, HourlyRate: 30}
	assert.Greater(t, scoreCandidate(expert, 10), scoreCandidate(beginner, 10))
}

func TestCrossAssignmentConflicts_DetectsDoubleBooking(t *testing.T) {
	gc1 := GameContext{Game: game.Game{ID: "G1", VenueID: "V1", ScheduledStart: time.Date(2024, 7, 6, 9, 0, 0, 0, time.UTC), DurationMinutes: 90}}
	gc2 := GameContext{Game: game.Game{ID: "G2", VenueID: "V1", ScheduledStart: time.Date(2024, 7, 6, 9, 30, 0, 0, time.UTC), DurationMinutes: 90}}

	conflicts := crossAssignmentConflicts(toAssignments([]PendingAssignment{
		{GameID: "G1", OfficialID: "ref1", Role: official.SpecialtyHeadReferee},
		{GameID: "G2", OfficialID: "ref1", Role: official.SpecialtyHeadReferee},
	}), []GameContext{gc1, gc2})

	require.Len(t, conflicts, 1)
	assert.Equal(t, conflict.TypeOfficialDoubleBooking, conflicts[0].Type)
}
