// Package officials assigns officials to scheduled games under
// certification, specialty, workload, rest, and travel constraints, and
// produces a cost estimate alongside any residual conflicts.
package officials

import (
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/conflict"
	"github.com/riskibarqy/hoopscheduler/internal/domain/assignment"
	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/domain/official"
)

// GameContext pairs a scheduled game with the division skill level the
// scoring and role-derivation rules need.
type GameContext struct {
	Game       game.Game
	SkillLevel string // division.Division.SkillLevel, e.g. "ADVANCED", "COMPETITIVE"
}

// Constraints configures one optimization run.
type Constraints struct {
	RequireCertification       official.Certification
	PreferredSpecialties       []official.Specialty
	MaxTravelDistanceKM        float64
	MinRestPeriodMinutes       int
	AllowBackToBackGames       bool
	MaxGamesPerOfficialPerDay  int
	MaxGamesPerOfficialPerWeek int
	RequireConfirmationHours   int
}

// DefaultConstraints are used when the caller does not override them.
func DefaultConstraints() Constraints {
	return Constraints{
		MinRestPeriodMinutes:       60,
		MaxGamesPerOfficialPerDay:  4,
		MaxGamesPerOfficialPerWeek: 12,
		RequireConfirmationHours:   24,
	}
}

func gameTypeImportance(t game.Type) int {
	switch t {
	case game.TypeChampionship:
		return 5
	case game.TypePlayoff:
		return 4
	default:
		return 1
	}
}

func requiredRoles(skillLevel string, gameType game.Type) []official.Specialty {
	roles := []official.Specialty{official.SpecialtyHeadReferee, official.SpecialtyScorekeeper, official.SpecialtyClockOperator}
	if skillLevel == "ADVANCED" || skillLevel == "COMPETITIVE" || gameType != game.TypeRegular {
		roles = append(roles, official.SpecialtyAssistantReferee)
	}
	return roles
}

// PendingAssignment is one tentative (pre-commit) assignment produced while
// walking games in order.
type PendingAssignment struct {
	GameID       string
	OfficialID   string
	Role         official.Specialty
	PayRate      float64
	EstimatedPay float64
}

// Result is the full output of one optimization run.
type Result struct {
	Success         bool
	Assignments     []assignment.Assignment
	UnassignedGames []string
	Conflicts       []conflict.Conflict
	Statistics      Statistics
}

// Statistics summarizes one optimization run.
type Statistics struct {
	TotalGames        int
	FullyStaffed      int
	PartiallyStaffed  int
	Unassigned        int
	TotalEstimatedPay float64
}

// workload tracks one official's running totals across a run.
type workload struct {
	dayCount    map[string]int // "YYYY-MM-DD" -> count
	weekCount   int
	lastGameEnd time.Time
}

func newWorkload() *workload {
	return &workload{dayCount: make(map[string]int)}
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
