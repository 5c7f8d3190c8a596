// Package game models scheduled matchups and their lifecycle.
package game

import (
	"fmt"
	"time"
)

// Type is the closed set of game types.
type Type string

const (
	TypeRegular     Type = "REGULAR"
	TypePlayoff     Type = "PLAYOFF"
	TypeChampionship Type = "CHAMPIONSHIP"
	TypeScrimmage   Type = "SCRIMMAGE"
)

// Status is the closed set of game lifecycle states.
type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusForfeited  Status = "FORFEITED"
	StatusPostponed  Status = "POSTPONED"
)

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusForfeited, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo enforces the status DAG:
// SCHEDULED -> {IN_PROGRESS, CANCELLED, POSTPONED}
// IN_PROGRESS -> {COMPLETED, FORFEITED, CANCELLED}
// terminal: COMPLETED, FORFEITED, CANCELLED
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusScheduled:
		return next == StatusInProgress || next == StatusCancelled || next == StatusPostponed
	case StatusPostponed:
		return next == StatusScheduled || next == StatusCancelled
	case StatusInProgress:
		return next == StatusCompleted || next == StatusForfeited || next == StatusCancelled
	default:
		return false
	}
}

// Game is a single scheduled matchup between two teams.
type Game struct {
	ID                string
	TenantID          string
	SeasonID          string
	DivisionID        string
	HomeTeamID        string
	AwayTeamID        string
	VenueID           string
	CourtID           string
	GameNumber        string
	GameType          Type
	ScheduledStart    time.Time
	DurationMinutes   int
	Status            Status
	HomeScore         *int
	AwayScore         *int
	HeatPolicyApplied string
	LiveScoreLocked   bool
	Notes             string
	CancelledReason   string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// EndTime is the nominal end of play, ignoring buffer.
func (g Game) EndTime() time.Time {
	return g.ScheduledStart.Add(time.Duration(g.DurationMinutes) * time.Minute)
}

// WindowWithBuffer returns [start, start+duration+buffer) used for venue overlap checks.
func (g Game) WindowWithBuffer(buffer time.Duration) (time.Time, time.Time) {
	start := g.ScheduledStart
	end := start.Add(time.Duration(g.DurationMinutes)*time.Minute + buffer)
	return start, end
}

func (g Game) Validate(sameDivisionRequired bool, homeDivisionID, awayDivisionID string) error {
	if g.TenantID == "" {
		return fmt.Errorf("tenant id is required")
	}
	if g.SeasonID == "" {
		return fmt.Errorf("season id is required")
	}
	if g.HomeTeamID == "" || g.AwayTeamID == "" {
		return fmt.Errorf("home and away team ids are required")
	}
	if g.HomeTeamID == g.AwayTeamID {
		return fmt.Errorf("home_team_id must differ from away_team_id")
	}
	if g.GameType != TypeScrimmage && homeDivisionID != "" && awayDivisionID != "" && homeDivisionID != awayDivisionID {
		return fmt.Errorf("home and away teams must share a division unless game_type is SCRIMMAGE")
	}
	if g.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be > 0")
	}
	switch g.GameType {
	case TypeRegular, TypePlayoff, TypeChampionship, TypeScrimmage:
	default:
		return fmt.Errorf("invalid game type %q", g.GameType)
	}
	return nil
}

// FormatGameNumber renders "G" + zero-padded 3-digit sequence, per the
// generator's output convention.
func FormatGameNumber(seq int) string {
	return fmt.Sprintf("G%03d", seq)
}
