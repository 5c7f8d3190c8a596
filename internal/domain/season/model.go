// Package season models a time-bounded competition within a tenant.
package season

import (
	"fmt"
	"time"
)

// Status is the closed set of season lifecycle states.
type Status string

const (
	StatusUpcoming          Status = "UPCOMING"
	StatusRegistrationOpen  Status = "REGISTRATION_OPEN"
	StatusActive            Status = "ACTIVE"
	StatusCompleted         Status = "COMPLETED"
)

// CanTransitionTo enforces the monotonic lifecycle: UPCOMING and
// REGISTRATION_OPEN may move freely between each other and forward;
// COMPLETED is terminal.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusUpcoming:
		return next == StatusRegistrationOpen || next == StatusActive
	case StatusRegistrationOpen:
		return next == StatusUpcoming || next == StatusActive
	case StatusActive:
		return next == StatusCompleted
	case StatusCompleted:
		return false
	default:
		return false
	}
}

// Season is a time-bounded competition with divisions, teams, and a schedule.
type Season struct {
	ID                  string
	TenantID            string
	LeagueID            string
	Name                string
	Slug                string
	StartDate           time.Time
	EndDate             time.Time
	RegistrationStart   time.Time
	RegistrationEnd     time.Time
	Status              Status
	Fee                 int64
	Currency            string
	MaxGamesPerTeam     int
	PlayoffsEnabled     bool
	Timezone            string
	Description         string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (s Season) Validate() error {
	if s.TenantID == "" {
		return fmt.Errorf("tenant id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("season name is required")
	}
	if s.StartDate.After(s.EndDate) {
		return fmt.Errorf("start_date must be on or before end_date")
	}
	if !s.RegistrationStart.IsZero() && !s.RegistrationEnd.IsZero() {
		if s.RegistrationStart.After(s.RegistrationEnd) {
			return fmt.Errorf("registration_start must be on or before registration_deadline")
		}
		if s.RegistrationEnd.After(s.StartDate) {
			return fmt.Errorf("registration_deadline must be on or before start_date")
		}
	}
	if s.MaxGamesPerTeam < 0 {
		return fmt.Errorf("max_games_per_team must be >= 0")
	}
	return nil
}

// TimezoneOrDefault returns the season's Timezone if set, else fallback.
func (s Season) TimezoneOrDefault(fallback string) string {
	if s.Timezone != "" {
		return s.Timezone
	}
	return fallback
}
