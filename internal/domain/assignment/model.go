// Package assignment models officials' assignments to games.
package assignment

import (
	"fmt"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/domain/official"
)

// Status is the closed set of assignment lifecycle states.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusDeclined  Status = "DECLINED"
	StatusCancelled Status = "CANCELLED"
)

// Active reports whether the assignment still occupies the official's schedule.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Assignment binds one official to one role on one game.
type Assignment struct {
	ID            string
	TenantID      string
	GameID        string
	OfficialID    string
	Role          official.Specialty
	Status        Status
	AssignedAt    time.Time
	ConfirmedAt   *time.Time
	PayRate       float64
	EstimatedPay  float64
	ActualPay     *float64
}

func (a Assignment) Validate() error {
	if a.TenantID == "" {
		return fmt.Errorf("tenant id is required")
	}
	if a.GameID == "" || a.OfficialID == "" {
		return fmt.Errorf("game id and official id are required")
	}
	switch a.Status {
	case StatusPending, StatusConfirmed, StatusDeclined, StatusCancelled:
	default:
		return fmt.Errorf("invalid assignment status %q", a.Status)
	}
	return nil
}
