package postgres

import (
	"encoding/json"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/domain/schedulelog"
)

type schedulelogTableModel struct {
	ID               string    `db:"id"`
	OrganizationID   string    `db:"organization_id"`
	SeasonID         string    `db:"season_id"`
	Status           string    `db:"status"`
	Algorithm        string    `db:"algorithm"`
	TotalGames       int       `db:"total_games"`
	Scheduled        int       `db:"scheduled"`
	WithConflicts    int       `db:"with_conflicts"`
	WithHeatWarnings int       `db:"with_heat_warnings"`
	VenueUtilization string    `db:"venue_utilization"`
	GenerationTimeMS int64     `db:"generation_time_ms"`
	Warnings         string    `db:"warnings"`
	RequestedBy      string    `db:"requested_by"`
	StartedAt        time.Time `db:"started_at"`
	FinishedAt       time.Time `db:"finished_at"`
}

func mapSchedulelogRow(row schedulelogTableModel) schedulelog.Log {
	var utilization map[string]int
	_ = json.Unmarshal([]byte(row.VenueUtilization), &utilization)

	var warnings []string
	_ = json.Unmarshal([]byte(row.Warnings), &warnings)

	return schedulelog.Log{
		ID:               row.ID,
		TenantID:         row.OrganizationID,
		SeasonID:         row.SeasonID,
		Status:           schedulelog.Status(row.Status),
		Algorithm:        row.Algorithm,
		TotalGames:       row.TotalGames,
		Scheduled:        row.Scheduled,
		WithConflicts:    row.WithConflicts,
		WithHeatWarnings: row.WithHeatWarnings,
		VenueUtilization: utilization,
		GenerationTimeMS: row.GenerationTimeMS,
		Warnings:         warnings,
		RequestedBy:      row.RequestedBy,
		StartedAt:        row.StartedAt,
		FinishedAt:       row.FinishedAt,
	}
}

func schedulelogInsertModel(tenantID string, l schedulelog.Log) (schedulelogTableModel, error) {
	utilization, err := l.VenueUtilizationJSON()
	if err != nil {
		return schedulelogTableModel{}, err
	}

	warnings := l.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return schedulelogTableModel{}, err
	}

	return schedulelogTableModel{
		ID:               l.ID,
		OrganizationID:   tenantID,
		SeasonID:         l.SeasonID,
		Status:           string(l.Status),
		Algorithm:        l.Algorithm,
		TotalGames:       l.TotalGames,
		Scheduled:        l.Scheduled,
		WithConflicts:    l.WithConflicts,
		WithHeatWarnings: l.WithHeatWarnings,
		VenueUtilization: string(utilization),
		GenerationTimeMS: l.GenerationTimeMS,
		Warnings:         string(warningsJSON),
		RequestedBy:      l.RequestedBy,
		StartedAt:        l.StartedAt,
		FinishedAt:       l.FinishedAt,
	}, nil
}
