package postgres

import (
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
)

type gameTableModel struct {
	ID                string    `db:"id"`
	OrganizationID    string    `db:"organization_id"`
	SeasonID          string    `db:"season_id"`
	DivisionID        string    `db:"division_id"`
	HomeTeamID        string    `db:"home_team_id"`
	AwayTeamID        string    `db:"away_team_id"`
	VenueID           string    `db:"venue_id"`
	CourtID           string    `db:"court_id"`
	GameNumber        string    `db:"game_number"`
	GameType          string    `db:"game_type"`
	ScheduledStart    time.Time `db:"scheduled_start"`
	DurationMinutes   int       `db:"duration_minutes"`
	Status            string    `db:"status"`
	HomeScore         *int      `db:"home_score"`
	AwayScore         *int      `db:"away_score"`
	HeatPolicyApplied string    `db:"heat_policy_applied"`
	LiveScoreLocked   bool      `db:"live_score_locked"`
	Notes             string    `db:"notes"`
	CancelledReason   string    `db:"cancelled_reason"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func mapGameRow(row gameTableModel) game.Game {
	return game.Game{
		ID:                row.ID,
		TenantID:          row.OrganizationID,
		SeasonID:          row.SeasonID,
		DivisionID:        row.DivisionID,
		HomeTeamID:        row.HomeTeamID,
		AwayTeamID:        row.AwayTeamID,
		VenueID:           row.VenueID,
		CourtID:           row.CourtID,
		GameNumber:        row.GameNumber,
		GameType:          game.Type(row.GameType),
		ScheduledStart:    row.ScheduledStart,
		DurationMinutes:   row.DurationMinutes,
		Status:            game.Status(row.Status),
		HomeScore:         row.HomeScore,
		AwayScore:         row.AwayScore,
		HeatPolicyApplied: row.HeatPolicyApplied,
		LiveScoreLocked:   row.LiveScoreLocked,
		Notes:             row.Notes,
		CancelledReason:   row.CancelledReason,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

func gameInsertModel(tenantID string, g game.Game) gameTableModel {
	return gameTableModel{
		ID:                g.ID,
		OrganizationID:    tenantID,
		SeasonID:          g.SeasonID,
		DivisionID:        g.DivisionID,
		HomeTeamID:        g.HomeTeamID,
		AwayTeamID:        g.AwayTeamID,
		VenueID:           g.VenueID,
		CourtID:           g.CourtID,
		GameNumber:        g.GameNumber,
		GameType:          string(g.GameType),
		ScheduledStart:    g.ScheduledStart,
		DurationMinutes:   g.DurationMinutes,
		Status:            string(g.Status),
		HomeScore:         g.HomeScore,
		AwayScore:         g.AwayScore,
		HeatPolicyApplied: g.HeatPolicyApplied,
		LiveScoreLocked:   g.LiveScoreLocked,
		Notes:             g.Notes,
		CancelledReason:   g.CancelledReason,
		CreatedAt:         g.CreatedAt,
		UpdatedAt:         g.UpdatedAt,
	}
}
