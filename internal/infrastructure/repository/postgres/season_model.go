package postgres

import (
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/domain/season"
)

type seasonTableModel struct {
	ID                string    `db:"id"`
	OrganizationID    string    `db:"organization_id"`
	LeagueID          string    `db:"league_id"`
	Name              string    `db:"name"`
	Slug              string    `db:"slug"`
	StartDate         time.Time `db:"start_date"`
	EndDate           time.Time `db:"end_date"`
	RegistrationStart time.Time `db:"registration_start"`
	RegistrationEnd   time.Time `db:"registration_end"`
	Status            string    `db:"status"`
	Fee               int64     `db:"fee"`
	Currency          string    `db:"currency"`
	MaxGamesPerTeam   int       `db:"max_games_per_team"`
	PlayoffsEnabled   bool      `db:"playoffs_enabled"`
	Timezone          string    `db:"timezone"`
	Description       string    `db:"description"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func mapSeasonRow(row seasonTableModel) season.Season {
	return season.Season{
		ID:                row.ID,
		TenantID:          row.OrganizationID,
		LeagueID:          row.LeagueID,
		Name:              row.Name,
		Slug:              row.Slug,
		StartDate:         row.StartDate,
		EndDate:           row.EndDate,
		RegistrationStart: row.RegistrationStart,
		RegistrationEnd:   row.RegistrationEnd,
		Status:            season.Status(row.Status),
		Fee:               row.Fee,
		Currency:          row.Currency,
		MaxGamesPerTeam:   row.MaxGamesPerTeam,
		PlayoffsEnabled:   row.PlayoffsEnabled,
		Timezone:          row.Timezone,
		Description:       row.Description,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

func seasonInsertModel(tenantID string, s season.Season) seasonTableModel {
	return seasonTableModel{
		ID:                s.ID,
		OrganizationID:    tenantID,
		LeagueID:          s.LeagueID,
		Name:              s.Name,
		Slug:              s.Slug,
		StartDate:         s.StartDate,
		EndDate:           s.EndDate,
		RegistrationStart: s.RegistrationStart,
		RegistrationEnd:   s.RegistrationEnd,
		Status:            string(s.Status),
		Fee:               s.Fee,
		Currency:          s.Currency,
		MaxGamesPerTeam:   s.MaxGamesPerTeam,
		PlayoffsEnabled:   s.PlayoffsEnabled,
		Timezone:          s.Timezone,
		Description:       s.Description,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
