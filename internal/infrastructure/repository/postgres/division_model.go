package postgres

import "github.com/riskibarqy/hoopscheduler/internal/domain/division"

type divisionTableModel struct {
	ID             string `db:"id"`
	OrganizationID string `db:"organization_id"`
	SeasonID       string `db:"season_id"`
	Name           string `db:"name"`
	MinAge         int    `db:"min_age"`
	MaxAge         int    `db:"max_age"`
	SkillLevel     string `db:"skill_level"`
	MaxTeams       int    `db:"max_teams"`
	GamesPerTeam   int    `db:"games_per_team"`
	Description    string `db:"description"`
}

func mapDivisionRow(row divisionTableModel) division.Division {
	return division.Division{
		ID:           row.ID,
		TenantID:     row.OrganizationID,
		SeasonID:     row.SeasonID,
		Name:         row.Name,
		MinAge:       row.MinAge,
		MaxAge:       row.MaxAge,
		SkillLevel:   row.SkillLevel,
		MaxTeams:     row.MaxTeams,
		GamesPerTeam: row.GamesPerTeam,
		Description:  row.Description,
	}
}

func divisionInsertModel(tenantID string, d division.Division) divisionTableModel {
	return divisionTableModel{
		ID:             d.ID,
		OrganizationID: tenantID,
		SeasonID:       d.SeasonID,
		Name:           d.Name,
		MinAge:         d.MinAge,
		MaxAge:         d.MaxAge,
		SkillLevel:     d.SkillLevel,
		MaxTeams:       d.MaxTeams,
		GamesPerTeam:   d.GamesPerTeam,
		Description:    d.Description,
	}
}
