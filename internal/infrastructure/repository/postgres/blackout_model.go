package postgres

import (
	"strings"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/domain/blackout"
)

type blackoutTableModel struct {
	ID               string    `db:"id"`
	OrganizationID   string    `db:"organization_id"`
	SeasonID         string    `db:"season_id"`
	Name             string    `db:"name"`
	StartDate        time.Time `db:"start_date"`
	EndDate          time.Time `db:"end_date"`
	AffectsVenues    string    `db:"affects_venues"`
	AffectsDivisions string    `db:"affects_divisions"`
}

func mapBlackoutRow(row blackoutTableModel) blackout.BlackoutDate {
	return blackout.BlackoutDate{
		ID:               row.ID,
		TenantID:         row.OrganizationID,
		SeasonID:         row.SeasonID,
		Name:             row.Name,
		StartDate:        row.StartDate,
		EndDate:          row.EndDate,
		AffectsVenues:    splitCSV(row.AffectsVenues),
		AffectsDivisions: splitCSV(row.AffectsDivisions),
	}
}

func blackoutInsertModel(tenantID string, b blackout.BlackoutDate) blackoutTableModel {
	return blackoutTableModel{
		ID:               b.ID,
		OrganizationID:   tenantID,
		SeasonID:         b.SeasonID,
		Name:             b.Name,
		StartDate:        b.StartDate,
		EndDate:          b.EndDate,
		AffectsVenues:    strings.Join(b.AffectsVenues, ","),
		AffectsDivisions: strings.Join(b.AffectsDivisions, ","),
	}
}

func splitCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
