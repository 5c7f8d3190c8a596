package postgres

import (
	"strings"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/domain/official"
)

type officialTableModel struct {
	ID                    string  `db:"id"`
	OrganizationID        string  `db:"organization_id"`
	Name                  string  `db:"name"`
	Email                 string  `db:"email"`
	Phone                 string  `db:"phone"`
	Certification         string  `db:"certification"`
	Specialties           string  `db:"specialties"`
	MaxGamesPerDay        int     `db:"max_games_per_day"`
	MaxGamesPerWeek       int     `db:"max_games_per_week"`
	TravelRadiusKM        float64 `db:"travel_radius_km"`
	HourlyRate            float64 `db:"hourly_rate"`
	Active                bool    `db:"active"`
	Notes                 string  `db:"notes"`
	EmergencyContactPhone string  `db:"emergency_contact_phone"`
}

func mapOfficialRow(row officialTableModel) official.Official {
	specialties := splitCSV(row.Specialties)
	out := make([]official.Specialty, 0, len(specialties))
	for _, s := range specialties {
		out = append(out, official.Specialty(s))
	}

	return official.Official{
		ID:                    row.ID,
		TenantID:              row.OrganizationID,
		Name:                  row.Name,
		Email:                 row.Email,
		Phone:                 row.Phone,
		Certification:         official.Certification(row.Certification),
		Specialties:           out,
		MaxGamesPerDay:        row.MaxGamesPerDay,
		MaxGamesPerWeek:       row.MaxGamesPerWeek,
		TravelRadiusKM:        row.TravelRadiusKM,
		HourlyRate:            row.HourlyRate,
		Active:                row.Active,
		Notes:                 row.Notes,
		EmergencyContactPhone: row.EmergencyContactPhone,
	}
}

func officialInsertModel(tenantID string, o official.Official) officialTableModel {
	specialties := make([]string, 0, len(o.Specialties))
	for _, s := range o.Specialties {
		specialties = append(specialties, string(s))
	}

	return officialTableModel{
		ID:                    o.ID,
		OrganizationID:        tenantID,
		Name:                  o.Name,
		Email:                 o.Email,
		Phone:                 o.Phone,
		Certification:         string(o.Certification),
		Specialties:           strings.Join(specialties, ","),
		MaxGamesPerDay:        o.MaxGamesPerDay,
		MaxGamesPerWeek:       o.MaxGamesPerWeek,
		TravelRadiusKM:        o.TravelRadiusKM,
		HourlyRate:            o.HourlyRate,
		Active:                o.Active,
		Notes:                 o.Notes,
		EmergencyContactPhone: o.EmergencyContactPhone,
	}
}

type officialAvailabilityTableModel struct {
	ID           string     `db:"id"`
	OfficialID   string     `db:"official_id"`
	DayOfWeek    string     `db:"day_of_week"`
	StartTime    string     `db:"start_time"`
	EndTime      string     `db:"end_time"`
	Kind         string     `db:"kind"`
	Recurring    bool       `db:"recurring"`
	SpecificDate *time.Time `db:"specific_date"`
}

func mapOfficialAvailabilityRow(row officialAvailabilityTableModel) official.Availability {
	return official.Availability{
		ID:           row.ID,
		OfficialID:   row.OfficialID,
		DayOfWeek:    row.DayOfWeek,
		StartTime:    row.StartTime,
		EndTime:      row.EndTime,
		Kind:         official.AvailabilityKind(row.Kind),
		Recurring:    row.Recurring,
		SpecificDate: row.SpecificDate,
	}
}

func officialAvailabilityInsertModel(a official.Availability) officialAvailabilityTableModel {
	return officialAvailabilityTableModel{
		ID:           a.ID,
		OfficialID:   a.OfficialID,
		DayOfWeek:    a.DayOfWeek,
		StartTime:    a.StartTime,
		EndTime:      a.EndTime,
		Kind:         string(a.Kind),
		Recurring:    a.Recurring,
		SpecificDate: a.SpecificDate,
	}
}
