package postgres

import (
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
)

type venueTableModel struct {
	ID             string   `db:"id"`
	OrganizationID string   `db:"organization_id"`
	Name           string   `db:"name"`
	Type           string   `db:"type"`
	AddressLine    string   `db:"address_line"`
	City           string   `db:"city"`
	State          string   `db:"state"`
	PostalCode     string   `db:"postal_code"`
	Lat            *float64 `db:"lat"`
	Lng            *float64 `db:"lng"`
	Capacity       int      `db:"capacity"`
	Active         bool     `db:"active"`
	RentalRate     int64    `db:"rental_rate"`
	Timezone       string   `db:"timezone"`
	Notes          string   `db:"notes"`
}

func mapVenueRow(row venueTableModel) venue.Venue {
	v := venue.Venue{
		ID:          row.ID,
		TenantID:    row.OrganizationID,
		Name:        row.Name,
		Type:        venue.Type(row.Type),
		AddressLine: row.AddressLine,
		City:        row.City,
		State:       row.State,
		PostalCode:  row.PostalCode,
		Capacity:    row.Capacity,
		Active:      row.Active,
		RentalRate:  row.RentalRate,
		Timezone:    row.Timezone,
		Notes:       row.Notes,
	}
	if row.Lat != nil && row.Lng != nil {
		v.Geo = &venue.GeoPoint{Lat: *row.Lat, Lng: *row.Lng}
	}
	return v
}

func venueInsertModel(tenantID string, v venue.Venue) venueTableModel {
	row := venueTableModel{
		ID:             v.ID,
		OrganizationID: tenantID,
		Name:           v.Name,
		Type:           string(v.Type),
		AddressLine:    v.AddressLine,
		City:           v.City,
		State:          v.State,
		PostalCode:     v.PostalCode,
		Capacity:       v.Capacity,
		Active:         v.Active,
		RentalRate:     v.RentalRate,
		Timezone:       v.Timezone,
		Notes:          v.Notes,
	}
	if v.Geo != nil {
		row.Lat, row.Lng = &v.Geo.Lat, &v.Geo.Lng
	}
	return row
}

type venueAvailabilityTableModel struct {
	ID            string     `db:"id"`
	VenueID       string     `db:"venue_id"`
	DayOfWeek     string     `db:"day_of_week"`
	StartTime     string     `db:"start_time"`
	EndTime       string     `db:"end_time"`
	Kind          string     `db:"kind"`
	Priority      int        `db:"priority"`
	EffectiveDate time.Time  `db:"effective_date"`
	ExpiryDate    *time.Time `db:"expiry_date"`
}

func mapVenueAvailabilityRow(row venueAvailabilityTableModel) venue.Availability {
	return venue.Availability{
		ID:            row.ID,
		VenueID:       row.VenueID,
		DayOfWeek:     venue.DayOfWeek(row.DayOfWeek),
		StartTime:     row.StartTime,
		EndTime:       row.EndTime,
		Kind:          venue.AvailabilityKind(row.Kind),
		Priority:      row.Priority,
		EffectiveDate: row.EffectiveDate,
		ExpiryDate:    row.ExpiryDate,
	}
}

func venueAvailabilityInsertModel(a venue.Availability) venueAvailabilityTableModel {
	return venueAvailabilityTableModel{
		ID:            a.ID,
		VenueID:       a.VenueID,
		DayOfWeek:     string(a.DayOfWeek),
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		Kind:          string(a.Kind),
		Priority:      a.Priority,
		EffectiveDate: a.EffectiveDate,
		ExpiryDate:    a.ExpiryDate,
	}
}
