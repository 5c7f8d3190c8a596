package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
	qb "github.com/riskibarqy/hoopscheduler/internal/platform/querybuilder"
)

type VenueRepository struct {
	db *sqlx.DB
}

func NewVenueRepository(db *sqlx.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) Create(ctx context.Context, tenantID string, v venue.Venue) (venue.Venue, error) {
	query, args, err := qb.InsertModel("venues", venueInsertModel(tenantID, v), "")
	if err != nil {
		return venue.Venue{}, fmt.Errorf("build insert venue query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return venue.Venue{}, fmt.Errorf("insert venue: %w", err)
	}
	v.TenantID = tenantID
	return v, nil
}

func (r *VenueRepository) Get(ctx context.Context, tenantID, id string) (venue.Venue, error) {
	query, args, err := qb.Select("*").From("venues").
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return venue.Venue{}, fmt.Errorf("build get venue query: %w", err)
	}

	var row venueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return venue.Venue{}, errNotFound
		}
		return venue.Venue{}, fmt.Errorf("get venue: %w", err)
	}
	return mapVenueRow(row), nil
}

func (r *VenueRepository) List(ctx context.Context, tenantID string) ([]venue.Venue, error) {
	query, args, err := qb.Select("*").From("venues").
		Where(qb.Eq("organization_id", tenantID)).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list venues query: %w", err)
	}

	var rows []venueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}

	out := make([]venue.Venue, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapVenueRow(row))
	}
	return out, nil
}

func (r *VenueRepository) Update(ctx context.Context, tenantID string, v venue.Venue) (venue.Venue, error) {
	row := venueInsertModel(tenantID, v)

	query, args, err := qb.Update("venues").
		Set("name", row.Name).
		Set("type", row.Type).
		Set("address_line", row.AddressLine).
		Set("city", row.City).
		Set("state", row.State).
		Set("postal_code", row.PostalCode).
		Set("lat", row.Lat).
		Set("lng", row.Lng).
		Set("capacity", row.Capacity).
		Set("active", row.Active).
		Set("rental_rate", row.RentalRate).
		Set("timezone", row.Timezone).
		Set("notes", row.Notes).
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", v.ID)).
		ToSQL()
	if err != nil {
		return venue.Venue{}, fmt.Errorf("build update venue query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return venue.Venue{}, fmt.Errorf("update venue: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return venue.Venue{}, errNotFound
	}
	v.TenantID = tenantID
	return v, nil
}

func (r *VenueRepository) Delete(ctx context.Context, tenantID, id string) error {
	query, args, err := qb.DeleteFrom("venues").
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete venue query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errNotFound
	}
	return nil
}

func (r *VenueRepository) ListAvailability(ctx context.Context, _, venueID string) ([]venue.Availability, error) {
	query, args, err := qb.Select("*").From("venue_availabilities").
		Where(qb.Eq("venue_id", venueID)).
		OrderBy("day_of_week", "start_time").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list venue availability query: %w", err)
	}

	var rows []venueAvailabilityTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list venue availability: %w", err)
	}

	out := make([]venue.Availability, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapVenueAvailabilityRow(row))
	}
	return out, nil
}

func (r *VenueRepository) UpsertAvailability(ctx context.Context, _ string, a venue.Availability) (venue.Availability, error) {
	query, args, err := qb.InsertModel("venue_availabilities", venueAvailabilityInsertModel(a), `ON CONFLICT (id)
DO UPDATE SET
    day_of_week = EXCLUDED.day_of_week,
    start_time = EXCLUDED.start_time,
    end_time = EXCLUDED.end_time,
    kind = EXCLUDED.kind,
    priority = EXCLUDED.priority,
    effective_date = EXCLUDED.effective_date,
    expiry_date = EXCLUDED.expiry_date`)
	if err != nil {
		return venue.Availability{}, fmt.Errorf("build upsert venue availability query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return venue.Availability{}, fmt.Errorf("upsert venue availability: %w", err)
	}
	return a, nil
}

func (r *VenueRepository) DeleteAvailability(ctx context.Context, _, availabilityID string) error {
	query, args, err := qb.DeleteFrom("venue_availabilities").
		Where(qb.Eq("id", availabilityID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete venue availability query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete venue availability: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errNotFound
	}
	return nil
}
