package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/hoopscheduler/internal/domain/official"
	qb "github.com/riskibarqy/hoopscheduler/internal/platform/querybuilder"
)

type OfficialRepository struct {
	db *sqlx.DB
}

func NewOfficialRepository(db *sqlx.DB) *OfficialRepository {
	return &OfficialRepository{db: db}
}

func (r *OfficialRepository) Create(ctx context.Context, tenantID string, o official.Official) (official.Official, error) {
	query, args, err := qb.InsertModel("officials", officialInsertModel(tenantID, o), "")
	if err != nil {
		return official.Official{}, fmt.Errorf("build insert official query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return official.Official{}, fmt.Errorf("insert official: %w", err)
	}
	o.TenantID = tenantID
	return o, nil
}

func (r *OfficialRepository) Get(ctx context.Context, tenantID, id string) (official.Official, error) {
	query, args, err := qb.Select("*").From("officials").
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return official.Official{}, fmt.Errorf("build get official query: %w", err)
	}

	var row officialTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return official.Official{}, errNotFound
		}
		return official.Official{}, fmt.Errorf("get official: %w", err)
	}
	return mapOfficialRow(row), nil
}

func (r *OfficialRepository) List(ctx context.Context, tenantID string) ([]official.Official, error) {
	query, args, err := qb.Select("*").From("officials").
		Where(qb.Eq("organization_id", tenantID)).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list officials query: %w", err)
	}

	var rows []officialTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list officials: %w", err)
	}

	out := make([]official.Official, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapOfficialRow(row))
	}
	return out, nil
}

func (r *OfficialRepository) Update(ctx context.Context, tenantID string, o official.Official) (official.Official, error) {
	row := officialInsertModel(tenantID, o)

	query, args, err := qb.Update("officials").
		Set("name", row.Name).
		Set("email", row.Email).
		Set("phone", row.Phone).
		Set("certification", row.Certification).
		Set("specialties", row.Specialties).
		Set("max_games_per_day", row.MaxGamesPerDay).
		Set("max_games_per_week", row.MaxGamesPerWeek).
		Set("travel_radius_km", row.TravelRadiusKM).
		Set("hourly_rate", row.HourlyRate).
		Set("active", row.Active).
		Set("notes", row.Notes).
		Set("emergency_contact_phone", row.EmergencyContactPhone).
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", o.ID)).
		ToSQL()
	if err != nil {
		return official.Official{}, fmt.Errorf("build update official query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return official.Official{}, fmt.Errorf("update official: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return official.Official{}, errNotFound
	}
	o.TenantID = tenantID
	return o, nil
}

func (r *OfficialRepository) Delete(ctx context.Context, tenantID, id string) error {
	query, args, err := qb.DeleteFrom("officials").
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete official query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete official: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errNotFound
	}
	return nil
}

func (r *OfficialRepository) ListAvailability(ctx context.Context, _, officialID string) ([]official.Availability, error) {
	query, args, err := qb.Select("*").From("official_availabilities").
		Where(qb.Eq("official_id", officialID)).
		OrderBy("day_of_week", "start_time").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list official availability query: %w", err)
	}

	var rows []officialAvailabilityTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list official availability: %w", err)
	}

	out := make([]official.Availability, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapOfficialAvailabilityRow(row))
	}
	return out, nil
}

func (r *OfficialRepository) UpsertAvailability(ctx context.Context, _ string, a official.Availability) (official.Availability, error) {
	query, args, err := qb.InsertModel("official_availabilities", officialAvailabilityInsertModel(a), `ON CONFLICT (id)
DO UPDATE SET
    day_of_week = EXCLUDED.day_of_week,
    start_time = EXCLUDED.start_time,
    end_time = EXCLUDED.end_time,
    kind = EXCLUDED.kind,
    recurring = EXCLUDED.recurring,
    specific_date = EXCLUDED.specific_date`)
	if err != nil {
		return official.Availability{}, fmt.Errorf("build upsert official availability query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return official.Availability{}, fmt.Errorf("upsert official availability: %w", err)
	}
	return a, nil
}

func (r *OfficialRepository) DeleteAvailability(ctx context.Context, _, availabilityID string) error {
	query, args, err := qb.DeleteFrom("official_availabilities").
		Where(qb.Eq("id", availabilityID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete official availability query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete official availability: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errNotFound
	}
	return nil
}
