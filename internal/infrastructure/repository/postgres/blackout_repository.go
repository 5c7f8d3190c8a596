package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/hoopscheduler/internal/domain/blackout"
	qb "github.com/riskibarqy/hoopscheduler/internal/platform/querybuilder"
)

type BlackoutRepository struct {
	db *sqlx.DB
}

func NewBlackoutRepository(db *sqlx.DB) *BlackoutRepository {
	return &BlackoutRepository{db: db}
}

func (r *BlackoutRepository) Create(ctx context.Context, tenantID string, b blackout.BlackoutDate) (blackout.BlackoutDate, error) {
	query, args, err := qb.InsertModel("blackout_dates", blackoutInsertModel(tenantID, b), "")
	if err != nil {
		return blackout.BlackoutDate{}, fmt.Errorf("build insert blackout date query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return blackout.BlackoutDate{}, fmt.Errorf("insert blackout date: %w", err)
	}
	b.TenantID = tenantID
	return b, nil
}

func (r *BlackoutRepository) Get(ctx context.Context, tenantID, id string) (blackout.BlackoutDate, error) {
	query, args, err := qb.Select("*").From("blackout_dates").
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return blackout.BlackoutDate{}, fmt.Errorf("build get blackout date query: %w", err)
	}

	var row blackoutTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return blackout.BlackoutDate{}, errNotFound
		}
		return blackout.BlackoutDate{}, fmt.Errorf("get blackout date: %w", err)
	}
	return mapBlackoutRow(row), nil
}

func (r *BlackoutRepository) ListBySeason(ctx context.Context, tenantID, seasonID string) ([]blackout.BlackoutDate, error) {
	query, args, err := qb.Select("*").From("blackout_dates").
		Where(qb.Eq("organization_id", tenantID), qb.Eq("season_id", seasonID)).
		OrderBy("start_date").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list blackout dates query: %w", err)
	}

	var rows []blackoutTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list blackout dates: %w", err)
	}

	out := make([]blackout.BlackoutDate, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapBlackoutRow(row))
	}
	return out, nil
}

func (r *BlackoutRepository) Update(ctx context.Context, tenantID string, b blackout.BlackoutDate) (blackout.BlackoutDate, error) {
	row := blackoutInsertModel(tenantID, b)

	query, args, err := qb.Update("blackout_dates").
		Set("name", row.Name).
		Set("start_date", row.StartDate).
		Set("end_date", row.EndDate).
		Set("affects_venues", row.AffectsVenues).
		Set("affects_divisions", row.AffectsDivisions).
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", b.ID)).
		ToSQL()
	if err != nil {
		return blackout.BlackoutDate{}, fmt.Errorf("build update blackout date query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return blackout.BlackoutDate{}, fmt.Errorf("update blackout date: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return blackout.BlackoutDate{}, errNotFound
	}
	b.TenantID = tenantID
	return b, nil
}

func (r *BlackoutRepository) Delete(ctx context.Context, tenantID, id string) error {
	query, args, err := qb.DeleteFrom("blackout_dates").
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete blackout date query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete blackout date: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errNotFound
	}
	return nil
}
