package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/hoopscheduler/internal/domain/division"
	qb "github.com/riskibarqy/hoopscheduler/internal/platform/querybuilder"
)

type DivisionRepository struct {
	db *sqlx.DB
}

func NewDivisionRepository(db *sqlx.DB) *DivisionRepository {
	return &DivisionRepository{db: db}
}

func (r *DivisionRepository) Create(ctx context.Context, tenantID string, d division.Division) (division.Division, error) {
	query, args, err := qb.InsertModel("divisions", divisionInsertModel(tenantID, d), "")
	if err != nil {
		return division.Division{}, fmt.Errorf("build insert division query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return division.Division{}, fmt.Errorf("insert division: %w", err)
	}
	d.TenantID = tenantID
	return d, nil
}

func (r *DivisionRepository) Get(ctx context.Context, tenantID, id string) (division.Division, error) {
	query, args, err := qb.Select("*").From("divisions").
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return division.Division{}, fmt.Errorf("build get division query: %w", err)
	}

	var row divisionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return division.Division{}, errNotFound
		}
		return division.Division{}, fmt.Errorf("get division: %w", err)
	}
	return mapDivisionRow(row), nil
}

func (r *DivisionRepository) ListBySeason(ctx context.Context, tenantID, seasonID string) ([]division.Division, error) {
	query, args, err := qb.Select("*").From("divisions").
		Where(qb.Eq("organization_id", tenantID), qb.Eq("season_id", seasonID)).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list divisions query: %w", err)
	}

	var rows []divisionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list divisions: %w", err)
	}

	out := make([]division.Division, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapDivisionRow(row))
	}
	return out, nil
}

func (r *DivisionRepository) Update(ctx context.Context, tenantID string, d division.Division) (division.Division, error) {
	query, args, err := qb.Update("divisions").
		Set("name", d.Name).
		Set("min_age", d.MinAge).
		Set("max_age", d.MaxAge).
		Set("skill_level", d.SkillLevel).
		Set("max_teams", d.MaxTeams).
		Set("games_per_team", d.GamesPerTeam).
		Set("description", d.Description).
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", d.ID)).
		ToSQL()
	if err != nil {
		return division.Division{}, fmt.Errorf("build update division query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return division.Division{}, fmt.Errorf("update division: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return division.Division{}, errNotFound
	}
	d.TenantID = tenantID
	return d, nil
}

func (r *DivisionRepository) Delete(ctx context.Context, tenantID, id string) error {
	query, args, err := qb.DeleteFrom("divisions").
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete division query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete division: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errNotFound
	}
	return nil
}
