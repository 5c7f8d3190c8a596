package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/hoopscheduler/internal/domain/season"
	qb "github.com/riskibarqy/hoopscheduler/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) Create(ctx context.Context, tenantID string, s season.Season) (season.Season, error) {
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now

	query, args, err := qb.InsertModel("seasons", seasonInsertModel(tenantID, s), "")
	if err != nil {
		return season.Season{}, fmt.Errorf("build insert season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return season.Season{}, fmt.Errorf("insert season: %w", err)
	}

	s.TenantID = tenantID
	return s, nil
}

func (r *SeasonRepository) Get(ctx context.Context, tenantID, id string) (season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return season.Season{}, fmt.Errorf("build get season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, errNotFound
		}
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	return mapSeasonRow(row), nil
}

func (r *SeasonRepository) List(ctx context.Context, tenantID string, f season.Filter) ([]season.Season, error) {
	conditions := []qb.Condition{qb.Eq("organization_id", tenantID)}
	if f.LeagueID != "" {
		conditions = append(conditions, qb.Eq("league_id", f.LeagueID))
	}
	if f.Status != "" {
		conditions = append(conditions, qb.Eq("status", string(f.Status)))
	}

	query, args, err := qb.Select("*").From("seasons").
		Where(conditions...).
		OrderBy("start_date DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapSeasonRow(row))
	}
	return out, nil
}

func (r *SeasonRepository) Update(ctx context.Context, tenantID string, s season.Season) (season.Season, error) {
	s.UpdatedAt = time.Now().UTC()

	query, args, err := qb.Update("seasons").
		Set("name", s.Name).
		Set("slug", s.Slug).
		Set("start_date", s.StartDate).
		Set("end_date", s.EndDate).
		Set("registration_start", s.RegistrationStart).
		Set("registration_end", s.RegistrationEnd).
		Set("status", string(s.Status)).
		Set("fee", s.Fee).
		Set("currency", s.Currency).
		Set("max_games_per_team", s.MaxGamesPerTeam).
		Set("playoffs_enabled", s.PlayoffsEnabled).
		Set("timezone", s.Timezone).
		Set("description", s.Description).
		Set("updated_at", s.UpdatedAt).
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", s.ID)).
		ToSQL()
	if err != nil {
		return season.Season{}, fmt.Errorf("build update season query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return season.Season{}, fmt.Errorf("update season: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return season.Season{}, errNotFound
	}

	s.TenantID = tenantID
	return s, nil
}

func (r *SeasonRepository) Delete(ctx context.Context, tenantID, id string) error {
	query, args, err := qb.DeleteFrom("seasons").
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete season query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete season: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errNotFound
	}
	return nil
}
