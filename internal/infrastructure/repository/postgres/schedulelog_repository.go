package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/hoopscheduler/internal/domain/schedulelog"
	qb "github.com/riskibarqy/hoopscheduler/internal/platform/querybuilder"
)

type SchedulelogRepository struct {
	db *sqlx.DB
}

func NewSchedulelogRepository(db *sqlx.DB) *SchedulelogRepository {
	return &SchedulelogRepository{db: db}
}

func (r *SchedulelogRepository) Create(ctx context.Context, tenantID string, l schedulelog.Log) (schedulelog.Log, error) {
	row, err := schedulelogInsertModel(tenantID, l)
	if err != nil {
		return schedulelog.Log{}, fmt.Errorf("marshal schedule generation log: %w", err)
	}

	query, args, err := qb.InsertModel("schedule_generation_logs", row, "")
	if err != nil {
		return schedulelog.Log{}, fmt.Errorf("build insert schedule generation log query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return schedulelog.Log{}, fmt.Errorf("insert schedule generation log: %w", err)
	}
	l.TenantID = tenantID
	return l, nil
}

func (r *SchedulelogRepository) ListBySeason(ctx context.Context, tenantID, seasonID string) ([]schedulelog.Log, error) {
	query, args, err := qb.Select("*").From("schedule_generation_logs").
		Where(qb.Eq("organization_id", tenantID), qb.Eq("season_id", seasonID)).
		OrderBy("started_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list schedule generation logs query: %w", err)
	}

	var rows []schedulelogTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list schedule generation logs: %w", err)
	}

	out := make([]schedulelog.Log, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapSchedulelogRow(row))
	}
	return out, nil
}
