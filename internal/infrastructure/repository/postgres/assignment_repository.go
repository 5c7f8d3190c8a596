package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/hoopscheduler/internal/domain/assignment"
	qb "github.com/riskibarqy/hoopscheduler/internal/platform/querybuilder"
)

type AssignmentRepository struct {
	db *sqlx.DB
}

func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, tenantID string, a assignment.Assignment) (assignment.Assignment, error) {
	query, args, err := qb.InsertModel("assignments", assignmentInsertModel(tenantID, a), "")
	if err != nil {
		return assignment.Assignment{}, fmt.Errorf("build insert assignment query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return assignment.Assignment{}, fmt.Errorf("insert assignment: %w", err)
	}
	a.TenantID = tenantID
	return a, nil
}

func (r *AssignmentRepository) Get(ctx context.Context, tenantID, id string) (assignment.Assignment, error) {
	query, args, err := qb.Select("*").From("assignments").
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return assignment.Assignment{}, fmt.Errorf("build get assignment query: %w", err)
	}

	var row assignmentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return assignment.Assignment{}, errNotFound
		}
		return assignment.Assignment{}, fmt.Errorf("get assignment: %w", err)
	}
	return mapAssignmentRow(row), nil
}

func (r *AssignmentRepository) ListByGame(ctx context.Context, tenantID, gameID string) ([]assignment.Assignment, error) {
	return r.list(ctx, tenantID, qb.Eq("game_id", gameID))
}

func (r *AssignmentRepository) ListByOfficial(ctx context.Context, tenantID, officialID string) ([]assignment.Assignment, error) {
	return r.list(ctx, tenantID, qb.Eq("official_id", officialID))
}

func (r *AssignmentRepository) list(ctx context.Context, tenantID string, extra qb.Condition) ([]assignment.Assignment, error) {
	query, args, err := qb.Select("*").From("assignments").
		Where(qb.Eq("organization_id", tenantID), extra).
		OrderBy("assigned_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list assignments query: %w", err)
	}

	var rows []assignmentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	out := make([]assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapAssignmentRow(row))
	}
	return out, nil
}

func (r *AssignmentRepository) Update(ctx context.Context, tenantID string, a assignment.Assignment) (assignment.Assignment, error) {
	row := assignmentInsertModel(tenantID, a)

	query, args, err := qb.Update("assignments").
		Set("role", row.Role).
		Set("status", row.Status).
		Set("confirmed_at", row.ConfirmedAt).
		Set("pay_rate", row.PayRate).
		Set("estimated_pay", row.EstimatedPay).
		Set("actual_pay", row.ActualPay).
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", a.ID)).
		ToSQL()
	if err != nil {
		return assignment.Assignment{}, fmt.Errorf("build update assignment query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return assignment.Assignment{}, fmt.Errorf("update assignment: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return assignment.Assignment{}, errNotFound
	}
	a.TenantID = tenantID
	return a, nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, tenantID, id string) error {
	query, args, err := qb.DeleteFrom("assignments").
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete assignment query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errNotFound
	}
	return nil
}

// BulkInsert atomically writes every assignment produced by one optimizer
// run, following the teacher's transaction-wrapped per-row upsert shape.
func (r *AssignmentRepository) BulkInsert(ctx context.Context, tenantID string, assignments []assignment.Assignment) ([]assignment.Assignment, error) {
	if len(assignments) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx bulk insert assignments: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	out := make([]assignment.Assignment, 0, len(assignments))
	for _, a := range assignments {
		a.TenantID = tenantID

		query, args, err := qb.InsertModel("assignments", assignmentInsertModel(tenantID, a), "")
		if err != nil {
			return nil, fmt.Errorf("build bulk insert assignment query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("bulk insert assignment id=%s: %w", a.ID, err)
		}
		out = append(out, a)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit bulk insert assignments tx: %w", err)
	}
	return out, nil
}
