package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	qb "github.com/riskibarqy/hoopscheduler/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) Create(ctx context.Context, tenantID string, g game.Game) (game.Game, error) {
	now := time.Now().UTC()
	g.CreatedAt, g.UpdatedAt = now, now

	query, args, err := qb.InsertModel("games", gameInsertModel(tenantID, g), "")
	if err != nil {
		return game.Game{}, fmt.Errorf("build insert game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return game.Game{}, fmt.Errorf("insert game: %w", err)
	}
	g.TenantID = tenantID
	return g, nil
}

func (r *GameRepository) Get(ctx context.Context, tenantID, id string) (game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return game.Game{}, fmt.Errorf("build get game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, errNotFound
		}
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	return mapGameRow(row), nil
}

func (r *GameRepository) List(ctx context.Context, tenantID string, f game.Filter) ([]game.Game, error) {
	conditions := []qb.Condition{qb.Eq("organization_id", tenantID)}
	if f.SeasonID != "" {
		conditions = append(conditions, qb.Eq("season_id", f.SeasonID))
	}
	if f.DivisionID != "" {
		conditions = append(conditions, qb.Eq("division_id", f.DivisionID))
	}
	if f.TeamID != "" {
		conditions = append(conditions, qb.Expr("(home_team_id = ? OR away_team_id = ?)", f.TeamID, f.TeamID))
	}
	if f.VenueID != "" {
		conditions = append(conditions, qb.Eq("venue_id", f.VenueID))
	}
	if f.Status != "" {
		conditions = append(conditions, qb.Eq("status", string(f.Status)))
	}
	if !f.DateFrom.IsZero() {
		conditions = append(conditions, qb.Expr("scheduled_start >= ?", f.DateFrom))
	}
	if !f.DateTo.IsZero() {
		conditions = append(conditions, qb.Expr("scheduled_start <= ?", f.DateTo))
	}

	builder := qb.Select("*").From("games").
		Where(conditions...).
		OrderBy("scheduled_start")
	if f.Limit > 0 {
		builder = builder.Limit(f.Limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapGameRow(row))
	}
	return out, nil
}

func (r *GameRepository) Update(ctx context.Context, tenantID string, g game.Game) (game.Game, error) {
	g.UpdatedAt = time.Now().UTC()
	row := gameInsertModel(tenantID, g)

	query, args, err := qb.Update("games").
		Set("home_team_id", row.HomeTeamID).
		Set("away_team_id", row.AwayTeamID).
		Set("venue_id", row.VenueID).
		Set("court_id", row.CourtID).
		Set("game_number", row.GameNumber).
		Set("game_type", row.GameType).
		Set("scheduled_start", row.ScheduledStart).
		Set("duration_minutes", row.DurationMinutes).
		Set("status", row.Status).
		Set("home_score", row.HomeScore).
		Set("away_score", row.AwayScore).
		Set("heat_policy_applied", row.HeatPolicyApplied).
		Set("live_score_locked", row.LiveScoreLocked).
		Set("notes", row.Notes).
		Set("cancelled_reason", row.CancelledReason).
		Set("updated_at", row.UpdatedAt).
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", g.ID)).
		ToSQL()
	if err != nil {
		return game.Game{}, fmt.Errorf("build update game query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return game.Game{}, fmt.Errorf("update game: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return game.Game{}, errNotFound
	}
	g.TenantID = tenantID
	return g, nil
}

func (r *GameRepository) Delete(ctx context.Context, tenantID, id string) error {
	query, args, err := qb.DeleteFrom("games").
		Where(qb.Eq("organization_id", tenantID), qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete game query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errNotFound
	}
	return nil
}

// BulkInsert atomically writes a generated schedule's games, used by the
// publish step.
func (r *GameRepository) BulkInsert(ctx context.Context, tenantID string, games []game.Game) ([]game.Game, error) {
	if len(games) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx bulk insert games: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	out := make([]game.Game, 0, len(games))
	for _, g := range games {
		g.TenantID = tenantID
		g.CreatedAt, g.UpdatedAt = now, now

		query, args, err := qb.InsertModel("games", gameInsertModel(tenantID, g), "")
		if err != nil {
			return nil, fmt.Errorf("build bulk insert game query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("bulk insert game number=%s: %w", g.GameNumber, err)
		}
		out = append(out, g)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit bulk insert games tx: %w", err)
	}
	return out, nil
}

// FindConflictsAt returns non-cancelled games at venueID whose
// [start, start+duration+buffer) window overlaps the proposed one.
func (r *GameRepository) FindConflictsAt(ctx context.Context, tenantID, venueID string, start time.Time, duration, buffer time.Duration, excludeGameID string) ([]game.Game, error) {
	windowEnd := start.Add(duration + buffer)

	conditions := []qb.Condition{
		qb.Eq("organization_id", tenantID),
		qb.Eq("venue_id", venueID),
		qb.Expr("status != ?", string(game.StatusCancelled)),
		qb.Expr("scheduled_start < ?", windowEnd),
		qb.Expr("(scheduled_start + (duration_minutes * interval '1 minute') + ?::interval) > ?", buffer, start),
	}
	if excludeGameID != "" {
		conditions = append(conditions, qb.Expr("id != ?", excludeGameID))
	}

	query, args, err := qb.Select("*").From("games").
		Where(conditions...).
		OrderBy("scheduled_start").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build find venue conflicts query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("find venue conflicts: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapGameRow(row))
	}
	return out, nil
}

// ExistsForVenue reports whether any non-cancelled game references venueID.
func (r *GameRepository) ExistsForVenue(ctx context.Context, tenantID, venueID string) (bool, error) {
	query, args, err := qb.Select("1").From("games").
		Where(
			qb.Eq("organization_id", tenantID),
			qb.Eq("venue_id", venueID),
			qb.Expr("status != ?", string(game.StatusCancelled)),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build exists for venue query: %w", err)
	}

	var rows []int
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return false, fmt.Errorf("exists for venue: %w", err)
	}
	return len(rows) > 0, nil
}
