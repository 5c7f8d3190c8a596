package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/domain/assignment"
	"github.com/riskibarqy/hoopscheduler/internal/domain/division"
	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/domain/official"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
	"github.com/riskibarqy/hoopscheduler/internal/officials"
	"github.com/riskibarqy/hoopscheduler/internal/platform/id"
)

type OfficialService struct {
	officialRepo   official.Repository
	assignmentRepo assignment.Repository
	gameRepo       game.Repository
	divisionRepo   division.Repository
	venueRepo      venue.Repository
	optimizer      *officials.Optimizer
	ids            id.Generator
}

func NewOfficialService(
	officialRepo official.Repository,
	assignmentRepo assignment.Repository,
	gameRepo game.Repository,
	divisionRepo division.Repository,
	venueRepo venue.Repository,
	ids id.Generator,
) *OfficialService {
	return &OfficialService{
		officialRepo:   officialRepo,
		assignmentRepo: assignmentRepo,
		gameRepo:       gameRepo,
		divisionRepo:   divisionRepo,
		venueRepo:      venueRepo,
		optimizer:      officials.NewOptimizer(),
		ids:            ids,
	}
}

func (s *OfficialService) Create(ctx context.Context, tenantID string, in official.Official) (official.Official, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfficialService.Create")
	defer span.End()

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return official.Official{}, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	in.TenantID = tenantID

	if err := in.Validate(); err != nil {
		return official.Official{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	newID, err := s.ids.NewID()
	if err != nil {
		return official.Official{}, fmt.Errorf("generate official id: %w", err)
	}
	in.ID = newID

	out, err := s.officialRepo.Create(ctx, tenantID, in)
	if err != nil {
		return official.Official{}, fmt.Errorf("create official: %w", err)
	}
	return out, nil
}

func (s *OfficialService) Get(ctx context.Context, tenantID, officialID string) (official.Official, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfficialService.Get")
	defer span.End()

	tenantID, officialID = strings.TrimSpace(tenantID), strings.TrimSpace(officialID)
	if tenantID == "" || officialID == "" {
		return official.Official{}, fmt.Errorf("%w: tenant id and official id are required", ErrInvalidInput)
	}

	out, err := s.officialRepo.Get(ctx, tenantID, officialID)
	if err != nil {
		return official.Official{}, fmt.Errorf("get official: %w", err)
	}
	return out, nil
}

func (s *OfficialService) List(ctx context.Context, tenantID string) ([]official.Official, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfficialService.List")
	defer span.End()

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}

	out, err := s.officialRepo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list officials: %w", err)
	}
	return out, nil
}

func (s *OfficialService) Update(ctx context.Context, tenantID string, in official.Official) (official.Official, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfficialService.Update")
	defer span.End()

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" || in.ID == "" {
		return official.Official{}, fmt.Errorf("%w: tenant id and official id are required", ErrInvalidInput)
	}
	in.TenantID = tenantID

	if err := in.Validate(); err != nil {
		return official.Official{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	out, err := s.officialRepo.Update(ctx, tenantID, in)
	if err != nil {
		return official.Official{}, fmt.Errorf("update official: %w", err)
	}
	return out, nil
}

func (s *OfficialService) Delete(ctx context.Context, tenantID, officialID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfficialService.Delete")
	defer span.End()

	tenantID, officialID = strings.TrimSpace(tenantID), strings.TrimSpace(officialID)
	if tenantID == "" || officialID == "" {
		return fmt.Errorf("%w: tenant id and official id are required", ErrInvalidInput)
	}

	if err := s.officialRepo.Delete(ctx, tenantID, officialID); err != nil {
		return fmt.Errorf("delete official: %w", err)
	}
	return nil
}

func (s *OfficialService) ListAvailability(ctx context.Context, tenantID, officialID string) ([]official.Availability, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfficialService.ListAvailability")
	defer span.End()

	tenantID, officialID = strings.TrimSpace(tenantID), strings.TrimSpace(officialID)
	if tenantID == "" || officialID == "" {
		return nil, fmt.Errorf("%w: tenant id and official id are required", ErrInvalidInput)
	}

	out, err := s.officialRepo.ListAvailability(ctx, tenantID, officialID)
	if err != nil {
		return nil, fmt.Errorf("list official availability: %w", err)
	}
	return out, nil
}

func (s *OfficialService) UpsertAvailability(ctx context.Context, tenantID string, in official.Availability) (official.Availability, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfficialService.UpsertAvailability")
	defer span.End()

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return official.Availability{}, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}

	if _, err := s.officialRepo.Get(ctx, tenantID, in.OfficialID); err != nil {
		return official.Availability{}, fmt.Errorf("get official: %w", err)
	}

	if err := in.Validate(); err != nil {
		return official.Availability{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if in.ID == "" {
		newID, err := s.ids.NewID()
		if err != nil {
			return official.Availability{}, fmt.Errorf("generate availability id: %w", err)
		}
		in.ID = newID
	}

	out, err := s.officialRepo.UpsertAvailability(ctx, tenantID, in)
	if err != nil {
		return official.Availability{}, fmt.Errorf("upsert official availability: %w", err)
	}
	return out, nil
}

func (s *OfficialService) DeleteAvailability(ctx context.Context, tenantID, availabilityID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfficialService.DeleteAvailability")
	defer span.End()

	tenantID, availabilityID = strings.TrimSpace(tenantID), strings.TrimSpace(availabilityID)
	if tenantID == "" || availabilityID == "" {
		return fmt.Errorf("%w: tenant id and availability id are required", ErrInvalidInput)
	}

	if err := s.officialRepo.DeleteAvailability(ctx, tenantID, availabilityID); err != nil {
		return fmt.Errorf("delete official availability: %w", err)
	}
	return nil
}

// Optimize assigns officials to every scheduled, unassigned game in a
// season and persists the result atomically. It never deletes or overrides
// existing assignments; callers that want to re-run from scratch must
// cancel the prior assignments first.
func (s *OfficialService) Optimize(ctx context.Context, tenantID, seasonID string, constraints officials.Constraints) (officials.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfficialService.Optimize")
	defer span.End()

	tenantID, seasonID = strings.TrimSpace(tenantID), strings.TrimSpace(seasonID)
	if tenantID == "" || seasonID == "" {
		return officials.Result{}, fmt.Errorf("%w: tenant id and season id are required", ErrInvalidInput)
	}

	games, err := s.gameRepo.List(ctx, tenantID, game.Filter{SeasonID: seasonID, Status: game.StatusScheduled})
	if err != nil {
		return officials.Result{}, fmt.Errorf("list season games: %w", err)
	}

	divisions, err := s.divisionRepo.ListBySeason(ctx, tenantID, seasonID)
	if err != nil {
		return officials.Result{}, fmt.Errorf("list season divisions: %w", err)
	}
	skillByDivision := make(map[string]string, len(divisions))
	for _, d := range divisions {
		skillByDivision[d.ID] = d.SkillLevel
	}

	gameContexts := make([]officials.GameContext, 0, len(games))
	for _, g := range games {
		existing, err := s.assignmentRepo.ListByGame(ctx, tenantID, g.ID)
		if err != nil {
			return officials.Result{}, fmt.Errorf("list assignments for game=%s: %w", g.ID, err)
		}
		staffed := false
		for _, a := range existing {
			if a.Status.Active() {
				staffed = true
				break
			}
		}
		if staffed {
			continue
		}
		gameContexts = append(gameContexts, officials.GameContext{Game: g, SkillLevel: skillByDivision[g.DivisionID]})
	}

	officialList, err := s.officialRepo.List(ctx, tenantID)
	if err != nil {
		return officials.Result{}, fmt.Errorf("list officials: %w", err)
	}

	venues, err := s.venueRepo.List(ctx, tenantID)
	if err != nil {
		return officials.Result{}, fmt.Errorf("list venues: %w", err)
	}
	venueByID := make(map[string]venue.Venue, len(venues))
	for _, v := range venues {
		venueByID[v.ID] = v
	}

	result := s.optimizer.Optimize(gameContexts, officialList, venueByID, constraints)

	for i := range result.Assignments {
		result.Assignments[i].TenantID = tenantID
		result.Assignments[i].AssignedAt = time.Now().UTC()
		if result.Assignments[i].ID == "" {
			newID, err := s.ids.NewID()
			if err != nil {
				return officials.Result{}, fmt.Errorf("generate assignment id: %w", err)
			}
			result.Assignments[i].ID = newID
		}
	}

	if len(result.Assignments) > 0 {
		stored, err := s.assignmentRepo.BulkInsert(ctx, tenantID, result.Assignments)
		if err != nil {
			return officials.Result{}, fmt.Errorf("persist optimizer assignments: %w", err)
		}
		result.Assignments = stored
	}

	return result, nil
}

func (s *OfficialService) ConfirmAssignment(ctx context.Context, tenantID, assignmentID string) (assignment.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfficialService.ConfirmAssignment")
	defer span.End()

	tenantID, assignmentID = strings.TrimSpace(tenantID), strings.TrimSpace(assignmentID)
	if tenantID == "" || assignmentID == "" {
		return assignment.Assignment{}, fmt.Errorf("%w: tenant id and assignment id are required", ErrInvalidInput)
	}

	a, err := s.assignmentRepo.Get(ctx, tenantID, assignmentID)
	if err != nil {
		return assignment.Assignment{}, fmt.Errorf("get assignment: %w", err)
	}
	if a.Status != assignment.StatusPending {
		return assignment.Assignment{}, fmt.Errorf("%w: assignment=%s is not pending", ErrConflict, assignmentID)
	}

	now := time.Now().UTC()
	a.Status = assignment.StatusConfirmed
	a.ConfirmedAt = &now

	out, err := s.assignmentRepo.Update(ctx, tenantID, a)
	if err != nil {
		return assignment.Assignment{}, fmt.Errorf("confirm assignment: %w", err)
	}
	return out, nil
}

func (s *OfficialService) CancelAssignment(ctx context.Context, tenantID, assignmentID string) (assignment.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfficialService.CancelAssignment")
	defer span.End()

	tenantID, assignmentID = strings.TrimSpace(tenantID), strings.TrimSpace(assignmentID)
	if tenantID == "" || assignmentID == "" {
		return assignment.Assignment{}, fmt.Errorf("%w: tenant id and assignment id are required", ErrInvalidInput)
	}

	a, err := s.assignmentRepo.Get(ctx, tenantID, assignmentID)
	if err != nil {
		return assignment.Assignment{}, fmt.Errorf("get assignment: %w", err)
	}
	if !a.Status.Active() {
		return assignment.Assignment{}, fmt.Errorf("%w: assignment=%s is already inactive", ErrConflict, assignmentID)
	}

	a.Status = assignment.StatusCancelled

	out, err := s.assignmentRepo.Update(ctx, tenantID, a)
	if err != nil {
		return assignment.Assignment{}, fmt.Errorf("cancel assignment: %w", err)
	}
	return out, nil
}

func (s *OfficialService) ListAssignmentsByGame(ctx context.Context, tenantID, gameID string) ([]assignment.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfficialService.ListAssignmentsByGame")
	defer span.End()

	tenantID, gameID = strings.TrimSpace(tenantID), strings.TrimSpace(gameID)
	if tenantID == "" || gameID == "" {
		return nil, fmt.Errorf("%w: tenant id and game id are required", ErrInvalidInput)
	}

	out, err := s.assignmentRepo.ListByGame(ctx, tenantID, gameID)
	if err != nil {
		return nil, fmt.Errorf("list assignments by game: %w", err)
	}
	return out, nil
}

func (s *OfficialService) ListAssignmentsByOfficial(ctx context.Context, tenantID, officialID string) ([]assignment.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfficialService.ListAssignmentsByOfficial")
	defer span.End()

	tenantID, officialID = strings.TrimSpace(tenantID), strings.TrimSpace(officialID)
	if tenantID == "" || officialID == "" {
		return nil, fmt.Errorf("%w: tenant id and official id are required", ErrInvalidInput)
	}

	out, err := s.assignmentRepo.ListByOfficial(ctx, tenantID, officialID)
	if err != nil {
		return nil, fmt.Errorf("list assignments by official: %w", err)
	}
	return out, nil
}

// ExportPayroll builds per-official payroll rows for confirmed/completed
// assignments in [from, to), grounding costs in each game's actual status.
func (s *OfficialService) ExportPayroll(ctx context.Context, tenantID, seasonID string, from, to time.Time) ([]officials.PayrollRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfficialService.ExportPayroll")
	defer span.End()

	tenantID, seasonID = strings.TrimSpace(tenantID), strings.TrimSpace(seasonID)
	if tenantID == "" || seasonID == "" {
		return nil, fmt.Errorf("%w: tenant id and season id are required", ErrInvalidInput)
	}

	games, err := s.gameRepo.List(ctx, tenantID, game.Filter{SeasonID: seasonID, DateFrom: from, DateTo: to})
	if err != nil {
		return nil, fmt.Errorf("list season games: %w", err)
	}
	gameByID := make(map[string]game.Game, len(games))

	var assignments []assignment.Assignment
	for _, g := range games {
		gameByID[g.ID] = g
		gameAssignments, err := s.assignmentRepo.ListByGame(ctx, tenantID, g.ID)
		if err != nil {
			return nil, fmt.Errorf("list assignments for game=%s: %w", g.ID, err)
		}
		assignments = append(assignments, gameAssignments...)
	}

	officialList, err := s.officialRepo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list officials: %w", err)
	}
	officialByID := make(map[string]official.Official, len(officialList))
	for _, o := range officialList {
		officialByID[o.ID] = o
	}

	return officials.BuildPayroll(assignments, gameByID, officialByID, from, to), nil
}
