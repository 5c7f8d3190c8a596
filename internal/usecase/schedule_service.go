package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/domain/blackout"
	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/domain/schedulelog"
	"github.com/riskibarqy/hoopscheduler/internal/domain/season"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
	"github.com/riskibarqy/hoopscheduler/external/notification"
	"github.com/riskibarqy/hoopscheduler/internal/platform/cache"
	"github.com/riskibarqy/hoopscheduler/internal/platform/id"
	"github.com/riskibarqy/hoopscheduler/internal/platform/logging"
	"github.com/riskibarqy/hoopscheduler/internal/platform/metrics"
	"github.com/riskibarqy/hoopscheduler/internal/scheduler"
)

const schedulePlanTTL = cache.TTLSchedulePlan

func schedulePlanKey(tenantID, seasonID string) string {
	return "scheduleplan:" + tenantID + ":" + seasonID
}

// ScheduleUsecase generates, previews, and publishes a season's schedule.
// Generate never persists; Publish commits the last generated plan for a
// season and flips it live.
type ScheduleUsecase struct {
	generator    *scheduler.Generator
	seasonRepo   season.Repository
	venueRepo    venue.Repository
	blackoutRepo blackout.Repository
	gameRepo     game.Repository
	logRepo      schedulelog.Repository
	notifier     notification.Port
	plans        cache.Interface
	ids          id.Generator
	logger       *logging.Logger
	metrics      *metrics.Registry
}

func NewScheduleUsecase(
	generator *scheduler.Generator,
	seasonRepo season.Repository,
	venueRepo venue.Repository,
	blackoutRepo blackout.Repository,
	gameRepo game.Repository,
	logRepo schedulelog.Repository,
	notifier notification.Port,
	plans cache.Interface,
	ids id.Generator,
	logger *logging.Logger,
	metricsRegistry *metrics.Registry,
) *ScheduleUsecase {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleUsecase{
		generator:    generator,
		seasonRepo:   seasonRepo,
		venueRepo:    venueRepo,
		blackoutRepo: blackoutRepo,
		gameRepo:     gameRepo,
		logRepo:      logRepo,
		notifier:     notifier,
		plans:        plans,
		ids:          ids,
		logger:       logger,
		metrics:      metricsRegistry,
	}
}

// Generate builds a schedule plan for a season's divisions without
// persisting anything. The plan is cached so a later Publish call can
// commit it without re-running placement.
func (s *ScheduleUsecase) Generate(ctx context.Context, tenantID, seasonID string, divisions []scheduler.Division, params scheduler.Params) (scheduler.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleUsecase.Generate")
	defer span.End()

	tenantID, seasonID = strings.TrimSpace(tenantID), strings.TrimSpace(seasonID)
	if tenantID == "" || seasonID == "" {
		return scheduler.Result{}, fmt.Errorf("%w: tenant id and season id are required", ErrInvalidInput)
	}
	if len(divisions) == 0 {
		return scheduler.Result{}, fmt.Errorf("%w: at least one division is required", ErrInvalidInput)
	}

	sea, err := s.seasonRepo.Get(ctx, tenantID, seasonID)
	if err != nil {
		return scheduler.Result{}, fmt.Errorf("get season: %w", err)
	}

	venues, err := s.venueRepo.List(ctx, tenantID)
	if err != nil {
		return scheduler.Result{}, fmt.Errorf("list venues: %w", err)
	}
	venueByID := make(map[string]venue.Venue, len(venues))
	availability := make(map[string][]venue.Availability, len(venues))
	for _, v := range venues {
		if !v.Active {
			continue
		}
		venueByID[v.ID] = v
		av, err := s.venueRepo.ListAvailability(ctx, tenantID, v.ID)
		if err != nil {
			return scheduler.Result{}, fmt.Errorf("list availability for venue=%s: %w", v.ID, err)
		}
		availability[v.ID] = av
	}

	blackouts, err := s.blackoutRepo.ListBySeason(ctx, tenantID, seasonID)
	if err != nil {
		return scheduler.Result{}, fmt.Errorf("list blackout dates: %w", err)
	}

	loc, err := time.LoadLocation(sea.TimezoneOrDefault("America/Phoenix"))
	if err != nil {
		loc = time.UTC
	}

	req := scheduler.Request{
		SeasonStart:  sea.StartDate,
		SeasonEnd:    sea.EndDate,
		Location:     loc,
		Divisions:    divisions,
		Venues:       venueByID,
		Availability: availability,
		Blackouts:    blackouts,
		Params:       params,
	}

	result, err := s.generator.Generate(ctx, req)
	if err != nil {
		return scheduler.Result{}, fmt.Errorf("generate schedule: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordGeneration(result.Stats.GenerationTimeMS, result.Stats.WithConflicts)
	}

	plan := schedulePlan{SeasonID: seasonID, Algorithm: string(params.Algorithm), Result: result}
	s.plans.Set(ctx, schedulePlanKey(tenantID, seasonID), plan, schedulePlanTTL)

	logStatus := schedulelog.StatusSucceeded
	if len(result.Warnings) > 0 {
		logStatus = schedulelog.StatusPartial
	}
	if result.Stats.Scheduled == 0 && result.Stats.TotalGames > 0 {
		logStatus = schedulelog.StatusFailed
	}
	if _, err := s.logRepo.Create(ctx, tenantID, schedulelog.Log{
		SeasonID:         seasonID,
		Status:           logStatus,
		Algorithm:        string(params.Algorithm),
		TotalGames:       result.Stats.TotalGames,
		Scheduled:        result.Stats.Scheduled,
		WithConflicts:    result.Stats.WithConflicts,
		WithHeatWarnings: result.Stats.WithHeatWarnings,
		VenueUtilization: result.Stats.VenueUtilization,
		GenerationTimeMS: result.Stats.GenerationTimeMS,
		Warnings:         result.Warnings,
		StartedAt:        time.Now().UTC(),
		FinishedAt:       time.Now().UTC(),
	}); err != nil {
		return scheduler.Result{}, fmt.Errorf("record generation log: %w", err)
	}

	return result, nil
}

// Preview returns the last plan generated for a season, if it is still
// cached, without re-running placement.
func (s *ScheduleUsecase) Preview(ctx context.Context, tenantID, seasonID string) (scheduler.Result, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleUsecase.Preview")
	defer span.End()

	tenantID, seasonID = strings.TrimSpace(tenantID), strings.TrimSpace(seasonID)
	if tenantID == "" || seasonID == "" {
		return scheduler.Result{}, false, fmt.Errorf("%w: tenant id and season id are required", ErrInvalidInput)
	}

	raw, ok := s.plans.Get(ctx, schedulePlanKey(tenantID, seasonID))
	if !ok {
		return scheduler.Result{}, false, nil
	}
	plan, ok := raw.(schedulePlan)
	if !ok {
		return scheduler.Result{}, false, nil
	}
	return plan.Result, true, nil
}

// Publish commits the cached plan for a season: bulk-inserts its games,
// flips the season to ACTIVE, clears the plan cache, and fires a
// fire-and-forget notification. All-or-nothing: a bulk-insert failure
// leaves the season and cache untouched.
func (s *ScheduleUsecase) Publish(ctx context.Context, tenantID, seasonID string) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleUsecase.Publish")
	defer span.End()

	tenantID, seasonID = strings.TrimSpace(tenantID), strings.TrimSpace(seasonID)
	if tenantID == "" || seasonID == "" {
		return nil, fmt.Errorf("%w: tenant id and season id are required", ErrInvalidInput)
	}

	raw, ok := s.plans.Get(ctx, schedulePlanKey(tenantID, seasonID))
	if !ok {
		return nil, fmt.Errorf("%w: no generated plan cached for season=%s, call Generate first", ErrConflict, seasonID)
	}
	plan, ok := raw.(schedulePlan)
	if !ok {
		return nil, fmt.Errorf("%w: cached plan for season=%s is unreadable", ErrConflict, seasonID)
	}

	sea, err := s.seasonRepo.Get(ctx, tenantID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	}
	if !sea.Status.CanTransitionTo(season.StatusActive) {
		return nil, fmt.Errorf("%w: cannot publish schedule for season in status %s", ErrConflict, sea.Status)
	}

	games := make([]game.Game, 0, len(plan.Result.Games))
	for seq, sg := range plan.Result.Games {
		newID, err := s.ids.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate game id: %w", err)
		}
		games = append(games, game.Game{
			ID:              newID,
			TenantID:        tenantID,
			SeasonID:        seasonID,
			DivisionID:      sg.DivisionID,
			HomeTeamID:      sg.Home.ID,
			AwayTeamID:      sg.Away.ID,
			VenueID:         sg.VenueID,
			GameNumber:      game.FormatGameNumber(seq + 1),
			GameType:        game.TypeRegular,
			ScheduledStart:  sg.ScheduledStart,
			DurationMinutes: int(sg.EstimatedDuration / time.Minute),
			Status:          game.StatusScheduled,
		})
	}

	stored, err := s.gameRepo.BulkInsert(ctx, tenantID, games)
	if err != nil {
		return nil, fmt.Errorf("publish schedule: %w", err)
	}

	sea.Status = season.StatusActive
	if _, err := s.seasonRepo.Update(ctx, tenantID, sea); err != nil {
		return nil, fmt.Errorf("activate season: %w", err)
	}

	s.plans.Delete(ctx, schedulePlanKey(tenantID, seasonID))

	if s.notifier != nil {
		if err := s.notifier.Publish(ctx, notification.Event{
			Kind:     "schedule.published",
			TenantID: tenantID,
			Payload:  map[string]any{"season_id": seasonID, "game_count": len(stored)},
		}); err != nil {
			s.logger.WarnContext(ctx, "schedule.published notification failed", "error", err, "season_id", seasonID)
		}
	}

	return stored, nil
}

type schedulePlan struct {
	SeasonID  string
	Algorithm string
	Result    scheduler.Result
}
