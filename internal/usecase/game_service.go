package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/conflict"
	"github.com/riskibarqy/hoopscheduler/internal/domain/blackout"
	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
)

// GameService manages individual games after they exist: lookups,
// rescheduling, and cancellation. Bulk generation/publish lives in
// ScheduleUsecase.
type GameService struct {
	gameRepo     game.Repository
	venueRepo    venue.Repository
	blackoutRepo blackout.Repository
	detector     *conflict.Detector
}

func NewGameService(gameRepo game.Repository, venueRepo venue.Repository, blackoutRepo blackout.Repository, detector *conflict.Detector) *GameService {
	return &GameService{gameRepo: gameRepo, venueRepo: venueRepo, blackoutRepo: blackoutRepo, detector: detector}
}

func (s *GameService) Get(ctx context.Context, tenantID, gameID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Get")
	defer span.End()

	tenantID, gameID = strings.TrimSpace(tenantID), strings.TrimSpace(gameID)
	if tenantID == "" || gameID == "" {
		return game.Game{}, fmt.Errorf("%w: tenant id and game id are required", ErrInvalidInput)
	}

	out, err := s.gameRepo.Get(ctx, tenantID, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	return out, nil
}

func (s *GameService) List(ctx context.Context, tenantID string, f game.Filter) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.List")
	defer span.End()

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}

	out, err := s.gameRepo.List(ctx, tenantID, f)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return out, nil
}

// Reschedule moves a game to a new venue/start time, refusing the move if
// it collides with another non-cancelled game at the target venue or with
// a blackout date. Returns the non-critical conflicts found at the new slot
// (e.g. heat warnings) alongside the updated game.
func (s *GameService) Reschedule(ctx context.Context, tenantID, gameID string, venueID string, start time.Time, bufferMinutes int) (game.Game, []conflict.Conflict, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Reschedule")
	defer span.End()

	tenantID, gameID, venueID = strings.TrimSpace(tenantID), strings.TrimSpace(gameID), strings.TrimSpace(venueID)
	if tenantID == "" || gameID == "" || venueID == "" {
		return game.Game{}, nil, fmt.Errorf("%w: tenant id, game id, and venue id are required", ErrInvalidInput)
	}
	if start.IsZero() {
		return game.Game{}, nil, fmt.Errorf("%w: scheduled start is required", ErrInvalidInput)
	}

	existing, err := s.gameRepo.Get(ctx, tenantID, gameID)
	if err != nil {
		return game.Game{}, nil, fmt.Errorf("get game: %w", err)
	}
	if existing.Status.Terminal() {
		return game.Game{}, nil, fmt.Errorf("%w: game=%s is in a terminal status and cannot be rescheduled", ErrConflict, gameID)
	}

	buffer := time.Duration(bufferMinutes) * time.Minute
	conflictingGames, err := s.gameRepo.FindConflictsAt(ctx, tenantID, venueID, start, time.Duration(existing.DurationMinutes)*time.Minute, buffer, gameID)
	if err != nil {
		return game.Game{}, nil, fmt.Errorf("check venue conflicts: %w", err)
	}
	if len(conflictingGames) > 0 {
		return game.Game{}, nil, fmt.Errorf("%w: venue=%s is already booked at the requested time", ErrConflict, venueID)
	}

	proposed := existing
	proposed.VenueID = venueID
	proposed.ScheduledStart = start

	venues, err := s.venueRepo.List(ctx, tenantID)
	if err != nil {
		return game.Game{}, nil, fmt.Errorf("list venues: %w", err)
	}
	venueByID := make(map[string]venue.Venue, len(venues))
	for _, v := range venues {
		venueByID[v.ID] = v
	}

	blackouts, err := s.blackoutRepo.ListBySeason(ctx, tenantID, existing.SeasonID)
	if err != nil {
		return game.Game{}, nil, fmt.Errorf("list blackout dates: %w", err)
	}

	conflicts := s.detector.DetectGameConflicts(proposed, nil, venueByID, blackouts)
	for _, c := range conflicts {
		if c.Severity == conflict.SeverityCritical {
			return game.Game{}, nil, fmt.Errorf("%w: %s", ErrConflict, c.Description)
		}
	}

	out, err := s.gameRepo.Update(ctx, tenantID, proposed)
	if err != nil {
		return game.Game{}, nil, fmt.Errorf("update game: %w", err)
	}
	return out, conflicts, nil
}

// Cancel marks a game cancelled with a reason, refusing to cancel a game
// already in a terminal status.
func (s *GameService) Cancel(ctx context.Context, tenantID, gameID, reason string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Cancel")
	defer span.End()

	tenantID, gameID = strings.TrimSpace(tenantID), strings.TrimSpace(gameID)
	if tenantID == "" || gameID == "" {
		return game.Game{}, fmt.Errorf("%w: tenant id and game id are required", ErrInvalidInput)
	}

	existing, err := s.gameRepo.Get(ctx, tenantID, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !existing.Status.CanTransitionTo(game.StatusCancelled) {
		return game.Game{}, fmt.Errorf("%w: cannot cancel game in status %s", ErrConflict, existing.Status)
	}

	existing.Status = game.StatusCancelled
	existing.CancelledReason = strings.TrimSpace(reason)

	out, err := s.gameRepo.Update(ctx, tenantID, existing)
	if err != nil {
		return game.Game{}, fmt.Errorf("cancel game: %w", err)
	}
	return out, nil
}

// RecordResult applies a final score and transitions the game to COMPLETED
// or FORFEITED.
func (s *GameService) RecordResult(ctx context.Context, tenantID, gameID string, homeScore, awayScore int, status game.Status) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.RecordResult")
	defer span.End()

	tenantID, gameID = strings.TrimSpace(tenantID), strings.TrimSpace(gameID)
	if tenantID == "" || gameID == "" {
		return game.Game{}, fmt.Errorf("%w: tenant id and game id are required", ErrInvalidInput)
	}
	if status != game.StatusCompleted && status != game.StatusForfeited {
		return game.Game{}, fmt.Errorf("%w: result status must be COMPLETED or FORFEITED", ErrInvalidInput)
	}

	existing, err := s.gameRepo.Get(ctx, tenantID, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !existing.Status.CanTransitionTo(status) {
		return game.Game{}, fmt.Errorf("%w: cannot record a result for game in status %s", ErrConflict, existing.Status)
	}

	existing.Status = status
	existing.HomeScore = &homeScore
	existing.AwayScore = &awayScore

	out, err := s.gameRepo.Update(ctx, tenantID, existing)
	if err != nil {
		return game.Game{}, fmt.Errorf("record game result: %w", err)
	}
	return out, nil
}
