package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/conflict"
	"github.com/riskibarqy/hoopscheduler/internal/domain/assignment"
	"github.com/riskibarqy/hoopscheduler/internal/domain/blackout"
	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/domain/official"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
)

// ConflictService answers ad-hoc conflict questions against a season's
// current state, without requiring a schedule generation run.
type ConflictService struct {
	gameRepo       game.Repository
	venueRepo      venue.Repository
	blackoutRepo   blackout.Repository
	officialRepo   official.Repository
	assignmentRepo assignment.Repository
	detector       *conflict.Detector
}

func NewConflictService(
	gameRepo game.Repository,
	venueRepo venue.Repository,
	blackoutRepo blackout.Repository,
	officialRepo official.Repository,
	assignmentRepo assignment.Repository,
	detector *conflict.Detector,
) *ConflictService {
	return &ConflictService{
		gameRepo:       gameRepo,
		venueRepo:      venueRepo,
		blackoutRepo:   blackoutRepo,
		officialRepo:   officialRepo,
		assignmentRepo: assignmentRepo,
		detector:       detector,
	}
}

// CheckSeason runs the full detector over every non-cancelled game in a
// season plus its assignments, officials, venues, and blackout dates.
func (s *ConflictService) CheckSeason(ctx context.Context, tenantID, seasonID string) ([]conflict.Conflict, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ConflictService.CheckSeason")
	defer span.End()

	tenantID, seasonID = strings.TrimSpace(tenantID), strings.TrimSpace(seasonID)
	if tenantID == "" || seasonID == "" {
		return nil, fmt.Errorf("%w: tenant id and season id are required", ErrInvalidInput)
	}

	games, err := s.gameRepo.List(ctx, tenantID, game.Filter{SeasonID: seasonID})
	if err != nil {
		return nil, fmt.Errorf("list season games: %w", err)
	}

	venues, err := s.venueRepo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	venueByID := make(map[string]venue.Venue, len(venues))
	availability := make(map[string][]venue.Availability, len(venues))
	for _, v := range venues {
		venueByID[v.ID] = v
		av, err := s.venueRepo.ListAvailability(ctx, tenantID, v.ID)
		if err != nil {
			return nil, fmt.Errorf("list availability for venue=%s: %w", v.ID, err)
		}
		availability[v.ID] = av
	}

	blackouts, err := s.blackoutRepo.ListBySeason(ctx, tenantID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list blackout dates: %w", err)
	}

	officials, err := s.officialRepo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list officials: %w", err)
	}
	officialByID := make(map[string]official.Official, len(officials))
	for _, o := range officials {
		officialByID[o.ID] = o
	}

	var assignments []assignment.Assignment
	for _, g := range games {
		gameAssignments, err := s.assignmentRepo.ListByGame(ctx, tenantID, g.ID)
		if err != nil {
			return nil, fmt.Errorf("list assignments for game=%s: %w", g.ID, err)
		}
		assignments = append(assignments, gameAssignments...)
	}

	conflicts := s.detector.Detect(conflict.Input{
		Games:             games,
		Venues:            venueByID,
		VenueAvailability: availability,
		Blackouts:         blackouts,
		Assignments:       assignments,
		Officials:         officialByID,
		Now:               time.Now().UTC(),
	})
	return conflicts, nil
}

// CheckSlot evaluates one proposed (venueID, start) placement against a
// season's existing games and blackout dates, without persisting anything.
func (s *ConflictService) CheckSlot(ctx context.Context, tenantID, seasonID, venueID string, start time.Time, durationMinutes int) ([]conflict.Conflict, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ConflictService.CheckSlot")
	defer span.End()

	tenantID, seasonID, venueID = strings.TrimSpace(tenantID), strings.TrimSpace(seasonID), strings.TrimSpace(venueID)
	if tenantID == "" || seasonID == "" || venueID == "" {
		return nil, fmt.Errorf("%w: tenant id, season id, and venue id are required", ErrInvalidInput)
	}
	if start.IsZero() || durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: scheduled start and a positive duration are required", ErrInvalidInput)
	}

	games, err := s.gameRepo.List(ctx, tenantID, game.Filter{SeasonID: seasonID})
	if err != nil {
		return nil, fmt.Errorf("list season games: %w", err)
	}

	venues, err := s.venueRepo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	venueByID := make(map[string]venue.Venue, len(venues))
	for _, v := range venues {
		venueByID[v.ID] = v
	}

	blackouts, err := s.blackoutRepo.ListBySeason(ctx, tenantID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list blackout dates: %w", err)
	}

	proposed := game.Game{
		ID:              "__proposed__",
		TenantID:        tenantID,
		SeasonID:        seasonID,
		VenueID:         venueID,
		ScheduledStart:  start,
		DurationMinutes: durationMinutes,
		Status:          game.StatusScheduled,
	}

	return s.detector.DetectGameConflicts(proposed, games, venueByID, blackouts), nil
}
