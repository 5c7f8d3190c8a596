package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"github.com/riskibarqy/hoopscheduler/internal/domain/season"
	"github.com/riskibarqy/hoopscheduler/internal/platform/id"
)

type SeasonService struct {
	seasonRepo season.Repository
	ids        id.Generator
}

func NewSeasonService(seasonRepo season.Repository, ids id.Generator) *SeasonService {
	return &SeasonService{seasonRepo: seasonRepo, ids: ids}
}

func (s *SeasonService) Create(ctx context.Context, tenantID string, in season.Season) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Create")
	defer span.End()

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return season.Season{}, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	in.TenantID = tenantID

	if in.Slug == "" {
		in.Slug = slug.Make(in.Name)
	}
	if in.Status == "" {
		in.Status = season.StatusUpcoming
	}

	if err := in.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	newID, err := s.ids.NewID()
	if err != nil {
		return season.Season{}, fmt.Errorf("generate season id: %w", err)
	}
	in.ID = newID

	out, err := s.seasonRepo.Create(ctx, tenantID, in)
	if err != nil {
		return season.Season{}, fmt.Errorf("create season: %w", err)
	}
	return out, nil
}

func (s *SeasonService) Get(ctx context.Context, tenantID, seasonID string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Get")
	defer span.End()

	tenantID, seasonID = strings.TrimSpace(tenantID), strings.TrimSpace(seasonID)
	if tenantID == "" || seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: tenant id and season id are required", ErrInvalidInput)
	}

	out, err := s.seasonRepo.Get(ctx, tenantID, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	return out, nil
}

func (s *SeasonService) List(ctx context.Context, tenantID string, f season.Filter) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.List")
	defer span.End()

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}

	out, err := s.seasonRepo.List(ctx, tenantID, f)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return out, nil
}

// Update applies a caller-supplied season, refusing any status transition
// the state machine disallows (e.g. skipping back out of COMPLETED).
func (s *SeasonService) Update(ctx context.Context, tenantID string, in season.Season) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Update")
	defer span.End()

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" || in.ID == "" {
		return season.Season{}, fmt.Errorf("%w: tenant id and season id are required", ErrInvalidInput)
	}
	in.TenantID = tenantID

	existing, err := s.seasonRepo.Get(ctx, tenantID, in.ID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !existing.Status.CanTransitionTo(in.Status) {
		return season.Season{}, fmt.Errorf("%w: cannot transition season from %s to %s", ErrConflict, existing.Status, in.Status)
	}

	if err := in.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	out, err := s.seasonRepo.Update(ctx, tenantID, in)
	if err != nil {
		return season.Season{}, fmt.Errorf("update season: %w", err)
	}
	return out, nil
}

func (s *SeasonService) Delete(ctx context.Context, tenantID, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Delete")
	defer span.End()

	tenantID, seasonID = strings.TrimSpace(tenantID), strings.TrimSpace(seasonID)
	if tenantID == "" || seasonID == "" {
		return fmt.Errorf("%w: tenant id and season id are required", ErrInvalidInput)
	}

	if err := s.seasonRepo.Delete(ctx, tenantID, seasonID); err != nil {
		return fmt.Errorf("delete season: %w", err)
	}
	return nil
}
