package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/hoopscheduler/internal/domain/blackout"
	"github.com/riskibarqy/hoopscheduler/internal/domain/season"
	"github.com/riskibarqy/hoopscheduler/internal/platform/id"
)

type BlackoutService struct {
	blackoutRepo blackout.Repository
	seasonRepo   season.Repository
	ids          id.Generator
}

func NewBlackoutService(blackoutRepo blackout.Repository, seasonRepo season.Repository, ids id.Generator) *BlackoutService {
	return &BlackoutService{blackoutRepo: blackoutRepo, seasonRepo: seasonRepo, ids: ids}
}

func (s *BlackoutService) Create(ctx context.Context, tenantID string, in blackout.BlackoutDate) (blackout.BlackoutDate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BlackoutService.Create")
	defer span.End()

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return blackout.BlackoutDate{}, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	in.TenantID = tenantID

	if _, err := s.seasonRepo.Get(ctx, tenantID, in.SeasonID); err != nil {
		return blackout.BlackoutDate{}, fmt.Errorf("get season: %w", err)
	}

	if err := in.Validate(); err != nil {
		return blackout.BlackoutDate{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	newID, err := s.ids.NewID()
	if err != nil {
		return blackout.BlackoutDate{}, fmt.Errorf("generate blackout id: %w", err)
	}
	in.ID = newID

	out, err := s.blackoutRepo.Create(ctx, tenantID, in)
	if err != nil {
		return blackout.BlackoutDate{}, fmt.Errorf("create blackout date: %w", err)
	}
	return out, nil
}

func (s *BlackoutService) Get(ctx context.Context, tenantID, blackoutID string) (blackout.BlackoutDate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BlackoutService.Get")
	defer span.End()

	tenantID, blackoutID = strings.TrimSpace(tenantID), strings.TrimSpace(blackoutID)
	if tenantID == "" || blackoutID == "" {
		return blackout.BlackoutDate{}, fmt.Errorf("%w: tenant id and blackout id are required", ErrInvalidInput)
	}

	out, err := s.blackoutRepo.Get(ctx, tenantID, blackoutID)
	if err != nil {
		return blackout.BlackoutDate{}, fmt.Errorf("get blackout date: %w", err)
	}
	return out, nil
}

func (s *BlackoutService) ListBySeason(ctx context.Context, tenantID, seasonID string) ([]blackout.BlackoutDate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BlackoutService.ListBySeason")
	defer span.End()

	tenantID, seasonID = strings.TrimSpace(tenantID), strings.TrimSpace(seasonID)
	if tenantID == "" || seasonID == "" {
		return nil, fmt.Errorf("%w: tenant id and season id are required", ErrInvalidInput)
	}

	out, err := s.blackoutRepo.ListBySeason(ctx, tenantID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list blackout dates by season: %w", err)
	}
	return out, nil
}

func (s *BlackoutService) Update(ctx context.Context, tenantID string, in blackout.BlackoutDate) (blackout.BlackoutDate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BlackoutService.Update")
	defer span.End()

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" || in.ID == "" {
		return blackout.BlackoutDate{}, fmt.Errorf("%w: tenant id and blackout id are required", ErrInvalidInput)
	}
	in.TenantID = tenantID

	if err := in.Validate(); err != nil {
		return blackout.BlackoutDate{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	out, err := s.blackoutRepo.Update(ctx, tenantID, in)
	if err != nil {
		return blackout.BlackoutDate{}, fmt.Errorf("update blackout date: %w", err)
	}
	return out, nil
}

func (s *BlackoutService) Delete(ctx context.Context, tenantID, blackoutID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.BlackoutService.Delete")
	defer span.End()

	tenantID, blackoutID = strings.TrimSpace(tenantID), strings.TrimSpace(blackoutID)
	if tenantID == "" || blackoutID == "" {
		return fmt.Errorf("%w: tenant id and blackout id are required", ErrInvalidInput)
	}

	if err := s.blackoutRepo.Delete(ctx, tenantID, blackoutID); err != nil {
		return fmt.Errorf("delete blackout date: %w", err)
	}
	return nil
}
