package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/hoopscheduler/internal/domain/division"
	"github.com/riskibarqy/hoopscheduler/internal/domain/season"
	"github.com/riskibarqy/hoopscheduler/internal/platform/id"
)

type DivisionService struct {
	divisionRepo division.Repository
	seasonRepo   season.Repository
	ids          id.Generator
}

func NewDivisionService(divisionRepo division.Repository, seasonRepo season.Repository, ids id.Generator) *DivisionService {
	return &DivisionService{divisionRepo: divisionRepo, seasonRepo: seasonRepo, ids: ids}
}

func (s *DivisionService) Create(ctx context.Context, tenantID string, in division.Division) (division.Division, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DivisionService.Create")
	defer span.End()

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return division.Division{}, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	in.TenantID = tenantID

	if _, err := s.seasonRepo.Get(ctx, tenantID, in.SeasonID); err != nil {
		return division.Division{}, fmt.Errorf("get season: %w", err)
	}

	if err := in.Validate(); err != nil {
		return division.Division{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	newID, err := s.ids.NewID()
	if err != nil {
		return division.Division{}, fmt.Errorf("generate division id: %w", err)
	}
	in.ID = newID

	out, err := s.divisionRepo.Create(ctx, tenantID, in)
	if err != nil {
		return division.Division{}, fmt.Errorf("create division: %w", err)
	}
	return out, nil
}

func (s *DivisionService) Get(ctx context.Context, tenantID, divisionID string) (division.Division, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DivisionService.Get")
	defer span.End()

	tenantID, divisionID = strings.TrimSpace(tenantID), strings.TrimSpace(divisionID)
	if tenantID == "" || divisionID == "" {
		return division.Division{}, fmt.Errorf("%w: tenant id and division id are required", ErrInvalidInput)
	}

	out, err := s.divisionRepo.Get(ctx, tenantID, divisionID)
	if err != nil {
		return division.Division{}, fmt.Errorf("get division: %w", err)
	}
	return out, nil
}

func (s *DivisionService) ListBySeason(ctx context.Context, tenantID, seasonID string) ([]division.Division, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DivisionService.ListBySeason")
	defer span.End()

	tenantID, seasonID = strings.TrimSpace(tenantID), strings.TrimSpace(seasonID)
	if tenantID == "" || seasonID == "" {
		return nil, fmt.Errorf("%w: tenant id and season id are required", ErrInvalidInput)
	}

	out, err := s.divisionRepo.ListBySeason(ctx, tenantID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list divisions by season: %w", err)
	}
	return out, nil
}

func (s *DivisionService) Update(ctx context.Context, tenantID string, in division.Division) (division.Division, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DivisionService.Update")
	defer span.End()

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" || in.ID == "" {
		return division.Division{}, fmt.Errorf("%w: tenant id and division id are required", ErrInvalidInput)
	}
	in.TenantID = tenantID

	if err := in.Validate(); err != nil {
		return division.Division{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	out, err := s.divisionRepo.Update(ctx, tenantID, in)
	if err != nil {
		return division.Division{}, fmt.Errorf("update division: %w", err)
	}
	return out, nil
}

func (s *DivisionService) Delete(ctx context.Context, tenantID, divisionID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DivisionService.Delete")
	defer span.End()

	tenantID, divisionID = strings.TrimSpace(tenantID), strings.TrimSpace(divisionID)
	if tenantID == "" || divisionID == "" {
		return fmt.Errorf("%w: tenant id and division id are required", ErrInvalidInput)
	}

	if err := s.divisionRepo.Delete(ctx, tenantID, divisionID); err != nil {
		return fmt.Errorf("delete division: %w", err)
	}
	return nil
}
