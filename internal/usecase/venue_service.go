package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
	"github.com/riskibarqy/hoopscheduler/internal/platform/id"
)

type VenueService struct {
	venueRepo venue.Repository
	gameRepo  game.Repository
	ids       id.Generator
}

func NewVenueService(venueRepo venue.Repository, gameRepo game.Repository, ids id.Generator) *VenueService {
	return &VenueService{venueRepo: venueRepo, gameRepo: gameRepo, ids: ids}
}

func (s *VenueService) Create(ctx context.Context, tenantID string, in venue.Venue) (venue.Venue, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.Create")
	defer span.End()

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return venue.Venue{}, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	in.TenantID = tenantID

	if err := in.Validate(); err != nil {
		return venue.Venue{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	newID, err := s.ids.NewID()
	if err != nil {
		return venue.Venue{}, fmt.Errorf("generate venue id: %w", err)
	}
	in.ID = newID

	out, err := s.venueRepo.Create(ctx, tenantID, in)
	if err != nil {
		return venue.Venue{}, fmt.Errorf("create venue: %w", err)
	}
	return out, nil
}

func (s *VenueService) Get(ctx context.Context, tenantID, venueID string) (venue.Venue, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.Get")
	defer span.End()

	tenantID, venueID = strings.TrimSpace(tenantID), strings.TrimSpace(venueID)
	if tenantID == "" || venueID == "" {
		return venue.Venue{}, fmt.Errorf("%w: tenant id and venue id are required", ErrInvalidInput)
	}

	out, err := s.venueRepo.Get(ctx, tenantID, venueID)
	if err != nil {
		return venue.Venue{}, fmt.Errorf("get venue: %w", err)
	}
	return out, nil
}

func (s *VenueService) List(ctx context.Context, tenantID string) ([]venue.Venue, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.List")
	defer span.End()

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}

	out, err := s.venueRepo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return out, nil
}

func (s *VenueService) Update(ctx context.Context, tenantID string, in venue.Venue) (venue.Venue, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.Update")
	defer span.End()

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" || in.ID == "" {
		return venue.Venue{}, fmt.Errorf("%w: tenant id and venue id are required", ErrInvalidInput)
	}
	in.TenantID = tenantID

	if err := in.Validate(); err != nil {
		return venue.Venue{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	out, err := s.venueRepo.Update(ctx, tenantID, in)
	if err != nil {
		return venue.Venue{}, fmt.Errorf("update venue: %w", err)
	}
	return out, nil
}

// Delete refuses to remove a venue referenced by any non-cancelled game.
func (s *VenueService) Delete(ctx context.Context, tenantID, venueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.Delete")
	defer span.End()

	tenantID, venueID = strings.TrimSpace(tenantID), strings.TrimSpace(venueID)
	if tenantID == "" || venueID == "" {
		return fmt.Errorf("%w: tenant id and venue id are required", ErrInvalidInput)
	}

	inUse, err := s.gameRepo.ExistsForVenue(ctx, tenantID, venueID)
	if err != nil {
		return fmt.Errorf("check venue game references: %w", err)
	}
	if inUse {
		return fmt.Errorf("%w: venue=%s is referenced by a scheduled game", ErrConflict, venueID)
	}

	if err := s.venueRepo.Delete(ctx, tenantID, venueID); err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	return nil
}

func (s *VenueService) ListAvailability(ctx context.Context, tenantID, venueID string) ([]venue.Availability, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.ListAvailability")
	defer span.End()

	tenantID, venueID = strings.TrimSpace(tenantID), strings.TrimSpace(venueID)
	if tenantID == "" || venueID == "" {
		return nil, fmt.Errorf("%w: tenant id and venue id are required", ErrInvalidInput)
	}

	out, err := s.venueRepo.ListAvailability(ctx, tenantID, venueID)
	if err != nil {
		return nil, fmt.Errorf("list venue availability: %w", err)
	}
	return out, nil
}

func (s *VenueService) UpsertAvailability(ctx context.Context, tenantID string, in venue.Availability) (venue.Availability, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.UpsertAvailability")
	defer span.End()

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return venue.Availability{}, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}

	if _, err := s.venueRepo.Get(ctx, tenantID, in.VenueID); err != nil {
		return venue.Availability{}, fmt.Errorf("get venue: %w", err)
	}

	if err := in.Validate(); err != nil {
		return venue.Availability{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if in.ID == "" {
		newID, err := s.ids.NewID()
		if err != nil {
			return venue.Availability{}, fmt.Errorf("generate availability id: %w", err)
		}
		in.ID = newID
	}

	out, err := s.venueRepo.UpsertAvailability(ctx, tenantID, in)
	if err != nil {
		return venue.Availability{}, fmt.Errorf("upsert venue availability: %w", err)
	}
	return out, nil
}

func (s *VenueService) DeleteAvailability(ctx context.Context, tenantID, availabilityID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.DeleteAvailability")
	defer span.End()

	tenantID, availabilityID = strings.TrimSpace(tenantID), strings.TrimSpace(availabilityID)
	if tenantID == "" || availabilityID == "" {
		return fmt.Errorf("%w: tenant id and availability id are required", ErrInvalidInput)
	}

	if err := s.venueRepo.DeleteAvailability(ctx, tenantID, availabilityID); err != nil {
		return fmt.Errorf("delete venue availability: %w", err)
	}
	return nil
}
