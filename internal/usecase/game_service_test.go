package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/conflict"
	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
	"github.com/riskibarqy/hoopscheduler/internal/infrastructure/repository/memory"
)

const testTenant = "tenant-1"

func newGameServiceForTest(t *testing.T) (*GameService, *memory.GameRepository, *memory.VenueRepository) {
	t.Helper()

	gameRepo := memory.NewGameRepository()
	venueRepo := memory.NewVenueRepository()
	blackoutRepo := memory.NewBlackoutRepository()
	detector := conflict.NewDetector(conflict.DefaultConfig())

	if _, err := venueRepo.Create(context.Background(), testTenant, venue.Venue{
		ID:   "venue-1",
		Type: venue.TypeIndoor,
		Name: "Main Gym",
	}); err != nil {
		t.Fatalf("seed venue: %v", err)
	}
	if _, err := venueRepo.Create(context.Background(), testTenant, venue.Venue{
		ID:   "venue-2",
		Type: venue.TypeIndoor,
		Name: "Annex Gym",
	}); err != nil {
		t.Fatalf("seed venue: %v", err)
	}

	return NewGameService(gameRepo, venueRepo, blackoutRepo, detector), gameRepo, venueRepo
}

func seedGame(t *testing.T, repo *memory.GameRepository, g game.Game) game.Game {
	t.Helper()
	out, err := repo.Create(context.Background(), testTenant, g)
	if err != nil {
		t.Fatalf("seed game: %v", err)
	}
	return out
}

func TestGameService_Get(t *testing.T) {
	t.Parallel()

	svc, gameRepo, _ := newGameServiceForTest(t)
	seeded := seedGame(t, gameRepo, game.Game{
		ID:              "game-1",
		SeasonID:        "season-1",
		VenueID:         "venue-1",
		Status:          game.StatusScheduled,
		ScheduledStart:  time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
	})

	got, err := svc.Get(context.Background(), testTenant, seeded.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != seeded.ID {
		t.Fatalf("expected game %s, got %s", seeded.ID, got.ID)
	}
}

func TestGameService_Get_InvalidInput(t *testing.T) {
	t.Parallel()

	svc, _, _ := newGameServiceForTest(t)
	if _, err := svc.Get(context.Background(), "", "game-1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGameService_Reschedule_Success(t *testing.T) {
	t.Parallel()

	svc, gameRepo, _ := newGameServiceForTest(t)
	seeded := seedGame(t, gameRepo, game.Game{
		ID:              "game-1",
		SeasonID:        "season-1",
		VenueID:         "venue-1",
		Status:          game.StatusScheduled,
		ScheduledStart:  time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
	})

	newStart := seeded.ScheduledStart.Add(24 * time.Hour)
	updated, conflicts, err := svc.Reschedule(context.Background(), testTenant, seeded.ID, "venue-2", newStart, 15)
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if updated.VenueID != "venue-2" {
		t.Fatalf("expected venue-2, got %s", updated.VenueID)
	}
	if !updated.ScheduledStart.Equal(newStart) {
		t.Fatalf("expected start %v, got %v", newStart, updated.ScheduledStart)
	}
	for _, c := range conflicts {
		if c.Severity == conflict.SeverityCritical {
			t.Fatalf("unexpected critical conflict: %s", c.Description)
		}
	}
}

func TestGameService_Reschedule_VenueDoubleBooked(t *testing.T) {
	t.Parallel()

	svc, gameRepo, _ := newGameServiceForTest(t)
	start := time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC)
	seedGame(t, gameRepo, game.Game{
		ID:              "game-occupant",
		SeasonID:        "season-1",
		VenueID:         "venue-2",
		Status:          game.StatusScheduled,
		ScheduledStart:  start,
		DurationMinutes: 90,
	})
	movable := seedGame(t, gameRepo, game.Game{
		ID:              "game-movable",
		SeasonID:        "season-1",
		VenueID:         "venue-1",
		Status:          game.StatusScheduled,
		ScheduledStart:  start.Add(48 * time.Hour),
		DurationMinutes: 90,
	})

	_, _, err := svc.Reschedule(context.Background(), testTenant, movable.ID, "venue-2", start, 15)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestGameService_Reschedule_TerminalGameRejected(t *testing.T) {
	t.Parallel()

	svc, gameRepo, _ := newGameServiceForTest(t)
	seeded := seedGame(t, gameRepo, game.Game{
		ID:              "game-1",
		SeasonID:        "season-1",
		VenueID:         "venue-1",
		Status:          game.StatusCancelled,
		ScheduledStart:  time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
	})

	_, _, err := svc.Reschedule(context.Background(), testTenant, seeded.ID, "venue-2", seeded.ScheduledStart.Add(time.Hour), 15)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for terminal game, got %v", err)
	}
}

func TestGameService_Cancel(t *testing.T) {
	t.Parallel()

	svc, gameRepo, _ := newGameServiceForTest(t)
	seeded := seedGame(t, gameRepo, game.Game{
		ID:              "game-1",
		SeasonID:        "season-1",
		VenueID:         "venue-1",
		Status:          game.StatusScheduled,
		ScheduledStart:  time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
	})

	out, err := svc.Cancel(context.Background(), testTenant, seeded.ID, "rain")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if out.Status != game.StatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", out.Status)
	}
	if out.CancelledReason != "rain" {
		t.Fatalf("expected reason 'rain', got %q", out.CancelledReason)
	}

	if _, err := svc.Cancel(context.Background(), testTenant, seeded.ID, "again"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict cancelling an already-cancelled game, got %v", err)
	}
}

func TestGameService_RecordResult(t *testing.T) {
	t.Parallel()

	svc, gameRepo, _ := newGameServiceForTest(t)
	seeded := seedGame(t, gameRepo, game.Game{
		ID:              "game-1",
		SeasonID:        "season-1",
		VenueID:         "venue-1",
		Status:          game.StatusInProgress,
		ScheduledStart:  time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
	})

	out, err := svc.RecordResult(context.Background(), testTenant, seeded.ID, 80, 76, game.StatusCompleted)
	if err != nil {
		t.Fatalf("record result: %v", err)
	}
	if out.Status != game.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", out.Status)
	}
	if out.HomeScore == nil || *out.HomeScore != 80 {
		t.Fatalf("expected home score 80, got %v", out.HomeScore)
	}
	if out.AwayScore == nil || *out.AwayScore != 76 {
		t.Fatalf("expected away score 76, got %v", out.AwayScore)
	}
}

func TestGameService_RecordResult_InvalidStatus(t *testing.T) {
	t.Parallel()

	svc, gameRepo, _ := newGameServiceForTest(t)
	seeded := seedGame(t, gameRepo, game.Game{
		ID:              "game-1",
		Status:          game.StatusInProgress,
		ScheduledStart:  time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
	})

	if _, err := svc.RecordResult(context.Background(), testTenant, seeded.ID, 1, 0, game.StatusScheduled); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-terminal result status, got %v", err)
	}
}
