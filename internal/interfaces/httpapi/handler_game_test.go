package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/riskibarqy/hoopscheduler/internal/conflict"
	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/domain/tenant"
	"github.com/riskibarqy/hoopscheduler/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/hoopscheduler/internal/usecase"
)

func newGameTestHandler(t *testing.T) (*Handler, *memory.GameRepository) {
	t.Helper()

	gameRepo := memory.NewGameRepository()
	venueRepo := memory.NewVenueRepository()
	blackoutRepo := memory.NewBlackoutRepository()
	detector := conflict.NewDetector(conflict.DefaultConfig())

	gameSvc := usecase.NewGameService(gameRepo, venueRepo, blackoutRepo, detector)

	return NewHandler(nil, nil, nil, nil, nil, nil, gameSvc, nil, nil, nil), gameRepo
}

func newAuthedRequest(method, target string, principal tenant.Principal) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := withPrincipal(req.Context(), principal)
	return req.WithContext(ctx)
}

func TestGetGame_NotFound(t *testing.T) {
	t.Parallel()

	handler, _ := newGameTestHandler(t)
	r := chi.NewRouter()
	registerGameRoutes(r, handler)

	req := newAuthedRequest(http.MethodGet, "/games/missing", tenant.Principal{TenantID: "tenant-1"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetGame_Found(t *testing.T) {
	t.Parallel()

	handler, gameRepo := newGameTestHandler(t)
	seeded, err := gameRepo.Create(context.Background(), "tenant-1", game.Game{
		ID:              "game-1",
		SeasonID:        "season-1",
		DivisionID:      "division-1",
		HomeTeamID:      "team-home",
		AwayTeamID:      "team-away",
		VenueID:         "venue-1",
		Status:          game.StatusScheduled,
		ScheduledStart:  time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
	})
	if err != nil {
		t.Fatalf("seed game: %v", err)
	}

	r := chi.NewRouter()
	registerGameRoutes(r, handler)

	req := newAuthedRequest(http.MethodGet, "/games/"+seeded.ID, tenant.Principal{TenantID: "tenant-1"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetGame_WrongTenantNotVisible(t *testing.T) {
	t.Parallel()

	handler, gameRepo := newGameTestHandler(t)
	seeded, err := gameRepo.Create(context.Background(), "tenant-1", game.Game{
		ID:             "game-1",
		Status:         game.StatusScheduled,
		ScheduledStart: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("seed game: %v", err)
	}

	r := chi.NewRouter()
	registerGameRoutes(r, handler)

	req := newAuthedRequest(http.MethodGet, "/games/"+seeded.ID, tenant.Principal{TenantID: "tenant-2"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for cross-tenant lookup, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetGame_MissingPrincipal(t *testing.T) {
	t.Parallel()

	handler, _ := newGameTestHandler(t)
	r := chi.NewRouter()
	registerGameRoutes(r, handler)

	req := httptest.NewRequest(http.MethodGet, "/games/game-1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}
