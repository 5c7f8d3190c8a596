package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
)

type GameRepository struct {
	mu   sync.RWMutex
	byID map[string]game.Game
}

func NewGameRepository() *GameRepository {
	return &GameRepository{byID: make(map[string]game.Game)}
}

func (r *GameRepository) Create(_ context.Context, tenantID string, g game.Game) (game.Game, error) {
	g.TenantID = tenantID

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[g.ID] = g
	return g, nil
}

func (r *GameRepository) Get(_ context.Context, tenantID, id string) (game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byID[id]
	if !ok || g.TenantID != tenantID {
		return game.Game{}, errNotFound
	}
	return g, nil
}

func (r *GameRepository) List(_ context.Context, tenantID string, f game.Filter) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, g := range r.byID {
		if g.TenantID != tenantID {
			continue
		}
		if f.SeasonID != "" && g.SeasonID != f.SeasonID {
			continue
		}
		if f.DivisionID != "" && g.DivisionID != f.DivisionID {
			continue
		}
		if f.TeamID != "" && g.HomeTeamID != f.TeamID && g.AwayTeamID != f.TeamID {
			continue
		}
		if f.VenueID != "" && g.VenueID != f.VenueID {
			continue
		}
		if f.Status != "" && g.Status != f.Status {
			continue
		}
		if !f.DateFrom.IsZero() && g.ScheduledStart.Before(f.DateFrom) {
			continue
		}
		if !f.DateTo.IsZero() && g.ScheduledStart.After(f.DateTo) {
			continue
		}
		out = append(out, g)
	}

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *GameRepository) Update(_ context.Context, tenantID string, g game.Game) (game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[g.ID]
	if !ok || existing.TenantID != tenantID {
		return game.Game{}, errNotFound
	}
	g.TenantID = tenantID
	r.byID[g.ID] = g
	return g, nil
}

func (r *GameRepository) Delete(_ context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[id]
	if !ok || existing.TenantID != tenantID {
		return errNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *GameRepository) BulkInsert(_ context.Context, tenantID string, games []game.Game) ([]game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]game.Game, 0, len(games))
	for _, g := range games {
		g.TenantID = tenantID
		r.byID[g.ID] = g
		out = append(out, g)
	}
	return out, nil
}

func (r *GameRepository) FindConflictsAt(_ context.Context, tenantID, venueID string, start time.Time, duration, buffer time.Duration, excludeGameID string) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	windowEnd := start.Add(duration + buffer)

	out := make([]game.Game, 0)
	for _, g := range r.byID {
		if g.TenantID != tenantID || g.VenueID != venueID || g.ID == excludeGameID {
			continue
		}
		if g.Status == game.StatusCancelled {
			continue
		}
		gStart, gEnd := g.WindowWithBuffer(buffer)
		if gStart.Before(windowEnd) && start.Before(gEnd) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *GameRepository) ExistsForVenue(_ context.Context, tenantID, venueID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.byID {
		if g.TenantID == tenantID && g.VenueID == venueID && g.Status != game.StatusCancelled {
			return true, nil
		}
	}
	return false, nil
}
