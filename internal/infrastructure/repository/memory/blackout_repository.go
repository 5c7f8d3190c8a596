package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/hoopscheduler/internal/domain/blackout"
)

type BlackoutRepository struct {
	mu   sync.RWMutex
	byID map[string]blackout.BlackoutDate
}

func NewBlackoutRepository() *BlackoutRepository {
	return &BlackoutRepository{byID: make(map[string]blackout.BlackoutDate)}
}

func (r *BlackoutRepository) Create(_ context.Context, tenantID string, b blackout.BlackoutDate) (blackout.BlackoutDate, error) {
	b.TenantID = tenantID

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[b.ID] = b
	return b, nil
}

func (r *BlackoutRepository) Get(_ context.Context, tenantID, id string) (blackout.BlackoutDate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok || b.TenantID != tenantID {
		return blackout.BlackoutDate{}, errNotFound
	}
	return b, nil
}

func (r *BlackoutRepository) ListBySeason(_ context.Context, tenantID, seasonID string) ([]blackout.BlackoutDate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]blackout.BlackoutDate, 0)
	for _, b := range r.byID {
		if b.TenantID == tenantID && b.SeasonID == seasonID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BlackoutRepository) Update(_ context.Context, tenantID string, b blackout.BlackoutDate) (blackout.BlackoutDate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[b.ID]
	if !ok || existing.TenantID != tenantID {
		return blackout.BlackoutDate{}, errNotFound
	}
	b.TenantID = tenantID
	r.byID[b.ID] = b
	return b, nil
}

func (r *BlackoutRepository) Delete(_ context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[id]
	if !ok || existing.TenantID != tenantID {
		return errNotFound
	}
	delete(r.byID, id)
	return nil
}
