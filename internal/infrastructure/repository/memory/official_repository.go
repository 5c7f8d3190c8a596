package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/hoopscheduler/internal/domain/official"
)

type OfficialRepository struct {
	mu           sync.RWMutex
	byID         map[string]official.Official
	availByID    map[string]official.Availability
	availByOff   map[string][]string // officialID -> availability IDs
}

func NewOfficialRepository() *OfficialRepository {
	return &OfficialRepository{
		byID:       make(map[string]official.Official),
		availByID:  make(map[string]official.Availability),
		availByOff: make(map[string][]string),
	}
}

func (r *OfficialRepository) Create(_ context.Context, tenantID string, o official.Official) (official.Official, error) {
	o.TenantID = tenantID

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[o.ID] = o
	return o, nil
}

func (r *OfficialRepository) Get(_ context.Context, tenantID, id string) (official.Official, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok || o.TenantID != tenantID {
		return official.Official{}, errNotFound
	}
	return o, nil
}

func (r *OfficialRepository) List(_ context.Context, tenantID string) ([]official.Official, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]official.Official, 0)
	for _, o := range r.byID {
		if o.TenantID == tenantID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *OfficialRepository) Update(_ context.Context, tenantID string, o official.Official) (official.Official, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[o.ID]
	if !ok || existing.TenantID != tenantID {
		return official.Official{}, errNotFound
	}
	o.TenantID = tenantID
	r.byID[o.ID] = o
	return o, nil
}

func (r *OfficialRepository) Delete(_ context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[id]
	if !ok || existing.TenantID != tenantID {
		return errNotFound
	}
	delete(r.byID, id)
	delete(r.availByOff, id)
	return nil
}

func (r *OfficialRepository) ListAvailability(_ context.Context, _, officialID string) ([]official.Availability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.availByOff[officialID]
	out := make([]official.Availability, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.availByID[id])
	}
	return out, nil
}

func (r *OfficialRepository) UpsertAvailability(_ context.Context, _ string, a official.Availability) (official.Availability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.availByID[a.ID]; !exists {
		r.availByOff[a.OfficialID] = append(r.availByOff[a.OfficialID], a.ID)
	}
	r.availByID[a.ID] = a
	return a, nil
}

func (r *OfficialRepository) DeleteAvailability(_ context.Context, _, availabilityID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.availByID[availabilityID]
	if !ok {
		return errNotFound
	}
	delete(r.availByID, availabilityID)

	ids := r.availByOff[a.OfficialID]
	for i, id := range ids {
		if id == availabilityID {
			r.availByOff[a.OfficialID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}
