package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
)

type VenueRepository struct {
	mu           sync.RWMutex
	byID         map[string]venue.Venue
	availByID    map[string]venue.Availability
	availByVenue map[string][]string // venueID -> availability IDs
}

func NewVenueRepository() *VenueRepository {
	return &VenueRepository{
		byID:         make(map[string]venue.Venue),
		availByID:    make(map[string]venue.Availability),
		availByVenue: make(map[string][]string),
	}
}

func (r *VenueRepository) Create(_ context.Context, tenantID string, v venue.Venue) (venue.Venue, error) {
	v.TenantID = tenantID

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[v.ID] = v
	return v, nil
}

func (r *VenueRepository) Get(_ context.Context, tenantID, id string) (venue.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok || v.TenantID != tenantID {
		return venue.Venue{}, errNotFound
	}
	return v, nil
}

func (r *VenueRepository) List(_ context.Context, tenantID string) ([]venue.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]venue.Venue, 0)
	for _, v := range r.byID {
		if v.TenantID == tenantID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *VenueRepository) Update(_ context.Context, tenantID string, v venue.Venue) (venue.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[v.ID]
	if !ok || existing.TenantID != tenantID {
		return venue.Venue{}, errNotFound
	}
	v.TenantID = tenantID
	r.byID[v.ID] = v
	return v, nil
}

func (r *VenueRepository) Delete(_ context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[id]
	if !ok || existing.TenantID != tenantID {
		return errNotFound
	}
	delete(r.byID, id)
	delete(r.availByVenue, id)
	return nil
}

func (r *VenueRepository) ListAvailability(_ context.Context, _, venueID string) ([]venue.Availability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.availByVenue[venueID]
	out := make([]venue.Availability, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.availByID[id])
	}
	return out, nil
}

func (r *VenueRepository) UpsertAvailability(_ context.Context, _ string, a venue.Availability) (venue.Availability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.availByID[a.ID]; !exists {
		r.availByVenue[a.VenueID] = append(r.availByVenue[a.VenueID], a.ID)
	}
	r.availByID[a.ID] = a
	return a, nil
}

func (r *VenueRepository) DeleteAvailability(_ context.Context, _, availabilityID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.availByID[availabilityID]
	if !ok {
		return errNotFound
	}
	delete(r.availByID, availabilityID)

	ids := r.availByVenue[a.VenueID]
	for i, id := range ids {
		if id == availabilityID {
			r.availByVenue[a.VenueID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}
