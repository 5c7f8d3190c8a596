package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/hoopscheduler/internal/domain/assignment"
)

type AssignmentRepository struct {
	mu   sync.RWMutex
	byID map[string]assignment.Assignment
}

func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{byID: make(map[string]assignment.Assignment)}
}

func (r *AssignmentRepository) Create(_ context.Context, tenantID string, a assignment.Assignment) (assignment.Assignment, error) {
	a.TenantID = tenantID

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[a.ID] = a
	return a, nil
}

func (r *AssignmentRepository) Get(_ context.Context, tenantID, id string) (assignment.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok || a.TenantID != tenantID {
		return assignment.Assignment{}, errNotFound
	}
	return a, nil
}

func (r *AssignmentRepository) ListByGame(_ context.Context, tenantID, gameID string) ([]assignment.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignment.Assignment, 0)
	for _, a := range r.byID {
		if a.TenantID == tenantID && a.GameID == gameID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AssignmentRepository) ListByOfficial(_ context.Context, tenantID, officialID string) ([]assignment.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignment.Assignment, 0)
	for _, a := range r.byID {
		if a.TenantID == tenantID && a.OfficialID == officialID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AssignmentRepository) Update(_ context.Context, tenantID string, a assignment.Assignment) (assignment.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[a.ID]
	if !ok || existing.TenantID != tenantID {
		return assignment.Assignment{}, errNotFound
	}
	a.TenantID = tenantID
	r.byID[a.ID] = a
	return a, nil
}

func (r *AssignmentRepository) Delete(_ context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[id]
	if !ok || existing.TenantID != tenantID {
		return errNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *AssignmentRepository) BulkInsert(_ context.Context, tenantID string, assignments []assignment.Assignment) ([]assignment.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]assignment.Assignment, 0, len(assignments))
	for _, a := range assignments {
		a.TenantID = tenantID
		r.byID[a.ID] = a
		out = append(out, a)
	}
	return out, nil
}
