package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/hoopscheduler/internal/domain/schedulelog"
)

type ScheduleLogRepository struct {
	mu   sync.RWMutex
	byID map[string]schedulelog.Log
}

func NewScheduleLogRepository() *ScheduleLogRepository {
	return &ScheduleLogRepository{byID: make(map[string]schedulelog.Log)}
}

func (r *ScheduleLogRepository) Create(_ context.Context, tenantID string, l schedulelog.Log) (schedulelog.Log, error) {
	l.TenantID = tenantID

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[l.ID] = l
	return l, nil
}

func (r *ScheduleLogRepository) ListBySeason(_ context.Context, tenantID, seasonID string) ([]schedulelog.Log, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedulelog.Log, 0)
	for _, l := range r.byID {
		if l.TenantID == tenantID && l.SeasonID == seasonID {
			out = append(out, l)
		}
	}
	return out, nil
}
