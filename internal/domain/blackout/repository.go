package blackout

import "context"

// Repository is the tenant-scoped persistence port for blackout dates.
type Repository interface {
	Create(ctx context.Context, tenantID string, b BlackoutDate) (BlackoutDate, error)
	Get(ctx context.Context, tenantID, id string) (BlackoutDate, error)
	ListBySeason(ctx context.Context, tenantID, seasonID string) ([]BlackoutDate, error)
	Update(ctx context.Context, tenantID string, b BlackoutDate) (BlackoutDate, error)
	Delete(ctx context.Context, tenantID, id string) error
}
