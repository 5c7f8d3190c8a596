package division

import "context"

// Repository is the tenant-scoped persistence port for divisions.
type Repository interface {
	Create(ctx context.Context, tenantID string, d Division) (Division, error)
	Get(ctx context.Context, tenantID, id string) (Division, error)
	ListBySeason(ctx context.Context, tenantID, seasonID string) ([]Division, error)
	Update(ctx context.Context, tenantID string, d Division) (Division, error)
	Delete(ctx context.Context, tenantID, id string) error
}
