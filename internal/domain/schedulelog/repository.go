package schedulelog

import "context"

// Repository is the tenant-scoped persistence port for generation audit logs.
type Repository interface {
	Create(ctx context.Context, tenantID string, l Log) (Log, error)
	ListBySeason(ctx context.Context, tenantID, seasonID string) ([]Log, error)
}
