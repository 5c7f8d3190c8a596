package assignment

import "context"

// Repository is the tenant-scoped persistence port for official assignments.
type Repository interface {
	Create(ctx context.Context, tenantID string, a Assignment) (Assignment, error)
	Get(ctx context.Context, tenantID, id string) (Assignment, error)
	ListByGame(ctx context.Context, tenantID, gameID string) ([]Assignment, error)
	ListByOfficial(ctx context.Context, tenantID, officialID string) ([]Assignment, error)
	Update(ctx context.Context, tenantID string, a Assignment) (Assignment, error)
	Delete(ctx context.Context, tenantID, id string) error

	// BulkInsert atomically inserts the assignments produced by one
	// optimizer run.
	BulkInsert(ctx context.Context, tenantID string, assignments []Assignment) ([]Assignment, error)
}
