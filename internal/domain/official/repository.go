package official

import "context"

// Repository is the tenant-scoped persistence port for officials and their
// availability rules.
type Repository interface {
	Create(ctx context.Context, tenantID string, o Official) (Official, error)
	Get(ctx context.Context, tenantID, id string) (Official, error)
	List(ctx context.Context, tenantID string) ([]Official, error)
	Update(ctx context.Context, tenantID string, o Official) (Official, error)
	Delete(ctx context.Context, tenantID, id string) error

	ListAvailability(ctx context.Context, tenantID, officialID string) ([]Availability, error)
	UpsertAvailability(ctx context.Context, tenantID string, a Availability) (Availability, error)
	DeleteAvailability(ctx context.Context, tenantID, availabilityID string) error
}
