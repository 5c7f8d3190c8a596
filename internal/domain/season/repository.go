package season

import "context"

// Filter narrows a List call. Zero values are unconstrained.
type Filter struct {
	LeagueID string
	Status   Status
}

// Repository is the tenant-scoped persistence port for seasons.
type Repository interface {
	Create(ctx context.Context, tenantID string, s Season) (Season, error)
	Get(ctx context.Context, tenantID, id string) (Season, error)
	List(ctx context.Context, tenantID string, f Filter) ([]Season, error)
	Update(ctx context.Context, tenantID string, s Season) (Season, error)
	Delete(ctx context.Context, tenantID, id string) error
}
