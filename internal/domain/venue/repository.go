package venue

import "context"

// Repository is the tenant-scoped persistence port for venues and their
// weekly availability rules.
type Repository interface {
	Create(ctx context.Context, tenantID string, v Venue) (Venue, error)
	Get(ctx context.Context, tenantID, id string) (Venue, error)
	List(ctx context.Context, tenantID string) ([]Venue, error)
	Update(ctx context.Context, tenantID string, v Venue) (Venue, error)
	// Delete is refused by the caller if game.Repository.ExistsForVenue returns true.
	Delete(ctx context.Context, tenantID, id string) error

	ListAvailability(ctx context.Context, tenantID, venueID string) ([]Availability, error)
	UpsertAvailability(ctx context.Context, tenantID string, a Availability) (Availability, error)
	DeleteAvailability(ctx context.Context, tenantID, availabilityID string) error
}
