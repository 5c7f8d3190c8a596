package game

import (
	"context"
	"time"
)

// Filter narrows a List call. Zero values are unconstrained.
type Filter struct {
	SeasonID   string
	DivisionID string
	TeamID     string
	VenueID    string
	Status     Status
	DateFrom   time.Time
	DateTo     time.Time
	Limit      int
}

// Repository is the tenant-scoped persistence port for games.
type Repository interface {
	Create(ctx context.Context, tenantID string, g Game) (Game, error)
	Get(ctx context.Context, tenantID, id string) (Game, error)
	List(ctx context.Context, tenantID string, f Filter) ([]Game, error)
	Update(ctx context.Context, tenantID string, g Game) (Game, error)
	Delete(ctx context.Context, tenantID, id string) error

	// BulkInsert atomically inserts a generated schedule's games, used by
	// the publish step.
	BulkInsert(ctx context.Context, tenantID string, games []Game) ([]Game, error)

	// FindConflictsAt returns non-cancelled games at venueID whose
	// [start, start+duration+buffer) overlaps the proposed window,
	// excluding excludeGameID when non-empty.
	FindConflictsAt(ctx context.Context, tenantID, venueID string, start time.Time, duration, buffer time.Duration, excludeGameID string) ([]Game, error)

	// ExistsForVenue reports whether any non-cancelled game references venueID.
	// Used to refuse venue deletion; replaces the buggy
	// findBySeasonId('', organizationId) call from the source implementation.
	ExistsForVenue(ctx context.Context, tenantID, venueID string) (bool, error)
}
