// Package cache wraps the postgres repositories with a read-through cache
// for the public, high-traffic lookups (season/division/venue/official/game),
// invalidating on every write.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/domain/blackout"
	"github.com/riskibarqy/hoopscheduler/internal/domain/division"
	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/domain/official"
	"github.com/riskibarqy/hoopscheduler/internal/domain/season"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
	basecache "github.com/riskibarqy/hoopscheduler/internal/platform/cache"
)

const defaultTTL = 0 // defer to the store's own default

type SeasonRepository struct {
	next  season.Repository
	cache basecache.Interface
}

func NewSeasonRepository(next season.Repository, cache basecache.Interface) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) Create(ctx context.Context, tenantID string, s season.Season) (season.Season, error) {
	out, err := r.next.Create(ctx, tenantID, s)
	if err != nil {
		return season.Season{}, err
	}
	r.cache.DeletePrefix(ctx, seasonListPrefix(tenantID))
	return out, nil
}

func (r *SeasonRepository) Get(ctx context.Context, tenantID, id string) (season.Season, error) {
	key := seasonByIDKey(tenantID, id)
	v, err := r.cache.GetOrLoad(ctx, key, defaultTTL, func(ctx context.Context) (any, error) {
		return r.next.Get(ctx, tenantID, id)
	})
	if err != nil {
		return season.Season{}, err
	}
	out, _ := v.(season.Season)
	return out, nil
}

func (r *SeasonRepository) List(ctx context.Context, tenantID string, f season.Filter) ([]season.Season, error) {
	key := seasonListPrefix(tenantID) + string(f.Status) + ":" + f.LeagueID
	v, err := r.cache.GetOrLoad(ctx, key, defaultTTL, func(ctx context.Context) (any, error) {
		return r.next.List(ctx, tenantID, f)
	})
	if err != nil {
		return nil, err
	}
	out, _ := v.([]season.Season)
	return append([]season.Season(nil), out...), nil
}

func (r *SeasonRepository) Update(ctx context.Context, tenantID string, s season.Season) (season.Season, error) {
	out, err := r.next.Update(ctx, tenantID, s)
	if err != nil {
		return season.Season{}, err
	}
	r.cache.Delete(ctx, seasonByIDKey(tenantID, s.ID))
	r.cache.DeletePrefix(ctx, seasonListPrefix(tenantID))
	return out, nil
}

func (r *SeasonRepository) Delete(ctx context.Context, tenantID, id string) error {
	if err := r.next.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	r.cache.Delete(ctx, seasonByIDKey(tenantID, id))
	r.cache.DeletePrefix(ctx, seasonListPrefix(tenantID))
	return nil
}

func seasonByIDKey(tenantID, id string) string { return "season:id:" + tenantID + ":" + id }
func seasonListPrefix(tenantID string) string  { return "season:list:" + tenantID + ":" }

type DivisionRepository struct {
	next  division.Repository
	cache basecache.Interface
}

func NewDivisionRepository(next division.Repository, cache basecache.Interface) *DivisionRepository {
	return &DivisionRepository{next: next, cache: cache}
}

func (r *DivisionRepository) Create(ctx context.Context, tenantID string, d division.Division) (division.Division, error) {
	out, err := r.next.Create(ctx, tenantID, d)
	if err != nil {
		return division.Division{}, err
	}
	r.cache.DeletePrefix(ctx, divisionListKey(tenantID, d.SeasonID))
	return out, nil
}

func (r *DivisionRepository) Get(ctx context.Context, tenantID, id string) (division.Division, error) {
	key := divisionByIDKey(tenantID, id)
	v, err := r.cache.GetOrLoad(ctx, key, defaultTTL, func(ctx context.Context) (any, error) {
		return r.next.Get(ctx, tenantID, id)
	})
	if err != nil {
		return division.Division{}, err
	}
	out, _ := v.(division.Division)
	return out, nil
}

func (r *DivisionRepository) ListBySeason(ctx context.Context, tenantID, seasonID string) ([]division.Division, error) {
	key := divisionListKey(tenantID, seasonID)
	v, err := r.cache.GetOrLoad(ctx, key, defaultTTL, func(ctx context.Context) (any, error) {
		return r.next.ListBySeason(ctx, tenantID, seasonID)
	})
	if err != nil {
		return nil, err
	}
	out, _ := v.([]division.Division)
	return append([]division.Division(nil), out...), nil
}

func (r *DivisionRepository) Update(ctx context.Context, tenantID string, d division.Division) (division.Division, error) {
	out, err := r.next.Update(ctx, tenantID, d)
	if err != nil {
		return division.Division{}, err
	}
	r.cache.Delete(ctx, divisionByIDKey(tenantID, d.ID))
	r.cache.DeletePrefix(ctx, divisionListKey(tenantID, d.SeasonID))
	return out, nil
}

func (r *DivisionRepository) Delete(ctx context.Context, tenantID, id string) error {
	if err := r.next.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	r.cache.Delete(ctx, divisionByIDKey(tenantID, id))
	r.cache.DeletePrefix(ctx, divisionListKey(tenantID, ""))
	return nil
}

func divisionByIDKey(tenantID, id string) string {
	return "division:id:" + tenantID + ":" + id
}

func divisionListKey(tenantID, seasonID string) string {
	return "division:list:" + tenantID + ":" + seasonID
}

type VenueRepository struct {
	next  venue.Repository
	cache basecache.Interface
}

func NewVenueRepository(next venue.Repository, cache basecache.Interface) *VenueRepository {
	return &VenueRepository{next: next, cache: cache}
}

func (r *VenueRepository) Create(ctx context.Context, tenantID string, v venue.Venue) (venue.Venue, error) {
	out, err := r.next.Create(ctx, tenantID, v)
	if err != nil {
		return venue.Venue{}, err
	}
	r.cache.DeletePrefix(ctx, venueListKey(tenantID))
	return out, nil
}

func (r *VenueRepository) Get(ctx context.Context, tenantID, id string) (venue.Venue, error) {
	key := venueByIDKey(tenantID, id)
	v, err := r.cache.GetOrLoad(ctx, key, defaultTTL, func(ctx context.Context) (any, error) {
		return r.next.Get(ctx, tenantID, id)
	})
	if err != nil {
		return venue.Venue{}, err
	}
	out, _ := v.(venue.Venue)
	return out, nil
}

func (r *VenueRepository) List(ctx context.Context, tenantID string) ([]venue.Venue, error) {
	key := venueListKey(tenantID)
	v, err := r.cache.GetOrLoad(ctx, key, defaultTTL, func(ctx context.Context) (any, error) {
		return r.next.List(ctx, tenantID)
	})
	if err != nil {
		return nil, err
	}
	out, _ := v.([]venue.Venue)
	return append([]venue.Venue(nil), out...), nil
}

func (r *VenueRepository) Update(ctx context.Context, tenantID string, v venue.Venue) (venue.Venue, error) {
	out, err := r.next.Update(ctx, tenantID, v)
	if err != nil {
		return venue.Venue{}, err
	}
	r.cache.Delete(ctx, venueByIDKey(tenantID, v.ID))
	r.cache.Delete(ctx, venueListKey(tenantID))
	return out, nil
}

func (r *VenueRepository) Delete(ctx context.Context, tenantID, id string) error {
	if err := r.next.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	r.cache.Delete(ctx, venueByIDKey(tenantID, id))
	r.cache.Delete(ctx, venueListKey(tenantID))
	return nil
}

// Availability reads/writes pass straight through: they are always scoped
// by venue id already and change far more often than the venue record itself.
func (r *VenueRepository) ListAvailability(ctx context.Context, tenantID, venueID string) ([]venue.Availability, error) {
	return r.next.ListAvailability(ctx, tenantID, venueID)
}

func (r *VenueRepository) UpsertAvailability(ctx context.Context, tenantID string, a venue.Availability) (venue.Availability, error) {
	return r.next.UpsertAvailability(ctx, tenantID, a)
}

func (r *VenueRepository) DeleteAvailability(ctx context.Context, tenantID, availabilityID string) error {
	return r.next.DeleteAvailability(ctx, tenantID, availabilityID)
}

func venueByIDKey(tenantID, id string) string { return "venue:id:" + tenantID + ":" + id }
func venueListKey(tenantID string) string     { return "venue:list:" + tenantID }

type OfficialRepository struct {
	next  official.Repository
	cache basecache.Interface
}

func NewOfficialRepository(next official.Repository, cache basecache.Interface) *OfficialRepository {
	return &OfficialRepository{next: next, cache: cache}
}

func (r *OfficialRepository) Create(ctx context.Context, tenantID string, o official.Official) (official.Official, error) {
	out, err := r.next.Create(ctx, tenantID, o)
	if err != nil {
		return official.Official{}, err
	}
	r.cache.DeletePrefix(ctx, officialListKey(tenantID))
	return out, nil
}

func (r *OfficialRepository) Get(ctx context.Context, tenantID, id string) (official.Official, error) {
	key := officialByIDKey(tenantID, id)
	v, err := r.cache.GetOrLoad(ctx, key, defaultTTL, func(ctx context.Context) (any, error) {
		return r.next.Get(ctx, tenantID, id)
	})
	if err != nil {
		return official.Official{}, err
	}
	out, _ := v.(official.Official)
	return out, nil
}

func (r *OfficialRepository) List(ctx context.Context, tenantID string) ([]official.Official, error) {
	key := officialListKey(tenantID)
	v, err := r.cache.GetOrLoad(ctx, key, defaultTTL, func(ctx context.Context) (any, error) {
		return r.next.List(ctx, tenantID)
	})
	if err != nil {
		return nil, err
	}
	out, _ := v.([]official.Official)
	return append([]official.Official(nil), out...), nil
}

func (r *OfficialRepository) Update(ctx context.Context, tenantID string, o official.Official) (official.Official, error) {
	out, err := r.next.Update(ctx, tenantID, o)
	if err != nil {
		return official.Official{}, err
	}
	r.cache.Delete(ctx, officialByIDKey(tenantID, o.ID))
	r.cache.Delete(ctx, officialListKey(tenantID))
	return out, nil
}

func (r *OfficialRepository) Delete(ctx context.Context, tenantID, id string) error {
	if err := r.next.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	r.cache.Delete(ctx, officialByIDKey(tenantID, id))
	r.cache.Delete(ctx, officialListKey(tenantID))
	return nil
}

func (r *OfficialRepository) ListAvailability(ctx context.Context, tenantID, officialID string) ([]official.Availability, error) {
	return r.next.ListAvailability(ctx, tenantID, officialID)
}

func (r *OfficialRepository) UpsertAvailability(ctx context.Context, tenantID string, a official.Availability) (official.Availability, error) {
	return r.next.UpsertAvailability(ctx, tenantID, a)
}

func (r *OfficialRepository) DeleteAvailability(ctx context.Context, tenantID, availabilityID string) error {
	return r.next.DeleteAvailability(ctx, tenantID, availabilityID)
}

func officialByIDKey(tenantID, id string) string { return "official:id:" + tenantID + ":" + id }
func officialListKey(tenantID string) string     { return "official:list:" + tenantID }

// GameRepository caches Get/List only. Writes go straight through and then
// blow away every cached list for the tenant, since game lists are sliced
// by season/division/team/venue/status/date range in ways too varied to
// invalidate surgically.
type GameRepository struct {
	next  game.Repository
	cache basecache.Interface
}

func NewGameRepository(next game.Repository, cache basecache.Interface) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) Create(ctx context.Context, tenantID string, g game.Game) (game.Game, error) {
	out, err := r.next.Create(ctx, tenantID, g)
	if err != nil {
		return game.Game{}, err
	}
	r.cache.DeletePrefix(ctx, gameListPrefix(tenantID))
	return out, nil
}

func (r *GameRepository) Get(ctx context.Context, tenantID, id string) (game.Game, error) {
	key := gameByIDKey(tenantID, id)
	v, err := r.cache.GetOrLoad(ctx, key, defaultTTL, func(ctx context.Context) (any, error) {
		return r.next.Get(ctx, tenantID, id)
	})
	if err != nil {
		return game.Game{}, err
	}
	out, _ := v.(game.Game)
	return out, nil
}

func (r *GameRepository) List(ctx context.Context, tenantID string, f game.Filter) ([]game.Game, error) {
	key := gameListPrefix(tenantID) + gameFilterKey(f)
	v, err := r.cache.GetOrLoad(ctx, key, defaultTTL, func(ctx context.Context) (any, error) {
		return r.next.List(ctx, tenantID, f)
	})
	if err != nil {
		return nil, err
	}
	out, _ := v.([]game.Game)
	return append([]game.Game(nil), out...), nil
}

func (r *GameRepository) Update(ctx context.Context, tenantID string, g game.Game) (game.Game, error) {
	out, err := r.next.Update(ctx, tenantID, g)
	if err != nil {
		return game.Game{}, err
	}
	r.cache.Delete(ctx, gameByIDKey(tenantID, g.ID))
	r.cache.DeletePrefix(ctx, gameListPrefix(tenantID))
	return out, nil
}

func (r *GameRepository) Delete(ctx context.Context, tenantID, id string) error {
	if err := r.next.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	r.cache.Delete(ctx, gameByIDKey(tenantID, id))
	r.cache.DeletePrefix(ctx, gameListPrefix(tenantID))
	return nil
}

func (r *GameRepository) BulkInsert(ctx context.Context, tenantID string, games []game.Game) ([]game.Game, error) {
	out, err := r.next.BulkInsert(ctx, tenantID, games)
	if err != nil {
		return nil, err
	}
	r.cache.DeletePrefix(ctx, gameListPrefix(tenantID))
	return out, nil
}

func (r *GameRepository) FindConflictsAt(ctx context.Context, tenantID, venueID string, start time.Time, duration, buffer time.Duration, excludeGameID string) ([]game.Game, error) {
	return r.next.FindConflictsAt(ctx, tenantID, venueID, start, duration, buffer, excludeGameID)
}

func (r *GameRepository) ExistsForVenue(ctx context.Context, tenantID, venueID string) (bool, error) {
	return r.next.ExistsForVenue(ctx, tenantID, venueID)
}

func gameByIDKey(tenantID, id string) string { return "game:id:" + tenantID + ":" + id }
func gameListPrefix(tenantID string) string  { return "game:list:" + tenantID + ":" }

func gameFilterKey(f game.Filter) string {
	return f.SeasonID + ":" + f.DivisionID + ":" + f.TeamID + ":" + f.VenueID + ":" +
		string(f.Status) + ":" + f.DateFrom.UTC().Format(time.RFC3339) + ":" +
		f.DateTo.UTC().Format(time.RFC3339) + ":" + strconv.Itoa(f.Limit)
}

// BlackoutRepository is a pass-through: blackout dates are edited rarely but
// read on the hot path of schedule generation, where a stale cache hit would
// silently relax an operator-set constraint. Correctness wins over latency
// here, so no cache sits in front of blackout.Repository.
type BlackoutRepository struct {
	next blackout.Repository
}

func NewBlackoutRepository(next blackout.Repository) *BlackoutRepository {
	return &BlackoutRepository{next: next}
}

func (r *BlackoutRepository) Create(ctx context.Context, tenantID string, b blackout.BlackoutDate) (blackout.BlackoutDate, error) {
	return r.next.Create(ctx, tenantID, b)
}

func (r *BlackoutRepository) Get(ctx context.Context, tenantID, id string) (blackout.BlackoutDate, error) {
	return r.next.Get(ctx, tenantID, id)
}

func (r *BlackoutRepository) ListBySeason(ctx context.Context, tenantID, seasonID string) ([]blackout.BlackoutDate, error) {
	return r.next.ListBySeason(ctx, tenantID, seasonID)
}

func (r *BlackoutRepository) Update(ctx context.Context, tenantID string, b blackout.BlackoutDate) (blackout.BlackoutDate, error) {
	return r.next.Update(ctx, tenantID, b)
}

func (r *BlackoutRepository) Delete(ctx context.Context, tenantID, id string) error {
	return r.next.Delete(ctx, tenantID, id)
}
