package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
	"github.com/riskibarqy/hoopscheduler/internal/icsfeed"
)

// TeamStanding is one team's won-loss record within a season/division,
// derived from completed games. There is no Team entity in this domain;
// TeamID is the opaque string Game.HomeTeamID/AwayTeamID carries.
type TeamStanding struct {
	TeamID            string
	Wins              int
	Losses            int
	Ties              int
	PointsFor         int
	PointsAgainst     int
	PointDifferential int
	WinPercentage     float64
}

// TeamProfile rolls up one team's standing plus its most recent and
// upcoming games.
type TeamProfile struct {
	Standing       TeamStanding
	RecentGames    []game.Game
	UpcomingGames  []game.Game
}

// PublicService serves the unauthenticated, cached read surface: standings,
// schedule, team/game projections, and the ICS calendar feed. It performs
// no writes and carries no tenant-role concerns; those live at the HTTP edge.
type PublicService struct {
	gameRepo  game.Repository
	venueRepo venue.Repository
}

func NewPublicService(gameRepo game.Repository, venueRepo venue.Repository) *PublicService {
	return &PublicService{gameRepo: gameRepo, venueRepo: venueRepo}
}

// Standings computes per-team win/loss records from completed games in a
// season (optionally narrowed to one division), sorted by win percentage
// descending, tiebreak point differential descending.
func (s *PublicService) Standings(ctx context.Context, tenantID, seasonID, divisionID string) ([]TeamStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PublicService.Standings")
	defer span.End()

	tenantID, seasonID = strings.TrimSpace(tenantID), strings.TrimSpace(seasonID)
	if tenantID == "" || seasonID == "" {
		return nil, fmt.Errorf("%w: tenant id and season id are required", ErrInvalidInput)
	}

	games, err := s.gameRepo.List(ctx, tenantID, game.Filter{SeasonID: seasonID, DivisionID: divisionID, Status: game.StatusCompleted})
	if err != nil {
		return nil, fmt.Errorf("list completed games: %w", err)
	}

	byTeam := make(map[string]*TeamStanding)
	get := func(teamID string) *TeamStanding {
		if st, ok := byTeam[teamID]; ok {
			return st
		}
		st := &TeamStanding{TeamID: teamID}
		byTeam[teamID] = st
		return st
	}

	for _, g := range games {
		if g.HomeScore == nil || g.AwayScore == nil {
			continue
		}
		home, away := get(g.HomeTeamID), get(g.AwayTeamID)
		home.PointsFor += *g.HomeScore
		home.PointsAgainst += *g.AwayScore
		away.PointsFor += *g.AwayScore
		away.PointsAgainst += *g.HomeScore

		switch {
		case *g.HomeScore > *g.AwayScore:
			home.Wins++
			away.Losses++
		case *g.HomeScore < *g.AwayScore:
			away.Wins++
			home.Losses++
		default:
			home.Ties++
			away.Ties++
		}
	}

	out := make([]TeamStanding, 0, len(byTeam))
	for _, st := range byTeam {
		st.PointDifferential = st.PointsFor - st.PointsAgainst
		played := st.Wins + st.Losses + st.Ties
		if played == 0 {
			played = 1
		}
		st.WinPercentage = (float64(st.Wins) + 0.5*float64(st.Ties)) / float64(played)
		out = append(out, *st)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].WinPercentage != out[j].WinPercentage {
			return out[i].WinPercentage > out[j].WinPercentage
		}
		if out[i].PointDifferential != out[j].PointDifferential {
			return out[i].PointDifferential > out[j].PointDifferential
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out, nil
}

// Schedule lists games matching a filter, capped at 200 results per the
// public surface's documented limit.
func (s *PublicService) Schedule(ctx context.Context, tenantID string, f game.Filter) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PublicService.Schedule")
	defer span.End()

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 200
	}

	out, err := s.gameRepo.List(ctx, tenantID, f)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return out, nil
}

// Game returns a single game's details.
func (s *PublicService) Game(ctx context.Context, tenantID, gameID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PublicService.Game")
	defer span.End()

	tenantID, gameID = strings.TrimSpace(tenantID), strings.TrimSpace(gameID)
	if tenantID == "" || gameID == "" {
		return game.Game{}, fmt.Errorf("%w: tenant id and game id are required", ErrInvalidInput)
	}

	out, err := s.gameRepo.Get(ctx, tenantID, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	return out, nil
}

// TeamDetail rolls up a team's season standing plus its last 10 completed
// games and next 5 scheduled games.
func (s *PublicService) TeamDetail(ctx context.Context, tenantID, seasonID, teamID string) (TeamProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PublicService.TeamDetail")
	defer span.End()

	tenantID, seasonID, teamID = strings.TrimSpace(tenantID), strings.TrimSpace(seasonID), strings.TrimSpace(teamID)
	if tenantID == "" || seasonID == "" || teamID == "" {
		return TeamProfile{}, fmt.Errorf("%w: tenant id, season id, and team id are required", ErrInvalidInput)
	}

	standings, err := s.Standings(ctx, tenantID, seasonID, "")
	if err != nil {
		return TeamProfile{}, err
	}
	var standing TeamStanding
	for _, st := range standings {
		if st.TeamID == teamID {
			standing = st
			break
		}
	}

	completed, err := s.gameRepo.List(ctx, tenantID, game.Filter{SeasonID: seasonID, TeamID: teamID, Status: game.StatusCompleted})
	if err != nil {
		return TeamProfile{}, fmt.Errorf("list completed games: %w", err)
	}
	sort.Slice(completed, func(i, j int) bool { return completed[i].ScheduledStart.After(completed[j].ScheduledStart) })
	if len(completed) > 10 {
		completed = completed[:10]
	}

	upcoming, err := s.gameRepo.List(ctx, tenantID, game.Filter{SeasonID: seasonID, TeamID: teamID, Status: game.StatusScheduled})
	if err != nil {
		return TeamProfile{}, fmt.Errorf("list upcoming games: %w", err)
	}
	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].ScheduledStart.Before(upcoming[j].ScheduledStart) })
	if len(upcoming) > 5 {
		upcoming = upcoming[:5]
	}

	return TeamProfile{Standing: standing, RecentGames: completed, UpcomingGames: upcoming}, nil
}

// Calendar renders an ICS feed for games matching a filter.
func (s *PublicService) Calendar(ctx context.Context, tenantID string, f game.Filter, tzid string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PublicService.Calendar")
	defer span.End()

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return "", fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}

	games, err := s.gameRepo.List(ctx, tenantID, f)
	if err != nil {
		return "", fmt.Errorf("list games: %w", err)
	}

	venues, err := s.venueRepo.List(ctx, tenantID)
	if err != nil {
		return "", fmt.Errorf("list venues: %w", err)
	}
	venueByID := make(map[string]venue.Venue, len(venues))
	for _, v := range venues {
		venueByID[v.ID] = v
	}

	sources := make([]icsfeed.EventSource, 0, len(games))
	for _, g := range games {
		v := venueByID[g.VenueID]
		sources = append(sources, icsfeed.EventSource{
			Game:         g,
			VenueName:    v.Name,
			VenueAddress: v.AddressLine,
			HomeTeamName: g.HomeTeamID,
			AwayTeamName: g.AwayTeamID,
		})
	}

	feed := icsfeed.NewFeed(tzid)
	return feed.Render(sources), nil
}
