package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return parsed
}

func TestDetector_TeamDoubleBooking(t *testing.T) {
	d := NewDetector(DefaultConfig())

	g1 := game.Game{ID: "G1", HomeTeamID: "A", AwayTeamID: "B", VenueID: "V1", ScheduledStart: mustTime(t, "2024-07-06 09:00"), DurationMinutes: 90, Status: game.StatusScheduled}
	g2 := game.Game{ID: "G2", HomeTeamID: "A", AwayTeamID: "C", VenueID: "V2", ScheduledStart: mustTime(t, "2024-07-06 10:00"), DurationMinutes: 90, Status: game.StatusScheduled}

	venues := map[string]venue.Venue{
		"V1": {ID: "V1", Type: venue.TypeIndoor},
		"V2": {ID: "V2", Type: venue.TypeIndoor},
	}

	conflicts := d.Detect(Input{Games: []game.Game{g1, g2}, Venues: venues, Now: time.Now()})

	var teamConflicts []Conflict
	for _, c := range conflicts {
		if c.Type == TypeTeamDoubleBooking {
			teamConflicts = append(teamConflicts, c)
		}
	}
	require.Len(t, teamConflicts, 1)
	assert.Equal(t, SeverityCritical, teamConflicts[0].Severity)
	assert.Equal(t, 60, teamConflicts[0].Metadata["overlap_minutes"])
}

func TestDetector_RescheduleRejected(t *testing.T) {
	d := NewDetector(DefaultConfig())

	g1 := game.Game{ID: "G1", HomeTeamID: "A", AwayTeamID: "B", VenueID: "V1", ScheduledStart: mustTime(t, "2024-07-06 09:00"), DurationMinutes: 90, Status: game.StatusScheduled}
	g2Proposed := game.Game{ID: "G2", HomeTeamID: "A", AwayTeamID: "C", VenueID: "V1", ScheduledStart: mustTime(t, "2024-07-06 09:30"), DurationMinutes: 90, Status: game.StatusScheduled}

	venues := map[string]venue.Venue{"V1": {ID: "V1", Type: venue.TypeIndoor}}

	conflicts := d.DetectGameConflicts(g2Proposed, []game.Game{g1}, venues, nil)

	types := map[Type]bool{}
	for _, c := range conflicts {
		types[c.Type] = true
	}
	assert.True(t, types[TypeVenueDoubleBooking])
	assert.True(t, types[TypeTeamDoubleBooking])
}

func TestDetector_SortBySeverityThenTime(t *testing.T) {
	now := time.Now()
	conflicts := []Conflict{
		{Type: TypeInsufficientRest, Severity: SeverityMedium, ScheduledTime: now.Add(time.Hour), inputOrder: 0},
		{Type: TypeTeamDoubleBooking, Severity: SeverityCritical, ScheduledTime: now.Add(2 * time.Hour), inputOrder: 1},
		{Type: TypeVenueDoubleBooking, Severity: SeverityHigh, ScheduledTime: now, inputOrder: 2},
	}
	Sort(conflicts)
	require.Len(t, conflicts, 3)
	assert.Equal(t, SeverityCritical, conflicts[0].Severity)
	assert.Equal(t, SeverityHigh, conflicts[1].Severity)
	assert.Equal(t, SeverityMedium, conflicts[2].Severity)
}

func TestEstimateTravelMinutes_NoGeoFallsBackToFlatEstimate(t *testing.T) {
	cfg := DefaultConfig()
	got := EstimateTravelMinutes(venue.Venue{ID: "V1"}, venue.Venue{ID: "V2"}, cfg)
	assert.Equal(t, 30*time.Minute, got)
}

func TestEstimateTravelMinutes_SameVenueIsZero(t *testing.T) {
	cfg := DefaultConfig()
	v := venue.Venue{ID: "V1"}
	assert.Equal(t, time.Duration(0), EstimateTravelMinutes(v, v, cfg))
}
