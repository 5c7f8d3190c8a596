package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
)

func TestGenerate_TinyRoundRobin(t *testing.T) {
	teams := []Team{
		{ID: "A", Name: "A", DivisionID: "D1"},
		{ID: "B", Name: "B", DivisionID: "D1"},
		{ID: "C", Name: "C", DivisionID: "D1"},
		{ID: "D", Name: "D", DivisionID: "D1"},
	}

	venues := map[string]venue.Venue{
		"V1": {ID: "V1", Name: "V1", Type: venue.TypeIndoor, Active: true},
	}

	req := Request{
		SeasonStart: time.Date(2024, 7, 6, 0, 0, 0, 0, time.UTC),
		SeasonEnd:   time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC),
		Location:    time.UTC,
		Divisions:   []Division{{ID: "D1", Teams: teams}},
		Venues:      venues,
		Params: Params{
			Algorithm:           AlgorithmRoundRobin,
			PreferredDays:       []time.Weekday{time.Saturday},
			PreferredTimes:      []string{"09:00", "11:00"},
			GameDurationMinutes: 90,
			BufferMinutes:       30,
			MaxConcurrentWorkers: 5,
		},
	}

	gen := NewGenerator(nil)
	result, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 6, result.Stats.TotalGames)
	assert.Equal(t, 6, result.Stats.Scheduled)
	assert.Equal(t, 6, result.Stats.VenueUtilization["V1"])
	assert.Empty(t, result.Warnings)

	for _, g := range result.Games {
		for _, c := range g.Conflicts {
			assert.NotEqual(t, "VENUE_DOUBLE_BOOKING", string(c.Type))
		}
	}
}

func TestBuildMatchups_OddTeamCountDropsByeGames(t *testing.T) {
	teams := []Team{{ID: "A"}, {ID: "B"}, {ID: "C"}}
	matchups := BuildMatchups(teams, "D1", AlgorithmRoundRobin)
	assert.Len(t, matchups, 3)
}

func TestBuildMatchups_DoubleRoundRobinDoublesCount(t *testing.T) {
	teams := []Team{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}}
	single := BuildMatchups(teams, "D1", AlgorithmRoundRobin)
	double := BuildMatchups(teams, "D1", AlgorithmDoubleRoundRobin)
	assert.Len(t, double, len(single)*2)
}

func TestEnumerateSlots_FiltersToPreferredDays(t *testing.T) {
	slots := EnumerateSlots(
		time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC),
		[]time.Weekday{time.Saturday},
		[]string{"09:00"},
		time.UTC,
	)
	for _, s := range slots {
		assert.Equal(t, time.Saturday, s.Start.Weekday())
	}
	assert.Len(t, slots, 2)
}
