package scheduler

// Matchup is an ordered pair of teams to play, produced before placement.
type Matchup struct {
	Home       Team
	Away       Team
	DivisionID string
}

const byeTeamID = "__BYE__"

// BuildMatchups constructs the matchup list for one division according to
// algorithm. Division with < 2 teams produces no matchups.
func BuildMatchups(teams []Team, divisionID string, algorithm Algorithm) []Matchup {
	if len(teams) < 2 {
		return nil
	}

	switch algorithm {
	case AlgorithmDoubleRoundRobin:
		single := circleMethod(teams)
		out := make([]Matchup, 0, len(single)*2)
		for _, m := range single {
			out = append(out, Matchup{Home: m.Home, Away: m.Away, DivisionID: divisionID})
			out = append(out, Matchup{Home: m.Away, Away: m.Home, DivisionID: divisionID})
		}
		return out
	case AlgorithmTournament:
		return tournamentBracket(teams, divisionID)
	default:
		ms := circleMethod(teams)
		for i := range ms {
			ms[i].DivisionID = divisionID
		}
		return ms
	}
}

// circleMethod implements the standard round-robin circle method: fix the
// first team, rotate the rest, pair positions front-to-back. Odd team counts
// get a bye placeholder; matchups touching it are dropped.
func circleMethod(teams []Team) []Matchup {
	work := append([]Team(nil), teams...)
	if len(work)%2 == 1 {
		work = append(work, Team{ID: byeTeamID, Name: "BYE"})
	}

	n := len(work)
	rounds := n - 1
	half := n / 2

	var matchups []Matchup
	fixed := work[0]
	rotating := append([]Team(nil), work[1:]...)

	for r := 0; r < rounds; r++ {
		round := make([]Team, 0, n)
		round = append(round, fixed)
		round = append(round, rotating...)

		for i := 0; i < half; i++ {
			home := round[i]
			away := round[n-1-i]
			if home.ID == byeTeamID || away.ID == byeTeamID {
				continue
			}
			// Alternate home/away across rounds for fairness.
			if r%2 == 0 {
				matchups = append(matchups, Matchup{Home: home, Away: away})
			} else {
				matchups = append(matchups, Matchup{Home: away, Away: home})
			}
		}

		rotating = append(rotating[len(rotating)-1:], rotating[:len(rotating)-1]...)
	}

	return matchups
}

// tournamentBracket produces a single-elimination round-one pairing sized to
// the next power of two, with byes assigned to the top seeds (the input
// order is taken as seed order).
func tournamentBracket(teams []Team, divisionID string) []Matchup {
	size := nextPowerOfTwo(len(teams))
	seeded := append([]Team(nil), teams...)
	for len(seeded) < size {
		seeded = append(seeded, Team{ID: byeTeamID, Name: "BYE"})
	}

	var matchups []Matchup
	for i := 0; i < size/2; i++ {
		home := seeded[i]
		away := seeded[size-1-i]
		if home.ID == byeTeamID || away.ID == byeTeamID {
			continue
		}
		matchups = append(matchups, Matchup{Home: home, Away: away, DivisionID: divisionID})
	}
	return matchups
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
