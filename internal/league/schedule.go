package league

import (
	"errors"
	"fmt"
)

var ErrInvalidTeamCount = errors.New("team count must be even and at least 2")

// GenerateRoundRobin builds a single round-robin with the circle method: teams[0]
// stays fixed and the rest rotate one position per round. Position i plays
// position n-1-i, the lower position at home.
func GenerateRoundRobin(teams []string) ([][]Fixture, error) {
	n := len(teams)
	if n < 2 || n%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTeamCount, n)
	}

	order := make([]string, n)
	copy(order, teams)

	rounds := make([][]Fixture, 0, n-1)
	for r := 0; r < n-1; r++ {
		round := make([]Fixture, 0, n/2)
		for i := 0; i < n/2; i++ {
			round = append(round, Fixture{Home: order[i], Away: order[n-1-i]})
		}
		rounds = append(rounds, round)

		last := order[n-1]
		copy(order[2:], order[1:n-1])
		order[1] = last
	}
	return rounds, nil
}

// GenerateSeason returns the double round-robin: the single round-robin followed
// by the same rounds with home and away swapped.
func GenerateSeason(teams []string) ([][]Fixture, error) {
	firstHalf, err := GenerateRoundRobin(teams)
	if err != nil {
		return nil, err
	}

	season := make([][]Fixture, 0, 2*len(firstHalf))
	season = append(season, firstHalf...)
	for _, round := range firstHalf {
		mirrored := make([]Fixture, len(round))
		for i, f := range round {
			mirrored[i] = Fixture{Home: f.Away, Away: f.Home}
		}
		season = append(season, mirrored)
	}
	return season, nil
}

// MatchID derives the stable id of the fixture at position pos of the zero-based
// round roundIdx.
func MatchID(roundIdx, pos, perRound int) int {
	return roundIdx*perRound + pos + 1
}
