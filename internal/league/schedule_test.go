package league

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Team %02d", i+1)
	}
	return names
}

func TestGenerateSeason(t *testing.T) {
	for n := 2; n <= 20; n += 2 {
		t.Run(fmt.Sprintf("%d teams", n), func(t *testing.T) {
			teams := teamNames(n)

			single, err := GenerateRoundRobin(teams)
			require.NoError(t, err)
			assert.Len(t, single, n-1)

			season, err := GenerateSeason(teams)
			require.NoError(t, err)
			require.Len(t, season, 2*(n-1))

			ordered := make(map[Fixture]int)
			for r, round := range season {
				require.Len(t, round, n/2, "round %d", r+1)
				seen := make(map[string]bool)
				for _, f := range round {
					assert.False(t, seen[f.Home], "%s plays twice in round %d", f.Home, r+1)
					assert.False(t, seen[f.Away], "%s plays twice in round %d", f.Away, r+1)
					assert.NotEqual(t, f.Home, f.Away)
					seen[f.Home] = true
					seen[f.Away] = true
					ordered[f]++
				}
				assert.Len(t, seen, n, "every team plays in round %d", r+1)
			}

			assert.Len(t, ordered, n*(n-1), "every ordered pair occurs")
			for f, count := range ordered {
				assert.Equal(t, 1, count, "%s vs %s", f.Home, f.Away)
			}
		})
	}
}

func TestGenerateSeason_SecondHalfMirrorsFirst(t *testing.T) {
	season, err := GenerateSeason(teamNames(6))
	require.NoError(t, err)

	half := len(season) / 2
	for r := 0; r < half; r++ {
		for i, f := range season[r] {
			assert.Equal(t, Fixture{Home: f.Away, Away: f.Home}, season[r+half][i])
		}
	}
}

func TestGenerateSeason_Deterministic(t *testing.T) {
	teams := teamNames(20)
	first, err := GenerateSeason(teams)
	require.NoError(t, err)
	second, err := GenerateSeason(teams)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// The input slice must not be rotated in place.
	assert.Equal(t, teamNames(20), teams)

	ids := make(map[int]bool)
	perRound := len(first[0])
	for r, round := range first {
		for pos := range round {
			id := MatchID(r, pos, perRound)
			assert.False(t, ids[id], "duplicate id %d", id)
			ids[id] = true
		}
	}
	assert.Len(t, ids, 380)
	assert.Equal(t, 1, MatchID(0, 0, perRound))
	assert.Equal(t, 380, MatchID(37, 9, perRound))
}

func TestGenerateRoundRobin_InvalidTeamCount(t *testing.T) {
	for _, n := range []int{0, 1, 3, 7} {
		_, err := GenerateRoundRobin(teamNames(n))
		assert.ErrorIs(t, err, ErrInvalidTeamCount, "n=%d", n)
	}
	_, err := GenerateSeason(teamNames(5))
	assert.ErrorIs(t, err, ErrInvalidTeamCount)
}
