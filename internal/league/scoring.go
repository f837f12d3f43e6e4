package league

import "sort"

// Outcome of a scoreline from the home side's point of view.
type Outcome string

const (
	OutcomeHome Outcome = "home"
	OutcomeAway Outcome = "away"
	OutcomeDraw Outcome = "draw"
)

const (
	PointsExact   = 10
	PointsOutcome = 5
)

func OutcomeOf(home, away int) Outcome {
	switch {
	case home > away:
		return OutcomeHome
	case away > home:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}

// ScorePrediction returns the points a predicted scoreline earns against the
// final one.
func ScorePrediction(predHome, predAway, home, away int) int {
	if predHome == home && predAway == away {
		return PointsExact
	}
	if OutcomeOf(predHome, predAway) == OutcomeOf(home, away) {
		return PointsOutcome
	}
	return 0
}

// ApplyResult records a finished match on both teams with 3/1/0 scoring.
func ApplyResult(home, away *Team, homeGoals, awayGoals int) {
	home.Played++
	away.Played++
	home.GoalsFor += homeGoals
	home.GoalsAgainst += awayGoals
	away.GoalsFor += awayGoals
	away.GoalsAgainst += homeGoals

	switch OutcomeOf(homeGoals, awayGoals) {
	case OutcomeHome:
		home.Won++
		home.Points += 3
		away.Lost++
	case OutcomeAway:
		away.Won++
		away.Points += 3
		home.Lost++
	default:
		home.Drawn++
		away.Drawn++
		home.Points++
		away.Points++
	}
}

// SortStandings orders teams by points, goal difference, goals for and name.
func SortStandings(teams []Team) {
	sort.SliceStable(teams, func(i, j int) bool {
		a, b := teams[i], teams[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Name < b.Name
	})
}
