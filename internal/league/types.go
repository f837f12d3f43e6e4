package league

import "time"

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	StatusPending  MatchStatus = "pending"
	StatusLive     MatchStatus = "live"
	StatusFinished MatchStatus = "finished"
)

// EventGoal is the only event type produced by the simulation.
const EventGoal = "goal"

// Team is a league member and its cumulative season statistics.
type Team struct {
	Name         string `json:"name" msgpack:"name"`
	Strength     int    `json:"strength" msgpack:"strength"`
	Played       int    `json:"played" msgpack:"played"`
	Won          int    `json:"won" msgpack:"won"`
	Drawn        int    `json:"drawn" msgpack:"drawn"`
	Lost         int    `json:"lost" msgpack:"lost"`
	GoalsFor     int    `json:"goalsFor" msgpack:"goals_for"`
	GoalsAgainst int    `json:"goalsAgainst" msgpack:"goals_against"`
	Points       int    `json:"points" msgpack:"points"`
}

func (t Team) GoalDifference() int {
	return t.GoalsFor - t.GoalsAgainst
}

// MatchEvent is a scoring event. Score holds the tally right after the event.
type MatchEvent struct {
	Type     string `json:"type" msgpack:"type"`
	Team     string `json:"team" msgpack:"team"`
	Player   string `json:"player" msgpack:"player"`
	PlayerID int64  `json:"playerId" msgpack:"player_id"`
	Minute   int    `json:"minute" msgpack:"minute"`
	Score    string `json:"score" msgpack:"score"`
}

type Match struct {
	ID        int          `json:"id" msgpack:"id"`
	Round     int          `json:"round" msgpack:"round"`
	HomeTeam  string       `json:"homeTeam" msgpack:"home_team"`
	AwayTeam  string       `json:"awayTeam" msgpack:"away_team"`
	HomeScore int          `json:"homeScore" msgpack:"home_score"`
	AwayScore int          `json:"awayScore" msgpack:"away_score"`
	Status    MatchStatus  `json:"status" msgpack:"status"`
	Minute    int          `json:"minute" msgpack:"minute"`
	StartTime time.Time    `json:"startTime" msgpack:"start_time"`
	Events    []MatchEvent `json:"events" msgpack:"events"`
	League    string       `json:"league" msgpack:"league"`
}

// Clone returns a deep copy of the match.
func (m *Match) Clone() Match {
	c := *m
	c.Events = make([]MatchEvent, len(m.Events))
	copy(c.Events, m.Events)
	return c
}

type Player struct {
	ID    int64  `json:"id"`
	Team  string `json:"team"`
	Name  string `json:"name"`
	Goals int    `json:"goals"`
}

// Prediction is a user's forecast for a match. PointsEarned stays nil until the
// match is settled.
type Prediction struct {
	ID           int64 `json:"id"`
	UserID       int64 `json:"userId"`
	MatchID      int   `json:"matchId"`
	HomeScore    int   `json:"homeScore"`
	AwayScore    int   `json:"awayScore"`
	PointsEarned *int  `json:"pointsEarned"`
}

func (p Prediction) Settled() bool {
	return p.PointsEarned != nil
}

func (p Prediction) Clone() Prediction {
	c := p
	if p.PointsEarned != nil {
		v := *p.PointsEarned
		c.PointsEarned = &v
	}
	return c
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
}

type Notification struct {
	ID        string    `json:"id" msgpack:"id"`
	UserID    int64     `json:"userId" msgpack:"user_id"`
	Title     string    `json:"title" msgpack:"title"`
	Message   string    `json:"message" msgpack:"message"`
	CreatedAt time.Time `json:"createdAt" msgpack:"created_at"`
}

// Fixture is one pairing of the schedule.
type Fixture struct {
	Home string `json:"home" msgpack:"home"`
	Away string `json:"away" msgpack:"away"`
}

// SeasonState is the season clock snapshot. It is persisted as a single blob.
type SeasonState struct {
	CurrentRound int         `json:"currentRound" msgpack:"current_round"`
	Started      bool        `json:"started" msgpack:"started"`
	RoundStart   time.Time   `json:"roundStart" msgpack:"round_start"`
	Fixtures     [][]Fixture `json:"-" msgpack:"fixtures"`
}

func (s SeasonState) TotalRounds() int {
	return len(s.Fixtures)
}

func (s SeasonState) Clone() SeasonState {
	c := s
	if s.Fixtures != nil {
		c.Fixtures = make([][]Fixture, len(s.Fixtures))
		for i, round := range s.Fixtures {
			c.Fixtures[i] = append([]Fixture(nil), round...)
		}
	}
	return c
}

// Snapshot is the full persisted state returned on boot. State is nil when the
// season was never initialized.
type Snapshot struct {
	Teams       []Team
	Matches     []Match
	Predictions []Prediction
	Players     []Player
	Users       []User
	State       *SeasonState
}

// Batch is the set of rows written by one flush.
type Batch struct {
	State         SeasonState
	Teams         []Team
	Matches       []Match
	Predictions   []Prediction
	Users         []User
	Players       []Player
	Notifications []Notification
	// Full is set when the batch carries every match of the season.
	Full bool
}
