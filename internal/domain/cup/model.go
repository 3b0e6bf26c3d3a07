package cup

import (
	"github.com/javiermp/futmondo-engine/internal/domain/lineup"
	"github.com/javiermp/futmondo-engine/internal/domain/sanction"
	"github.com/javiermp/futmondo-engine/internal/domain/team"
)

// Side is one team's showing in a single cup leg.
type Side struct {
	Team   team.Team
	Score  float64
	Lineup []lineup.Player
}

// Match is one leg of a knockout pairing. Leg numbering starts at 1; a
// one-off tie is simply leg 1.
type Match struct {
	Leg  int
	Home Side
	Away Side
}

// Round is one bracket stage (round of 32 through the final).
type Round struct {
	Number  int
	Matches []Match
}

// Rules carries the cup's penalty knobs on top of the shared tariff.
type Rules struct {
	Tariff sanction.Tariff
	NoShow float64
}

func DefaultRules() Rules {
	return Rules{Tariff: sanction.DefaultTariff(), NoShow: 5}
}

// TypeNoShow labels the round-1 non-participation fee.
const TypeNoShow sanction.EntryType = "Incomparecencia Jornada 1"

// TeamStat is the per-team display snapshot: the most recent fielded lineup
// and its score.
type TeamStat struct {
	Team       team.Team
	LastRound  string
	LastScore  float64
	LastLineup []lineup.Player
}

// TeamScore is one row of a round's score list.
type TeamScore struct {
	TeamID   string
	TeamName string
	Score    float64
}

// Result is the full cup sanctions output. Captain counts and suspensions are
// tracked inside the tournament only; league state never leaks in.
type Result struct {
	Ledgers        map[string]*sanction.TeamLedger
	CaptainHistory map[string][]sanction.CaptainEntry
	TeamStats      map[string]TeamStat
	RoundScores    map[int][]TeamScore
	Infractions    []sanction.Infraction
	Suspensions    []sanction.Suspension
}
