package round

import "github.com/javiermp/futmondo-engine/internal/domain/lineup"

// RankingEntry maps one 1-based standings position to a team. Matches
// reference their participants through these positions, not by id.
type RankingEntry struct {
	Position int
	TeamID   string
	TeamName string
}

// Match is one head-to-head fixture within a round. A lineup may be empty
// when the fixture has not been fetched or played yet.
type Match struct {
	HomePos    int
	AwayPos    int
	HomeScore  float64
	AwayScore  float64
	HomeLineup []lineup.Player
	AwayLineup []lineup.Player
}

// Round is one league fixture week. Rounds 1-19 come from the digitized
// archive, 20 onward from the live API.
type Round struct {
	Number  int
	Matches []Match
	Ranking []RankingEntry
}

// TeamAt resolves a 1-based participant position through the ranking.
func (r Round) TeamAt(pos int) (RankingEntry, bool) {
	for _, entry := range r.Ranking {
		if entry.Position == pos {
			return entry, true
		}
	}
	if pos >= 1 && pos <= len(r.Ranking) && r.Ranking[pos-1].Position == 0 {
		return r.Ranking[pos-1], true
	}
	return RankingEntry{}, false
}
