package standings

import (
	"sort"

	"github.com/javiermp/futmondo-engine/internal/domain/archive"
	"github.com/javiermp/futmondo-engine/internal/domain/names"
	"github.com/javiermp/futmondo-engine/internal/domain/round"
)

// Row is one head-to-head table line. Historical columns come from the
// pre-loaded season totals and only affect ordering through the Total pair.
type Row struct {
	TeamID           string
	TeamName         string
	Played           int
	Won              int
	Drawn            int
	Lost             int
	GoalsFor         float64
	GoalsAgainst     float64
	Points           int
	HistoricalPoints float64
	HistoricalGoals  float64
}

// TotalPoints is the sort key: live points plus the historical carry-over.
func (r Row) TotalPoints() float64 { return float64(r.Points) + r.HistoricalPoints }

// TotalGoals is the tie-break key.
func (r Row) TotalGoals() float64 { return r.GoalsFor + r.HistoricalGoals }

// Calculate folds live rounds into a sorted head-to-head table. Matches whose
// participants cannot be resolved through the round ranking are skipped.
// Teams are seeded with historical totals on first sight, keyed by resolved
// name. Input rounds are never mutated; output is deterministic, and ties on
// both keys keep first-seen order.
func Calculate(rounds []round.Round, totals map[string]archive.SeasonTotal) []Row {
	historicalByName := make(map[string]archive.SeasonTotal, len(totals))
	for rawName, total := range totals {
		historicalByName[names.Resolve(rawName)] = total
	}

	byTeam := make(map[string]*Row)
	order := make([]string, 0)

	ensure := func(entry round.RankingEntry) *Row {
		resolved := names.Resolve(entry.TeamName)
		key := entry.TeamID
		if key == "" {
			key = resolved
		}
		if row, ok := byTeam[key]; ok {
			return row
		}
		row := &Row{TeamID: entry.TeamID, TeamName: entry.TeamName}
		if total, ok := historicalByName[resolved]; ok {
			row.HistoricalPoints = total.Points
			row.HistoricalGoals = total.Goals
		}
		byTeam[key] = row
		order = append(order, key)
		return row
	}

	for _, r := range rounds {
		for _, match := range r.Matches {
			homeEntry, homeOK := r.TeamAt(match.HomePos)
			awayEntry, awayOK := r.TeamAt(match.AwayPos)
			if !homeOK || !awayOK {
				continue
			}

			home := ensure(homeEntry)
			away := ensure(awayEntry)

			home.Played++
			away.Played++
			home.GoalsFor += match.HomeScore
			home.GoalsAgainst += match.AwayScore
			away.GoalsFor += match.AwayScore
			away.GoalsAgainst += match.HomeScore

			switch {
			case match.HomeScore > match.AwayScore:
				home.Won++
				home.Points += 3
				away.Lost++
			case match.HomeScore < match.AwayScore:
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
	}

	rows := make([]Row, 0, len(order))
	for _, key := range order {
		rows = append(rows, *byTeam[key])
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalPoints() != rows[j].TotalPoints() {
			return rows[i].TotalPoints() > rows[j].TotalPoints()
		}
		return rows[i].TotalGoals() > rows[j].TotalGoals()
	})

	return rows
}
