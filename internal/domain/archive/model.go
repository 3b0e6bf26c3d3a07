package archive

// PlaceholderCaptain marks rounds the spreadsheet keepers could not recover.
const PlaceholderCaptain = "N/A"

// CaptainRound records which player captained each team in one pre-digitized
// round (1-19). Team keys are raw spreadsheet names; callers resolve them.
type CaptainRound struct {
	Round         int
	CaptainByTeam map[string]string
}

// SeasonTotal carries a team's pre-loaded point and goal totals, merged into
// the live standings. Keys in Archive.SeasonTotals are raw names.
type SeasonTotal struct {
	Points float64
	Goals  float64
}

// Archive bundles the two static historical datasets. Both are read-only and
// loaded once by the caller.
type Archive struct {
	CaptainRounds []CaptainRound
	SeasonTotals  map[string]SeasonTotal
}
