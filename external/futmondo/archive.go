package futmondo

import (
	"fmt"
	"sort"

	"github.com/javiermp/futmondo-engine/internal/domain/archive"
)

type captainRoundPayload struct {
	Round    int               `json:"round"`
	Captains map[string]string `json:"captains"`
}

type seasonTotalPayload struct {
	Points jsonFloat `json:"points"`
	Goals  jsonFloat `json:"goals"`
}

// LoadArchive decodes the two static historical datasets: the per-round
// captain-usage map for the pre-digitized rounds and the season point/goal
// totals. Both are keyed by raw spreadsheet team names; resolution happens
// inside the engines.
func LoadArchive(captainRaw, totalsRaw []byte) (archive.Archive, error) {
	var result archive.Archive

	if len(captainRaw) > 0 {
		var rounds []captainRoundPayload
		if err := unwrapData(captainRaw, &rounds); err != nil {
			return archive.Archive{}, fmt.Errorf("%w: decode captain archive: %v", ErrMalformedPayload, err)
		}
		for _, entry := range rounds {
			if entry.Round <= 0 || len(entry.Captains) == 0 {
				continue
			}
			byTeam := make(map[string]string, len(entry.Captains))
			for rawTeam, captain := range entry.Captains {
				byTeam[rawTeam] = captain
			}
			result.CaptainRounds = append(result.CaptainRounds, archive.CaptainRound{
				Round:         entry.Round,
				CaptainByTeam: byTeam,
			})
		}
		sort.SliceStable(result.CaptainRounds, func(i, j int) bool {
			return result.CaptainRounds[i].Round < result.CaptainRounds[j].Round
		})
	}

	if len(totalsRaw) > 0 {
		var totals map[string]seasonTotalPayload
		if err := unwrapData(totalsRaw, &totals); err != nil {
			return archive.Archive{}, fmt.Errorf("%w: decode season totals: %v", ErrMalformedPayload, err)
		}
		result.SeasonTotals = make(map[string]archive.SeasonTotal, len(totals))
		for rawTeam, total := range totals {
			result.SeasonTotals[rawTeam] = archive.SeasonTotal{
				Points: float64(total.Points),
				Goals:  float64(total.Goals),
			}
		}
	}

	return result, nil
}
