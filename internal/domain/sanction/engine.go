package sanction

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/javiermp/futmondo-engine/internal/domain/archive"
	"github.com/javiermp/futmondo-engine/internal/domain/lineup"
	"github.com/javiermp/futmondo-engine/internal/domain/names"
	"github.com/javiermp/futmondo-engine/internal/domain/round"
	"github.com/javiermp/futmondo-engine/internal/domain/team"
)

var (
	ErrNoTeams     = errors.New("team list is required")
	ErrInvalidTeam = errors.New("team entry missing id or name")
)

// CupProperName is the knockout competition's name. A championship whose name
// contains it runs under the combined league+cup registration rules.
const CupProperName = "Copa Peñas"

// Options carries the per-championship knobs for a league computation.
type Options struct {
	ChampionshipName string
	Tariff           Tariff
}

// Calculate runs the full league sanctions pass: the historical captain
// archive first (rounds 1-19), then live rounds in ascending order, with
// captain counts and suspension windows carried across the boundary.
//
// Live-data noise (missing lineups, unresolvable participants) is skipped;
// a malformed team list is a caller bug and fails fast.
func Calculate(rounds []round.Round, teams []team.Team, arch archive.Archive, opts Options) (Result, error) {
	if len(teams) == 0 {
		return Result{}, ErrNoTeams
	}
	for i, tm := range teams {
		if tm.ID == "" || tm.Name == "" {
			return Result{}, fmt.Errorf("%w: index %d", ErrInvalidTeam, i)
		}
	}

	tracker := NewTracker(opts.Tariff)
	firstActive := make(map[string]int)

	markActive := func(tm team.Team, roundNum int) {
		key := tracker.teamKey(tm)
		if current, ok := firstActive[key]; !ok || roundNum < current {
			firstActive[key] = roundNum
		}
	}

	// Every registered team gets a ledger, sanctioned or not.
	for _, tm := range teams {
		tracker.Ledger(tm)
	}

	captainRounds := append([]archive.CaptainRound(nil), arch.CaptainRounds...)
	sort.SliceStable(captainRounds, func(i, j int) bool {
		return captainRounds[i].Round < captainRounds[j].Round
	})
	for _, captainRound := range captainRounds {
		captainByResolved := make(map[string]string, len(captainRound.CaptainByTeam))
		for rawTeam, captain := range captainRound.CaptainByTeam {
			captainByResolved[names.Resolve(rawTeam)] = captain
		}
		label := strconv.Itoa(captainRound.Round)
		for _, tm := range teams {
			captain, ok := captainByResolved[names.Resolve(tm.Name)]
			if !ok || names.Resolve(captain) == "" || names.Resolve(captain) == names.Resolve(archive.PlaceholderCaptain) {
				continue
			}
			markActive(tm, captainRound.Round)
			tracker.RecordCaptain(tm, captain, captainRound.Round, label)
		}
	}

	liveRounds := append([]round.Round(nil), rounds...)
	sort.SliceStable(liveRounds, func(i, j int) bool {
		return liveRounds[i].Number < liveRounds[j].Number
	})

	for _, r := range liveRounds {
		label := strconv.Itoa(r.Number)
		var showings []TeamRound

		processSide := func(entry round.RankingEntry, players []lineup.Player, score float64) {
			if len(players) == 0 {
				return
			}
			tm := team.Team{ID: entry.TeamID, Name: entry.TeamName}
			markActive(tm, r.Number)

			tracker.CheckRestrictions(tm, players, r.Number, label)
			if captain, ok := lineup.Captain(players); ok {
				tracker.RecordCaptain(tm, captain.Name, r.Number, label)
			}
			tracker.ChargeSameClubCaptain(tm, players, label)

			showings = append(showings, TeamRound{Team: tm, Score: score, Players: players})
		}

		for _, match := range r.Matches {
			homeEntry, homeOK := r.TeamAt(match.HomePos)
			awayEntry, awayOK := r.TeamAt(match.AwayPos)
			if !homeOK || !awayOK {
				continue
			}

			processSide(homeEntry, match.HomeLineup, match.HomeScore)
			processSide(awayEntry, match.AwayLineup, match.AwayScore)

			if len(match.HomeLineup) > 0 && len(match.AwayLineup) > 0 {
				home := team.Team{ID: homeEntry.TeamID, Name: homeEntry.TeamName}
				away := team.Team{ID: awayEntry.TeamID, Name: awayEntry.TeamName}
				tracker.ChargeHeadToHead(home, match.HomeLineup, away, match.AwayLineup, label)
			}
		}

		tracker.ChargeRoundWorst(showings, label)
	}

	if strings.Contains(names.Normalize(opts.ChampionshipName), names.Normalize(CupProperName)) {
		for _, tm := range teams {
			first, ok := firstActive[tracker.teamKey(tm)]
			if !ok || first <= 2 {
				continue
			}
			detail := fmt.Sprintf("alta en jornada %d", first)
			tracker.Charge(tm, strconv.Itoa(first), TypeLateEntry, detail, tracker.tariff.LateEntry)
		}
	}

	return Result{
		Ledgers:     tracker.Ledgers(),
		Infractions: tracker.Infractions(),
		Suspensions: tracker.Suspensions(),
	}, nil
}
