package cup

import (
	"fmt"
	"sort"

	"github.com/javiermp/futmondo-engine/internal/domain/lineup"
	"github.com/javiermp/futmondo-engine/internal/domain/names"
	"github.com/javiermp/futmondo-engine/internal/domain/sanction"
	"github.com/javiermp/futmondo-engine/internal/domain/team"
)

// Scan walks the bracket chronologically and produces the cup's own ledger,
// captain history, suspensions and display snapshots. Rule semantics match
// the league engine; suspension windows count in bracket rounds and both legs
// of a round share the same window.
func Scan(rounds []Round, rules Rules) (Result, error) {
	if rules.Tariff.IsZero() {
		rules = DefaultRules()
	}

	tracker := sanction.NewTracker(rules.Tariff)

	ordered := append([]Round(nil), rounds...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Number < ordered[j].Number
	})

	stats := make(map[string]TeamStat)
	roundScores := make(map[int][]TeamScore)
	participants := make([]team.Team, 0)
	participantSeen := make(map[string]struct{})
	firstRoundPresent := make(map[string]struct{})

	teamKey := func(tm team.Team) string { return tm.Key(names.Resolve(tm.Name)) }

	register := func(tm team.Team, roundNumber int) {
		key := teamKey(tm)
		if _, ok := participantSeen[key]; !ok {
			participantSeen[key] = struct{}{}
			participants = append(participants, tm)
			tracker.Ledger(tm)
		}
		if roundNumber == 1 {
			firstRoundPresent[key] = struct{}{}
		}
	}

	for _, r := range ordered {
		// Legs of a pairing are evaluated in order within the round; the
		// worst-performance pass aggregates each team's legs afterwards.
		legs := append([]Match(nil), r.Matches...)
		sort.SliceStable(legs, func(i, j int) bool { return legs[i].Leg < legs[j].Leg })

		showingByTeam := make(map[string]*sanction.TeamRound)
		showingOrder := make([]string, 0)

		processSide := func(side Side, label string) {
			register(side.Team, r.Number)
			if len(side.Lineup) == 0 {
				return
			}

			tracker.CheckRestrictions(side.Team, side.Lineup, r.Number, label)
			if captain, ok := lineup.Captain(side.Lineup); ok {
				tracker.RecordCaptain(side.Team, captain.Name, r.Number, label)
			}
			tracker.ChargeSameClubCaptain(side.Team, side.Lineup, label)

			key := teamKey(side.Team)
			showing, ok := showingByTeam[key]
			if !ok {
				showing = &sanction.TeamRound{Team: side.Team}
				showingByTeam[key] = showing
				showingOrder = append(showingOrder, key)
			}
			showing.Score += side.Score
			showing.Players = append(showing.Players, side.Lineup...)

			stats[key] = TeamStat{
				Team:       side.Team,
				LastRound:  label,
				LastScore:  side.Score,
				LastLineup: side.Lineup,
			}
		}

		for _, match := range legs {
			label := legLabel(r.Number, match.Leg)
			processSide(match.Home, label)
			processSide(match.Away, label)

			if len(match.Home.Lineup) > 0 && len(match.Away.Lineup) > 0 {
				tracker.ChargeHeadToHead(match.Home.Team, match.Home.Lineup, match.Away.Team, match.Away.Lineup, label)
			}
		}

		showings := make([]sanction.TeamRound, 0, len(showingOrder))
		scores := make([]TeamScore, 0, len(showingOrder))
		for _, key := range showingOrder {
			showing := showingByTeam[key]
			showings = append(showings, *showing)
			scores = append(scores, TeamScore{
				TeamID:   showing.Team.ID,
				TeamName: showing.Team.Name,
				Score:    showing.Score,
			})
		}
		tracker.ChargeRoundWorst(showings, fmt.Sprintf("%d", r.Number))

		if len(scores) > 0 {
			sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score < scores[j].Score })
			roundScores[r.Number] = scores
		}
	}

	// Registered anywhere in the bracket but absent from round 1's match
	// list: flat non-participation fee. Skipped entirely while round 1 has
	// not been loaded yet.
	hasFirstRound := false
	for _, r := range ordered {
		if r.Number == 1 {
			hasFirstRound = true
			break
		}
	}
	if hasFirstRound {
		for _, tm := range participants {
			if _, played := firstRoundPresent[teamKey(tm)]; !played {
				tracker.Charge(tm, "1", TypeNoShow, "no disputó la jornada 1", rules.NoShow)
			}
		}
	}

	return Result{
		Ledgers:        tracker.Ledgers(),
		CaptainHistory: tracker.CaptainHistories(),
		TeamStats:      stats,
		RoundScores:    roundScores,
		Infractions:    tracker.Infractions(),
		Suspensions:    tracker.Suspensions(),
	}, nil
}

func legLabel(round, leg int) string {
	if leg <= 1 {
		return fmt.Sprintf("%d.1", round)
	}
	return fmt.Sprintf("%d.%d", round, leg)
}
