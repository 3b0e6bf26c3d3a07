package sanction

import (
	"fmt"
	"sort"

	"github.com/javiermp/futmondo-engine/internal/domain/lineup"
	"github.com/javiermp/futmondo-engine/internal/domain/names"
	"github.com/javiermp/futmondo-engine/internal/domain/team"
)

// Tracker is the mutable accumulator threaded through one chronological pass
// over rounds. Captain counts and suspension windows are indexed by a
// "teamKey|resolvedPlayer" string key; the tracker is built fresh per
// invocation and never shared.
type Tracker struct {
	tariff      Tariff
	ledgers     map[string]*TeamLedger
	order       []string
	counts      map[string]int
	suspensions map[string]*Suspension
	suspOrder   []string
	infractions []Infraction
}

func NewTracker(tariff Tariff) *Tracker {
	if tariff.IsZero() {
		tariff = DefaultTariff()
	}
	return &Tracker{
		tariff:      tariff,
		ledgers:     make(map[string]*TeamLedger),
		counts:      make(map[string]int),
		suspensions: make(map[string]*Suspension),
	}
}

// TeamRound is one team's aggregated showing within a single round, used by
// the per-round worst-performance pass.
type TeamRound struct {
	Team    team.Team
	Score   float64
	Players []lineup.Player
}

func (t *Tracker) teamKey(tm team.Team) string {
	return tm.Key(names.Resolve(tm.Name))
}

// Ledger returns the team's ledger, creating it on first sight.
func (t *Tracker) Ledger(tm team.Team) *TeamLedger {
	key := t.teamKey(tm)
	if ledger, ok := t.ledgers[key]; ok {
		return ledger
	}
	ledger := &TeamLedger{TeamID: tm.ID, TeamName: tm.Name}
	t.ledgers[key] = ledger
	t.order = append(t.order, key)
	return ledger
}

// Charge appends one ledger entry and bumps the team total.
func (t *Tracker) Charge(tm team.Team, roundLabel string, typ EntryType, detail string, cost float64) {
	ledger := t.Ledger(tm)
	ledger.Breakdown = append(ledger.Breakdown, LedgerEntry{
		TeamID: tm.ID,
		Round:  roundLabel,
		Type:   typ,
		Detail: detail,
		Cost:   cost,
	})
	ledger.Total += cost
}

// RecordCaptain accounts one captaincy: it increments the (team, player)
// occurrence count, appends the history entry, charges the escalating repeat
// penalty and (re)opens the suspension window on multiples of the cycle.
// Placeholder names from the archive are ignored.
func (t *Tracker) RecordCaptain(tm team.Team, rawPlayer string, roundNum int, roundLabel string) {
	player := names.Resolve(rawPlayer)
	if player == "" || player == "n/a" {
		return
	}

	key := t.teamKey(tm) + "|" + player
	t.counts[key]++
	count := t.counts[key]

	cycle := t.tariff.RepeatCycle
	ledger := t.Ledger(tm)
	ledger.CaptainHistory = append(ledger.CaptainHistory, CaptainEntry{
		Round:   roundLabel,
		Player:  rawPlayer,
		Count:   count,
		Warning: count%cycle == cycle-1,
		Alert:   count%cycle == 0,
	})

	if count > 1 {
		detail := fmt.Sprintf("%s (%dª vez)", rawPlayer, count)
		t.Charge(tm, roundLabel, TypeRepeatedCaptain, detail, float64(count-1))
	}

	if count%cycle == 0 {
		if _, seen := t.suspensions[key]; !seen {
			t.suspOrder = append(t.suspOrder, key)
		}
		t.suspensions[key] = &Suspension{
			TeamID:         tm.ID,
			TeamName:       tm.Name,
			Player:         player,
			TriggerRound:   roundNum,
			OutTeamUntil:   roundNum + t.tariff.OutTeamRounds,
			NoCaptainUntil: roundNum + t.tariff.NoCaptainRounds,
		}
	}
}

// CheckRestrictions runs before captain accounting for a fielded lineup: a
// suspended player inside the out-of-team window is an infraction no matter
// the slot; past it but inside the no-captain window only captaining is
// penalized.
func (t *Tracker) CheckRestrictions(tm team.Team, players []lineup.Player, roundNum int, roundLabel string) {
	teamKey := t.teamKey(tm)
	for _, p := range players {
		record, ok := t.suspensions[teamKey+"|"+names.Resolve(p.Name)]
		if !ok {
			continue
		}
		switch {
		case roundNum <= record.OutTeamUntil:
			t.addInfraction(tm, p.Name, roundLabel, TypeSuspendedFielded, t.tariff.SuspendedFielded)
		case p.IsCaptain && roundNum <= record.NoCaptainUntil:
			t.addInfraction(tm, p.Name, roundLabel, TypeSuspendedCaptain, t.tariff.SuspendedCaptain)
		}
	}
}

func (t *Tracker) addInfraction(tm team.Team, player, roundLabel string, kind EntryType, cost float64) {
	t.infractions = append(t.infractions, Infraction{
		TeamID: tm.ID,
		Player: player,
		Round:  roundLabel,
		Kind:   kind,
		Cost:   cost,
	})
	t.Charge(tm, roundLabel, kind, player, cost)
}

// ChargeSameClubCaptain levies the flat fee when the captain shares a club
// with at least one other lineup member.
func (t *Tracker) ChargeSameClubCaptain(tm team.Team, players []lineup.Player, roundLabel string) {
	captain, ok := lineup.Captain(players)
	if !ok || captain.Club == "" {
		return
	}
	for _, p := range players {
		if p.IsCaptain || p.Club != captain.Club {
			continue
		}
		detail := fmt.Sprintf("%s comparte club con %s", captain.Name, p.Name)
		t.Charge(tm, roundLabel, TypeSameClubCaptain, detail, t.tariff.SameClubCaptain)
		return
	}
}

// ChargeHeadToHead applies the duplicate rules between two opposing lineups.
// Callers only invoke it when both lineups are known.
func (t *Tracker) ChargeHeadToHead(home team.Team, homeLineup []lineup.Player, away team.Team, awayLineup []lineup.Player, roundLabel string) {
	homeNames := lineupNameSet(homeLineup)
	awayNames := lineupNameSet(awayLineup)

	for _, p := range homeLineup {
		resolved := names.Resolve(p.Name)
		if _, shared := awayNames[resolved]; !shared {
			continue
		}
		t.Charge(home, roundLabel, TypeSharedPlayer, p.Name, t.tariff.SharedPlayer)
		t.Charge(away, roundLabel, TypeSharedPlayer, p.Name, t.tariff.SharedPlayer)
	}

	homeCaptain, homeOK := lineup.Captain(homeLineup)
	awayCaptain, awayOK := lineup.Captain(awayLineup)
	if !homeOK || !awayOK {
		return
	}

	if names.Resolve(homeCaptain.Name) == names.Resolve(awayCaptain.Name) {
		t.Charge(home, roundLabel, TypeSharedCaptain, homeCaptain.Name, t.tariff.SharedCaptain)
		t.Charge(away, roundLabel, TypeSharedCaptain, awayCaptain.Name, t.tariff.SharedCaptain)
		return
	}

	// Fielding the rival's captain as a plain player penalizes the fielding
	// side only. The asymmetry with the shared-captain case is the league's
	// own rule, reproduced as voted.
	if _, fielded := awayNames[names.Resolve(homeCaptain.Name)]; fielded {
		t.Charge(away, roundLabel, TypeRivalCaptain, homeCaptain.Name, t.tariff.RivalCaptain)
	}
	if _, fielded := homeNames[names.Resolve(awayCaptain.Name)]; fielded {
		t.Charge(home, roundLabel, TypeRivalCaptain, awayCaptain.Name, t.tariff.RivalCaptain)
	}
}

// ChargeRoundWorst runs the once-per-round performance penalties: tiered
// worst-score fees on the lowest distinct totals, the worst captain fee and
// the worst player fee. Ties all pay the full amount; the worst-player fee is
// charged at most once per team.
func (t *Tracker) ChargeRoundWorst(entries []TeamRound, roundLabel string) {
	if len(entries) == 0 {
		return
	}

	distinct := make([]float64, 0, len(entries))
	seen := make(map[float64]struct{}, len(entries))
	for _, entry := range entries {
		if _, ok := seen[entry.Score]; ok {
			continue
		}
		seen[entry.Score] = struct{}{}
		distinct = append(distinct, entry.Score)
	}
	sort.Float64s(distinct)

	for tier, cost := range t.tariff.WorstTeamTiers {
		// The round's best total never pays a worst-team fee, even when few
		// distinct totals leave it inside the tier range.
		if tier >= len(distinct)-1 {
			break
		}
		for _, entry := range entries {
			if entry.Score == distinct[tier] {
				detail := fmt.Sprintf("%.1f puntos", entry.Score)
				t.Charge(entry.Team, roundLabel, TypeWorstTeam, detail, cost)
			}
		}
	}

	t.chargeWorstCaptain(entries, roundLabel)
	t.chargeWorstPlayer(entries, roundLabel)
}

func (t *Tracker) chargeWorstCaptain(entries []TeamRound, roundLabel string) {
	worst := 0.0
	found := false
	for _, entry := range entries {
		captain, ok := lineup.Captain(entry.Players)
		if !ok {
			continue
		}
		if !found || captain.Points < worst {
			worst = captain.Points
			found = true
		}
	}
	if !found {
		return
	}
	for _, entry := range entries {
		captain, ok := lineup.Captain(entry.Players)
		if ok && captain.Points == worst {
			t.Charge(entry.Team, roundLabel, TypeWorstCaptain, captain.Name, t.tariff.WorstCaptain)
		}
	}
}

func (t *Tracker) chargeWorstPlayer(entries []TeamRound, roundLabel string) {
	worst := 0.0
	found := false
	for _, entry := range entries {
		for _, p := range entry.Players {
			if !found || p.Points < worst {
				worst = p.Points
				found = true
			}
		}
	}
	if !found {
		return
	}
	// One fee per team, even when a team ties the minimum with several
	// players.
	for _, entry := range entries {
		for _, p := range entry.Players {
			if p.Points == worst {
				t.Charge(entry.Team, roundLabel, TypeWorstPlayer, p.Name, t.tariff.WorstPlayer)
				break
			}
		}
	}
}

// Ledgers returns the accumulated per-team ledgers keyed by team key.
func (t *Tracker) Ledgers() map[string]*TeamLedger {
	out := make(map[string]*TeamLedger, len(t.ledgers))
	for key, ledger := range t.ledgers {
		out[key] = ledger
	}
	return out
}

// Infractions returns the chronological infraction log.
func (t *Tracker) Infractions() []Infraction {
	return append([]Infraction(nil), t.infractions...)
}

// Suspensions returns the final registry snapshot in trigger order.
func (t *Tracker) Suspensions() []Suspension {
	out := make([]Suspension, 0, len(t.suspensions))
	for _, key := range t.suspOrder {
		out = append(out, *t.suspensions[key])
	}
	return out
}

// CaptainHistories returns per-team histories keyed by team key.
func (t *Tracker) CaptainHistories() map[string][]CaptainEntry {
	out := make(map[string][]CaptainEntry, len(t.ledgers))
	for key, ledger := range t.ledgers {
		if len(ledger.CaptainHistory) > 0 {
			out[key] = ledger.CaptainHistory
		}
	}
	return out
}

func lineupNameSet(players []lineup.Player) map[string]struct{} {
	out := make(map[string]struct{}, len(players))
	for _, p := range players {
		out[names.Resolve(p.Name)] = struct{}{}
	}
	return out
}
