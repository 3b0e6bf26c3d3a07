package cup

import (
	"reflect"
	"testing"

	"github.com/javiermp/futmondo-engine/internal/domain/lineup"
	"github.com/javiermp/futmondo-engine/internal/domain/sanction"
	"github.com/javiermp/futmondo-engine/internal/domain/team"
)

var (
	cupA = team.Team{ID: "c1", Name: "Peñas Arriba CF"}
	cupB = team.Team{ID: "c2", Name: "Samba Rovinha"}
	cupC = team.Team{ID: "c3", Name: "La Romareda"}
	cupD = team.Team{ID: "c4", Name: "Carnicería Paco FC"}
)

func side(tm team.Team, score float64, captain string, others ...string) Side {
	players := []lineup.Player{{Name: captain, Points: score / 2, IsCaptain: true, Club: "club-" + captain}}
	for _, name := range others {
		players = append(players, lineup.Player{Name: name, Points: score / 4, Club: "club-" + name})
	}
	return Side{Team: tm, Score: score, Lineup: players}
}

func TestScan_NoShowPenalty(t *testing.T) {
	t.Parallel()

	rounds := []Round{
		{Number: 1, Matches: []Match{
			{Leg: 1, Home: side(cupA, 40, "A1", "A2"), Away: side(cupB, 38, "B1", "B2")},
		}},
		// cupC and cupD only join from round 2 (bye or qualifier skip).
		{Number: 2, Matches: []Match{
			{Leg: 1, Home: side(cupA, 42, "A1", "A2"), Away: side(cupC, 39, "C1", "C2")},
			{Leg: 1, Home: side(cupB, 44, "B1", "B2"), Away: side(cupD, 41, "D1", "D2")},
		}},
	}

	result, err := Scan(rounds, DefaultRules())
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	for _, tm := range []team.Team{cupC, cupD} {
		ledger := result.Ledgers[tm.ID]
		var found bool
		for _, entry := range ledger.Breakdown {
			if entry.Type == TypeNoShow {
				found = true
				if entry.Cost != 5 || entry.Round != "1" {
					t.Fatalf("unexpected no-show entry: %+v", entry)
				}
			}
		}
		if !found {
			t.Fatalf("team %s: expected no-show fee, breakdown %+v", tm.ID, ledger.Breakdown)
		}
	}

	for _, tm := range []team.Team{cupA, cupB} {
		for _, entry := range result.Ledgers[tm.ID].Breakdown {
			if entry.Type == TypeNoShow {
				t.Fatalf("team %s: unexpected no-show fee", tm.ID)
			}
		}
	}
}

func TestScan_LegLabelsInCaptainHistory(t *testing.T) {
	t.Parallel()

	rounds := []Round{
		{Number: 3, Matches: []Match{
			{Leg: 1, Home: side(cupA, 40, "Pedro", "A2"), Away: side(cupB, 38, "B1", "B2")},
			{Leg: 2, Home: side(cupB, 45, "B1", "B2"), Away: side(cupA, 41, "Pedro", "A2")},
		}},
	}

	result, err := Scan(rounds, DefaultRules())
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	history := result.CaptainHistory["c1"]
	if len(history) != 2 {
		t.Fatalf("expected 2 captain entries, got %+v", history)
	}
	if history[0].Round != "3.1" || history[1].Round != "3.2" {
		t.Fatalf("expected leg labels 3.1/3.2, got %+v", history)
	}
	if history[1].Count != 2 || !history[1].Warning {
		t.Fatalf("expected warning on 2nd use, got %+v", history[1])
	}

	// Second captaincy also carries the escalating repeat fee.
	var repeat []sanction.LedgerEntry
	for _, entry := range result.Ledgers["c1"].Breakdown {
		if entry.Type == sanction.TypeRepeatedCaptain {
			repeat = append(repeat, entry)
		}
	}
	if len(repeat) != 1 || repeat[0].Cost != 1 || repeat[0].Round != "3.2" {
		t.Fatalf("unexpected repeat entries: %+v", repeat)
	}
}

func TestScan_WorstTiersPerRoundAggregateLegs(t *testing.T) {
	t.Parallel()

	rounds := []Round{
		{Number: 2, Matches: []Match{
			// Two-leg tie: totals A=80, B=82.
			{Leg: 1, Home: side(cupA, 40, "A1", "A2"), Away: side(cupB, 39, "B1", "B2")},
			{Leg: 2, Home: side(cupB, 43, "B1", "B2"), Away: side(cupA, 40, "A1", "A2")},
			// One-leg tie: C=90, D=95.
			{Leg: 1, Home: side(cupC, 90, "C1", "C2"), Away: side(cupD, 95, "D1", "D2")},
		}},
	}

	result, err := Scan(rounds, DefaultRules())
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	costs := map[string]float64{}
	for teamID, ledger := range result.Ledgers {
		for _, entry := range ledger.Breakdown {
			if entry.Type == sanction.TypeWorstTeam {
				costs[teamID] += entry.Cost
				if entry.Round != "2" {
					t.Fatalf("worst-team fee must carry the round label, got %+v", entry)
				}
			}
		}
	}

	want := map[string]float64{"c1": 2, "c2": 1.5, "c3": 1}
	if !reflect.DeepEqual(costs, want) {
		t.Fatalf("unexpected worst-team costs: %v", costs)
	}

	scores := result.RoundScores[2]
	if len(scores) != 4 || scores[0].TeamID != "c1" || scores[0].Score != 80 || scores[3].TeamID != "c4" {
		t.Fatalf("unexpected round scores: %+v", scores)
	}
}

func TestScan_TeamStatsKeepLastLineup(t *testing.T) {
	t.Parallel()

	rounds := []Round{
		{Number: 1, Matches: []Match{
			{Leg: 1, Home: side(cupA, 40, "A1", "A2"), Away: side(cupB, 38, "B1", "B2")},
		}},
		{Number: 4, Matches: []Match{
			{Leg: 1, Home: side(cupA, 55, "A9", "A8"), Away: side(cupB, 50, "B1", "B2")},
			{Leg: 2, Home: side(cupB, 47, "B1", "B2"), Away: side(cupA, 52, "A9", "A8")},
		}},
	}

	result, err := Scan(rounds, DefaultRules())
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	stat := result.TeamStats["c1"]
	if stat.LastRound != "4.2" || stat.LastScore != 52 {
		t.Fatalf("expected last showing 4.2/52, got %+v", stat)
	}
	if len(stat.LastLineup) != 2 || stat.LastLineup[0].Name != "A9" {
		t.Fatalf("unexpected last lineup: %+v", stat.LastLineup)
	}
}

func TestScan_SuspensionIndependentPerTournament(t *testing.T) {
	t.Parallel()

	rounds := []Round{
		{Number: 1, Matches: []Match{{Leg: 1, Home: side(cupA, 40, "Capi", "A2"), Away: side(cupB, 38, "B1", "B2")}}},
		{Number: 2, Matches: []Match{{Leg: 1, Home: side(cupA, 40, "Capi", "A2"), Away: side(cupC, 38, "C1", "C2")}}},
		{Number: 3, Matches: []Match{{Leg: 1, Home: side(cupA, 40, "Capi", "A2"), Away: side(cupD, 38, "D1", "D2")}}},
	}

	result, err := Scan(rounds, DefaultRules())
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	if len(result.Suspensions) != 1 {
		t.Fatalf("expected one suspension, got %+v", result.Suspensions)
	}
	susp := result.Suspensions[0]
	if susp.TeamID != "c1" || susp.TriggerRound != 3 || susp.OutTeamUntil != 6 || susp.NoCaptainUntil != 9 {
		t.Fatalf("unexpected suspension: %+v", susp)
	}
}
