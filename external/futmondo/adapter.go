// Package futmondo adapts raw upstream payloads into the canonical engine
// shapes. Every historical spelling quirk of the API is absorbed here so the
// engines' input contract stays rigid: one player array per lineup, one
// boolean captain flag per player.
package futmondo

import (
	"fmt"
	"sort"

	crerr "github.com/cockroachdb/errors"

	"github.com/javiermp/futmondo-engine/internal/domain/cup"
	"github.com/javiermp/futmondo-engine/internal/domain/lineup"
	"github.com/javiermp/futmondo-engine/internal/domain/round"
	"github.com/javiermp/futmondo-engine/internal/domain/team"
)

// ErrMalformedPayload wraps every decode failure in this package.
var ErrMalformedPayload = crerr.New("malformed futmondo payload")

// DecodeTeams decodes the league's team list. Entries without both an id and
// a name are dropped.
func DecodeTeams(raw []byte) ([]team.Team, error) {
	var payload []teamPayload
	if err := unwrapData(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode teams: %v", ErrMalformedPayload, err)
	}

	teams := make([]team.Team, 0, len(payload))
	for _, entry := range payload {
		if entry.ID == "" && entry.Name == "" {
			continue
		}
		teams = append(teams, team.Team{ID: entry.ID, Name: entry.Name})
	}
	return teams, nil
}

// DecodeLeagueRound decodes one league fixture week. Matches with fewer than
// two participants are dropped; absent lineups map to empty slices so the
// engines degrade gracefully on partial live data.
func DecodeLeagueRound(raw []byte) (round.Round, error) {
	var payload roundPayload
	if err := unwrapData(raw, &payload); err != nil {
		return round.Round{}, fmt.Errorf("%w: decode league round: %v", ErrMalformedPayload, err)
	}
	if payload.number() <= 0 {
		return round.Round{}, fmt.Errorf("%w: league round without a number", ErrMalformedPayload)
	}

	result := round.Round{Number: payload.number()}
	for _, entry := range payload.Ranking {
		result.Ranking = append(result.Ranking, round.RankingEntry{
			Position: entry.Position,
			TeamID:   entry.ID,
			TeamName: entry.Name,
		})
	}
	for _, match := range payload.Matches {
		if len(match.Participants) < 2 {
			continue
		}
		mapped := round.Match{
			HomePos: match.Participants[0],
			AwayPos: match.Participants[1],
		}
		if len(match.Score) > 0 {
			mapped.HomeScore = float64(match.Score[0])
		}
		if len(match.Score) > 1 {
			mapped.AwayScore = float64(match.Score[1])
		}
		if field, ok := match.homeLineup(); ok {
			mapped.HomeLineup = mapPlayers(field.Players)
		}
		if field, ok := match.awayLineup(); ok {
			mapped.AwayLineup = mapPlayers(field.Players)
		}
		result.Matches = append(result.Matches, mapped)
	}
	return result, nil
}

// DecodeLeagueRounds decodes a batch of round payloads and returns them
// sorted by round number.
func DecodeLeagueRounds(raws [][]byte) ([]round.Round, error) {
	rounds := make([]round.Round, 0, len(raws))
	for i, raw := range raws {
		decoded, err := DecodeLeagueRound(raw)
		if err != nil {
			return nil, fmt.Errorf("league round payload %d: %w", i, err)
		}
		rounds = append(rounds, decoded)
	}
	sort.SliceStable(rounds, func(i, j int) bool { return rounds[i].Number < rounds[j].Number })
	return rounds, nil
}

// DecodeCupRound decodes one elimination stage with its legs.
func DecodeCupRound(raw []byte) (cup.Round, error) {
	var payload cupRoundPayload
	if err := unwrapData(raw, &payload); err != nil {
		return cup.Round{}, fmt.Errorf("%w: decode cup round: %v", ErrMalformedPayload, err)
	}
	if payload.number() <= 0 {
		return cup.Round{}, fmt.Errorf("%w: cup round without a number", ErrMalformedPayload)
	}

	result := cup.Round{Number: payload.number()}
	for _, match := range payload.Matches {
		leg := match.Leg
		if leg <= 0 {
			leg = 1
		}
		result.Matches = append(result.Matches, cup.Match{
			Leg:  leg,
			Home: mapCupSide(match.Home),
			Away: mapCupSide(match.Away),
		})
	}
	return result, nil
}

// DecodeCupRounds decodes a batch of cup stage payloads sorted by number.
func DecodeCupRounds(raws [][]byte) ([]cup.Round, error) {
	rounds := make([]cup.Round, 0, len(raws))
	for i, raw := range raws {
		decoded, err := DecodeCupRound(raw)
		if err != nil {
			return nil, fmt.Errorf("cup round payload %d: %w", i, err)
		}
		rounds = append(rounds, decoded)
	}
	sort.SliceStable(rounds, func(i, j int) bool { return rounds[i].Number < rounds[j].Number })
	return rounds, nil
}

func mapCupSide(side cupSidePayload) cup.Side {
	mapped := cup.Side{
		Team:  team.Team{ID: side.Team.ID, Name: side.Team.Name},
		Score: float64(side.Score),
	}
	if side.Lineup.Set {
		mapped.Lineup = mapPlayers(side.Lineup.Players)
	}
	return mapped
}

func mapPlayers(payload []playerPayload) []lineup.Player {
	players := make([]lineup.Player, 0, len(payload))
	for _, entry := range payload {
		if entry.Name == "" {
			continue
		}
		players = append(players, lineup.Player{
			Name:      entry.Name,
			Points:    float64(entry.Points),
			IsCaptain: entry.captainFlag(),
			Club:      string(entry.Club),
		})
	}
	return players
}
