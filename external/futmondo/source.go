package futmondo

import (
	"context"
	"fmt"

	"github.com/javiermp/futmondo-engine/internal/domain/cup"
	"github.com/javiermp/futmondo-engine/internal/domain/round"
	"github.com/javiermp/futmondo-engine/internal/domain/team"
)

// StaticSource serves fully materialized round data. Hosts fetch and decode
// the payloads up front, then hand the engines a source that never blocks.
// It satisfies usecase.RoundSource.
type StaticSource struct {
	teams     []team.Team
	league    []round.Round
	cupRounds []cup.Round
}

func NewStaticSource(teams []team.Team, league []round.Round, cupRounds []cup.Round) *StaticSource {
	return &StaticSource{teams: teams, league: league, cupRounds: cupRounds}
}

// NewStaticSourceFromPayloads decodes raw upstream payloads into a source in
// one call: the team list, one payload per league round and one per cup
// stage.
func NewStaticSourceFromPayloads(teamsRaw []byte, leagueRaws, cupRaws [][]byte) (*StaticSource, error) {
	teams, err := DecodeTeams(teamsRaw)
	if err != nil {
		return nil, fmt.Errorf("build static source: %w", err)
	}
	league, err := DecodeLeagueRounds(leagueRaws)
	if err != nil {
		return nil, fmt.Errorf("build static source: %w", err)
	}
	cupRounds, err := DecodeCupRounds(cupRaws)
	if err != nil {
		return nil, fmt.Errorf("build static source: %w", err)
	}
	return NewStaticSource(teams, league, cupRounds), nil
}

func (s *StaticSource) Teams(context.Context) ([]team.Team, error) {
	return s.teams, nil
}

func (s *StaticSource) LeagueRounds(context.Context) ([]round.Round, error) {
	return s.league, nil
}

func (s *StaticSource) CupRounds(context.Context) ([]cup.Round, error) {
	return s.cupRounds, nil
}
