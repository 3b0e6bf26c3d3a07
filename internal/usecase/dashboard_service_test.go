package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/javiermp/futmondo-engine/internal/domain/archive"
	"github.com/javiermp/futmondo-engine/internal/domain/cup"
	"github.com/javiermp/futmondo-engine/internal/domain/lineup"
	"github.com/javiermp/futmondo-engine/internal/domain/round"
	"github.com/javiermp/futmondo-engine/internal/domain/team"
)

type stubSource struct {
	teams     []team.Team
	league    []round.Round
	cupRounds []cup.Round
	err       error
}

func (s *stubSource) Teams(context.Context) ([]team.Team, error) {
	return s.teams, s.err
}

func (s *stubSource) LeagueRounds(context.Context) ([]round.Round, error) {
	return s.league, s.err
}

func (s *stubSource) CupRounds(context.Context) ([]cup.Round, error) {
	return s.cupRounds, s.err
}

func testSource() *stubSource {
	teams := []team.Team{
		{ID: "t1", Name: "Peñas Arriba CF"},
		{ID: "t2", Name: "Samba Rovinha"},
	}
	ranking := []round.RankingEntry{
		{Position: 1, TeamID: "t1", TeamName: "Peñas Arriba CF"},
		{Position: 2, TeamID: "t2", TeamName: "Samba Rovinha"},
	}
	lineupOf := func(captain, other string) []lineup.Player {
		return []lineup.Player{
			{Name: captain, Points: 10, IsCaptain: true, Club: "club-" + captain},
			{Name: other, Points: 8, Club: "club-" + other},
		}
	}

	return &stubSource{
		teams: teams,
		league: []round.Round{
			{
				Number:  20,
				Ranking: ranking,
				Matches: []round.Match{{
					HomePos: 1, AwayPos: 2, HomeScore: 44, AwayScore: 41,
					HomeLineup: lineupOf("Pedro", "Luka"),
					AwayLineup: lineupOf("Benzema", "Rodri"),
				}},
			},
		},
		cupRounds: []cup.Round{
			{
				Number: 1,
				Matches: []cup.Match{{
					Leg: 1,
					Home: cup.Side{Team: teams[0], Score: 44, Lineup: lineupOf("Pedro", "Luka")},
					Away: cup.Side{Team: teams[1], Score: 41, Lineup: lineupOf("Benzema", "Rodri")},
				}},
			},
		},
	}
}

func TestDashboardService_Dashboard(t *testing.T) {
	t.Parallel()

	service := NewDashboardService(testSource(), archive.Archive{}, "Liga Peñas")

	dashboard, err := service.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, dashboard.Standings, 2)
	require.Equal(t, "t1", dashboard.Standings[0].TeamID)
	require.Equal(t, 3, dashboard.Standings[0].Points)

	require.Contains(t, dashboard.League.Ledgers, "t1")
	require.Contains(t, dashboard.Cup.Ledgers, "t1")
	require.Equal(t, "1.1", dashboard.Cup.CaptainHistory["t1"][0].Round)

	again, err := service.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, dashboard, again)
}

func TestDashboardService_ContractViolations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := NewDashboardService(nil, archive.Archive{}, "Liga").Dashboard(ctx)
	require.ErrorIs(t, err, ErrInvalidInput)

	empty := &stubSource{}
	_, err = NewDashboardService(empty, archive.Archive{}, "Liga").Dashboard(ctx)
	require.ErrorIs(t, err, ErrInvalidInput)

	broken := testSource()
	broken.teams = []team.Team{{ID: "t1"}}
	_, err = NewDashboardService(broken, archive.Archive{}, "Liga").Dashboard(ctx)
	require.ErrorIs(t, err, ErrInvalidInput)

	failing := testSource()
	failing.err = errors.New("upstream down")
	_, err = NewDashboardService(failing, archive.Archive{}, "Liga").Dashboard(ctx)
	require.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestDashboardService_ActiveSuspensions(t *testing.T) {
	t.Parallel()

	source := testSource()
	// Pedro already captained twice in the archive; the live round 20 is the
	// 3rd use and opens [23, 26].
	arch := archive.Archive{CaptainRounds: []archive.CaptainRound{
		{Round: 5, CaptainByTeam: map[string]string{"Peñas Arriba CF": "Pedro"}},
		{Round: 9, CaptainByTeam: map[string]string{"Peñas Arriba CF": "Pedro"}},
	}}

	service := NewDashboardService(source, arch, "Liga Peñas")

	active, err := service.ActiveSuspensions(context.Background(), 24)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "pedro", active[0].Player)
	require.Equal(t, 23, active[0].OutTeamUntil)
	require.Equal(t, 26, active[0].NoCaptainUntil)

	expired, err := service.ActiveSuspensions(context.Background(), 27)
	require.NoError(t, err)
	require.Empty(t, expired)

	_, err = service.ActiveSuspensions(context.Background(), 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}
