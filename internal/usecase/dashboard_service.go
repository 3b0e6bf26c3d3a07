package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc/pool"

	"github.com/javiermp/futmondo-engine/internal/domain/archive"
	"github.com/javiermp/futmondo-engine/internal/domain/cup"
	"github.com/javiermp/futmondo-engine/internal/domain/round"
	"github.com/javiermp/futmondo-engine/internal/domain/sanction"
	"github.com/javiermp/futmondo-engine/internal/domain/standings"
	"github.com/javiermp/futmondo-engine/internal/domain/team"
	"github.com/javiermp/futmondo-engine/internal/platform/cache"
	"github.com/javiermp/futmondo-engine/internal/platform/logging"
)

// RoundSource hands the engine fully materialized data. The host owns the
// HTTP client, retries and response caching; by the time a slice reaches this
// interface every lineup for the rounds it covers must be resolved.
type RoundSource interface {
	Teams(ctx context.Context) ([]team.Team, error)
	LeagueRounds(ctx context.Context) ([]round.Round, error)
	CupRounds(ctx context.Context) ([]cup.Round, error)
}

// Dashboard is the composite the presentation layer renders: the table, the
// league ledger and the cup ledger, computed from one consistent snapshot.
type Dashboard struct {
	Standings []standings.Row
	League    sanction.Result
	Cup       cup.Result
}

const defaultDashboardTTL = 30 * time.Second

type DashboardService struct {
	source       RoundSource
	archive      archive.Archive
	championship string
	tariff       sanction.Tariff
	cupRules     cup.Rules
	cache        *cache.Store
	validate     *validator.Validate
	logger       *logging.Logger
}

func NewDashboardService(source RoundSource, arch archive.Archive, championshipName string) *DashboardService {
	return &DashboardService{
		source:       source,
		archive:      arch,
		championship: championshipName,
		tariff:       sanction.DefaultTariff(),
		cupRules:     cup.DefaultRules(),
		cache:        cache.NewStore(defaultDashboardTTL),
		validate:     validator.New(),
		logger:       logging.Default(),
	}
}

// WithTariff overrides the default penalty amounts for both competitions.
func (s *DashboardService) WithTariff(tariff sanction.Tariff) *DashboardService {
	s.tariff = tariff
	s.cupRules.Tariff = tariff
	return s
}

// WithLogger replaces the process-default logger.
func (s *DashboardService) WithLogger(logger *logging.Logger) *DashboardService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Dashboard fetches the current snapshot from the source and computes
// standings, league sanctions and cup sanctions. The three passes are
// independent and run concurrently; results are memoized on a content
// fingerprint so unchanged data is not recomputed on every page view.
func (s *DashboardService) Dashboard(ctx context.Context) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Dashboard")
	defer span.End()

	if s.source == nil {
		return Dashboard{}, fmt.Errorf("%w: round source is required", ErrInvalidInput)
	}

	teams, err := s.source.Teams(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("%w: list teams: %v", ErrDependencyUnavailable, err)
	}
	if len(teams) == 0 {
		return Dashboard{}, fmt.Errorf("%w: team list is empty", ErrInvalidInput)
	}
	for _, tm := range teams {
		if err := s.validate.StructCtx(ctx, tm); err != nil {
			return Dashboard{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	leagueRounds, err := s.source.LeagueRounds(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("%w: list league rounds: %v", ErrDependencyUnavailable, err)
	}
	cupRounds, err := s.source.CupRounds(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("%w: list cup rounds: %v", ErrDependencyUnavailable, err)
	}

	key := s.fingerprint(teams, leagueRounds, cupRounds)
	value, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.compute(ctx, teams, leagueRounds, cupRounds)
	})
	if err != nil {
		return Dashboard{}, err
	}

	dashboard, ok := value.(Dashboard)
	if !ok {
		return Dashboard{}, fmt.Errorf("unexpected cached payload type %T", value)
	}
	return dashboard, nil
}

// ActiveSuspensions filters the league suspension registry down to windows
// still covering currentRound.
func (s *DashboardService) ActiveSuspensions(ctx context.Context, currentRound int) ([]sanction.Suspension, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.ActiveSuspensions")
	defer span.End()

	if currentRound <= 0 {
		return nil, fmt.Errorf("%w: current round must be positive", ErrInvalidInput)
	}

	dashboard, err := s.Dashboard(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]sanction.Suspension, 0)
	for _, susp := range dashboard.League.Suspensions {
		if susp.ActiveAt(currentRound) {
			active = append(active, susp)
		}
	}
	return active, nil
}

func (s *DashboardService) compute(ctx context.Context, teams []team.Team, leagueRounds []round.Round, cupRounds []cup.Round) (Dashboard, error) {
	started := time.Now()

	var dashboard Dashboard
	workers := pool.New().WithErrors()

	workers.Go(func() error {
		dashboard.Standings = standings.Calculate(leagueRounds, s.archive.SeasonTotals)
		return nil
	})
	workers.Go(func() error {
		result, err := sanction.Calculate(leagueRounds, teams, s.archive, sanction.Options{
			ChampionshipName: s.championship,
			Tariff:           s.tariff,
		})
		if err != nil {
			return fmt.Errorf("league sanctions: %w", err)
		}
		dashboard.League = result
		return nil
	})
	workers.Go(func() error {
		result, err := cup.Scan(cupRounds, s.cupRules)
		if err != nil {
			return fmt.Errorf("cup sanctions: %w", err)
		}
		dashboard.Cup = result
		return nil
	})

	if err := workers.Wait(); err != nil {
		return Dashboard{}, err
	}

	s.logger.DebugContext(ctx, "dashboard recomputed",
		"championship", s.championship,
		"teams", len(teams),
		"league_rounds", len(leagueRounds),
		"cup_rounds", len(cupRounds),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return dashboard, nil
}

// fingerprint keys the memo on observable input size and progress, enough to
// distinguish snapshots without hashing every lineup.
func (s *DashboardService) fingerprint(teams []team.Team, leagueRounds []round.Round, cupRounds []cup.Round) string {
	leagueMatches, leaguePlayers, lastLeague := 0, 0, 0
	for _, r := range leagueRounds {
		leagueMatches += len(r.Matches)
		for _, m := range r.Matches {
			leaguePlayers += len(m.HomeLineup) + len(m.AwayLineup)
		}
		if r.Number > lastLeague {
			lastLeague = r.Number
		}
	}
	cupMatches, cupPlayers, lastCup := 0, 0, 0
	for _, r := range cupRounds {
		cupMatches += len(r.Matches)
		for _, m := range r.Matches {
			cupPlayers += len(m.Home.Lineup) + len(m.Away.Lineup)
		}
		if r.Number > lastCup {
			lastCup = r.Number
		}
	}

	return fmt.Sprintf("dashboard:%s:t%d:l%d.%d.%d.%d:c%d.%d.%d.%d",
		s.championship, len(teams),
		len(leagueRounds), leagueMatches, leaguePlayers, lastLeague,
		len(cupRounds), cupMatches, cupPlayers, lastCup,
	)
}
