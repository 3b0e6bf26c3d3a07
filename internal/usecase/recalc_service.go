package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/javiermp/futmondo-engine/internal/domain/archive"
	"github.com/javiermp/futmondo-engine/internal/platform/logging"
)

const (
	recalcStatusSuccess = "success"
	recalcStatusFailed  = "failed"

	defaultRecalcWorkers = 4
)

// Championship bundles one competition's inputs for a bulk recomputation.
// Hosts running several peñas recalculate them in one call.
type Championship struct {
	Name    string
	Source  RoundSource
	Archive archive.Archive
}

// RecalcRow reports one championship's outcome.
type RecalcRow struct {
	Championship string
	Status       string
	Message      string
	DurationMs   int64
}

// RecalcResult aggregates a bulk run. Dashboards holds the successfully
// computed composites keyed by championship name.
type RecalcResult struct {
	Rows         []RecalcRow
	Dashboards   map[string]Dashboard
	SuccessCount int
	FailedCount  int
}

type RecalcService struct {
	workers int
	logger  *logging.Logger
}

func NewRecalcService() *RecalcService {
	return &RecalcService{
		workers: defaultRecalcWorkers,
		logger:  logging.Default(),
	}
}

// WithWorkers bounds the pool size for the next runs.
func (s *RecalcService) WithWorkers(workers int) *RecalcService {
	if workers > 0 {
		s.workers = workers
	}
	return s
}

// RecalcAll recomputes every championship over a bounded worker pool and
// reports per-championship outcomes. A failing championship does not stop
// the others.
func (s *RecalcService) RecalcAll(ctx context.Context, championships []Championship) (RecalcResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalcService.RecalcAll")
	defer span.End()

	if len(championships) == 0 {
		return RecalcResult{}, fmt.Errorf("%w: at least one championship is required", ErrInvalidInput)
	}
	for i, championship := range championships {
		if championship.Name == "" || championship.Source == nil {
			return RecalcResult{}, fmt.Errorf("%w: championship %d missing name or source", ErrInvalidInput, i)
		}
	}

	workerCount := s.workers
	if workerCount > len(championships) {
		workerCount = len(championships)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecalcResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	type recalcOutcome struct {
		row       RecalcRow
		dashboard Dashboard
	}

	outcomes := make(chan recalcOutcome, len(championships))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var workers sync.WaitGroup

	for _, championship := range championships {
		championship := championship
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RecalcRow{Championship: championship.Name}

			service := NewDashboardService(championship.Source, championship.Archive, championship.Name).
				WithLogger(s.logger)
			dashboard, runErr := service.Dashboard(ctx)
			row.DurationMs = time.Since(start).Milliseconds()

			if runErr != nil {
				row.Status = recalcStatusFailed
				row.Message = runErr.Error()
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "championship recalc failed",
					"championship", championship.Name, "error", runErr)
			} else {
				row.Status = recalcStatusSuccess
				successCount.Add(1)
			}

			outcomes <- recalcOutcome{row: row, dashboard: dashboard}
		}); err != nil {
			workers.Done()
			return RecalcResult{}, fmt.Errorf("submit championship to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(outcomes)

	result := RecalcResult{Dashboards: make(map[string]Dashboard)}
	for outcome := range outcomes {
		result.Rows = append(result.Rows, outcome.row)
		if outcome.row.Status == recalcStatusSuccess {
			result.Dashboards[outcome.row.Championship] = outcome.dashboard
		}
	}

	sort.SliceStable(result.Rows, func(i, j int) bool {
		return result.Rows[i].Championship < result.Rows[j].Championship
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}
