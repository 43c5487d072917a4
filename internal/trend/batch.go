package trend

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lucbaten/attune/internal/domain"
)

// analyzeConcurrency bounds the batch fan-out. Fits are cheap arithmetic;
// the limit mostly keeps large multi-goal batches from spawning a goroutine
// per goal.
const analyzeConcurrency = 8

// AnalyzeAll fits every goal's history in parallel and returns the published
// set: goals with too little data or a fit below the confidence bar are
// omitted, not errored.
func AnalyzeAll(ctx context.Context, histories map[string][]domain.ProgressEntry, now time.Time) (map[string]*domain.TrendAnalysis, error) {
	results := make(map[string]*domain.TrendAnalysis, len(histories))
	var mu sync.Mutex

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(analyzeConcurrency)

	for goalID, entries := range histories {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			analysis := AnalyzeTrend(goalID, entries, now)
			if !Published(analysis) {
				return nil
			}
			mu.Lock()
			results[goalID] = analysis
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
