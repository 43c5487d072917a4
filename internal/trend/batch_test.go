package trend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucbaten/attune/internal/domain"
)

func TestAnalyzeAll_PublishesOnlyConfidentFits(t *testing.T) {
	start := trendNow.AddDate(0, 0, -9)

	flat := make([]domain.ProgressEntry, 6)
	for i := range flat {
		flat[i] = domain.ProgressEntry{Timestamp: start.AddDate(0, 0, i), Progress: 40}
	}

	histories := map[string][]domain.ProgressEntry{
		"climbing": rampEntries(start, 10, 10),
		"sparse":   rampEntries(start, 3, 10),
		"flat":     flat,
	}

	results, err := AnalyzeAll(context.Background(), histories, trendNow)
	require.NoError(t, err)

	require.Len(t, results, 1)
	require.Contains(t, results, "climbing")
	assert.Equal(t, domain.TrendImproving, results["climbing"].Trend)
}

func TestAnalyzeAll_EmptyInput(t *testing.T) {
	results, err := AnalyzeAll(context.Background(), nil, trendNow)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAnalyzeAll_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	histories := map[string][]domain.ProgressEntry{
		"g": rampEntries(trendNow.AddDate(0, 0, -9), 10, 10),
	}

	_, err := AnalyzeAll(ctx, histories, trendNow)
	assert.Error(t, err)
}
