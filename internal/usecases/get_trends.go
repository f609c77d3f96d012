package usecases

import (
	"context"

	"trendboard/internal/domain"
	"trendboard/internal/metrics"
	"trendboard/pkg/log"
)

// GetTrendsUseCase serves one platform's trends. Only today's trends come
// from the backend; other periods, and every failure, get the platform's
// fallback list.
type GetTrendsUseCase struct {
	fetcher  TrendFetcher
	fallback FallbackData
}

// NewGetTrendsUseCase creates a new GetTrendsUseCase.
func NewGetTrendsUseCase(fetcher TrendFetcher, fallback FallbackData) *GetTrendsUseCase {
	return &GetTrendsUseCase{
		fetcher:  fetcher,
		fallback: fallback,
	}
}

// Execute never fails and never returns an empty list.
func (uc *GetTrendsUseCase) Execute(ctx context.Context, platform domain.Platform, period domain.TimePeriod) []domain.Trend {
	ctx = log.WithFields(ctx, "platform", platform, "period", period)
	if !period.Live() {
		log.GlobalDebugCtx(ctx, "no live data for period, serving fallback")
		return uc.fallback.Trends(platform)
	}

	trends, err := uc.fetcher.FetchTrends(ctx, platform)
	if err != nil {
		reason := fallbackReason(err)
		metrics.Fallback("trends_"+string(platform), reason)
		log.GlobalWarnCtx(ctx, "trend fetch failed, serving fallback", "reason", reason, "error", err)
		return uc.fallback.Trends(platform)
	}
	if len(trends) == 0 {
		metrics.Fallback("trends_"+string(platform), "empty")
		return uc.fallback.Trends(platform)
	}

	for i := range trends {
		trends[i].Platform = platform
		trends[i].Relevance = domain.ClampRelevance(trends[i].Relevance)
		trends[i].PostCount = domain.NonNegative(trends[i].PostCount)
		trends[i].ViewCount = domain.NonNegative(trends[i].ViewCount)
	}
	return trends
}
