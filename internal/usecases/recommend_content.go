package usecases

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"trendboard/internal/domain"
	"trendboard/internal/metrics"
	"trendboard/pkg/log"
)

// maxHashtags is how many deduplicated tags seed the generation prompts.
const maxHashtags = 3

// RecommendContentUseCase composes one content idea per platform from the
// current trends. Composition is all-or-nothing: any failed generation
// yields the fixed fallback recommendations instead.
type RecommendContentUseCase struct {
	trends    *GetTrendsUseCase
	generator ContentGenerator
	fallback  FallbackData
}

// NewRecommendContentUseCase creates a new RecommendContentUseCase.
func NewRecommendContentUseCase(trends *GetTrendsUseCase, generator ContentGenerator, fallback FallbackData) *RecommendContentUseCase {
	return &RecommendContentUseCase{
		trends:    trends,
		generator: generator,
		fallback:  fallback,
	}
}

// Execute returns exactly one recommendation per platform, in platform
// order, or the fallback list.
func (uc *RecommendContentUseCase) Execute(ctx context.Context, period domain.TimePeriod) []domain.ContentRecommendation {
	ctx = log.WithFields(ctx, "period", period)
	hashtags := uc.selectHashtags(ctx, period)

	recs, err := uc.generateAll(ctx, hashtags)
	if err != nil {
		reason := fallbackReason(err)
		metrics.Fallback("recommendations", reason)
		log.GlobalWarnCtx(ctx, "content generation failed, serving fallback", "reason", reason, "error", err)
		return uc.fallback.Recommendations()
	}

	log.GlobalDebugCtx(ctx, "content generated", "hashtags", hashtags, "count", len(recs))
	return recs
}

// selectHashtags fetches every platform's trends concurrently, flattens them
// in platform order and keeps the first distinct tags.
func (uc *RecommendContentUseCase) selectHashtags(ctx context.Context, period domain.TimePeriod) []string {
	perPlatform := make([][]domain.Trend, len(domain.Platforms))

	var g errgroup.Group
	for i, platform := range domain.Platforms {
		g.Go(func() error {
			perPlatform[i] = uc.trends.Execute(ctx, platform, period)
			return nil
		})
	}
	_ = g.Wait()

	var tags []string
	for _, trends := range perPlatform {
		tags = append(tags, domain.Tags(trends)...)
	}
	tags = domain.Dedupe(tags)
	if len(tags) > maxHashtags {
		tags = tags[:maxHashtags]
	}
	return tags
}

// generateAll issues one generation per platform. The first failure cancels
// the others.
func (uc *RecommendContentUseCase) generateAll(ctx context.Context, hashtags []string) ([]domain.ContentRecommendation, error) {
	recs := make([]domain.ContentRecommendation, len(domain.Platforms))

	g, gctx := errgroup.WithContext(ctx)
	for i, platform := range domain.Platforms {
		g.Go(func() error {
			rec, err := uc.generator.Generate(gctx, platform, hashtags)
			if err != nil {
				return fmt.Errorf("generate for %s: %w", platform, err)
			}
			rec.Platform = platform
			rec.Relevance = domain.ClampRelevance(rec.Relevance)
			rec.IsSaved = false
			recs[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return recs, nil
}
