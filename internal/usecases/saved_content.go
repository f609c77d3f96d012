package usecases

import (
	"context"

	"trendboard/internal/domain"
	"trendboard/internal/metrics"
	"trendboard/pkg/log"
)

// SavedContentUseCase browses the user's saved content. When the backend
// cannot list it, the static saved list is served and flagged as such.
type SavedContentUseCase struct {
	store    ContentStore
	fallback FallbackData
}

// NewSavedContentUseCase creates a new SavedContentUseCase.
func NewSavedContentUseCase(store ContentStore, fallback FallbackData) *SavedContentUseCase {
	return &SavedContentUseCase{
		store:    store,
		fallback: fallback,
	}
}

// List returns the saved items passing filter and whether they came from
// the fallback list.
func (uc *SavedContentUseCase) List(ctx context.Context, filter domain.SavedFilter) ([]domain.SavedContent, bool) {
	items, fromFallback := uc.all(ctx)

	out := make([]domain.SavedContent, 0, len(items))
	for _, item := range items {
		if filter.Match(item) {
			out = append(out, item)
		}
	}
	return out, fromFallback
}

// Facets returns the distinct content types and platforms of the saved
// list in first-seen order.
func (uc *SavedContentUseCase) Facets(ctx context.Context) domain.Facets {
	items, _ := uc.all(ctx)

	facets := domain.Facets{
		Categories: []domain.ContentType{},
		Platforms:  []domain.Platform{},
	}
	seenType := make(map[domain.ContentType]bool)
	seenPlatform := make(map[domain.Platform]bool)
	for _, item := range items {
		if !seenType[item.ContentType] {
			seenType[item.ContentType] = true
			facets.Categories = append(facets.Categories, item.ContentType)
		}
		if !seenPlatform[item.Platform] {
			seenPlatform[item.Platform] = true
			facets.Platforms = append(facets.Platforms, item.Platform)
		}
	}
	return facets
}

func (uc *SavedContentUseCase) all(ctx context.Context) ([]domain.SavedContent, bool) {
	items, err := uc.store.SavedContent(ctx)
	if err != nil {
		reason := fallbackReason(err)
		metrics.Fallback("saved_content", reason)
		log.GlobalWarnCtx(ctx, "saved content listing failed, serving fallback", "reason", reason, "error", err)
		return uc.fallback.Saved(), true
	}
	return items, false
}
