package usecases

import (
	"context"

	"trendboard/internal/domain"
)

// TrendFetcher retrieves live trends for one platform.
type TrendFetcher interface {
	FetchTrends(ctx context.Context, platform domain.Platform) ([]domain.Trend, error)
}

// ContentGenerator turns hashtags into a content idea for one platform.
type ContentGenerator interface {
	Generate(ctx context.Context, platform domain.Platform, hashtags []string) (domain.ContentRecommendation, error)
}

// ContentStore holds the user's saved content.
type ContentStore interface {
	SavedContent(ctx context.Context) ([]domain.SavedContent, error)
	SetSaved(ctx context.Context, id string, saved bool) error
}

// ProfileStore holds the user's profile.
type ProfileStore interface {
	GetProfile(ctx context.Context) (domain.Profile, error)
	UpdateProfile(ctx context.Context, p domain.Profile) (domain.Profile, error)
}

// FallbackData is the static data served when the backend cannot be used.
type FallbackData interface {
	Trends(platform domain.Platform) []domain.Trend
	Recommendations() []domain.ContentRecommendation
	Saved() []domain.SavedContent
}
