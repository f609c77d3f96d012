package backend

import (
	"context"
	"fmt"
	"math"
	"net/url"

	"trendboard/internal/domain"
)

// Only the current day is served live by the backend.
const liveRange = "today"

type xTrendsResponse struct {
	Data []struct {
		Name      string  `json:"name"`
		PostCount float64 `json:"post_count"`
		Relevance float64 `json:"relevance"`
	} `json:"data"`
}

type tiktokTrendsResponse struct {
	Data *struct {
		Collection []struct {
			Title        string  `json:"title"`
			PublishCount float64 `json:"publish_count"`
			VideoViews   float64 `json:"video_views"`
		} `json:"collection"`
	} `json:"data"`
}

type youtubeTrendsResponse struct {
	Data []struct {
		Title  string  `json:"title"`
		Rating float64 `json:"rating"`
	} `json:"data"`
}

// FetchTrends returns today's trends for platform, mapped from the
// platform's own response shape. An empty list is ErrNoTrends.
func (c *Client) FetchTrends(ctx context.Context, platform domain.Platform) ([]domain.Trend, error) {
	endpoint := "/api/" + platform.UpstreamName()
	query := url.Values{"range": {liveRange}}

	var (
		trends []domain.Trend
		err    error
	)
	switch platform {
	case domain.PlatformX:
		var resp xTrendsResponse
		if err = c.do(ctx, "GET", endpoint, query, nil, &resp); err == nil {
			trends, err = mapXTrends(resp)
		}
	case domain.PlatformTikTok:
		var resp tiktokTrendsResponse
		if err = c.do(ctx, "GET", endpoint, query, nil, &resp); err == nil {
			trends, err = mapTikTokTrends(resp)
		}
	case domain.PlatformYouTube:
		var resp youtubeTrendsResponse
		if err = c.do(ctx, "GET", endpoint, query, nil, &resp); err == nil {
			trends, err = mapYouTubeTrends(resp)
		}
	default:
		return nil, domain.ErrInvalidPlatform
	}
	if err != nil {
		return nil, err
	}
	if len(trends) == 0 {
		return nil, fmt.Errorf("GET %s: %w", endpoint, domain.ErrNoTrends)
	}
	return trends, nil
}

// X reports a 0-1 relevance and no view count; views are estimated at 100
// per post.
func mapXTrends(resp xTrendsResponse) ([]domain.Trend, error) {
	trends := make([]domain.Trend, 0, len(resp.Data))
	for i, item := range resp.Data {
		if item.Name == "" {
			return nil, malformed("x", i, "name")
		}
		posts := count(item.PostCount)
		trends = append(trends, domain.Trend{
			Tag:       item.Name,
			PostCount: posts,
			ViewCount: posts * 100,
			Relevance: domain.NormalizeRelevance(item.Relevance),
			Platform:  domain.PlatformX,
		})
	}
	return trends, nil
}

// TikTok has no score, so relevance is the share of the collection's most
// viewed entry.
func mapTikTokTrends(resp tiktokTrendsResponse) ([]domain.Trend, error) {
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: tiktok response has no data", domain.ErrMalformedResponse)
	}

	var maxViews float64
	for _, item := range resp.Data.Collection {
		maxViews = math.Max(maxViews, item.VideoViews)
	}

	trends := make([]domain.Trend, 0, len(resp.Data.Collection))
	for i, item := range resp.Data.Collection {
		if item.Title == "" {
			return nil, malformed("tiktok", i, "title")
		}
		var share float64
		if maxViews > 0 {
			share = item.VideoViews / maxViews
		}
		trends = append(trends, domain.Trend{
			Tag:       item.Title,
			PostCount: count(item.PublishCount),
			ViewCount: count(item.VideoViews),
			Relevance: domain.NormalizeRelevance(share),
			Platform:  domain.PlatformTikTok,
		})
	}
	return trends, nil
}

// YouTube reports only a 0-100 rating; counts are derived from it.
func mapYouTubeTrends(resp youtubeTrendsResponse) ([]domain.Trend, error) {
	trends := make([]domain.Trend, 0, len(resp.Data))
	for i, item := range resp.Data {
		if item.Title == "" {
			return nil, malformed("youtube", i, "title")
		}
		trends = append(trends, domain.Trend{
			Tag:       item.Title,
			PostCount: count(item.Rating * 1000),
			ViewCount: count(item.Rating * 10000),
			Relevance: domain.NormalizeRelevance(item.Rating),
			Platform:  domain.PlatformYouTube,
		})
	}
	return trends, nil
}

func count(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return domain.NonNegative(int64(math.Floor(v)))
}

func malformed(platform string, index int, field string) error {
	return fmt.Errorf("%w: %s trend %d has no %s", domain.ErrMalformedResponse, platform, index, field)
}
