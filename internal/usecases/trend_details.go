package usecases

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"time"

	"trendboard/internal/domain"
)

const historyDays = 7

var insightTypes = []domain.InsightType{
	domain.InsightViral,
	domain.InsightGrowing,
	domain.InsightStable,
	domain.InsightDeclining,
}

// TrendDetailsUseCase builds the drill-down view of a trend. The numbers
// are synthesized from a generator seeded by platform and tag, so the same
// trend always gets the same figures.
type TrendDetailsUseCase struct {
	now func() time.Time
}

// NewTrendDetailsUseCase creates a new TrendDetailsUseCase using now for
// history dates. A nil now uses time.Now.
func NewTrendDetailsUseCase(now func() time.Time) *TrendDetailsUseCase {
	if now == nil {
		now = time.Now
	}
	return &TrendDetailsUseCase{now: now}
}

// Execute returns the details of tag on platform.
func (uc *TrendDetailsUseCase) Execute(platform domain.Platform, tag string) (domain.TrendDetails, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return domain.TrendDetails{}, domain.ErrInvalidTag
	}

	rng := seededRand(platform, tag)
	hashtag := "#" + strings.TrimPrefix(tag, "#")
	host := string(platform) + ".com"

	d := domain.TrendDetails{
		ID:          fmt.Sprintf("trend-%s-%s", platform, tag),
		Tag:         tag,
		Platform:    platform,
		Volume:      rng.IntN(1000000) + 100000,
		Growth:      rng.IntN(100) + 10,
		Relevance:   rng.IntN(51) + 50,
		Description: fmt.Sprintf("This trend represents %s on %s. It's gaining traction among users interested in this topic.", tag, platform),
		RelatedHashtags: []string{
			tag + "trend",
			tag + "2024",
			tag + "news",
			tag + "update",
			tag + "community",
		},
	}

	posts := []struct{ author, content string }{
		{"user123", fmt.Sprintf("Check out this amazing content about %s! %s #trending", tag, hashtag)},
		{"expert456", fmt.Sprintf("New insights about %s that you need to know! %s #insights", tag, hashtag)},
		{"influencer789", fmt.Sprintf("Why %s is changing the game right now %s #innovation", tag, hashtag)},
	}
	d.TopPosts = make([]domain.TopPost, len(posts))
	for i, p := range posts {
		d.TopPosts[i] = domain.TopPost{
			ID:      fmt.Sprintf("post-%d", i+1),
			Content: p.content,
			Author:  p.author,
			Likes:   rng.IntN(10000) + 1000,
			Shares:  rng.IntN(1000) + 100,
			URL:     fmt.Sprintf("https://%s/post/%d", host, i+1),
		}
	}

	today := uc.now().UTC()
	d.TrendHistory = make([]domain.HistoryPoint, historyDays)
	for i := range d.TrendHistory {
		d.TrendHistory[i] = domain.HistoryPoint{
			Date:   today.AddDate(0, 0, i-(historyDays-1)).Format(time.DateOnly),
			Volume: rng.IntN(1000000) + 100000,
		}
	}

	d.Insights = domain.Insights{
		Type:              insightTypes[rng.IntN(len(insightTypes))],
		PeakTime:          "14:00-16:00",
		AverageEngagement: rng.IntN(50) + 20,
		RecommendedAction: fmt.Sprintf("Consider creating content about %s during peak hours to maximize engagement.", tag),
	}
	return d, nil
}

func seededRand(platform domain.Platform, tag string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(platform))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(tag))
	seed := h.Sum64()
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
