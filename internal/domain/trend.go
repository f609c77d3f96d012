// Package domain contains the core business entities and rules.
package domain

import (
	"math"
	"strings"
)

// Platform identifies a supported social network.
type Platform string

const (
	PlatformX       Platform = "x"
	PlatformTikTok  Platform = "tiktok"
	PlatformYouTube Platform = "youtube"
)

// Platforms lists every supported platform in composition order.
var Platforms = []Platform{PlatformX, PlatformTikTok, PlatformYouTube}

// ParsePlatform accepts the platform names used by the dashboard, plus
// "twitter" as an alias for X.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "twitter":
		return PlatformX, nil
	case "tiktok":
		return PlatformTikTok, nil
	case "youtube":
		return PlatformYouTube, nil
	default:
		return "", ErrInvalidPlatform
	}
}

// UpstreamName is the platform name the backend API expects in paths and
// prompt requests.
func (p Platform) UpstreamName() string {
	if p == PlatformX {
		return "twitter"
	}
	return string(p)
}

// TimePeriod selects the trend window.
type TimePeriod string

const (
	PeriodToday TimePeriod = "today"
	PeriodWeek  TimePeriod = "week"
	PeriodMonth TimePeriod = "month"
)

// ParsePeriod parses a period name. An empty string means today.
func ParsePeriod(s string) (TimePeriod, error) {
	switch TimePeriod(strings.ToLower(strings.TrimSpace(s))) {
	case "", PeriodToday:
		return PeriodToday, nil
	case PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	default:
		return "", ErrInvalidPeriod
	}
}

// Live reports whether live trend data exists for the period. Only the
// current day is served from the backend.
func (p TimePeriod) Live() bool {
	return p == PeriodToday
}

// Trend is a ranked hashtag or topic for one platform.
type Trend struct {
	Tag       string   `json:"tag" yaml:"tag"`
	PostCount int64    `json:"postCount" yaml:"posts"`
	ViewCount int64    `json:"viewCount" yaml:"views"`
	Relevance int      `json:"relevance" yaml:"relevance"`
	Platform  Platform `json:"platform" yaml:"-"`
}

// Tags returns the tags of trends in order.
func Tags(trends []Trend) []string {
	tags := make([]string, 0, len(trends))
	for _, t := range trends {
		tags = append(tags, t.Tag)
	}
	return tags
}

// NormalizeRelevance maps an upstream score onto the 0-100 integer scale.
// Values in [0,1] are fractions and are scaled by 100; anything else is taken
// as already on the percentage scale. The result is rounded and clamped.
func NormalizeRelevance(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	if v >= 0 && v <= 1 {
		v *= 100
	}
	return ClampRelevance(int(math.Round(v)))
}

// ClampRelevance limits r to [0,100].
func ClampRelevance(r int) int {
	switch {
	case r < 0:
		return 0
	case r > 100:
		return 100
	default:
		return r
	}
}

// NonNegative floors a count at zero.
func NonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
