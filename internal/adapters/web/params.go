package web

import (
	"strings"

	"trendboard/internal/domain"
)

// ParseTrendParams validates the platform path segment and the period query
// value. An empty period means today.
func ParseTrendParams(platform, period string) (domain.Platform, domain.TimePeriod, error) {
	p, err := domain.ParsePlatform(platform)
	if err != nil {
		return "", "", err
	}
	tp, err := domain.ParsePeriod(period)
	if err != nil {
		return "", "", err
	}
	return p, tp, nil
}

// ParseSavedFilter builds a saved-content filter from optional query values.
// Empty values and "all" match everything.
func ParseSavedFilter(platform, contentType string) (domain.SavedFilter, error) {
	var f domain.SavedFilter

	if v := strings.TrimSpace(platform); v != "" && !strings.EqualFold(v, "all") {
		p, err := domain.ParsePlatform(v)
		if err != nil {
			return domain.SavedFilter{}, err
		}
		f.Platform = p
	}
	if v := strings.TrimSpace(contentType); v != "" && !strings.EqualFold(v, "all") {
		ct, err := domain.ParseContentType(v)
		if err != nil {
			return domain.SavedFilter{}, err
		}
		f.ContentType = ct
	}
	return f, nil
}
