package web

import (
	"testing"

	"trendboard/internal/domain"
)

func TestParseTrendParams(t *testing.T) {
	tests := []struct {
		name         string
		platform     string
		period       string
		wantPlatform domain.Platform
		wantPeriod   domain.TimePeriod
		wantErr      error
	}{
		{name: "x default period", platform: "x", period: "", wantPlatform: domain.PlatformX, wantPeriod: domain.PeriodToday},
		{name: "twitter alias", platform: "twitter", period: "week", wantPlatform: domain.PlatformX, wantPeriod: domain.PeriodWeek},
		{name: "youtube month", platform: "youtube", period: "month", wantPlatform: domain.PlatformYouTube, wantPeriod: domain.PeriodMonth},
		{name: "unknown platform", platform: "facebook", period: "today", wantErr: domain.ErrInvalidPlatform},
		{name: "unknown period", platform: "tiktok", period: "decade", wantErr: domain.ErrInvalidPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform, period, err := ParseTrendParams(tt.platform, tt.period)

			if err != tt.wantErr {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if platform != tt.wantPlatform {
				t.Errorf("platform = %q, want %q", platform, tt.wantPlatform)
			}
			if period != tt.wantPeriod {
				t.Errorf("period = %q, want %q", period, tt.wantPeriod)
			}
		})
	}
}

func TestParseSavedFilter(t *testing.T) {
	tests := []struct {
		name        string
		platform    string
		contentType string
		want        domain.SavedFilter
		wantErr     error
	}{
		{name: "empty", want: domain.SavedFilter{}},
		{name: "all keyword", platform: "all", contentType: "All", want: domain.SavedFilter{}},
		{name: "both", platform: "tiktok", contentType: "video", want: domain.SavedFilter{Platform: domain.PlatformTikTok, ContentType: domain.ContentVideo}},
		{name: "bad platform", platform: "vine", wantErr: domain.ErrInvalidPlatform},
		{name: "bad type", contentType: "reel", wantErr: domain.ErrInvalidContentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSavedFilter(tt.platform, tt.contentType)

			if err != tt.wantErr {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("filter = %+v, want %+v", got, tt.want)
			}
		})
	}
}
