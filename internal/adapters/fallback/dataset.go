// Package fallback holds the static data served when the backend is
// unavailable or when no live data exists for a request.
package fallback

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"trendboard/internal/domain"
)

//go:embed fallback.yaml
var embedded []byte

// Dataset is the loaded fallback data. It is read-only after Load and safe
// for concurrent use. Accessors return copies.
type Dataset struct {
	trends          map[domain.Platform][]domain.Trend
	recommendations []domain.ContentRecommendation
	saved           []domain.SavedContent
}

// rawDataset represents the YAML structure.
type rawDataset struct {
	Trends          map[string][]domain.Trend      `yaml:"trends"`
	Recommendations []domain.ContentRecommendation `yaml:"recommendations"`
	Saved           []domain.SavedContent          `yaml:"saved"`
}

// Default returns the dataset compiled into the binary.
func Default() (*Dataset, error) {
	return Parse(embedded)
}

// Load reads the dataset from a YAML file. An empty path selects the
// embedded dataset.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fallback dataset: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML dataset. Every platform needs at least
// one trend and exactly three recommendations are required.
func Parse(data []byte) (*Dataset, error) {
	var raw rawDataset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode fallback dataset: %w", err)
	}

	ds := &Dataset{trends: make(map[domain.Platform][]domain.Trend, len(domain.Platforms))}
	for name, trends := range raw.Trends {
		platform, err := domain.ParsePlatform(name)
		if err != nil {
			return nil, fmt.Errorf("fallback trends %q: %w", name, err)
		}
		for i := range trends {
			trends[i].Platform = platform
			trends[i].Relevance = domain.ClampRelevance(trends[i].Relevance)
		}
		ds.trends[platform] = trends
	}

	for _, p := range domain.Platforms {
		if len(ds.trends[p]) == 0 {
			return nil, fmt.Errorf("fallback dataset has no trends for %s", p)
		}
	}
	if len(raw.Recommendations) != 3 {
		return nil, fmt.Errorf("fallback dataset needs 3 recommendations, has %d", len(raw.Recommendations))
	}
	if err := checkItems(raw.Recommendations); err != nil {
		return nil, fmt.Errorf("fallback recommendations: %w", err)
	}
	if err := checkItems(raw.Saved); err != nil {
		return nil, fmt.Errorf("fallback saved content: %w", err)
	}

	for i := range raw.Recommendations {
		raw.Recommendations[i].IsSaved = false
	}
	ds.recommendations = raw.Recommendations
	ds.saved = raw.Saved
	return ds, nil
}

func checkItems(items []domain.ContentRecommendation) error {
	for i, item := range items {
		if item.ID == "" {
			return fmt.Errorf("item %d has no id", i)
		}
		if _, err := domain.ParsePlatform(string(item.Platform)); err != nil {
			return fmt.Errorf("item %s: %w", item.ID, err)
		}
		if _, err := domain.ParseContentType(string(item.ContentType)); err != nil {
			return fmt.Errorf("item %s: %w", item.ID, err)
		}
	}
	return nil
}

// Trends returns the fallback trends for platform.
func (d *Dataset) Trends(platform domain.Platform) []domain.Trend {
	src := d.trends[platform]
	out := make([]domain.Trend, len(src))
	copy(out, src)
	return out
}

// Recommendations returns the fixed fallback recommendations.
func (d *Dataset) Recommendations() []domain.ContentRecommendation {
	return cloneItems(d.recommendations)
}

// Saved returns the fallback saved-content list.
func (d *Dataset) Saved() []domain.SavedContent {
	return cloneItems(d.saved)
}

func cloneItems(src []domain.ContentRecommendation) []domain.ContentRecommendation {
	out := make([]domain.ContentRecommendation, len(src))
	for i, item := range src {
		item.Hashtags = append([]string(nil), item.Hashtags...)
		out[i] = item
	}
	return out
}
