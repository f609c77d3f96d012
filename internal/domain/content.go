package domain

import "strings"

// ContentType is the format of a suggested content piece.
type ContentType string

const (
	ContentVideo   ContentType = "video"
	ContentImage   ContentType = "image"
	ContentArticle ContentType = "article"
)

// ParseContentType accepts any casing of video, image or article.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(strings.ToLower(strings.TrimSpace(s))) {
	case ContentVideo:
		return ContentVideo, nil
	case ContentImage:
		return ContentImage, nil
	case ContentArticle:
		return ContentArticle, nil
	default:
		return "", ErrInvalidContentType
	}
}

// ContentRecommendation is a generated content idea for one platform.
// IsSaved is false when created; only the save toggle changes it.
type ContentRecommendation struct {
	ID          string      `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Platform    Platform    `json:"platform" yaml:"platform"`
	ContentType ContentType `json:"contentType" yaml:"contentType"`
	Relevance   int         `json:"relevance" yaml:"relevance"`
	Hashtags    []string    `json:"hashtags" yaml:"hashtags"`
	IsSaved     bool        `json:"isSaved" yaml:"isSaved"`
}

// SavedContent is a recommendation the backend has persisted for the user.
type SavedContent = ContentRecommendation

// SavedFilter narrows a saved-content listing. Zero values match everything.
type SavedFilter struct {
	Platform    Platform
	ContentType ContentType
}

// Match reports whether item passes the filter.
func (f SavedFilter) Match(item SavedContent) bool {
	if f.Platform != "" && item.Platform != f.Platform {
		return false
	}
	if f.ContentType != "" && item.ContentType != f.ContentType {
		return false
	}
	return true
}

// Facets are the distinct categories present in a saved-content list.
type Facets struct {
	Categories []ContentType `json:"categories"`
	Platforms  []Platform    `json:"platforms"`
}

// Dedupe returns tags without repeats, keeping the first occurrence of each
// exact string.
func Dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
