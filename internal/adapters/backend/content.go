package backend

import (
	"context"
	"fmt"

	"trendboard/internal/domain"
)

type savedItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Platform    string   `json:"platform"`
	ContentType string   `json:"contentType"`
	Relevance   float64  `json:"relevance"`
	Hashtags    []string `json:"hashtags"`
}

type savedResponse struct {
	Data []savedItem `json:"data"`
}

type saveRequest struct {
	ID      string `json:"id"`
	IsSaved bool   `json:"is_saved"`
}

// SavedContent lists the items the backend holds as saved for the user.
func (c *Client) SavedContent(ctx context.Context) ([]domain.SavedContent, error) {
	var resp savedResponse
	if err := c.do(ctx, "GET", "/api/content", nil, nil, &resp); err != nil {
		return nil, err
	}

	items := make([]domain.SavedContent, 0, len(resp.Data))
	for _, raw := range resp.Data {
		item, err := raw.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s savedItem) toDomain() (domain.SavedContent, error) {
	if s.ID == "" {
		return domain.SavedContent{}, fmt.Errorf("%w: saved item has no id", domain.ErrMalformedResponse)
	}
	platform, err := domain.ParsePlatform(s.Platform)
	if err != nil {
		return domain.SavedContent{}, fmt.Errorf("%w: saved item %s: platform %q", domain.ErrMalformedResponse, s.ID, s.Platform)
	}
	contentType, err := domain.ParseContentType(s.ContentType)
	if err != nil {
		return domain.SavedContent{}, fmt.Errorf("%w: saved item %s: content type %q", domain.ErrMalformedResponse, s.ID, s.ContentType)
	}
	tags := s.Hashtags
	if tags == nil {
		tags = []string{}
	}
	return domain.SavedContent{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Platform:    platform,
		ContentType: contentType,
		Relevance:   domain.NormalizeRelevance(s.Relevance),
		Hashtags:    tags,
		IsSaved:     true,
	}, nil
}

// SetSaved records the saved flag of item id.
func (c *Client) SetSaved(ctx context.Context, id string, saved bool) error {
	return c.do(ctx, "PUT", "/api/content", nil, saveRequest{ID: id, IsSaved: saved}, nil)
}
