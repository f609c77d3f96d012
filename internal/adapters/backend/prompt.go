package backend

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"trendboard/internal/domain"
)

type promptRequest struct {
	Hashtags []string `json:"hashtags"`
	Platform string   `json:"platform"`
}

type promptResponse struct {
	ID   flexibleID `json:"id"`
	Data *struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		ContentType string   `json:"contentType"`
		Relevance   float64  `json:"relevance"`
		Hashtags    []string `json:"hashtags"`
	} `json:"data"`
}

// flexibleID accepts a JSON string or number.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = flexibleID(b)
	return nil
}

// Generate asks the backend for one content idea for platform built around
// hashtags. The result is never marked saved.
func (c *Client) Generate(ctx context.Context, platform domain.Platform, hashtags []string) (domain.ContentRecommendation, error) {
	if hashtags == nil {
		hashtags = []string{}
	}
	req := promptRequest{Hashtags: hashtags, Platform: platform.UpstreamName()}

	var resp promptResponse
	if err := c.do(ctx, "POST", "/api/prompt", nil, req, &resp); err != nil {
		return domain.ContentRecommendation{}, err
	}
	if resp.Data == nil {
		return domain.ContentRecommendation{}, fmt.Errorf("%w: prompt response has no data", domain.ErrMalformedResponse)
	}

	contentType, err := domain.ParseContentType(resp.Data.ContentType)
	if err != nil {
		return domain.ContentRecommendation{}, fmt.Errorf("%w: content type %q", domain.ErrMalformedResponse, resp.Data.ContentType)
	}

	id := string(resp.ID)
	if id == "" {
		id = uuid.NewString()
	}
	tags := resp.Data.Hashtags
	if tags == nil {
		tags = []string{}
	}

	return domain.ContentRecommendation{
		ID:          id,
		Title:       resp.Data.Title,
		Description: resp.Data.Description,
		Platform:    platform,
		ContentType: contentType,
		Relevance:   domain.NormalizeRelevance(resp.Data.Relevance),
		Hashtags:    tags,
		IsSaved:     false,
	}, nil
}
