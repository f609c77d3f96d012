package backend

import (
	"context"

	"trendboard/internal/domain"
)

type profileResponse struct {
	Data *domain.Profile `json:"data"`
}

// GetProfile fetches the user's profile.
func (c *Client) GetProfile(ctx context.Context) (domain.Profile, error) {
	return c.profileCall(ctx, "GET", nil)
}

// UpdateProfile stores p and returns the backend's copy of the record.
func (c *Client) UpdateProfile(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	return c.profileCall(ctx, "PUT", p)
}

func (c *Client) profileCall(ctx context.Context, method string, in any) (domain.Profile, error) {
	var resp profileResponse
	if err := c.do(ctx, method, "/api/user", nil, in, &resp); err != nil {
		return domain.Profile{}, err
	}
	if resp.Data == nil {
		return domain.Profile{}, errNoData(method, "/api/user")
	}
	if resp.Data.ContentGoals == nil {
		resp.Data.ContentGoals = []string{}
	}
	return *resp.Data, nil
}
