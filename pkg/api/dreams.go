package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/stats"
)

// ListParams filters GET /dreams. Empty strings and zero numbers are left out
// of the query string.
type ListParams struct {
	Search string
	Mood   dream.Mood
	Tag    string
	Limit  int
	Offset int
}

// Query encodes the non-empty parameters.
func (p ListParams) Query() url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Mood != "" {
		q.Set("mood", string(p.Mood))
	}
	if p.Tag != "" {
		q.Set("tag", p.Tag)
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	return q
}

// ListDreams returns the dreams matching p, newest first.
func (c *Client) ListDreams(ctx context.Context, p ListParams) ([]dream.Dream, error) {
	var out []dream.Dream
	if err := c.do(ctx, http.MethodGet, "/dreams", p.Query(), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []dream.Dream{}
	}
	return out, nil
}

// GetDream fetches one dream by id.
func (c *Client) GetDream(ctx context.Context, id int64) (*dream.Dream, error) {
	out := &dream.Dream{}
	if err := c.do(ctx, http.MethodGet, dreamPath(id), nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDream records a new dream.
func (c *Client) CreateDream(ctx context.Context, in dream.Input) (*dream.Dream, error) {
	out := &dream.Dream{}
	if err := c.do(ctx, http.MethodPost, "/dreams", nil, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateDream replaces the editable fields of dream id.
func (c *Client) UpdateDream(ctx context.Context, id int64, in dream.Input) (*dream.Dream, error) {
	out := &dream.Dream{}
	if err := c.do(ctx, http.MethodPut, dreamPath(id), nil, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteDream irreversibly deletes dream id.
func (c *Client) DeleteDream(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, dreamPath(id), nil, nil, nil)
}

// ListTags returns every distinct tag of the current user.
func (c *Client) ListTags(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/tags", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats returns the summary aggregates.
func (c *Client) Stats(ctx context.Context) (*stats.Stats, error) {
	out := &stats.Stats{}
	if err := c.do(ctx, http.MethodGet, "/stats", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DetailedStats returns the dashboard aggregates.
func (c *Client) DetailedStats(ctx context.Context) (*stats.Detailed, error) {
	out := &stats.Detailed{}
	if err := c.do(ctx, http.MethodGet, "/stats/detailed", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func dreamPath(id int64) string {
	return fmt.Sprintf("/dreams/%d", id)
}
