package api

import (
	"context"
	"strconv"
)

// DefaultPageSize matches the backend's default `size`.
const DefaultPageSize = 30

// SearchParams describes one page of a /search request.
type SearchParams struct {
	Query string
	From  int
	Size  int
	Sort  string
}

// Search runs a full-text query against /search.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	data, err := c.get(ctx, buildQuery("/search", pageParams(params.From, params.Size, params.Sort, QueryParams{
		"q": params.Query,
	})))
	if err != nil {
		return nil, err
	}
	return decodeSearch(data)
}

// BrowseParams describes one page of the date-ordered /browse listing.
type BrowseParams struct {
	From int
	Size int
	Sort string
}

// Browse lists all mails ordered by date.
func (c *Client) Browse(ctx context.Context, params BrowseParams) (*SearchResponse, error) {
	data, err := c.get(ctx, buildQuery("/browse", pageParams(params.From, params.Size, params.Sort, nil)))
	if err != nil {
		return nil, err
	}
	return decodeSearch(data)
}

func pageParams(from, size int, sort string, extra QueryParams) QueryParams {
	if from < 0 {
		from = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	params := QueryParams{
		"from": strconv.Itoa(from),
		"size": strconv.Itoa(size),
		"sort": sort,
	}
	for k, v := range extra {
		params[k] = v
	}
	return params
}
