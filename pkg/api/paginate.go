package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/Sternrassler/user-analytics/pkg/cache"
)

// FetchAll collects every record of a paginated resource, one page at a time.
//
// Pagination stops on an empty page, a short page (appended first), or after
// MaxPages pages. A page whose retries are exhausted aborts pagination and
// whatever was collected so far is returned; callers must treat a short or
// empty result as "no more data", never as failure.
func (c *Client) FetchAll(ctx context.Context, resource string) []json.RawMessage {
	start := time.Now()
	var results []json.RawMessage

	for page := 1; page <= c.config.MaxPages; page++ {
		body, ok := c.fetchPage(ctx, resource, page)
		if !ok {
			paginationAbortedTotal.WithLabelValues(resource).Inc()
			c.logger.Error().
				Str("resource", resource).
				Int("page", page).
				Int("collected", len(results)).
				Msg("Pagination aborted, returning partial results")
			return results
		}

		var records []json.RawMessage
		if err := json.Unmarshal(body, &records); err != nil {
			paginationAbortedTotal.WithLabelValues(resource).Inc()
			c.logger.Error().
				Err(err).
				Str("resource", resource).
				Int("page", page).
				Msg("Malformed page body, returning partial results")
			return results
		}

		// Empty page: past the last page.
		if len(records) == 0 {
			break
		}

		results = append(results, records...)
		recordsFetchedTotal.WithLabelValues(resource).Add(float64(len(records)))

		// Short page: this was the last page.
		if len(records) < c.config.PageSize {
			break
		}
	}

	c.logger.Info().
		Str("resource", resource).
		Int("records", len(results)).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return results
}

// fetchPage returns one page body, consulting the cache when configured.
// The second return is false when the page could not be fetched.
func (c *Client) fetchPage(ctx context.Context, resource string, page int) ([]byte, bool) {
	key := cache.Key{Resource: resource, Page: page, Limit: c.config.PageSize}

	if c.cache != nil {
		body, err := c.cache.Get(ctx, key)
		if err == nil {
			c.logger.Debug().
				Str("resource", resource).
				Int("page", page).
				Msg("Page cache hit")
			return body, true
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			c.logger.Warn().
				Err(err).
				Str("resource", resource).
				Int("page", page).
				Msg("Cache get error, fetching directly")
		}
	}

	// Fresh parameter set per page; a shared one would leak values across
	// iterations.
	params := url.Values{}
	params.Set("_page", strconv.Itoa(page))
	params.Set("_limit", strconv.Itoa(c.config.PageSize))

	body, err := c.Get(ctx, resource, params)
	if err != nil {
		return nil, false
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body); err != nil {
			c.logger.Warn().
				Err(err).
				Str("resource", resource).
				Int("page", page).
				Msg("Failed to cache page")
		}
	}

	return body, true
}
