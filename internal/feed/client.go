package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"wayplan/internal/model"
)

// DefaultTimeout bounds a feed fetch. After it elapses the request is
// canceled and the fetch fails with a timeout FetchError.
const DefaultTimeout = 15 * time.Second

// FetchError is the typed failure the UI shows with a retry affordance.
type FetchError struct {
	URL     string
	Timeout bool
	Err     error
}

func (e *FetchError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("feed fetch timed out: %s", e.URL)
	}
	return fmt.Sprintf("feed fetch failed: %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client fetches the remote tabular feed.
type Client struct {
	URL     string
	Timeout time.Duration
	// HTTPClient is swappable for tests; nil means http.DefaultClient.
	HTTPClient *http.Client
}

func (c *Client) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// Fetch pulls and decodes the feed table. All failure modes (network,
// timeout, non-2xx, malformed body) come back as *FetchError.
func (c *Client) Fetch(ctx context.Context) (Table, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return Table{}, &FetchError{URL: c.URL, Err: err}
	}
	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return Table{}, &FetchError{
			URL:     c.URL,
			Timeout: errors.Is(err, context.DeadlineExceeded),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Table{}, &FetchError{URL: c.URL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Table{}, &FetchError{
			URL:     c.URL,
			Timeout: errors.Is(err, context.DeadlineExceeded),
			Err:     err,
		}
	}
	t, err := DecodeTable(body)
	if err != nil {
		return Table{}, &FetchError{URL: c.URL, Err: err}
	}
	return t, nil
}

// Cache is the feed-mode persistence surface: the last successfully
// parsed feed plus its fetch timestamp. Both operations are best-effort.
type Cache interface {
	LoadFeedCache() (*model.Itinerary, time.Time, bool)
	SaveFeedCache(it *model.Itinerary, fetchedAt time.Time)
}

// Refresh fetches and parses the feed, writing the cache on success. On
// any fetch or parse failure it falls back silently to the cached parse
// when one exists; with a cold cache the fetch error is returned for the
// retry affordance. The bool result reports whether the data is fresh.
func Refresh(ctx context.Context, c *Client, cache Cache) (*model.Itinerary, bool, error) {
	t, err := c.Fetch(ctx)
	if err == nil {
		var it *model.Itinerary
		if it, err = Parse(t); err == nil {
			if cache != nil {
				cache.SaveFeedCache(it, time.Now())
			}
			return it, true, nil
		}
	}

	if cache != nil {
		if it, fetchedAt, ok := cache.LoadFeedCache(); ok {
			slog.Warn("feed refresh failed, using cached parse",
				"url", c.URL, "fetchedAt", fetchedAt, "err", err)
			return it, false, nil
		}
	}
	return nil, false, err
}
