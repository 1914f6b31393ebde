// Package http provides the HTTP side of wikiloop: a net/http implementation
// of wikiloop.Fetcher and the journey API server.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/wikiloop"
)

const (
	// DefaultFetchTimeout bounds a single page request.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultUserAgent identifies wikiloop to the wikis it reads.
	DefaultUserAgent = "wikiloop/1.0 (+https://github.com/fwojciec/wikiloop)"

	// DefaultMaxBodySize caps the bytes read from one page.
	DefaultMaxBodySize = 8 << 20
)

// Ensure Fetcher implements wikiloop.Fetcher at compile time.
var _ wikiloop.Fetcher = (*Fetcher)(nil)

// Fetcher downloads article pages over plain HTTP. Redirects are followed;
// nothing is retried. Fetcher is safe for concurrent use.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize caps the number of bytes read from a page. Longer pages
// are truncated.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// WithClient replaces the underlying HTTP client. Timeout options applied
// after it modify the given client.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a Fetcher with DefaultFetchTimeout, DefaultUserAgent
// and DefaultMaxBodySize unless overridden.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:      &http.Client{Timeout: DefaultFetchTimeout},
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the page at url. A 404 response is reported as
// ENOTFOUND; the body of any other response is returned as the page.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", wikiloop.Errorf(wikiloop.EINVALID, "invalid page URL %q: %v", url, err)
	}
	req.Header.Set("Accept", "text/html")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", wikiloop.Errorf(wikiloop.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return string(body), nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
