package follow

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/fwojciec/wikiloop"
	"github.com/google/uuid"
)

// Ensure Follower implements wikiloop.JourneyService at compile time.
var _ wikiloop.JourneyService = (*Follower)(nil)

// Follower walks from page to page by following the first valid link.
// A Follower only holds its collaborators; every call to Follow keeps its
// own visited pages, so one Follower may serve concurrent journeys.
type Follower struct {
	Fetcher  wikiloop.Fetcher
	Parser   wikiloop.Parser
	Selector wikiloop.LinkSelector

	// RateLimiter is optional. When set, every fetch waits for the page's host.
	RateLimiter wikiloop.DomainLimiter

	Logger *slog.Logger
}

// Follow walks from startURL until goalURL is reached, a page is visited a
// second time, a page is missing, or a page has no valid link.
// Pages are compared by host and case-folded path.
//
// A page that stops the journey is not part of the returned journey. A
// page is only recorded once it has produced the link leading away from it,
// so the goal itself must have a valid link.
func (f *Follower) Follow(ctx context.Context, startURL, goalURL string) (*wikiloop.Result, error) {
	logger := f.logger().With("journey", uuid.NewString())
	logger.Info("journey started", "start", startURL, "goal", goalURL)

	visited := make(map[string]struct{})
	var journey []*wikiloop.PageSummary

	finish := func(status wikiloop.Status, pageURL string) (*wikiloop.Result, error) {
		logger.Info("journey finished", "status", status, "url", pageURL, "pages", len(journey))
		return &wikiloop.Result{Status: status, URL: pageURL, Journey: journey}, nil
	}

	goal := wikiloop.PageKey(goalURL)
	current := startURL
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logger.Info("visit", "url", current)

		key := wikiloop.PageKey(current)
		if _, ok := visited[key]; ok {
			return finish(wikiloop.StatusLoopDetected, current)
		}

		html, err := f.fetch(ctx, current)
		if wikiloop.ErrorCode(err) == wikiloop.ENOTFOUND {
			return finish(wikiloop.StatusPageMissing, current)
		} else if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", current, err)
		}

		doc, err := f.Parser.Parse(html)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", current, err)
		}
		if doc.Main == nil {
			return nil, wikiloop.Errorf(wikiloop.EINTERNAL, "page %s has no main content", current)
		}

		next, err := f.Selector.FirstLink(current, doc.Main)
		if err != nil {
			return nil, fmt.Errorf("select link on %s: %w", current, err)
		}
		if next == "" {
			return finish(wikiloop.StatusNoLinkFound, current)
		}

		visited[key] = struct{}{}
		journey = append(journey, summarize(current, doc))

		if key == goal {
			return finish(wikiloop.StatusSucceeded, current)
		}
		current = wikiloop.NormalizeURL(next)
	}
}

func (f *Follower) fetch(ctx context.Context, pageURL string) (string, error) {
	if f.RateLimiter != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			return "", wikiloop.Errorf(wikiloop.EINVALID, "invalid page URL: %v", err)
		}
		if err := f.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}
	return f.Fetcher.Fetch(ctx, pageURL)
}

func (f *Follower) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return f.Logger
}

// summarize builds the journey entry of a page. The thumbnail is resolved
// against the page URL; pages without one get wikiloop.DefaultImage.
func summarize(pageURL string, doc *wikiloop.Document) *wikiloop.PageSummary {
	image := wikiloop.DefaultImage
	if doc.Image != "" {
		image = doc.Image
		if base, err := url.Parse(pageURL); err == nil {
			if u, ok := resolveURL(base, doc.Image); ok {
				image = u.String()
			}
		}
	}
	return &wikiloop.PageSummary{
		URL:   pageURL,
		Title: doc.Title,
		Image: image,
		Text:  doc.Excerpt,
	}
}
