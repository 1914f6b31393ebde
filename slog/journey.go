package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikiloop"
)

// Ensure LoggingJourneyService implements wikiloop.JourneyService.
var _ wikiloop.JourneyService = (*LoggingJourneyService)(nil)

// LoggingJourneyService wraps a JourneyService with logging.
type LoggingJourneyService struct {
	next   wikiloop.JourneyService
	logger *slog.Logger
}

// NewLoggingJourneyService creates a new LoggingJourneyService.
func NewLoggingJourneyService(next wikiloop.JourneyService, logger *slog.Logger) *LoggingJourneyService {
	return &LoggingJourneyService{next: next, logger: logger}
}

// Follow delegates to the wrapped service and logs the outcome.
func (s *LoggingJourneyService) Follow(ctx context.Context, startURL, goalURL string) (result *wikiloop.Result, err error) {
	defer func(begin time.Time) {
		var status wikiloop.Status
		var pages int
		if result != nil {
			status = result.Status
			pages = len(result.Journey)
		}
		s.logger.Info("journey",
			"start", startURL,
			"goal", goalURL,
			"status", status,
			"pages", pages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Follow(ctx, startURL, goalURL)
}
