package mock

import (
	"context"

	"github.com/fwojciec/wikiloop"
)

var _ wikiloop.JourneyService = (*JourneyService)(nil)

// JourneyService is a mock implementation of wikiloop.JourneyService.
type JourneyService struct {
	FollowFn func(ctx context.Context, startURL, goalURL string) (*wikiloop.Result, error)
}

func (s *JourneyService) Follow(ctx context.Context, startURL, goalURL string) (*wikiloop.Result, error) {
	return s.FollowFn(ctx, startURL, goalURL)
}
