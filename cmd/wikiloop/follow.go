package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fwojciec/wikiloop"
	wikietree "github.com/fwojciec/wikiloop/etree"
	wikihttp "github.com/fwojciec/wikiloop/http"
)

// ErrGoalNotReached is returned when a journey stops before the goal page.
var ErrGoalNotReached = errors.New("goal not reached")

// Run executes the follow command.
func (c *FollowCmd) Run(deps *Dependencies) error {
	result, err := deps.Journeys.Follow(deps.Ctx, c.Start, c.Stop)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikiloop.ErrorMessage(err))
		return err
	}

	switch c.Format {
	case "json":
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(wikihttp.NewFollowResponse(result))
	case "xml":
		err = wikietree.EncodeJourney(deps.Stdout, result)
	default:
		_, err = fmt.Fprintln(deps.Stdout, wikiloop.FormatJourney(result))
	}
	if err != nil {
		return fmt.Errorf("writing journey: %w", err)
	}

	if !result.OK() {
		return ErrGoalNotReached
	}
	return nil
}
