package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	wikihttp "github.com/fwojciec/wikiloop/http"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight journeys may take to finish.
const shutdownTimeout = 15 * time.Second

// Run executes the serve command. It blocks until the context is canceled
// or the listener fails.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           wikihttp.NewServer(deps.Journeys, deps.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(deps.Ctx)

	g.Go(func() error {
		deps.Logger.Info("api server listening", "addr", c.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			deps.Logger.Error("http shutdown error", "err", err)
			return err
		}
		deps.Logger.Info("api server stopped")
		return nil
	})

	return g.Wait()
}
