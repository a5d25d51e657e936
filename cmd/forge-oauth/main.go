// Command forge-oauth runs the OAuth2 authorization-code login example.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrymomot/forge-oauth/config"
	"github.com/dmitrymomot/forge-oauth/pkg/logger"
	"github.com/dmitrymomot/forge-oauth/server"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	log := server.NewLogger(cfg)
	defer logger.FlushSentry(2 * time.Second)

	srv, err := server.New(ctx, cfg, server.WithLogger(log))
	if err != nil {
		log.Error("failed to start", "error", err)
		return err
	}

	if err := srv.Run(ctx); err != nil {
		log.Error("server stopped with error", "error", err)
		return err
	}
	return nil
}
