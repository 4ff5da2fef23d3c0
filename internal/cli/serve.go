package cli

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/graphscribe/graphscribe/internal/server"
	"github.com/graphscribe/graphscribe/pkg/cache"
	"github.com/graphscribe/graphscribe/pkg/errors"
	"github.com/graphscribe/graphscribe/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var configPath, listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to graphscribe.toml (default: ./graphscribe.toml)")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg Config) error {
	logger := loggerFromContext(ctx)

	st, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			logger.Warn("store close failed", "err", err)
		}
	}()

	ch, err := newServerCache(ctx, cfg)
	if err != nil {
		// The API works without a cache, so a broken cache backend only
		// costs recomputation.
		logger.Warn("cache unavailable, continuing without one", "err", err)
		ch = cache.NewNullCache()
	}
	defer ch.Close()

	srv := server.New(logger, st, ch)
	srv.SetCacheTTL(cfg.CacheTTL())
	httpSrv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	logger.Info("listening", "addr", cfg.Listen, "store", cfg.Store.Backend, "cache", cfg.Cache.Backend)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newStore builds the snapshot store named by the config.
func newStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, cfg.Store.MongoURI)
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Store.Backend)
}

// newServerCache builds the transcript cache named by the config.
func newServerCache(ctx context.Context, cfg Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "", "file":
		dir := cfg.Cache.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
	case "none":
		return cache.NewNullCache(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", cfg.Cache.Backend)
}
