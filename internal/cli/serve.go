package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/curricula/internal/api"
	"github.com/matzehuels/curricula/pkg/cache"
	"github.com/matzehuels/curricula/pkg/schedule"
	"github.com/matzehuels/curricula/pkg/store"
)

// serveConfig holds the flags of the serve command.
type serveConfig struct {
	addr       string
	redisURL   string
	mongoURI   string
	database   string
	keyPrefix  string
	maxTimeout time.Duration
	noCache    bool
}

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var cfg serveConfig

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the HTTP API.

Results are cached in Redis when --redis is given and in the local cache
directory otherwise. Schedules are stored in MongoDB when --mongo is given
and as files in the local data directory otherwise.

Flags fall back to CURRICULA_ADDR, CURRICULA_REDIS_URL and
CURRICULA_MONGO_URI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.addr, "addr", envOr("CURRICULA_ADDR", ":8080"), "listen address")
	cmd.Flags().StringVar(&cfg.redisURL, "redis", os.Getenv("CURRICULA_REDIS_URL"), "Redis URL for the result cache")
	cmd.Flags().StringVar(&cfg.mongoURI, "mongo", os.Getenv("CURRICULA_MONGO_URI"), "MongoDB URI for stored schedules")
	cmd.Flags().StringVar(&cfg.database, "mongo-database", store.DefaultDatabase, "MongoDB database")
	cmd.Flags().StringVar(&cfg.keyPrefix, "key-prefix", "", "prefix for cache keys (shared Redis)")
	cmd.Flags().DurationVar(&cfg.maxTimeout, "max-timeout", api.DefaultMaxTimeout, "longest search a client may request")
	cmd.Flags().BoolVar(&cfg.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg serveConfig) error {
	resultCache, err := c.serveCache(ctx, cfg)
	if err != nil {
		return err
	}

	var keyer cache.Keyer
	if cfg.keyPrefix != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.keyPrefix)
	}
	runner := schedule.NewRunner(resultCache, keyer, c.Logger)
	defer runner.Close()

	s, err := c.serveStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	srv := api.New(api.Config{
		Runner:     runner,
		Store:      s,
		Logger:     c.Logger,
		MaxTimeout: cfg.maxTimeout,
	})
	return srv.ListenAndServe(ctx, cfg.addr)
}

func (c *CLI) serveCache(ctx context.Context, cfg serveConfig) (cache.Cache, error) {
	switch {
	case cfg.noCache:
		return cache.NewNullCache(), nil
	case cfg.redisURL != "":
		rc, err := cache.NewRedisCache(ctx, cfg.redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache")
		return rc, nil
	default:
		fc, err := newCache(false)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		return fc, nil
	}
}

func (c *CLI) serveStore(ctx context.Context, cfg serveConfig) (store.Store, error) {
	if cfg.mongoURI != "" {
		ms, err := store.NewMongoStore(ctx, cfg.mongoURI, cfg.database)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		c.Logger.Info("using mongo store", "database", cfg.database)
		return ms, nil
	}
	fs, err := newFileStore()
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	c.Logger.Info("using file store", "dir", fs.Path())
	return fs, nil
}

// envOr returns the environment variable key, or fallback when it is unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
