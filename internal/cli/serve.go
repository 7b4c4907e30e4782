package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/transferflow/transferflow/internal/config"
	"github.com/transferflow/transferflow/internal/metrics"
	"github.com/transferflow/transferflow/internal/server"
	"github.com/transferflow/transferflow/pkg/cache"
	"github.com/transferflow/transferflow/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		redis   string
		mongo   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the transferflow HTTP API",
		Long: `Serve runs the HTTP API until interrupted. Transform results are
cached (Redis when configured, a local file cache otherwise) and
optionally archived to MongoDB. Prometheus metrics are exposed on
/metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadDefault()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if redis == "" {
				redis = cfg.Cache.RedisAddr
			}
			if mongo == "" {
				mongo = cfg.Server.MongoURI
			}

			m := metrics.New()
			m.Register()

			resultCache := c.newServeCache(cmd.Context(), cfg, redis, noCache)
			defer resultCache.Close()

			var archive store.Store
			if mongo != "" {
				ms, err := store.NewMongoStore(cmd.Context(), mongo)
				if err != nil {
					return err
				}
				defer ms.Close(cmd.Context())
				archive = ms
				c.Logger.Info("result archive enabled", "backend", "mongodb")
			}

			srv := server.New(server.Options{
				Addr:    addr,
				Cache:   resultCache,
				Store:   archive,
				Metrics: m,
				Logger:  c.Logger,
			})
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config or :8080)")
	cmd.Flags().StringVar(&redis, "redis", "", "redis address for the result cache")
	cmd.Flags().StringVar(&mongo, "mongo", "", "mongodb URI for the result archive")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")

	return cmd
}

// newServeCache picks the server cache backend. Redis is preferred when an
// address is configured; a Redis connection failure falls back to the file
// cache with a warning rather than refusing to start.
func (c *CLI) newServeCache(ctx context.Context, cfg *config.Config, redisAddr string, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, redisAddr)
		if err == nil {
			c.Logger.Info("result cache enabled", "backend", "redis", "addr", redisAddr)
			return cache.Instrument(rc, "transform")
		}
		c.Logger.Warn("redis unavailable, falling back to file cache", "err", err)
	}
	return cache.Instrument(newCache(cfg, false), "transform")
}
