package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ecotrust/arbcarbon/pkg/api"
	"github.com/ecotrust/arbcarbon/pkg/cache"
	"github.com/ecotrust/arbcarbon/pkg/pipeline"
	"github.com/ecotrust/arbcarbon/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	dataDir   string
	outDir    string
	mongoURI  string
	redisAddr string
	noCache   bool
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", dataDir: "."}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the carbon calculator as an HTTP API.

Endpoints:
  GET  /healthz        server health
  GET  /v1/species     species registry, optionally ?region=
  POST /v1/volume      evaluate a volume equation
  POST /v1/carbon      per-tree carbon
  POST /v1/runs        execute the pipeline against the data directory
  GET  /v1/runs        run history (requires --mongo-uri)

With --redis the cache is shared across instances; the default is a local
file cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVarP(&opts.dataDir, "data-dir", "d", opts.dataDir, "directory containing the FPS exports")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "report directory (default <data-dir>/FPS2ARB_Outputs)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI for run history")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for a shared cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	pipelineCache, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}

	var runStore store.Store
	if opts.mongoURI != "" {
		runStore, err = store.NewMongoStore(ctx, store.MongoConfig{URI: opts.mongoURI})
		if err != nil {
			return err
		}
		defer runStore.Close(context.Background())
		c.Logger.Info("run history enabled", "backend", "mongodb")
	}

	runner := pipeline.NewRunner(pipelineCache, nil, c.Logger)
	defer runner.Close()

	srv, err := api.NewServer(api.Config{
		Addr:    opts.addr,
		DataDir: opts.dataDir,
		OutDir:  opts.outDir,
		Runner:  runner,
		Store:   runStore,
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}

	// Drain on signal or parent cancellation.
	go func() {
		<-ctx.Done()
		c.Logger.Info("shutting down")
		_ = srv.Shutdown(context.Background())
	}()

	return srv.Start(ctx)
}

// serveCache selects the cache backend for the server.
func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		c.Logger.Info("using redis cache", "addr", opts.redisAddr)
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr})
	}
	return newCache(false)
}
