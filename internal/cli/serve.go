package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ufmtooling/shapecanvas/pkg/api"
	"github.com/ufmtooling/shapecanvas/pkg/cache"
	"github.com/ufmtooling/shapecanvas/pkg/pipeline"
	"github.com/ufmtooling/shapecanvas/pkg/store"
)

// shutdownTimeout bounds how long in-flight requests may run after a signal.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command that runs the HTTP layout API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		mongoURI  string
		mongoDB   string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Run the HTTP layout API.

Layouts are stored in MongoDB when --mongo-uri is given, otherwise in an
in-memory store that is lost on restart. Layout results are cached in Redis
when --redis-addr is given, otherwise in the local file cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), serveOptions{
				addr:      c.Config.serverAddr(addr),
				mongoURI:  firstNonEmpty(mongoURI, c.Config.Server.MongoURI),
				mongoDB:   firstNonEmpty(mongoDB, c.Config.Server.MongoDatabase),
				redisAddr: firstNonEmpty(redisAddr, c.Config.Server.RedisAddr),
				noCache:   noCache,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+DefaultServerAddr+")")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection URI for layout storage")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "", "MongoDB database name (default shapecanvas)")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address for the shared layout cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layout caching")

	return cmd
}

type serveOptions struct {
	addr      string
	mongoURI  string
	mongoDB   string
	redisAddr string
	noCache   bool
}

// runServe wires the store, cache, and router together and serves until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, opts serveOptions) error {
	st, err := c.newStore(ctx, opts)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			c.Logger.Warn("Closing store", "error", err)
		}
	}()

	ch, err := c.newServeCache(ctx, opts)
	if err != nil {
		return fmt.Errorf("connect cache: %w", err)
	}

	runner := pipeline.NewRunner(ch, c.Logger)
	defer func() {
		if err := runner.Close(); err != nil {
			c.Logger.Warn("Closing cache", "error", err)
		}
	}()

	server := &http.Server{
		Addr:              opts.addr,
		Handler:           api.NewServer(runner, st, c.Logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("Serving layout API", "addr", opts.addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newStore picks MongoDB when configured, otherwise an in-memory store.
func (c *CLI) newStore(ctx context.Context, opts serveOptions) (store.Store, error) {
	if opts.mongoURI == "" {
		c.Logger.Warn("No MongoDB configured, layouts are kept in memory only")
		return store.NewMemoryStore(), nil
	}
	db := opts.mongoDB
	if db == "" {
		db = appName
	}
	c.Logger.Info("Connecting to MongoDB", "database", db)
	return store.NewMongoStore(ctx, opts.mongoURI, db)
}

// newServeCache picks Redis when configured, otherwise the local file cache.
func (c *CLI) newServeCache(ctx context.Context, opts serveOptions) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		c.Logger.Info("Connecting to Redis", "addr", opts.redisAddr)
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr})
	}
	return c.newCache(false)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
