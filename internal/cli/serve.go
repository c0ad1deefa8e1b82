package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/trisolve/internal/server"
	"github.com/matzehuels/trisolve/pkg/cache"
	"github.com/matzehuels/trisolve/pkg/observability"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr         string
		otlpEndpoint string
		noCache      bool
		noMetrics    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Routes:
  GET  /health             liveness probe
  GET  /metrics            Prometheus metrics
  GET  /api/modes          the four solving modes
  POST /api/solve          solve a JSON document
  GET  /api/render.{fmt}   render from query parameters

With --otlp-endpoint (or server.otlp_endpoint in the config file) request
and pipeline spans are exported over OTLP/HTTP.`,
		Example: `  trisolve serve
  trisolve serve --addr 127.0.0.1:9000 --otlp-endpoint http://localhost:4318`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("otlp-endpoint") {
				cfg.Server.OTLPEndpoint = otlpEndpoint
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()
			runner.Keyer = cache.NewScopedKeyer(runner.Keyer, "serve:")

			opts := server.Options{
				Runner:   runner,
				Logger:   c.Logger,
				Viewport: cfg.Viewport,
				Theme:    cfg.Theme,
			}
			if !noMetrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				metrics, err := observability.NewPrometheus(reg)
				if err != nil {
					return fmt.Errorf("register metrics: %w", err)
				}
				metrics.Register()
				defer observability.Reset()
				opts.Metrics = metrics.Handler()
			}

			ctx := cmd.Context()
			shutdownTracing, err := observability.InitTracing(ctx, cfg.Server.OTLPEndpoint)
			if err != nil {
				return fmt.Errorf("init tracing: %w", err)
			}
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := shutdownTracing(sctx); err != nil {
					c.Logger.Warn("tracing shutdown", "err", err)
				}
			}()

			printKeyValue("metrics", onOff(!noMetrics, "/metrics"))
			printKeyValue("tracing", onOff(cfg.Server.OTLPEndpoint != "", cfg.Server.OTLPEndpoint))
			printKeyValue("cache", onOff(!noCache, "file"))

			srv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           server.New(opts).Handler(),
				ReadHeaderTimeout: readHeaderTimeout,
			}
			return runServer(ctx, srv, c)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&otlpEndpoint, "otlp-endpoint", "", "OTLP/HTTP trace endpoint, e.g. http://localhost:4318")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not mount /metrics")

	return cmd
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, c *CLI) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c.Logger.Info("listening", "addr", srv.Addr)
		printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(srv.Addr)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		c.Logger.Info("shutting down")
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}

// displayAddr turns a bare ":port" listen address into a clickable host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

func onOff(on bool, detail string) string {
	if on {
		return detail
	}
	return "off"
}
