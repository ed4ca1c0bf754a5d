package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/feather-dev/feather/internal/config"
	"github.com/feather-dev/feather/internal/demo"
	"github.com/feather-dev/feather/internal/errors"
	"github.com/feather-dev/feather/pkg/server"
	"github.com/feather-dev/feather/pkg/telemetry"
)

func serveCmd(g *globalFlags) *cobra.Command {
	var (
		addr        string
		readTimeout time.Duration
		maxPasses   int
		strictHooks bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the counter application",
		Long: `Serve the counter over HTTP and stream its live tree to viewers.

Routes:
  /          HTML snapshot
  /tree      JSON snapshot
  /events    POST /events/{id}/{type}
  /ws        binary mutation stream
  /metrics   Prometheus metrics
  /healthz   liveness probe

Examples:
  feather serve
  feather serve --addr=0.0.0.0:8080 --strict-hooks`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}

			// Apply command-line overrides
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if readTimeout > 0 {
				cfg.Server.ReadTimeout = readTimeout
			}
			if maxPasses > 0 {
				cfg.Runtime.MaxFlushPasses = maxPasses
			}
			if cmd.Flags().Changed("strict-hooks") {
				cfg.Runtime.StrictHooks = strictHooks
			}

			srv := newServer(cfg, cmd)

			out := cmd.OutOrStdout()
			printBanner(out)
			info(out, "Listening on http://%s", cfg.Server.Addr)
			if cfg.Path() != "" {
				info(out, "Config: %s", cfg.Path())
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := srv.Run(ctx); err != nil {
				return errors.New("E401").
					WithDetailf("Could not serve on %s", cfg.Server.Addr).
					WithSuggestion("Pick a free address with --addr").
					Wrap(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from "+config.ConfigFileName+")")
	cmd.Flags().DurationVar(&readTimeout, "read-timeout", 0, "HTTP read timeout")
	cmd.Flags().IntVar(&maxPasses, "max-flush-passes", 0, "Render/commit passes allowed per update")
	cmd.Flags().BoolVar(&strictHooks, "strict-hooks", false, "Report hook order changes")

	return cmd
}

// newServer wires the metrics registry, collector and root for cfg.
func newServer(cfg *config.Config, cmd *cobra.Command) *server.Server {
	logger := newLogger(cfg, cmd.ErrOrStderr())

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	col := telemetry.New(
		telemetry.WithRegistry(reg),
		telemetry.WithNamespace(cfg.Metrics.Namespace),
		telemetry.WithTracerName(cfg.Tracing.TracerName),
	)

	sc := server.DefaultConfig()
	sc.Addr = cfg.Server.Addr
	sc.ReadTimeout = cfg.Server.ReadTimeout
	sc.Options = cfg.Options(logger, col)
	sc.Collector = col
	sc.Gatherer = reg
	sc.Logger = logger

	return server.New(sc, demo.Counter(func(msg string) {
		logger.Info("notify", "message", msg)
	}), nil)
}
