package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/archmap/internal/config"
	"github.com/ziadkadry99/archmap/internal/diagrams"
	"github.com/ziadkadry99/archmap/internal/graph"
	"github.com/ziadkadry99/archmap/internal/interaction"
	"github.com/ziadkadry99/archmap/internal/report"
	"github.com/ziadkadry99/archmap/internal/scene"
	"github.com/ziadkadry99/archmap/internal/server"
	"github.com/ziadkadry99/archmap/internal/site"
)

// shutdownTimeout bounds how long in-flight requests get to drain.
const shutdownTimeout = 10 * time.Second

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the report server",
	Long: `Starts the archmap report server. It keeps the latest submitted report in
memory, serves it over a JSON API and notifies connected viewers over SSE
(/api/report/stream) and WebSocket (/ws/report) whenever it changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}

		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		svc := report.NewService(logger, report.NewMetrics(registry), report.Options{
			SubscriberBuffer: cfg.Server.SubscriberBuffer,
		})

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAllOrigins,
		}, registry, logger)

		registerAllRoutes(srv, svc, cfg)
		// Open streams end before the server waits for handlers to return.
		srv.OnShutdown(svc.Close)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(os.Stderr, "archmap server v%s starting on port %d\n", Version, cfg.Server.Port)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(srv.Start)
		g.Go(func() error {
			<-gctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

// registerAllRoutes wires the report API and the graph views onto srv.
func registerAllRoutes(srv *server.Server, svc *report.Service, cfg *config.Config) {
	r := srv.Router()

	// Report submission, read, clear and change streams.
	report.RegisterRoutes(r, svc, report.StreamOptions{Heartbeat: cfg.Server.HeartbeatInterval})

	// Render graph, scene, layout presets and the derived documents.
	r.Route("/api/graph", func(r chi.Router) {
		graph.RegisterRoutes(r, svc)
		scene.RegisterRoutes(r, svc)
		interaction.RegisterRoutes(r)
		diagrams.RegisterRoutes(r, svc)
		site.RegisterRoutes(r, svc)
	})
}

func init() {
	serverCmd.Flags().IntVarP(&serverPort, "port", "p", 3000, "port to listen on (overrides server.port)")
	rootCmd.AddCommand(serverCmd)
}
