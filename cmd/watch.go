package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/archmap/internal/graph"
	"github.com/ziadkadry99/archmap/internal/interaction"
	"github.com/ziadkadry99/archmap/internal/report"
)

const (
	settleAttempts = 3
	settleInterval = 500 * time.Millisecond
)

var watchFocus string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the server's report and log each change",
	Long: `Connects to the report server like a viewer does: it loads the current
report, subscribes to change notifications and re-reads the report on every
update, falling back to polling while the stream is unavailable.

Each new report resets the view. With --focus the given node is selected
again and its highlighted neighborhood is logged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		client, err := newClient(cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ctl := interaction.New(&recordingCamera{logger: logger}, controllerOptions(cfg, logger))
		f := newFollower(ctx, ctl, logger, watchFocus)
		defer f.stop()
		client.OnChange(f.apply)

		logger.Info("following report", "url", cfg.Client.URL)
		return client.Run(ctx)
	},
}

// follower replays viewer behaviour for each report the client adopts.
type follower struct {
	ctx    context.Context
	ctl    *interaction.Controller
	logger *log.Logger
	focus  string

	mu     sync.Mutex
	cancel context.CancelFunc
}

func newFollower(ctx context.Context, ctl *interaction.Controller, logger *log.Logger, focus string) *follower {
	return &follower{ctx: ctx, ctl: ctl, logger: logger, focus: focus}
}

func (f *follower) apply(r *report.Report) {
	f.stop()
	f.ctl.Reload()
	f.ctl.ResetCamera()
	logSummary(f.logger, r)
	if r == nil {
		return
	}

	g := graph.Build(r)
	if f.focus != "" {
		if n := g.Node(f.focus); n != nil {
			f.ctl.Click(n)
			h := f.ctl.Highlight(g)
			f.logger.Info("focus", "id", h.Active, "neighbors", len(h.Neighbors)-1)
		} else {
			f.logger.Warn("focus node not in report", "id", f.focus)
		}
	}
	f.settle()
}

// settle zooms to fit while the new layout settles. A later report or
// stop cancels it.
func (f *follower) settle() {
	ctx, cancel := context.WithCancel(f.ctx)
	f.mu.Lock()
	f.cancel = cancel
	f.mu.Unlock()

	go func() {
		defer cancel()
		if err := f.ctl.SettleFit(ctx, settleAttempts, settleInterval); err != nil && !errors.Is(err, context.Canceled) {
			f.logger.Debug("settle fit stopped", "err", err)
		}
	}()
}

func (f *follower) stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func logSummary(logger *log.Logger, r *report.Report) {
	if r == nil {
		logger.Info("no report")
		return
	}
	sum := graph.Summarize(r.ProjectName, graph.Build(r))
	kv := []any{"project", sum.ProjectName, "nodes", sum.Nodes, "links", sum.Links}
	for _, e := range graph.Legend() {
		if n := sum.Roles[e.Role]; n > 0 {
			kv = append(kv, string(e.Role), n)
		}
	}
	if n := sum.Roles[graph.RoleUnknown]; n > 0 {
		kv = append(kv, string(graph.RoleUnknown), n)
	}
	logger.Info("report updated", kv...)
}

func init() {
	watchCmd.Flags().StringVar(&watchFocus, "focus", "", "id of a node to select after every update")
	rootCmd.AddCommand(watchCmd)
}
