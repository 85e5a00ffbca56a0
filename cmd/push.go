package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/archmap/internal/syncclient"
	"github.com/ziadkadry99/archmap/internal/walker"
	"github.com/ziadkadry99/archmap/internal/watch"
)

var (
	pushWatch     bool
	pushStatsRoot string
)

var pushCmd = &cobra.Command{
	Use:   "push FILE",
	Short: "Submit a report file to the server",
	Long: `Validates FILE as a dependency report and submits it to the report server,
replacing the current report. With --watch the file is re-submitted every
time it changes until interrupted. With --stats-root the source tree is
scanned and nodes missing from stats.fileList get their size and line
count filled in before submission.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		client, err := newClient(cfg, logger)
		if err != nil {
			return err
		}

		path := args[0]
		if err := pushFile(cmd.Context(), client, path, logger); err != nil {
			if !pushWatch {
				return err
			}
			logger.Error("push failed", "file", path, "err", err)
		}
		if !pushWatch {
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		w, err := watch.New(path,
			watch.WithLogger(logger),
			watch.WithOnChange(func() {
				if err := pushFile(ctx, client, path, logger); err != nil {
					logger.Error("push failed", "file", path, "err", err)
				}
			}),
			watch.WithOnError(func(err error) {
				if errors.Is(err, watch.ErrFileRemoved) {
					logger.Warn("report file removed, waiting for it to return", "file", path)
					return
				}
				logger.Error("watch error", "err", err)
			}),
		)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Watching %s for changes (Ctrl+C to stop)\n", w.Path())
		return w.Run(ctx)
	},
}

// pushFile validates path locally before submitting it.
func pushFile(ctx context.Context, client *syncclient.Client, path string, logger *log.Logger) error {
	r, data, err := readReport(path)
	if err != nil {
		return err
	}
	if pushStatsRoot != "" {
		files, err := walker.Walk(ctx, walker.Config{RootDir: pushStatsRoot})
		if err != nil {
			return fmt.Errorf("scanning %s: %w", pushStatsRoot, err)
		}
		enriched, added, err := walker.Enrich(data, files)
		if err != nil {
			return err
		}
		logger.Debug("stats enriched", "root", pushStatsRoot, "scanned", len(files), "added", added)
		data = enriched
	}
	if err := client.Submit(ctx, data); err != nil {
		return fmt.Errorf("submitting report: %w", err)
	}
	logger.Info("report submitted",
		"project", r.ProjectName,
		"nodes", len(r.Dependencies.Nodes),
		"links", len(r.Dependencies.Links),
	)
	return nil
}

func init() {
	pushCmd.Flags().BoolVarP(&pushWatch, "watch", "w", false, "re-submit the file whenever it changes")
	pushCmd.Flags().StringVar(&pushStatsRoot, "stats-root", "", "source tree to fill missing file stats from")
	rootCmd.AddCommand(pushCmd)
}
