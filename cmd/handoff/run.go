package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/handoff/internal/metrics"
	"github.com/kubev2v/handoff/internal/models"
	"github.com/kubev2v/handoff/internal/services"
)

func newRunCommand(a *app) *cobra.Command {
	var (
		count int
		basic bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Submit a batch of items, tick until they are all delivered, then exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return fmt.Errorf("invalid count %d: must be positive", count)
			}
			return a.run(cmd, count, basic)
		},
	}

	cmd.Flags().IntVar(&count, "count", 10, "Number of items to submit")
	cmd.Flags().BoolVar(&basic, "basic", false, "Submit basic items instead of constrained ones")

	return cmd
}

func (a *app) run(cmd *cobra.Command, count int, basic bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctrl, err := services.NewController(a.cfg.Worker, a.cfg.Work, metrics.NewMetrics())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	var delivered, failed int
	report := func(item *models.WorkItem) {
		delivered++
		if item.Err != nil {
			failed++
			fmt.Fprintf(out, "%s %s %v\n", bad("✗"), faint(item.Handle), item.Err)
			return
		}
		fmt.Fprintf(out, "%s %s %s\n", ok("✓"), ok(item.Identifier), faint(fmt.Sprintf("%d attempts, %s", item.Attempts, item.Duration().Round(time.Microsecond))))
	}

	start := time.Now()
	if err := ctrl.StartUp(); err != nil {
		return err
	}

	for range count {
		item := models.NewConstrainedWorkItem(a.cfg.Work.Contains)
		if basic {
			item = models.NewBasicWorkItem()
		}
		if err := ctrl.Submit(item, services.LogIdentifier, report); err != nil {
			_ = ctrl.ShutDown(context.Background())
			return fmt.Errorf("failed to submit work: %w", err)
		}
	}

	ticker := time.NewTicker(a.cfg.Worker.TickInterval)
	defer ticker.Stop()

loop:
	for delivered < count {
		select {
		case <-ctx.Done():
			zap.S().Named("run").Warnw("interrupted", "delivered", delivered, "submitted", count)
			break loop
		case <-ticker.C:
			ctrl.Tick()
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Worker.ShutdownTimeout)
	defer cancel()
	err = ctrl.ShutDown(shutdownCtx)
	ctrl.Tick()

	summary := fmt.Sprintf("%d/%d delivered, %d failed in %s", delivered, count, failed, time.Since(start).Round(time.Millisecond))
	if failed > 0 || delivered < count {
		fmt.Fprintln(out, bad(summary))
	} else {
		fmt.Fprintln(out, ok(summary))
	}

	return err
}
