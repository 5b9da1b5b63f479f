package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	v1 "github.com/kubev2v/handoff/api/v1"
	"github.com/kubev2v/handoff/internal/handlers"
	"github.com/kubev2v/handoff/internal/metrics"
	"github.com/kubev2v/handoff/internal/server"
	"github.com/kubev2v/handoff/internal/services"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the worker and accept work over HTTP until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.NewMetrics()
	ctrl, err := services.NewController(a.cfg.Worker, a.cfg.Work, m)
	if err != nil {
		return err
	}

	h := handlers.New(ctrl, a.cfg.Work.Contains, a.cfg.Server.SubmitRate, a.cfg.Server.SubmitBurst)
	srv, err := server.NewServer(a.cfg, m.Handler(), func(router *gin.RouterGroup) {
		v1.RegisterHandlers(router, h)
	})
	if err != nil {
		return err
	}

	host := services.NewHost(ctrl, a.cfg.Worker.TickInterval, a.cfg.Worker.ShutdownTimeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return host.Run(gctx)
	})
	g.Go(func() error {
		if err := srv.Start(gctx); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Worker.ShutdownTimeout)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})

	err = g.Wait()
	zap.S().Named("serve").Infow("stopped", "status", ctrl.Status())
	return err
}
