package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kestrelfin/tradestore/internal/api"
	"github.com/kestrelfin/tradestore/internal/config"
	"github.com/kestrelfin/tradestore/internal/store"
	"github.com/kestrelfin/tradestore/internal/template"
	"github.com/kestrelfin/tradestore/internal/trade"
	"github.com/kestrelfin/tradestore/internal/validation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tradestore server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func runServer() error {
	fmt.Fprintf(os.Stderr, "tradestore version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if strings.EqualFold(cfg.Log.Level, "debug") {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The store is the single shared instance for the whole process,
	// injected into the service by reference.
	st := store.New()
	service := trade.NewService(st)

	templates, err := template.NewFactory("v1")
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	handler := api.NewHandler(api.Deps{
		Service:    service,
		Templates:  templates,
		Validators: validation.NewFactory(),
		Token:      cfg.Server.Token,
		SeedCount:  cfg.Seed.DefaultCount,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("tradestore listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
