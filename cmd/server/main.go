package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"isorail.dev/internal/config"
	"isorail.dev/internal/handlers"
	"isorail.dev/internal/logging"
	"isorail.dev/internal/services"
)

func main() {
	configFile := flag.String("config", "", "config file (default: config.yaml in . or data/)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("server exited")
	}
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize services
	worlds, err := services.NewWorldService(cfg, logger)
	if err != nil {
		return fmt.Errorf("starting world service: %w", err)
	}
	defer worlds.Close()

	hub := handlers.NewHub(logger)
	defer hub.Close()

	simulation := services.NewSimulationService(worlds, cfg.Sim, hub, logger, nil)
	simDone := make(chan error, 1)
	go func() { simDone <- simulation.Run(ctx) }()

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handlers.SetupRoutes(worlds, hub, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.ServerAddr).Info("server starting")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		stop()
		<-simDone
		return fmt.Errorf("listening on %s: %w", cfg.ServerAddr, err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	if err := <-simDone; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
