// Command tada-mock serves a fake todos API for local development and
// end-to-end runs of the tada client.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gin-gonic/gin"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/Makepad-fr/tada/internal/logfields"
	"github.com/Makepad-fr/tada/internal/mockapi"
)

var CLI struct {
	Addr    string `short:"a" help:"Listen address" default:"127.0.0.1:8080"`
	Seed    string `short:"s" help:"JSON file with seed todos (missing file starts empty)" default:"todos.json" type:"path"`
	Persist bool   `help:"Write mutations back to the seed file"`
	Verbose bool   `short:"v" help:"Enable debug logging"`
}

func main() {
	kong.Parse(&CLI, kong.Name("tada-mock"), kong.Description("Fake todos REST API"))

	level := slog.LevelInfo
	if CLI.Verbose {
		level = slog.LevelDebug
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("tada-mock failed", logfields.Error(err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	store, err := mockapi.LoadStore(CLI.Seed, CLI.Persist)
	if err != nil {
		return err
	}

	reg := prom.NewRegistry()
	srv := &http.Server{
		Addr:              CLI.Addr,
		Handler:           mockapi.NewRouter(store, reg, mockapi.RequestLogger(logger)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", CLI.Addr, "seed", CLI.Seed, "todos", len(store.List()), "persist", CLI.Persist)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	return srv.Shutdown(stopCtx)
}
