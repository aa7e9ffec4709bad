package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	httpserver "github.com/custodia-labs/bindays/internal/adapters/driving/http"
	"github.com/custodia-labs/bindays/internal/logger"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the run endpoint and run the daily schedule",
	Long: `Starts an HTTP server exposing GET /run?code=..., /healthz, /tasks and
/metrics, and runs the collection sync every SCHEDULE_INTERVAL (default 24h).
Stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (default LISTEN_ADDR or :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger.SetTimestamps(true)

	s, err := settings()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if serveListen != "" {
		s.ListenAddr = serveListen
	}

	app, err := newApp(s)
	if err != nil {
		return err
	}
	if s.AccessCode == "" {
		logger.Warn("No access code configured: /run accepts every request")
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	var schedErr error
	if app.Scheduler != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			schedErr = app.Scheduler.Start(ctx)
		}()
	} else {
		logger.Info("Scheduler disabled")
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Invoker: app.Invoker,
		Store:   app.Store,
	})
	cmd.Printf("Listening on %s\n", s.ListenAddr)
	serveErr := httpserver.NewServer(s.ListenAddr, router).ListenAndServe(ctx)

	// The server may fail before ctx is cancelled.
	stop()
	if app.Scheduler != nil {
		if err := app.Scheduler.Stop(); err != nil {
			logger.Warn("Stop scheduler: %v", err)
		}
	}
	wg.Wait()

	if errors.Is(schedErr, context.Canceled) {
		schedErr = nil
	}
	return errors.Join(serveErr, schedErr)
}
