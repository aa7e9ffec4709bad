package main

import (
	"fmt"

	"github.com/custodia-labs/bindays/internal/adapters/driven/accesscode"
	"github.com/custodia-labs/bindays/internal/adapters/driven/browser/chrome"
	"github.com/custodia-labs/bindays/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/bindays/internal/adapters/driving/cli"
	"github.com/custodia-labs/bindays/internal/config"
	"github.com/custodia-labs/bindays/internal/connectors/council"
	"github.com/custodia-labs/bindays/internal/connectors/council/northherts"
	"github.com/custodia-labs/bindays/internal/connectors/council/whitespace"
	"github.com/custodia-labs/bindays/internal/connectors/google"
	"github.com/custodia-labs/bindays/internal/connectors/google/calendar"
	"github.com/custodia-labs/bindays/internal/core/domain"
	"github.com/custodia-labs/bindays/internal/core/ports/driven"
	"github.com/custodia-labs/bindays/internal/core/ports/driving"
	"github.com/custodia-labs/bindays/internal/core/services"
	"github.com/custodia-labs/bindays/internal/logger"
	"github.com/custodia-labs/bindays/internal/metrics"
)

// build wires the services for s.
func build(s *config.Settings) (*cli.App, error) {
	recorder := metrics.NewRecorder()

	strategy := chrome.StrategyFor(s.IsLocal, s.ChromePath)
	logger.Debug("Browser launch strategy: %s", strategy.Name())

	scraper, err := council.New(s.Site, council.Options{
		Launcher: chrome.NewLauncher(strategy),
		Search:   recorder,
		NorthHerts: northherts.Config{
			Screenshots: s.IsLocal,
		},
		Whitespace: whitespace.Config{
			BaseURL:     s.WhitespaceURL,
			HouseNumber: s.HouseNumber,
			Postcode:    s.Postcode,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("select site: %w", err)
	}

	var syncer driving.CalendarSynchroniser
	if s.CalendarConfigured() {
		issuer := google.NewTokenIssuer(google.TokenIssuerConfig{})
		connector := calendar.NewConnector(s.Account, calendar.DefaultConfig(s.CalendarID), issuer)
		syncer = services.NewSynchroniser(connector)
	}

	var verifier driven.AccessVerifier
	v, err := accesscode.NewVerifier(s.AccessCode)
	if err != nil {
		return nil, fmt.Errorf("access code: %w", err)
	}
	if v != nil {
		verifier = v
	}

	invoker := services.NewInvoker(services.InvokerConfig{
		Address: s.Address,
		DryRun:  s.DryRun,
	}, scraper, syncer, verifier, recorder)

	app := &cli.App{
		Settings: s,
		Invoker:  invoker,
	}

	if s.ScheduleInterval > 0 {
		store := memory.NewSchedulerStore()
		app.Store = store
		app.Scheduler = services.NewScheduler(domain.NewSchedulerConfig(s.ScheduleInterval), store, invoker)
	}

	return app, nil
}
