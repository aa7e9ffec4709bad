package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/bindays/internal/core/domain"
	"github.com/custodia-labs/bindays/internal/core/ports/driven"
	"github.com/custodia-labs/bindays/internal/core/ports/driving"
	"github.com/custodia-labs/bindays/internal/logger"
)

// Ensure Invoker implements the interface.
var _ driving.Invoker = (*Invoker)(nil)

// InvokerConfig holds the per-deployment settings of the entry point.
type InvokerConfig struct {
	// Address is the household to look up.
	Address string
	// DryRun disables calendar writes.
	DryRun bool
}

// Invoker wires the scraper and the calendar synchroniser together and turns
// every outcome into a Response.
type Invoker struct {
	config   InvokerConfig
	scraper  driven.Scraper
	syncer   driving.CalendarSynchroniser
	verifier driven.AccessVerifier
	recorder driven.RunRecorder
	now      func() time.Time

	// Runs are serialised so scheduled and manual runs never overlap.
	mu sync.Mutex
}

// NewInvoker creates the entry point.
// syncer, verifier and recorder are optional: a nil syncer skips calendar
// integration and a nil verifier accepts every invocation.
func NewInvoker(
	config InvokerConfig,
	scraper driven.Scraper,
	syncer driving.CalendarSynchroniser,
	verifier driven.AccessVerifier,
	recorder driven.RunRecorder,
) *Invoker {
	return &Invoker{
		config:   config,
		scraper:  scraper,
		syncer:   syncer,
		verifier: verifier,
		recorder: recorder,
		now:      time.Now,
	}
}

// Invoke checks the access code and performs a run on match.
func (i *Invoker) Invoke(ctx context.Context, inv domain.Invocation) (resp domain.Response) {
	defer i.recoverFailure(&resp)

	if i.verifier != nil && !i.verifier.Verify(inv.Code()) {
		logger.Warn("Rejected %s invocation: access code mismatch", sourceName(inv))
		i.record(domain.OutcomeUnauthorised, 0)
		return domain.Response{
			StatusCode: http.StatusUnauthorized,
			Body:       domain.MessageBody{Msg: "Not authorised"},
		}
	}

	logger.Debug("Accepted %s invocation", sourceName(inv))
	return i.Run(ctx)
}

// Run scrapes the council site and, when a synchroniser is configured,
// mirrors the result into the calendar.
func (i *Invoker) Run(ctx context.Context) (resp domain.Response) {
	if !i.mu.TryLock() {
		i.record(domain.OutcomeBusy, 0)
		return i.failure(http.StatusConflict, domain.ErrRunInProgress, "")
	}
	defer i.mu.Unlock()

	defer i.recoverFailure(&resp)

	runID := uuid.New().String()
	address := i.config.Address

	logger.Section("Run " + runID)
	logger.Info("Checking bin times for: %s", address)

	if i.scraper == nil {
		i.record(domain.OutcomeFailure, 0)
		return i.failure(http.StatusInternalServerError, fmt.Errorf("scraper: %w", domain.ErrNotConfigured), "")
	}

	result, err := i.scraper.Scrape(ctx, address)
	if err != nil {
		logger.Error("Scraping failed: %v", err)
		i.record(domain.OutcomeFailure, 0)
		return i.failure(http.StatusInternalServerError, err, domain.KindOf(err))
	}

	summary := domain.SummaryBody{
		Address:         address,
		CollectionTimes: result.CollectionData,
		URL:             result.URL,
		DryRun:          i.config.DryRun,
		RunID:           runID,
	}

	if i.syncer != nil {
		logger.Info("Creating calendar events")
		created, err := i.syncer.Sync(ctx, result.CollectionData, address,
			driving.SyncOptions{DryRun: i.config.DryRun})
		if err != nil {
			logger.Error("Calendar integration failed: %v", err)
			summary.CalendarError = err.Error()
		}
		summary.CalendarEvents = created
		logger.Info("Created %d calendar events", created)
	} else {
		logger.Info("Calendar credentials not provided, skipping calendar integration")
	}

	summary.Timestamp = i.now().UTC()
	i.record(domain.OutcomeSuccess, summary.CalendarEvents)
	logger.Info("Run %s completed successfully", runID)

	return domain.Response{StatusCode: http.StatusOK, Body: summary}
}

func (i *Invoker) failure(status int, err error, kind domain.FailureKind) domain.Response {
	return domain.Response{
		StatusCode: status,
		Body: domain.FailureBody{
			Error:     err.Error(),
			ErrorType: kind,
			Timestamp: i.now().UTC(),
		},
	}
}

// recoverFailure turns a panic in the deferring call into a 500 response.
func (i *Invoker) recoverFailure(resp *domain.Response) {
	if r := recover(); r != nil {
		logger.Error("Run panicked: %v", r)
		i.record(domain.OutcomeFailure, 0)
		*resp = i.failure(http.StatusInternalServerError, fmt.Errorf("internal error: %v", r), "")
	}
}

func (i *Invoker) record(outcome string, events int) {
	if i.recorder != nil {
		i.recorder.RecordRun(outcome, events)
	}
}

func sourceName(inv domain.Invocation) string {
	if inv.Source == "" {
		return "direct"
	}
	return inv.Source
}
