package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/bindays/internal/core/dates"
	"github.com/custodia-labs/bindays/internal/core/domain"
	"github.com/custodia-labs/bindays/internal/core/ports/driven"
	"github.com/custodia-labs/bindays/internal/core/ports/driving"
	"github.com/custodia-labs/bindays/internal/logger"
)

// Ensure Synchroniser implements the interface.
var _ driving.CalendarSynchroniser = (*Synchroniser)(nil)

// Synchroniser replaces the bin reminders in the calendar with one reminder
// per collection. Re-running it with unchanged data yields the same set of
// events, with new identities.
type Synchroniser struct {
	connector driven.CalendarConnector
	now       func() time.Time
}

// NewSynchroniser creates a synchroniser that authenticates through connector.
func NewSynchroniser(connector driven.CalendarConnector) *Synchroniser {
	return &Synchroniser{
		connector: connector,
		now:       time.Now,
	}
}

// Sync deletes existing reminders for address within the sync window and
// creates one per parseable collection. It returns the number created.
// Only authentication failures are returned as errors; cleanup and
// per-event failures are logged and skipped.
func (s *Synchroniser) Sync(
	ctx context.Context,
	data domain.CollectionData,
	address string,
	opts driving.SyncOptions,
) (int, error) {
	if s.connector == nil {
		return 0, fmt.Errorf("calendar connector: %w", domain.ErrNotConfigured)
	}

	logger.Section("Calendar sync")
	logger.Info("Setting up calendar authentication")

	client, err := s.connector.Connect(ctx)
	if err != nil {
		return 0, fmt.Errorf("connect calendar: %w", err)
	}

	s.removeExisting(ctx, client, address, opts)

	created := 0
	for _, record := range data.Records() {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		collectionDate, err := dates.Parse(record.DateString)
		if err != nil {
			logger.Warn("Could not parse date for %s: %s", record.WasteType, record.DateString)
			continue
		}

		event := domain.NewReminderEvent(record.WasteType, record.DateString, address,
			dates.ReminderStart(collectionDate))

		if opts.DryRun {
			logger.Info("Dry run: would create reminder for %s at %s",
				record.WasteType, event.Start.Format("Monday 2 January 2006 15:04"))
			created++
			continue
		}

		id, err := client.InsertEvent(ctx, event)
		if err != nil {
			logger.Error("Failed to create event for %s: %v", record.WasteType, err)
			continue
		}

		logger.Info("Created reminder %s for %s on %s",
			id, record.WasteType, event.Start.Format("Monday 2 January 2006 15:04"))
		created++
	}

	return created, nil
}

// removeExisting deletes reminders owned by bindays for address in the
// window [now, now+SyncWindowMonths]. It is best-effort.
func (s *Synchroniser) removeExisting(
	ctx context.Context,
	client driven.CalendarClient,
	address string,
	opts driving.SyncOptions,
) {
	now := s.now()
	query := driven.EventQuery{
		TimeMin: now,
		TimeMax: dates.AddMonths(now, domain.SyncWindowMonths),
		Text:    domain.SearchQuery(address),
	}

	logger.Info("Removing existing bin collection events")

	existing, err := client.ListEvents(ctx, query)
	if err != nil {
		logger.Warn("Could not list existing events, skipping cleanup: %v", err)
		return
	}

	for _, ev := range existing {
		if !ev.OwnedBy(address) {
			logger.Debug("Keeping event %s (%q): not a reminder for this address", ev.ID, ev.Summary)
			continue
		}
		if opts.DryRun {
			logger.Info("Dry run: would delete event %s (%q)", ev.ID, ev.Summary)
			continue
		}
		if err := client.DeleteEvent(ctx, ev.ID); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			logger.Warn("Failed to delete event %s: %v", ev.ID, err)
			continue
		}
		logger.Debug("Deleted event %s", ev.ID)
	}
}
