package driving

import (
	"context"

	"github.com/custodia-labs/bindays/internal/core/domain"
)

// SyncOptions tunes a calendar sync.
type SyncOptions struct {
	// DryRun lists existing reminders but performs no deletes or inserts.
	DryRun bool
}

// CalendarSynchroniser mirrors collection data into the calendar.
type CalendarSynchroniser interface {
	// Sync replaces the reminders for address with one per collection and
	// returns the number of events created.
	Sync(ctx context.Context, data domain.CollectionData, address string, opts SyncOptions) (int, error)
}
