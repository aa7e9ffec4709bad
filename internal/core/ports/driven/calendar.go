package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/bindays/internal/core/domain"
)

// CalendarConnector authenticates against the calendar service.
type CalendarConnector interface {
	// Connect acquires an access credential and returns a client bound to
	// the configured calendar. Authentication failures wrap domain.ErrAuth.
	Connect(ctx context.Context) (CalendarClient, error)
}

// CalendarClient performs event operations on a single calendar.
// Errors wrap domain.ErrCalendarAPI.
type CalendarClient interface {
	// ListEvents returns events in the window matching the free-text query.
	ListEvents(ctx context.Context, query EventQuery) ([]domain.CalendarEvent, error)

	// InsertEvent creates the reminder and returns the new event ID.
	InsertEvent(ctx context.Context, event domain.ReminderEvent) (string, error)

	// DeleteEvent removes an event by ID.
	DeleteEvent(ctx context.Context, eventID string) error
}

// EventQuery selects events for cleanup.
type EventQuery struct {
	// TimeMin and TimeMax bound event start times.
	TimeMin time.Time
	TimeMax time.Time
	// Text is a free-text search term.
	Text string
}

// TokenIssuer obtains short-lived bearer tokens for a service account.
type TokenIssuer interface {
	// AccessToken signs an assertion for account and exchanges it for a token.
	// Failures wrap domain.ErrAuth.
	AccessToken(ctx context.Context, account domain.ServiceAccount, scopes []string) (*domain.AccessCredential, error)
}
