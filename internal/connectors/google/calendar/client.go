package calendar

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/bindays/internal/connectors/google"
	"github.com/custodia-labs/bindays/internal/core/domain"
	"github.com/custodia-labs/bindays/internal/core/ports/driven"
	"github.com/custodia-labs/bindays/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.CalendarClient = (*Client)(nil)

// Client performs event operations on a single Google calendar.
type Client struct {
	service *calendar.Service
	config  *Config
	limiter *google.RateLimiter
}

// NewClient creates a client bound to config.CalendarID.
func NewClient(service *calendar.Service, config *Config, limiter *google.RateLimiter) *Client {
	if limiter == nil {
		limiter = google.NewRateLimiter(google.CalendarRateLimit)
	}
	return &Client{
		service: service,
		config:  config,
		limiter: limiter,
	}
}

// ListEvents returns single events starting in the query window that match
// the free-text query, ordered by start time.
func (c *Client) ListEvents(ctx context.Context, query driven.EventQuery) ([]domain.CalendarEvent, error) {
	call := c.service.Events.List(c.config.CalendarID).
		TimeMin(query.TimeMin.Format(time.RFC3339)).
		TimeMax(query.TimeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(c.config.MaxResults)
	if query.Text != "" {
		call = call.Q(query.Text)
	}

	var events []domain.CalendarEvent
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		page, err := call.Context(ctx).Do()
		if err != nil {
			return nil, c.classify("list events", err)
		}

		for _, item := range page.Items {
			if ShouldDelete(item) {
				events = append(events, EventToDomain(item))
			}
		}

		if page.NextPageToken == "" {
			break
		}
		call = call.PageToken(page.NextPageToken)
	}

	logger.Debug("Found %d existing events matching %q", len(events), query.Text)
	return events, nil
}

// InsertEvent creates the reminder and returns the new event ID.
func (c *Client) InsertEvent(ctx context.Context, event domain.ReminderEvent) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	created, err := c.service.Events.Insert(c.config.CalendarID, ReminderToEvent(event)).Context(ctx).Do()
	if err != nil {
		return "", c.classify("insert event", err)
	}
	return created.Id, nil
}

// DeleteEvent removes an event by ID. Deleting an event that is already gone
// succeeds.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	err := c.service.Events.Delete(c.config.CalendarID, eventID).Context(ctx).Do()
	if err != nil {
		if google.IsGone(err) || google.IsNotFound(err) {
			logger.Debug("Event %s already deleted", eventID)
			return nil
		}
		return c.classify("delete event", err)
	}
	return nil
}

// classify wraps err with domain.ErrCalendarAPI and backs off on 429.
func (c *Client) classify(op string, err error) error {
	if google.IsRateLimited(err) {
		c.limiter.Throttled(err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrCalendarAPI, op, google.WrapError(err))
}
