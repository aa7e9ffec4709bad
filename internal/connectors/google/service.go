package google

import (
	"context"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// NewCalendarService creates a Google Calendar API service using the provided
// TokenSource. A non-empty endpoint overrides the API base URL.
func NewCalendarService(ctx context.Context, ts oauth2.TokenSource, endpoint string) (*calendar.Service, error) {
	opts := []option.ClientOption{option.WithTokenSource(ts)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return calendar.NewService(ctx, opts...)
}
