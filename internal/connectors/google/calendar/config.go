package calendar

import (
	"fmt"

	"github.com/custodia-labs/bindays/internal/core/domain"
)

// Config holds Google Calendar connector configuration.
type Config struct {
	// CalendarID is the calendar reminders are written to. It must be
	// shared with the service account.
	CalendarID string
	// MaxResults is the page size for list requests.
	MaxResults int64
	// Endpoint overrides the Calendar API base URL (optional).
	Endpoint string
}

// DefaultConfig returns the default configuration for calendarID.
func DefaultConfig(calendarID string) *Config {
	return &Config{
		CalendarID: calendarID,
		MaxResults: 250,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.CalendarID == "" {
		return fmt.Errorf("calendar id: %w", domain.ErrNotConfigured)
	}
	if c.MaxResults <= 0 {
		return fmt.Errorf("max results must be positive: %w", domain.ErrInvalidInput)
	}
	return nil
}
