package calendar

import (
	"google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/bindays/internal/core/domain"
)

// civilLayout renders a time without an offset; the event's TimeZone field
// tells the calendar how to interpret it.
const civilLayout = "2006-01-02T15:04:05"

// ReminderToEvent converts a reminder to a Google Calendar event.
func ReminderToEvent(r domain.ReminderEvent) *calendar.Event {
	overrides := make([]*calendar.EventReminder, 0, len(r.Reminders))
	for _, o := range r.Reminders {
		overrides = append(overrides, &calendar.EventReminder{
			Method:  o.Method,
			Minutes: o.Minutes,
		})
	}

	return &calendar.Event{
		Summary:     r.Title,
		Description: r.Description,
		Start: &calendar.EventDateTime{
			DateTime: r.Start.Format(civilLayout),
			TimeZone: r.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: r.End.Format(civilLayout),
			TimeZone: r.TimeZone,
		},
		ColorId: r.ColorID,
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides:  overrides,
			// useDefault=false must be sent explicitly or the calendar
			// applies its default notifications on top of the overrides.
			ForceSendFields: []string{"UseDefault"},
		},
	}
}

// EventToDomain converts a listed Google Calendar event.
func EventToDomain(event *calendar.Event) domain.CalendarEvent {
	start, _ := extractEventTimes(event)
	return domain.CalendarEvent{
		ID:          event.Id,
		Summary:     event.Summary,
		Description: event.Description,
		Start:       start,
	}
}

// extractEventTimes extracts start and end times from an event.
func extractEventTimes(event *calendar.Event) (startTime, endTime string) {
	if event.Start != nil {
		if event.Start.DateTime != "" {
			startTime = event.Start.DateTime
		} else {
			startTime = event.Start.Date
		}
	}
	if event.End != nil {
		if event.End.DateTime != "" {
			endTime = event.End.DateTime
		} else {
			endTime = event.End.Date
		}
	}
	return startTime, endTime
}

// ShouldDelete reports whether a listed event can be deleted.
// Cancelled instances are already gone.
func ShouldDelete(event *calendar.Event) bool {
	return event != nil && event.Id != "" && event.Status != "cancelled"
}
