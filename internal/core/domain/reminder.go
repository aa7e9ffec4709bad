package domain

import (
	"fmt"
	"strings"
	"time"
)

// Reminder scheduling constants.
const (
	// ReminderTimeZone is the zone every reminder is created in.
	ReminderTimeZone = "Europe/London"
	// ReminderHour and ReminderMinute fix the reminder to 20:30 the evening before.
	ReminderHour   = 20
	ReminderMinute = 30
	// ReminderDuration is the length of the reminder event.
	ReminderDuration = time.Hour
	// ReminderColorID is the calendar colour used for reminders (green).
	ReminderColorID = "2"
	// SyncWindowMonths bounds how far ahead existing reminders are replaced.
	SyncWindowMonths = 2
)

// OwnershipMarker identifies events created by bindays.
// It is matched as free text, so editing reminder titles by hand can make
// events invisible to cleanup, and unrelated events mentioning the marker
// and the address will be treated as ours.
const OwnershipMarker = "bin collection"

// ReminderOverride is a single notification attached to a reminder.
type ReminderOverride struct {
	// Method is "popup" or "email".
	Method string
	// Minutes is how long before the event start the notification fires.
	Minutes int64
}

// DefaultReminderOverrides returns a popup shortly before and an email further ahead.
func DefaultReminderOverrides() []ReminderOverride {
	return []ReminderOverride{
		{Method: "popup", Minutes: 5},
		{Method: "email", Minutes: 60},
	}
}

// ReminderEvent is a calendar reminder derived from one collection.
// Start and End are civil times; their location is ignored and TimeZone
// says how the calendar should interpret them.
type ReminderEvent struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
	ColorID     string
	Reminders   []ReminderOverride
}

// NewReminderEvent builds the reminder for a collection, starting at start
// and lasting ReminderDuration.
func NewReminderEvent(wasteType, dateString, address string, start time.Time) ReminderEvent {
	return ReminderEvent{
		Title: fmt.Sprintf("🗑️ Bin Collection Reminder - %s", wasteType),
		Description: fmt.Sprintf(
			"Reminder to put out %s bin for collection tomorrow.\n\nAddress: %s\nCollection Date: %s",
			wasteType, address, dateString),
		Start:     start,
		End:       start.Add(ReminderDuration),
		TimeZone:  ReminderTimeZone,
		ColorID:   ReminderColorID,
		Reminders: DefaultReminderOverrides(),
	}
}

// CalendarEvent is an existing event as listed back from the calendar service.
type CalendarEvent struct {
	ID          string
	Summary     string
	Description string
	Start       string
}

// OwnedBy reports whether the event carries the ownership marker and the address.
func (e CalendarEvent) OwnedBy(address string) bool {
	text := strings.ToLower(e.Summary + "\n" + e.Description)
	if !strings.Contains(text, OwnershipMarker) {
		return false
	}
	return address == "" || strings.Contains(text, strings.ToLower(address))
}

// SearchQuery is the free-text query used to find reminders for an address.
func SearchQuery(address string) string {
	return strings.TrimSpace(OwnershipMarker + " " + address)
}
