// Package calendar implements the calendar ports on the Google Calendar v3 API.
//
// Reminders are written with a civil dateTime and an explicit IANA time zone,
// so 20:30 stays 20:30 in London across daylight saving changes.
package calendar
