package driven

import "time"

// ConfigStore provides read access to file-based settings.
// Keys use dot notation for nested tables, e.g. "calendar.id".
type ConfigStore interface {
	// Lookup returns the raw value and whether the key is present.
	Lookup(key string) (any, bool)

	// GetString returns a string value, or "" when absent or mistyped.
	GetString(key string) string

	// GetInt returns an integer value, or 0 when absent or mistyped.
	GetInt(key string) int

	// GetBool returns a boolean value, or false when absent or mistyped.
	GetBool(key string) bool

	// GetDuration returns a duration value, or 0 when absent or unparseable.
	GetDuration(key string) time.Duration
}
