package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bindays/internal/core/domain"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"Thursday 11th September 2025", time.Date(2025, time.September, 11, 0, 0, 0, 0, time.UTC)},
		{"Monday 1st December 2025", time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)},
		{"Friday 2nd January 2026", time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)},
		{"Saturday 23rd May 2026", time.Date(2026, time.May, 23, 0, 0, 0, 0, time.UTC)},
		{"Thursday 29th February 2024", time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{"  Tuesday   12th August 2025 ", time.Date(2025, time.August, 12, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"garbage",
		"",
		"11/09/2025",
		"Thursday 11th Septembre 2025",
		"Saturday 31st February 2025",
		"Friday 29th February 2025",
		"Thursday 11 September 2025",
		"Thursday 11xx September 2025",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrParse)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2025, time.September, 11, 0, 0, 0, 0, time.UTC), "Thursday 11th September 2025"},
		{time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), "Monday 1st September 2025"},
		{time.Date(2025, time.September, 2, 0, 0, 0, 0, time.UTC), "Tuesday 2nd September 2025"},
		{time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC), "Wednesday 3rd September 2025"},
		{time.Date(2025, time.September, 12, 0, 0, 0, 0, time.UTC), "Friday 12th September 2025"},
		{time.Date(2025, time.September, 13, 0, 0, 0, 0, time.UTC), "Saturday 13th September 2025"},
		{time.Date(2025, time.September, 21, 0, 0, 0, 0, time.UTC), "Sunday 21st September 2025"},
		{time.Date(2025, time.September, 22, 0, 0, 0, 0, time.UTC), "Monday 22nd September 2025"},
		{time.Date(2025, time.September, 23, 0, 0, 0, 0, time.UTC), "Tuesday 23rd September 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.date))
		})
	}
}

func TestFormat_RoundTripsThroughParse(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for d := start; d.Year() == 2025; d = d.AddDate(0, 0, 1) {
		got, err := Parse(Format(d))
		require.NoError(t, err, Format(d))
		assert.Equal(t, d, got)
	}
}

func TestSubtractDays(t *testing.T) {
	d := time.Date(2025, time.March, 1, 7, 15, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, time.February, 28, 7, 15, 0, 0, time.UTC), SubtractDays(d, 1))
	assert.Equal(t, time.Date(2024, time.December, 31, 7, 15, 0, 0, time.UTC), SubtractDays(time.Date(2025, time.January, 1, 7, 15, 0, 0, time.UTC), 1))
	assert.Equal(t, d, SubtractDays(d, 0))
}

func TestSetTime(t *testing.T) {
	d := time.Date(2025, time.September, 10, 3, 4, 5, 6, time.UTC)

	got := SetTime(d, 20, 30)

	assert.Equal(t, time.Date(2025, time.September, 10, 20, 30, 0, 0, time.UTC), got)
}

func TestAddMonths(t *testing.T) {
	d := time.Date(2025, time.November, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC), AddMonths(d, 2))
	assert.Equal(t, time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC), AddMonths(d, -1))
}

func TestReminderStart(t *testing.T) {
	collection, err := Parse("Thursday 11th September 2025")
	require.NoError(t, err)

	start := ReminderStart(collection)

	assert.Equal(t, time.Date(2025, time.September, 10, 20, 30, 0, 0, time.UTC), start)
	assert.Equal(t, 3*time.Hour+30*time.Minute, collection.Sub(start))
}

func TestReminderStart_AlwaysDayBefore(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for d := start; d.Year() < 2027; d = d.AddDate(0, 0, 1) {
		got := ReminderStart(d)
		assert.Equal(t, d.AddDate(0, 0, -1).Day(), got.Day())
		assert.Equal(t, 20, got.Hour())
		assert.Equal(t, 30, got.Minute())
	}
}
