package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bindays/internal/core/domain"
	"github.com/custodia-labs/bindays/internal/core/ports/driving"
)

var syncNow = time.Date(2025, time.September, 1, 9, 0, 0, 0, time.UTC)

func newTestSynchroniser(cal *fakeCalendar) *Synchroniser {
	s := NewSynchroniser(&fakeConnector{client: cal})
	s.now = func() time.Time { return syncNow }
	return s
}

func TestSynchroniser_Sync_CreatesReminder(t *testing.T) {
	cal := newFakeCalendar()
	s := newTestSynchroniser(cal)

	created, err := s.Sync(context.Background(),
		domain.CollectionData{"Refuse": "Thursday 11th September 2025"},
		"1 Test St", driving.SyncOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, created)
	require.Equal(t, 1, cal.count())

	for _, ev := range cal.events {
		assert.Contains(t, ev.summary, "Refuse")
		assert.Equal(t, "2025-09-10T20:30:00", ev.start.Format("2006-01-02T15:04:05"))
	}
}

func TestSynchroniser_Sync_Idempotent(t *testing.T) {
	cal := newFakeCalendar()
	s := newTestSynchroniser(cal)
	data := domain.CollectionData{
		"Refuse":    "Thursday 11th September 2025",
		"Recycling": "Thursday 18th September 2025",
	}

	first, err := s.Sync(context.Background(), data, "1 Test St", driving.SyncOptions{})
	require.NoError(t, err)
	firstIDs := cal.ids()

	second, err := s.Sync(context.Background(), data, "1 Test St", driving.SyncOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, cal.count())
	for id := range cal.ids() {
		assert.False(t, firstIDs[id], "event %s should have been recreated", id)
	}
}

func TestSynchroniser_Sync_KeepsUnrelatedEvents(t *testing.T) {
	cal := newFakeCalendar()
	dentist := cal.add("Dentist", "bin collection 1 Test St is nearby", syncNow.Add(48*time.Hour))
	otherHouse := cal.add("🗑️ Bin Collection Reminder - Refuse", "Address: 2 Other Rd", syncNow.Add(48*time.Hour))
	outsideWindow := cal.add("🗑️ Bin Collection Reminder - Refuse", "Address: 1 Test St",
		syncNow.AddDate(0, 3, 0))
	s := newTestSynchroniser(cal)

	_, err := s.Sync(context.Background(), domain.CollectionData{}, "1 Test St", driving.SyncOptions{})
	require.NoError(t, err)

	ids := cal.ids()
	assert.True(t, ids[otherHouse])
	assert.True(t, ids[outsideWindow])
	// The dentist event matches the free-text query and both marker and address,
	// which is the documented soft spot of text-based ownership.
	assert.False(t, ids[dentist])
}

func TestSynchroniser_Sync_SkipsUnparseableDates(t *testing.T) {
	cal := newFakeCalendar()
	s := newTestSynchroniser(cal)

	created, err := s.Sync(context.Background(), domain.CollectionData{
		"Refuse":    "Thursday 11th September 2025",
		"Garden":    "garbage",
		"Recycling": "Someday 3rd Smarch 2025",
	}, "1 Test St", driving.SyncOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, cal.insertCalls)
}

func TestSynchroniser_Sync_InsertFailureIsSkipped(t *testing.T) {
	cal := newFakeCalendar()
	cal.failOn["Recycling"] = true
	s := newTestSynchroniser(cal)

	created, err := s.Sync(context.Background(), domain.CollectionData{
		"Refuse":    "Thursday 11th September 2025",
		"Recycling": "Thursday 18th September 2025",
	}, "1 Test St", driving.SyncOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 2, cal.insertCalls)
}

func TestSynchroniser_Sync_ListFailureStillInserts(t *testing.T) {
	cal := newFakeCalendar()
	cal.listErr = errBoom
	s := newTestSynchroniser(cal)

	created, err := s.Sync(context.Background(),
		domain.CollectionData{"Refuse": "Thursday 11th September 2025"},
		"1 Test St", driving.SyncOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 0, cal.deleteCalls)
}

func TestSynchroniser_Sync_DeleteFailureIsBestEffort(t *testing.T) {
	cal := newFakeCalendar()
	cal.add("🗑️ Bin Collection Reminder - Refuse", "Address: 1 Test St", syncNow.Add(24*time.Hour))
	cal.add("🗑️ Bin Collection Reminder - Recycling", "Address: 1 Test St", syncNow.Add(48*time.Hour))
	cal.deleteErr = errBoom
	s := newTestSynchroniser(cal)

	created, err := s.Sync(context.Background(),
		domain.CollectionData{"Refuse": "Thursday 11th September 2025"},
		"1 Test St", driving.SyncOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 2, cal.deleteCalls)
}

func TestSynchroniser_Sync_DryRun(t *testing.T) {
	cal := newFakeCalendar()
	existing := cal.add("🗑️ Bin Collection Reminder - Refuse", "Address: 1 Test St", syncNow.Add(24*time.Hour))
	s := newTestSynchroniser(cal)

	created, err := s.Sync(context.Background(), domain.CollectionData{
		"Refuse":    "Thursday 11th September 2025",
		"Recycling": "Thursday 18th September 2025",
	}, "1 Test St", driving.SyncOptions{DryRun: true})

	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 1, cal.listCalls)
	assert.Equal(t, 0, cal.insertCalls)
	assert.Equal(t, 0, cal.deleteCalls)
	assert.True(t, cal.ids()[existing])
}

func TestSynchroniser_Sync_AuthFailure(t *testing.T) {
	s := NewSynchroniser(&fakeConnector{err: domain.ErrAuth})

	created, err := s.Sync(context.Background(),
		domain.CollectionData{"Refuse": "Thursday 11th September 2025"},
		"1 Test St", driving.SyncOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuth)
	assert.Equal(t, 0, created)
}

func TestSynchroniser_Sync_NoConnector(t *testing.T) {
	s := NewSynchroniser(nil)

	_, err := s.Sync(context.Background(), domain.CollectionData{}, "1 Test St", driving.SyncOptions{})

	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestSynchroniser_Sync_CancelledContext(t *testing.T) {
	cal := newFakeCalendar()
	s := newTestSynchroniser(cal)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	created, err := s.Sync(ctx,
		domain.CollectionData{"Refuse": "Thursday 11th September 2025"},
		"1 Test St", driving.SyncOptions{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, created)
	assert.Equal(t, 0, cal.insertCalls)
}
