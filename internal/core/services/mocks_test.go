package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/bindays/internal/core/domain"
	"github.com/custodia-labs/bindays/internal/core/ports/driven"
	"github.com/custodia-labs/bindays/internal/core/ports/driving"
)

// --- Mock implementations shared by the service tests ---

// fakeCalendar is an in-memory calendar implementing driven.CalendarClient.
// ListEvents mimics the calendar service's free-text search: every query term
// must appear in the summary or description.
type fakeCalendar struct {
	mu        sync.Mutex
	events    map[string]storedEvent
	nextID    int
	listErr   error
	insertErr error
	deleteErr error
	failOn    map[string]bool // waste types whose insert fails

	listCalls   int
	insertCalls int
	deleteCalls int
}

type storedEvent struct {
	summary     string
	description string
	start       time.Time
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{events: make(map[string]storedEvent), failOn: make(map[string]bool)}
}

func (f *fakeCalendar) ListEvents(_ context.Context, q driven.EventQuery) ([]domain.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}

	var out []domain.CalendarEvent
	for id, ev := range f.events {
		if ev.start.Before(q.TimeMin) || ev.start.After(q.TimeMax) {
			continue
		}
		text := strings.ToLower(ev.summary + " " + ev.description)
		matched := true
		for _, term := range strings.Fields(strings.ToLower(q.Text)) {
			if !strings.Contains(text, term) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, domain.CalendarEvent{
				ID:          id,
				Summary:     ev.summary,
				Description: ev.description,
				Start:       ev.start.Format(time.RFC3339),
			})
		}
	}
	return out, nil
}

func (f *fakeCalendar) InsertEvent(_ context.Context, ev domain.ReminderEvent) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertCalls++
	if f.insertErr != nil {
		return "", f.insertErr
	}
	for wasteType := range f.failOn {
		if strings.HasSuffix(ev.Title, wasteType) {
			return "", fmt.Errorf("%w: status 503", domain.ErrCalendarAPI)
		}
	}
	f.nextID++
	id := fmt.Sprintf("evt-%d", f.nextID)
	f.events[id] = storedEvent{summary: ev.Title, description: ev.Description, start: ev.Start}
	return id, nil
}

func (f *fakeCalendar) DeleteEvent(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.events, id)
	return nil
}

func (f *fakeCalendar) add(summary, description string, start time.Time) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("evt-%d", f.nextID)
	f.events[id] = storedEvent{summary: summary, description: description, start: start}
	return id
}

func (f *fakeCalendar) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func (f *fakeCalendar) ids() map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]bool, len(f.events))
	for id := range f.events {
		out[id] = true
	}
	return out
}

// fakeConnector implements driven.CalendarConnector.
type fakeConnector struct {
	client     driven.CalendarClient
	err        error
	connectCnt int
}

func (c *fakeConnector) Connect(_ context.Context) (driven.CalendarClient, error) {
	c.connectCnt++
	if c.err != nil {
		return nil, c.err
	}
	return c.client, nil
}

// mockScraper implements driven.Scraper.
type mockScraper struct {
	result  *domain.ScrapeResult
	err     error
	panic   any
	calls   int
	started chan struct{}
	block   chan struct{}
}

func (m *mockScraper) Name() string { return "mock" }

func (m *mockScraper) Scrape(_ context.Context, address string) (*domain.ScrapeResult, error) {
	m.calls++
	if m.started != nil {
		close(m.started)
	}
	if m.block != nil {
		<-m.block
	}
	if m.panic != nil {
		panic(m.panic)
	}
	if m.err != nil {
		return nil, m.err
	}
	res := *m.result
	res.Address = address
	return &res, nil
}

// mockSynchroniser implements driving.CalendarSynchroniser.
type mockSynchroniser struct {
	created int
	err     error
	calls   int
	opts    driving.SyncOptions
	data    domain.CollectionData
}

func (m *mockSynchroniser) Sync(
	_ context.Context,
	data domain.CollectionData,
	_ string,
	opts driving.SyncOptions,
) (int, error) {
	m.calls++
	m.opts = opts
	m.data = data
	return m.created, m.err
}

// staticVerifier implements driven.AccessVerifier.
type staticVerifier string

func (v staticVerifier) Verify(code string) bool { return code == string(v) }

// panickingVerifier implements driven.AccessVerifier and panics on use.
type panickingVerifier struct{}

func (panickingVerifier) Verify(string) bool { panic("argon2: number of rounds too small") }

// mockRecorder implements driven.RunRecorder.
type mockRecorder struct {
	mu       sync.Mutex
	outcomes []string
	events   int
}

func (r *mockRecorder) RecordRun(outcome string, events int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
	r.events += events
}

var errBoom = errors.New("boom")

// Ensure mocks implement interfaces
var _ driven.CalendarClient = (*fakeCalendar)(nil)
var _ driven.CalendarConnector = (*fakeConnector)(nil)
var _ driven.Scraper = (*mockScraper)(nil)
var _ driving.CalendarSynchroniser = (*mockSynchroniser)(nil)
var _ driven.AccessVerifier = staticVerifier("")
var _ driven.AccessVerifier = panickingVerifier{}
var _ driven.RunRecorder = (*mockRecorder)(nil)
