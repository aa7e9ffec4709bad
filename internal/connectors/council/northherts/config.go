package northherts

import "time"

// LookupURL is the council's address lookup page.
const LookupURL = "https://waste.nc.north-herts.gov.uk/w/webpage/find-bin-collection-day-input-address"

// DefaultScreenshotPath is where the failure screenshot is written.
const DefaultScreenshotPath = "error-screenshot.png"

// Page selectors.
const (
	formSelector   = "form.system_form"
	searchSelector = "form.system_form input.relation_path_type_ahead_search"
	resultSelector = "div.relation_path_type_ahead_results_holder li"
	submitSelector = `input[type="submit"]`
	rowSelector    = ".listing_template_row"
)

// MaxSearchAttempts bounds the typeahead polling.
const MaxSearchAttempts = 3

// Timings holds the waits used while driving the lookup page.
type Timings struct {
	// Navigate bounds the initial page load.
	Navigate time.Duration
	// Element bounds waiting for the form and search input.
	Element time.Duration
	// Attempt bounds each search result poll.
	Attempt time.Duration
	// Submit bounds waiting for the submit button.
	Submit time.Duration
	// Results bounds waiting for the results document.
	Results time.Duration

	// PageSettle follows navigation, TypeSettle follows typing the address.
	PageSettle time.Duration
	TypeSettle time.Duration
	// RetryClear follows clearing the input on a failed attempt and
	// RetrySettle follows retyping it.
	RetryClear  time.Duration
	RetrySettle time.Duration
	// SelectSettle follows clicking the first result, ResultSettle follows
	// the results document becoming ready.
	SelectSettle time.Duration
	ResultSettle time.Duration
}

// DefaultTimings returns the waits the council site needs in practice.
func DefaultTimings() Timings {
	return Timings{
		Navigate:     30 * time.Second,
		Element:      10 * time.Second,
		Attempt:      15 * time.Second,
		Submit:       5 * time.Second,
		Results:      30 * time.Second,
		PageSettle:   3 * time.Second,
		TypeSettle:   2 * time.Second,
		RetryClear:   1 * time.Second,
		RetrySettle:  3 * time.Second,
		SelectSettle: 1 * time.Second,
		ResultSettle: 3 * time.Second,
	}
}

// Config configures the scraper.
type Config struct {
	// URL overrides LookupURL (optional).
	URL string
	// Timings overrides DefaultTimings when non-zero.
	Timings Timings
	// Screenshots saves a full-page screenshot on failure (local runs).
	Screenshots bool
	// ScreenshotPath overrides DefaultScreenshotPath (optional).
	ScreenshotPath string
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.URL == "" {
		c.URL = LookupURL
	}
	if c.Timings == (Timings{}) {
		c.Timings = DefaultTimings()
	}
	if c.ScreenshotPath == "" {
		c.ScreenshotPath = DefaultScreenshotPath
	}
	return c
}
