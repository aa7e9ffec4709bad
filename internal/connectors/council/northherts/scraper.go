package northherts

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/bindays/internal/core/domain"
	"github.com/custodia-labs/bindays/internal/core/ports/driven"
	"github.com/custodia-labs/bindays/internal/logger"
)

// Ensure Scraper implements the interface.
var _ driven.Scraper = (*Scraper)(nil)

// diagnosticsTimeout bounds the URL, title and screenshot capture after a failure.
const diagnosticsTimeout = 10 * time.Second

// Scraper reads collection dates for North Hertfordshire addresses by
// driving the council's typeahead lookup in a headless browser.
type Scraper struct {
	launcher driven.BrowserLauncher
	config   Config
	search   driven.SearchRecorder
	sleep    func(ctx context.Context, d time.Duration) error
	now      func() time.Time
}

// New creates a scraper. search is optional.
func New(launcher driven.BrowserLauncher, config Config, search driven.SearchRecorder) *Scraper {
	return &Scraper{
		launcher: launcher,
		config:   config.withDefaults(),
		search:   search,
		sleep:    sleepContext,
		now:      time.Now,
	}
}

// Name implements driven.Scraper.
func (s *Scraper) Name() string { return "north-herts" }

// Scrape looks up address and returns its collection dates. The browser and
// page are always closed; close failures are logged only.
func (s *Scraper) Scrape(ctx context.Context, address string) (*domain.ScrapeResult, error) {
	logger.Info("Scraping bin collection times for: %s", address)
	logger.Info("Launching browser")

	browser, err := s.launcher.Launch(ctx)
	if err != nil {
		return nil, domain.NewScrapeError(domain.KindScrape, "Failed to launch browser", err)
	}
	defer closeLogged("browser", browser.Close)

	page, err := browser.NewPage(ctx)
	if err != nil {
		return nil, domain.NewScrapeError(domain.KindScrape, "Failed to open page", err)
	}
	defer closeLogged("page", page.Close)

	result, err := s.scrape(ctx, page, address)
	if err != nil {
		logger.Error("Error during scraping: %v", err)
		s.reportFailure(ctx, page)
		return nil, err
	}
	return result, nil
}

func (s *Scraper) scrape(ctx context.Context, page driven.Page, address string) (*domain.ScrapeResult, error) {
	t := s.config.Timings

	logger.Info("Navigating to the bin collection page")
	status, err := page.Navigate(ctx, s.config.URL, t.Navigate)
	if err != nil {
		return nil, domain.NewScrapeError(domain.KindNavigation, "Failed to load page", err)
	}
	if status == 0 {
		return nil, domain.NewScrapeError(domain.KindNavigation, "Failed to load page: No response", nil)
	}
	if status < 200 || status > 299 {
		return nil, domain.NewScrapeError(domain.KindNavigation,
			fmt.Sprintf("Failed to load page: %d", status), nil)
	}

	if err := s.sleep(ctx, t.PageSettle); err != nil {
		return nil, scrapeErr("Interrupted while waiting for page", err)
	}
	if title, err := page.Title(ctx); err == nil {
		logger.Info("Page loaded: %s", title)
	}

	logger.Info("Looking for the address form")
	if err := page.WaitVisible(ctx, formSelector, t.Element); err != nil {
		return nil, scrapeErr("Address form not found", err)
	}
	if err := page.WaitVisible(ctx, searchSelector, t.Element); err != nil {
		return nil, scrapeErr("Address input not found", err)
	}

	logger.Info("Typing address: %s", address)
	if err := s.typeAddress(ctx, page, address, t.TypeSettle); err != nil {
		return nil, err
	}
	if typed, err := page.Value(ctx, searchSelector); err == nil {
		if typed != address {
			logger.Warn("Typed value %q does not match expected address %q", typed, address)
		} else {
			logger.Debug("Address typed successfully")
		}
	}

	if err := s.awaitResults(ctx, page, address); err != nil {
		return nil, err
	}

	logger.Info("Selecting first search result")
	if err := page.Click(ctx, resultSelector); err != nil {
		return nil, scrapeErr("Could not select search result", err)
	}
	if err := s.sleep(ctx, t.SelectSettle); err != nil {
		return nil, scrapeErr("Interrupted after selecting result", err)
	}

	logger.Info("Submitting form")
	if err := page.WaitVisible(ctx, submitSelector, t.Submit); err != nil {
		return nil, scrapeErr("Submit button not found", err)
	}
	if err := page.Click(ctx, submitSelector); err != nil {
		return nil, scrapeErr("Could not submit form", err)
	}

	logger.Info("Waiting for results")
	if err := page.WaitReady(ctx, t.Results); err != nil {
		return nil, scrapeErr("Results page did not load", err)
	}
	if err := s.sleep(ctx, t.ResultSettle); err != nil {
		return nil, scrapeErr("Interrupted while waiting for results", err)
	}

	logger.Info("Extracting bin collection information")
	html, err := page.HTML(ctx)
	if err != nil {
		return nil, scrapeErr("Could not read results page", err)
	}
	data, err := ExtractCollections(html)
	if err != nil {
		return nil, scrapeErr("Could not parse results page", err)
	}
	if len(data) == 0 {
		logger.Warn("No collection rows found on the results page")
	}
	for _, record := range data.Records() {
		logger.Info("  %s: %s", record.WasteType, record.DateString)
	}

	currentURL, err := page.URL(ctx)
	if err != nil {
		logger.Warn("Could not read current URL: %v", err)
	}
	logger.Debug("Current URL: %s", currentURL)

	return &domain.ScrapeResult{
		Address:        address,
		URL:            currentURL,
		CollectionData: data,
		ScrapedAt:      s.now().UTC(),
	}, nil
}

// typeAddress focuses the search input, replaces its content with address
// and waits for the typeahead to react.
func (s *Scraper) typeAddress(ctx context.Context, page driven.Page, address string, settle time.Duration) error {
	if err := page.Click(ctx, searchSelector); err != nil {
		return scrapeErr("Could not focus address input", err)
	}
	if err := page.Fill(ctx, searchSelector, address); err != nil {
		return scrapeErr("Could not type address", err)
	}
	if err := s.sleep(ctx, settle); err != nil {
		return scrapeErr("Interrupted while typing address", err)
	}
	return nil
}

// awaitResults polls for typeahead results up to MaxSearchAttempts times,
// clearing and retyping the address between attempts.
func (s *Scraper) awaitResults(ctx context.Context, page driven.Page, address string) error {
	t := s.config.Timings

	logger.Info("Waiting for search results to appear")
	for attempt := 1; attempt <= MaxSearchAttempts; attempt++ {
		logger.Info("Attempt %d/%d: looking for search results", attempt, MaxSearchAttempts)

		err := page.WaitVisible(ctx, resultSelector, t.Attempt)
		if err == nil {
			s.recordAttempt(true)
			logger.Info("Found search results on attempt %d", attempt)
			return nil
		}
		if ctx.Err() != nil {
			return scrapeErr("Interrupted while waiting for search results", ctx.Err())
		}

		s.recordAttempt(false)
		logger.Warn("Attempt %d/%d failed: %v", attempt, MaxSearchAttempts, err)
		if attempt == MaxSearchAttempts {
			break
		}

		logger.Info("Retrying search")
		if err := page.Click(ctx, searchSelector); err != nil {
			return scrapeErr("Could not focus address input", err)
		}
		if err := page.Fill(ctx, searchSelector, ""); err != nil {
			return scrapeErr("Could not clear address input", err)
		}
		if err := s.sleep(ctx, t.RetryClear); err != nil {
			return scrapeErr("Interrupted while retrying search", err)
		}
		if err := page.Fill(ctx, searchSelector, address); err != nil {
			return scrapeErr("Could not type address", err)
		}
		if err := s.sleep(ctx, t.RetrySettle); err != nil {
			return scrapeErr("Interrupted while retrying search", err)
		}
	}

	logger.Error("All search attempts exhausted")
	return domain.NewScrapeError(domain.KindNoResults, fmt.Sprintf(
		"No search results found after %d attempts. The website may be slow or experiencing issues.",
		MaxSearchAttempts), nil)
}

// reportFailure logs where the page was when scraping failed and, when
// enabled, saves a screenshot.
func (s *Scraper) reportFailure(ctx context.Context, page driven.Page) {
	diagCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), diagnosticsTimeout)
	defer cancel()

	if currentURL, err := page.URL(diagCtx); err == nil {
		logger.Info("Error occurred at URL: %s", currentURL)
	}
	title, err := page.Title(diagCtx)
	if err != nil {
		title = "Unknown"
	}
	logger.Info("Page title: %s", title)

	if !s.config.Screenshots {
		return
	}
	shot, err := page.Screenshot(diagCtx)
	if err != nil {
		logger.Warn("Could not take screenshot: %v", err)
		return
	}
	if err := os.WriteFile(s.config.ScreenshotPath, shot, 0o600); err != nil {
		logger.Warn("Could not save screenshot: %v", err)
		return
	}
	logger.Info("Screenshot saved as %s", s.config.ScreenshotPath)
}

func (s *Scraper) recordAttempt(found bool) {
	if s.search != nil {
		s.search.RecordSearchAttempt(found)
	}
}

func scrapeErr(message string, err error) error {
	return domain.NewScrapeError(domain.KindScrape, message, err)
}

func closeLogged(what string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.Warn("Failed to close %s: %v", what, err)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
