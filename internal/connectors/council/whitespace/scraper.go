// Package whitespace scrapes councils hosted on the Whitespace waste portal.
//
// The portal is a plain HTML form flow, so no browser is needed: the
// address search is a multipart POST and collections are listed as
// date/service paragraph pairs.
package whitespace

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/bindays/internal/core/dates"
	"github.com/custodia-labs/bindays/internal/core/domain"
	"github.com/custodia-labs/bindays/internal/core/ports/driven"
	"github.com/custodia-labs/bindays/internal/logger"
)

// Ensure Scraper implements the interface.
var _ driven.Scraper = (*Scraper)(nil)

// DefaultBaseURL is the Whitespace portal used by North Hertfordshire.
const DefaultBaseURL = "https://uhtn-wrp.whitespacews.com/"

const (
	findLinkText       = "Find my bin"
	addressLinkSel     = "a.govuk-link.clicker"
	collectionsSel     = "#scheduled-collections li p"
	defaultHTTPTimeout = 30 * time.Second
)

// serviceTypes maps portal service names to the waste types reminders are
// created for. Other services are skipped.
var serviceTypes = []struct {
	contains  string
	wasteType string
}{
	{"Refuse Collection", "Refuse"},
	{"Recycling Collection", "Recycling"},
}

// Config configures the scraper.
type Config struct {
	// BaseURL is the portal root. Defaults to DefaultBaseURL.
	BaseURL string
	// HouseNumber and Postcode identify the property. When empty they are
	// derived from the address: the first token and the last two tokens.
	HouseNumber string
	Postcode    string
	// HTTPClient overrides the client (optional). A cookie jar is added
	// when it has none.
	HTTPClient *http.Client
}

// Scraper reads collection dates from a Whitespace portal.
type Scraper struct {
	base   *url.URL
	config Config
	client *http.Client
	now    func() time.Time
}

// New creates a scraper.
func New(config Config) (*Scraper, error) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", domain.ErrInvalidInput)
	}

	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if client.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		withJar := *client
		withJar.Jar = jar
		client = &withJar
	}

	return &Scraper{base: base, config: config, client: client, now: time.Now}, nil
}

// Name implements driven.Scraper.
func (s *Scraper) Name() string { return "whitespace" }

// Scrape looks up address on the portal.
func (s *Scraper) Scrape(ctx context.Context, address string) (*domain.ScrapeResult, error) {
	number, postcode := s.property(address)
	logger.Info("Scraping Whitespace portal %s for house %q, postcode %q", s.base, number, postcode)

	home, err := s.get(ctx, s.base.String())
	if err != nil {
		return nil, domain.NewScrapeError(domain.KindNavigation, "Failed to load portal", err)
	}

	findHref, ok := findLink(home)
	if !ok {
		return nil, domain.NewScrapeError(domain.KindScrape, "Find my bin link not found", nil)
	}
	searchURL, err := s.resolve(strings.Replace(findHref, "seq=1", "seq=2", 1))
	if err != nil {
		return nil, domain.NewScrapeError(domain.KindScrape, "Invalid search link", err)
	}
	logger.Debug("Search form: %s", searchURL)

	results, err := s.postSearch(ctx, searchURL, number, postcode)
	if err != nil {
		return nil, domain.NewScrapeError(domain.KindNavigation, "Address search failed", err)
	}

	addressHref, ok := results.Find(addressLinkSel).First().Attr("href")
	if !ok {
		return nil, domain.NewScrapeError(domain.KindNoResults, "No results found for the provided address", nil)
	}
	collectionsURL, err := s.resolve(addressHref)
	if err != nil {
		return nil, domain.NewScrapeError(domain.KindScrape, "Invalid address link", err)
	}
	logger.Debug("Collections page: %s", collectionsURL)

	page, err := s.get(ctx, collectionsURL)
	if err != nil {
		return nil, domain.NewScrapeError(domain.KindNavigation, "Failed to load collections", err)
	}

	data := ExtractCollections(page)
	if len(data) == 0 {
		logger.Warn("No refuse or recycling collections listed")
	}

	return &domain.ScrapeResult{
		Address:        address,
		URL:            collectionsURL,
		CollectionData: data,
		ScrapedAt:      s.now().UTC(),
	}, nil
}

// ExtractCollections reads (date, service) paragraph pairs and keeps the
// first date of each known service. Dates are normalised to the long form.
func ExtractCollections(doc *goquery.Document) domain.CollectionData {
	var lines []string
	doc.Find(collectionsSel).Each(func(_ int, p *goquery.Selection) {
		lines = append(lines, strings.TrimSpace(p.Text()))
	})

	data := domain.CollectionData{}
	for i := 0; i+1 < len(lines); i += 2 {
		dateText, service := lines[i], lines[i+1]
		wasteType := wasteTypeOf(service)
		if wasteType == "" {
			logger.Debug("Skipping service %q", service)
			continue
		}

		date, err := parsePortalDate(dateText)
		if err != nil {
			logger.Warn("Could not parse portal date %q for %s", dateText, wasteType)
			continue
		}
		data.Add(wasteType, dates.Format(date))
	}
	return data
}

func wasteTypeOf(service string) string {
	for _, st := range serviceTypes {
		if strings.Contains(service, st.contains) {
			return st.wasteType
		}
	}
	return ""
}

// parsePortalDate accepts DD/MM/YYYY and DD-MM-YYYY.
func parsePortalDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2/1/2006", "2-1-2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrParse, s)
}

// findLink returns the href of the "Find my bin" link.
func findLink(doc *goquery.Document) (string, bool) {
	var href string
	var found bool
	doc.Find("a.govuk-link").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.Contains(a.Text(), findLinkText) {
			href, found = a.Attr("href")
			return !found
		}
		return true
	})
	return href, found
}

// property returns the configured house number and postcode, deriving any
// that are missing from address.
func (s *Scraper) property(address string) (number, postcode string) {
	number, postcode = s.config.HouseNumber, s.config.Postcode
	fields := strings.Fields(address)
	if number == "" && len(fields) > 0 {
		number = fields[0]
	}
	if postcode == "" && len(fields) >= 2 {
		postcode = strings.Join(fields[len(fields)-2:], " ")
	}
	return number, postcode
}

func (s *Scraper) resolve(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return s.base.ResolveReference(ref).String(), nil
}

func (s *Scraper) get(ctx context.Context, target string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return s.do(req)
}

func (s *Scraper) postSearch(ctx context.Context, target, number, postcode string) (*goquery.Document, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for _, field := range [][2]string{
		{"address_name_number", number},
		{"address_street", ""},
		{"street_town", ""},
		{"address_postcode", postcode},
	} {
		if err := form.WriteField(field[0], field[1]); err != nil {
			return nil, fmt.Errorf("write form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("write form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	return s.do(req)
}

func (s *Scraper) do(req *http.Request) (*goquery.Document, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s %s: status %d", req.Method, req.URL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", req.URL, err)
	}
	return doc, nil
}
