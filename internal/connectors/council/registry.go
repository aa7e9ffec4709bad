// Package council selects the scraper for the configured council site.
package council

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/bindays/internal/connectors/council/northherts"
	"github.com/custodia-labs/bindays/internal/connectors/council/whitespace"
	"github.com/custodia-labs/bindays/internal/core/domain"
	"github.com/custodia-labs/bindays/internal/core/ports/driven"
)

// Supported sites.
const (
	SiteNorthHerts = "north-herts"
	SiteWhitespace = "whitespace"
)

// Options carries the collaborators and settings the site adapters need.
type Options struct {
	// Launcher starts browsers for browser-driven sites.
	Launcher driven.BrowserLauncher
	// Search observes typeahead attempts (optional).
	Search driven.SearchRecorder

	NorthHerts northherts.Config
	Whitespace whitespace.Config
}

// Sites lists the supported site names.
func Sites() []string {
	return []string{SiteNorthHerts, SiteWhitespace}
}

// New returns the scraper for site. An empty site selects north-herts.
func New(site string, opts Options) (driven.Scraper, error) {
	switch strings.ToLower(strings.TrimSpace(site)) {
	case "", SiteNorthHerts:
		if opts.Launcher == nil {
			return nil, fmt.Errorf("browser launcher: %w", domain.ErrNotConfigured)
		}
		return northherts.New(opts.Launcher, opts.NorthHerts, opts.Search), nil
	case SiteWhitespace:
		return whitespace.New(opts.Whitespace)
	default:
		return nil, fmt.Errorf("unknown site %q (supported: %s): %w",
			site, strings.Join(Sites(), ", "), domain.ErrInvalidInput)
	}
}
