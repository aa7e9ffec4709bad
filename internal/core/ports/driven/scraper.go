package driven

import (
	"context"

	"github.com/custodia-labs/bindays/internal/core/domain"
)

// Scraper reads upcoming collection dates for an address from a council site.
// Each site adapter (north-herts, whitespace) implements this interface.
type Scraper interface {
	// Name returns the site adapter identifier.
	Name() string

	// Scrape looks up the address and returns one entry per waste type.
	// Failures are returned as *domain.ScrapeError.
	Scrape(ctx context.Context, address string) (*domain.ScrapeResult, error)
}
