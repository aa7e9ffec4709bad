package driving

import (
	"context"

	"github.com/custodia-labs/bindays/internal/core/domain"
)

// Invoker is the single entry point for a scrape-and-sync run.
type Invoker interface {
	// Invoke checks the invocation's access code and, on match, performs a run.
	// It never returns an error: every failure becomes a failure Response.
	Invoke(ctx context.Context, inv domain.Invocation) domain.Response

	// Run performs a run without the access code check.
	Run(ctx context.Context) domain.Response
}
