package driving

import "context"

// Scheduler runs the collection sync periodically.
type Scheduler interface {
	// Start begins running scheduled tasks.
	// Blocks until context is cancelled or an error occurs.
	Start(ctx context.Context) error

	// Stop gracefully stops all running tasks.
	Stop() error
}
