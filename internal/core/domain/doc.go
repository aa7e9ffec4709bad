// Package domain defines the core business entities for bindays.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CollectionData: Waste type to raw collection date, as scraped
//   - ScrapeResult: The outcome of one scrape of a council site
//   - ReminderEvent: A calendar reminder derived from one collection
//   - Invocation / Response: The entry point's request and reply payloads
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
