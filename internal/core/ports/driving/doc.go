// Package driving defines the interfaces that drivers (CLI, HTTP, scheduler)
// call IN to core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
//
//   - Invoker: The entry point; code check, scrape, sync, response payload
//   - CalendarSynchroniser: Mirrors collection data into the calendar
//   - Scheduler: Runs the invoker periodically
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driving
