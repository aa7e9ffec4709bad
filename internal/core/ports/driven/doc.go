// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Scraper: Reads collection dates from a council site
//   - Browser / Page: Headless browser session used by browser-driven scrapers
//   - CalendarConnector: Authenticates and yields a CalendarClient
//   - CalendarClient: Lists, inserts and deletes calendar events
//   - TokenIssuer: Exchanges a signed assertion for an access credential
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - AccessVerifier: Without it, invocations are not code-checked.
//   - SchedulerStore: Only needed when running the scheduler.
//   - ConfigStore: Without a settings file, only the environment is read.
//   - RunRecorder: Without it, runs are not observed.
//   - SearchRecorder: Without it, search attempts are not observed.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
