// Package services implements the driving port interfaces.
//
//   - Invoker: access code check, scrape, calendar sync, response payload
//   - Synchroniser: replaces the reminders for an address
//   - Scheduler: runs the invoker on an interval in serve mode
//
// Services depend only on domain and the port interfaces.
package services
