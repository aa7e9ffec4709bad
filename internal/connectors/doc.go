// Package connectors provides implementations of the driven ports that talk
// to external services: council waste sites (council/...) and Google
// Calendar (google/...).
//
// The council scraper in use is selected from the SITE setting at startup.
package connectors
