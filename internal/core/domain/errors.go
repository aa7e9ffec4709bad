package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured indicates a required collaborator or setting is missing.
	ErrNotConfigured = errors.New("not configured")

	// ErrRunInProgress indicates a run is already executing.
	ErrRunInProgress = errors.New("run in progress")

	// ErrUnauthorised indicates the supplied access code did not match.
	ErrUnauthorised = errors.New("not authorised")

	// Scrape Errors.

	// ErrNavigation indicates the council page did not load.
	ErrNavigation = errors.New("navigation failed")

	// ErrNoResults indicates the address search yielded nothing after retries.
	ErrNoResults = errors.New("no search results")

	// ErrScrape indicates any other failure while driving the council site.
	ErrScrape = errors.New("scrape failed")

	// Calendar Errors.

	// ErrAuth indicates the access token exchange failed.
	ErrAuth = errors.New("authentication failed")

	// ErrCalendarAPI indicates a list, insert or delete call failed.
	ErrCalendarAPI = errors.New("calendar api error")

	// ErrParse indicates a collection date string was not recognised.
	// It is never fatal: the affected collection is skipped.
	ErrParse = errors.New("unrecognised date")
)

// FailureKind names the class of a scrape failure in response payloads.
type FailureKind string

const (
	// KindNavigation is reported when the lookup page fails to load.
	KindNavigation FailureKind = "NavigationError"
	// KindNoResults is reported when the search results never appear.
	KindNoResults FailureKind = "NoResultsError"
	// KindScrape is reported for every other scrape failure.
	KindScrape FailureKind = "ScrapeError"
)

// ScrapeError is the single structured failure produced by a scraper.
// It carries a human-readable message and the kind of failure.
type ScrapeError struct {
	Kind    FailureKind
	Message string
	Err     error
}

// NewScrapeError creates a ScrapeError of the given kind.
func NewScrapeError(kind FailureKind, message string, err error) *ScrapeError {
	return &ScrapeError{Kind: kind, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause so errors.Is matches both the kind sentinel and the cause.
func (e *ScrapeError) Unwrap() []error {
	errs := []error{e.Kind.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (k FailureKind) sentinel() error {
	switch k {
	case KindNavigation:
		return ErrNavigation
	case KindNoResults:
		return ErrNoResults
	default:
		return ErrScrape
	}
}

// KindOf returns the failure kind of err, or KindScrape for foreign errors.
func KindOf(err error) FailureKind {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindScrape
}
