package driven

// AccessVerifier checks the shared-secret access code of an invocation.
type AccessVerifier interface {
	// Verify returns true if code matches the configured secret.
	Verify(code string) bool
}

// RunRecorder observes completed runs, e.g. to export metrics.
type RunRecorder interface {
	// RecordRun records the outcome ("success", "failure", "unauthorised",
	// "busy") and the number of calendar events created.
	RecordRun(outcome string, eventsCreated int)
}

// SearchRecorder observes address search attempts of browser-driven scrapers.
type SearchRecorder interface {
	// RecordSearchAttempt records whether an attempt found results.
	RecordSearchAttempt(found bool)
}
