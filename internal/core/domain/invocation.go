package domain

import "time"

// Run outcomes reported to a RunRecorder.
const (
	OutcomeSuccess      = "success"
	OutcomeFailure      = "failure"
	OutcomeUnauthorised = "unauthorised"
	OutcomeBusy         = "busy"
)

// Invocation is the payload the entry point is called with.
type Invocation struct {
	// QueryParameters carries request parameters; "code" holds the access code.
	QueryParameters map[string]string
	// Source names the caller (cli, http, scheduler) for logging.
	Source string
}

// Code returns the supplied access code, or "" when absent.
func (i Invocation) Code() string {
	if i.QueryParameters == nil {
		return ""
	}
	return i.QueryParameters["code"]
}

// Response is the entry point's reply: a status code and a JSON body.
type Response struct {
	StatusCode int `json:"statusCode"`
	Body       any `json:"body"`
}

// MessageBody is a plain message reply.
type MessageBody struct {
	Msg string `json:"msg"`
}

// FailureBody reports a failed run.
type FailureBody struct {
	Error     string      `json:"error"`
	ErrorType FailureKind `json:"errorType,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// SummaryBody reports a successful run.
type SummaryBody struct {
	Address         string         `json:"address"`
	CollectionTimes CollectionData `json:"collectionTimes"`
	URL             string         `json:"url,omitempty"`
	Timestamp       time.Time      `json:"timestamp"`
	CalendarEvents  int            `json:"calendarEvents"`
	CalendarError   string         `json:"calendarError,omitempty"`
	DryRun          bool           `json:"dryRun,omitempty"`
	RunID           string         `json:"runId"`
}
