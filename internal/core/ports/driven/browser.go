package driven

import (
	"context"
	"time"
)

// BrowserLauncher starts a headless browser.
type BrowserLauncher interface {
	// Launch starts a browser. The caller must Close it.
	Launch(ctx context.Context) (Browser, error)
}

// Browser is a running headless browser instance.
type Browser interface {
	// NewPage opens a new tab. The caller must Close it.
	NewPage(ctx context.Context) (Page, error)

	// Close shuts the browser down.
	Close() error
}

// Page is a single browser tab. Selectors are CSS selectors; an operation on
// a selector matching several elements acts on the first.
type Page interface {
	// Navigate loads url and returns the HTTP status of the main document.
	// A zero status means no response was received.
	Navigate(ctx context.Context, url string, timeout time.Duration) (int, error)

	// WaitVisible blocks until selector is visible or timeout elapses.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error

	// WaitReady blocks until the document has finished loading.
	WaitReady(ctx context.Context, timeout time.Duration) error

	// Click clicks the element.
	Click(ctx context.Context, selector string) error

	// Fill clears the input and types text into it.
	Fill(ctx context.Context, selector, text string) error

	// Value returns the current value of an input.
	Value(ctx context.Context, selector string) (string, error)

	// HTML returns the outer HTML of the document.
	HTML(ctx context.Context) (string, error)

	// Title returns the document title.
	Title(ctx context.Context) (string, error)

	// URL returns the current location.
	URL(ctx context.Context) (string, error)

	// Screenshot captures the full page as PNG.
	Screenshot(ctx context.Context) ([]byte, error)

	// Close closes the tab.
	Close() error
}
