package northherts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/bindays/internal/core/ports/driven"
)

var errTimeout = errors.New("waiting for selector: context deadline exceeded")

// fakePage is a scripted driven.Page.
type fakePage struct {
	mu sync.Mutex

	status      int
	navigateErr error
	// resultFailures is how many result polls fail before results appear.
	// A negative value means results never appear.
	resultFailures int
	// missing selectors never become visible.
	missing map[string]bool
	html    string
	value   string
	title   string
	url     string
	shot    []byte

	closeErr error

	calls  []string
	closed bool
}

func newFakePage(html string) *fakePage {
	return &fakePage{
		status:  200,
		html:    html,
		title:   "Find your bin collection day",
		url:     "https://example.test/results",
		shot:    []byte("png"),
		missing: map[string]bool{},
	}
}

func (p *fakePage) record(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, fmt.Sprintf(format, args...))
}

func (p *fakePage) Navigate(_ context.Context, url string, timeout time.Duration) (int, error) {
	p.record("navigate %s %s", url, timeout)
	return p.status, p.navigateErr
}

func (p *fakePage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	p.record("wait %s %s", selector, timeout)
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.missing[selector] {
		return errTimeout
	}
	if selector == resultSelector {
		if p.resultFailures != 0 {
			if p.resultFailures > 0 {
				p.resultFailures--
			}
			return errTimeout
		}
	}
	return nil
}

func (p *fakePage) WaitReady(_ context.Context, timeout time.Duration) error {
	p.record("ready %s", timeout)
	return nil
}

func (p *fakePage) Click(_ context.Context, selector string) error {
	p.record("click %s", selector)
	return nil
}

func (p *fakePage) Fill(_ context.Context, selector, text string) error {
	p.record("fill %s %q", selector, text)
	if p.value == "" || text == "" {
		p.value = text
	}
	return nil
}

func (p *fakePage) Value(_ context.Context, _ string) (string, error) {
	return p.value, nil
}

func (p *fakePage) HTML(_ context.Context) (string, error) {
	return p.html, nil
}

func (p *fakePage) Title(_ context.Context) (string, error) {
	return p.title, nil
}

func (p *fakePage) URL(_ context.Context) (string, error) {
	return p.url, nil
}

func (p *fakePage) Screenshot(_ context.Context) ([]byte, error) {
	p.record("screenshot")
	return p.shot, nil
}

func (p *fakePage) Close() error {
	p.closed = true
	return p.closeErr
}

func (p *fakePage) count(prefix string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// fakeBrowser hands out a single page.
type fakeBrowser struct {
	page     *fakePage
	pageErr  error
	closeErr error
	closed   bool
}

func (b *fakeBrowser) NewPage(_ context.Context) (driven.Page, error) {
	if b.pageErr != nil {
		return nil, b.pageErr
	}
	return b.page, nil
}

func (b *fakeBrowser) Close() error {
	b.closed = true
	return b.closeErr
}

// fakeLauncher implements driven.BrowserLauncher.
type fakeLauncher struct {
	browser *fakeBrowser
	err     error
}

func (l *fakeLauncher) Launch(_ context.Context) (driven.Browser, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.browser, nil
}

// attemptRecorder implements driven.SearchRecorder.
type attemptRecorder struct {
	attempts []bool
}

func (r *attemptRecorder) RecordSearchAttempt(found bool) {
	r.attempts = append(r.attempts, found)
}

// Ensure fakes implement interfaces
var _ driven.Page = (*fakePage)(nil)
var _ driven.Browser = (*fakeBrowser)(nil)
var _ driven.BrowserLauncher = (*fakeLauncher)(nil)
var _ driven.SearchRecorder = (*attemptRecorder)(nil)
