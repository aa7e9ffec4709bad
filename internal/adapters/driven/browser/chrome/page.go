package chrome

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// Page is a single Chrome tab.
type Page struct {
	ctx           context.Context
	cancel        context.CancelFunc
	actionTimeout time.Duration
}

// run executes actions in the tab, bounded by timeout and by the caller's ctx.
func (p *Page) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// Navigate loads url and returns the HTTP status of the main document.
func (p *Page) Navigate(ctx context.Context, url string, timeout time.Duration) (int, error) {
	runCtx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var resp *network.Response
	resp, err := chromedp.RunResponse(runCtx, chromedp.Navigate(url))
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("navigate to %s: %w", url, err)
	}
	if resp == nil {
		return 0, nil
	}
	return int(resp.Status), nil
}

// WaitVisible blocks until selector is visible.
func (p *Page) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	if err := p.run(ctx, timeout, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("wait for %s: %w", selector, err)
	}
	return nil
}

// WaitReady blocks until the document body is ready.
func (p *Page) WaitReady(ctx context.Context, timeout time.Duration) error {
	if err := p.run(ctx, timeout, chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		return fmt.Errorf("wait for document: %w", err)
	}
	return nil
}

// Click clicks the first element matching selector.
func (p *Page) Click(ctx context.Context, selector string) error {
	if err := p.run(ctx, p.actionTimeout, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

// Fill clears the input and types text with key events, so typeahead
// handlers fire as they would for a user.
func (p *Page) Fill(ctx context.Context, selector, text string) error {
	actions := []chromedp.Action{chromedp.Clear(selector, chromedp.ByQuery)}
	if text != "" {
		actions = append(actions, chromedp.SendKeys(selector, text, chromedp.ByQuery))
	}
	if err := p.run(ctx, p.actionTimeout, actions...); err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

// Value returns the current value of an input.
func (p *Page) Value(ctx context.Context, selector string) (string, error) {
	var value string
	if err := p.run(ctx, p.actionTimeout, chromedp.Value(selector, &value, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read %s: %w", selector, err)
	}
	return value, nil
}

// HTML returns the outer HTML of the document.
func (p *Page) HTML(ctx context.Context) (string, error) {
	var html string
	if err := p.run(ctx, p.actionTimeout, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return html, nil
}

// Title returns the document title.
func (p *Page) Title(ctx context.Context) (string, error) {
	var title string
	if err := p.run(ctx, p.actionTimeout, chromedp.Title(&title)); err != nil {
		return "", fmt.Errorf("read title: %w", err)
	}
	return title, nil
}

// URL returns the current location.
func (p *Page) URL(ctx context.Context) (string, error) {
	var location string
	if err := p.run(ctx, p.actionTimeout, chromedp.Location(&location)); err != nil {
		return "", fmt.Errorf("read location: %w", err)
	}
	return location, nil
}

// Screenshot captures the full page as PNG.
func (p *Page) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	// Quality 100 selects PNG encoding.
	if err := p.run(ctx, p.actionTimeout, chromedp.FullScreenshot(&buf, 100)); err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return buf, nil
}

// Close closes the tab.
func (p *Page) Close() error {
	err := chromedp.Cancel(p.ctx)
	p.cancel()
	if err != nil {
		return fmt.Errorf("close tab: %w", err)
	}
	return nil
}
