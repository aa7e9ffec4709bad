package chrome

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/custodia-labs/bindays/internal/core/ports/driven"
	"github.com/custodia-labs/bindays/internal/logger"
)

// Ensure types implement the interfaces.
var (
	_ driven.BrowserLauncher = (*Launcher)(nil)
	_ driven.Browser         = (*Browser)(nil)
	_ driven.Page            = (*Page)(nil)
)

// DefaultActionTimeout bounds page actions that take no explicit timeout.
const DefaultActionTimeout = 10 * time.Second

// Launcher starts browsers with a fixed strategy.
type Launcher struct {
	strategy LaunchStrategy
}

// NewLauncher creates a launcher.
func NewLauncher(strategy LaunchStrategy) *Launcher {
	return &Launcher{strategy: strategy}
}

// Launch starts a browser process. Launch failures are returned here rather
// than on first use.
func (l *Launcher) Launch(ctx context.Context) (driven.Browser, error) {
	logger.Debug("Launching %s browser", l.strategy.Name())

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, l.strategy.Options()...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(logger.Debug),
		chromedp.WithErrorf(logger.Debug),
	)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("launch %s browser: %w", l.strategy.Name(), err)
	}

	return &Browser{
		ctx: browserCtx,
		cancel: func() {
			browserCancel()
			allocCancel()
		},
	}, nil
}

// Browser is a running Chrome instance.
type Browser struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewPage opens a tab in the browser.
func (b *Browser) NewPage(_ context.Context) (driven.Page, error) {
	tabCtx, tabCancel := chromedp.NewContext(b.ctx)
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		return nil, fmt.Errorf("open tab: %w", err)
	}
	return &Page{ctx: tabCtx, cancel: tabCancel, actionTimeout: DefaultActionTimeout}, nil
}

// Close shuts the browser down and waits for the process to exit.
func (b *Browser) Close() error {
	err := chromedp.Cancel(b.ctx)
	b.cancel()
	if err != nil {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}
