package chrome

import (
	"github.com/chromedp/chromedp"
)

// LaunchStrategy decides how the browser process is started.
type LaunchStrategy interface {
	// Name identifies the strategy in logs.
	Name() string
	// Options returns the allocator options.
	Options() []chromedp.ExecAllocatorOption
}

// HostedFlags is the flag set used on hosted runtimes without a sandbox,
// a writable /dev/shm or a GPU.
var HostedFlags = []string{
	"no-sandbox",
	"disable-setuid-sandbox",
	"disable-dev-shm-usage",
	"disable-accelerated-2d-canvas",
	"no-first-run",
	"no-zygote",
	"single-process",
	"disable-gpu",
}

// LocalLaunch starts the system Chrome headless.
type LocalLaunch struct {
	// ExecPath overrides browser discovery (optional).
	ExecPath string
}

// Name implements LaunchStrategy.
func (LocalLaunch) Name() string { return "local" }

// Options implements LaunchStrategy.
func (l LocalLaunch) Options() []chromedp.ExecAllocatorOption {
	opts := baseOptions()
	if l.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(l.ExecPath))
	}
	return opts
}

// HostedLaunch starts the browser at ExecPath with HostedFlags.
type HostedLaunch struct {
	// ExecPath is the browser binary. Empty falls back to discovery.
	ExecPath string
}

// Name implements LaunchStrategy.
func (HostedLaunch) Name() string { return "hosted" }

// Options implements LaunchStrategy.
func (h HostedLaunch) Options() []chromedp.ExecAllocatorOption {
	opts := baseOptions()
	for _, flag := range HostedFlags {
		opts = append(opts, chromedp.Flag(flag, true))
	}
	if h.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(h.ExecPath))
	}
	return opts
}

// StrategyFor selects the strategy once at startup.
func StrategyFor(isLocal bool, chromePath string) LaunchStrategy {
	if isLocal {
		return LocalLaunch{ExecPath: chromePath}
	}
	return HostedLaunch{ExecPath: chromePath}
}

// baseOptions copies the chromedp defaults, which run headless.
func baseOptions() []chromedp.ExecAllocatorOption {
	opts := make([]chromedp.ExecAllocatorOption, 0, len(chromedp.DefaultExecAllocatorOptions)+len(HostedFlags)+1)
	return append(opts, chromedp.DefaultExecAllocatorOptions[:]...)
}
