// internal/browser/fetcher.go

// Package browser provides a chromedp-backed page fetcher for pages that
// only populate their markup through script execution. It satisfies the
// same Fetch contract as the plain HTTP client, so the engine can use
// either interchangeably.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/Sampath2CSE/instagram-post-scraper/internal/config"
)

// Fetcher renders pages in headless Chrome and returns the settled HTML.
// One allocator is shared across fetches; each fetch runs in its own tab.
type Fetcher struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	timeout     time.Duration
	waitDelay   time.Duration
}

// NewFetcher starts a Chrome allocator from the browser configuration.
// Callers must Close the fetcher when the run ends.
func NewFetcher(cfg *config.BrowserConfig) (*Fetcher, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, fmt.Errorf("browser fetching is not enabled")
	}

	timeout, err := parseDurationDefault(cfg.Timeout, 45*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid browser timeout: %w", err)
	}
	waitDelay, err := parseDurationDefault(cfg.WaitDelay, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid browser wait_delay: %w", err)
	}

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
	}
	if cfg.Headless {
		opts = append(opts, chromedp.Headless)
	}
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}
	if cfg.DisableImages {
		opts = append(opts, chromedp.Flag("blink-settings", "imagesEnabled=false"))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Fetcher{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		timeout:     timeout,
		waitDelay:   waitDelay,
	}, nil
}

// Fetch navigates to the URL in a fresh tab, waits for the body plus the
// configured settle delay, and returns the rendered document.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	tabCtx, tabCancel := chromedp.NewContext(f.allocCtx)
	defer tabCancel()

	runCtx, runCancel := context.WithTimeout(tabCtx, f.timeout)
	defer runCancel()

	// Honor cancellation of the caller's context.
	go func() {
		select {
		case <-ctx.Done():
			runCancel()
		case <-runCtx.Done():
		}
	}()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(f.waitDelay),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser fetch failed for %s: %w", url, err)
	}
	return html, nil
}

// Close shuts down the Chrome allocator.
func (f *Fetcher) Close() error {
	f.allocCancel()
	return nil
}

func parseDurationDefault(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
