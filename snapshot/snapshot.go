// Package snapshot captures the running dashboard as a PNG with a headless
// browser.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"skyline/config"
	"skyline/utils"
)

const (
	viewportWidth  = 1400
	viewportHeight = 1000
	pngQuality     = 90
)

// Capturer drives a headless Chrome to screenshot dashboard pages.
type Capturer struct {
	chromeBin string
	timeout   time.Duration
	logger    *utils.Logger
	retry     *utils.RetryConfig
}

// New creates a Capturer from cfg.
func New(cfg *config.Config, logger *utils.Logger) *Capturer {
	timeout := time.Duration(cfg.SnapshotTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Capturer{
		chromeBin: findChromeBinary(cfg.ChromeBin),
		timeout:   timeout,
		logger:    logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Capture loads pageURL, waits for the dashboard body and writes a full-page
// PNG to outPath.
func (c *Capturer) Capture(ctx context.Context, pageURL, outPath string) error {
	if c.chromeBin != "" {
		c.logger.Info("[snapshot] Using browser binary: %s", c.chromeBin)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(viewportWidth, viewportHeight),
	)
	if c.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(c.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	var png []byte
	err := c.retry.Do(ctx, "snapshot "+pageURL, func() error {
		tabCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
		defer cancel()
		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, c.timeout)
		defer cancelTimeout()

		if err := chromedp.Run(tabCtx,
			chromedp.Navigate(pageURL),
			chromedp.WaitVisible("main", chromedp.ByQuery),
			chromedp.FullScreenshot(&png, pngQuality),
		); err != nil {
			return fmt.Errorf("chromedp capture: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	if err := os.WriteFile(outPath, png, 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", outPath, err)
	}
	c.logger.Info("[snapshot] Saved %s (%d bytes)", outPath, len(png))
	return nil
}

// findChromeBinary locates Chrome/Chromium. An explicitly configured path
// wins, then CHROME_BIN, then PATH and the usual install locations.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
