package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// PageOptions configures the working tab.
type PageOptions struct {
	URL     string
	Stealth bool
	Timeout time.Duration
	Retries int
	Backoff Backoff
	Logger  *slog.Logger
}

// OpenPage creates the working tab and navigates it to opts.URL.
func OpenPage(ctx context.Context, b *rod.Browser, opts PageOptions) (*rod.Page, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	var page *rod.Page
	var err error
	if opts.Stealth {
		page, err = stealth.Page(b)
	} else {
		page, err = b.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}

	if err := Navigate(ctx, page, opts); err != nil {
		if closeErr := page.Close(); closeErr != nil {
			opts.Logger.Warn("Failed to close tab", "error", closeErr)
		}
		return nil, err
	}

	return page, nil
}

// Navigate loads opts.URL, retrying with backoff on navigation errors.
// A load that does not finish within opts.Timeout is logged, not retried.
func Navigate(ctx context.Context, page *rod.Page, opts PageOptions) error {
	var lastErr error
	for attempt := 0; attempt <= opts.Retries; attempt++ {
		if attempt > 0 {
			delay := opts.Backoff.Delay(attempt)
			opts.Logger.Warn("Navigation failed, retrying",
				"url", opts.URL,
				"attempt", attempt,
				"delay", delay,
				"error", lastErr,
			)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		navCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
		err := page.Context(navCtx).Navigate(opts.URL)
		if err == nil {
			if loadErr := page.Context(navCtx).WaitLoad(); loadErr != nil {
				opts.Logger.Warn("Page load wait timed out", "url", opts.URL, "error", loadErr)
			}
		}
		cancel()

		if err == nil {
			return nil
		}
		lastErr = err
	}

	return fmt.Errorf("browser: navigate %s failed after %d retries: %w", opts.URL, opts.Retries, lastErr)
}

// CurrentURL returns location.href of the page.
func CurrentURL(ctx context.Context, page *rod.Page) (string, error) {
	res, err := page.Context(ctx).Eval(`() => location.href`)
	if err != nil {
		return "", fmt.Errorf("browser: read location: %w", err)
	}
	return res.Value.Str(), nil
}
