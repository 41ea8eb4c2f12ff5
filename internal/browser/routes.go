package browser

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

//go:embed route_observer.js
var routeObserverJS string

const routeBinding = "__weban_route"

// RouteSink receives location reports for every frame of the tab.
type RouteSink interface {
	// Navigated may repeat a URL; the sink deduplicates.
	Navigated(frameID proto.PageFrameID, url string)
	Detached(frameID proto.PageFrameID)
}

// WatchRoutes reports every location the tab and its frames reach. Sources:
// a MutationObserver injected into each top-level document (reporting
// through a CDP binding) and the CDP navigation events of all frames.
//
// The returned channel is closed when ctx is done, the tab's target is
// destroyed or the browser connection drops.
func WatchRoutes(ctx context.Context, page *rod.Page, logger *slog.Logger, sink RouteSink) (<-chan struct{}, error) {
	ctx, cancel := context.WithCancel(ctx)
	page = page.Context(ctx)

	if err := (proto.RuntimeAddBinding{Name: routeBinding}).Call(page); err != nil {
		cancel()
		return nil, fmt.Errorf("browser: add route binding: %w", err)
	}

	// Survives full page loads; the Eval below covers the current document.
	if _, err := page.EvalOnNewDocument(routeObserverJS); err != nil {
		cancel()
		return nil, fmt.Errorf("browser: install route observer: %w", err)
	}

	mainFrame := page.FrameID
	waitPage := page.EachEvent(
		func(e *proto.RuntimeBindingCalled) {
			if e.Name == routeBinding {
				sink.Navigated(mainFrame, e.Payload)
			}
		},
		func(e *proto.PageNavigatedWithinDocument) {
			sink.Navigated(e.FrameID, e.URL)
		},
		func(e *proto.PageFrameNavigated) {
			if e.Frame != nil {
				sink.Navigated(e.Frame.ID, e.Frame.URL)
			}
		},
		func(e *proto.PageFrameDetached) {
			sink.Detached(e.FrameID)
		},
	)

	// Target events arrive on the browser session, not the page's
	targetID := page.TargetID
	waitTab := page.Browser().Context(ctx).EachEvent(func(e *proto.TargetTargetDestroyed) bool {
		return e.TargetID == targetID
	})

	go func() {
		defer cancel()
		waitTab()
		if ctx.Err() == nil {
			logger.Info("Tab closed", "target", targetID)
		}
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()
		waitPage()
	}()

	if _, err := page.Eval(`() => ` + routeObserverJS); err != nil {
		logger.Warn("Route observer injection into current document failed", "error", err)
	}

	return done, nil
}
