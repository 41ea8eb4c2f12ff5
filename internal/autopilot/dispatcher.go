// Package autopilot reacts to route changes of the WeBan single-page app:
// it matches the URL against a prefix table and runs the matching handlers,
// each scoped to the navigation that started it.
package autopilot

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"weban-autopilot/internal/dom"
)

// Navigation is one dispatched route change.
type Navigation struct {
	ID     string
	URL    string
	Doc    dom.Document
	Logger *slog.Logger
}

// Handler reacts to a navigation. Handle runs on its own goroutine and must
// return once ctx is done.
type Handler interface {
	Name() string
	Handle(ctx context.Context, nav Navigation)
}

// Route binds a URL prefix to a handler.
type Route struct {
	Prefix  string
	Handler Handler
}

// Dispatcher starts the handlers of every route whose prefix matches a URL.
// Each Dispatch cancels the handlers still running for the previous URL.
type Dispatcher struct {
	routes []Route
	logger *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	wg      sync.WaitGroup
}

func NewDispatcher(logger *slog.Logger, routes ...Route) *Dispatcher {
	return &Dispatcher{
		routes: routes,
		logger: logger,
	}
}

// Dispatch checks the routes in order and starts every matching handler.
// It returns the names of the handlers started and never blocks on them.
// After Stop, or once ctx is done, nothing is started.
func (d *Dispatcher) Dispatch(ctx context.Context, doc dom.Document, url string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || ctx.Err() != nil {
		return nil
	}

	// Таймеры предыдущей страницы больше не актуальны
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}

	var matched []Handler
	for _, r := range d.routes {
		if strings.HasPrefix(url, r.Prefix) {
			matched = append(matched, r.Handler)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	navCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	nav := Navigation{
		ID:  uuid.NewString(),
		URL: url,
		Doc: doc,
	}
	nav.Logger = d.logger.With("nav_id", nav.ID, "url", url)

	names := make([]string, 0, len(matched))
	for _, h := range matched {
		names = append(names, h.Name())
		d.wg.Add(1)
		go func(h Handler) {
			defer d.wg.Done()
			h.Handle(navCtx, Navigation{
				ID:     nav.ID,
				URL:    nav.URL,
				Doc:    nav.Doc,
				Logger: nav.Logger.With("handler", h.Name()),
			})
		}(h)
	}

	nav.Logger.Debug("Handlers started", "handlers", names)
	return names
}

// Wait blocks until every started handler has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Stop cancels the current navigation, waits for its handlers and makes
// further Dispatch calls no-ops.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()
	d.wg.Wait()
}
