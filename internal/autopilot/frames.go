package autopilot

import (
	"context"
	"log/slog"
	"sync"

	"weban-autopilot/internal/dom"
)

// DocumentFunc resolves the document of a frame at dispatch time.
type DocumentFunc func() (dom.Document, error)

// FrameRouter keeps a route watcher and a dispatcher per frame of the tab,
// so an embedded course player is routed like a page of its own and a
// navigation in one frame never cancels the handlers of another.
type FrameRouter struct {
	routes []Route
	logger *slog.Logger

	mu      sync.Mutex
	frames  map[string]*frameRoute
	stopped bool
}

type frameRoute struct {
	mu         sync.Mutex
	watcher    *RouteWatcher
	dispatcher *Dispatcher
}

func NewFrameRouter(logger *slog.Logger, routes ...Route) *FrameRouter {
	return &FrameRouter{
		routes: routes,
		logger: logger,
		frames: make(map[string]*frameRoute),
	}
}

// Observe reports that frameID now shows url. changed is false for a
// repeated URL; started lists the handlers dispatched for a new one.
// The document is resolved only for a new URL, and a URL whose document
// cannot be resolved is not remembered, so the next report retries it.
func (r *FrameRouter) Observe(ctx context.Context, frameID, url string, doc DocumentFunc) (started []string, changed bool) {
	f := r.frame(frameID)
	if f == nil || url == "" {
		return nil, false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if url == f.watcher.Last() {
		return nil, false
	}
	d, err := doc()
	if err != nil {
		r.logger.Warn("Frame document unavailable", "frame", frameID, "url", url, "error", err)
		return nil, false
	}
	f.watcher.Observe(url)

	return f.dispatcher.Dispatch(ctx, d, url), true
}

// Detach cancels the handlers of a frame that left the page.
func (r *FrameRouter) Detach(frameID string) {
	r.mu.Lock()
	f, ok := r.frames[frameID]
	delete(r.frames, frameID)
	r.mu.Unlock()

	if ok {
		f.dispatcher.Stop()
	}
}

// Stop cancels every frame's handlers and waits for them. Later Observe
// calls do nothing.
func (r *FrameRouter) Stop() {
	r.mu.Lock()
	r.stopped = true
	frames := r.frames
	r.frames = make(map[string]*frameRoute)
	r.mu.Unlock()

	for _, f := range frames {
		f.dispatcher.Stop()
	}
}

func (r *FrameRouter) frame(frameID string) *frameRoute {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return nil
	}
	f, ok := r.frames[frameID]
	if !ok {
		f = &frameRoute{
			watcher:    NewRouteWatcher("", nil),
			dispatcher: NewDispatcher(r.logger.With("frame", frameID), r.routes...),
		}
		r.frames[frameID] = f
	}
	return f
}
