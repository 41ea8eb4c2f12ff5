package autopilot

import "sync"

// RouteWatcher turns a stream of location reports into route changes.
// Reports equal to the last seen URL are dropped, so several notification
// sources can feed the same watcher.
type RouteWatcher struct {
	mu       sync.Mutex
	last     string
	onChange func(url string)
}

// NewRouteWatcher seeds the watcher with the URL already handled at start-up.
// onChange may be nil when the caller acts on Observe's result instead.
func NewRouteWatcher(initial string, onChange func(url string)) *RouteWatcher {
	return &RouteWatcher{last: initial, onChange: onChange}
}

// Observe reports the current location. It returns true and calls onChange
// when url differs from the previously observed one.
func (w *RouteWatcher) Observe(url string) bool {
	w.mu.Lock()
	if url == "" || url == w.last {
		w.mu.Unlock()
		return false
	}
	w.last = url
	w.mu.Unlock()

	if w.onChange != nil {
		w.onChange(url)
	}
	return true
}

// Last returns the last observed URL.
func (w *RouteWatcher) Last() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}
