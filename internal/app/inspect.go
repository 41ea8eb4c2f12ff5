package app

import (
	"context"
	"log/slog"
	"sync"

	"weban-autopilot/internal/autopilot"
	"weban-autopilot/internal/config"
	"weban-autopilot/internal/scraper"
)

// InspectReport is what the handlers did to a snapshot.
type InspectReport struct {
	URL      string
	Handlers []string
	Clicks   []scraper.ClickRecord
	Calls    []string
}

// Inspect dry-runs the route table against a saved page as if the browser
// had navigated to url. Delays and intervals are shrunk to milliseconds;
// attempt budgets are kept. Globals declared by inline scripts become
// callable and their calls are recorded instead of executed.
func Inspect(ctx context.Context, cfg *config.Config, selectors scraper.Selectors, logger *slog.Logger, snap *scraper.Snapshot, url string) *InspectReport {
	fast := *cfg
	fast.Completion.DelayMS = 0
	fast.ReturnButton.IntervalMS = 1
	fast.Unfinished.IntervalMS = 1

	report := &InspectReport{URL: url}
	var mu sync.Mutex
	if snap.ScriptDefines(fast.Completion.Function) {
		name := fast.Completion.Function
		snap.DefineFunction(name, func() {
			mu.Lock()
			defer mu.Unlock()
			report.Calls = append(report.Calls, name)
		})
	}

	d := autopilot.NewDispatcher(logger, BuildRoutes(&fast, selectors)...)
	report.Handlers = d.Dispatch(ctx, snap, url)
	d.Wait()

	report.Clicks = snap.Clicks()
	return report
}
