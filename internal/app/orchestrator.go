package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"weban-autopilot/internal/autopilot"
	"weban-autopilot/internal/browser"
	"weban-autopilot/internal/config"
	"weban-autopilot/internal/dom"
	"weban-autopilot/internal/observability"
)

type Orchestrator struct {
	cfg        *config.Config
	logger     *observability.Logger
	manager *browser.Manager
	router  *autopilot.FrameRouter
}

func NewOrchestrator(
	cfg *config.Config,
	logger *observability.Logger,
	m *browser.Manager,
	r *autopilot.FrameRouter,
) *Orchestrator {
	return &Orchestrator{
		cfg:     cfg,
		logger:  logger,
		manager: m,
		router:  r,
	}
}

type SessionStats struct {
	RouteChanges    int
	HandlersStarted int
	StoppedReason   string
}

func (s *SessionStats) record(started int) {
	s.RouteChanges++
	s.HandlersStarted += started
}

// Run открывает платформу и обслуживает смену маршрутов, пока не отменён
// ctx или не закрыта вкладка.
func (o *Orchestrator) Run(ctx context.Context) (*SessionStats, error) {
	o.logger.Info("Starting session",
		"start_url", o.cfg.StartURL,
		"headless", o.cfg.Rod.Headless,
		"stealth", o.cfg.Rod.Stealth,
		"unfinished_finder", o.cfg.Unfinished.Enabled,
	)

	b, err := o.manager.Start(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := o.manager.Close(); err != nil {
			o.logger.Warn("Failed to close browser", "error", err)
		}
	}()

	page, err := browser.OpenPage(ctx, b, browser.PageOptions{
		URL:     o.cfg.StartURL,
		Stealth: o.cfg.Rod.Stealth,
		Timeout: o.cfg.GetRodPageTimeout(),
		Retries: o.cfg.Rod.NavigateRetries,
		Backoff: browser.Backoff{
			Min:       o.cfg.GetBackoffMin(),
			Max:       o.cfg.GetBackoffMax(),
			JitterPct: o.cfg.Backoff.JitterPct,
		},
		Logger: o.logger.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open start page: %w", err)
	}

	initial, err := browser.CurrentURL(ctx, page)
	if err != nil {
		o.logger.Warn("Failed to read current URL, using start URL", "error", err)
		initial = o.cfg.StartURL
	}

	sink := &frameSink{
		ctx:    ctx,
		page:   page,
		router: o.router,
		logger: o.logger.Logger,
		stats:  &SessionStats{},
	}

	// Первый запуск на текущей странице, дальше только по смене маршрута
	sink.Navigated(page.FrameID, initial)

	done, err := browser.WatchRoutes(ctx, page, o.logger.Logger, sink)
	if err != nil {
		o.router.Stop()
		return nil, fmt.Errorf("watch routes: %w", err)
	}

	o.logger.Info("Watching routes", "url", initial)

	var reason string
	select {
	case <-ctx.Done():
		reason = "shutdown requested"
	case <-done:
		reason = "page closed"
	}

	o.router.Stop()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	stats := sink.stats
	stats.StoppedReason = reason

	o.logger.Info("Session finished",
		"route_changes", stats.RouteChanges,
		"handlers_started", stats.HandlersStarted,
		"reason", stats.StoppedReason,
	)

	return stats, nil
}

// frameSink routes location reports of the tab's frames, each with the
// document of the frame it came from.
type frameSink struct {
	ctx    context.Context
	page   *rod.Page
	router *autopilot.FrameRouter
	logger *slog.Logger

	mu    sync.Mutex
	stats *SessionStats
}

func (s *frameSink) Navigated(frameID proto.PageFrameID, url string) {
	started, changed := s.router.Observe(s.ctx, string(frameID), url, func() (dom.Document, error) {
		return browser.NewFrameDocument(s.ctx, s.page, frameID)
	})
	if !changed {
		return
	}

	s.logger.Info("Route changed",
		"url", url,
		"frame", frameID,
		"main_frame", frameID == s.page.FrameID,
		"handlers", started,
	)

	s.mu.Lock()
	s.stats.record(len(started))
	s.mu.Unlock()
}

func (s *frameSink) Detached(frameID proto.PageFrameID) {
	s.router.Detach(string(frameID))
}
