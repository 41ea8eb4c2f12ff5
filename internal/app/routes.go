package app

import (
	"log/slog"

	"weban-autopilot/internal/autopilot"
	"weban-autopilot/internal/config"
	"weban-autopilot/internal/scraper"
)

// BuildRoutes returns the route table in dispatch order: course player,
// comment page, course list.
func BuildRoutes(cfg *config.Config, selectors scraper.Selectors) []autopilot.Route {
	return []autopilot.Route{
		{
			Prefix: cfg.Routes.CompletionPrefix,
			Handler: &autopilot.CompletionTrigger{
				Delay:    cfg.GetCompletionDelay(),
				Function: cfg.Completion.Function,
			},
		},
		{
			Prefix: cfg.Routes.CommentPrefix,
			Handler: &autopilot.ReturnButtonClicker{
				Poller: autopilot.Poller{
					Interval:    cfg.ReturnButton.GetInterval(),
					MaxAttempts: cfg.ReturnButton.MaxAttempts,
				},
				Selector: selectors.ReturnButton,
				Text:     selectors.ReturnText,
			},
		},
		{
			Prefix: cfg.Routes.CoursePrefix,
			Handler: &autopilot.UnfinishedFinder{
				Enabled: cfg.Unfinished.Enabled,
				Poller: autopilot.Poller{
					Interval:    cfg.Unfinished.GetInterval(),
					MaxAttempts: cfg.Unfinished.MaxAttempts,
				},
				Selectors: selectors,
			},
		},
	}
}

// NewFrameRouter routes every frame of the tab through the same table.
func NewFrameRouter(cfg *config.Config, selectors scraper.Selectors, logger *slog.Logger) *autopilot.FrameRouter {
	return autopilot.NewFrameRouter(logger, BuildRoutes(cfg, selectors)...)
}
