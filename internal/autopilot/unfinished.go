package autopilot

import (
	"context"

	"weban-autopilot/internal/dom"
	"weban-autopilot/internal/normalize"
	"weban-autopilot/internal/scraper"
)

// UnfinishedFinder expands course sections that still have unfinished
// lessons and opens the first lesson not marked as passed. Off unless Enabled.
type UnfinishedFinder struct {
	Enabled   bool
	Poller    Poller
	Selectors scraper.Selectors
}

func (u *UnfinishedFinder) Name() string { return "unfinished" }

func (u *UnfinishedFinder) Handle(ctx context.Context, nav Navigation) {
	if !u.Enabled {
		nav.Logger.Info("Course page detected, unfinished lesson finder is disabled")
		return
	}
	nav.Logger.Info("Course page detected, looking for unfinished lessons")

	outcome, attempts := u.Poller.Run(ctx, func(ctx context.Context, attempt int) bool {
		u.expandSections(ctx, nav)
		return u.openFirstUnpassed(ctx, nav, attempt)
	})

	switch outcome {
	case OutcomeExhausted:
		nav.Logger.Warn("No unfinished lesson found, giving up", "attempts", attempts)
	case OutcomeCancelled:
		nav.Logger.Debug("Unfinished lesson search cancelled by navigation", "attempts", attempts)
	}
}

// expandSections кликает по заголовкам свёрнутых разделов, где done < total.
func (u *UnfinishedFinder) expandSections(ctx context.Context, nav Navigation) {
	items, err := nav.Doc.Elements(ctx, u.Selectors.CollapseItem)
	if err != nil {
		nav.Logger.Debug("Section query failed", "error", err)
		return
	}

	for _, item := range items {
		title := firstMatch(item, u.Selectors.CollapseTitle)
		if title == nil {
			continue
		}
		count := firstMatch(title, u.Selectors.CollapseCount)
		if count == nil {
			continue
		}
		countText, err := count.Text()
		if err != nil || countText == "" {
			continue
		}

		done, total, err := scraper.ParseProgress(countText)
		if err != nil || !scraper.NeedsExpand(done, total) {
			continue
		}

		toggle := firstMatch(item, u.Selectors.CollapseToggle)
		if toggle == nil {
			continue
		}

		titleText, _ := title.Text()
		nav.Logger.Info("Expanding section",
			"section", normalize.Preview(titleText, 40),
			"done", done,
			"total", total,
		)
		if err := toggle.Click(); err != nil {
			nav.Logger.Warn("Section expand failed", "error", err)
		}
	}
}

func (u *UnfinishedFinder) openFirstUnpassed(ctx context.Context, nav Navigation, attempt int) bool {
	lessons, err := nav.Doc.Elements(ctx, u.Selectors.LessonItem)
	if err != nil {
		nav.Logger.Debug("Lesson query failed", "attempt", attempt, "error", err)
		return false
	}

	var unpassed []dom.Element
	for _, lesson := range lessons {
		passed, err := lesson.HasClass(u.Selectors.PassedClass)
		if err != nil || passed {
			continue
		}
		unpassed = append(unpassed, lesson)
	}
	if len(unpassed) == 0 {
		return false
	}

	text, _ := unpassed[0].Text()
	nav.Logger.Info("Opening first unfinished lesson",
		"unfinished", len(unpassed),
		"lesson", normalize.Preview(text, 40),
	)
	if err := unpassed[0].Click(); err != nil {
		nav.Logger.Warn("Lesson click failed", "attempt", attempt, "error", err)
		return false
	}
	return true
}

func firstMatch(el dom.Element, selector string) dom.Element {
	els, err := el.Elements(selector)
	if err != nil {
		return nil
	}
	return dom.First(els)
}
