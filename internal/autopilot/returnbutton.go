package autopilot

import (
	"context"

	"weban-autopilot/internal/normalize"
)

// ReturnButtonClicker clicks the "back to list" button of the comment page.
type ReturnButtonClicker struct {
	Poller   Poller
	Selector string
	Text     string
}

func (r *ReturnButtonClicker) Name() string { return "return_button" }

func (r *ReturnButtonClicker) Handle(ctx context.Context, nav Navigation) {
	nav.Logger.Info("Comment page detected, looking for return button", "text", r.Text)

	outcome, attempts := r.Poller.Run(ctx, func(ctx context.Context, attempt int) bool {
		return r.tryClick(ctx, nav, attempt)
	})

	switch outcome {
	case OutcomeDone:
		nav.Logger.Info("Return button clicked", "attempts", attempts)
	case OutcomeExhausted:
		nav.Logger.Warn("Return button not found", "attempts", attempts)
	case OutcomeCancelled:
		nav.Logger.Debug("Return button search cancelled by navigation", "attempts", attempts)
	}
}

func (r *ReturnButtonClicker) tryClick(ctx context.Context, nav Navigation, attempt int) bool {
	buttons, err := nav.Doc.Elements(ctx, r.Selector)
	if err != nil {
		nav.Logger.Debug("Return button query failed", "attempt", attempt, "error", err)
		return false
	}

	for _, btn := range buttons {
		text, err := btn.Text()
		if err != nil || !normalize.Contains(text, r.Text) {
			continue
		}
		if err := btn.Click(); err != nil {
			nav.Logger.Warn("Return button click failed", "attempt", attempt, "error", err)
			return false
		}
		return true
	}
	return false
}
