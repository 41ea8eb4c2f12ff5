package autopilot

import (
	"context"
	"time"
)

// CompletionTrigger calls the page's own completion function once the
// course player has been open for Delay.
type CompletionTrigger struct {
	Delay    time.Duration
	Function string
}

func (c *CompletionTrigger) Name() string { return "completion" }

func (c *CompletionTrigger) Handle(ctx context.Context, nav Navigation) {
	nav.Logger.Info("Course player detected, waiting before completion", "delay", c.Delay)

	timer := time.NewTimer(c.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		nav.Logger.Debug("Completion cancelled by navigation")
		return
	case <-timer.C:
	}

	found, err := nav.Doc.CallFunction(ctx, c.Function)
	if err != nil {
		nav.Logger.Warn("Completion function call failed", "function", c.Function, "error", err)
		return
	}
	if !found {
		nav.Logger.Warn("Completion function not found", "function", c.Function)
		return
	}

	nav.Logger.Info("Completion function invoked", "function", c.Function)
}
