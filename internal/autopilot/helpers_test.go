package autopilot

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"weban-autopilot/internal/dom"
	"weban-autopilot/internal/scraper"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testNav(doc dom.Document) Navigation {
	return Navigation{
		ID:     "test",
		URL:    "https://weiban.mycourse.cn/#/test",
		Doc:    doc,
		Logger: discardLogger(),
	}
}

func mustSnapshot(t *testing.T, html string) *scraper.Snapshot {
	t.Helper()
	snap, err := scraper.NewSnapshotFromString(html)
	require.NoError(t, err)
	return snap
}

// countingDoc counts top-level queries, one per polling tick for the
// return button clicker.
type countingDoc struct {
	dom.Document
	queries atomic.Int32
}

func (c *countingDoc) Elements(ctx context.Context, selector string) ([]dom.Element, error) {
	c.queries.Add(1)
	return c.Document.Elements(ctx, selector)
}
