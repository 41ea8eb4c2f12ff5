// Package dom describes the minimal view of a page that the autopilot
// handlers need. It is implemented over a live browser tab (internal/browser)
// and over a saved HTML snapshot (internal/scraper).
package dom

import "context"

// Document is the queryable page.
type Document interface {
	// Elements returns every element matching the CSS selector right now.
	// It never waits for elements to appear.
	Elements(ctx context.Context, selector string) ([]Element, error)

	// CallFunction calls the zero-argument global function name if it exists.
	// found is false when no such function is defined.
	CallFunction(ctx context.Context, name string) (found bool, err error)
}

// Element is a single DOM node.
type Element interface {
	Elements(selector string) ([]Element, error)
	Text() (string, error)
	HasClass(name string) (bool, error)
	Click() error
}

// First returns the first element of els, or nil.
func First(els []Element) Element {
	if len(els) == 0 {
		return nil
	}
	return els[0]
}
