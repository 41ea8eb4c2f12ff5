package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/cdp"
	"github.com/go-rod/rod/lib/proto"

	"weban-autopilot/internal/dom"
)

// Document is a dom.Document over a live Rod page. Clicks are DOM click()
// calls, the same event the page's own script would dispatch.
type Document struct {
	page *rod.Page
}

var _ dom.Document = (*Document)(nil)

func NewDocument(page *rod.Page) *Document {
	return &Document{page: page}
}

// NewFrameDocument returns the Document of one frame of page. The main
// frame is the page itself; a child frame is reached through the iframe
// element that owns it.
func NewFrameDocument(ctx context.Context, page *rod.Page, frameID proto.PageFrameID) (*Document, error) {
	if frameID == "" || frameID == page.FrameID {
		return NewDocument(page), nil
	}

	p := page.Context(ctx)
	owner, err := proto.DOMGetFrameOwner{FrameID: frameID}.Call(p)
	if err != nil {
		return nil, fmt.Errorf("frame %s owner: %w", frameID, err)
	}
	el, err := p.ElementFromNode(&proto.DOMNode{BackendNodeID: owner.BackendNodeID})
	if err != nil {
		return nil, fmt.Errorf("frame %s element: %w", frameID, err)
	}
	framePage, err := el.Frame()
	if err != nil {
		return nil, fmt.Errorf("frame %s: %w", frameID, err)
	}
	return NewDocument(framePage), nil
}

func (d *Document) Elements(ctx context.Context, selector string) ([]dom.Element, error) {
	els, err := d.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	return wrap(els), nil
}

func (d *Document) CallFunction(ctx context.Context, name string) (bool, error) {
	res, err := d.page.Context(ctx).Eval(`(name) => {
		const fn = globalThis[name];
		if (typeof fn !== 'function') {
			return false;
		}
		fn();
		return true;
	}`, name)
	if err != nil {
		if destroyedByCall(err) {
			return true, nil
		}
		return false, fmt.Errorf("call %s: %w", name, err)
	}
	return res.Value.Bool(), nil
}

// destroyedByCall reports an eval that was cut short because the called
// function navigated away. The function did run.
func destroyedByCall(err error) bool {
	return errors.Is(err, cdp.ErrCtxDestroyed)
}

type element struct {
	el *rod.Element
}

func wrap(els rod.Elements) []dom.Element {
	out := make([]dom.Element, 0, len(els))
	for _, el := range els {
		out = append(out, &element{el: el})
	}
	return out
}

func (e *element) Elements(selector string) ([]dom.Element, error) {
	els, err := e.el.Elements(selector)
	if err != nil {
		return nil, err
	}
	return wrap(els), nil
}

func (e *element) Text() (string, error) {
	return e.el.Text()
}

func (e *element) HasClass(name string) (bool, error) {
	res, err := e.el.Eval(`(name) => this.classList.contains(name)`, name)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

func (e *element) Click() error {
	_, err := e.el.Eval(`() => this.click()`)
	return err
}
