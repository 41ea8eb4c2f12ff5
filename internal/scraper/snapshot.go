package scraper

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"weban-autopilot/internal/dom"
	"weban-autopilot/internal/normalize"
)

// Snapshot is a dom.Document over saved page HTML. Clicks are recorded
// instead of dispatched; collapse toggles flip aria-expanded like the live
// widget does. Safe for concurrent use.
type Snapshot struct {
	mu     sync.Mutex
	doc    *goquery.Document
	funcs  map[string]func()
	clicks []ClickRecord
}

var _ dom.Document = (*Snapshot)(nil)

// NewSnapshot парсит HTML страницы.
func NewSnapshot(r io.Reader) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return &Snapshot{
		doc:   doc,
		funcs: make(map[string]func()),
	}, nil
}

// NewSnapshotFromString is NewSnapshot over an in-memory page.
func NewSnapshotFromString(html string) (*Snapshot, error) {
	return NewSnapshot(strings.NewReader(html))
}

// DefineFunction makes name callable through CallFunction.
func (s *Snapshot) DefineFunction(name string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.funcs[name] = fn
}

func (s *Snapshot) Elements(ctx context.Context, selector string) ([]dom.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.find(s.doc.Selection, selector)
}

func (s *Snapshot) CallFunction(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	fn, ok := s.funcs[name]
	s.mu.Unlock()

	if !ok {
		return false, nil
	}
	fn()
	return true, nil
}

// Clicks returns the clicks performed so far, in order.
func (s *Snapshot) Clicks() []ClickRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ClickRecord(nil), s.clicks...)
}

func (s *Snapshot) find(root *goquery.Selection, selector string) ([]dom.Element, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var els []dom.Element
	root.FindMatcher(matcher).Each(func(_ int, sel *goquery.Selection) {
		els = append(els, &snapshotElement{snap: s, sel: sel})
	})
	return els, nil
}

type snapshotElement struct {
	snap *Snapshot
	sel  *goquery.Selection
}

func (e *snapshotElement) Elements(selector string) ([]dom.Element, error) {
	return e.snap.find(e.sel, selector)
}

// Text returns the text content without script and style bodies,
// the closest static equivalent of innerText.
func (e *snapshotElement) Text() (string, error) {
	e.snap.mu.Lock()
	defer e.snap.mu.Unlock()
	return visibleText(e.sel), nil
}

func (e *snapshotElement) HasClass(name string) (bool, error) {
	e.snap.mu.Lock()
	defer e.snap.mu.Unlock()
	return e.sel.HasClass(name), nil
}

func (e *snapshotElement) Click() error {
	e.snap.mu.Lock()
	defer e.snap.mu.Unlock()

	e.snap.clicks = append(e.snap.clicks, ClickRecord{
		Tag:   goquery.NodeName(e.sel),
		Class: e.sel.AttrOr("class", ""),
		Text:  normalize.Preview(visibleText(e.sel), 40),
	})

	// van-collapse раскрывается по клику
	if expanded, ok := e.sel.Attr("aria-expanded"); ok && expanded == "false" {
		e.sel.SetAttr("aria-expanded", "true")
	}
	return nil
}

func visibleText(sel *goquery.Selection) string {
	clone := sel.Clone()
	clone.Find("script, style").Remove()
	return strings.TrimSpace(clone.Text())
}

// ScriptDefines reports whether an inline script of the page declares a
// global function called name, either as a declaration or an assignment.
func (s *Snapshot) ScriptDefines(name string) bool {
	decl := regexp.MustCompile(`(?:function\s+` + regexp.QuoteMeta(name) + `\s*\(|(?:window\.|var\s+|let\s+|const\s+)` + regexp.QuoteMeta(name) + `\s*=)`)

	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	s.doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		found = decl.MatchString(sel.Text())
		return !found
	})
	return found
}
