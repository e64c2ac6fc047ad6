package model

import (
	"strings"
	"testing"

	"github.com/matheus3301/cmdc/internal/center"
)

type fakeSearcher struct {
	items   []center.Item
	queries []string
}

func (f *fakeSearcher) Search(query string) []center.Item {
	f.queries = append(f.queries, query)
	var out []center.Item
	for _, it := range f.items {
		if strings.Contains(strings.ToLower(it.Title), strings.ToLower(query)) {
			out = append(out, it)
		}
	}
	return out
}

func newPalette() (*Palette, *fakeSearcher) {
	s := &fakeSearcher{items: []center.Item{
		{UUID: "pipelines", Title: "Pipelines", Applications: []center.Application{{UUID: "detail"}}},
		{UUID: "deploy", Title: "Deploy"},
	}}
	return NewPalette(s), s
}

func TestSearchFocusesFirstResult(t *testing.T) {
	p, _ := newPalette()

	results := p.Search("")
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if i, ok := p.Focused().Get(); !ok || i != 0 {
		t.Errorf("focused = %d, %v", i, ok)
	}

	p.Search("nothing")
	if _, ok := p.Focused().Get(); ok {
		t.Error("empty results should clear the focus")
	}
}

func TestRefreshRerunsQuery(t *testing.T) {
	p, s := newPalette()
	p.Search("dep")
	p.Refresh()
	if len(s.queries) != 2 || s.queries[1] != "dep" {
		t.Errorf("queries = %v", s.queries)
	}
}

func TestFocusBounds(t *testing.T) {
	p, _ := newPalette()
	p.Search("")

	p.Focus(center.IndexOf(1))
	if i, _ := p.Focused().Get(); i != 1 {
		t.Errorf("focused = %d, want 1", i)
	}
	p.Focus(center.IndexOf(7))
	if _, ok := p.Focused().Get(); ok {
		t.Error("out of range focus should be cleared")
	}
}

func TestOpenPushesFirstApplication(t *testing.T) {
	p, _ := newPalette()
	p.Search("")

	item, opened := p.Open(center.IndexOf(0))
	if !opened || item.UUID != "pipelines" {
		t.Fatalf("Open() = %v, %v", item, opened)
	}
	top, ok := p.Top()
	if !ok || top.Application.UUID != "detail" || top.Item.UUID != "pipelines" {
		t.Errorf("top = %+v", top)
	}

	item, opened = p.Open(center.IndexOf(1))
	if opened || item == nil || item.UUID != "deploy" {
		t.Errorf("item without applications: %v, %v", item, opened)
	}
	if p.Stack.Len() != 1 {
		t.Errorf("stack len = %d, want 1", p.Stack.Len())
	}
	if i, _ := p.Focused().Get(); i != 1 {
		t.Errorf("focus = %d, want 1", i)
	}

	if item, _ := p.Open(center.NoIndex); item != nil {
		t.Error("opening no index should return nil")
	}
}
