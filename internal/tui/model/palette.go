package model

import (
	"sync"

	"github.com/matheus3301/cmdc/internal/center"
)

// Searcher scores catalog items for a query.
type Searcher interface {
	Search(query string) []center.Item
}

// Palette caches the query, its results and the open application stack.
type Palette struct {
	mu sync.RWMutex

	searcher Searcher
	query    string
	results  []center.Item
	focused  center.ItemIndex

	Stack *center.Stack
}

// NewPalette creates a palette over searcher with an empty application stack.
func NewPalette(searcher Searcher) *Palette {
	return &Palette{
		searcher: searcher,
		Stack:    center.NewStack(),
	}
}

// Search runs query and stores the results. The focus moves to the first
// result, or is cleared when there are none.
func (p *Palette) Search(query string) []center.Item {
	results := p.searcher.Search(query)
	p.mu.Lock()
	p.query = query
	p.results = results
	p.focused = center.NoIndex
	if len(results) > 0 {
		p.focused = center.IndexOf(0)
	}
	p.mu.Unlock()
	return results
}

// Refresh re-runs the current query.
func (p *Palette) Refresh() []center.Item {
	return p.Search(p.Query())
}

// Query returns the current query.
func (p *Palette) Query() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.query
}

// Results returns a snapshot of the current results.
func (p *Palette) Results() []center.Item {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.results
}

// Focus records the highlighted result. Indexes outside the results clear it.
func (p *Palette) Focus(idx center.ItemIndex) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i, ok := idx.Get(); !ok || i >= len(p.results) {
		p.focused = center.NoIndex
		return
	}
	p.focused = idx
}

// Focused returns the highlighted result index.
func (p *Palette) Focused() center.ItemIndex {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.focused
}

// Item returns the result at idx.
func (p *Palette) Item(idx center.ItemIndex) (*center.Item, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	i, ok := idx.Get()
	if !ok || i >= len(p.results) {
		return nil, false
	}
	item := p.results[i]
	return &item, true
}

// Open focuses the result at idx and opens its first application. It returns
// the item and whether an application was opened; items without applications
// are returned so the caller can execute them directly.
func (p *Palette) Open(idx center.ItemIndex) (*center.Item, bool) {
	item, ok := p.Item(idx)
	if !ok {
		return nil, false
	}
	p.Focus(idx)
	app, ok := item.FirstApplication()
	if !ok {
		return item, false
	}
	p.Stack.Push(item, app)
	return item, true
}

// Top returns the open application, if any.
func (p *Palette) Top() (center.Frame, bool) {
	return p.Stack.Top()
}
