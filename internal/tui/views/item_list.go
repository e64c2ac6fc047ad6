package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/cmdc/internal/center"
	"github.com/matheus3301/cmdc/internal/tui/ui"
	"github.com/rivo/tview"
)

// ItemList shows scored search results.
type ItemList struct {
	*tview.Table
	theme  *ui.Theme
	items  []center.Item
	query  string
	onOpen func(index center.ItemIndex, item *center.Item)
}

// NewItemList creates an empty result table.
func NewItemList(theme *ui.Theme) *ItemList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.ListCursorFg).
		Background(theme.ListCursorBg))
	table.SetTitleColor(theme.TitleColor)

	il := &ItemList{
		Table: table,
		theme: theme,
	}
	table.SetSelectedFunc(func(row, _ int) {
		idx, item := il.itemAt(row)
		if item != nil && il.onOpen != nil {
			il.onOpen(idx, item)
		}
	})
	il.render()
	return il
}

// Name implements Component.
func (il *ItemList) Name() string { return "Items" }

// Init implements Component.
func (il *ItemList) Init() {}

// Start implements Component.
func (il *ItemList) Start() {}

// Stop implements Component.
func (il *ItemList) Stop() {}

// Hints implements Component.
func (il *ItemList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Open"},
		{Key: "↑/↓", Description: "Move"},
		{Key: "Tab", Description: "Search"},
		{Key: ":", Description: "Command"},
		{Key: "?", Description: "Help"},
		{Key: "1-9", Description: "Jump", Numeric: true},
	}
}

// SetOnOpen sets the callback when an item is chosen.
func (il *ItemList) SetOnOpen(fn func(index center.ItemIndex, item *center.Item)) {
	il.onOpen = fn
}

// Update replaces the results shown for query and selects the first one.
func (il *ItemList) Update(query string, items []center.Item) {
	il.query = query
	il.items = items
	il.render()
	if len(items) > 0 {
		il.Select(1, 0)
	}
}

// Items returns the results currently shown.
func (il *ItemList) Items() []center.Item {
	return il.items
}

// Selected returns the highlighted item and its index.
func (il *ItemList) Selected() (center.ItemIndex, *center.Item) {
	row, _ := il.GetSelection()
	return il.itemAt(row)
}

// ItemByNumber returns the Nth result (1-based).
func (il *ItemList) ItemByNumber(n int) (center.ItemIndex, *center.Item) {
	return il.itemAt(n)
}

func (il *ItemList) itemAt(row int) (center.ItemIndex, *center.Item) {
	idx := row - 1 // header
	if idx < 0 || idx >= len(il.items) {
		return center.NoIndex, nil
	}
	return center.IndexOf(idx), &il.items[idx]
}

func (il *ItemList) render() {
	il.Clear()

	headers := []struct {
		text string
		exp  int
	}{
		{"  ", 0},
		{" TITLE", 2},
		{" DESCRIPTION", 2},
		{" TYPE", 0},
		{" SCORE", 0},
	}
	for col, h := range headers {
		il.SetCell(0, col, tview.NewTableCell(h.text).
			SetSelectable(false).
			SetTextColor(il.theme.TitleColor).
			SetAttributes(tcell.AttrBold).
			SetExpansion(h.exp))
	}

	for i := range il.items {
		it := &il.items[i]
		row := i + 1
		il.SetCell(row, 0, tview.NewTableCell(" "+ui.IconOf(it)).SetTextColor(il.theme.Accent(it.Color())))
		il.SetCell(row, 1, tview.NewTableCell(" "+displayText(singleLine(it.Title))).SetExpansion(2).SetTextColor(il.theme.FgColor))
		il.SetCell(row, 2, tview.NewTableCell(" "+displayText(singleLine(it.Description))).SetExpansion(2).SetTextColor(il.theme.MutedColor))
		il.SetCell(row, 3, tview.NewTableCell(" "+string(it.ItemType)).SetTextColor(il.theme.MutedColor))
		il.SetCell(row, 4, tview.NewTableCell(fmt.Sprintf(" %.1f", it.Score)).SetAlign(tview.AlignRight).SetTextColor(il.theme.CounterColor))
	}

	if il.query != "" {
		il.SetTitle(fmt.Sprintf(" Items (%d) %s ", len(il.items), tview.Escape(fmt.Sprintf("%q", il.query))))
	} else {
		il.SetTitle(fmt.Sprintf(" Items (%d) ", len(il.items)))
	}
}
