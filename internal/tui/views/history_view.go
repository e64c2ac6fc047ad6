package views

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/cmdc/internal/center"
	"github.com/matheus3301/cmdc/internal/status"
	"github.com/matheus3301/cmdc/internal/store"
	"github.com/matheus3301/cmdc/internal/tui/ui"
	"github.com/rivo/tview"
)

// HistoryView lists recently visited pages and recent command runs.
type HistoryView struct {
	*tview.Flex
	theme *ui.Theme
	pages *tview.Table
	runs  *tview.Table
}

// NewHistoryView creates an empty history view.
func NewHistoryView(theme *ui.Theme) *HistoryView {
	pages := newHistoryTable(theme, " Pages ")
	runs := newHistoryTable(theme, " Runs ")

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(pages, 0, 1, true).
		AddItem(runs, 0, 1, false)

	return &HistoryView{
		Flex:  flex,
		theme: theme,
		pages: pages,
		runs:  runs,
	}
}

func newHistoryTable(theme *ui.Theme, title string) *tview.Table {
	t := tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	t.SetBorder(true)
	t.SetBorderColor(theme.BorderColor)
	t.SetBackgroundColor(theme.BgColor)
	t.SetTitle(title)
	t.SetTitleColor(theme.TitleColor)
	t.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.ListCursorFg).
		Background(theme.ListCursorBg))
	return t
}

// Name implements Component.
func (hv *HistoryView) Name() string { return "History" }

// Init implements Component.
func (hv *HistoryView) Init() {}

// Start implements Component.
func (hv *HistoryView) Start() {}

// Stop implements Component.
func (hv *HistoryView) Stop() {}

// Hints implements Component.
func (hv *HistoryView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
		{Key: ":clear-history", Description: "Clear"},
	}
}

// Update renders pages and runs.
func (hv *HistoryView) Update(pages []store.PageVisit, runs []store.ActionRun) {
	hv.pages.Clear()
	hv.header(hv.pages, " PATH", " TITLE", " VISITS", " LAST")
	for i, p := range pages {
		row := i + 1
		hv.pages.SetCell(row, 0, tview.NewTableCell(" "+displayText(p.Path)).SetExpansion(1).SetTextColor(hv.theme.FgColor))
		hv.pages.SetCell(row, 1, tview.NewTableCell(" "+displayText(p.Title)).SetExpansion(1).SetTextColor(hv.theme.FgColor))
		hv.pages.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf(" %d", p.Visits)).SetAlign(tview.AlignRight).SetTextColor(hv.theme.CounterColor))
		hv.pages.SetCell(row, 3, tview.NewTableCell(" "+formatTimestamp(p.VisitedAt)).SetAlign(tview.AlignRight).SetTextColor(hv.theme.MutedColor))
	}
	hv.pages.SetTitle(fmt.Sprintf(" Pages (%d) ", len(pages)))

	hv.runs.Clear()
	hv.header(hv.runs, " BUTTON", " ITEM", " STATUS", " ERROR", " STARTED")
	for i, r := range runs {
		row := i + 1
		hv.runs.SetCell(row, 0, tview.NewTableCell(" "+displayText(r.ButtonLabel)).SetTextColor(hv.theme.FgColor))
		hv.runs.SetCell(row, 1, tview.NewTableCell(" "+displayText(r.ItemUUID)).SetExpansion(1).SetTextColor(hv.theme.FgColor))
		hv.runs.SetCell(row, 2, tview.NewTableCell(" "+r.Status).SetTextColor(hv.statusColor(r.Status)))
		hv.runs.SetCell(row, 3, tview.NewTableCell(" "+displayText(singleLine(r.Error))).SetExpansion(2).SetTextColor(hv.theme.FlashErrColor))
		hv.runs.SetCell(row, 4, tview.NewTableCell(" "+formatTimestamp(r.StartedAt)).SetAlign(tview.AlignRight).SetTextColor(hv.theme.MutedColor))
	}
	hv.runs.SetTitle(fmt.Sprintf(" Runs (%d) ", len(runs)))
}

func (hv *HistoryView) header(t *tview.Table, titles ...string) {
	for col, h := range titles {
		t.SetCell(0, col, tview.NewTableCell(h).
			SetSelectable(false).
			SetTextColor(hv.theme.TitleColor).
			SetAttributes(tcell.AttrBold))
	}
}

func (hv *HistoryView) statusColor(s string) tcell.Color {
	switch s {
	case string(status.Succeeded):
		return hv.theme.Accent(center.ColorGreen)
	case string(status.Failed):
		return hv.theme.FlashErrColor
	case string(status.Cancelled):
		return hv.theme.FlashWarnColor
	default:
		return hv.theme.FgColor
	}
}

// Pages returns the page history table.
func (hv *HistoryView) Pages() *tview.Table { return hv.pages }

// Runs returns the run table.
func (hv *HistoryView) Runs() *tview.Table { return hv.runs }

func formatTimestamp(ms int64) string {
	if ms == 0 {
		return ""
	}
	t := time.UnixMilli(ms)
	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	return t.Format("01/02")
}
