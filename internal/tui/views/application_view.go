package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/cmdc/internal/center"
	"github.com/matheus3301/cmdc/internal/tui/ui"
	"github.com/rivo/tview"
)

// ApplicationView shows the application on top of the stack together with
// the item it belongs to.
type ApplicationView struct {
	*tview.TextView
	theme *ui.Theme
	frame center.Frame
}

// NewApplicationView creates an empty application view.
func NewApplicationView(theme *ui.Theme) *ApplicationView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderFocusColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitleColor(theme.TitleColor)

	return &ApplicationView{
		TextView: tv,
		theme:    theme,
	}
}

// Name implements Component.
func (av *ApplicationView) Name() string { return "Application" }

// Init implements Component.
func (av *ApplicationView) Init() {}

// Start implements Component.
func (av *ApplicationView) Start() {}

// Stop implements Component.
func (av *ApplicationView) Stop() {}

// Hints implements Component.
func (av *ApplicationView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Tab", Description: "Next button"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Close"},
	}
}

// Update renders frame.
func (av *ApplicationView) Update(frame center.Frame) {
	av.frame = frame
	av.Clear()

	item := frame.Item
	title := item.ItemTitle()
	if frame.Application != nil && frame.Application.Title != "" {
		title = frame.Application.Title
	}
	av.SetTitle(fmt.Sprintf(" %s ", displayText(title)))
	if item == nil {
		return
	}

	accent := ui.ColorName(av.theme.Accent(item.Color()))
	fg := ui.ColorName(av.theme.FgColor)
	muted := ui.ColorName(av.theme.MutedColor)

	var b strings.Builder
	fmt.Fprintf(&b, "\n  [%s::b]%s  %s[-:-:-]\n", accent, ui.IconOf(item), displayText(item.Title))
	if item.Description != "" {
		fmt.Fprintf(&b, "  [%s]%s[-]\n", muted, displayText(item.Description))
	}
	fmt.Fprintf(&b, "\n  [%s]type[-]    %s\n", muted, item.ItemType)
	fmt.Fprintf(&b, "  [%s]object[-]  %s\n", muted, item.ObjectType)

	if len(item.Actions) > 0 {
		fmt.Fprintf(&b, "\n  [%s::b]Actions[-:-:-]\n", fg)
		for _, a := range item.Actions {
			fmt.Fprintf(&b, "  • %s\n", displayText(describeAction(a)))
		}
	}
	_, _ = fmt.Fprint(av, b.String())
}

// Frame returns the frame last rendered.
func (av *ApplicationView) Frame() center.Frame {
	return av.frame
}

func describeAction(a center.ItemAction) string {
	switch {
	case a.Page != nil:
		return "open page " + a.Page.Path
	case a.Request != nil:
		if a.Request.Payload != "" {
			return fmt.Sprintf("request %s %s", a.Request.Subject, a.Request.Payload)
		}
		return "request " + a.Request.Subject
	default:
		return "no-op"
	}
}
