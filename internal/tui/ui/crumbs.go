package ui

import (
	"fmt"
	"strings"

	"github.com/matheus3301/cmdc/internal/center"
	"github.com/rivo/tview"
)

// Crumbs is a breadcrumb bar showing the open application stack.
type Crumbs struct {
	*tview.TextView
	theme *Theme
	root  string
}

// NewCrumbs creates a breadcrumb bar whose first crumb is root.
func NewCrumbs(theme *Theme, root string) *Crumbs {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)

	c := &Crumbs{
		TextView: tv,
		theme:    theme,
		root:     root,
	}
	c.Update(nil)
	return c
}

// Labels returns the crumb labels for a stack: the root, then one crumb per
// open application named "item" or "item: application".
func (c *Crumbs) Labels(frames []center.Frame) []string {
	labels := []string{c.root}
	for _, f := range frames {
		label := f.Item.ItemTitle()
		if f.Application != nil && f.Application.Title != "" && f.Application.Title != label {
			label += ": " + f.Application.Title
		}
		if label == "" {
			label = "?"
		}
		labels = append(labels, label)
	}
	return labels
}

// Update renders the breadcrumb trail.
func (c *Crumbs) Update(frames []center.Frame) {
	c.Clear()
	labels := c.Labels(frames)

	parts := make([]string, 0, len(labels))
	for i, name := range labels {
		fg, bg := c.theme.CrumbInactiveFg, c.theme.CrumbInactiveBg
		attr := ""
		if i == len(labels)-1 {
			fg, bg = c.theme.CrumbActiveFg, c.theme.CrumbActiveBg
			attr = "b"
		}
		parts = append(parts, fmt.Sprintf("[%s:%s:%s] %s [-:-:-]",
			ColorName(fg), ColorName(bg), attr, tview.Escape(name)))
	}
	_, _ = fmt.Fprint(c, strings.Join(parts, " > "))
}
