package ui

import (
	"fmt"
	"time"

	"github.com/rivo/tview"
)

// ProfileData holds profile information for display.
type ProfileData struct {
	Profile   string
	Items     int
	Results   int
	Transport string
	LastRun   string
	Uptime    time.Duration
}

// ProfileInfo displays profile metadata in the header.
type ProfileInfo struct {
	*tview.TextView
	theme *Theme
}

// NewProfileInfo creates a new profile info panel.
func NewProfileInfo(theme *Theme) *ProfileInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 1)

	return &ProfileInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the profile info.
func (pi *ProfileInfo) Update(data *ProfileData) {
	pi.Clear()
	if data == nil {
		return
	}

	fg := ColorName(pi.theme.FgColor)
	counter := ColorName(pi.theme.CounterColor)

	transport := data.Transport
	if transport == "" {
		transport = "-"
	}
	lastRun := data.LastRun
	if lastRun == "" {
		lastRun = "-"
	}

	_, _ = fmt.Fprintf(pi,
		"[%s::b]Profile:[-:-:-]   [%s]%s[-]\n"+
			"[%s::b]Items:[-:-:-]     [%s]%d/%d[-]\n"+
			"[%s::b]Transport:[-:-:-] [%s]%s[-]\n"+
			"[%s::b]Last run:[-:-:-]  [%s]%s[-]\n"+
			"[%s::b]Uptime:[-:-:-]    [%s]%s[-]",
		fg, counter, tview.Escape(data.Profile),
		fg, counter, data.Results, data.Items,
		fg, counter, tview.Escape(transport),
		fg, counter, tview.Escape(lastRun),
		fg, counter, formatDuration(data.Uptime),
	)
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
