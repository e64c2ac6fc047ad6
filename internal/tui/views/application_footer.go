package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/cmdc/internal/center"
	"github.com/matheus3301/cmdc/internal/dispatch"
	"github.com/matheus3301/cmdc/internal/tui/ui"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	footerIconSpacer = 1
	footerButtonGap  = 2
	footerPadding    = 1
)

// Dispatcher executes the command built when a footer button is selected.
type Dispatcher interface {
	Dispatch(cmd dispatch.Command) string
}

// FooterProps is the context a footer renders. Every field is optional.
type FooterProps struct {
	Application      *center.Application
	Applications     center.ApplicationStack
	FocusedItemIndex center.ItemIndex
	Item             *center.Item
	Errors           center.ErrorReporter
}

// ButtonLayout describes how one button is drawn.
type ButtonLayout struct {
	Label   string
	Tooltip string
	Keys    [][]string
	KeyText string
	// Default marks the de-emphasized, background-less variant.
	Default bool
	Accent  tcell.Color
	// Gap is true when a spacing element precedes the button.
	Gap bool
}

// FooterLayout is the resolved content of a footer.
type FooterLayout struct {
	Icon      string
	IconColor tcell.Color
	Title     string
	Buttons   []ButtonLayout
}

// BuildFooterLayout resolves icon, title and buttons for props. Missing data
// yields empty parts.
func BuildFooterLayout(theme *ui.Theme, keys *ui.KeyText, props FooterProps) FooterLayout {
	var layout FooterLayout
	if props.Item != nil {
		layout.Icon = ui.IconOf(props.Item)
		layout.IconColor = theme.Accent(props.Item.Color())
		layout.Title = singleLine(cleanText(props.Item.Title))
	}

	buttons := props.Application.ButtonList()
	count := len(buttons)
	for idx, b := range buttons {
		accent := b.DisplaySettings.Color
		if accent == "" && props.Item != nil {
			accent = props.Item.Color()
		}
		layout.Buttons = append(layout.Buttons, ButtonLayout{
			Label:   b.Label,
			Tooltip: b.Tooltip,
			Keys:    keys.Groups(b.KeyboardShortcuts),
			KeyText: keys.Format(b.KeyboardShortcuts),
			Default: idx == 0 && count >= 2,
			Accent:  theme.Accent(accent),
			Gap:     idx >= 1,
		})
	}
	return layout
}

// ApplicationFooter is the bar under an open application: the item's icon
// and title on the left, the application's buttons on the right.
type ApplicationFooter struct {
	*tview.Flex
	theme      *ui.Theme
	keys       *ui.KeyText
	dispatcher Dispatcher
	logger     *zap.Logger
	onTooltip  func(text string)

	icon    *tview.TextView
	title   *tview.TextView
	buttons *tview.Flex

	byLabel map[string]*tview.Button
	actions map[string]func()
	layout  FooterLayout
}

// NewApplicationFooter creates an empty footer. dispatcher may be nil, in
// which case buttons do nothing.
func NewApplicationFooter(theme *ui.Theme, keys *ui.KeyText, dispatcher Dispatcher, logger *zap.Logger) *ApplicationFooter {
	if logger == nil {
		logger = zap.NewNop()
	}
	icon := tview.NewTextView()
	icon.SetBackgroundColor(theme.BgColor)
	title := tview.NewTextView()
	title.SetBackgroundColor(theme.BgColor)
	title.SetTextColor(theme.FgColor)
	buttons := tview.NewFlex()
	buttons.SetBackgroundColor(theme.BgColor)

	flex := tview.NewFlex().
		AddItem(icon, 1, 0, false).
		AddItem(spacer(theme), footerIconSpacer, 0, false).
		AddItem(title, 0, 1, false).
		AddItem(spacer(theme), footerPadding, 0, false).
		AddItem(buttons, 0, 0, false)
	flex.SetBackgroundColor(theme.BgColor)

	return &ApplicationFooter{
		Flex:       flex,
		theme:      theme,
		keys:       keys,
		dispatcher: dispatcher,
		logger:     logger,
		icon:       icon,
		title:      title,
		buttons:    buttons,
		byLabel:    make(map[string]*tview.Button),
		actions:    make(map[string]func()),
	}
}

// SetOnTooltip sets the callback receiving a button's tooltip when it gains focus.
func (f *ApplicationFooter) SetOnTooltip(fn func(text string)) {
	f.onTooltip = fn
}

// Update re-renders the footer for props. Buttons are reused by label.
func (f *ApplicationFooter) Update(props FooterProps) {
	f.layout = BuildFooterLayout(f.theme, f.keys, props)

	f.icon.SetText(f.layout.Icon)
	f.icon.SetTextColor(f.layout.IconColor)
	f.title.SetText(f.layout.Title)

	f.buttons.Clear()
	byLabel := make(map[string]*tview.Button, len(f.layout.Buttons))
	actions := make(map[string]func(), len(f.layout.Buttons))
	width := 0
	descriptors := props.Application.ButtonList()

	for idx, bl := range f.layout.Buttons {
		btn, reused := f.byLabel[bl.Label]
		if _, dup := byLabel[bl.Label]; dup {
			f.logger.Warn("duplicate footer button label", zap.String("label", bl.Label))
			btn, reused = nil, false
		}
		if !reused {
			btn = tview.NewButton("")
		}

		action := f.action(props, descriptors[idx])
		f.configure(btn, bl, action)

		if bl.Gap {
			f.buttons.AddItem(spacer(f.theme), footerButtonGap, 0, false)
			width += footerButtonGap
		}
		w := tview.TaggedStringWidth(btn.GetLabel()) + 2
		f.buttons.AddItem(btn, w, 0, false)
		width += w

		if _, dup := byLabel[bl.Label]; !dup {
			byLabel[bl.Label] = btn
			actions[bl.Label] = action
		}
	}

	f.byLabel = byLabel
	f.actions = actions
	f.ResizeItem(f.buttons, width, 0)
}

// action captures the render-time context of one button.
func (f *ApplicationFooter) action(props FooterProps, button center.Button) func() {
	return func() {
		if f.dispatcher == nil {
			return
		}
		f.dispatcher.Dispatch(dispatch.Command{
			Application:      props.Application,
			Applications:     props.Applications,
			Button:           button,
			Item:             props.Item,
			FocusedItemIndex: props.FocusedItemIndex,
			Errors:           props.Errors,
		})
	}
}

func (f *ApplicationFooter) configure(btn *tview.Button, bl ButtonLayout, action func()) {
	text := bl.Label
	if bl.KeyText != "" {
		text = fmt.Sprintf("%s  %s", bl.Label, bl.KeyText)
	}
	btn.SetLabel(tview.Escape(text))

	if bl.Default {
		btn.SetStyle(tcell.StyleDefault.Background(f.theme.BgColor).Foreground(bl.Accent))
		btn.SetActivatedStyle(tcell.StyleDefault.Background(f.theme.BgColor).Foreground(bl.Accent).Bold(true).Underline(true))
	} else {
		btn.SetStyle(tcell.StyleDefault.Background(bl.Accent).Foreground(f.theme.ButtonFg))
		btn.SetActivatedStyle(tcell.StyleDefault.Background(f.theme.BorderFocusColor).Foreground(f.theme.ButtonFg).Bold(true))
	}

	btn.SetSelectedFunc(action)
	tooltip := bl.Tooltip
	btn.SetFocusFunc(func() {
		if f.onTooltip != nil {
			f.onTooltip(tooltip)
		}
	})
}

// Press selects the button with label, as if it were clicked.
// Returns false if no such button is shown.
func (f *ApplicationFooter) Press(label string) bool {
	action, ok := f.actions[label]
	if !ok {
		return false
	}
	action()
	return true
}

// Layout returns the layout of the last render.
func (f *ApplicationFooter) Layout() FooterLayout {
	return f.layout
}

// Button returns the control rendered for label.
func (f *ApplicationFooter) Button(label string) *tview.Button {
	return f.byLabel[label]
}

// Controls returns the right region's primitives in order, spacers included.
func (f *ApplicationFooter) Controls() []tview.Primitive {
	out := make([]tview.Primitive, f.buttons.GetItemCount())
	for i := range out {
		out[i] = f.buttons.GetItem(i)
	}
	return out
}

// Focusables returns the buttons in display order.
func (f *ApplicationFooter) Focusables() []tview.Primitive {
	var out []tview.Primitive
	for _, p := range f.Controls() {
		if b, ok := p.(*tview.Button); ok {
			out = append(out, b)
		}
	}
	return out
}

func spacer(theme *ui.Theme) *tview.Box {
	return tview.NewBox().SetBackgroundColor(theme.BgColor)
}
