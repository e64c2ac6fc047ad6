package views

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/cmdc/internal/center"
	"github.com/matheus3301/cmdc/internal/dispatch"
	"github.com/matheus3301/cmdc/internal/keycode"
	"github.com/matheus3301/cmdc/internal/tui/ui"
	"github.com/rivo/tview"
)

type recordingDispatcher struct {
	commands []dispatch.Command
}

func (r *recordingDispatcher) Dispatch(cmd dispatch.Command) string {
	r.commands = append(r.commands, cmd)
	return "run"
}

type errorSink struct{ errs []error }

func (e *errorSink) Report(err error) { e.errs = append(e.errs, err) }

func footerKeys() *ui.KeyText {
	return ui.NewKeyText(keycode.NewTable(nil), "+", " / ")
}

func pipelinesItem() *center.Item {
	return &center.Item{
		UUID:       "pipelines",
		Title:      "Pipelines",
		ObjectType: center.ObjectPipeline,
	}
}

func appWith(labels ...string) *center.Application {
	app := &center.Application{UUID: "detail"}
	for _, l := range labels {
		app.Buttons = append(app.Buttons, center.Button{
			Label:             l,
			Tooltip:           l + " tooltip",
			KeyboardShortcuts: [][]keycode.Code{{keycode.Meta, keycode.Enter}},
			ActionTypes:       []center.ButtonActionType{center.ActionExecute},
		})
	}
	return app
}

func newFooter(d Dispatcher) *ApplicationFooter {
	return NewApplicationFooter(ui.DefaultTheme(), footerKeys(), d, nil)
}

func pressEnter(b *tview.Button) {
	b.InputHandler()(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), func(tview.Primitive) {})
}

func enterKey() *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
}

func noFocus(tview.Primitive) {}

func TestFooterZeroButtons(t *testing.T) {
	f := newFooter(nil)
	f.Update(FooterProps{Application: appWith(), Item: pipelinesItem()})

	if n := len(f.Controls()); n != 0 {
		t.Errorf("right region has %d controls, want 0", n)
	}
	if len(f.Layout().Buttons) != 0 {
		t.Errorf("layout has %d buttons", len(f.Layout().Buttons))
	}
}

func TestFooterNilDataRendersNothing(t *testing.T) {
	f := newFooter(nil)
	f.Update(FooterProps{})

	l := f.Layout()
	if l.Icon != "" || l.Title != "" || len(l.Buttons) != 0 {
		t.Errorf("layout = %+v, want empty", l)
	}
	if len(f.Controls()) != 0 {
		t.Error("nil application should render no controls")
	}
	if f.Press("Open") {
		t.Error("Press() on an empty footer should report false")
	}
}

func TestFooterSingleButtonIsStandard(t *testing.T) {
	l := BuildFooterLayout(ui.DefaultTheme(), footerKeys(), FooterProps{Application: appWith("Open"), Item: pipelinesItem()})

	if len(l.Buttons) != 1 {
		t.Fatalf("got %d buttons", len(l.Buttons))
	}
	if l.Buttons[0].Default {
		t.Error("a lone button must use standard styling")
	}
}

func TestFooterFirstOfManyIsDefault(t *testing.T) {
	for _, n := range []int{2, 3, 5} {
		labels := make([]string, n)
		for i := range labels {
			labels[i] = string(rune('A' + i))
		}
		l := BuildFooterLayout(ui.DefaultTheme(), footerKeys(), FooterProps{Application: appWith(labels...)})
		for idx, b := range l.Buttons {
			if want := idx == 0; b.Default != want {
				t.Errorf("n=%d idx=%d Default=%v, want %v", n, idx, b.Default, want)
			}
		}
	}
}

func TestFooterGapsBetweenButtons(t *testing.T) {
	f := newFooter(nil)
	f.Update(FooterProps{Application: appWith("Open", "Edit", "Cancel")})

	controls := f.Controls()
	// button, gap, button, gap, button
	if len(controls) != 5 {
		t.Fatalf("got %d controls, want 5", len(controls))
	}
	for i, p := range controls {
		_, isButton := p.(*tview.Button)
		if wantButton := i%2 == 0; isButton != wantButton {
			t.Errorf("control %d: button=%v, want %v", i, isButton, wantButton)
		}
	}
	if _, ok := controls[0].(*tview.Button); !ok {
		t.Error("first button must not be preceded by a gap")
	}

	for idx, b := range f.Layout().Buttons {
		if want := idx >= 1; b.Gap != want {
			t.Errorf("idx=%d Gap=%v, want %v", idx, b.Gap, want)
		}
	}
}

func TestFooterKeySymbols(t *testing.T) {
	keys := ui.NewKeyText(keycode.NewTable(nil), "+", " / ")
	app := &center.Application{Buttons: []center.Button{
		{Label: "Search", KeyboardShortcuts: [][]keycode.Code{{keycode.Meta, keycode.K}}},
		{Label: "Plain"},
		{Label: "Odd", KeyboardShortcuts: [][]keycode.Code{{keycode.Control, 250}, {keycode.Escape}}},
	}}
	l := BuildFooterLayout(ui.DefaultTheme(), keys, FooterProps{Application: app})

	search := l.Buttons[0]
	if len(search.Keys) != 1 || len(search.Keys[0]) != 2 || search.Keys[0][0] != "⌘" || search.Keys[0][1] != "K" {
		t.Errorf("keys = %v, want [[⌘ K]]", search.Keys)
	}
	if search.KeyText != "⌘+K" {
		t.Errorf("key text = %q, want ⌘+K", search.KeyText)
	}
	if l.Buttons[1].KeyText != "" || l.Buttons[1].Keys != nil {
		t.Errorf("button without shortcuts has keys %v", l.Buttons[1].Keys)
	}
	if l.Buttons[2].KeyText != "⌃+<250> / ⎋" {
		t.Errorf("key text = %q", l.Buttons[2].KeyText)
	}

	f := NewApplicationFooter(ui.DefaultTheme(), keys, nil, nil)
	f.Update(FooterProps{Application: app})
	if got := f.Button("Search").GetLabel(); got != "Search  ⌘+K" {
		t.Errorf("button label = %q", got)
	}
	if got := f.Button("Plain").GetLabel(); got != "Plain" {
		t.Errorf("button label = %q", got)
	}
}

func TestFooterLeftRegion(t *testing.T) {
	theme := ui.DefaultTheme()
	f := NewApplicationFooter(theme, footerKeys(), nil, nil)
	f.Update(FooterProps{Item: pipelinesItem(), Application: appWith("Open")})

	l := f.Layout()
	if l.Icon != ui.Glyph(center.IconPipeline) {
		t.Errorf("icon = %q, want pipeline glyph", l.Icon)
	}
	if l.IconColor != theme.Accent(center.ColorBlue) {
		t.Errorf("icon color = %v, want blue accent", l.IconColor)
	}
	if l.Title != "Pipelines" {
		t.Errorf("title = %q", l.Title)
	}

	// icon, spacer, title, padding, buttons
	if f.GetItemCount() != 5 {
		t.Fatalf("footer has %d regions, want 5", f.GetItemCount())
	}
	icon, ok := f.GetItem(0).(*tview.TextView)
	if !ok || icon.GetText(true) != "⇶" {
		t.Errorf("first region = %T %q", f.GetItem(0), icon.GetText(true))
	}
	title, ok := f.GetItem(2).(*tview.TextView)
	if !ok || title.GetText(true) != "Pipelines" {
		t.Errorf("title region = %q", title.GetText(true))
	}
}

func TestFooterAccents(t *testing.T) {
	theme := ui.DefaultTheme()
	app := appWith("Open", "Delete")
	app.Buttons[1].DisplaySettings.Color = center.ColorRed

	l := BuildFooterLayout(theme, footerKeys(), FooterProps{Application: app, Item: pipelinesItem()})
	if l.Buttons[0].Accent != theme.Accent(center.ColorBlue) {
		t.Error("button without color should use the item accent")
	}
	if l.Buttons[1].Accent != theme.Accent(center.ColorRed) {
		t.Error("button color should override the item accent")
	}
}

func TestFooterSelectDispatchesOnceWithContext(t *testing.T) {
	d := &recordingDispatcher{}
	f := newFooter(d)

	item := pipelinesItem()
	app := appWith("Open", "Cancel")
	stack := center.NewStack()
	stack.Push(item, app)
	errs := &errorSink{}

	f.Update(FooterProps{
		Application:      app,
		Applications:     stack,
		FocusedItemIndex: center.IndexOf(2),
		Item:             item,
		Errors:           errs,
	})

	pressEnter(f.Button("Cancel"))

	if len(d.commands) != 1 {
		t.Fatalf("dispatched %d commands, want 1", len(d.commands))
	}
	cmd := d.commands[0]
	if cmd.Application != app {
		t.Error("command carries a different application")
	}
	if cmd.Applications != center.ApplicationStack(stack) {
		t.Error("command carries a different application stack")
	}
	if cmd.Item != item {
		t.Error("command carries a different item")
	}
	if idx, ok := cmd.FocusedItemIndex.Get(); !ok || idx != 2 {
		t.Errorf("focused index = %d, %v", idx, ok)
	}
	if cmd.Errors != center.ErrorReporter(errs) {
		t.Error("command carries a different error reporter")
	}
	if cmd.Button.Label != "Cancel" || len(cmd.Button.ActionTypes) != 1 {
		t.Errorf("button = %+v", cmd.Button)
	}
}

func TestFooterSelectUsesLatestRender(t *testing.T) {
	d := &recordingDispatcher{}
	f := newFooter(d)

	f.Update(FooterProps{Application: appWith("Open"), Item: &center.Item{UUID: "old", Title: "Old"}})
	btn := f.Button("Open")

	next := &center.Item{UUID: "new", Title: "New"}
	f.Update(FooterProps{Application: appWith("Open"), Item: next, FocusedItemIndex: center.NoIndex})
	if f.Button("Open") != btn {
		t.Fatal("button with the same label should be reused")
	}

	pressEnter(btn)
	if len(d.commands) != 1 || d.commands[0].Item != next {
		t.Fatalf("commands = %+v", d.commands)
	}
	if _, ok := d.commands[0].FocusedItemIndex.Get(); ok {
		t.Error("focused index should be absent")
	}
}

func TestFooterIdentityByLabel(t *testing.T) {
	f := newFooter(nil)
	f.Update(FooterProps{Application: appWith("Open", "Cancel")})
	open, cancel := f.Button("Open"), f.Button("Cancel")

	// Reordering keeps identities.
	f.Update(FooterProps{Application: appWith("Cancel", "Open")})
	if f.Button("Open") != open || f.Button("Cancel") != cancel {
		t.Error("buttons should keep identity across reorders")
	}
	if f.Focusables()[0] != tview.Primitive(cancel) {
		t.Error("display order should follow the new button order")
	}

	// Removed labels are dropped.
	f.Update(FooterProps{Application: appWith("Open")})
	if f.Button("Cancel") != nil {
		t.Error("removed button still cached")
	}
	f.Update(FooterProps{Application: appWith("Open", "Cancel")})
	if f.Button("Cancel") == cancel {
		t.Error("re-added button should be a new control")
	}
}

func TestFooterDuplicateLabels(t *testing.T) {
	d := &recordingDispatcher{}
	f := newFooter(d)
	f.Update(FooterProps{Application: appWith("Open", "Open")})

	buttons := f.Focusables()
	if len(buttons) != 2 {
		t.Fatalf("got %d buttons, want 2", len(buttons))
	}
	if buttons[0] == buttons[1] {
		t.Error("duplicate labels must not share a control")
	}
	if !f.Press("Open") || len(d.commands) != 1 {
		t.Errorf("Press() dispatched %d commands", len(d.commands))
	}
}

func TestFooterTooltipOnFocus(t *testing.T) {
	f := newFooter(nil)
	var tips []string
	f.SetOnTooltip(func(text string) { tips = append(tips, text) })
	f.Update(FooterProps{Application: appWith("Open")})

	f.Button("Open").Focus(func(tview.Primitive) {})
	if len(tips) != 1 || tips[0] != "Open tooltip" {
		t.Errorf("tooltips = %v", tips)
	}
}

func TestFooterWithoutDispatcher(t *testing.T) {
	f := newFooter(nil)
	f.Update(FooterProps{Application: appWith("Open")})
	if !f.Press("Open") {
		t.Error("Press() should find the button")
	}
}

func TestFooterTitleIsSanitized(t *testing.T) {
	item := pipelinesItem()
	item.Title = "Pipe\x1blines\n  prod\U0001F3FB"

	f := newFooter(nil)
	f.Update(FooterProps{Application: appWith("Open"), Item: item})

	if got := f.Layout().Title; got != "Pipelines prod" {
		t.Errorf("Title = %q, want %q", got, "Pipelines prod")
	}
	title := f.GetItem(2).(*tview.TextView)
	if got := title.GetText(true); got != "Pipelines prod" {
		t.Errorf("rendered title = %q", got)
	}
}
