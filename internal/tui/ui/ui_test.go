package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/matheus3301/cmdc/internal/center"
	"github.com/matheus3301/cmdc/internal/keycode"
	"github.com/rivo/tview"
)

func TestKeyTextFormat(t *testing.T) {
	kt := NewKeyText(keycode.NewTable(nil), "", "")

	tests := []struct {
		name string
		seqs [][]keycode.Code
		want string
	}{
		{"none", nil, ""},
		{"single", [][]keycode.Code{{keycode.Escape}}, "⎋"},
		{"chord", [][]keycode.Code{{keycode.Meta, keycode.K}}, "⌘+K"},
		{"alternatives", [][]keycode.Code{{keycode.Meta, keycode.Enter}, {keycode.Control, keycode.Enter}}, "⌘+↵ / ⌃+↵"},
		{"unknown code", [][]keycode.Code{{keycode.Meta, 250}}, "⌘+<250>"},
		{"empty sequence skipped", [][]keycode.Code{{}, {keycode.Tab}}, "⇥"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kt.Format(tt.seqs); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyTextOverridesAndSeparators(t *testing.T) {
	kt := NewKeyText(keycode.NewTable(map[keycode.Code]string{keycode.Meta: "Cmd"}), "-", " | ")
	got := kt.Format([][]keycode.Code{{keycode.Meta, keycode.K}, {keycode.F1}})
	if got != "Cmd-K | F1" {
		t.Errorf("Format() = %q", got)
	}

	var nilKT *KeyText
	if got := nilKT.Format([][]keycode.Code{{keycode.Shift, keycode.A}}); got != "⇧+A" {
		t.Errorf("nil KeyText Format() = %q", got)
	}
}

func TestThemeAccent(t *testing.T) {
	theme := DefaultTheme()
	if theme.Accent(center.ColorBlue) != theme.Accents[center.ColorBlue] {
		t.Error("blue accent not resolved")
	}
	if theme.Accent("") != theme.FgColor || theme.Accent("chartreuse") != theme.FgColor {
		t.Error("unknown accents should fall back to the foreground color")
	}
}

func TestGlyph(t *testing.T) {
	if Glyph(center.IconPipeline) != "⇶" {
		t.Errorf("pipeline glyph = %q", Glyph(center.IconPipeline))
	}
	if Glyph("nope") != "•" {
		t.Errorf("fallback glyph = %q", Glyph("nope"))
	}
	if IconOf(nil) != "" {
		t.Error("nil iconable should have no glyph")
	}
	if IconOf(center.ObjectTrigger) != "◷" {
		t.Errorf("trigger glyph = %q", IconOf(center.ObjectTrigger))
	}
}

func TestCrumbsLabels(t *testing.T) {
	c := NewCrumbs(DefaultTheme(), "cmdc")
	item := &center.Item{Title: "Pipelines"}
	frames := []center.Frame{
		{Item: item, Application: &center.Application{Title: "Pipelines"}},
		{Item: item, Application: &center.Application{Title: "Confirm"}},
		{},
	}
	got := c.Labels(frames)
	want := []string{"cmdc", "Pipelines", "Pipelines: Confirm", "?"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Labels() = %v, want %v", got, want)
	}

	c.Update(frames[:1])
	if text := c.GetText(true); !strings.Contains(text, "Pipelines") {
		t.Errorf("rendered crumbs = %q", text)
	}
}

func TestPagesStack(t *testing.T) {
	p := NewPages()
	var changes [][]string
	p.SetOnChange(func(stack []string) { changes = append(changes, stack) })
	p.Add("items", tview.NewBox())
	p.Add("help", tview.NewBox())

	p.Reset("items")
	p.Push("help")
	p.Push("help")
	if p.Current() != "help" || len(p.Stack()) != 2 {
		t.Fatalf("stack = %v", p.Stack())
	}
	if got := p.Pop(); got != "help" {
		t.Errorf("Pop() = %q", got)
	}
	if got := p.Pop(); got != "" {
		t.Errorf("popping the last page = %q, want empty", got)
	}
	if p.Current() != "items" {
		t.Errorf("Current() = %q", p.Current())
	}
	if len(changes) != 3 {
		t.Errorf("onChange fired %d times, want 3", len(changes))
	}
}

func TestFlashModelReport(t *testing.T) {
	f := NewFlashModel()
	f.Report(nil)
	if f.GetMessage() != nil {
		t.Error("nil error should not flash")
	}
	f.Report(errors.New("boom"))
	msg := f.GetMessage()
	if msg == nil || msg.Text != "boom" || msg.Level != FlashErr {
		t.Errorf("message = %+v", msg)
	}
	f.Tooltip("Navigate to Files")
	if msg := <-f.Watch(); msg.Text != "boom" {
		t.Errorf("first watched message = %q", msg.Text)
	}
	if msg := f.GetMessage(); msg.Text != "Navigate to Files" || msg.Level != FlashInfo {
		t.Errorf("tooltip message = %+v", msg)
	}
}

func TestMenuText(t *testing.T) {
	m := NewMenu(DefaultTheme())
	m.Update([]MenuHint{{Key: "Enter", Description: "Open"}, {Key: ":", Description: "Command"}})
	text := m.GetText(true)
	if !strings.Contains(text, "<Enter> Open") || !strings.Contains(text, "<:> Command") {
		t.Errorf("menu text = %q", text)
	}
}
