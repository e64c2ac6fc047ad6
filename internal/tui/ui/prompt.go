package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// PromptMode indicates the type of prompt.
type PromptMode int

const (
	PromptSearch PromptMode = iota
	PromptCommand
)

// Prompt is the search/command input bar. In search mode every edit is
// reported so results update as the user types.
type Prompt struct {
	*tview.InputField
	theme    *Theme
	mode     PromptMode
	onChange func(text string)
	onSubmit func(mode PromptMode, text string)
	onCancel func()
}

// NewPrompt creates a new prompt input bar in search mode.
func NewPrompt(theme *Theme) *Prompt {
	input := tview.NewInputField()
	input.SetBorder(true)
	input.SetBorderColor(theme.PromptBorderColor)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.MenuKeyColor)
	input.SetPlaceholder("Search items, or : for commands")
	input.SetPlaceholderStyle(tcell.StyleDefault.Foreground(theme.MutedColor).Background(theme.BgColor))

	p := &Prompt{
		InputField: input,
		theme:      theme,
	}

	input.SetChangedFunc(func(text string) {
		if p.mode == PromptSearch && p.onChange != nil {
			p.onChange(text)
		}
	})
	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			if p.onSubmit != nil {
				p.onSubmit(p.mode, p.GetText())
			}
			if p.mode == PromptCommand {
				p.Activate(PromptSearch)
			}
		case tcell.KeyEscape:
			mode := p.mode
			p.Activate(PromptSearch)
			if mode == PromptSearch && p.onCancel != nil {
				p.onCancel()
			}
		}
	})

	p.Activate(PromptSearch)
	return p
}

// SetOnChange sets the callback for search text edits.
func (p *Prompt) SetOnChange(fn func(text string)) {
	p.onChange = fn
}

// SetOnSubmit sets the callback when the prompt is submitted.
func (p *Prompt) SetOnSubmit(fn func(mode PromptMode, text string)) {
	p.onSubmit = fn
}

// SetOnCancel sets the callback when Escape is pressed in search mode.
func (p *Prompt) SetOnCancel(fn func()) {
	p.onCancel = fn
}

// Activate switches the prompt mode and clears the text.
func (p *Prompt) Activate(mode PromptMode) {
	p.mode = mode
	switch mode {
	case PromptCommand:
		p.SetLabel(":")
		p.SetTitle(" Command ")
	case PromptSearch:
		p.SetLabel("> ")
		p.SetTitle(" Search ")
	}
	p.SetText("")
}

// Mode returns the current prompt mode.
func (p *Prompt) Mode() PromptMode {
	return p.mode
}
