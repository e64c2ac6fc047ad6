package keycode

import (
	"fmt"
	"strings"
)

// Code is a browser-style numeric key code as stored in button shortcut definitions.
type Code int

const (
	Backspace Code = 8
	Tab       Code = 9
	Enter     Code = 13
	Shift     Code = 16
	Control   Code = 17
	Alt       Code = 18
	Escape    Code = 27
	Space     Code = 32
	Left      Code = 37
	Up        Code = 38
	Right     Code = 39
	Down      Code = 40
	Delete    Code = 46
	Digit0    Code = 48
	Digit9    Code = 57
	A         Code = 65
	K         Code = 75
	Z         Code = 90
	Meta      Code = 91
	F1        Code = 112
	F12       Code = 123
)

var symbols = map[Code]string{
	Backspace: "⌫",
	Tab:       "⇥",
	Enter:     "↵",
	Shift:     "⇧",
	Control:   "⌃",
	Alt:       "⌥",
	Escape:    "⎋",
	Space:     "␣",
	Left:      "←",
	Up:        "↑",
	Right:     "→",
	Down:      "↓",
	Delete:    "⌦",
	Meta:      "⌘",
}

func init() {
	for c := Digit0; c <= Digit9; c++ {
		symbols[c] = string(rune('0' + c - Digit0))
	}
	for c := A; c <= Z; c++ {
		symbols[c] = string(rune('A' + c - A))
	}
	for c := F1; c <= F12; c++ {
		symbols[c] = fmt.Sprintf("F%d", c-F1+1)
	}
}

// Symbol returns the display glyph for a key code from the built-in table.
// Codes missing from the table render as "<code>".
func Symbol(c Code) string {
	if s, ok := symbols[c]; ok {
		return s
	}
	return fallback(c)
}

func fallback(c Code) string {
	return fmt.Sprintf("<%d>", int(c))
}

// Table layers user overrides on top of the built-in symbol table.
type Table struct {
	overrides map[Code]string
}

// NewTable creates a symbol table. A nil or empty overrides map yields the built-in table.
func NewTable(overrides map[Code]string) *Table {
	t := &Table{overrides: make(map[Code]string, len(overrides))}
	for c, s := range overrides {
		if strings.TrimSpace(s) == "" {
			continue
		}
		t.overrides[c] = s
	}
	return t
}

// Symbol resolves a code through the overrides, then the built-in table.
// Safe to call on a nil receiver.
func (t *Table) Symbol(c Code) string {
	if t != nil {
		if s, ok := t.overrides[c]; ok {
			return s
		}
	}
	return Symbol(c)
}

// Symbols maps every sequence through the table, preserving sequence and key order.
func (t *Table) Symbols(sequences [][]Code) [][]string {
	if len(sequences) == 0 {
		return nil
	}
	out := make([][]string, 0, len(sequences))
	for _, seq := range sequences {
		if len(seq) == 0 {
			continue
		}
		keys := make([]string, len(seq))
		for i, c := range seq {
			keys[i] = t.Symbol(c)
		}
		out = append(out, keys)
	}
	return out
}
