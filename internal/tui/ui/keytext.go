package ui

import (
	"strings"

	"github.com/matheus3301/cmdc/internal/keycode"
)

// KeyText formats keyboard shortcut sequences for display.
type KeyText struct {
	Table             *keycode.Table
	Separator         string
	SequenceSeparator string
}

// NewKeyText creates a formatter. Empty separators use "+" and " / ".
func NewKeyText(table *keycode.Table, sep, seqSep string) *KeyText {
	if sep == "" {
		sep = "+"
	}
	if seqSep == "" {
		seqSep = " / "
	}
	return &KeyText{Table: table, Separator: sep, SequenceSeparator: seqSep}
}

// Groups returns the symbols of each sequence in order.
func (k *KeyText) Groups(sequences [][]keycode.Code) [][]string {
	if k == nil {
		return keycode.NewTable(nil).Symbols(sequences)
	}
	return k.Table.Symbols(sequences)
}

// Format joins each sequence's symbols with the separator and the sequences
// with the sequence separator.
func (k *KeyText) Format(sequences [][]keycode.Code) string {
	if k == nil {
		k = NewKeyText(nil, "", "")
	}
	groups := k.Groups(sequences)
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, strings.Join(g, k.Separator))
	}
	return strings.Join(parts, k.SequenceSeparator)
}
