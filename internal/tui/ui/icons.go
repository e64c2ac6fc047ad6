package ui

import "github.com/matheus3301/cmdc/internal/center"

var glyphs = map[center.Icon]string{
	center.IconApplication: "◆",
	center.IconBlock:       "▦",
	center.IconBranch:      "⎇",
	center.IconChat:        "✉",
	center.IconDocument:    "✎",
	center.IconFile:        "▤",
	center.IconFolder:      "▣",
	center.IconPipeline:    "⇶",
	center.IconRun:         "▶",
	center.IconProject:     "◈",
	center.IconSettings:    "⚙",
	center.IconTerminal:    "❯",
	center.IconTrigger:     "◷",
}

// Glyph returns the terminal glyph for an icon.
func Glyph(ic center.Icon) string {
	if g, ok := glyphs[ic]; ok {
		return g
	}
	return "•"
}

// IconOf resolves the glyph of anything iconable. A nil value has no icon.
func IconOf(v center.Iconable) string {
	if v == nil {
		return ""
	}
	return Glyph(v.Icon())
}
