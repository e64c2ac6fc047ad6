package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/cmdc/internal/center"
)

// Theme holds color constants for the TUI.
type Theme struct {
	BgColor           tcell.Color
	FgColor           tcell.Color
	MutedColor        tcell.Color
	BorderColor       tcell.Color
	BorderFocusColor  tcell.Color
	ListCursorFg      tcell.Color
	ListCursorBg      tcell.Color
	CrumbActiveFg     tcell.Color
	CrumbActiveBg     tcell.Color
	CrumbInactiveFg   tcell.Color
	CrumbInactiveBg   tcell.Color
	MenuKeyColor      tcell.Color
	TitleColor        tcell.Color
	CounterColor      tcell.Color
	FlashInfoColor    tcell.Color
	FlashWarnColor    tcell.Color
	FlashErrColor     tcell.Color
	PromptBorderColor tcell.Color
	ButtonFg          tcell.Color
	Accents           map[center.Color]tcell.Color
}

// DefaultTheme returns a k9s-inspired dark theme.
func DefaultTheme() *Theme {
	return &Theme{
		BgColor:           tcell.ColorBlack,
		FgColor:           tcell.ColorCadetBlue,
		MutedColor:        tcell.ColorSlateGray,
		BorderColor:       tcell.ColorDodgerBlue,
		BorderFocusColor:  tcell.ColorLightSkyBlue,
		ListCursorFg:      tcell.ColorBlack,
		ListCursorBg:      tcell.ColorAqua,
		CrumbActiveFg:     tcell.ColorBlack,
		CrumbActiveBg:     tcell.ColorOrange,
		CrumbInactiveFg:   tcell.ColorBlack,
		CrumbInactiveBg:   tcell.ColorAqua,
		MenuKeyColor:      tcell.ColorDodgerBlue,
		TitleColor:        tcell.ColorFuchsia,
		CounterColor:      tcell.ColorPapayaWhip,
		FlashInfoColor:    tcell.ColorNavajoWhite,
		FlashWarnColor:    tcell.ColorOrange,
		FlashErrColor:     tcell.ColorOrangeRed,
		PromptBorderColor: tcell.ColorDodgerBlue,
		ButtonFg:          tcell.ColorBlack,
		Accents: map[center.Color]tcell.Color{
			center.ColorBlue:   tcell.ColorDodgerBlue,
			center.ColorGreen:  tcell.ColorLimeGreen,
			center.ColorPurple: tcell.ColorMediumPurple,
			center.ColorPink:   tcell.ColorHotPink,
			center.ColorRed:    tcell.ColorOrangeRed,
			center.ColorYellow: tcell.ColorGold,
			center.ColorSky:    tcell.ColorLightSkyBlue,
			center.ColorGray:   tcell.ColorSlateGray,
		},
	}
}

// Accent resolves an accent identifier. Unknown or empty identifiers use the
// foreground color.
func (t *Theme) Accent(c center.Color) tcell.Color {
	if col, ok := t.Accents[c]; ok {
		return col
	}
	return t.FgColor
}

// ColorName returns a tview-compatible color tag for c.
func ColorName(c tcell.Color) string {
	for name, val := range tcell.ColorNames {
		if val == c {
			return name
		}
	}
	return fmt.Sprintf("#%06x", c.Hex())
}
