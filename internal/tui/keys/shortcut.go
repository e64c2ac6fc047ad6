package keys

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/cmdc/internal/keycode"
)

var namedKeys = map[keycode.Code]tcell.Key{
	keycode.Backspace: tcell.KeyBackspace2,
	keycode.Tab:       tcell.KeyTab,
	keycode.Enter:     tcell.KeyEnter,
	keycode.Escape:    tcell.KeyEscape,
	keycode.Left:      tcell.KeyLeft,
	keycode.Up:        tcell.KeyUp,
	keycode.Right:     tcell.KeyRight,
	keycode.Down:      tcell.KeyDown,
	keycode.Delete:    tcell.KeyDelete,
}

// MatchShortcut reports whether ev is the key chord described by seq: any
// modifier codes followed by one key. Terminals report Meta as Alt, so Meta
// accepts either modifier.
func MatchShortcut(ev *tcell.EventKey, seq []keycode.Code) bool {
	if ev == nil || len(seq) == 0 {
		return false
	}
	var want tcell.ModMask
	var meta bool
	key := keycode.Code(-1)
	for _, c := range seq {
		switch c {
		case keycode.Shift:
			want |= tcell.ModShift
		case keycode.Control:
			want |= tcell.ModCtrl
		case keycode.Alt:
			want |= tcell.ModAlt
		case keycode.Meta:
			meta = true
		default:
			if key >= 0 {
				return false
			}
			key = c
		}
	}
	if key < 0 {
		return false
	}

	mods := ev.Modifiers()
	if meta {
		if mods&(tcell.ModMeta|tcell.ModAlt) == 0 {
			return false
		}
		mods &^= tcell.ModMeta | tcell.ModAlt
		want &^= tcell.ModAlt
	}
	if !matchKey(ev, key, want&tcell.ModCtrl != 0) {
		return false
	}
	// Shifted letters arrive as upper-case runes without ModShift.
	if ev.Key() == tcell.KeyRune {
		mods &^= tcell.ModShift
		want &^= tcell.ModShift
	}
	// Ctrl+letter may arrive as a control key without ModCtrl.
	if key >= keycode.A && key <= keycode.Z && isCtrlLetter(ev.Key()) {
		mods |= tcell.ModCtrl
	}
	return mods == want
}

func matchKey(ev *tcell.EventKey, key keycode.Code, ctrl bool) bool {
	if k, ok := namedKeys[key]; ok {
		if key == keycode.Backspace {
			return ev.Key() == tcell.KeyBackspace || ev.Key() == tcell.KeyBackspace2
		}
		return ev.Key() == k
	}
	switch {
	case key == keycode.Space:
		return ev.Key() == tcell.KeyRune && ev.Rune() == ' '
	case key >= keycode.F1 && key <= keycode.F12:
		return ev.Key() == tcell.KeyF1+tcell.Key(key-keycode.F1)
	case key >= keycode.A && key <= keycode.Z:
		if ctrl {
			if ev.Key() == tcell.KeyCtrlA+tcell.Key(key-keycode.A) {
				return true
			}
		}
		return ev.Key() == tcell.KeyRune && unicode.ToUpper(ev.Rune()) == rune('A'+key-keycode.A)
	case key >= keycode.Digit0 && key <= keycode.Digit9:
		return ev.Key() == tcell.KeyRune && ev.Rune() == rune('0'+key-keycode.Digit0)
	}
	return false
}

func isCtrlLetter(k tcell.Key) bool {
	return k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ
}

// MatchAny reports whether ev matches any of the sequences.
func MatchAny(ev *tcell.EventKey, sequences [][]keycode.Code) bool {
	for _, seq := range sequences {
		if MatchShortcut(ev, seq) {
			return true
		}
	}
	return false
}
