// Package keysym translates toolkit key names into X11-style keysyms and
// the printable character a key press produces.
//
// Gio reports key names as glyphs ("⏎", "⌫") or bare runes ("A", "1").
// The saved log format wants the traditional names ("Return", "BackSpace")
// and a printable character column, so every captured key goes through
// Translate before it becomes a record.
package keysym

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"gioui.org/io/key"
)

// specials maps Gio's named keys to X11 keysym names. None of these
// produce a printable character.
var specials = map[key.Name]string{
	key.NameReturn:         "Return",
	key.NameEnter:          "KP_Enter",
	key.NameEscape:         "Escape",
	key.NameTab:            "Tab",
	key.NameDeleteBackward: "BackSpace",
	key.NameDeleteForward:  "Delete",
	key.NameLeftArrow:      "Left",
	key.NameRightArrow:     "Right",
	key.NameUpArrow:        "Up",
	key.NameDownArrow:      "Down",
	key.NameHome:           "Home",
	key.NameEnd:            "End",
	key.NamePageUp:         "Prior",
	key.NamePageDown:       "Next",
	key.NameShift:          "Shift_L",
	key.NameCtrl:           "Control_L",
	key.NameAlt:            "Alt_L",
	key.NameSuper:          "Super_L",
	key.NameCommand:        "Super_L",
}

// punctNames maps printable punctuation to its X11 keysym name.
var punctNames = map[rune]string{
	'!': "exclam", '"': "quotedbl", '#': "numbersign", '$': "dollar",
	'%': "percent", '&': "ampersand", '\'': "apostrophe", '(': "parenleft",
	')': "parenright", '*': "asterisk", '+': "plus", ',': "comma",
	'-': "minus", '.': "period", '/': "slash", ':': "colon",
	';': "semicolon", '<': "less", '=': "equal", '>': "greater",
	'?': "question", '@': "at", '[': "bracketleft", '\\': "backslash",
	']': "bracketright", '^': "asciicircum", '_': "underscore",
	'`': "grave", '{': "braceleft", '|': "bar", '}': "braceright",
	'~': "asciitilde",
}

// usShift maps unshifted US-layout keys to the character produced with
// Shift held. Gio reports the unshifted name for these keys.
var usShift = map[rune]rune{
	'1': '!', '2': '@', '3': '#', '4': '$', '5': '%',
	'6': '^', '7': '&', '8': '*', '9': '(', '0': ')',
	'-': '_', '=': '+', '[': '{', ']': '}', '\\': '|',
	';': ':', '\'': '"', ',': '<', '.': '>', '/': '?',
	'`': '~',
}

// Translate converts a toolkit key name and modifier state into a keysym
// and the printable character the press produces ("" for non-printable
// keys). For printable keys the keysym follows X11 convention: letters
// and digits name themselves, punctuation gets its spelled-out name.
func Translate(name key.Name, mods key.Modifiers) (keysym, char string) {
	if name == key.NameSpace {
		return "space", " "
	}
	if sym, ok := specials[name]; ok {
		return sym, ""
	}

	s := string(name)
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError {
		// Multi-rune name we don't know (e.g. "F1"): pass it through.
		return s, ""
	}

	shift := mods.Contain(key.ModShift)
	switch {
	case unicode.IsLetter(r):
		if shift {
			c := strings.ToUpper(s)
			return c, c
		}
		c := strings.ToLower(s)
		return c, c
	case unicode.IsPrint(r):
		if shift {
			if sh, ok := usShift[r]; ok {
				r = sh
			}
		}
		c := string(r)
		if name, ok := punctNames[r]; ok {
			return name, c
		}
		return c, c
	default:
		return s, ""
	}
}
