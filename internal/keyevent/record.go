// Package keyevent defines the immutable record type for captured keystrokes.
//
// IMPORTANT: records are only ever created from key events the windowing
// toolkit delivers to this application's focused typing widget. Nothing in
// this package (or this program) installs a global keyboard hook.
package keyevent

import (
	"time"
	"unicode"
	"unicode/utf8"
)

// TimeLayout is the wall-clock format used for record timestamps,
// millisecond precision.
const TimeLayout = "2006-01-02 15:04:05.000"

// Record is one captured keystroke. Records are immutable once created
// and ordered strictly by capture order.
type Record struct {
	// Time is the wall-clock capture time.
	Time time.Time

	// Keysym is the logical key name assigned by the toolkit,
	// e.g. "a", "Return", "BackSpace".
	Keysym string

	// Char is the printable character produced by the key, or ""
	// if the key has no printable representation.
	Char string
}

// New builds a Record, forcing Char to "" unless it is a single
// printable character.
func New(t time.Time, keysym, char string) Record {
	if !Printable(char) {
		char = ""
	}
	return Record{Time: t, Keysym: keysym, Char: char}
}

// Timestamp returns the capture time formatted with TimeLayout.
func (r Record) Timestamp() string {
	return r.Time.Format(TimeLayout)
}

// Printable reports whether s is exactly one printable character.
// Tabs, newlines and control characters do not qualify.
func Printable(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		return false
	}
	return unicode.IsPrint(r)
}
