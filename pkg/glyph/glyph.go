// Package glyph composes countdown display strings from named symbols.
//
// A display is one icon glyph followed by the digits of MMSS, minutes and
// seconds each zero-padded to two digits. Every digit glyph is looked up by
// the digit and its place counted from the right:
//
//	place 1  "<d>_rightmost"
//	place 2  "<d>_right_align"
//	place 3  "<d>_with_colon"
//	place 4  "<d>_"
//
// Places above 4 wrap with place%4, where a result of 1 selects place 4.
package glyph

import (
	"strconv"
	"strings"
)

// Symbol is a renderable glyph, already in the form the chat platform
// expects inside message text.
type Symbol string

// Provider resolves glyph names to symbols.
// Implementations return a placeholder symbol for unknown names rather
// than failing, so a display can always be composed.
type Provider interface {
	Lookup(name string) Symbol
}

// DefaultIcon is the glyph name of the timer icon.
const DefaultIcon = "hourglass"

// Digit suffixes by place.
const (
	SuffixRightmost   = "_rightmost"
	SuffixRightAlign  = "_right_align"
	SuffixLeftAlign   = "_with_colon"
	SuffixCenterAlign = "_"
)

var suffixes = map[int]string{
	1: SuffixRightmost,
	2: SuffixRightAlign,
	3: SuffixLeftAlign,
	4: SuffixCenterAlign,
}

// Missing returns the placeholder symbol for a name no provider knows.
func Missing(name string) Symbol {
	return Symbol(":" + name + ":")
}

// DigitPlace maps a digit place (1 = rightmost) onto the four glyph
// alignments. Places above 4 use place%4, with 1 mapped to 4. A place
// that is a multiple of 4 maps to 0, which has no alignment.
func DigitPlace(place int) int {
	if place > 4 {
		place %= 4
		if place == 1 {
			place = 4
		}
	}
	return place
}

// DigitName returns the glyph name for digit d at the given place.
// Places without an alignment yield the bare digit.
func DigitName(d byte, place int) string {
	return string(d) + suffixes[DigitPlace(place)]
}

// Digits returns seconds as MMSS. Minutes are not capped, so durations of
// 100 minutes or more produce more than four digits.
func Digits(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes, secs := seconds/60, seconds%60

	var b strings.Builder
	if minutes < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(minutes))
	if secs < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(secs))
	return b.String()
}

// Names returns the glyph names for the digits of seconds, left to right.
func Names(seconds int) []string {
	digits := Digits(seconds)
	names := make([]string, len(digits))
	for i := range digits {
		place := len(digits) - i
		names[i] = DigitName(digits[i], place)
	}
	return names
}
