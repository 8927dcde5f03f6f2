// Package glyph holds the symbols dreamlog draws in a terminal.
package glyph

import (
	"fmt"
	"strings"

	"tableflip.dev/dreamlog/pkg/dream"
)

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

func (g Glyph) String() string {
	return g.Symbol
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	italicCode    = 3
	underlineCode = 4
)

func wrap(code int, in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, code, in, escape, resetCode)
}

func Bold(in string) string      { return wrap(boldCode, in) }
func Italic(in string) string    { return wrap(italicCode, in) }
func Underline(in string) string { return wrap(underlineCode, in) }

// HeatGlyphs are the heatmap cells for levels 0 through 4.
func HeatGlyphs() []Glyph {
	return []Glyph{
		{Key: "0", Symbol: "·", Meaning: "no dreams"},
		{Key: "1", Symbol: "░", Meaning: "hazy"},
		{Key: "2", Symbol: "▒", Meaning: "recorded"},
		{Key: "3", Symbol: "▓", Meaning: "clear"},
		{Key: "4", Symbol: "█", Meaning: "vivid or lucid"},
	}
}

// Heat returns the cell for level, clamped to the known range.
func Heat(level int) string {
	g := HeatGlyphs()
	if level < 0 {
		level = 0
	}
	if level >= len(g) {
		level = len(g) - 1
	}
	return g[level].Symbol
}

const (
	DotFilled = "●"
	DotEmpty  = "○"
	Unset     = "–"
)

// Rating draws r as five dots, e.g. "●●●○○"; Unset when r is nil.
func Rating(r *int) string {
	if r == nil {
		return Unset
	}
	n := *r
	if n < 0 {
		n = 0
	}
	if n > dream.MaxRating {
		n = dream.MaxRating
	}
	return strings.Repeat(DotFilled, n) + strings.Repeat(DotEmpty, dream.MaxRating-n)
}

// Mood returns the emoji for m, or a blank of the same width when unset.
func Mood(m *dream.Mood) string {
	if m == nil || !m.Valid() {
		return "  "
	}
	return m.Emoji()
}

// Day marks a calendar day that has dreams.
const Day = "✦"

// Tag prefixes tag names.
func Tag(t string) string {
	return "#" + t
}
