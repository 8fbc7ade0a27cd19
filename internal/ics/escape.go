package ics

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxLineOctets is the longest physical line Fold emits, including the
// leading space of a continuation line.
const MaxLineOctets = 74

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	"\n", `\n`,
)

// Escape encodes a TEXT value. Line breaks of any style become the two
// characters `\n`.
func Escape(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return textEscaper.Replace(s)
}

// Fold splits a logical line into physical lines of at most MaxLineOctets
// octets joined by CRLF and a single space. A cut never lands inside a
// multi-byte rune.
func Fold(line string) string {
	if len(line) <= MaxLineOctets {
		return line
	}
	var b strings.Builder
	b.Grow(len(line) + len(line)/MaxLineOctets*3)

	rest := line
	limit := MaxLineOctets
	for len(rest) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(rest[cut]) {
			cut--
		}
		if cut == 0 {
			// a single rune wider than the limit; emit it whole
			_, size := utf8.DecodeRuneInString(rest)
			cut = size
		}
		b.WriteString(rest[:cut])
		b.WriteString("\r\n ")
		rest = rest[cut:]
		limit = MaxLineOctets - 1
	}
	b.WriteString(rest)
	return b.String()
}

// Unfold reverses Fold.
func Unfold(folded string) string {
	return strings.ReplaceAll(folded, "\r\n ", "")
}

// formatRate prints a rate with at least two decimals: 20 -> 20.00, 18.125 -> 18.125.
func formatRate(rate float64) string {
	s := strconv.FormatFloat(rate, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	switch {
	case dot < 0:
		return s + ".00"
	case len(s)-dot-1 < 2:
		return s + strings.Repeat("0", 2-(len(s)-dot-1))
	}
	return s
}
