// Package document renders order paperwork: Code39 chassis barcodes and
// the customer order-confirmation PDF.
package document

import (
	"strings"

	"github.com/go-pdf/fpdf"
)

// Code39 element patterns, nine elements per character alternating
// bar/space starting with a bar; 'w' marks a wide element.
var code39Patterns = map[rune]string{
	'0': "nnnwwnwnn", '1': "wnnwnnnnw", '2': "nnwwnnnnw", '3': "wnwwnnnnn",
	'4': "nnnwwnnnw", '5': "wnnwwnnnn", '6': "nnwwwnnnn", '7': "nnnwnnwnw",
	'8': "wnnwnnwnn", '9': "nnwwnnwnn",
	'A': "wnnnnwnnw", 'B': "nnwnnwnnw", 'C': "wnwnnwnnn", 'D': "nnnnwwnnw",
	'E': "wnnnwwnnn", 'F': "nnwnwwnnn", 'G': "nnnnnwwnw", 'H': "wnnnnwwnn",
	'I': "nnwnnwwnn", 'J': "nnnnwwwnn", 'K': "wnnnnnnww", 'L': "nnwnnnnww",
	'M': "wnwnnnnwn", 'N': "nnnnwnnww", 'O': "wnnnwnnwn", 'P': "nnwnwnnwn",
	'Q': "nnnnnnwww", 'R': "wnnnnnwwn", 'S': "nnwnnnwwn", 'T': "nnnnwnwwn",
	'U': "wwnnnnnnw", 'V': "nwwnnnnnw", 'W': "wwwnnnnnn", 'X': "nwnnwnnnw",
	'Y': "wwnnwnnnn", 'Z': "nwwnwnnnn",
	'-': "nwnnnnwnw", '.': "wwnnnnwnn", ' ': "nwwnnnwnn", '$': "nwnwnwnnn",
	'/': "nwnwnnnwn", '+': "nwnnnwnwn", '%': "nnnwnwnwn", '*': "nwnnwnwnn",
}

// Width-fitting parameters: candidate bar-unit widths walk down from
// maxUnitWidth in fitStep decrements to minUnitWidth.
const (
	maxUnitWidth = 1.0
	minUnitWidth = 0.6
	fitStep      = 0.05
	wideRatio    = 3.0
)

// Sanitize upper-cases the value and drops every rune outside the Code39
// alphabet. The start/stop character is also dropped; Encode adds it.
func Sanitize(value string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(value) {
		if r == '*' {
			continue
		}
		if _, ok := code39Patterns[r]; ok {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Encode sanitizes the value and wraps it in the start/stop character.
// An input with no encodable runes yields "" rather than a bare "**".
func Encode(value string) string {
	clean := Sanitize(value)
	if clean == "" {
		return ""
	}
	return "*" + clean + "*"
}

// charWidth is one encoded character's width in bar units: six narrow and
// three wide elements plus the inter-character gap.
const charWidth = 6 + 3*wideRatio + 1

// EstimateWidth is the rendered width of an encoded value at a given bar
// unit, in the same length units as the unit itself.
func EstimateWidth(encoded string, unit float64) float64 {
	return float64(len(encoded)) * charWidth * unit
}

// FitUnitWidth picks the largest candidate bar unit at which the encoded
// value fits maxWidth. Candidates step down from 1.0 by 0.05 to a floor of
// 0.6; if none fits, the floor is returned and the caller overflows.
func FitUnitWidth(encoded string, maxWidth float64) float64 {
	for unit := maxUnitWidth; unit > minUnitWidth; unit -= fitStep {
		if EstimateWidth(encoded, unit) <= maxWidth {
			return unit
		}
	}
	return minUnitWidth
}

// Draw renders the encoded value as filled bars at (x, y). The caller
// picks the unit, usually via FitUnitWidth against the available width.
func Draw(pdf *fpdf.Fpdf, encoded string, x, y, height, unit float64) {
	pdf.SetFillColor(0, 0, 0)
	cursor := x
	for _, r := range encoded {
		pattern, ok := code39Patterns[r]
		if !ok {
			continue
		}
		for i, elem := range pattern {
			width := unit
			if elem == 'w' {
				width = unit * wideRatio
			}
			// Even elements are bars, odd ones spaces.
			if i%2 == 0 {
				pdf.Rect(cursor, y, width, height, "F")
			}
			cursor += width
		}
		cursor += unit // inter-character gap
	}
}
