// Package table lays out plain-text columns for the deck listing.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Options controls column layout.
type Options struct {
	Alignments []Alignment
	// MaxWidth caps each column's display width; 0 means unbounded. Cells
	// wider than the cap are cut with an ellipsis.
	MaxWidth []int
	Gap      int
}

// Format returns the rows padded according to the widest entry in each
// column. Widths are measured in terminal cells so wide runes line up.
func Format(rows [][]string, alignments []Alignment) []string {
	return FormatWith(rows, Options{Alignments: alignments})
}

// FormatWith is Format with explicit options.
func FormatWith(rows [][]string, opts Options) []string {
	if len(rows) == 0 {
		return nil
	}
	gap := opts.Gap
	if gap <= 0 {
		gap = 2
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	cells := make([][]string, len(rows))
	widths := make([]int, colCount)
	for r, row := range rows {
		cells[r] = make([]string, colCount)
		for c := range colCount {
			cell := ""
			if c < len(row) {
				cell = clip(row[c], limit(opts.MaxWidth, c))
			}
			cells[r][c] = cell
			if w := runewidth.StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	sep := strings.Repeat(" ", gap)
	out := make([]string, len(rows))
	for i, row := range cells {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString(sep)
			}
			if c < len(opts.Alignments) && opts.Alignments[c] == AlignRight {
				b.WriteString(runewidth.FillLeft(cell, widths[c]))
			} else if c == len(row)-1 {
				b.WriteString(cell)
			} else {
				b.WriteString(runewidth.FillRight(cell, widths[c]))
			}
		}
		out[i] = b.String()
	}
	return out
}

func limit(widths []int, c int) int {
	if c < len(widths) {
		return widths[c]
	}
	return 0
}

func clip(text string, max int) string {
	if max <= 0 || runewidth.StringWidth(text) <= max {
		return text
	}
	return runewidth.Truncate(text, max, "…")
}
