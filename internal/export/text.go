// Package export writes grids in the plain-text puzzle layout: four header
// lines (title, author, copyright, note), the grid rows, a blank line, and
// one clue line per entry, across entries first.
package export

import (
	"bufio"
	"io"

	"github.com/mesh-intelligence/xgrid/pkg/grid"
)

// Header holds the optional puzzle metadata written before the grid.
type Header struct {
	Title     string
	Author    string
	Copyright string
	Note      string
}

// WriteText writes g with empty clue lines, ready for clue authoring.
// Circles are not representable in this layout and are dropped.
func WriteText(w io.Writer, g *grid.Grid, h Header) error {
	bw := bufio.NewWriter(w)
	for _, line := range []string{h.Title, h.Author, h.Copyright, h.Note} {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}

	for r := range g.Size() {
		for c := range g.Size() {
			if g.CellAt(r, c).IsWhite() {
				bw.WriteByte('.')
			} else {
				bw.WriteByte(' ')
			}
		}
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')

	across, down := g.EntryCounts()
	for range across + down {
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
