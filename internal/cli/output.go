package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/xgrid/pkg/grid"
)

// gridJSON is the --json form of a grid.
type gridJSON struct {
	Size   int      `json:"size"`
	Rows   []string `json:"rows"`
	Across []int    `json:"across"`
	Down   []int    `json:"down"`
	Total  int      `json:"total"`
}

type countJSON struct {
	Across int `json:"across"`
	Down   int `json:"down"`
	Total  int `json:"total"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newGridJSON(g *grid.Grid) gridJSON {
	across, down := g.Entries()
	return gridJSON{
		Size:   g.Size(),
		Rows:   strings.Split(g.Serialize(), "\n"),
		Across: nonNil(across),
		Down:   nonNil(down),
		Total:  len(across) + len(down),
	}
}

func nonNil(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}

// renderGrid draws the pattern one character per cell: '#' black, '.'
// white, 'o' circled.
func renderGrid(w io.Writer, g *grid.Grid) {
	for r := range g.Size() {
		var b strings.Builder
		for c := range g.Size() {
			cell := g.CellAt(r, c)
			switch {
			case !cell.IsWhite():
				b.WriteByte('#')
			case cell.IsCircle():
				b.WriteByte('o')
			default:
				b.WriteByte('.')
			}
		}
		fmt.Fprintln(w, b.String())
	}
}

// renderNumbers draws the pattern three columns per cell, showing entry
// numbers in the cells that start an entry.
func renderNumbers(w io.Writer, g *grid.Grid) {
	for r := range g.Size() {
		var b strings.Builder
		for c := range g.Size() {
			cell := g.CellAt(r, c)
			switch n, ok := cell.Number(); {
			case !cell.IsWhite():
				b.WriteString(" ##")
			case ok:
				fmt.Fprintf(&b, "%3d", n)
			case cell.IsCircle():
				b.WriteString("  o")
			default:
				b.WriteString("  .")
			}
		}
		fmt.Fprintln(w, b.String())
	}
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}

func totalLine(g *grid.Grid) string {
	across, down := g.EntryCounts()
	return fmt.Sprintf("Total entries: %d", across+down)
}
