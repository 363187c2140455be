// Package grid implements the crossword grid model: a square matrix of
// cells with point-symmetric white/black toggling, entry numbering and a
// compact text serialization.
//
// The Grid reads its initial state from a Store and writes the serialized
// form back after construction and after every mutation. Numbering is
// recomputed over the whole grid after each change, so cell numbers and
// entry counts are always consistent with the white/black pattern when a
// mutating call returns.
//
// A Grid is not safe for concurrent use; a single actor drives it.
package grid

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultSize is the grid dimension used when none is configured.
const DefaultSize = 15

// StoreKey is the name under which the serialized grid is persisted.
const StoreKey = "grid"

// Store is the persistence port. Load returns the last saved serialization,
// or false when nothing is stored. Failures are the store's concern; the
// grid only ever calls each operation once.
type Store interface {
	Load() (string, bool)
	Save(serialized string)
}

// Focuser moves input focus to a cell. It is implemented by the rendering
// collaborator.
type Focuser interface {
	Focus(row, col int)
}

// Options configures a Grid.
type Options struct {
	// Size is the grid dimension; values below 1 select DefaultSize.
	Size int

	// Store provides the initial state and receives every update. Nil
	// means the grid starts blank and is not persisted.
	Store Store

	// Focuser receives focus requests from cell handlers. Optional.
	Focuser Focuser

	// OnChange is called with the entry counts after each recomputation.
	// Optional.
	OnChange func(across, down int)

	// Logger receives debug output. Nil discards it.
	Logger logrus.FieldLogger
}

// Grid is an N×N crossword pattern.
type Grid struct {
	size     int
	cells    [][]Cell
	handlers [][]Handler

	store    Store
	focuser  Focuser
	onChange func(across, down int)
	log      logrus.FieldLogger

	across []int
	down   []int
}

// New builds a grid from the store's saved state, or an all-white grid when
// nothing is saved, then numbers it and saves it.
func New(opts Options) *Grid {
	g := newGrid(opts)

	var lines []string
	if g.store != nil {
		if s, ok := g.store.Load(); ok {
			lines = strings.Split(s, "\n")
		}
	}
	g.decode(lines)
	g.afterChange()
	return g
}

// Parse builds a detached grid (no store, no collaborators) from a
// serialized form. Missing rows or characters decode as white cells.
func Parse(size int, serialized string) *Grid {
	g := newGrid(Options{Size: size})
	g.decode(strings.Split(serialized, "\n"))
	g.renumber()
	return g
}

func newGrid(opts Options) *Grid {
	size := opts.Size
	if size < 1 {
		size = DefaultSize
	}
	log := opts.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	g := &Grid{
		size:     size,
		cells:    make([][]Cell, size),
		handlers: make([][]Handler, size),
		store:    opts.Store,
		focuser:  opts.Focuser,
		onChange: opts.OnChange,
		log:      log,
	}
	for r := range size {
		g.cells[r] = make([]Cell, size)
		g.handlers[r] = make([]Handler, size)
		for c := range size {
			g.cells[r][c] = Cell{row: r, col: c, white: true}
			g.handlers[r][c] = &cellHandler{grid: g, row: r, col: c}
		}
	}
	return g
}

// decode sets every cell from serialized rows. Rows or characters beyond
// the input are treated as missing.
func (g *Grid) decode(lines []string) {
	for r := range g.size {
		var line string
		if r < len(lines) {
			line = lines[r]
		}
		for c := range g.size {
			var ch byte
			present := c < len(line)
			if present {
				ch = line[c]
			}
			white, circled := decodeCell(ch, present)
			g.cells[r][c].setWhite(white)
			g.cells[r][c].setCircle(circled)
		}
	}
}

// Size returns the grid dimension.
func (g *Grid) Size() int { return g.size }

// CellAt returns the cell at (row, col), or nil when out of range.
func (g *Grid) CellAt(row, col int) *Cell {
	if row < 0 || row >= g.size || col < 0 || col >= g.size {
		return nil
	}
	return &g.cells[row][col]
}

// ToggleWhite sets the white state of (row, col) and of its point-symmetric
// partner, then renumbers and saves. Out-of-range coordinates are ignored.
func (g *Grid) ToggleWhite(row, col int, white bool) {
	cell := g.CellAt(row, col)
	if cell == nil {
		g.log.WithFields(logrus.Fields{"row": row, "col": col}).Debug("toggle white out of range")
		return
	}
	cell.setWhite(white)
	g.opposite(row, col).setWhite(white)
	g.log.WithFields(logrus.Fields{"row": row, "col": col, "white": white}).Debug("toggle white")
	g.afterChange()
}

// ToggleCircle sets the circle flag of (row, col) only; circles are not
// mirrored. Out-of-range coordinates are ignored.
func (g *Grid) ToggleCircle(row, col int, circle bool) {
	cell := g.CellAt(row, col)
	if cell == nil {
		g.log.WithFields(logrus.Fields{"row": row, "col": col}).Debug("toggle circle out of range")
		return
	}
	cell.setCircle(circle)
	g.log.WithFields(logrus.Fields{"row": row, "col": col, "circle": circle}).Debug("toggle circle")
	g.afterChange()
}

// Reset makes every cell white and uncircled.
func (g *Grid) Reset() {
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c].setWhite(true)
			g.cells[r][c].setCircle(false)
		}
	}
	g.log.Debug("reset")
	g.afterChange()
}

// Restore replaces the whole pattern with a serialized form, decoding it
// the same way as construction.
func (g *Grid) Restore(serialized string) {
	g.decode(strings.Split(serialized, "\n"))
	g.log.Debug("restore")
	g.afterChange()
}

// Neighbor returns the adjacent cell in dir, wrapping around the edges of
// the row or column. It returns nil when (row, col) is out of range and
// panics on a direction outside the four defined values.
func (g *Grid) Neighbor(row, col int, dir Direction) *Cell {
	r, c := g.neighborPos(row, col, dir)
	if g.CellAt(row, col) == nil {
		return nil
	}
	return g.CellAt(r, c)
}

func (g *Grid) neighborPos(row, col int, dir Direction) (int, int) {
	last := g.size - 1
	switch dir {
	case Left:
		if col > 0 {
			return row, col - 1
		}
		return row, last
	case Right:
		if col < last {
			return row, col + 1
		}
		return row, 0
	case Up:
		if row > 0 {
			return row - 1, col
		}
		return last, col
	case Down:
		if row < last {
			return row + 1, col
		}
		return 0, col
	default:
		panic(fmt.Sprintf("grid: invalid direction %d", int(dir)))
	}
}

// Serialize returns the grid as newline-joined rows of ' ' (black),
// '.' (white) and 'o' (white, circled).
func (g *Grid) Serialize() string {
	var b strings.Builder
	b.Grow(g.size * (g.size + 1))
	for r := range g.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := range g.cells[r] {
			b.WriteByte(g.cells[r][c].char())
		}
	}
	return b.String()
}

// EntryCounts returns the number of across and down entries.
func (g *Grid) EntryCounts() (across, down int) {
	return len(g.across), len(g.down)
}

// Entries returns the numbers of the across and down entries in order.
func (g *Grid) Entries() (across, down []int) {
	return append([]int(nil), g.across...), append([]int(nil), g.down...)
}

// Whites returns a copy of the white/black pattern.
func (g *Grid) Whites() [][]bool {
	white := make([][]bool, g.size)
	for r := range g.cells {
		white[r] = make([]bool, g.size)
		for c := range g.cells[r] {
			white[r][c] = g.cells[r][c].IsWhite()
		}
	}
	return white
}

func (g *Grid) opposite(row, col int) *Cell {
	return g.CellAt(g.size-1-row, g.size-1-col)
}

func (g *Grid) renumber() {
	n := Number(g.Whites())
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c].setNumber(n.Numbers[r][c])
		}
	}
	g.across, g.down = n.Across, n.Down
}

// afterChange renumbers, saves and notifies. It runs after construction and
// after every mutation.
func (g *Grid) afterChange() {
	g.renumber()
	if g.store != nil {
		g.store.Save(g.Serialize())
	}
	across, down := g.EntryCounts()
	g.log.WithFields(logrus.Fields{"across": len(g.across), "down": len(g.down)}).Debug("renumbered")
	if g.onChange != nil {
		g.onChange(across, down)
	}
}
