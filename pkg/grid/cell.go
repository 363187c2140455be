package grid

// Serialized cell characters.
const (
	charBlack   = ' '
	charWhite   = '.'
	charCircled = 'o'
)

// Cell is a single grid position. Its white and circle flags are owned by
// the Grid; the number is derived by the numbering pass and is never set
// by callers.
type Cell struct {
	row, col int
	white    bool
	circled  bool
	number   int // 0 means no number
}

// Row returns the cell's row index.
func (c *Cell) Row() int { return c.row }

// Col returns the cell's column index.
func (c *Cell) Col() int { return c.col }

// IsWhite reports whether the cell is fillable.
func (c *Cell) IsWhite() bool { return c.white }

// IsCircle reports whether the cell carries a circle. The flag is kept even
// when the cell is black.
func (c *Cell) IsCircle() bool { return c.circled }

// Number returns the cell's entry number and whether it has one.
func (c *Cell) Number() (int, bool) {
	return c.number, c.number > 0
}

func (c *Cell) setWhite(white bool)   { c.white = white }
func (c *Cell) setCircle(circle bool) { c.circled = circle }
func (c *Cell) setNumber(n int)       { c.number = n }

// char returns the serialized character for the cell.
func (c *Cell) char() byte {
	switch {
	case !c.white:
		return charBlack
	case c.circled:
		return charCircled
	default:
		return charWhite
	}
}

// decodeCell maps a serialized character to white/circle state. A missing
// position (present == false) decodes as a plain white cell.
func decodeCell(ch byte, present bool) (white, circled bool) {
	if !present {
		return true, false
	}
	switch ch {
	case charBlack:
		return false, false
	case charCircled:
		return true, true
	default:
		return true, false
	}
}
