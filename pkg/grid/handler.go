package grid

// Handler is the input capability of one cell. The rendering collaborator
// obtains a Handler per cell from Grid.Handler and forwards movement and
// toggle requests to it.
type Handler interface {
	// Move focuses the neighbouring cell in dir, wrapping at the edges.
	Move(dir Direction)
	// ToggleWhite sets the cell (and its symmetric partner) white or black.
	ToggleWhite(white bool)
	// ToggleCircle sets the cell's circle flag.
	ToggleCircle(circle bool)
	// Focus asks the focuser to focus this cell.
	Focus()
}

type cellHandler struct {
	grid     *Grid
	row, col int
}

func (h *cellHandler) Move(dir Direction) {
	r, c := h.grid.neighborPos(h.row, h.col, dir)
	if h.grid.focuser != nil {
		h.grid.focuser.Focus(r, c)
	}
}

func (h *cellHandler) Focus() {
	if h.grid.focuser != nil {
		h.grid.focuser.Focus(h.row, h.col)
	}
}

func (h *cellHandler) ToggleWhite(white bool) { h.grid.ToggleWhite(h.row, h.col, white) }

func (h *cellHandler) ToggleCircle(circle bool) { h.grid.ToggleCircle(h.row, h.col, circle) }

// Handler returns the input handler of (row, col), or nil when out of
// range. Handlers are created once with the grid.
func (g *Grid) Handler(row, col int) Handler {
	if g.CellAt(row, col) == nil {
		return nil
	}
	return g.handlers[row][col]
}
