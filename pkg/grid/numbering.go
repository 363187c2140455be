package grid

// Numbering is the result of one numbering pass over a grid.
type Numbering struct {
	// Numbers holds the entry number per cell, 0 where the cell has none.
	Numbers [][]int
	// Across and Down list the numbers of the cells that start an entry in
	// that direction, in scan order.
	Across []int
	Down   []int
}

// Number computes entry numbers for a matrix of white flags. Cells are
// scanned row by row; a white cell starts an across entry when the cell to
// its left is black or off-grid and the cell to its right is white, and a
// down entry by the same rule vertically. Every cell that starts at least
// one entry takes the next number from a single counter starting at 1.
func Number(white [][]bool) Numbering {
	isWhite := func(r, c int) bool {
		return r >= 0 && r < len(white) && c >= 0 && c < len(white[r]) && white[r][c]
	}

	n := Numbering{Numbers: make([][]int, len(white))}
	next := 1
	for r := range white {
		n.Numbers[r] = make([]int, len(white[r]))
		for c := range white[r] {
			if !white[r][c] {
				continue
			}
			across := !isWhite(r, c-1) && isWhite(r, c+1)
			down := !isWhite(r-1, c) && isWhite(r+1, c)
			if !across && !down {
				continue
			}
			if across {
				n.Across = append(n.Across, next)
			}
			if down {
				n.Down = append(n.Down, next)
			}
			n.Numbers[r][c] = next
			next++
		}
	}
	return n
}
