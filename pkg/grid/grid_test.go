package grid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	data  string
	saved bool
	saves int
}

func (m *memStore) Load() (string, bool) { return m.data, m.saved }

func (m *memStore) Save(s string) {
	m.data = s
	m.saved = true
	m.saves++
}

type focusRecorder struct {
	row, col int
	calls    int
}

func (f *focusRecorder) Focus(row, col int) {
	f.row, f.col = row, col
	f.calls++
}

func blankRows(n int) []string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = strings.Repeat(".", n)
	}
	return rows
}

func TestNew_BlankWhenStoreEmpty(t *testing.T) {
	store := &memStore{}
	g := New(Options{Store: store})

	require.Equal(t, DefaultSize, g.Size())
	assert.Equal(t, strings.Join(blankRows(15), "\n"), g.Serialize())
	assert.Equal(t, 1, store.saves, "construction must save once")
	assert.Equal(t, g.Serialize(), store.data)
}

func TestNew_LoadsSavedState(t *testing.T) {
	rows := blankRows(3)
	rows[0] = " o."
	rows[2] = ". ."
	store := &memStore{data: strings.Join(rows, "\n"), saved: true}

	g := New(Options{Size: 3, Store: store})

	assert.False(t, g.CellAt(0, 0).IsWhite())
	assert.True(t, g.CellAt(0, 1).IsWhite())
	assert.True(t, g.CellAt(0, 1).IsCircle())
	assert.False(t, g.CellAt(2, 1).IsWhite())
	assert.Equal(t, " o.\n...\n. .", g.Serialize())
}

func TestNew_ShortInputDefaultsToWhite(t *testing.T) {
	store := &memStore{data: " \n..x", saved: true}
	g := New(Options{Size: 4, Store: store})

	want := []string{
		" ...",
		"....",
		"....",
		"....",
	}
	assert.Equal(t, strings.Join(want, "\n"), g.Serialize())
	assert.False(t, g.CellAt(1, 2).IsCircle(), "unknown characters decode as plain white")
}

func TestNew_NonPositiveSizeUsesDefault(t *testing.T) {
	assert.Equal(t, DefaultSize, New(Options{Size: 0}).Size())
	assert.Equal(t, DefaultSize, Parse(-3, "").Size())
}

func TestToggleWhite_Mirrors(t *testing.T) {
	g := New(Options{})
	n := g.Size()

	for _, pos := range [][2]int{{0, 0}, {0, 1}, {3, 9}, {14, 2}, {7, 7}} {
		r, c := pos[0], pos[1]
		g.ToggleWhite(r, c, false)
		assert.False(t, g.CellAt(r, c).IsWhite(), "(%d,%d)", r, c)
		assert.False(t, g.CellAt(n-1-r, n-1-c).IsWhite(), "partner of (%d,%d)", r, c)

		g.ToggleWhite(r, c, true)
		assert.True(t, g.CellAt(r, c).IsWhite(), "(%d,%d)", r, c)
		assert.True(t, g.CellAt(n-1-r, n-1-c).IsWhite(), "partner of (%d,%d)", r, c)
	}
}

func TestToggleWhite_CenterCell(t *testing.T) {
	g := New(Options{})
	g.ToggleWhite(7, 7, false)

	assert.False(t, g.CellAt(7, 7).IsWhite())
	blacks := strings.Count(g.Serialize(), " ")
	assert.Equal(t, 1, blacks)
}

func TestToggleWhite_SavesAndNotifies(t *testing.T) {
	store := &memStore{}
	var gotAcross, gotDown, calls int
	g := New(Options{
		Store: store,
		OnChange: func(across, down int) {
			gotAcross, gotDown = across, down
			calls++
		},
	})
	require.Equal(t, 1, calls)

	g.ToggleWhite(0, 1, false)

	assert.Equal(t, 2, store.saves)
	assert.Equal(t, g.Serialize(), store.data)
	assert.Equal(t, 2, calls)
	across, down := g.EntryCounts()
	assert.Equal(t, across, gotAcross)
	assert.Equal(t, down, gotDown)
}

func TestToggleWhite_OutOfRangeIsIgnored(t *testing.T) {
	store := &memStore{}
	g := New(Options{Store: store})
	before := g.Serialize()

	g.ToggleWhite(-1, 0, false)
	g.ToggleWhite(0, 15, false)
	g.ToggleCircle(15, 15, true)

	assert.Equal(t, before, g.Serialize())
	assert.Equal(t, 1, store.saves)
}

func TestToggleCircle_OnlyTargetChanges(t *testing.T) {
	g := New(Options{})
	g.ToggleWhite(2, 3, false)
	before := g.Serialize()

	g.ToggleCircle(4, 5, true)

	after := g.Serialize()
	diff := 0
	for i := range before {
		if before[i] != after[i] {
			diff++
		}
	}
	assert.Equal(t, 1, diff)
	assert.True(t, g.CellAt(4, 5).IsCircle())
	assert.False(t, g.CellAt(10, 9).IsCircle(), "circles are not mirrored")
}

func TestToggleCircle_KeptWhenCellTurnsBlack(t *testing.T) {
	g := New(Options{})
	g.ToggleCircle(1, 1, true)
	g.ToggleWhite(1, 1, false)

	cell := g.CellAt(1, 1)
	assert.False(t, cell.IsWhite())
	assert.True(t, cell.IsCircle())
	assert.Equal(t, byte(' '), g.Serialize()[1*16+1], "black wins in the serialized form")

	g.ToggleWhite(1, 1, true)
	assert.Equal(t, byte('o'), g.Serialize()[1*16+1])
}

func TestReset(t *testing.T) {
	g := New(Options{})
	g.ToggleWhite(0, 0, false)
	g.ToggleWhite(5, 6, false)
	g.ToggleCircle(3, 3, true)

	g.Reset()
	once := g.Serialize()
	g.Reset()

	assert.Equal(t, once, g.Serialize())
	for r := range g.Size() {
		for c := range g.Size() {
			cell := g.CellAt(r, c)
			assert.True(t, cell.IsWhite())
			assert.False(t, cell.IsCircle())
		}
	}
	across, down := g.EntryCounts()
	assert.Equal(t, 15, across)
	assert.Equal(t, 15, down)
}

func TestRestore(t *testing.T) {
	store := &memStore{}
	g := New(Options{Size: 3, Store: store})

	g.Restore(" ..\n.o.\n.. ")

	assert.Equal(t, " ..\n.o.\n.. ", g.Serialize())
	assert.Equal(t, g.Serialize(), store.data)
	n, ok := g.CellAt(0, 1).Number()
	assert.True(t, ok)
	assert.Equal(t, 1, n)
}

func TestCellAt_Bounds(t *testing.T) {
	g := New(Options{Size: 5})

	assert.NotNil(t, g.CellAt(0, 0))
	assert.NotNil(t, g.CellAt(4, 4))
	assert.Nil(t, g.CellAt(-1, 0))
	assert.Nil(t, g.CellAt(0, -1))
	assert.Nil(t, g.CellAt(5, 0))
	assert.Nil(t, g.CellAt(0, 5))

	cell := g.CellAt(2, 3)
	assert.Equal(t, 2, cell.Row())
	assert.Equal(t, 3, cell.Col())
}

func TestNeighbor_Wraparound(t *testing.T) {
	g := New(Options{})

	tests := []struct {
		name     string
		row, col int
		dir      Direction
		wantRow  int
		wantCol  int
	}{
		{"up from top wraps to bottom", 0, 0, Up, 14, 0},
		{"left from first column wraps to last", 0, 0, Left, 0, 14},
		{"right from last column wraps to first", 3, 14, Right, 3, 0},
		{"down from bottom wraps to top", 14, 6, Down, 0, 6},
		{"interior left", 5, 5, Left, 5, 4},
		{"interior right", 5, 5, Right, 5, 6},
		{"interior up", 5, 5, Up, 4, 5},
		{"interior down", 5, 5, Down, 6, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Neighbor(tt.row, tt.col, tt.dir)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantRow, got.Row())
			assert.Equal(t, tt.wantCol, got.Col())
		})
	}

	for c := range g.Size() {
		assert.Same(t, g.Neighbor(0, c, Up), g.CellAt(14, c))
		assert.Same(t, g.Neighbor(14, c, Down), g.CellAt(0, c))
	}
}

func TestNeighbor_InvalidDirectionPanics(t *testing.T) {
	g := New(Options{})
	assert.Panics(t, func() { g.Neighbor(0, 0, Direction(9)) })
}

func TestNeighbor_OutOfRangeOrigin(t *testing.T) {
	g := New(Options{})
	assert.Nil(t, g.Neighbor(-1, 0, Down))
}

func TestHandler_MoveFocusesNeighbor(t *testing.T) {
	focus := &focusRecorder{}
	g := New(Options{Focuser: focus})

	g.Handler(0, 0).Move(Left)
	assert.Equal(t, 0, focus.row)
	assert.Equal(t, 14, focus.col)

	g.Handler(0, 0).Move(Up)
	assert.Equal(t, 14, focus.row)
	assert.Equal(t, 0, focus.col)
	assert.Equal(t, 2, focus.calls)

	g.Handler(7, 3).Focus()
	assert.Equal(t, []int{7, 3}, []int{focus.row, focus.col})

	assert.Nil(t, g.Handler(15, 0))
}

func TestHandler_Toggles(t *testing.T) {
	store := &memStore{}
	g := New(Options{Store: store})

	h := g.Handler(2, 4)
	h.ToggleWhite(false)
	h.ToggleCircle(true)

	assert.False(t, g.CellAt(2, 4).IsWhite())
	assert.False(t, g.CellAt(12, 10).IsWhite())
	assert.True(t, g.CellAt(2, 4).IsCircle())
	assert.Equal(t, 3, store.saves)
}

func TestSerialize_RoundTrip(t *testing.T) {
	g := New(Options{})
	g.ToggleWhite(0, 4, false)
	g.ToggleWhite(6, 2, false)
	g.ToggleCircle(1, 1, true)
	g.ToggleCircle(14, 14, true)
	g.ToggleCircle(0, 4, true)

	s := g.Serialize()
	lines := strings.Split(s, "\n")
	require.Len(t, lines, 15)
	for _, line := range lines {
		assert.Len(t, line, 15)
		assert.Empty(t, strings.Trim(line, " .o"))
	}

	back := Parse(15, s)
	for r := range 15 {
		for c := range 15 {
			assert.Equal(t, g.CellAt(r, c).IsWhite(), back.CellAt(r, c).IsWhite(), "(%d,%d)", r, c)
			// A circle on a black cell is not representable in the text form.
			if g.CellAt(r, c).IsWhite() {
				assert.Equal(t, g.CellAt(r, c).IsCircle(), back.CellAt(r, c).IsCircle(), "(%d,%d)", r, c)
			}
		}
	}
	assert.Equal(t, s, back.Serialize())
}

func TestScenario_BlockSecondCellOfFirstRow(t *testing.T) {
	g := New(Options{})
	g.ToggleWhite(0, 1, false)

	assert.False(t, g.CellAt(0, 1).IsWhite())
	assert.False(t, g.CellAt(14, 13).IsWhite())

	n, ok := g.CellAt(0, 0).Number()
	require.True(t, ok)
	assert.Equal(t, 1, n)

	_, ok = g.CellAt(0, 1).Number()
	assert.False(t, ok)

	n, ok = g.CellAt(0, 2).Number()
	require.True(t, ok)
	assert.Equal(t, 2, n)

	n, ok = g.CellAt(1, 1).Number()
	require.True(t, ok, "cell below a block starts a down entry")
	assert.Equal(t, 16, n)

	_, ok = g.CellAt(14, 14).Number()
	assert.False(t, ok, "isolated corner starts nothing")

	across, down := g.Entries()
	assert.Equal(t, 15, len(across))
	assert.Equal(t, 15, len(down))
	assert.Equal(t, []int{2, 15, 17}, across[:3])
	assert.Equal(t, []int{1, 2, 3}, down[:3])
}
