package grid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pattern(rows ...string) [][]bool {
	white := make([][]bool, len(rows))
	for r, row := range rows {
		white[r] = make([]bool, len(row))
		for c := range row {
			white[r][c] = row[c] != ' '
		}
	}
	return white
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name        string
		rows        []string
		wantNumbers [][]int
		wantAcross  []int
		wantDown    []int
	}{
		{
			name:        "open 3x3",
			rows:        []string{"...", "...", "..."},
			wantNumbers: [][]int{{1, 2, 3}, {4, 0, 0}, {5, 0, 0}},
			wantAcross:  []int{1, 4, 5},
			wantDown:    []int{1, 2, 3},
		},
		{
			name:        "single white cell starts nothing",
			rows:        []string{"."},
			wantNumbers: [][]int{{0}},
		},
		{
			name:        "isolated white cells",
			rows:        []string{". .", "   ", ". ."},
			wantNumbers: [][]int{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		},
		{
			name:        "across only",
			rows:        []string{"..", "  "},
			wantNumbers: [][]int{{1, 0}, {0, 0}},
			wantAcross:  []int{1},
		},
		{
			name:        "down only",
			rows:        []string{". ", ". "},
			wantNumbers: [][]int{{1, 0}, {0, 0}},
			wantDown:    []int{1},
		},
		{
			name: "block in the middle",
			rows: []string{
				"...",
				". .",
				"...",
			},
			wantNumbers: [][]int{{1, 0, 2}, {0, 0, 0}, {3, 0, 0}},
			wantAcross:  []int{1, 3},
			wantDown:    []int{1, 2},
		},
		{
			name:        "all black",
			rows:        []string{"  ", "  "},
			wantNumbers: [][]int{{0, 0}, {0, 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Number(pattern(tt.rows...))
			assert.Equal(t, tt.wantNumbers, got.Numbers)
			assert.Equal(t, tt.wantAcross, got.Across)
			assert.Equal(t, tt.wantDown, got.Down)
		})
	}
}

func TestNumber_OneNumberPerCell(t *testing.T) {
	got := Number(pattern("..", ".."))
	assert.Equal(t, [][]int{{1, 2}, {3, 0}}, got.Numbers)
	assert.Equal(t, []int{1, 3}, got.Across)
	assert.Equal(t, []int{1, 2}, got.Down)
}

func TestNumber_DoesNotModifyInput(t *testing.T) {
	white := pattern("...", ". .", "...")
	Number(white)
	assert.Equal(t, pattern("...", ". .", "..."), white)
}

func TestNumber_ContiguousInScanOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for range 50 {
		g := New(Options{})
		for range 40 {
			g.ToggleWhite(rng.Intn(15), rng.Intn(15), rng.Intn(3) > 0)
		}

		want := 1
		for r := range g.Size() {
			for c := range g.Size() {
				n, ok := g.CellAt(r, c).Number()
				if !ok {
					continue
				}
				require.Equal(t, want, n, "number at (%d,%d)", r, c)
				want++
			}
		}

		across, down := g.Entries()
		numbered := want - 1
		assert.LessOrEqual(t, numbered, len(across)+len(down))
		assert.GreaterOrEqual(t, numbered, max(len(across), len(down)))
		assert.IsIncreasing(t, append([]int{0}, across...))
		assert.IsIncreasing(t, append([]int{0}, down...))
	}
}

func TestNumber_BlankGridCounts(t *testing.T) {
	g := New(Options{})
	across, down := g.EntryCounts()
	assert.Equal(t, 15, across)
	assert.Equal(t, 15, down)

	n, ok := g.CellAt(14, 0).Number()
	require.True(t, ok)
	assert.Equal(t, 29, n)
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"left", Left, false},
		{"Right", Right, false},
		{"ArrowUp", Up, false},
		{"ArrowDown", Down, false},
		{"down", Down, false},
		{"sideways", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
	assert.Equal(t, "Direction(7)", Direction(7).String())
}
