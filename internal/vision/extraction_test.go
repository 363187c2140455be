package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtraction(t *testing.T) {
	text := `{"rows":2,"cols":3,"cells":[
		[{"black":true},{"black":false},{"black":false,"circled":true}],
		[{"black":false},{"black":false},{"black":true}]
	]}`

	e, err := ParseExtraction(text)
	require.NoError(t, err)
	assert.Equal(t, 2, e.Rows)
	assert.Equal(t, 3, e.Cols)
	assert.Equal(t, " .o\n.. ", e.Serialize(3))
}

func TestParseExtraction_Fenced(t *testing.T) {
	e, err := ParseExtraction("```json\n{\"rows\":1,\"cols\":1,\"cells\":[[{\"black\":true}]]}\n```")
	require.NoError(t, err)
	assert.Equal(t, " ", e.Serialize(1))
}

func TestParseExtraction_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", "   "},
		{"not json", "the grid is 15x15"},
		{"no cells", `{"rows":15,"cols":15,"cells":[]}`},
		{"zero size", `{"rows":0,"cols":0,"cells":[[{"black":true}]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExtraction(tt.text)
			assert.Error(t, err)
		})
	}
}

func TestExtraction_SerializeClipsAndPads(t *testing.T) {
	e := &Extraction{Rows: 3, Cols: 3, Cells: [][]CellGuess{
		{{Black: true}, {}, {}},
		{{}, {Black: true}, {}},
		{{}, {}, {Black: true}},
	}}

	assert.Equal(t, " .\n. ", e.Serialize(2))
	assert.Equal(t, " ..\n. .\n.. ", e.Serialize(4), "missing rows are left for the decoder")
}

func TestMIMEType(t *testing.T) {
	got, err := MIMEType("grid.JPG")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", got)

	got, err = MIMEType("/tmp/grid.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", got)

	_, err = MIMEType("grid.gif")
	assert.Error(t, err)
}
