package store

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/xgrid/pkg/grid"
	"github.com/mesh-intelligence/xgrid/pkg/types"
)

var _ grid.Store = (*Binding)(nil)

func TestBinding_LoadEmpty(t *testing.T) {
	b, _ := attachTemp(t)
	p := b.Bind(grid.StoreKey)

	data, ok := p.Load()
	assert.False(t, ok)
	assert.Empty(t, data)
	assert.NoError(t, p.Err())
}

func TestBinding_SaveLoad(t *testing.T) {
	b, _ := attachTemp(t)
	p := b.Bind(grid.StoreKey)

	p.Save(" o\n..")
	data, ok := p.Load()
	require.True(t, ok)
	assert.Equal(t, " o\n..", data)
	assert.NoError(t, p.Err())
}

func TestBinding_FailuresAreLoggedAndKept(t *testing.T) {
	var out bytes.Buffer
	log := logrus.New()
	log.SetOutput(&out)

	b := NewBackend(log)
	p := b.Bind(grid.StoreKey)

	p.Save("..")
	_, ok := p.Load()
	assert.False(t, ok)

	assert.ErrorIs(t, p.Err(), types.ErrDetached)
	assert.Equal(t, 2, strings.Count(out.String(), "persistence failed"))
}

func TestBinding_DrivesGrid(t *testing.T) {
	b, _ := attachTemp(t)

	g := grid.New(grid.Options{Size: 5, Store: b.Bind(grid.StoreKey)})
	g.ToggleWhite(0, 1, false)
	g.ToggleCircle(2, 2, true)

	again := grid.New(grid.Options{Size: 5, Store: b.Bind(grid.StoreKey)})
	assert.Equal(t, g.Serialize(), again.Serialize())

	history, err := b.History(grid.StoreKey)
	require.NoError(t, err)
	assert.Len(t, history, 3, "construction of the second grid writes an unchanged value")
}
