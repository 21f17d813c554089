package snapping_test

import (
	"testing"

	"lintang/gridnav/pkg/datastructure"
	"lintang/gridnav/pkg/gridparser"
	"lintang/gridnav/pkg/snapping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkableIndex(t *testing.T) {
	g, err := gridparser.FromMatrix([][]int{
		{1, 1, 1, 1},
		{1, 1, 1, 0},
		{1, 1, 1, 1},
		{0, 1, 1, 1},
	})
	require.NoError(t, err)
	idx := snapping.NewWalkableIndex(g)
	assert.Equal(t, 2, idx.Size())

	t.Run("walkable stays", func(t *testing.T) {
		got, err := idx.Snap(datastructure.NewCoordinate(3, 1))
		require.NoError(t, err)
		assert.Equal(t, datastructure.NewCoordinate(3, 1), got)
	})

	t.Run("blocked moves to nearest walkable", func(t *testing.T) {
		got, err := idx.Snap(datastructure.NewCoordinate(3, 0))
		require.NoError(t, err)
		assert.Equal(t, datastructure.NewCoordinate(3, 1), got)

		got, err = idx.Snap(datastructure.NewCoordinate(1, 3))
		require.NoError(t, err)
		assert.Equal(t, datastructure.NewCoordinate(0, 3), got)
	})

	t.Run("outside grid", func(t *testing.T) {
		got, err := idx.Snap(datastructure.NewCoordinate(-4, 5))
		require.NoError(t, err)
		assert.Equal(t, datastructure.NewCoordinate(0, 3), got)
	})

	t.Run("no walkable cell", func(t *testing.T) {
		g, err := gridparser.FromMatrix([][]int{{1, 1}})
		require.NoError(t, err)
		_, err = snapping.NewWalkableIndex(g).Snap(datastructure.NewCoordinate(0, 0))
		assert.ErrorIs(t, err, snapping.ErrNoWalkableCell)
	})
}
