package gridparser_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lintang/gridnav/pkg/datastructure"
	"lintang/gridnav/pkg/gridparser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMap = `; maze kecil
S.#..
.3#.9
....F
`

func TestParse(t *testing.T) {
	p := gridparser.NewGridParser(false)

	t.Run("parse tiles and markers", func(t *testing.T) {
		m, err := p.Parse("sample", strings.NewReader(sampleMap))
		require.NoError(t, err)
		assert.Equal(t, "sample", m.Name)
		assert.Equal(t, 5, m.Grid.Width())
		assert.Equal(t, 3, m.Grid.Height())
		assert.True(t, m.HasStart)
		assert.True(t, m.HasFinish)
		assert.Equal(t, datastructure.NewCoordinate(0, 0), m.Start)
		assert.Equal(t, datastructure.NewCoordinate(4, 2), m.Finish)

		assert.True(t, m.Grid.CellAt(datastructure.NewCoordinate(2, 0)).Blocked)
		assert.Equal(t, 3.0, m.Grid.CellAt(datastructure.NewCoordinate(1, 1)).Cost)
		assert.Equal(t, 9.0, m.Grid.CellAt(datastructure.NewCoordinate(4, 1)).Cost)
		assert.Equal(t, 1.0, m.Grid.CellAt(datastructure.NewCoordinate(0, 0)).Cost)
	})

	t.Run("rows round trip", func(t *testing.T) {
		m, err := p.Parse("sample", strings.NewReader(sampleMap))
		require.NoError(t, err)
		assert.Equal(t, []string{"S.#..", ".3#.9", "....F"}, m.Rows())
	})

	t.Run("errors", func(t *testing.T) {
		_, err := p.Parse("empty", strings.NewReader("; cuma komentar\n\n"))
		assert.ErrorIs(t, err, gridparser.ErrEmptyMap)

		_, err = p.FromRows("ragged", []string{"...", ".."})
		assert.ErrorIs(t, err, gridparser.ErrRaggedRow)

		_, err = p.FromRows("unknown", []string{"..x"})
		assert.ErrorIs(t, err, gridparser.ErrUnknownTile)

		_, err = p.FromRows("dup", []string{"S.S"})
		assert.ErrorIs(t, err, gridparser.ErrDuplicateMarker)

		_, err = p.FromRows("dup finish", []string{"F", "F"})
		assert.ErrorIs(t, err, gridparser.ErrDuplicateMarker)
	})

	t.Run("parse file names map after file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "level1.map")
		require.NoError(t, os.WriteFile(path, []byte(sampleMap), 0o644))

		m, err := p.ParseFile(path)
		require.NoError(t, err)
		assert.Equal(t, "level1", m.Name)

		_, err = p.ParseFile(filepath.Join(dir, "missing.map"))
		assert.Error(t, err)
	})
}

func TestFromMatrix(t *testing.T) {
	g, err := gridparser.FromMatrix([][]int{
		{0, 0},
		{1, 0},
	})
	require.NoError(t, err)
	assert.False(t, g.CellAt(datastructure.NewCoordinate(0, 0)).Blocked)
	assert.True(t, g.CellAt(datastructure.NewCoordinate(0, 1)).Blocked)
	assert.Equal(t, []string{"..", "#."}, gridparser.Render(g, nil))

	_, err = gridparser.FromMatrix(nil)
	assert.ErrorIs(t, err, gridparser.ErrEmptyMap)

	_, err = gridparser.FromMatrix([][]int{{0, 0}, {0}})
	assert.ErrorIs(t, err, gridparser.ErrMatrixDimensions)
}

func TestRenderMarks(t *testing.T) {
	g, err := gridparser.FromMatrix([][]int{{0, 0, 0}})
	require.NoError(t, err)
	require.NoError(t, g.SetCost(datastructure.NewCoordinate(1, 0), 12))
	rows := gridparser.Render(g, map[datastructure.Coordinate]rune{
		datastructure.NewCoordinate(0, 0): '*',
	})
	assert.Equal(t, []string{"*9."}, rows)
}
