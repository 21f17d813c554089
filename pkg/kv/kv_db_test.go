package kv_test

import (
	"errors"
	"fmt"
	"testing"

	"lintang/gridnav/pkg/datastructure"
	"lintang/gridnav/pkg/gridparser"
	"lintang/gridnav/pkg/kv"
	"lintang/gridnav/pkg/server"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemKV(t *testing.T) *kv.KVDB {
	t.Helper()
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	require.NoError(t, err)
	k := kv.NewKVDB(db)
	t.Cleanup(func() { _ = k.Close() })
	return k
}

func sampleMap(t *testing.T, name string) *gridparser.Map {
	t.Helper()
	m, err := gridparser.NewGridParser(false).FromRows(name, []string{
		"S.#",
		".7.",
		"#.F",
	})
	require.NoError(t, err)
	return m
}

func isCode(err error, code error) bool {
	var serr *server.Error
	return errors.As(err, &serr) && serr.Code() == code
}

func TestKVDB(t *testing.T) {
	t.Run("save and get grid", func(t *testing.T) {
		k := newMemKV(t)
		require.NoError(t, k.SaveGrid("maze", sampleMap(t, "whatever")))

		m, err := k.GetGrid("maze")
		require.NoError(t, err)
		assert.Equal(t, "maze", m.Name)
		assert.Equal(t, []string{"S.#", ".7.", "#.F"}, m.Rows())
		assert.Equal(t, 7.0, m.Grid.CellAt(datastructure.NewCoordinate(1, 1)).Cost)
		assert.True(t, m.HasStart)
		assert.Equal(t, datastructure.NewCoordinate(2, 2), m.Finish)
	})

	t.Run("missing grid is not found", func(t *testing.T) {
		k := newMemKV(t)
		_, err := k.GetGrid("nope")
		assert.True(t, isCode(err, server.ErrNotFound))

		err = k.DeleteGrid("nope")
		assert.True(t, isCode(err, server.ErrNotFound))
	})

	t.Run("empty name rejected", func(t *testing.T) {
		k := newMemKV(t)
		err := k.SaveGrid("", sampleMap(t, "x"))
		assert.True(t, isCode(err, server.ErrBadParamInput))
	})

	t.Run("import, list and delete", func(t *testing.T) {
		k := newMemKV(t)
		maps := []*gridparser.Map{}
		for i := 0; i < 6; i++ {
			maps = append(maps, sampleMap(t, fmt.Sprintf("level%d", i)))
		}
		require.NoError(t, k.ImportMaps(maps, 3))

		names, err := k.ListGrids()
		require.NoError(t, err)
		assert.Equal(t, []string{"level0", "level1", "level2", "level3", "level4", "level5"}, names)

		require.NoError(t, k.DeleteGrid("level3"))
		names, err = k.ListGrids()
		require.NoError(t, err)
		assert.NotContains(t, names, "level3")
		assert.Len(t, names, 5)
	})
}

func TestCodec(t *testing.T) {
	t.Run("compress round trip", func(t *testing.T) {
		raw := []byte("....####....####....")
		c, err := kv.Compress(raw)
		require.NoError(t, err)
		d, err := kv.Decompress(c)
		require.NoError(t, err)
		assert.Equal(t, raw, d)
	})

	t.Run("corrupt value", func(t *testing.T) {
		_, err := kv.LoadGrid([]byte("not zstd"))
		assert.Error(t, err)
	})
}
