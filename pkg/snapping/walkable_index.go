package snapping

import (
	"errors"

	"lintang/gridnav/pkg/datastructure"

	"github.com/dhconnelly/rtreego"
)

var ErrNoWalkableCell = errors.New("grid has no walkable cell")

var tol = 0.01

type CellRect struct {
	Location rtreego.Point
	Pos      datastructure.Coordinate
}

func (c *CellRect) Bounds() rtreego.Rect {
	// rectangle kecil di tengah cell dengan sisi 2 * tol
	return c.Location.ToRect(tol)
}

// WalkableIndex rtree semua cell yang tidak blocked.
type WalkableIndex struct {
	grid *datastructure.Grid
	tree *rtreego.Rtree
	size int
}

func NewWalkableIndex(g *datastructure.Grid) *WalkableIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2 dimension, 25 min entries dan 50 max entries
	size := 0
	for _, c := range g.Cells() {
		if c.Blocked {
			continue
		}
		tree.Insert(&CellRect{
			Location: rtreego.Point{float64(c.Pos.X), float64(c.Pos.Y)},
			Pos:      c.Pos,
		})
		size++
	}
	return &WalkableIndex{grid: g, tree: tree, size: size}
}

func (w *WalkableIndex) Size() int {
	return w.size
}

// Snap return c kalau c walkable, selain itu cell walkable terdekat (euclidean).
// c boleh di luar grid.
func (w *WalkableIndex) Snap(c datastructure.Coordinate) (datastructure.Coordinate, error) {
	if w.grid.IsWalkableAt(c) {
		return c, nil
	}
	if w.size == 0 {
		return datastructure.Coordinate{}, ErrNoWalkableCell
	}
	nearest := w.tree.NearestNeighbor(rtreego.Point{float64(c.X), float64(c.Y)})
	return nearest.(*CellRect).Pos, nil
}
