package datastructure

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimension = errors.New("grid width and height must be positive")
	ErrNegativeCost     = errors.New("cell cost must not be negative")
)

type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinate(x, y int) Coordinate {
	return Coordinate{
		X: x,
		Y: y,
	}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// ManhattanDistance jumlah selisih absolut x dan y.
func (c Coordinate) ManhattanDistance(o Coordinate) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Cell satu petak di grid. Dist dan Predecessor diisi selama search berjalan.
type Cell struct {
	Pos         Coordinate
	Cost        float64
	Blocked     bool
	Dist        float64
	Predecessor *Cell
}

func (c *Cell) Reset() {
	c.Dist = 0
	c.Predecessor = nil
}

// Grid rectangular, row-major. cells[y*width+x]
type Grid struct {
	width  int
	height int
	cells  []*Cell
}

// NewGrid bikin grid width x height, semua cell cost 1 dan tidak blocked.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new grid %dx%d: %w", width, height, ErrInvalidDimension)
	}
	cells := make([]*Cell, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cells[y*width+x] = &Cell{
				Pos:  NewCoordinate(x, y),
				Cost: 1,
			}
		}
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}, nil
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

func (g *Grid) Size() int {
	if g == nil {
		return 0
	}
	return len(g.cells)
}

func (g *Grid) Inside(c Coordinate) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// CellAt return nil kalau c di luar grid.
func (g *Grid) CellAt(c Coordinate) *Cell {
	if !g.Inside(c) {
		return nil
	}
	return g.cells[c.Y*g.width+c.X]
}

func (g *Grid) SetCost(c Coordinate, cost float64) error {
	cell := g.CellAt(c)
	if cell == nil {
		return fmt.Errorf("set cost at %s: outside %dx%d grid", c, g.width, g.height)
	}
	if cost < 0 {
		return fmt.Errorf("set cost at %s: %w", c, ErrNegativeCost)
	}
	cell.Cost = cost
	return nil
}

func (g *Grid) SetBlocked(c Coordinate, blocked bool) error {
	cell := g.CellAt(c)
	if cell == nil {
		return fmt.Errorf("set blocked at %s: outside %dx%d grid", c, g.width, g.height)
	}
	cell.Blocked = blocked
	return nil
}

func (g *Grid) IsWalkableAt(c Coordinate) bool {
	cell := g.CellAt(c)
	return cell != nil && !cell.Blocked
}

// Adjacent 4 tetangga orthogonal dengan urutan atas, kanan, bawah, kiri.
// entry nil berarti di luar grid.
//
//	+---+---+---+
//	|   | 0 |   |
//	+---+---+---+
//	| 3 |   | 1 |
//	+---+---+---+
//	|   | 2 |   |
//	+---+---+---+
func (g *Grid) Adjacent(cell *Cell) [4]*Cell {
	x, y := cell.Pos.X, cell.Pos.Y
	return [4]*Cell{
		g.CellAt(NewCoordinate(x, y-1)),
		g.CellAt(NewCoordinate(x+1, y)),
		g.CellAt(NewCoordinate(x, y+1)),
		g.CellAt(NewCoordinate(x-1, y)),
	}
}

// Cells semua cell, row-major. slice nya jangan diubah.
func (g *Grid) Cells() []*Cell {
	return g.cells
}

// Reset hapus Dist dan Predecessor semua cell. harus dipanggil sebelum search baru.
func (g *Grid) Reset() {
	for _, c := range g.cells {
		c.Reset()
	}
}

// Clone deep copy cost & blocked, tanpa state search.
func (g *Grid) Clone() *Grid {
	cells := make([]*Cell, len(g.cells))
	for i, c := range g.cells {
		cells[i] = &Cell{
			Pos:     c.Pos,
			Cost:    c.Cost,
			Blocked: c.Blocked,
		}
	}
	return &Grid{
		width:  g.width,
		height: g.height,
		cells:  cells,
	}
}
