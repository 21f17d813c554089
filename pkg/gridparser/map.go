package gridparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lintang/gridnav/pkg/datastructure"
	"lintang/gridnav/pkg/util"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

var (
	ErrEmptyMap         = errors.New("map has no rows")
	ErrRaggedRow        = errors.New("map rows have different widths")
	ErrUnknownTile      = errors.New("unknown tile")
	ErrDuplicateMarker  = errors.New("start or finish marker appears more than once")
	ErrMatrixDimensions = errors.New("matrix rows have different widths")
)

const (
	TileOpen    = '.'
	TileBlocked = '#'
	TileStart   = 'S'
	TileFinish  = 'F'
	commentRune = ';'
)

// Map grid beserta marker start/finish dari file peta.
type Map struct {
	Name      string
	Grid      *datastructure.Grid
	Start     datastructure.Coordinate
	Finish    datastructure.Coordinate
	HasStart  bool
	HasFinish bool
}

type GridParser struct {
	showProgress bool
}

// NewGridParser showProgress=true nampilin progressbar per baris, dipakai di cmd.
func NewGridParser(showProgress bool) *GridParser {
	return &GridParser{showProgress: showProgress}
}

func (p *GridParser) ParseFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return p.Parse(name, f)
}

// Parse baca peta ASCII: '.' cost 1, '1'-'9' cost N, '#' blocked, 'S' start, 'F' finish.
// baris yang diawali ';' dianggap komentar.
func (p *GridParser) Parse(name string, r io.Reader) (*Map, error) {
	rows := []string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" || line[0] == commentRune {
			continue
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read map %s: %w", name, err)
	}
	return p.FromRows(name, rows)
}

// FromRows sama dengan Parse tapi dari slice baris.
func (p *GridParser) FromRows(name string, rows []string) (*Map, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("map %s: %w", name, ErrEmptyMap)
	}
	width := len(rows[0])
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("map %s row %d has width %d, want %d: %w", name, y, len(row), width, ErrRaggedRow)
		}
	}

	g, err := datastructure.NewGrid(width, len(rows))
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", name, err)
	}

	var bar *progressbar.ProgressBar
	if p.showProgress {
		bar = progressbar.NewOptions(len(rows),
			progressbar.OptionSetWriter(ansi.NewAnsiStdout()), //you should install "github.com/k0kubun/go-ansi"
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(15),
			progressbar.OptionSetDescription(fmt.Sprintf("[cyan][1/2][reset] parsing map %s ...", name)),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	m := &Map{Name: name, Grid: g}
	for y, row := range rows {
		for x, tile := range row {
			pos := datastructure.NewCoordinate(x, y)
			cell := g.CellAt(pos)
			switch {
			case tile == TileOpen:
			case tile == TileBlocked:
				cell.Blocked = true
			case tile >= '1' && tile <= '9':
				cell.Cost = float64(tile - '0')
			case tile == TileStart:
				if m.HasStart {
					return nil, fmt.Errorf("map %s at %s: %w", name, pos, ErrDuplicateMarker)
				}
				m.Start, m.HasStart = pos, true
			case tile == TileFinish:
				if m.HasFinish {
					return nil, fmt.Errorf("map %s at %s: %w", name, pos, ErrDuplicateMarker)
				}
				m.Finish, m.HasFinish = pos, true
			default:
				return nil, fmt.Errorf("map %s at %s: %q: %w", name, pos, tile, ErrUnknownTile)
			}
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		fmt.Println("")
	}
	return m, nil
}

// FromMatrix 0 = walkable, selain 0 = blocked. matrix[y][x]
func FromMatrix(matrix [][]int) (*datastructure.Grid, error) {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return nil, ErrEmptyMap
	}
	g, err := datastructure.NewGrid(len(matrix[0]), len(matrix))
	if err != nil {
		return nil, err
	}
	for y, row := range matrix {
		if len(row) != g.Width() {
			return nil, fmt.Errorf("matrix row %d: %w", y, ErrMatrixDimensions)
		}
		for x, v := range row {
			g.CellAt(datastructure.NewCoordinate(x, y)).Blocked = v != 0
		}
	}
	return g, nil
}

// Rows kebalikan dari FromRows.
func (m *Map) Rows() []string {
	marks := map[datastructure.Coordinate]rune{}
	if m.HasStart {
		marks[m.Start] = TileStart
	}
	if m.HasFinish {
		marks[m.Finish] = TileFinish
	}
	return Render(m.Grid, marks)
}

// Render tulis grid ke bentuk ASCII. marks override tile di koordinat tertentu.
// cost non-integer dibulatkan ke digit terdekat 1..9.
func Render(g *datastructure.Grid, marks map[datastructure.Coordinate]rune) []string {
	rows := make([]string, g.Height())
	var sb strings.Builder
	for y := 0; y < g.Height(); y++ {
		sb.Reset()
		for x := 0; x < g.Width(); x++ {
			pos := datastructure.NewCoordinate(x, y)
			if r, ok := marks[pos]; ok {
				sb.WriteRune(r)
				continue
			}
			sb.WriteRune(tileOf(g.CellAt(pos)))
		}
		rows[y] = sb.String()
	}
	return rows
}

func tileOf(c *datastructure.Cell) rune {
	if c.Blocked {
		return TileBlocked
	}
	cost := util.Clamp(int(c.Cost+0.5), 1, 9)
	if cost == 1 {
		return TileOpen
	}
	return rune('0' + cost)
}
