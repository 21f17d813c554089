package routingalgorithm

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"lintang/gridnav/pkg/datastructure"
)

var (
	ErrEmptyGrid         = errors.New("grid is empty")
	ErrOutOfBounds       = errors.New("coordinate outside grid")
	ErrBlockedEndpoint   = errors.New("start or finish cell is blocked")
	ErrNoPath            = errors.New("no path found")
	ErrSearchNotFinished = errors.New("search has not found the finish yet")
	ErrUnknownOption     = errors.New("unknown relaxation or frontier kind")
)

type Status int

const (
	NotFound Status = iota
	Found
	NoPath
)

func (s Status) String() string {
	switch s {
	case Found:
		return "FOUND"
	case NoPath:
		return "NO_PATH"
	default:
		return "NOT_FOUND"
	}
}

func (s Status) Terminal() bool {
	return s != NotFound
}

type Relaxation string

const (
	// RelaxMinimum relaxation biasa: dist = min(dist, cand).
	RelaxMinimum Relaxation = "minimum"
	// RelaxAccumulate dist neighbor selalu ditambah dist cell yang di-expand + cost neighbor,
	// sama persis dengan implementasi lama.
	RelaxAccumulate Relaxation = "accumulate"
)

type Config struct {
	Grid       *datastructure.Grid
	Start      datastructure.Coordinate
	Finish     datastructure.Coordinate
	Heuristic  Heuristic
	Relaxation Relaxation
	Frontier   FrontierKind
	Logger     *slog.Logger
}

// Search state satu pencarian. Step() dipanggil berulang oleh host sampai status terminal.
// tidak aman dipakai dari beberapa goroutine sekaligus.
type Search struct {
	grid       *datastructure.Grid
	start      *datastructure.Cell
	finish     *datastructure.Cell
	heuristic  Heuristic
	relaxation Relaxation
	minCost    float64

	frontier   frontier
	closed     map[*datastructure.Cell]struct{}
	closedList []*datastructure.Cell
	current    *datastructure.Cell

	steps  int
	status Status
}

// MinCost cost tile termurah di seluruh grid (cell blocked ikut dihitung).
func MinCost(g *datastructure.Grid) (float64, error) {
	if g.Size() == 0 {
		return 0, ErrEmptyGrid
	}
	minCost := math.MaxFloat64
	for _, c := range g.Cells() {
		minCost = math.Min(c.Cost, minCost)
	}
	return minCost, nil
}

// NewSearch validasi config, reset grid, hitung minCost lalu taruh start di frontier.
func NewSearch(cfg Config) (*Search, error) {
	if cfg.Grid.Size() == 0 {
		return nil, fmt.Errorf("new search: %w", ErrEmptyGrid)
	}
	g := cfg.Grid
	start := g.CellAt(cfg.Start)
	if start == nil {
		return nil, fmt.Errorf("new search: start %s: %w", cfg.Start, ErrOutOfBounds)
	}
	finish := g.CellAt(cfg.Finish)
	if finish == nil {
		return nil, fmt.Errorf("new search: finish %s: %w", cfg.Finish, ErrOutOfBounds)
	}
	if start.Blocked {
		return nil, fmt.Errorf("new search: start %s: %w", cfg.Start, ErrBlockedEndpoint)
	}
	if finish.Blocked {
		return nil, fmt.Errorf("new search: finish %s: %w", cfg.Finish, ErrBlockedEndpoint)
	}

	heuristic := cfg.Heuristic
	if heuristic == nil {
		heuristic = DefaultHeuristic()
	}
	relaxation := cfg.Relaxation
	switch relaxation {
	case "":
		relaxation = RelaxMinimum
	case RelaxMinimum, RelaxAccumulate:
	default:
		return nil, fmt.Errorf("new search: relaxation %q: %w", relaxation, ErrUnknownOption)
	}
	switch cfg.Frontier {
	case "", FrontierHeap, FrontierLinear:
	default:
		return nil, fmt.Errorf("new search: frontier %q: %w", cfg.Frontier, ErrUnknownOption)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	minCost, err := MinCost(g)
	if err != nil {
		return nil, fmt.Errorf("new search: %w", err)
	}
	logger.Debug("cheapest tile", slog.Float64("min_cost", minCost),
		slog.Int("width", g.Width()), slog.Int("height", g.Height()),
		slog.String("heuristic", heuristic.Name()), slog.String("relaxation", string(relaxation)))

	g.Reset()
	s := &Search{
		grid:       g,
		start:      start,
		finish:     finish,
		heuristic:  heuristic,
		relaxation: relaxation,
		minCost:    minCost,
		frontier:   newFrontier(cfg.Frontier),
		closed:     make(map[*datastructure.Cell]struct{}),
		status:     NotFound,
	}
	s.frontier.push(start, s.score(start))
	return s, nil
}

func (s *Search) score(c *datastructure.Cell) float64 {
	return c.Dist + s.heuristic.Estimate(c.Pos, s.finish.Pos, s.minCost)
}

// Step expand tepat satu cell dari frontier.
func (s *Search) Step() Status {
	if s.status.Terminal() {
		return s.status
	}
	if s.start == s.finish {
		s.current = s.start
		s.status = Found
		return s.status
	}
	if s.frontier.size() == 0 {
		s.status = NoPath
		return s.status
	}

	s.steps++
	now := s.frontier.popMin()
	s.closed[now] = struct{}{}
	s.closedList = append(s.closedList, now)
	s.current = now

	found := false
	for _, next := range s.grid.Adjacent(now) {
		if next == nil {
			continue
		}
		if next == s.finish {
			found = true
		}
		if !next.Blocked && !s.IsClosed(next) {
			s.relax(now, next)
		}
		if found {
			s.status = Found
			return s.status
		}
	}
	return NotFound
}

func (s *Search) relax(now, next *datastructure.Cell) {
	inFrontier := s.frontier.contains(next)
	switch s.relaxation {
	case RelaxAccumulate:
		next.Dist += now.Dist + next.Cost
		next.Predecessor = now
	default:
		cand := now.Dist + next.Cost
		if inFrontier && cand >= next.Dist {
			return
		}
		next.Dist = cand
		next.Predecessor = now
	}

	if inFrontier {
		s.frontier.update(next, s.score(next))
		return
	}
	s.frontier.push(next, s.score(next))
}

func (s *Search) Status() Status {
	return s.status
}

func (s *Search) Steps() int {
	return s.steps
}

func (s *Search) MinCost() float64 {
	return s.minCost
}

func (s *Search) Start() *datastructure.Cell {
	return s.start
}

func (s *Search) Finish() *datastructure.Cell {
	return s.finish
}

// Current cell yang terakhir di-expand, nil sebelum step pertama.
func (s *Search) Current() *datastructure.Cell {
	return s.current
}

func (s *Search) Frontier() []*datastructure.Cell {
	return s.frontier.cells()
}

// Closed urutan sesuai waktu expand.
func (s *Search) Closed() []*datastructure.Cell {
	closed := make([]*datastructure.Cell, len(s.closedList))
	copy(closed, s.closedList)
	return closed
}

func (s *Search) InFrontier(c *datastructure.Cell) bool {
	return s.frontier.contains(c)
}

func (s *Search) IsClosed(c *datastructure.Cell) bool {
	_, ok := s.closed[c]
	return ok
}
