package routingalgorithm

import (
	"fmt"

	"lintang/gridnav/pkg/datastructure"
	"lintang/gridnav/pkg/util"
)

// Path rute dari start ke finish, hasil jalan mundur lewat Predecessor lalu dibalik.
func (s *Search) Path() ([]*datastructure.Cell, error) {
	switch s.status {
	case NoPath:
		return nil, ErrNoPath
	case NotFound:
		return nil, ErrSearchNotFinished
	}

	path := []*datastructure.Cell{s.finish}
	curr := s.finish
	for curr != s.start {
		curr = curr.Predecessor
		if curr == nil {
			return nil, fmt.Errorf("backtrace from %s: predecessor chain does not reach start", s.finish.Pos)
		}
		path = append(path, curr)
	}
	util.ReverseG(path)
	return path, nil
}

// Cost dist finish, hanya valid setelah Found.
func (s *Search) Cost() float64 {
	if s.status != Found {
		return 0
	}
	return s.finish.Dist
}

type Snapshot struct {
	Status   Status
	Step     int
	Current  *datastructure.Coordinate
	Frontier []datastructure.Coordinate
	Closed   []datastructure.Coordinate
	Path     []datastructure.Coordinate
	Cost     float64
}

// Snapshot salinan state yang bisa dirender host di antara step.
func (s *Search) Snapshot() Snapshot {
	snap := Snapshot{
		Status:   s.status,
		Step:     s.steps,
		Frontier: coordinates(s.Frontier()),
		Closed:   coordinates(s.closedList),
	}
	if s.current != nil {
		c := s.current.Pos
		snap.Current = &c
	}
	if s.status == Found {
		path, err := s.Path()
		if err == nil {
			snap.Path = coordinates(path)
			snap.Cost = s.Cost()
		}
	}
	return snap
}

func coordinates(cells []*datastructure.Cell) []datastructure.Coordinate {
	coords := make([]datastructure.Coordinate, len(cells))
	for i, c := range cells {
		coords[i] = c.Pos
	}
	return coords
}

type Result struct {
	Path     []*datastructure.Cell
	Cost     float64
	Expanded int
	Found    bool
}

// FindPath jalankan search sampai status terminal. kalau tidak ada rute, return ErrNoPath
// bersama Result dengan Found=false.
func FindPath(cfg Config) (Result, error) {
	s, err := NewSearch(cfg)
	if err != nil {
		return Result{}, err
	}
	return Run(s)
}

// Run step search yang sudah dibuat sampai terminal.
func Run(s *Search) (Result, error) {
	status := s.Step()
	for !status.Terminal() {
		status = s.Step()
	}

	if status == NoPath {
		return Result{
			Path:     []*datastructure.Cell{},
			Expanded: s.Steps(),
			Found:    false,
		}, ErrNoPath
	}

	path, err := s.Path()
	if err != nil {
		return Result{}, err
	}
	return Result{
		Path:     path,
		Cost:     s.Cost(),
		Expanded: s.Steps(),
		Found:    true,
	}, nil
}
