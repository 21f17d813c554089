package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lintang/gridnav/pkg/datastructure"
	"lintang/gridnav/pkg/engine/routingalgorithm"
	"lintang/gridnav/pkg/gridparser"
	"lintang/gridnav/pkg/server"
	"lintang/gridnav/pkg/snapping"

	"github.com/twpayne/go-polyline"
)

type KVDB interface {
	SaveGrid(name string, m *gridparser.Map) error
	GetGrid(name string) (*gridparser.Map, error)
	ListGrids() ([]string, error)
	DeleteGrid(name string) error
}

const (
	HeuristicManhattan   = "manhattan"
	HeuristicUniformCost = "uniform-cost"
)

// SearchRequest grid diambil dari GridName (kv) atau Rows (inline). Start/Finish nil berarti
// pakai marker S/F di peta.
type SearchRequest struct {
	GridName        string
	Rows            []string
	Start           *datastructure.Coordinate
	Finish          *datastructure.Coordinate
	Relaxation      routingalgorithm.Relaxation
	Frontier        routingalgorithm.FrontierKind
	Heuristic       string
	HeuristicOffset *float64
	Snap            bool
}

type ShortestPathResult struct {
	Found     bool
	Cost      float64
	Path      []datastructure.Coordinate
	Polyline  string
	Expanded  int
	Start     datastructure.Coordinate
	Finish    datastructure.Coordinate
	Algorithm string
}

type NavigationService struct {
	KV       KVDB
	parser   *gridparser.GridParser
	sessions *sessionStore
	logger   *slog.Logger
}

func NewNavigationService(kv KVDB, logger *slog.Logger, sessionTTL time.Duration, maxSessions int) *NavigationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NavigationService{
		KV:       kv,
		parser:   gridparser.NewGridParser(false),
		sessions: newSessionStore(sessionTTL, maxSessions),
		logger:   logger,
	}
}

func (uc *NavigationService) SaveGrid(ctx context.Context, name string, rows []string) (*gridparser.Map, error) {
	m, err := uc.parser.FromRows(name, rows)
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrBadParamInput, "invalid map rows")
	}
	if err := uc.KV.SaveGrid(name, m); err != nil {
		return nil, err
	}
	uc.logger.InfoContext(ctx, "grid saved", slog.String("grid", name),
		slog.Int("width", m.Grid.Width()), slog.Int("height", m.Grid.Height()))
	return m, nil
}

func (uc *NavigationService) GetGrid(ctx context.Context, name string) (*gridparser.Map, error) {
	return uc.KV.GetGrid(name)
}

func (uc *NavigationService) ListGrids(ctx context.Context) ([]string, error) {
	return uc.KV.ListGrids()
}

func (uc *NavigationService) DeleteGrid(ctx context.Context, name string) error {
	return uc.KV.DeleteGrid(name)
}

// ShortestPath jalankan search sampai terminal. tidak ada rute bukan error: Found=false.
func (uc *NavigationService) ShortestPath(ctx context.Context, req SearchRequest) (ShortestPathResult, error) {
	search, algorithm, err := uc.newSearch(ctx, req)
	if err != nil {
		return ShortestPathResult{}, err
	}

	status := routingalgorithm.NotFound
	for !status.Terminal() {
		if err := ctx.Err(); err != nil {
			return ShortestPathResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "search canceled after %d steps", search.Steps())
		}
		status = search.Step()
	}

	res := ShortestPathResult{
		Found:     status == routingalgorithm.Found,
		Path:      []datastructure.Coordinate{},
		Expanded:  search.Steps(),
		Start:     search.Start().Pos,
		Finish:    search.Finish().Pos,
		Algorithm: algorithm,
	}
	if !res.Found {
		uc.logger.DebugContext(ctx, "no path", slog.String("start", res.Start.String()), slog.String("finish", res.Finish.String()),
			slog.Int("expanded", res.Expanded))
		return res, nil
	}

	path, err := search.Path()
	if err != nil {
		return ShortestPathResult{}, server.WrapErrorf(err, server.ErrInternalServerError, server.MessageInternalServerError)
	}
	for _, c := range path {
		res.Path = append(res.Path, c.Pos)
	}
	res.Cost = search.Cost()
	res.Polyline = EncodePolyline(res.Path)
	return res, nil
}

// EncodePolyline encode path sebagai pasangan [y, x] pakai google polyline.
func EncodePolyline(path []datastructure.Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{float64(p.Y), float64(p.X)})
	}
	return string(polyline.EncodeCoords(coords))
}

// newSearch load grid, resolve start/finish, pilih heuristic lalu bikin routingalgorithm.Search.
func (uc *NavigationService) newSearch(ctx context.Context, req SearchRequest) (*routingalgorithm.Search, string, error) {
	m, err := uc.loadMap(req)
	if err != nil {
		return nil, "", err
	}

	start, err := resolveEndpoint("start", req.Start, m.Start, m.HasStart)
	if err != nil {
		return nil, "", err
	}
	finish, err := resolveEndpoint("finish", req.Finish, m.Finish, m.HasFinish)
	if err != nil {
		return nil, "", err
	}

	if req.Snap {
		idx := snapping.NewWalkableIndex(m.Grid)
		snappedStart, err := idx.Snap(start)
		if err != nil {
			return nil, "", server.WrapErrorf(err, server.ErrBadParamInput, "cannot snap start %s", start)
		}
		snappedFinish, err := idx.Snap(finish)
		if err != nil {
			return nil, "", server.WrapErrorf(err, server.ErrBadParamInput, "cannot snap finish %s", finish)
		}
		start, finish = snappedStart, snappedFinish
	}

	heuristic, err := buildHeuristic(req.Heuristic, req.HeuristicOffset)
	if err != nil {
		return nil, "", err
	}
	frontier := req.Frontier
	if frontier == "" {
		frontier = routingalgorithm.FrontierHeap
	}
	relaxation := req.Relaxation
	if relaxation == "" {
		relaxation = routingalgorithm.RelaxMinimum
	}

	search, err := routingalgorithm.NewSearch(routingalgorithm.Config{
		Grid:       m.Grid,
		Start:      start,
		Finish:     finish,
		Heuristic:  heuristic,
		Relaxation: relaxation,
		Frontier:   frontier,
		Logger:     uc.logger,
	})
	if err != nil {
		if errors.Is(err, routingalgorithm.ErrEmptyGrid) {
			return nil, "", server.WrapErrorf(err, server.ErrInternalServerError, server.MessageInternalServerError)
		}
		return nil, "", server.WrapErrorf(err, server.ErrBadParamInput, "invalid search endpoints")
	}

	algorithm := fmt.Sprintf("A* %s heuristic, %s frontier, %s relaxation", heuristic.Name(), frontier, relaxation)
	return search, algorithm, nil
}

func (uc *NavigationService) loadMap(req SearchRequest) (*gridparser.Map, error) {
	if len(req.Rows) > 0 {
		m, err := uc.parser.FromRows("inline", req.Rows)
		if err != nil {
			return nil, server.WrapErrorf(err, server.ErrBadParamInput, "invalid map rows")
		}
		return m, nil
	}
	if req.GridName == "" {
		return nil, server.WrapErrorf(nil, server.ErrBadParamInput, "either grid_name or rows is required")
	}
	return uc.KV.GetGrid(req.GridName)
}

func resolveEndpoint(which string, requested *datastructure.Coordinate, marker datastructure.Coordinate, hasMarker bool) (datastructure.Coordinate, error) {
	if requested != nil {
		return *requested, nil
	}
	if hasMarker {
		return marker, nil
	}
	return datastructure.Coordinate{}, server.WrapErrorf(nil, server.ErrBadParamInput, "%s is required, the map has no marker for it", which)
}

func buildHeuristic(name string, offset *float64) (routingalgorithm.Heuristic, error) {
	switch name {
	case "", HeuristicManhattan:
		h := routingalgorithm.DefaultHeuristic()
		if offset != nil {
			h.Offset = *offset
		}
		return h, nil
	case HeuristicUniformCost:
		return routingalgorithm.UniformCostHeuristic{}, nil
	default:
		return nil, server.WrapErrorf(nil, server.ErrBadParamInput, "unknown heuristic %q", name)
	}
}
