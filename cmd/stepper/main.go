package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lintang/gridnav/pkg/datastructure"
	"lintang/gridnav/pkg/engine/routingalgorithm"
	"lintang/gridnav/pkg/gridparser"
	"lintang/gridnav/pkg/util"

	"github.com/go-chi/httplog/v2"
	"github.com/k0kubun/go-ansi"
)

var (
	mapFile    = flag.String("f", "maps/maze.map", "file peta ASCII dengan marker S dan F")
	interval   = flag.Duration("interval", 100*time.Millisecond, "jeda antar step")
	frontier   = flag.String("frontier", string(routingalgorithm.FrontierHeap), "heap atau linear")
	relaxation = flag.String("relaxation", string(routingalgorithm.RelaxMinimum), "minimum atau accumulate")
	offset     = flag.Float64("offset", 1, "offset heuristic manhattan")
	verbose    = flag.Bool("v", false, "debug log ke stderr")
)

const (
	markClosed   = 'o'
	markFrontier = '+'
	markCurrent  = '@'
	markPath     = '*'
)

// warna SGR per tile
var tileColor = map[rune]string{
	markClosed:             "\x1b[34m",
	markFrontier:           "\x1b[33m",
	markCurrent:            "\x1b[1;35m",
	markPath:               "\x1b[1;32m",
	gridparser.TileStart:   "\x1b[1;36m",
	gridparser.TileFinish:  "\x1b[1;31m",
	gridparser.TileBlocked: "\x1b[90m",
}

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(httplog.NewPrettyHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	m, err := gridparser.NewGridParser(false).ParseFile(*mapFile)
	if err != nil {
		log.Fatal(err)
	}
	if !m.HasStart || !m.HasFinish {
		log.Fatalf("map %s needs both S and F markers", m.Name)
	}

	search, err := routingalgorithm.NewSearch(routingalgorithm.Config{
		Grid:       m.Grid,
		Start:      m.Start,
		Finish:     m.Finish,
		Heuristic:  routingalgorithm.ManhattanHeuristic{Offset: *offset},
		Relaxation: routingalgorithm.Relaxation(*relaxation),
		Frontier:   routingalgorithm.FrontierKind(*frontier),
		Logger:     logger,
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := ansi.NewAnsiStdout()
	ansi.CursorHide()
	defer ansi.CursorShow()

	draw(out, m, search, false)
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	status := search.Status()
	for !status.Terminal() {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\ninterrupted")
			return
		case <-ticker.C:
			status = search.Step()
			draw(out, m, search, true)
		}
	}

	snap := search.Snapshot()
	switch status {
	case routingalgorithm.Found:
		fmt.Fprintf(out, "\nFOUND after %d steps, path length %d, cost %v\n", snap.Step, len(snap.Path), util.RoundFloat(snap.Cost, 2))
	default:
		fmt.Fprintf(out, "\nNO_PATH after %d steps\n", snap.Step)
	}
}

// draw tulis ulang grid di tempat yang sama. redraw=true naik ke awal frame sebelumnya dulu.
func draw(out io.Writer, m *gridparser.Map, s *routingalgorithm.Search, redraw bool) {
	h := m.Grid.Height()
	if redraw {
		ansi.CursorPreviousLine(h + 1)
	}

	snap := s.Snapshot()
	for _, row := range gridparser.Render(m.Grid, marks(m, snap)) {
		ansi.EraseInLine(2)
		fmt.Fprintln(out, colorize(row))
	}
	ansi.EraseInLine(2)
	fmt.Fprintf(out, "step %-6d status %-9s frontier %-6d closed %d\n", snap.Step, snap.Status, len(snap.Frontier), len(snap.Closed))
}

func marks(m *gridparser.Map, snap routingalgorithm.Snapshot) map[datastructure.Coordinate]rune {
	mk := make(map[datastructure.Coordinate]rune, len(snap.Closed)+len(snap.Frontier))
	for _, c := range snap.Closed {
		mk[c] = markClosed
	}
	for _, c := range snap.Frontier {
		mk[c] = markFrontier
	}
	for _, c := range snap.Path {
		mk[c] = markPath
	}
	if snap.Current != nil {
		mk[*snap.Current] = markCurrent
	}
	mk[m.Start] = gridparser.TileStart
	mk[m.Finish] = gridparser.TileFinish
	return mk
}

func colorize(row string) string {
	var sb strings.Builder
	for _, r := range row {
		if c, ok := tileColor[r]; ok {
			sb.WriteString(c)
			sb.WriteRune(r)
			sb.WriteString("\x1b[0m")
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
