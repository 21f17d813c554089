package kv

import (
	"fmt"

	"lintang/gridnav/pkg/concurrent"
	"lintang/gridnav/pkg/datastructure"
	"lintang/gridnav/pkg/gridparser"

	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

// toRecord flatten map jadi record yang bisa di-encode kelindar/binary.
func toRecord(m *gridparser.Map) concurrent.GridRecord {
	g := m.Grid
	rec := concurrent.GridRecord{
		Name:      m.Name,
		Width:     int32(g.Width()),
		Height:    int32(g.Height()),
		Costs:     make([]float64, g.Size()),
		Blocked:   make([]bool, g.Size()),
		StartX:    int32(m.Start.X),
		StartY:    int32(m.Start.Y),
		FinishX:   int32(m.Finish.X),
		FinishY:   int32(m.Finish.Y),
		HasStart:  m.HasStart,
		HasFinish: m.HasFinish,
	}
	for i, c := range g.Cells() {
		rec.Costs[i] = c.Cost
		rec.Blocked[i] = c.Blocked
	}
	return rec
}

func fromRecord(rec concurrent.GridRecord) (*gridparser.Map, error) {
	g, err := datastructure.NewGrid(int(rec.Width), int(rec.Height))
	if err != nil {
		return nil, err
	}
	if len(rec.Costs) != g.Size() || len(rec.Blocked) != g.Size() {
		return nil, fmt.Errorf("grid record %s: %d costs, %d blocked for %dx%d grid",
			rec.Name, len(rec.Costs), len(rec.Blocked), rec.Width, rec.Height)
	}
	for i, c := range g.Cells() {
		c.Cost = rec.Costs[i]
		c.Blocked = rec.Blocked[i]
	}
	return &gridparser.Map{
		Name:      rec.Name,
		Grid:      g,
		Start:     datastructure.NewCoordinate(int(rec.StartX), int(rec.StartY)),
		Finish:    datastructure.NewCoordinate(int(rec.FinishX), int(rec.FinishY)),
		HasStart:  rec.HasStart,
		HasFinish: rec.HasFinish,
	}, nil
}

func Encode(rec concurrent.GridRecord) ([]byte, error) {
	return binary.Marshal(rec)
}

func Decode(bb []byte) (concurrent.GridRecord, error) {
	var rec concurrent.GridRecord
	err := binary.Unmarshal(bb, &rec)
	return rec, err
}

func Compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func Decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}

	return bb, nil
}

func CompressGrid(rec concurrent.GridRecord) ([]byte, error) {
	bb, err := Encode(rec)
	if err != nil {
		return nil, err
	}
	return Compress(bb)
}

func LoadGrid(bbCompressed []byte) (*gridparser.Map, error) {
	bb, err := Decompress(bbCompressed)
	if err != nil {
		return nil, err
	}
	rec, err := Decode(bb)
	if err != nil {
		return nil, err
	}
	return fromRecord(rec)
}
