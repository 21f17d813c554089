package routingalgorithm

import (
	"lintang/gridnav/pkg/datastructure"
)

type FrontierKind string

const (
	FrontierHeap   FrontierKind = "heap"
	FrontierLinear FrontierKind = "linear"
)

// frontier himpunan cell yang sudah ditemukan tapi belum di-expand.
// score terendah keluar duluan, kalau sama yang paling baru di-insert.
type frontier interface {
	push(c *datastructure.Cell, score float64)
	update(c *datastructure.Cell, score float64)
	popMin() *datastructure.Cell
	contains(c *datastructure.Cell) bool
	size() int
	cells() []*datastructure.Cell
}

func newFrontier(kind FrontierKind) frontier {
	if kind == FrontierLinear {
		return &linearFrontier{index: make(map[*datastructure.Cell]int)}
	}
	return &heapFrontier{heap: datastructure.NewMinHeap[*datastructure.Cell]()}
}

type heapFrontier struct {
	heap *datastructure.MinHeap[*datastructure.Cell]
	seq  uint64
}

func (f *heapFrontier) push(c *datastructure.Cell, score float64) {
	f.seq++
	f.heap.Insert(datastructure.PriorityQueueNode[*datastructure.Cell]{Rank: score, Seq: f.seq, Item: c})
}

func (f *heapFrontier) update(c *datastructure.Cell, score float64) {
	_ = f.heap.Update(c, score)
}

func (f *heapFrontier) popMin() *datastructure.Cell {
	n, err := f.heap.ExtractMin()
	if err != nil {
		return nil
	}
	return n.Item
}

func (f *heapFrontier) contains(c *datastructure.Cell) bool {
	return f.heap.Contains(c)
}

func (f *heapFrontier) size() int {
	return f.heap.Size()
}

func (f *heapFrontier) cells() []*datastructure.Cell {
	return f.heap.Items()
}

type linearEntry struct {
	cell  *datastructure.Cell
	score float64
	seq   uint64
}

// linearFrontier scan O(n) tiap pop, sama seperti versi awal yang pakai Vector.
type linearFrontier struct {
	entries []linearEntry
	index   map[*datastructure.Cell]int
	seq     uint64
}

func (f *linearFrontier) push(c *datastructure.Cell, score float64) {
	if i, ok := f.index[c]; ok {
		f.entries[i].score = score
		return
	}
	f.seq++
	f.index[c] = len(f.entries)
	f.entries = append(f.entries, linearEntry{cell: c, score: score, seq: f.seq})
}

func (f *linearFrontier) update(c *datastructure.Cell, score float64) {
	if i, ok := f.index[c]; ok {
		f.entries[i].score = score
	}
}

func (f *linearFrontier) popMin() *datastructure.Cell {
	if len(f.entries) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(f.entries); i++ {
		e, b := f.entries[i], f.entries[best]
		if e.score < b.score || (e.score == b.score && e.seq > b.seq) {
			best = i
		}
	}
	c := f.entries[best].cell

	last := len(f.entries) - 1
	f.entries[best] = f.entries[last]
	f.index[f.entries[best].cell] = best
	f.entries = f.entries[:last]
	delete(f.index, c)
	return c
}

func (f *linearFrontier) contains(c *datastructure.Cell) bool {
	_, ok := f.index[c]
	return ok
}

func (f *linearFrontier) size() int {
	return len(f.entries)
}

func (f *linearFrontier) cells() []*datastructure.Cell {
	cells := make([]*datastructure.Cell, len(f.entries))
	for i, e := range f.entries {
		cells[i] = e.cell
	}
	return cells
}
