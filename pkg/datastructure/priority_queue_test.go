package datastructure_test

import (
	"lintang/gridnav/pkg/datastructure"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeap(t *testing.T) {
	t.Run("extract in rank order", func(t *testing.T) {
		h := datastructure.NewMinHeap[string]()
		h.Insert(datastructure.PriorityQueueNode[string]{Rank: 5, Seq: 1, Item: "e"})
		h.Insert(datastructure.PriorityQueueNode[string]{Rank: 1, Seq: 2, Item: "a"})
		h.Insert(datastructure.PriorityQueueNode[string]{Rank: 3, Seq: 3, Item: "c"})
		h.Insert(datastructure.PriorityQueueNode[string]{Rank: 2, Seq: 4, Item: "b"})
		h.Insert(datastructure.PriorityQueueNode[string]{Rank: 4, Seq: 5, Item: "d"})

		min, err := h.GetMin()
		require.NoError(t, err)
		assert.Equal(t, "a", min.Item)

		got := []string{}
		for h.Size() > 0 {
			n, err := h.ExtractMin()
			require.NoError(t, err)
			got = append(got, n.Item)
		}
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got)

		_, err = h.ExtractMin()
		assert.ErrorIs(t, err, datastructure.ErrHeapEmpty)
		_, err = h.GetMin()
		assert.ErrorIs(t, err, datastructure.ErrHeapEmpty)
	})

	t.Run("equal rank, latest insert first", func(t *testing.T) {
		h := datastructure.NewMinHeap[int]()
		for i := 1; i <= 4; i++ {
			h.Insert(datastructure.PriorityQueueNode[int]{Rank: 7, Seq: uint64(i), Item: i})
		}
		got := []int{}
		for h.Size() > 0 {
			n, _ := h.ExtractMin()
			got = append(got, n.Item)
		}
		assert.Equal(t, []int{4, 3, 2, 1}, got)
	})

	t.Run("update moves item both ways", func(t *testing.T) {
		h := datastructure.NewMinHeap[string]()
		h.Insert(datastructure.PriorityQueueNode[string]{Rank: 1, Seq: 1, Item: "x"})
		h.Insert(datastructure.PriorityQueueNode[string]{Rank: 2, Seq: 2, Item: "y"})
		h.Insert(datastructure.PriorityQueueNode[string]{Rank: 3, Seq: 3, Item: "z"})

		require.NoError(t, h.Update("z", 0))
		min, _ := h.GetMin()
		assert.Equal(t, "z", min.Item)

		require.NoError(t, h.Update("z", 10))
		min, _ = h.GetMin()
		assert.Equal(t, "x", min.Item)

		n, ok := h.GetItem("z")
		assert.True(t, ok)
		assert.Equal(t, 10.0, n.Rank)
		assert.Equal(t, uint64(3), n.Seq)

		assert.ErrorIs(t, h.Update("nope", 1), datastructure.ErrKeyNotFound)
	})

	t.Run("insert existing item updates instead of duplicating", func(t *testing.T) {
		h := datastructure.NewMinHeap[string]()
		h.Insert(datastructure.PriorityQueueNode[string]{Rank: 5, Seq: 1, Item: "x"})
		h.Insert(datastructure.PriorityQueueNode[string]{Rank: 2, Seq: 2, Item: "x"})
		assert.Equal(t, 1, h.Size())
		assert.True(t, h.Contains("x"))
		assert.ElementsMatch(t, []string{"x"}, h.Items())

		n, _ := h.ExtractMin()
		assert.Equal(t, 2.0, n.Rank)
		assert.False(t, h.Contains("x"))
	})
}
