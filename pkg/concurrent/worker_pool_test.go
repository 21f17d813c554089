package concurrent_test

import (
	"sort"
	"testing"

	"lintang/gridnav/pkg/concurrent"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	t.Run("every job produces one result", func(t *testing.T) {
		names := []string{"a", "b", "c", "d", "e"}
		wp := concurrent.NewWorkerPool[concurrent.SaveGridJobItem, string](3, len(names))
		for _, n := range names {
			wp.AddJob(concurrent.SaveGridJobItem{KeyStr: "grid:" + n, Record: concurrent.GridRecord{Name: n}})
		}
		wp.Close()

		wp.Start(func(job concurrent.SaveGridJobItem) string {
			return job.KeyStr
		})
		wp.Wait()

		got := []string{}
		for res := range wp.CollectResults() {
			got = append(got, res)
		}
		sort.Strings(got)
		assert.Equal(t, []string{"grid:a", "grid:b", "grid:c", "grid:d", "grid:e"}, got)
	})

	t.Run("zero workers falls back to one", func(t *testing.T) {
		wp := concurrent.NewWorkerPool[concurrent.SaveGridJobItem, int](0, 1)
		wp.AddJob(concurrent.SaveGridJobItem{})
		wp.Close()
		wp.Start(func(concurrent.SaveGridJobItem) int { return 1 })
		wp.Wait()
		assert.Len(t, wp.CollectResults(), 1)
	})
}
