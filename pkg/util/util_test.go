package util_test

import (
	"lintang/gridnav/pkg/util"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUtil(t *testing.T) {
	t.Run("round float", func(t *testing.T) {
		assert.Equal(t, 3.14, util.RoundFloat(3.14159, 2))
		assert.Equal(t, 2.0, util.RoundFloat(1.999, 1))
	})

	t.Run("reverse", func(t *testing.T) {
		arr := []int{1, 2, 3, 4}
		util.ReverseG(arr)
		assert.Equal(t, []int{4, 3, 2, 1}, arr)

		empty := []string{}
		util.ReverseG(empty)
		assert.Empty(t, empty)
	})

	t.Run("clamp", func(t *testing.T) {
		assert.Equal(t, 0, util.Clamp(-3, 0, 9))
		assert.Equal(t, 9, util.Clamp(12, 0, 9))
		assert.Equal(t, 4, util.Clamp(4, 0, 9))
	})
}
