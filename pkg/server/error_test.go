package server_test

import (
	"errors"
	"testing"

	"lintang/gridnav/pkg/server"

	"github.com/stretchr/testify/assert"
)

func TestWrapErrorf(t *testing.T) {
	orig := errors.New("pebble: not found")
	err := server.WrapErrorf(orig, server.ErrNotFound, "grid %s not found", "maze")

	assert.Equal(t, "grid maze not found: pebble: not found", err.Error())
	assert.ErrorIs(t, err, orig)

	var serr *server.Error
	assert.True(t, errors.As(err, &serr))
	assert.Equal(t, server.ErrNotFound, serr.Code())
	assert.Equal(t, "grid maze not found", serr.Message())

	noOrig := server.WrapErrorf(nil, server.ErrBadParamInput, "bad %d", 1)
	assert.Equal(t, "bad 1", noOrig.Error())
}
