package ptycore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowSizeWithOverride(t *testing.T) {
	base := WindowSize{Cols: 80, Rows: 24}

	assert.Equal(t, base, base.WithOverride(nil, nil))

	cols := uint16(120)
	got := base.WithOverride(&cols, nil)
	assert.Equal(t, WindowSize{Cols: 120, Rows: 24}, got)

	rows := uint16(40)
	got = base.WithOverride(&cols, &rows)
	assert.Equal(t, WindowSize{Cols: 120, Rows: 40}, got)

	// base itself is unmodified
	assert.Equal(t, WindowSize{Cols: 80, Rows: 24}, base)
}
