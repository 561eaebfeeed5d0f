package env

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tacs/internal/flops"
	"github.com/roach88/tacs/internal/threads"
)

func TestNew_Defaults(t *testing.T) {
	e := New(Options{})
	defer e.Close()

	require.NotNil(t, e.Logger)
	require.NotNil(t, e.Flops)
	assert.Equal(t, 1, e.Threads().NumThreads())
	assert.Equal(t, 1, e.Threads().RefCount())
}

func TestSetNumThreads_LogsClip(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := New(Options{Logger: logger, NumThreads: 4})
	defer e.Close()
	assert.Empty(t, buf.String())
	assert.Equal(t, 4, e.Threads().NumThreads())

	got := e.SetNumThreads(99)
	assert.Equal(t, threads.MaxThreads, got)
	assert.Contains(t, buf.String(), "thread count clipped")
	assert.Contains(t, buf.String(), "requested=99")
}

func TestAddFlops(t *testing.T) {
	e := New(Options{})
	defer e.Close()

	e.AddFlops(12)
	if flops.Enabled {
		assert.Equal(t, 12.0, e.Flops.Total())
	} else {
		assert.Zero(t, e.Flops.Total())
	}

	var nilEnv *Env
	nilEnv.AddFlops(1)
}
