package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anoma/Semitopology-Checker/internal/openset"
)

func TestTraceDisabledByDefaultRecordsNothing(t *testing.T) {
	var tr *Trace
	tr.Record(EventEmit, 3, 0, nil)
	assert.Nil(t, tr.Snapshot())

	tr = NewTrace(0)
	tr.Record(EventEmit, 3, 0, nil)
	assert.Nil(t, tr.Snapshot())
}

func TestTraceRingBufferRetainsMostRecent(t *testing.T) {
	tr := NewTrace(2)
	tr.Record(EventBatchStart, 3, 0, nil)
	tr.Record(EventEmit, 3, 0, nil)
	tr.Record(EventEmit, 3, 1, nil)

	snap := tr.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, EventEmit, snap[0].Kind)
	assert.Equal(t, 0, snap[0].Depth)
	assert.Equal(t, EventEmit, snap[1].Kind)
	assert.Equal(t, 1, snap[1].Depth)
}

func TestGenerateWithTraceRecordsEmitAndBatchEvents(t *testing.T) {
	tr := NewTrace(64)
	stats := Generate(context.Background(), Config{N: 2, Mode: Semitopology, Trace: tr}, func(depth int, f openset.Family) bool {
		return true
	})
	_ = stats

	snap := tr.Snapshot()
	require.NotEmpty(t, snap)
	var sawEmit, sawBatchStart bool
	for _, ev := range snap {
		if ev.Kind == EventEmit {
			sawEmit = true
		}
		if ev.Kind == EventBatchStart {
			sawBatchStart = true
		}
	}
	assert.True(t, sawEmit)
	assert.True(t, sawBatchStart)
}
