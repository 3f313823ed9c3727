package realtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySinkRecords(t *testing.T) {
	sink := NewMemorySink()
	ctx := context.Background()

	require.NoError(t, sink.Push(ctx, 1, "new_message", "a"))
	require.NoError(t, sink.Push(ctx, 2, "new_notification", "b"))
	require.NoError(t, sink.Push(ctx, 1, "typing", "c"))

	assert.Len(t, sink.Events(), 3)

	forOne := sink.EventsFor(1)
	require.Len(t, forOne, 2)
	assert.Equal(t, "new_message", forOne[0].Event)
	assert.Equal(t, "typing", forOne[1].Event)
}

func TestMultiSinkFansOut(t *testing.T) {
	a := NewMemorySink()
	b := NewMemorySink()
	multi := MultiSink{a, b}

	require.NoError(t, multi.Push(context.Background(), 7, "new_message", "x"))
	assert.Len(t, a.EventsFor(7), 1)
	assert.Len(t, b.EventsFor(7), 1)
}

func TestMultiSinkPartialFailure(t *testing.T) {
	failing := NewMemorySink()
	failing.Fail = assert.AnError
	healthy := NewMemorySink()
	multi := MultiSink{failing, healthy}

	err := multi.Push(context.Background(), 7, "new_message", "x")
	assert.Error(t, err)
	// The healthy sink still got the event.
	assert.Len(t, healthy.EventsFor(7), 1)
}
