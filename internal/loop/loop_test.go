package loop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// start runs l until the test ends.
func start(t *testing.T, l *Loop) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = l.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-l.Done()
	})
}

// TestLoop_RunsInOrder verifies posted work runs in submission order.
func TestLoop_RunsInOrder(t *testing.T) {
	l := New(0)
	start(t, l)

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		require.True(t, l.Post(func() { got = append(got, i) }))
	}
	require.NoError(t, l.Do(context.Background(), func() {}))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

// TestLoop_RecoversPanics verifies a failing task does not stop the loop.
func TestLoop_RecoversPanics(t *testing.T) {
	l := New(4)
	start(t, l)

	l.Post(func() { panic("boom") })
	ran := false
	require.NoError(t, l.Do(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

// TestLoop_AfterFuncRunsOnLoop verifies timers deliver through the queue.
func TestLoop_AfterFuncRunsOnLoop(t *testing.T) {
	l := New(4)
	start(t, l)

	fired := make(chan struct{})
	l.Post(func() {
		l.AfterFunc(5*time.Millisecond, func() { close(fired) })
	})
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

// TestLoop_StoppedTimerNeverRuns verifies Stop wins even after the deadline passed.
func TestLoop_StoppedTimerNeverRuns(t *testing.T) {
	l := New(4)
	start(t, l)

	ran := false
	var stopped bool
	require.NoError(t, l.Do(context.Background(), func() {
		tm := l.AfterFunc(time.Millisecond, func() { ran = true })
		time.Sleep(20 * time.Millisecond)
		stopped = tm.Stop()
	}))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, l.Do(context.Background(), func() {}))
	assert.True(t, stopped)
	assert.False(t, ran)
}

// TestLoop_ClosedRejectsWork verifies submissions fail once Run returned.
func TestLoop_ClosedRejectsWork(t *testing.T) {
	l := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.Run(ctx), context.Canceled)

	assert.False(t, l.Post(func() {}))
	assert.ErrorIs(t, l.Do(context.Background(), func() {}), ErrClosed)
}
