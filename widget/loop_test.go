package widget

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T) (*Loop, context.CancelFunc) {
	t.Helper()
	loop := NewLoop(16)
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-loop.Done()
	})
	return loop, cancel
}

func TestLoop_RunsTasksInOrder(t *testing.T) {
	loop, _ := startLoop(t)

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		require.True(t, loop.Post(func() { order = append(order, i) }))
	}
	require.NoError(t, loop.Call(context.Background(), func() {}))

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestLoop_PostAfterStop(t *testing.T) {
	loop, cancel := startLoop(t)
	cancel()
	<-loop.Done()

	assert.False(t, loop.Post(func() {}))
	assert.ErrorIs(t, loop.Call(context.Background(), func() {}), ErrLoopStopped)
}

func TestLoopDispatcher_CompletesOnLoop(t *testing.T) {
	loop, _ := startLoop(t)
	d := NewLoopDispatcher(loop)

	done := make(chan int, 1)
	var value int
	d.Dispatch(func() { value = 42 }, func() { done <- value })

	select {
	case v := <-done:
		assert.Equal(t, 42, v)
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch did not complete")
	}
}

func TestLoopClock_AfterFunc(t *testing.T) {
	loop, _ := startLoop(t)
	clock := NewLoopClock(loop)

	fired := make(chan struct{})
	clock.AfterFunc(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestLoopClock_StopPreventsFire(t *testing.T) {
	loop, _ := startLoop(t)
	clock := NewLoopClock(loop)

	var fired atomic.Bool
	timer := clock.AfterFunc(20*time.Millisecond, func() { fired.Store(true) })
	timer.Stop()
	timer.Stop()

	time.Sleep(60 * time.Millisecond)
	require.NoError(t, loop.Call(context.Background(), func() {}))
	assert.False(t, fired.Load())
}

func TestLoopClock_Every(t *testing.T) {
	loop, _ := startLoop(t)
	clock := NewLoopClock(loop)

	var ticks atomic.Int32
	timer := clock.Every(5*time.Millisecond, func() { ticks.Add(1) })

	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, loop.Call(context.Background(), timer.Stop))
	require.NoError(t, loop.Call(context.Background(), func() {}))
	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, loop.Call(context.Background(), func() {}))
	assert.Equal(t, after, ticks.Load())
}
