package widget

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

var ErrLoopStopped = errors.New("event loop stopped")

// Loop runs tasks one at a time on a single goroutine. Controller state is
// only ever touched from inside a task.
type Loop struct {
	tasks chan func()
	done  chan struct{}
}

func NewLoop(buffer int) *Loop {
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Run drains the queue until ctx is cancelled. It must be called once.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-l.tasks:
			task()
		}
	}
}

// Post queues task. It reports false when the loop has stopped.
func (l *Loop) Post(task func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- task:
		return true
	case <-l.done:
		return false
	}
}

// Call queues fn and waits until it has run.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrLoopStopped
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Dispatcher runs blocking work off the loop, then runs done on the loop.
type Dispatcher interface {
	Dispatch(work func(), done func())
}

type Timer interface {
	Stop()
}

// Clock schedules callbacks. Callbacks run on the loop.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Every(d time.Duration, f func()) Timer
}

type loopDispatcher struct {
	loop *Loop
}

func NewLoopDispatcher(loop *Loop) Dispatcher {
	return loopDispatcher{loop: loop}
}

func (d loopDispatcher) Dispatch(work func(), done func()) {
	go func() {
		work()
		d.loop.Post(done)
	}()
}

type loopClock struct {
	loop *Loop
}

func NewLoopClock(loop *Loop) Clock {
	return loopClock{loop: loop}
}

type loopTimer struct {
	stopped atomic.Bool
	stop    func()
}

func (t *loopTimer) Stop() {
	if t.stopped.Swap(true) {
		return
	}
	t.stop()
}

func (c loopClock) AfterFunc(d time.Duration, f func()) Timer {
	lt := &loopTimer{}
	timer := time.AfterFunc(d, func() {
		c.loop.Post(func() {
			// Stop may have won the race after the callback was queued.
			if lt.stopped.Swap(true) {
				return
			}
			f()
		})
	})
	lt.stop = func() { timer.Stop() }
	return lt
}

func (c loopClock) Every(d time.Duration, f func()) Timer {
	lt := &loopTimer{}
	ticker := time.NewTicker(d)
	quit := make(chan struct{})
	lt.stop = func() {
		ticker.Stop()
		close(quit)
	}
	go func() {
		for {
			select {
			case <-quit:
				return
			case <-c.loop.Done():
				ticker.Stop()
				return
			case <-ticker.C:
				c.loop.Post(func() {
					if lt.stopped.Load() {
						return
					}
					f()
				})
			}
		}
	}()
	return lt
}
