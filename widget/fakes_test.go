package widget

import (
	"time"

	"github.com/fhsmendes/weather-widget/chart"
	"github.com/fhsmendes/weather-widget/dom"
)

// manualClock fires timers only when Advance is called.
type manualClock struct {
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	period  time.Duration
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() { t.stopped = true }

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{at: c.now + d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) Every(d time.Duration, f func()) Timer {
	t := &manualTimer{at: c.now + d, period: d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		var next *manualTimer
		for _, t := range c.timers {
			if t.stopped || t.at > target {
				continue
			}
			if next == nil || t.at < next.at {
				next = t
			}
		}
		if next == nil {
			break
		}
		c.now = next.at
		if next.period > 0 {
			next.at += next.period
		} else {
			next.stopped = true
		}
		next.fn()
	}
	c.now = target
}

// live returns the active timers, periodic ones when periodic is set.
func (c *manualClock) live(periodic bool) []*manualTimer {
	var out []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && (t.period > 0) == periodic {
			out = append(out, t)
		}
	}
	return out
}

// queuedDispatcher holds dispatched work until the test runs it, which lets
// tests resolve requests in any order.
type queuedDispatcher struct {
	jobs []job
}

type job struct {
	work func()
	done func()
}

func (d *queuedDispatcher) Dispatch(work func(), done func()) {
	d.jobs = append(d.jobs, job{work: work, done: done})
}

func (d *queuedDispatcher) Pending() int { return len(d.jobs) }

// Flush runs queued jobs in order, including jobs queued by completions.
func (d *queuedDispatcher) Flush() {
	for len(d.jobs) > 0 {
		d.RunAt(0)
	}
}

func (d *queuedDispatcher) RunAt(i int) {
	j := d.jobs[i]
	d.jobs = append(d.jobs[:i:i], d.jobs[i+1:]...)
	j.work()
	j.done()
}

// recordingCharts logs chart lifecycle events and the number of live charts
// at each creation.
type recordingCharts struct {
	events      []string
	live        int
	maxLiveSeen int
	configs     []chart.Config
}

type recordedChart struct {
	f         *recordingCharts
	destroyed bool
}

func (c *recordedChart) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.f.live--
	c.f.events = append(c.f.events, "destroy")
}

func (f *recordingCharts) New(target *dom.Element, cfg chart.Config) (chart.Chart, error) {
	f.live++
	if f.live > f.maxLiveSeen {
		f.maxLiveSeen = f.live
	}
	f.events = append(f.events, "new")
	f.configs = append(f.configs, cfg)
	return &recordedChart{f: f}, nil
}
