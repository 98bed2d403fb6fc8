// Package blinktest records the steps a Blinker takes without sleeping.
package blinktest

import (
	"context"
	"sync"
	"time"

	"github.com/larsks/faultblink/internal/led"
	"github.com/larsks/faultblink/internal/pattern"
)

// Step is one held output level.
type Step struct {
	On   bool
	Hold time.Duration
}

// Trace is a blink.DelayFunc source that records the output level at each
// suspension and cancels the blink after Limit steps.
type Trace struct {
	out    led.LED
	limit  int
	cancel context.CancelFunc

	mutex sync.Mutex
	steps []Step
}

// NewTrace returns a Trace reading levels from out. cancel is invoked once
// limit steps have been recorded.
func NewTrace(out led.LED, limit int, cancel context.CancelFunc) *Trace {
	return &Trace{out: out, limit: limit, cancel: cancel}
}

// Delay records a step and returns immediately.
func (t *Trace) Delay(ctx context.Context, d time.Duration) error {
	state, err := t.out.GetState()
	if err != nil {
		return err
	}

	t.mutex.Lock()
	t.steps = append(t.steps, Step{On: state, Hold: d})
	n := len(t.steps)
	t.mutex.Unlock()

	if t.limit > 0 && n >= t.limit {
		t.cancel()
	}
	return ctx.Err()
}

// Steps returns a copy of the recorded steps.
func (t *Trace) Steps() []Step {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}

// Expand returns the steps expected from blinking p for reps repetitions.
func Expand(p pattern.Pattern, period time.Duration, reps int) []Step {
	var steps []Step
	for range reps {
		for _, c := range p {
			steps = append(steps, Step{On: c == pattern.On, Hold: period})
		}
	}
	return steps
}
