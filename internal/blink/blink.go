package blink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/larsks/faultblink/internal/led"
	"github.com/larsks/faultblink/internal/pattern"
)

// DefaultPeriod is how long each pattern step holds its level.
const DefaultPeriod = 500 * time.Millisecond

// MinPeriod is the shortest accepted period. Anything shorter is almost
// certainly a bare number that was read as nanoseconds.
const MinPeriod = time.Millisecond

// InvalidPatternMessage is written to the diagnostic stream when a pattern
// contains something other than '0' or '1'.
const InvalidPatternMessage = "Invalid pattern string!"

// DelayFunc suspends for d, returning early with ctx.Err() if ctx is done.
type DelayFunc func(ctx context.Context, d time.Duration) error

type (
	// Blinker drives an LED through a repeating on/off pattern.
	Blinker struct {
		out     led.LED
		diag    io.Writer
		period  time.Duration
		delay   DelayFunc
		lenient bool

		mutex   sync.Mutex
		running bool
		cancel  context.CancelFunc
		doneCh  chan struct{}
		lastErr error
	}

	Option func(*Blinker)
)

// WithPeriod sets how long each step is held.
func WithPeriod(d time.Duration) Option {
	return func(b *Blinker) {
		b.period = d
	}
}

// WithDelay replaces the timed suspension primitive.
func WithDelay(fn DelayFunc) Option {
	return func(b *Blinker) {
		b.delay = fn
	}
}

// WithLenient checks pattern characters as they are reached instead of
// validating up front. An invalid character then stops the loop with a
// diagnostic and a nil error.
func WithLenient(lenient bool) Option {
	return func(b *Blinker) {
		b.lenient = lenient
	}
}

// New creates a Blinker for out. Diagnostics go to diag, which may be nil.
func New(out led.LED, diag io.Writer, opts ...Option) (*Blinker, error) {
	if out == nil {
		return nil, ErrOutputRequired
	}

	b := &Blinker{
		out:    out,
		diag:   diag,
		period: DefaultPeriod,
		delay:  Sleep,
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.period < MinPeriod {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidPeriod, b.period)
	}
	if b.diag == nil {
		b.diag = io.Discard
	}

	return b, nil
}

// Blink repeats p on the output until ctx is cancelled, returning ctx.Err().
// An invalid pattern writes a diagnostic and ends the loop early.
func (b *Blinker) Blink(ctx context.Context, p pattern.Pattern) error {
	if !b.lenient {
		if err := p.Validate(); err != nil {
			b.diagnose()
			return err
		}
	}

	if p.Len() == 0 {
		// Nothing to drive; hold here rather than spin.
		<-ctx.Done()
		return ctx.Err()
	}

	for {
		for _, c := range p {
			if err := ctx.Err(); err != nil {
				return err
			}

			var err error
			switch c {
			case pattern.On:
				err = b.out.TurnOn()
			case pattern.Off:
				err = b.out.TurnOff()
			default:
				b.diagnose()
				return nil
			}
			if err != nil {
				return fmt.Errorf("%w %s: %v", ErrOutputFailed, b.out, err)
			}

			if err := b.delay(ctx, b.period); err != nil {
				return err
			}
		}
	}
}

func (b *Blinker) diagnose() {
	if _, err := fmt.Fprintln(b.diag, InvalidPatternMessage); err != nil {
		log.Printf("failed to write diagnostic: %v", err)
	}
}

// Start runs Blink on a background goroutine.
func (b *Blinker) Start(p pattern.Pattern) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.running {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	b.doneCh = make(chan struct{})
	b.lastErr = nil
	b.running = true

	go func(done chan struct{}) {
		defer close(done)
		err := b.Blink(ctx, p)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("blinker on %s stopped: %v", b.out, err)
		}
		b.mutex.Lock()
		b.lastErr = err
		b.mutex.Unlock()
	}(b.doneCh)

	return nil
}

// Stop ends a background blink, waits for it, and leaves the output off.
func (b *Blinker) Stop() error {
	b.mutex.Lock()
	if !b.running {
		b.mutex.Unlock()
		return ErrNotRunning
	}
	cancel, done := b.cancel, b.doneCh
	b.mutex.Unlock()

	cancel()
	<-done

	b.mutex.Lock()
	b.running = false
	b.cancel = nil
	b.mutex.Unlock()

	return b.out.TurnOff()
}

// Done returns a channel closed when the background blink ends, or nil if
// none was started.
func (b *Blinker) Done() <-chan struct{} {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.doneCh
}

// Err returns the result of the last background blink once it has ended.
func (b *Blinker) Err() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.lastErr
}

// IsRunning returns true between Start and Stop.
func (b *Blinker) IsRunning() bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.running
}

// Period returns the step duration.
func (b *Blinker) Period() time.Duration {
	return b.period
}

// Output returns the underlying LED.
func (b *Blinker) Output() led.LED {
	return b.out
}

// Sleep is the default DelayFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
