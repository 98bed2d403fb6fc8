package led

import (
	"fmt"
	"log"
	"sync"
)

// Recorder is an in-memory LED that remembers every level it was driven to.
// It backs the dummy driver and stands in for hardware in tests.
type Recorder struct {
	name        string
	state       bool
	transitions []bool
	failWith    error
	quiet       bool
	mutex       sync.RWMutex
}

// NewRecorder creates a Recorder identified by name.
func NewRecorder(name string) *Recorder {
	return &Recorder{name: name}
}

// Init is a no-op for the recorder
func (r *Recorder) Init() error {
	log.Printf("initializing dummy led %s", r.name)
	return nil
}

// Close is a no-op for the recorder
func (r *Recorder) Close() error {
	log.Printf("closing dummy led %s", r.name)
	return nil
}

func (r *Recorder) TurnOn() error {
	return r.set(true)
}

func (r *Recorder) TurnOff() error {
	return r.set(false)
}

func (r *Recorder) set(state bool) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.failWith != nil {
		if state {
			return fmt.Errorf("%w %s: %v", ErrTurnOn, r, r.failWith)
		}
		return fmt.Errorf("%w %s: %v", ErrTurnOff, r, r.failWith)
	}

	if !r.quiet {
		log.Printf("setting dummy led %s to %v", r.name, state)
	}
	r.state = state
	r.transitions = append(r.transitions, state)
	return nil
}

func (r *Recorder) GetState() (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.state, nil
}

// Transitions returns a copy of every level written so far, oldest first.
func (r *Recorder) Transitions() []bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	out := make([]bool, len(r.transitions))
	copy(out, r.transitions)
	return out
}

// Reset forgets recorded transitions.
func (r *Recorder) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.transitions = nil
}

// FailWith makes subsequent writes fail with err. A nil err clears it.
func (r *Recorder) FailWith(err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.failWith = err
}

// SetQuiet disables per-transition logging.
func (r *Recorder) SetQuiet(quiet bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.quiet = quiet
}

func (r *Recorder) String() string {
	return fmt.Sprintf("dummy:%s", r.name)
}
