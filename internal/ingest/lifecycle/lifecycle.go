// Package lifecycle is the ingest lifecycle state machine: a
// runner loop that sleeps between scheduled ingests, runs the pipeline
// once per wake-up, and tracks its own status through an explicit state
// machine so a concurrent caller (e.g. a status endpoint) can always
// observe a consistent snapshot.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// State names the lifecycle's own phases. Exactly one ingest
// runner is active per process.
type State int

const (
	NotStarted State = iota
	FailedToStart
	Idle
	Running
	ShutdownRequested
	ExitedWithError
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case FailedToStart:
		return "FailedToStart"
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case ShutdownRequested:
		return "ShutdownRequested"
	case ExitedWithError:
		return "ExitedWithError"
	default:
		return "Unknown"
	}
}

// RunOnce executes the entire ingest pipeline once: fetch, stage 1, stage
// 2, simulate, persist, verify. Supplied by the caller; the lifecycle only
// owns scheduling and state, not pipeline wiring.
type RunOnce func(ctx context.Context) error

// Runner drives RunOnce on a fixed period, tracking State so concurrent
// readers (Status) always see a consistent snapshot even while a
// transition is in flight.
type Runner struct {
	Period  time.Duration
	RunOnce RunOnce
	Log     *log.Logger

	mu      sync.Mutex
	state   State
	lastErr error

	shutdown chan struct{}
	done     chan struct{}
}

// NewRunner builds a Runner in the NotStarted state. Start must be called
// before any ingest work happens.
func NewRunner(period time.Duration, run RunOnce, logger *log.Logger) *Runner {
	return &Runner{
		Period:   period,
		RunOnce:  run,
		Log:      logger,
		state:    NotStarted,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Status returns the current state and, if ExitedWithError or
// FailedToStart, the error that caused it.
func (r *Runner) Status() (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.lastErr
}

func (r *Runner) setState(s State, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Once ShutdownRequested is set, only ExitedWithError may replace it, so
	// a late, spurious transition attempt from a stale goroutine is dropped
	// -- the state machine is resilient to duplicate notifications. No
	// other state, ExitedWithError included, is guarded this way.
	if r.state == ShutdownRequested && s != ExitedWithError {
		return
	}
	r.state = s
	r.lastErr = err
}

// Start runs the lifecycle loop until Shutdown is called or ctx is
// canceled. It blocks; callers run it in its own goroutine.
func (r *Runner) Start(ctx context.Context) {
	defer close(r.done)

	r.setState(Idle, nil)

	next := time.Now()
	for {
		select {
		case <-r.shutdown:
			r.setState(ShutdownRequested, nil)
			return
		case <-ctx.Done():
			r.setState(ShutdownRequested, nil)
			return
		default:
		}

		wait := time.Until(next)
		if wait < 0 {
			wait = 0
		}
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-r.shutdown:
			timer.Stop()
			r.setState(ShutdownRequested, nil)
			return
		case <-ctx.Done():
			timer.Stop()
			r.setState(ShutdownRequested, nil)
			return
		}

		r.setState(Running, nil)
		if err := r.RunOnce(ctx); err != nil {
			if r.Log != nil {
				r.Log.Errorf("ingest run failed: %v", err)
			}
			r.setState(ExitedWithError, fmt.Errorf("ingest run: %w", err))
			return
		}
		r.setState(Idle, nil)

		next = time.Now().Add(r.Period)
	}
}

// Shutdown requests the loop stop after its current run finishes, and
// blocks until it has. Calling Shutdown more than once is safe: the
// channel close happens exactly once, and the second call just waits on
// the already-closed done channel.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	select {
	case <-r.shutdown:
		// already requested
	default:
		close(r.shutdown)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
