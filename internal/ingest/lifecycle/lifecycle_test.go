package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunnerStartsIdleRunsAndShutsDown(t *testing.T) {
	calls := make(chan struct{}, 10)
	r := NewRunner(5*time.Millisecond, func(ctx context.Context) error {
		calls <- struct{}{}
		return nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()

	select {
	case <-calls:
	case <-time.After(time.Second):
		t.Fatal("RunOnce was never called")
	}

	if err := r.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start never returned after Shutdown")
	}

	state, _ := r.Status()
	if state != ShutdownRequested {
		t.Errorf("state after shutdown = %v, want ShutdownRequested", state)
	}
}

func TestRunnerShutdownIsIdempotent(t *testing.T) {
	r := NewRunner(time.Hour, func(ctx context.Context) error { return nil }, nil)

	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()

	// Give Start a moment to reach its first wait so Shutdown lands mid-loop.
	time.Sleep(5 * time.Millisecond)

	for i := 0; i < 3; i++ {
		if err := r.Shutdown(context.Background()); err != nil {
			t.Fatalf("Shutdown call %d: %v", i, err)
		}
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start never returned")
	}
}

func TestRunnerExitsWithErrorOnRunOnceFailure(t *testing.T) {
	wantErr := errors.New("boom")
	r := NewRunner(5*time.Millisecond, func(ctx context.Context) error {
		return wantErr
	}, nil)

	done := make(chan struct{})
	go func() {
		r.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start never returned after RunOnce error")
	}

	state, err := r.Status()
	if state != ExitedWithError {
		t.Errorf("state = %v, want ExitedWithError", state)
	}
	if err == nil || !errors.Is(err, wantErr) {
		t.Errorf("Status error = %v, want wrapping %v", err, wantErr)
	}
}

func TestSetStateNeverOverwritesShutdownRequestedExceptWithError(t *testing.T) {
	r := NewRunner(time.Hour, func(ctx context.Context) error { return nil }, nil)

	r.setState(ShutdownRequested, nil)
	r.setState(Running, nil)

	state, _ := r.Status()
	if state != ShutdownRequested {
		t.Fatalf("a late Running transition overwrote ShutdownRequested: got %v", state)
	}

	wantErr := errors.New("late failure")
	r.setState(ExitedWithError, wantErr)
	state, err := r.Status()
	if state != ExitedWithError {
		t.Errorf("state = %v, want ExitedWithError to be allowed to overwrite ShutdownRequested", state)
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}
