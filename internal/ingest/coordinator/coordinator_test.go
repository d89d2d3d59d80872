package coordinator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"stormlightlabs.org/mmoldb/internal/ingest/rawstore"
)

type sliceStream struct {
	rows []rawstore.RawRow
	err  error
}

func (s *sliceStream) Unprocessed(ctx context.Context, out chan<- rawstore.RawRow, errc chan<- error) {
	defer close(out)
	for _, r := range s.rows {
		select {
		case out <- r:
		case <-ctx.Done():
			return
		}
	}
	if s.err != nil {
		errc <- s.err
	}
}

type recordingWorker struct {
	mu   sync.Mutex
	rows []rawstore.RawRow
}

func (w *recordingWorker) Process(ctx context.Context, lane int, row rawstore.RawRow) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rows = append(w.rows, row)
	return nil
}

func (w *recordingWorker) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.rows)
}

type failingWorker struct {
	err error
}

func (w *failingWorker) Process(ctx context.Context, lane int, row rawstore.RawRow) error {
	return w.err
}

func TestRunOnePassDeliversEveryRowToSomeLane(t *testing.T) {
	rows := []rawstore.RawRow{
		{Kind: "game", EntityID: "a"},
		{Kind: "game", EntityID: "b"},
		{Kind: "game", EntityID: "c"},
		{Kind: "game", EntityID: "d"},
	}
	workers := []*recordingWorker{{}, {}}
	c := &Coordinator{
		Stream:  &sliceStream{rows: rows},
		Workers: []Worker{workers[0], workers[1]},
	}

	if err := c.runOnePass(context.Background()); err != nil {
		t.Fatalf("runOnePass: %v", err)
	}

	total := workers[0].count() + workers[1].count()
	if total != len(rows) {
		t.Fatalf("delivered %d rows across lanes, want %d", total, len(rows))
	}
}

func TestRunOnePassNoWorkersIsAnError(t *testing.T) {
	c := &Coordinator{Stream: &sliceStream{}, Workers: nil}
	if err := c.runOnePass(context.Background()); err == nil {
		t.Fatal("expected an error with zero configured workers")
	}
}

func TestRunOnePassSurfacesStreamError(t *testing.T) {
	wantErr := errors.New("stream broke")
	c := &Coordinator{
		Stream:  &sliceStream{rows: []rawstore.RawRow{{Kind: "game", EntityID: "a"}}, err: wantErr},
		Workers: []Worker{&recordingWorker{}},
	}
	err := c.runOnePass(context.Background())
	if err == nil || !errors.Is(err, wantErr) {
		t.Fatalf("runOnePass error = %v, want wrapping %v", err, wantErr)
	}
}

func TestRunOnePassSurfacesWorkerError(t *testing.T) {
	wantErr := errors.New("worker broke")
	c := &Coordinator{
		Stream:  &sliceStream{rows: []rawstore.RawRow{{Kind: "game", EntityID: "a"}}},
		Workers: []Worker{&failingWorker{err: wantErr}},
	}
	err := c.runOnePass(context.Background())
	if err == nil || !errors.Is(err, wantErr) {
		t.Fatalf("runOnePass error = %v, want wrapping %v", err, wantErr)
	}
}

func TestRunStopsOnFinish(t *testing.T) {
	finish := make(chan struct{})
	notify := make(chan struct{})
	c := &Coordinator{
		Stream:  &sliceStream{},
		Workers: []Worker{&recordingWorker{}},
		Notify:  notify,
		Finish:  finish,
	}

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()

	close(finish)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v, want nil after Finish closed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Finish closed")
	}
}

func TestRunLoopsOnNotify(t *testing.T) {
	notify := make(chan struct{}, 1)
	finish := make(chan struct{})
	worker := &recordingWorker{}
	c := &Coordinator{
		Stream:  &sliceStream{rows: []rawstore.RawRow{{Kind: "game", EntityID: "a"}}},
		Workers: []Worker{worker},
		Notify:  notify,
		Finish:  finish,
	}

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()

	notify <- struct{}{}
	time.Sleep(20 * time.Millisecond)
	close(finish)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}

	if worker.count() < 2 {
		t.Fatalf("expected at least two passes worth of rows (1 each), got %d", worker.count())
	}
}
