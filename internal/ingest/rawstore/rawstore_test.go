package rawstore

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeInserter struct {
	batches [][]RawRow
	err     error
}

func (f *fakeInserter) InsertRawEntities(ctx context.Context, rows []RawRow) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, rows)
	return nil
}

type countingNotifier struct {
	n int
}

func (c *countingNotifier) Notify() { c.n++ }

func TestWriterFlushesAtBatchSize(t *testing.T) {
	ins := &fakeInserter{}
	notif := &countingNotifier{}
	w := &Writer{Insert: ins, Notify: notif, BatchSize: 2}

	row := func(id string) RawRow { return RawRow{Kind: "game", EntityID: id, ValidFrom: time.Now()} }

	if err := w.Add(context.Background(), row("a")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(ins.batches) != 0 {
		t.Fatalf("flushed early at 1/2 rows: %+v", ins.batches)
	}

	if err := w.Add(context.Background(), row("b")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(ins.batches) != 1 || len(ins.batches[0]) != 2 {
		t.Fatalf("expected one flushed batch of 2 rows, got %+v", ins.batches)
	}
	if notif.n != 1 {
		t.Fatalf("notify count = %d, want 1", notif.n)
	}
}

func TestWriterFlushWritesPartialBatch(t *testing.T) {
	ins := &fakeInserter{}
	notif := &countingNotifier{}
	w := &Writer{Insert: ins, Notify: notif, BatchSize: 10}

	if err := w.Add(context.Background(), RawRow{Kind: "game", EntityID: "a"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := w.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(ins.batches) != 1 || len(ins.batches[0]) != 1 {
		t.Fatalf("expected one partial batch of 1 row, got %+v", ins.batches)
	}
	if notif.n != 1 {
		t.Fatalf("notify count = %d, want 1", notif.n)
	}
}

func TestWriterFlushOnEmptyBufferIsANoop(t *testing.T) {
	ins := &fakeInserter{}
	notif := &countingNotifier{}
	w := &Writer{Insert: ins, Notify: notif, BatchSize: 10}

	if err := w.Flush(context.Background()); err != nil {
		t.Fatalf("Flush on empty buffer: %v", err)
	}
	if len(ins.batches) != 0 || notif.n != 0 {
		t.Fatalf("expected no insert and no notify, got batches=%+v notify=%d", ins.batches, notif.n)
	}
}

func TestWriterFlushWrapsInserterError(t *testing.T) {
	wantErr := errors.New("insert failed")
	ins := &fakeInserter{err: wantErr}
	w := &Writer{Insert: ins, BatchSize: 10}

	if err := w.Add(context.Background(), RawRow{Kind: "game", EntityID: "a"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	err := w.Flush(context.Background())
	if err == nil || !errors.Is(err, wantErr) {
		t.Fatalf("Flush error = %v, want wrapping %v", err, wantErr)
	}
}

func TestChannelNotifierCoalescesSpuriousNotifications(t *testing.T) {
	n := NewChannelNotifier()
	n.Notify()
	n.Notify()
	n.Notify()

	select {
	case <-n.C():
	default:
		t.Fatal("expected at least one pending notification")
	}
	select {
	case <-n.C():
		t.Fatal("expected extra notifications to be coalesced, not queued")
	default:
	}
}
