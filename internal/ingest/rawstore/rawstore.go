// Package rawstore is the stage-1 raw writer: it consumes the
// fetcher's page stream, batches items, and hands batches to the
// persistence interface as opaque (kind, entity_id, valid_from, data)
// rows, waking the stage-2 coordinator after each successful batch.
package rawstore

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// RawRow is one opaque raw snapshot as stored by stage 1 and later read
// back by stage 2.
type RawRow struct {
	Kind      string
	EntityID  string
	ValidFrom time.Time
	Data      []byte
}

// Inserter is the slice of the persistence interface the raw writer needs:
// an idempotent batch insert keyed on (kind, entity_id, valid_from).
type Inserter interface {
	InsertRawEntities(ctx context.Context, rows []RawRow) error
}

// Notifier wakes the stage-2 coordinator. Implementations must tolerate
// spurious extra notifications: a buffered channel of size 1
// with a non-blocking send is sufficient and is what NewChannelNotifier
// returns.
type Notifier interface {
	Notify()
}

// ChannelNotifier is a Notifier backed by a buffered channel; sends are
// dropped (not blocked) when the buffer is already full, since a pending
// notification already covers any new data.
type ChannelNotifier struct {
	ch chan struct{}
}

func NewChannelNotifier() *ChannelNotifier {
	return &ChannelNotifier{ch: make(chan struct{}, 1)}
}

func (n *ChannelNotifier) Notify() {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

// C exposes the underlying channel for the stage-2 coordinator to select on.
func (n *ChannelNotifier) C() <-chan struct{} { return n.ch }

// Writer batches incoming rows and flushes them through Inserter.
type Writer struct {
	Insert    Inserter
	Notify    Notifier
	BatchSize int
	Log       *log.Logger

	buf []RawRow
}

// Add appends row to the pending batch, flushing immediately if it reaches
// BatchSize.
func (w *Writer) Add(ctx context.Context, row RawRow) error {
	w.buf = append(w.buf, row)
	if len(w.buf) >= w.BatchSize {
		return w.Flush(ctx)
	}
	return nil
}

// Flush writes any pending rows and notifies stage 2, even for a partial
// batch (e.g. at stream end).
func (w *Writer) Flush(ctx context.Context) error {
	if len(w.buf) == 0 {
		return nil
	}
	batch := w.buf
	w.buf = nil

	if err := w.Insert.InsertRawEntities(ctx, batch); err != nil {
		// Rows are lost from the batch buffer on failure; the caller is
		// expected to resume stage 1 from max(valid_from), which will
		// re-fetch and re-attempt the same rows (idempotent on conflict).
		return fmt.Errorf("insert raw entity batch (%d rows): %w", len(batch), err)
	}
	if w.Log != nil {
		w.Log.Debugf("flushed %d raw rows", len(batch))
	}
	if w.Notify != nil {
		w.Notify.Notify()
	}
	return nil
}
