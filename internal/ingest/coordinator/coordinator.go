// Package coordinator is the stage-2 coordinator: it streams
// unprocessed raw snapshots in (valid_from, entity_id) order, partitions
// them across a fixed number of worker lanes, and loops waiting on either
// a stage-1 notification or a finish signal.
package coordinator

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"stormlightlabs.org/mmoldb/internal/ingest/partition"
	"stormlightlabs.org/mmoldb/internal/ingest/rawstore"
)

// Stream is the persistence interface's unprocessed-rows reader. Rows must
// be delivered in (valid_from, entity_id) order; the returned error
// (besides io.EOF-like exhaustion signaled by a closed channel) aborts the
// current pass.
type Stream interface {
	// Unprocessed streams rows into out and closes out when exhausted (or
	// ctx is canceled). Errors encountered mid-stream are sent on errc
	// exactly once before both channels close.
	Unprocessed(ctx context.Context, out chan<- rawstore.RawRow, errc chan<- error)
}

// Worker processes every row assigned to one lane, in the order received.
type Worker interface {
	Process(ctx context.Context, lane int, row rawstore.RawRow) error
}

// Coordinator runs the stage-2 loop: draining the unprocessed stream,
// fanning rows out to lane workers, and waiting on a notification or
// finish signal between passes.
type Coordinator struct {
	Stream  Stream
	Workers []Worker // len(Workers) == number of lanes
	Log     *log.Logger

	// Notify fires (possibly spuriously) when stage 1 has written new raw
	// rows. Finish, when closed, tells the coordinator to stop looping
	// after the current pass drains.
	Notify <-chan struct{}
	Finish <-chan struct{}
}

// Run executes the stage-2 loop until ctx is canceled or Finish closes.
func (c *Coordinator) Run(ctx context.Context) error {
	for {
		if err := c.runOnePass(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.Finish:
			return nil
		case <-c.Notify:
			continue
		}
	}
}

// runOnePass drains the stream fully once, fanning rows out to lane
// channels and waiting for every worker to finish.
func (c *Coordinator) runOnePass(ctx context.Context) error {
	lanes := len(c.Workers)
	if lanes == 0 {
		return fmt.Errorf("coordinator: no workers configured")
	}

	passCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	laneChans := make([]chan rawstore.RawRow, lanes)
	for i := range laneChans {
		laneChans[i] = make(chan rawstore.RawRow, lanes)
	}

	g, gctx := errgroup.WithContext(passCtx)

	for i, worker := range c.Workers {
		i, worker := i, worker
		g.Go(func() error {
			for row := range laneChans[i] {
				if err := worker.Process(gctx, i, row); err != nil {
					return fmt.Errorf("lane %d: %w", i, err)
				}
			}
			return nil
		})
	}

	rows := make(chan rawstore.RawRow)
	streamErr := make(chan error, 1)
	g.Go(func() error {
		c.Stream.Unprocessed(gctx, rows, streamErr)
		return nil
	})

	g.Go(func() error {
		defer func() {
			for _, ch := range laneChans {
				close(ch)
			}
		}()
		for {
			select {
			case row, ok := <-rows:
				if !ok {
					select {
					case err := <-streamErr:
						if err != nil {
							return fmt.Errorf("stream unprocessed rows: %w", err)
						}
					default:
					}
					return nil
				}
				lane := partition.Lane(row.EntityID, lanes)
				select {
				case laneChans[lane] <- row:
				case <-gctx.Done():
					return gctx.Err()
				}
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	return g.Wait()
}
