package sim

import (
	"fmt"

	"stormlightlabs.org/mmoldb/internal/ingest/events"
	"stormlightlabs.org/mmoldb/internal/ingest/types"
)

// cursor peeks at the front of a slice and only advances past it when the
// caller accepts it, mirroring itertools::peeking_next: it never looks
// past the current head.
type cursor[T any] struct {
	items []T
	pos   int
}

func newCursor[T any](items []T) *cursor[T] { return &cursor[T]{items: items} }

func (c *cursor[T]) peekNext(accept func(T) bool) (T, bool) {
	var zero T
	if c.pos >= len(c.items) {
		return zero, false
	}
	head := c.items[c.pos]
	if !accept(head) {
		return zero, false
	}
	c.pos++
	return head, true
}

func (c *cursor[T]) remaining() []T { return c.items[c.pos:] }

// runnerUpdate is the single-pass set of runner changes carried by one
// ball-in-play (or steal-bearing pitch) event, built from an
// events.InPlayOutcome or the steal list on a pitch event.
type runnerUpdate struct {
	scores                         []string
	steals                         []events.BaseSteal
	advances                       []events.RunnerAdvance
	runnersOut                     []events.RunnerOut
	runnerAdded                    *addedRunner
	runnerAddedForcesAdvances      bool
	runnersOutMayIncludeBatter     *string
	runnerAdvancesMayIncludeBatter *string
}

type addedRunner struct {
	name string
	base types.Base
}

// updateRunners runs a farthest-base-first single pass: runners are tried
// in self.runnersOn order (closest-to-home first) against scores, then
// steals, then advances, then outs, each eligible only if nothing between
// it and home base is still occupied. It returns one EventDetailRunner per
// runner the pass touched -- scored, put out, caught stealing, stole a
// base, advanced, held, or was newly added -- with BaseBefore/BaseAfter
// reflecting that runner's own transition, not the live post-pass state.
func (g *Game) updateRunners(gameEventIndex int, isError bool, u runnerUpdate, logs *types.IngestLogs) []types.EventDetailRunner {
	nRunnersOnBefore := len(g.runnersOn)
	nCaughtStealing := 0
	nStoleHome := 0
	for _, s := range u.steals {
		if s.Caught {
			nCaughtStealing++
		} else if types.Base(s.Base) == types.Home {
			nStoleHome++
		}
	}
	nScored := len(u.scores)
	nRunnersOut := len(u.runnersOut)

	scoresC := newCursor(u.scores)
	stealsC := newCursor(u.steals)
	advancesC := newCursor(u.advances)
	outsC := newCursor(u.runnersOut)

	var runsToAdd, outsToAdd int
	var lastOccupied *types.Base
	var transitions []types.EventDetailRunner

	kept := g.runnersOn[:0:0]
	for _, runner := range g.runnersOn {
		runner := runner
		before := runner.Base

		if lastOccupied != nil && *lastOccupied == types.Home {
			logs.Error(fmt.Sprintf("when processing %s (on %s), the previous occupied base was Home", runner.Name, runner.Base))
		}

		if lastOccupied == nil {
			if _, ok := scoresC.peekNext(func(name string) bool { return name == runner.Name }); ok {
				runsToAdd++
				logs.Debug(fmt.Sprintf("%s scored", runner.Name))
				transitions = append(transitions, types.EventDetailRunner{
					Name: runner.Name, BaseBefore: &before, BaseAfter: types.Home,
					SourceEventIndex: runner.SourceEventIndex, IsEarned: runner.IsEarned,
				})
				continue
			}
		}

		if steal, ok := stealsC.peekNext(func(s events.BaseSteal) bool {
			return s.Runner == runner.Name && types.Base(s.Base) == runner.Base.Next()
		}); ok {
			switch {
			case steal.Caught:
				outsToAdd++
				logs.Debug(fmt.Sprintf("%s caught stealing", runner.Name))
				transitions = append(transitions, types.EventDetailRunner{
					Name: runner.Name, BaseBefore: &before, BaseAfter: types.Base(steal.Base),
					IsOut: true, IsSteal: true, SourceEventIndex: runner.SourceEventIndex, IsEarned: runner.IsEarned,
				})
			case types.Base(steal.Base) == types.Home:
				logs.Debug(fmt.Sprintf("%s stole home", runner.Name))
				runsToAdd++
				transitions = append(transitions, types.EventDetailRunner{
					Name: runner.Name, BaseBefore: &before, BaseAfter: types.Home,
					IsSteal: true, SourceEventIndex: runner.SourceEventIndex, IsEarned: runner.IsEarned,
				})
			default:
				logs.Debug(fmt.Sprintf("%s stole %s", runner.Name, types.Base(steal.Base)))
				runner.Base = types.Base(steal.Base)
				lastOccupied = &runner.Base
				kept = append(kept, runner)
				transitions = append(transitions, types.EventDetailRunner{
					Name: runner.Name, BaseBefore: &before, BaseAfter: runner.Base,
					IsSteal: true, SourceEventIndex: runner.SourceEventIndex, IsEarned: runner.IsEarned,
				})
			}
			continue
		}

		if advance, ok := advancesC.peekNext(func(a events.RunnerAdvance) bool {
			return a.Runner == runner.Name && runner.Base < types.Base(a.Base) &&
				(lastOccupied == nil || *lastOccupied > types.Base(a.Base))
		}); ok {
			logs.Debug(fmt.Sprintf("%s advanced from %s to %s", runner.Name, runner.Base, types.Base(advance.Base)))
			runner.Base = types.Base(advance.Base)
			lastOccupied = &runner.Base
			kept = append(kept, runner)
			transitions = append(transitions, types.EventDetailRunner{
				Name: runner.Name, BaseBefore: &before, BaseAfter: runner.Base,
				SourceEventIndex: runner.SourceEventIndex, IsEarned: runner.IsEarned,
			})
			continue
		}

		if out, ok := outsC.peekNext(func(o events.RunnerOut) bool {
			if o.Runner != runner.Name {
				return false
			}
			if lastOccupied != nil {
				return *lastOccupied >= types.Base(o.Base)
			}
			return true
		}); ok {
			logs.Debug(fmt.Sprintf("%s out at %s", runner.Name, types.Base(out.Base)))
			outsToAdd++
			transitions = append(transitions, types.EventDetailRunner{
				Name: runner.Name, BaseBefore: &before, BaseAfter: types.Base(out.Base),
				IsOut: true, SourceEventIndex: runner.SourceEventIndex, IsEarned: runner.IsEarned,
			})
			continue
		}

		logs.Debug(fmt.Sprintf("%s didn't move from %s", runner.Name, runner.Base))
		lastOccupied = &runner.Base
		kept = append(kept, runner)
		transitions = append(transitions, types.EventDetailRunner{
			Name: runner.Name, BaseBefore: &before, BaseAfter: runner.Base,
			SourceEventIndex: runner.SourceEventIndex, IsEarned: runner.IsEarned,
		})
	}
	g.runnersOn = kept

	batterOut := 0
	if u.runnersOutMayIncludeBatter != nil {
		batterName := *u.runnersOutMayIncludeBatter
		if out, ok := outsC.peekNext(func(o events.RunnerOut) bool {
			if o.Runner != batterName {
				return false
			}
			if lastOccupied != nil {
				return *lastOccupied >= types.Base(o.Base)
			}
			return true
		}); ok {
			outsToAdd++
			batterOut++
			transitions = append(transitions, types.EventDetailRunner{
				Name: batterName, BaseAfter: types.Base(out.Base), IsOut: true,
			})
		}
	}

	batterAdded := false
	newRunners := 0
	if u.runnerAdvancesMayIncludeBatter != nil {
		batterName := *u.runnerAdvancesMayIncludeBatter
		if newRunner, ok := advancesC.peekNext(func(a events.RunnerAdvance) bool {
			if a.Runner != batterName {
				return false
			}
			if lastOccupied != nil && *lastOccupied <= types.Base(a.Base) {
				return false
			}
			return true
		}); ok {
			newRunners++
			batterAdded = true
			idx := gameEventIndex
			g.runnersOn = append(g.runnersOn, types.RunnerOn{
				Name:             newRunner.Runner,
				Base:             types.Base(newRunner.Base),
				SourceEventIndex: &idx,
				IsEarned:         g.runnerOnThisEventIsEarned(isError),
			})
			transitions = append(transitions, types.EventDetailRunner{
				Name: newRunner.Runner, BaseAfter: types.Base(newRunner.Base),
				SourceEventIndex: &idx, IsEarned: g.runnerOnThisEventIsEarned(isError),
			})
		}
	}

	if extra := stealsC.remaining(); len(extra) > 0 {
		logs.Error(fmt.Sprintf("failed to apply steal(s): %+v", extra))
	}
	if extra := scoresC.remaining(); len(extra) > 0 {
		logs.Error(fmt.Sprintf("failed to apply score(s): %+v", extra))
	}
	if extra := advancesC.remaining(); len(extra) > 0 {
		logs.Error(fmt.Sprintf("failed to apply advance(s): %+v", extra))
	}
	if extra := outsC.remaining(); len(extra) > 0 {
		logs.Error(fmt.Sprintf("failed to apply runner(s) out: %+v", extra))
	}

	expectedAfter := nRunnersOnBefore - nCaughtStealing - nStoleHome - nScored - nRunnersOut + batterOut + newRunners
	if len(g.runnersOn) != expectedAfter {
		logs.Error(fmt.Sprintf(
			"inconsistent runner counting: with %d on to start, %d caught stealing, %d stealing home, %d scoring, and %d out (including %d batter outs), plus %d new runners, expected %d runners on but records show %d",
			nRunnersOnBefore, nCaughtStealing, nStoleHome, nScored, nRunnersOut, batterOut, newRunners, expectedAfter, len(g.runnersOn),
		))
	}

	if u.runnerAdded != nil && !batterAdded {
		added := *u.runnerAdded
		if u.runnerAddedForcesAdvances {
			baseToClear := added.base
			for i := len(g.runnersOn) - 1; i >= 0; i-- {
				if g.runnersOn[i].Base == added.base {
					before := g.runnersOn[i].Base
					baseToClear = baseToClear.Next()
					g.runnersOn[i].Base = baseToClear
					transitions = append(transitions, types.EventDetailRunner{
						Name: g.runnersOn[i].Name, BaseBefore: &before, BaseAfter: g.runnersOn[i].Base,
						SourceEventIndex: g.runnersOn[i].SourceEventIndex, IsEarned: g.runnersOn[i].IsEarned,
					})
				} else {
					break
				}
			}
		} else if n := len(g.runnersOn); n > 0 {
			last := g.runnersOn[n-1]
			switch {
			case last.Base == added.base:
				logs.Warn(fmt.Sprintf("putting batter-runner %s on %s when %s is already on it", added.name, added.base, last.Name))
			case last.Base < added.base:
				logs.Warn(fmt.Sprintf("putting batter-runner %s on %s when %s is on %s", added.name, added.base, last.Name, last.Base))
			}
		}

		idx := gameEventIndex
		g.runnersOn = append(g.runnersOn, types.RunnerOn{
			Name:             added.name,
			Base:             added.base,
			SourceEventIndex: &idx,
			IsEarned:         g.runnerOnThisEventIsEarned(isError),
		})
		transitions = append(transitions, types.EventDetailRunner{
			Name: added.name, BaseAfter: added.base,
			SourceEventIndex: &idx, IsEarned: g.runnerOnThisEventIsEarned(isError),
		})
	}

	g.addRunsToBattingTeam(runsToAdd)
	g.addOuts(outsToAdd)
	return transitions
}
