// Package verify is the round-trip verifier: it reconstructs a
// ParsedEventMessage from a stored EventDetail, unparses it, and compares
// the result character-for-character against the original raw text.
package verify

import (
	"fmt"

	"stormlightlabs.org/mmoldb/internal/ingest/events"
	"stormlightlabs.org/mmoldb/internal/ingest/types"
)

// Unparser turns a reconstructed message back into upstream-format text.
// The parser that does this (and its inverse, reconstruction) is an
// external collaborator; this package only drives the
// comparison.
type Unparser func(msg events.Message) (string, error)

// Reconstruct rebuilds the ParsedEventMessage an EventDetail was derived
// from, inverting the per-kind mapping handlePitch/handleFairBallOutcome
// apply when they build the row in the first place. Fields the row doesn't
// retain verbatim (fielder position free text, pitch/strike subtype) are
// filled with the simulator's own default for that subtype; round-trip
// mismatches on those fields surface through RoundTrip like any other.
func Reconstruct(detail types.EventDetail) (events.Message, error) {
	switch events.Kind(detail.EventType) {
	case events.BallKind:
		return events.Ball{
			Count:  events.Count{Balls: detail.BallsBefore + 1, Strikes: detail.StrikesBefore},
			Steals: stealsFromBaserunners(detail.Baserunners),
		}, nil

	case events.StrikeKind:
		return events.Strike{
			Count:  events.Count{Balls: detail.BallsBefore, Strikes: detail.StrikesBefore + 1},
			Steals: stealsFromBaserunners(detail.Baserunners),
		}, nil

	case events.FoulKind:
		strikes := detail.StrikesBefore
		if strikes < 2 {
			strikes++
		}
		return events.Foul{
			Type:   events.FoulBallType,
			Count:  events.Count{Balls: detail.BallsBefore, Strikes: strikes},
			Steals: stealsFromBaserunners(detail.Baserunners),
		}, nil

	case events.WalkKind:
		return events.Walk{Batter: detail.BatterName}, nil

	case events.HitByPitchKind:
		return events.HitByPitch{Batter: detail.BatterName}, nil

	case events.StrikeOutKind:
		return events.StrikeOut{}, nil

	case events.CaughtOutKind:
		return events.CaughtOut{InPlayOutcome: outcomeFromDetail(detail)}, nil

	case events.GroundedOutKind:
		return events.GroundedOut{InPlayOutcome: outcomeFromDetail(detail)}, nil

	case events.BatterToBaseKind:
		base := 0
		if detail.HitBase != nil {
			base = int(*detail.HitBase)
		}
		return events.BatterToBase{InPlayOutcome: outcomeFromDetail(detail), Base: base}, nil

	case events.ReachOnFieldingErrorKind:
		outcome := outcomeFromDetail(detail)
		var fielder events.PlacedPlayer
		if len(outcome.Fielders) > 0 {
			fielder = outcome.Fielders[0]
		}
		var errType events.FieldingErrorType
		if detail.FieldingErrorType != nil {
			errType = events.FieldingErrorType(*detail.FieldingErrorType)
		}
		return events.ReachOnFieldingError{InPlayOutcome: outcome, ErrorType: errType, Fielder: fielder}, nil

	case events.HomeRunKind:
		outcome := outcomeFromDetail(detail)
		return events.HomeRun{InPlayOutcome: outcome, GrandSlam: len(outcome.Scores) == 3}, nil

	case events.DoublePlayCaughtKind:
		return events.DoublePlayCaught{InPlayOutcome: outcomeFromDetail(detail)}, nil

	case events.DoublePlayGroundedKind:
		return events.DoublePlayGrounded{InPlayOutcome: outcomeFromDetail(detail)}, nil

	case events.ForceOutKind:
		return events.ForceOut{InPlayOutcome: outcomeFromDetail(detail)}, nil

	case events.ReachOnFieldersChoiceKind:
		outcome := outcomeFromDetail(detail)
		fc := events.FieldersChoiceOut
		if detail.FieldingErrorType != nil {
			fc = events.FieldersChoiceError
		}
		return events.ReachOnFieldersChoice{InPlayOutcome: outcome, Outcome: fc}, nil

	case 0:
		return nil, fmt.Errorf("event %d: unset event type, cannot reconstruct", detail.GameEventIndex)

	default:
		return nil, fmt.Errorf("event %d: no reconstruction for event type %d", detail.GameEventIndex, detail.EventType)
	}
}

// stealsFromBaserunners recovers the steal list a Ball/Strike/Foul message
// carried, from the subset of this event's baserunner rows updateRunners
// tagged IsSteal.
func stealsFromBaserunners(rows []types.EventDetailRunner) []events.BaseSteal {
	var steals []events.BaseSteal
	for _, r := range rows {
		if !r.IsSteal {
			continue
		}
		steals = append(steals, events.BaseSteal{Runner: r.Name, Base: int(r.BaseAfter), Caught: r.IsOut})
	}
	return steals
}

// outcomeFromDetail recovers an InPlayOutcome from one ball-in-play
// EventDetail's Fielders and Baserunners, inverting the partition
// updateRunners' transitions were recorded under: out first (whether or
// not the runner is the batter), then a base-before-less row is the
// batter reaching or being put on base, then a row ending at Home is a
// run, then anything else is a plain advance.
func outcomeFromDetail(detail types.EventDetail) events.InPlayOutcome {
	var scores []string
	var advances []events.RunnerAdvance
	var runnersOut []events.RunnerOut
	var runnerAddedName *string
	var runnerAddedBase *int

	for _, r := range detail.Baserunners {
		if r.IsSteal {
			continue
		}
		switch {
		case r.IsOut:
			runnersOut = append(runnersOut, events.RunnerOut{Runner: r.Name, Base: int(r.BaseAfter)})
		case r.BaseBefore == nil && r.BaseAfter == types.Home:
			// the batter's own home-run run; already implied by Batter below.
		case r.BaseBefore == nil:
			name, base := r.Name, int(r.BaseAfter)
			runnerAddedName = &name
			runnerAddedBase = &base
		case r.BaseAfter == types.Home:
			scores = append(scores, r.Name)
		case *r.BaseBefore != r.BaseAfter:
			advances = append(advances, events.RunnerAdvance{Runner: r.Name, Base: int(r.BaseAfter)})
		}
	}

	fielders := make([]events.PlacedPlayer, 0, len(detail.Fielders))
	for _, f := range detail.Fielders {
		fielders = append(fielders, events.PlacedPlayer{Name: f.Name, Place: fmt.Sprintf("slot-%d", int(f.Slot))})
	}

	return events.InPlayOutcome{
		Batter:          detail.BatterName,
		Fielders:        fielders,
		Scores:          scores,
		Advances:        advances,
		RunnersOut:      runnersOut,
		RunnerAddedName: runnerAddedName,
		RunnerAddedBase: runnerAddedBase,
		Sacrifice:       detail.DescribedAsSacrifice,
	}
}

// RoundTrip verifies every event in details against its original raw text
// (keyed by GameEventIndex), returning one error-level IngestLog per
// mismatch. A detail with no corresponding raw text is
// skipped: it has nothing to compare against.
func RoundTrip(details []types.EventDetail, rawText map[int]string, unparse Unparser) []types.IngestLog {
	var logs []types.IngestLog
	for _, d := range details {
		original, ok := rawText[d.GameEventIndex]
		if !ok {
			continue
		}

		msg, err := Reconstruct(d)
		if err != nil {
			logs = append(logs, mismatchLog(d.GameEventIndex, err.Error()))
			continue
		}

		got, err := unparse(msg)
		if err != nil {
			logs = append(logs, mismatchLog(d.GameEventIndex, fmt.Sprintf("unparse failed: %v", err)))
			continue
		}

		if got != original {
			logs = append(logs, mismatchLog(d.GameEventIndex, fmt.Sprintf("round-trip mismatch: got %q, want %q", got, original)))
		}
	}
	return logs
}

func mismatchLog(index int, text string) types.IngestLog {
	idx := index
	return types.IngestLog{GameEventIndex: &idx, LogLevel: types.LogError, LogText: text}
}
