package verify

import (
	"errors"
	"testing"

	"stormlightlabs.org/mmoldb/internal/ingest/events"
	"stormlightlabs.org/mmoldb/internal/ingest/types"
)

func TestReconstructRejectsUnsetEventType(t *testing.T) {
	_, err := Reconstruct(types.EventDetail{GameEventIndex: 3})
	if err == nil {
		t.Fatal("expected an error for an unset (zero) event type")
	}
}

func TestReconstructRejectsUnknownEventType(t *testing.T) {
	_, err := Reconstruct(types.EventDetail{GameEventIndex: 3, EventType: types.EventKind(events.LineupKind)})
	if err == nil {
		t.Fatal("expected an error for an event type with no reconstruction")
	}
}

func TestReconstructBuildsAWalkFromBatterName(t *testing.T) {
	msg, err := Reconstruct(types.EventDetail{GameEventIndex: 1, EventType: types.EventKind(events.WalkKind), BatterName: "Jasper Blue"})
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	walk, ok := msg.(events.Walk)
	if !ok || walk.Batter != "Jasper Blue" {
		t.Fatalf("Reconstruct = %+v, want a Walk for Jasper Blue", msg)
	}
}

func TestReconstructBallCarriesForwardCount(t *testing.T) {
	msg, err := Reconstruct(types.EventDetail{EventType: types.EventKind(events.BallKind), BallsBefore: 1, StrikesBefore: 2})
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	ball, ok := msg.(events.Ball)
	if !ok {
		t.Fatalf("Reconstruct = %+v, want a Ball", msg)
	}
	if ball.Count.Balls != 2 || ball.Count.Strikes != 2 {
		t.Errorf("Count = %+v, want 2-2", ball.Count)
	}
}

func TestReconstructBallRecoversSteals(t *testing.T) {
	before := types.First
	detail := types.EventDetail{
		EventType: types.EventKind(events.BallKind),
		Baserunners: []types.EventDetailRunner{
			{Name: "Runner A", BaseBefore: &before, BaseAfter: types.Second, IsSteal: true},
		},
	}
	msg, err := Reconstruct(detail)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	ball := msg.(events.Ball)
	if len(ball.Steals) != 1 || ball.Steals[0].Runner != "Runner A" || ball.Steals[0].Base != int(types.Second) {
		t.Fatalf("Steals = %+v, want one steal to Second by Runner A", ball.Steals)
	}
}

func TestReconstructCaughtOutRecoversScoringRunner(t *testing.T) {
	before := types.Third
	detail := types.EventDetail{
		EventType:  types.EventKind(events.CaughtOutKind),
		BatterName: "Batter",
		Baserunners: []types.EventDetailRunner{
			{Name: "R1", BaseBefore: &before, BaseAfter: types.Home},
		},
	}
	msg, err := Reconstruct(detail)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	co, ok := msg.(events.CaughtOut)
	if !ok {
		t.Fatalf("Reconstruct = %+v, want a CaughtOut", msg)
	}
	if len(co.Scores) != 1 || co.Scores[0] != "R1" {
		t.Fatalf("Scores = %+v, want [R1]", co.Scores)
	}
}

func TestReconstructForceOutSeparatesOutRunnerFromAddedBatter(t *testing.T) {
	before := types.First
	detail := types.EventDetail{
		EventType:  types.EventKind(events.ForceOutKind),
		BatterName: "Batter",
		Baserunners: []types.EventDetailRunner{
			{Name: "R1", BaseBefore: &before, BaseAfter: types.Second, IsOut: true},
			{Name: "Batter", BaseAfter: types.First},
		},
	}
	msg, err := Reconstruct(detail)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	fo, ok := msg.(events.ForceOut)
	if !ok {
		t.Fatalf("Reconstruct = %+v, want a ForceOut", msg)
	}
	if len(fo.RunnersOut) != 1 || fo.RunnersOut[0].Runner != "R1" || fo.RunnersOut[0].Base != int(types.Second) {
		t.Fatalf("RunnersOut = %+v, want R1 out at Second", fo.RunnersOut)
	}
	if fo.RunnerAddedName == nil || *fo.RunnerAddedName != "Batter" {
		t.Fatalf("RunnerAddedName = %v, want Batter", fo.RunnerAddedName)
	}
}

func TestReconstructHomeRunDoesNotDoubleCountBatterAsAddedRunner(t *testing.T) {
	detail := types.EventDetail{
		EventType:  types.EventKind(events.HomeRunKind),
		BatterName: "Slugger",
		Baserunners: []types.EventDetailRunner{
			{Name: "Slugger", BaseAfter: types.Home},
		},
	}
	msg, err := Reconstruct(detail)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	hr, ok := msg.(events.HomeRun)
	if !ok {
		t.Fatalf("Reconstruct = %+v, want a HomeRun", msg)
	}
	if hr.RunnerAddedName != nil {
		t.Errorf("RunnerAddedName = %v, want nil (batter's own run isn't a runner-added)", hr.RunnerAddedName)
	}
	if hr.Batter != "Slugger" {
		t.Errorf("Batter = %q, want Slugger", hr.Batter)
	}
}

func TestRoundTripSkipsDetailsWithNoRawText(t *testing.T) {
	details := []types.EventDetail{{GameEventIndex: 5, EventType: types.EventKind(events.WalkKind), BatterName: "A"}}
	logs := RoundTrip(details, map[int]string{}, func(events.Message) (string, error) { return "", nil })
	if len(logs) != 0 {
		t.Fatalf("expected no logs when raw text is missing, got %+v", logs)
	}
}

func TestRoundTripPassesOnExactMatch(t *testing.T) {
	details := []types.EventDetail{{GameEventIndex: 2, EventType: types.EventKind(events.WalkKind), BatterName: "A"}}
	unparse := func(events.Message) (string, error) { return "A walks.", nil }
	logs := RoundTrip(details, map[int]string{2: "A walks."}, unparse)
	if len(logs) != 0 {
		t.Fatalf("expected no mismatch logs, got %+v", logs)
	}
}

func TestRoundTripFlagsMismatch(t *testing.T) {
	details := []types.EventDetail{{GameEventIndex: 2, EventType: types.EventKind(events.WalkKind), BatterName: "A"}}
	unparse := func(events.Message) (string, error) { return "A strikes out.", nil }
	logs := RoundTrip(details, map[int]string{2: "A walks."}, unparse)
	if len(logs) != 1 {
		t.Fatalf("expected exactly one mismatch log, got %+v", logs)
	}
	if logs[0].GameEventIndex == nil || *logs[0].GameEventIndex != 2 {
		t.Errorf("mismatch log GameEventIndex = %v, want 2", logs[0].GameEventIndex)
	}
	if logs[0].LogLevel != types.LogError {
		t.Errorf("mismatch log level = %v, want LogError", logs[0].LogLevel)
	}
}

func TestRoundTripFlagsUnparseFailure(t *testing.T) {
	details := []types.EventDetail{{GameEventIndex: 4, EventType: types.EventKind(events.WalkKind), BatterName: "A"}}
	unparse := func(events.Message) (string, error) { return "", errors.New("boom") }
	logs := RoundTrip(details, map[int]string{4: "A walks."}, unparse)
	if len(logs) != 1 {
		t.Fatalf("expected exactly one log for an unparse failure, got %+v", logs)
	}
}

func TestRoundTripFlagsReconstructFailure(t *testing.T) {
	details := []types.EventDetail{{GameEventIndex: 4, EventType: 0}}
	logs := RoundTrip(details, map[int]string{4: "whatever"}, func(events.Message) (string, error) { return "", nil })
	if len(logs) != 1 {
		t.Fatalf("expected exactly one log for a reconstruct failure, got %+v", logs)
	}
}
