package sim

import (
	"testing"

	"stormlightlabs.org/mmoldb/internal/ingest/events"
	"stormlightlabs.org/mmoldb/internal/ingest/types"
)

func hasErrorLog(logs []types.IngestLog) bool {
	for _, l := range logs {
		if l.LogLevel == types.LogError {
			return true
		}
	}
	return false
}

func TestCursorOnlyAcceptsCurrentHead(t *testing.T) {
	c := newCursor([]int{1, 2, 3})

	if _, ok := c.peekNext(func(v int) bool { return v == 2 }); ok {
		t.Fatal("peekNext matched past the current head")
	}
	v, ok := c.peekNext(func(v int) bool { return v == 1 })
	if !ok || v != 1 {
		t.Fatalf("peekNext on a matching head = (%d, %v), want (1, true)", v, ok)
	}
	if rem := c.remaining(); len(rem) != 2 || rem[0] != 2 {
		t.Fatalf("remaining() = %v, want [2 3]", rem)
	}
}

func TestUpdateRunnersScoreFromThird(t *testing.T) {
	g := &Game{
		runnersOn:   []types.RunnerOn{{Name: "Alice", Base: types.Third}},
		topOfInning: true,
	}
	logs := types.NewGameWideLogs()

	transitions := g.updateRunners(10, false, runnerUpdate{scores: []string{"Alice"}}, logs)

	if len(g.runnersOn) != 0 {
		t.Errorf("runnersOn = %+v, want empty", g.runnersOn)
	}
	if g.awayScore != 1 {
		t.Errorf("awayScore = %d, want 1", g.awayScore)
	}
	if hasErrorLog(logs.IntoSlice()) {
		t.Errorf("unexpected error log(s): %+v", logs.IntoSlice())
	}
	if len(transitions) != 1 {
		t.Fatalf("transitions = %+v, want exactly one", transitions)
	}
	tr := transitions[0]
	if tr.Name != "Alice" || tr.BaseAfter != types.Home {
		t.Errorf("transition = %+v, want Alice to Home", tr)
	}
	if tr.BaseBefore == nil || *tr.BaseBefore != types.Third {
		t.Errorf("transition.BaseBefore = %v, want Third", tr.BaseBefore)
	}
	if tr.IsOut {
		t.Errorf("transition.IsOut = true, want false for a scored run")
	}
}

func TestUpdateRunnersCaughtStealing(t *testing.T) {
	g := &Game{runnersOn: []types.RunnerOn{{Name: "Bob", Base: types.First}}}
	logs := types.NewGameWideLogs()

	transitions := g.updateRunners(5, false, runnerUpdate{
		steals: []events.BaseSteal{{Runner: "Bob", Base: int(types.Second), Caught: true}},
	}, logs)

	if len(g.runnersOn) != 0 {
		t.Errorf("runnersOn = %+v, want empty after a caught steal", g.runnersOn)
	}
	if g.outs != 1 {
		t.Errorf("outs = %d, want 1", g.outs)
	}
	if hasErrorLog(logs.IntoSlice()) {
		t.Errorf("unexpected error log(s): %+v", logs.IntoSlice())
	}
	if len(transitions) != 1 {
		t.Fatalf("transitions = %+v, want exactly one", transitions)
	}
	tr := transitions[0]
	if tr.Name != "Bob" || !tr.IsOut || !tr.IsSteal {
		t.Errorf("transition = %+v, want Bob out and tagged as a steal attempt", tr)
	}
	if tr.BaseBefore == nil || *tr.BaseBefore != types.First || tr.BaseAfter != types.Second {
		t.Errorf("transition bases = before %v after %v, want First -> Second", tr.BaseBefore, tr.BaseAfter)
	}
}

func TestUpdateRunnersSuccessfulSteal(t *testing.T) {
	g := &Game{runnersOn: []types.RunnerOn{{Name: "Cara", Base: types.First}}}
	logs := types.NewGameWideLogs()

	transitions := g.updateRunners(7, false, runnerUpdate{
		steals: []events.BaseSteal{{Runner: "Cara", Base: int(types.Second)}},
	}, logs)

	if len(g.runnersOn) != 1 || g.runnersOn[0].Base != types.Second {
		t.Fatalf("runnersOn = %+v, want Cara on Second", g.runnersOn)
	}
	if hasErrorLog(logs.IntoSlice()) {
		t.Errorf("unexpected error log(s): %+v", logs.IntoSlice())
	}
	if len(transitions) != 1 {
		t.Fatalf("transitions = %+v, want exactly one", transitions)
	}
	tr := transitions[0]
	if tr.Name != "Cara" || tr.IsOut || !tr.IsSteal {
		t.Errorf("transition = %+v, want Cara safe and tagged as a steal", tr)
	}
	if tr.BaseBefore == nil || *tr.BaseBefore != types.First || tr.BaseAfter != types.Second {
		t.Errorf("transition bases = before %v after %v, want First -> Second", tr.BaseBefore, tr.BaseAfter)
	}
}

func TestUpdateRunnersOutAtBase(t *testing.T) {
	g := &Game{runnersOn: []types.RunnerOn{{Name: "Dana", Base: types.Second}}}
	logs := types.NewGameWideLogs()

	transitions := g.updateRunners(3, false, runnerUpdate{
		runnersOut: []events.RunnerOut{{Runner: "Dana", Base: int(types.Third)}},
	}, logs)

	if len(g.runnersOn) != 0 {
		t.Errorf("runnersOn = %+v, want empty", g.runnersOn)
	}
	if g.outs != 1 {
		t.Errorf("outs = %d, want 1", g.outs)
	}
	if len(transitions) != 1 {
		t.Fatalf("transitions = %+v, want exactly one", transitions)
	}
	tr := transitions[0]
	if tr.Name != "Dana" || !tr.IsOut || tr.IsSteal {
		t.Errorf("transition = %+v, want Dana out (not a steal)", tr)
	}
	if tr.BaseBefore == nil || *tr.BaseBefore != types.Second || tr.BaseAfter != types.Third {
		t.Errorf("transition bases = before %v after %v, want Second -> Third", tr.BaseBefore, tr.BaseAfter)
	}
}

func TestUpdateRunnersBatterReachesOnFielderChoice(t *testing.T) {
	g := &Game{}
	logs := types.NewGameWideLogs()
	batter := "Evan"

	transitions := g.updateRunners(1, false, runnerUpdate{
		runnerAdvancesMayIncludeBatter: &batter,
		advances:                       []events.RunnerAdvance{{Runner: "Evan", Base: int(types.First)}},
	}, logs)

	if len(g.runnersOn) != 1 || g.runnersOn[0].Name != "Evan" || g.runnersOn[0].Base != types.First {
		t.Fatalf("runnersOn = %+v, want Evan on First", g.runnersOn)
	}
	if hasErrorLog(logs.IntoSlice()) {
		t.Errorf("unexpected error log(s): %+v", logs.IntoSlice())
	}
	if len(transitions) != 1 {
		t.Fatalf("transitions = %+v, want exactly one", transitions)
	}
	tr := transitions[0]
	if tr.Name != "Evan" || tr.BaseBefore != nil || tr.BaseAfter != types.First || tr.IsOut {
		t.Errorf("transition = %+v, want Evan added at First with no BaseBefore", tr)
	}
}

func TestCheckInternalBaserunnerConsistency(t *testing.T) {
	tests := []struct {
		name      string
		runnersOn []types.RunnerOn
		wantError bool
	}{
		{"empty is fine", nil, false},
		{"sorted descending is fine", []types.RunnerOn{{Base: types.Third}, {Base: types.First}}, false},
		{"ascending order is flagged", []types.RunnerOn{{Base: types.First}, {Base: types.Third}}, true},
		{"duplicate base is flagged", []types.RunnerOn{{Base: types.Second}, {Base: types.Second}}, true},
		{"runner on home is flagged", []types.RunnerOn{{Base: types.Home}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Game{runnersOn: tt.runnersOn}
			logs := types.NewGameWideLogs()
			g.checkInternalBaserunnerConsistency(logs)
			if got := hasErrorLog(logs.IntoSlice()); got != tt.wantError {
				t.Errorf("hasErrorLog = %v, want %v (logs: %+v)", got, tt.wantError, logs.IntoSlice())
			}
		})
	}
}

func TestAutomaticRunnerRuleIsActive(t *testing.T) {
	tests := []struct {
		name   string
		season int
		day    Day
		want   bool
	}{
		{"season 0, numbered day under threshold", 0, Day{Kind: DayNumbered, Number: 100}, true},
		{"season 0, numbered day over threshold", 0, Day{Kind: DayNumbered, Number: 121}, false},
		{"later season, numbered day under threshold", 3, Day{Kind: DayNumbered, Number: 200}, true},
		{"later season, numbered day over threshold", 3, Day{Kind: DayNumbered, Number: 241}, false},
		{"superstar day always active", 3, Day{Kind: DaySuperstar}, true},
		{"postseason day never active", 3, Day{Kind: DayPostseasonRound}, false},
		{"other day kind defaults active", 3, Day{Kind: DayOther}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Game{Season: tt.season, Day: tt.day}
			if got := g.AutomaticRunnerRuleIsActive(); got != tt.want {
				t.Errorf("AutomaticRunnerRuleIsActive() = %v, want %v", got, tt.want)
			}
		})
	}
}
