package sim

import (
	"fmt"

	"stormlightlabs.org/mmoldb/internal/ingest/events"
	"stormlightlabs.org/mmoldb/internal/ingest/taxa"
	"stormlightlabs.org/mmoldb/internal/ingest/types"
)

// RawEventFields is the handful of fields the fold reads directly off the
// raw (pre-parse) event JSON, needed by the two always-on pre-processors
// and the post-fold baserunner consistency check.
type RawEventFields struct {
	Event   string
	Batter  *string
	On1B    bool
	On2B    bool
	On3B    bool
}

func dayIsNumbered(d Day) (int, bool) {
	if d.Kind == DayNumbered {
		return d.Number, true
	}
	return 0, false
}

// preprocess runs the two season-3 bug-window fixes, mutating g.context
// in place when they apply. A fatal error here aborts only this event --
// all per-event errors are non-fatal -- so it is folded into the returned
// IngestLogs rather than returned to the caller.
func (g *Game) preprocess(gameEventIndex int, raw RawEventFields, msg events.Message, logs *types.IngestLogs) events.Message {
	if g.context.kind == ctxMissingNowBattingBug && raw.Event == "Pitch" {
		if raw.Batter == nil {
			logs.Error("season-3 missing-now-batting fix: raw event has no batter field")
			return msg
		}
		logs.Info(fmt.Sprintf("season-3 missing-now-batting fix: treating this pitch as %s's first", *raw.Batter))
		g.context = expectPitch(*raw.Batter, true)
	}

	if g.context.kind == ctxPitch && g.context.pitch.firstPitchOfPA {
		if nb, ok := msg.(events.NowBatting); ok {
			if nb.Batter == g.context.pitch.batterName {
				logs.Info(fmt.Sprintf("season-3 duplicate-now-batting fix: dropping redundant NowBatting for %s", nb.Batter))
				g.context = expectNowBatting()
			} else if !shouldTreatDuplicateNowBattingAsUnreplaced(g.GameID, nb.Batter) {
				logs.Error(fmt.Sprintf("season-3 duplicate-now-batting fix: NowBatting named %s but expected %s", nb.Batter, g.context.pitch.batterName))
			}
		}
	}

	return msg
}

// Next folds one raw+parsed event pair into the game, returning an
// EventDetail when this event produced one. A non-nil error
// is only ever a construction-stage defect; ordinary per-event problems
// are recorded in the returned logs instead
func (g *Game) Next(gameEventIndex int, raw RawEventFields, msg events.Message, tx taxa.Taxa) (*types.EventDetail, []types.IngestLog) {
	logs := types.NewIngestLogs(gameEventIndex)
	msg = g.preprocess(gameEventIndex, raw, msg, logs)

	if pe, ok := msg.(events.ParseError); ok {
		logs.Error(fmt.Sprintf("parse error: %v (raw: %q)", pe.Err, pe.Text))
		g.prevEventKind = events.ParseErrorKind
		return nil, logs.IntoSlice()
	}

	detail := g.dispatch(gameEventIndex, raw, msg, tx, logs)
	g.checkInternalBaserunnerConsistency(logs)
	g.checkObservedBaserunners(raw, logs)
	g.prevEventKind = msg.Kind()
	return detail, logs.IntoSlice()
}

func (g *Game) checkObservedBaserunners(raw RawEventFields, logs *types.IngestLogs) {
	var on1, on2, on3 bool
	for _, r := range g.runnersOn {
		switch r.Base {
		case types.First:
			on1 = true
		case types.Second:
			on2 = true
		case types.Third:
			on3 = true
		}
	}
	check := func(which string, expected, observed bool) {
		if observed && !expected {
			logs.Error(fmt.Sprintf("observed a runner on %s but expected it to be empty", which))
		} else if !observed && expected {
			logs.Error(fmt.Sprintf("expected a runner on %s but observed it to be empty", which))
		}
	}
	check("first", on1, raw.On1B)
	check("second", on2, raw.On2B)
	check("third", on3, raw.On3B)
}

func (g *Game) dispatch(idx int, raw RawEventFields, msg events.Message, tx taxa.Taxa, logs *types.IngestLogs) *types.EventDetail {
	// A mound visit can interrupt several contexts; check it before the
	// context-specific switch.
	if mv, ok := msg.(events.MoundVisit); ok {
		return g.handleMoundVisit(idx, mv, logs)
	}

	switch g.context.kind {
	case ctxInningStart:
		return g.handleInningStart(idx, raw, msg, logs)
	case ctxNowBatting, ctxMissingNowBattingBug:
		return g.handleNowBatting(idx, msg, logs)
	case ctxPitch:
		return g.handlePitch(idx, raw, msg, tx, logs)
	case ctxFairBallOutcome:
		return g.handleFairBallOutcome(idx, msg, tx, logs)
	case ctxFallingStarOutcome:
		return g.handleFallingStarOutcome(idx, msg, logs)
	case ctxInningEnd:
		return g.handleInningEnd(idx, msg, logs)
	case ctxMoundVisitOutcome:
		return g.handleMoundVisitOutcome(idx, msg, logs)
	case ctxGameEnd:
		return g.handleGameEnd(idx, msg, logs)
	case ctxFinalScore:
		return g.handleFinalScore(idx, msg, logs)
	case ctxFinished:
		return nil
	default:
		logs.Error("unknown context kind")
		return nil
	}
}

func unexpected(logs *types.IngestLogs, previous events.Kind, got events.Message) {
	logs.Error(fmt.Sprintf("unexpected event %s after %s", got.Kind(), previous))
}

func (g *Game) handleInningStart(idx int, raw RawEventFields, msg events.Message, logs *types.IngestLogs) *types.EventDetail {
	is, ok := msg.(events.InningStart)
	if !ok {
		unexpected(logs, g.prevEventKind, msg)
		return nil
	}

	expectedNumber := g.inning
	if is.Side == events.Away {
		expectedNumber++
	}
	if is.Number != expectedNumber {
		logs.Warn(fmt.Sprintf("inning number mismatch: expected %d, observed %d", expectedNumber, is.Number))
	}
	g.inning = is.Number
	g.topOfInning = is.Side == events.Away

	if is.PitcherStatus == events.PitcherDifferent {
		g.defendingTeam().PitcherCount++
	}

	if g.inning > 9 && g.AutomaticRunnerRuleIsActive() {
		runnerName := ""
		if is.AutomaticRunner != nil {
			runnerName = *is.AutomaticRunner
		} else if corrected, ok := predictedAutomaticRunner(g.GameID, g.inning, !g.topOfInning); ok {
			runnerName = corrected
		} else if g.battingTeam().AutomaticRunner != nil {
			runnerName = *g.battingTeam().AutomaticRunner
		} else {
			logs.Error(fmt.Sprintf("missing automatic runner for inning %d", g.inning))
		}
		if runnerName != "" {
			logs.Debug(fmt.Sprintf("adding automatic runner %s", runnerName))
			g.runnersOn = append(g.runnersOn, types.RunnerOn{Name: runnerName, Base: types.Second, SourceEventIndex: nil, IsEarned: false})
		}
	}

	g.outs = 0
	g.errors = 0
	g.context = expectNowBatting()
	return nil
}

func (g *Game) handleNowBatting(idx int, msg events.Message, logs *types.IngestLogs) *types.EventDetail {
	nb, ok := msg.(events.NowBatting)
	if !ok {
		unexpected(logs, g.prevEventKind, msg)
		return nil
	}
	g.battingTeam().BatterCount++
	g.battingTeam().BatterSubcount = 0
	g.battingTeam().HasSeenFirstBatter = true
	g.context = expectPitch(nb.Batter, true)
	return nil
}

func (g *Game) handlePitch(idx int, raw RawEventFields, msg events.Message, tx taxa.Taxa, logs *types.IngestLogs) *types.EventDetail {
	batter := g.context.pitch.batterName
	firstPitch := g.context.pitch.firstPitchOfPA
	g.context = expectPitch(batter, false)
	g.battingTeam().BatterSubcount++

	switch e := msg.(type) {
	case events.Ball:
		g.countBalls++
		g.checkCount(e.Count, logs)
		b := newDetailBuilder(g, idx, types.EventKind(events.BallKind)).batter(batter)
		b.baserunners(g.applySteals(idx, e.Steals, logs))
		return ptrDetail(b.finish(g))

	case events.Strike:
		g.countStrikes++
		g.checkCount(e.Count, logs)
		b := newDetailBuilder(g, idx, types.EventKind(events.StrikeKind)).batter(batter)
		b.baserunners(g.applySteals(idx, e.Steals, logs))
		return ptrDetail(b.finish(g))

	case events.Foul:
		if !(e.Type == events.FoulBallType && g.countStrikes == 2) {
			g.countStrikes++
		}
		g.checkCount(e.Count, logs)
		b := newDetailBuilder(g, idx, types.EventKind(events.FoulKind)).batter(batter)
		b.baserunners(g.applySteals(idx, e.Steals, logs))
		return ptrDetail(b.finish(g))

	case events.FairBall:
		g.context = expectFairBallOutcome(batter, fairBall{gameEventIndex: idx, ballType: e.Type, destination: e.Destination})
		return nil

	case events.Walk:
		b := newDetailBuilder(g, idx, types.EventKind(events.WalkKind)).batter(batter)
		g.runnersOn = append(g.runnersOn, types.RunnerOn{Name: batter, Base: types.First, SourceEventIndex: &idx, IsEarned: true})
		b.baserunners([]types.EventDetailRunner{{Name: batter, BaseAfter: types.First, SourceEventIndex: &idx, IsEarned: true}})
		g.finishPA(batter, logs)
		return ptrDetail(b.finish(g))

	case events.HitByPitch:
		b := newDetailBuilder(g, idx, types.EventKind(events.HitByPitchKind)).batter(batter)
		g.runnersOn = append(g.runnersOn, types.RunnerOn{Name: batter, Base: types.First, SourceEventIndex: &idx, IsEarned: true})
		b.baserunners([]types.EventDetailRunner{{Name: batter, BaseAfter: types.First, SourceEventIndex: &idx, IsEarned: true}})
		g.finishPA(batter, logs)
		return ptrDetail(b.finish(g))

	case events.StrikeOut:
		b := newDetailBuilder(g, idx, types.EventKind(events.StrikeOutKind)).batter(batter)
		g.addOut()
		g.finishPA(batter, logs)
		return ptrDetail(b.finish(g))

	case events.FallingStar:
		g.context = expectFallingStarOutcome(fallingStarContext{hitPlayer: e.HitPlayer, batterName: batter, firstPitchOfPA: firstPitch})
		return nil

	default:
		unexpected(logs, g.prevEventKind, msg)
		g.context = expectPitch(batter, firstPitch)
		return nil
	}
}

func (g *Game) checkCount(observed events.Count, logs *types.IngestLogs) {
	if observed.Balls != g.countBalls || observed.Strikes != g.countStrikes {
		logs.Warn(fmt.Sprintf("count mismatch: simulator has %d-%d, message reports %d-%d", g.countBalls, g.countStrikes, observed.Balls, observed.Strikes))
	}
}

func (g *Game) applySteals(idx int, steals []events.BaseSteal, logs *types.IngestLogs) []types.EventDetailRunner {
	if len(steals) == 0 {
		return nil
	}
	return g.updateRunners(idx, false, runnerUpdate{steals: steals}, logs)
}

func (g *Game) handleFairBallOutcome(idx int, msg events.Message, tx taxa.Taxa, logs *types.IngestLogs) *types.EventDetail {
	batter := g.context.fairBallOutcome.batterName
	fb := g.context.fairBallOutcome.fairBall

	var outcome events.InPlayOutcome
	var eventType types.EventKind
	var isError bool
	var isHomeRun bool
	var fielderErrType *int

	switch e := msg.(type) {
	case events.CaughtOut:
		outcome = e.InPlayOutcome
		eventType = types.EventKind(events.CaughtOutKind)
	case events.GroundedOut:
		outcome = e.InPlayOutcome
		eventType = types.EventKind(events.GroundedOutKind)
	case events.BatterToBase:
		outcome = e.InPlayOutcome
		eventType = types.EventKind(events.BatterToBaseKind)
	case events.ReachOnFieldingError:
		outcome = e.InPlayOutcome
		eventType = types.EventKind(events.ReachOnFieldingErrorKind)
		isError = true
		t := int(e.ErrorType)
		fielderErrType = &t
	case events.HomeRun:
		outcome = e.InPlayOutcome
		eventType = types.EventKind(events.HomeRunKind)
		isHomeRun = true
	case events.DoublePlayCaught:
		outcome = e.InPlayOutcome
		eventType = types.EventKind(events.DoublePlayCaughtKind)
	case events.DoublePlayGrounded:
		outcome = e.InPlayOutcome
		eventType = types.EventKind(events.DoublePlayGroundedKind)
	case events.ForceOut:
		outcome = e.InPlayOutcome
		eventType = types.EventKind(events.ForceOutKind)
	case events.ReachOnFieldersChoice:
		outcome = e.InPlayOutcome
		eventType = types.EventKind(events.ReachOnFieldersChoiceKind)
		isError = e.Outcome == events.FieldersChoiceError
	case events.KnownBug:
		if e.Variant != events.BugFirstBasemanChoosesAGhost {
			unexpected(logs, g.prevEventKind, msg)
			return nil
		}
		outcome = events.InPlayOutcome{Batter: e.Batter}
		// the upstream misreports the first baseman on this known bug;
		// treat it as a force out for reconstruction purposes.
		eventType = types.EventKind(events.ForceOutKind)
	default:
		unexpected(logs, g.prevEventKind, msg)
		return nil
	}

	b := newDetailBuilder(g, fb.gameEventIndex, eventType).batter(batter)
	b.fairBall(int(fb.ballType), int(fb.destination))
	b.describedAsSacrifice(outcome.Sacrifice)
	if fielderErrType != nil {
		b.fieldingErrorType(*fielderErrType)
	}
	for _, f := range resolveFielderSlots(tx, outcome.Fielders, logs) {
		b.d.Fielders = append(b.d.Fielders, f)
	}

	var added *addedRunner
	if outcome.RunnerAddedName != nil && outcome.RunnerAddedBase != nil {
		added = &addedRunner{name: *outcome.RunnerAddedName, base: types.Base(*outcome.RunnerAddedBase)}
	}

	scores := outcome.Scores
	if isHomeRun {
		scores = excludeName(scores, batter)
	}
	transitions := g.updateRunners(idx, isError, runnerUpdate{
		scores:                         scores,
		advances:                       outcome.Advances,
		runnersOut:                     outcome.RunnersOut,
		runnerAdded:                    added,
		runnerAddedForcesAdvances:      outcome.RunnerAddedForcesAdvances,
		runnersOutMayIncludeBatter:     outcome.RunnersOutMayIncludeBatter,
		runnerAdvancesMayIncludeBatter: outcome.RunnerAdvancesMayIncludeBatter,
	}, logs)
	b.baserunners(transitions)

	if isError {
		g.addError()
	}

	if isHomeRun {
		// The batter is never on g.runnersOn before their own home run, so
		// updateRunners can't match them against outcome.Scores -- credit
		// their run and baserunner row directly.
		g.addRunsToBattingTeam(1)
		b.baserunners([]types.EventDetailRunner{{
			Name: batter, BaseAfter: types.Home, IsEarned: g.runnerOnThisEventIsEarned(isError),
		}})
	}

	g.finishPA(batter, logs)
	return ptrDetail(b.finish(g))
}

// excludeName returns names with every occurrence of skip removed,
// preserving order.
func excludeName(names []string, skip string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != skip {
			out = append(out, n)
		}
	}
	return out
}

func (g *Game) handleFallingStarOutcome(idx int, msg events.Message, logs *types.IngestLogs) *types.EventDetail {
	ctx := g.context.fallingStar
	fso, ok := msg.(events.FallingStarOutcome)
	if !ok {
		unexpected(logs, g.prevEventKind, msg)
		return nil
	}

	batter := ctx.batterName
	if ctx.hitPlayer == ctx.batterName && fso.Variant == events.FallingStarRetired {
		if fso.Replacement != nil {
			batter = *fso.Replacement
		} else if corrected, ok := correctedFallingStarReplacement(g.GameID, ctx.hitPlayer); ok && corrected != "" {
			batter = corrected
		} else {
			logs.Error(fmt.Sprintf("falling star retired %s with no named replacement", ctx.hitPlayer))
		}
	}

	g.context = expectPitch(batter, ctx.firstPitchOfPA)
	return nil
}

func (g *Game) handleInningEnd(idx int, msg events.Message, logs *types.IngestLogs) *types.EventDetail {
	_, ok := msg.(events.InningEnd)
	if !ok {
		unexpected(logs, g.prevEventKind, msg)
		return nil
	}
	g.runnersOn = nil
	g.countBalls = 0
	g.countStrikes = 0

	topEndsGameHomeLeads := g.inning >= 9 && g.topOfInning && g.homeScore > g.awayScore
	bottomEndsGameNotTied := g.inning >= 9 && !g.topOfInning && g.homeScore != g.awayScore
	if topEndsGameHomeLeads || bottomEndsGameNotTied {
		g.gameFinished = true
		g.context = expectGameEnd()
	} else {
		g.context = expectInningStart()
	}
	return nil
}

func (g *Game) handleMoundVisit(idx int, mv events.MoundVisit, logs *types.IngestLogs) *types.EventDetail {
	defendingIsHome := !g.topOfInning
	wantsHome := mv.Team == events.DefendingHome
	if wantsHome != defendingIsHome {
		logs.Info("mound visit named a defending team that doesn't match the current half-inning")
	}

	saved := g.context
	after := contextAfterMoundVisit{}
	switch saved.kind {
	case ctxNowBatting, ctxMissingNowBattingBug, ctxInningStart:
		after.expectNowBatting = true
	case ctxPitch:
		p := saved.pitch
		after.pitch = &p
	default:
		p := saved.pitch
		after.pitch = &p
	}
	g.context = expectMoundVisitOutcome(after)
	return nil
}

func (g *Game) handleMoundVisitOutcome(idx int, msg events.Message, logs *types.IngestLogs) *types.EventDetail {
	after := g.context.moundVisit
	switch e := msg.(type) {
	case events.PitcherRemains:
		_ = e
	case events.PitcherSwap:
		g.defendingTeam().ActivePitcher.Name = e.Entering
		g.defendingTeam().PitcherCount++
		logs.Info(fmt.Sprintf("pitcher swap: %s replaced by %s", e.Leaving, e.Entering))
	default:
		unexpected(logs, g.prevEventKind, msg)
		return nil
	}

	day, isNumbered := dayIsNumbered(g.Day)
	g.context = resolveAfterMoundVisit(after, g.Season, day, isNumbered, idx)
	return nil
}

func (g *Game) handleGameEnd(idx int, msg events.Message, logs *types.IngestLogs) *types.EventDetail {
	if _, ok := msg.(events.GameOver); !ok {
		unexpected(logs, g.prevEventKind, msg)
		return nil
	}
	g.context = expectFinalScore()
	return nil
}

func (g *Game) handleFinalScore(idx int, msg events.Message, logs *types.IngestLogs) *types.EventDetail {
	rk, ok := msg.(events.Recordkeeping)
	if !ok {
		unexpected(logs, g.prevEventKind, msg)
		return nil
	}
	expectedWinner := g.away.TeamName
	expectedWinnerScore := g.awayScore
	if g.homeScore > g.awayScore {
		expectedWinner = g.home.TeamName
		expectedWinnerScore = g.homeScore
	}
	if rk.WinningTeam != expectedWinner {
		logs.Warn(fmt.Sprintf("recordkeeping winning team %q does not match simulator's %q", rk.WinningTeam, expectedWinner))
	}
	if rk.WinningScore != expectedWinnerScore {
		logs.Warn("recordkeeping winning score does not match simulator's tally")
	}
	g.context = expectFinished()
	return nil
}

func ptrDetail(d types.EventDetail) *types.EventDetail { return &d }
