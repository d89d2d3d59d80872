package sim

import "stormlightlabs.org/mmoldb/internal/ingest/events"

// pitchContext is the payload carried by ExpectPitch and the pitch arm of
// ExpectFallingStarOutcome.
type pitchContext struct {
	batterName            string
	firstPitchOfPA        bool
}

// fairBallOutcomeContext is the payload carried by ExpectFairBallOutcome.
type fairBallOutcomeContext struct {
	batterName string
	fairBall   fairBall
}

type fairBall struct {
	gameEventIndex int
	ballType       events.FairBallType
	destination    events.FairBallDestination
}

// fallingStarContext is the payload carried by ExpectFallingStarOutcome.
type fallingStarContext struct {
	hitPlayer      string
	batterName     string
	firstPitchOfPA bool
}

// contextAfterMoundVisit is resolved back into a full context once a mound
// visit outcome event arrives: a visit never advances game state, only
// defers to whatever would have come next.
type contextAfterMoundVisit struct {
	expectNowBatting bool
	pitch            *pitchContext
}

// contextKind discriminates EventContext for dispatch without reflection.
type contextKind int

const (
	ctxInningStart contextKind = iota
	ctxNowBatting
	ctxMissingNowBattingBug
	ctxPitch
	ctxFairBallOutcome
	ctxFallingStarOutcome
	ctxInningEnd
	ctxMoundVisitOutcome
	ctxGameEnd
	ctxFinalScore
	ctxFinished
)

// eventContext is the simulator's "what can happen next" state. Only the
// fields relevant to kind are populated at any time.
type eventContext struct {
	kind            contextKind
	pitch           pitchContext
	fairBallOutcome fairBallOutcomeContext
	fallingStar     fallingStarContext
	moundVisit      contextAfterMoundVisit
}

func expectInningStart() eventContext { return eventContext{kind: ctxInningStart} }
func expectNowBatting() eventContext  { return eventContext{kind: ctxNowBatting} }
func expectMissingNowBattingBug() eventContext {
	return eventContext{kind: ctxMissingNowBattingBug}
}
func expectPitch(batter string, firstPitch bool) eventContext {
	return eventContext{kind: ctxPitch, pitch: pitchContext{batterName: batter, firstPitchOfPA: firstPitch}}
}
func expectFairBallOutcome(batter string, fb fairBall) eventContext {
	return eventContext{kind: ctxFairBallOutcome, fairBallOutcome: fairBallOutcomeContext{batterName: batter, fairBall: fb}}
}
func expectFallingStarOutcome(c fallingStarContext) eventContext {
	return eventContext{kind: ctxFallingStarOutcome, fallingStar: c}
}
func expectInningEnd() eventContext { return eventContext{kind: ctxInningEnd} }
func expectMoundVisitOutcome(after contextAfterMoundVisit) eventContext {
	return eventContext{kind: ctxMoundVisitOutcome, moundVisit: after}
}
func expectGameEnd() eventContext  { return eventContext{kind: ctxGameEnd} }
func expectFinalScore() eventContext { return eventContext{kind: ctxFinalScore} }
func expectFinished() eventContext { return eventContext{kind: ctxFinished} }

// isDuringNowBattingBugWindow reproduces the known season-3 window during
// which NowBatting events were not published after
// pitcher swaps: seasons other than 3 are unaffected, and within season 3
// only days before day 5, or day 5 itself before event index 461.
func isDuringNowBattingBugWindow(season int, day int, isNumberedDay bool, gameEventIndex int) bool {
	if season != 3 {
		return false
	}
	if !isNumberedDay {
		return false
	}
	return day < 5 || (day == 5 && gameEventIndex < 461)
}

// resolveAfterMoundVisit turns a deferred post-mound-visit context back
// into a concrete one, substituting the bug-window variant when it applies.
func resolveAfterMoundVisit(after contextAfterMoundVisit, season, day int, isNumberedDay bool, gameEventIndex int) eventContext {
	if after.expectNowBatting {
		if isDuringNowBattingBugWindow(season, day, isNumberedDay, gameEventIndex) {
			return expectMissingNowBattingBug()
		}
		return expectNowBatting()
	}
	return expectPitch(after.pitch.batterName, after.pitch.firstPitchOfPA)
}
