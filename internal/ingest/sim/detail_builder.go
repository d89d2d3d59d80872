package sim

import "stormlightlabs.org/mmoldb/internal/ingest/types"

// detailBuilder snapshots pre-event state and accumulates the fields of one
// EventDetail row as a fluent builder, snapshotting pre-event state up
// front and filling in the rest as dispatch proceeds.
type detailBuilder struct {
	d types.EventDetail
}

func newDetailBuilder(g *Game, gameEventIndex int, eventType types.EventKind) *detailBuilder {
	return &detailBuilder{d: types.EventDetail{
		GameEventIndex: gameEventIndex,
		Inning:         g.inning,
		TopOfInning:    g.topOfInning,
		EventType:      eventType,
		BallsBefore:    g.countBalls,
		StrikesBefore:  g.countStrikes,
		OutsBefore:     g.outs,
		ErrorsBefore:   g.errors,
		HomeScoreBefore: g.homeScore,
		AwayScoreBefore: g.awayScore,
		PitcherName:    g.defendingTeam().ActivePitcher.Name,
		PitcherCount:   g.defendingTeam().PitcherCount,
		BatterCount:    g.battingTeam().BatterCount,
		BatterSubcount: g.battingTeam().BatterSubcount,
	}}
}

func (b *detailBuilder) batter(name string) *detailBuilder {
	b.d.BatterName = name
	return b
}

func (b *detailBuilder) hitBase(base types.Base) *detailBuilder {
	b.d.HitBase = &base
	return b
}

func (b *detailBuilder) fairBall(ballType, direction int) *detailBuilder {
	b.d.FairBallType = &ballType
	b.d.FairBallDirection = &direction
	return b
}

func (b *detailBuilder) fieldingErrorType(t int) *detailBuilder {
	b.d.FieldingErrorType = &t
	return b
}

func (b *detailBuilder) describedAsSacrifice(v bool) *detailBuilder {
	b.d.DescribedAsSacrifice = v
	return b
}

func (b *detailBuilder) isToasty(v bool) *detailBuilder {
	b.d.IsToasty = v
	return b
}

func (b *detailBuilder) cheer(text *string) *detailBuilder {
	b.d.Cheer = text
	return b
}

func (b *detailBuilder) fielder(name string, slot types.FielderSlot) *detailBuilder {
	b.d.Fielders = append(b.d.Fielders, types.EventDetailFielder{Name: name, Slot: slot})
	return b
}

// baserunners appends one EventDetailRunner row per runner this event's
// runner-update pass actually touched. Unlike reading g.runnersOn after the
// fact, this keeps scored/out/caught-stealing runners in the row and keeps
// each runner's own BaseBefore rather than its neighbors' post-event bases.
func (b *detailBuilder) baserunners(rows []types.EventDetailRunner) *detailBuilder {
	b.d.Baserunners = append(b.d.Baserunners, rows...)
	return b
}

// finish snapshots the post-event state once the game has been mutated by
// updateRunners/finishPA.
func (b *detailBuilder) finish(g *Game) types.EventDetail {
	b.d.OutsAfter = g.outs
	b.d.ErrorsAfter = g.errors
	b.d.HomeScoreAfter = g.homeScore
	b.d.AwayScoreAfter = g.awayScore
	return b.d
}
