package sim

import (
	"fmt"

	"stormlightlabs.org/mmoldb/internal/ingest/events"
	"stormlightlabs.org/mmoldb/internal/ingest/types"
)

// Side names which dugout a team occupies; kept distinct from events.Side
// since the simulator also needs "which side is currently batting".
type Side int

const (
	Away Side = iota
	Home
)

// DayKind distinguishes a regular numbered day from the special day types
// that change which rules apply.
type DayKind int

const (
	DayNumbered DayKind = iota
	DaySuperstar
	DayPostseasonRound
	DayOther
)

// Day is the upstream's own notion of a schedule day, parsed once at
// construction and consulted by the automatic-runner rule.
type Day struct {
	Kind   DayKind
	Number int
}

// BatterStats tracks the handful of per-plate-appearance counters the
// simulator needs; full batting statistics are out of core scope.
type BatterStats struct {
	Hits   int
	AtBats int
}

func (b BatterStats) IsEmpty() bool { return b.Hits == 0 && b.AtBats == 0 }

// SlottedPlayer names a player and the defensive slot taxon they occupy.
type SlottedPlayer struct {
	Name string
	Slot types.FielderSlot
}

// TeamInGame is one team's live state within a single game.
type TeamInGame struct {
	TeamName     string
	TeamEmoji    string
	ActivePitcher SlottedPlayer

	AutomaticRunner *string
	BatterStats     map[string]*BatterStats

	PitcherCount   int
	BatterCount    int
	BatterSubcount int

	AdvanceToNextBatter bool
	HasSeenFirstBatter  bool
}

// Game is the per-game deterministic state machine, folded one
// raw+parsed event pair at a time via Next.
type Game struct {
	GameID      string
	Season      int
	Day         Day
	StadiumName *string

	away TeamInGame
	home TeamInGame

	prevEventKind events.Kind
	context       eventContext

	homeScore, awayScore int
	inning               int
	topOfInning          bool

	countBalls, countStrikes int
	outs, errors             int
	gameFinished             bool

	runnersOn []types.RunnerOn
}

// SimStartupError is returned when the first five events of a game don't
// match the fixed construction sequence.
type SimStartupError struct {
	Reason string
}

func (e *SimStartupError) Error() string { return fmt.Sprintf("game construction failed: %s", e.Reason) }

// GameMeta is the handful of fields construction needs from the upstream
// game payload, beyond the first five events.
type GameMeta struct {
	Season        int
	Day           Day
	AwayStarterTag string
	HomeStarterTag string
}

// NewGame constructs a Game from the first five parsed events, returning
// the per-event construction logs alongside the game.
func NewGame(gameID string, meta GameMeta, first5 []events.Message, parseSlot func(tag string) (types.FielderSlot, bool)) (*Game, [][]types.IngestLog, error) {
	if len(first5) != 5 {
		return nil, nil, &SimStartupError{Reason: fmt.Sprintf("expected exactly 5 construction events, got %d", len(first5))}
	}

	liveNow, ok := first5[0].(events.LiveNow)
	if !ok {
		return nil, nil, &SimStartupError{Reason: "event 0 was not LiveNow"}
	}
	matchup, ok := first5[1].(events.PitchingMatchup)
	if !ok {
		return nil, nil, &SimStartupError{Reason: "event 1 was not PitchingMatchup"}
	}
	awayLineup, ok := first5[2].(events.Lineup)
	if !ok || awayLineup.Side != events.Away {
		return nil, nil, &SimStartupError{Reason: "event 2 was not an away Lineup"}
	}
	homeLineup, ok := first5[3].(events.Lineup)
	if !ok || homeLineup.Side != events.HomeSide {
		return nil, nil, &SimStartupError{Reason: "event 3 was not a home Lineup"}
	}
	if _, ok := first5[4].(events.PlayBall); !ok {
		return nil, nil, &SimStartupError{Reason: "event 4 was not PlayBall"}
	}

	logs := make([][]types.IngestLog, 5)

	l0 := types.NewIngestLogs(0)
	l0.Debug(fmt.Sprintf("set home team to name %q, emoji %q", matchup.HomeTeam.Name, matchup.HomeTeam.Emoji))
	l0.Debug(fmt.Sprintf("set away team to name %q, emoji %q", matchup.AwayTeam.Name, matchup.AwayTeam.Emoji))
	if liveNow.Stadium != nil {
		if meta.Season < 3 {
			l0.Warn(fmt.Sprintf("pre-season-3 game was played in a stadium: %s", *liveNow.Stadium))
		}
	} else if meta.Season >= 3 {
		l0.Warn("post-season-3 game was not played in a stadium")
	}
	logs[0] = l0.IntoSlice()

	l1 := types.NewIngestLogs(1)
	if matchup.AwayTeam.Name != liveNow.AwayTeam.Name {
		l1.Warn("away team name mismatch between PitchingMatchup and LiveNow")
	}
	if matchup.HomeTeam.Name != liveNow.HomeTeam.Name {
		l1.Warn("home team name mismatch between PitchingMatchup and LiveNow")
	}
	l1.Debug(fmt.Sprintf("set home pitcher to %q", matchup.HomePitcher))
	l1.Debug(fmt.Sprintf("set away pitcher to %q", matchup.AwayPitcher))
	logs[1] = l1.IntoSlice()

	l2 := types.NewIngestLogs(2)
	l2.Debug(fmt.Sprintf("set away lineup (%d players)", len(awayLineup.Players)))
	logs[2] = l2.IntoSlice()

	l3 := types.NewIngestLogs(3)
	l3.Debug(fmt.Sprintf("set home lineup (%d players)", len(homeLineup.Players)))
	logs[3] = l3.IntoSlice()

	logs[4] = nil

	awaySlot, ok := parseSlot(meta.AwayStarterTag)
	if !ok {
		return nil, nil, &SimStartupError{Reason: fmt.Sprintf("could not parse away starting pitcher slot %q", meta.AwayStarterTag)}
	}
	homeSlot, ok := parseSlot(meta.HomeStarterTag)
	if !ok {
		return nil, nil, &SimStartupError{Reason: fmt.Sprintf("could not parse home starting pitcher slot %q", meta.HomeStarterTag)}
	}

	awayStats := make(map[string]*BatterStats, len(awayLineup.Players))
	for _, p := range awayLineup.Players {
		awayStats[p.Name] = &BatterStats{}
	}
	homeStats := make(map[string]*BatterStats, len(homeLineup.Players))
	for _, p := range homeLineup.Players {
		homeStats[p.Name] = &BatterStats{}
	}

	g := &Game{
		GameID:      gameID,
		Season:      meta.Season,
		Day:         meta.Day,
		StadiumName: liveNow.Stadium,
		away: TeamInGame{
			TeamName:      liveNow.AwayTeam.Name,
			TeamEmoji:     liveNow.AwayTeam.Emoji,
			ActivePitcher: SlottedPlayer{Name: matchup.AwayPitcher, Slot: awaySlot},
			BatterStats:   awayStats,
		},
		home: TeamInGame{
			TeamName:      liveNow.HomeTeam.Name,
			TeamEmoji:     liveNow.HomeTeam.Emoji,
			ActivePitcher: SlottedPlayer{Name: matchup.HomePitcher, Slot: homeSlot},
			BatterStats:   homeStats,
		},
		prevEventKind: events.PlayBallKind,
		context:       expectInningStart(),
		topOfInning:   false,
	}

	return g, logs, nil
}

// AutomaticRunnerRuleIsActive reports whether the automatic-runner rule
// applies, as a data predicate over (season, day) rather than a
// hard-coded check at every call site.
func (g *Game) AutomaticRunnerRuleIsActive() bool {
	dayThreshold := 240
	if g.Season == 0 {
		dayThreshold = 120
	}
	switch g.Day.Kind {
	case DayNumbered:
		return g.Day.Number <= dayThreshold
	case DaySuperstar:
		return true
	case DayPostseasonRound:
		return false
	default:
		return true
	}
}

func (g *Game) battingTeam() *TeamInGame {
	if g.topOfInning {
		return &g.away
	}
	return &g.home
}

func (g *Game) defendingTeam() *TeamInGame {
	if g.topOfInning {
		return &g.home
	}
	return &g.away
}

func (g *Game) runnerOnThisEventIsEarned(isError bool) bool {
	return !isError
}

func (g *Game) finishPA(batterName string, logs *types.IngestLogs) {
	bt := g.battingTeam()
	bt.AutomaticRunner = &batterName
	if stats, ok := bt.BatterStats[batterName]; ok {
		stats.AtBats++
	}

	g.countBalls = 0
	g.countStrikes = 0
	bt.AdvanceToNextBatter = true

	switch {
	case g.isWalkoff():
		g.endGame()
	case g.outs >= 3:
		g.context = expectInningEnd()
	default:
		g.context = expectNowBatting()
	}
}

func (g *Game) endGame() {
	g.runnersOn = nil
	g.gameFinished = true
	g.context = expectGameEnd()
}

func (g *Game) isWalkoff() bool {
	return g.inning >= 9 && !g.topOfInning && g.homeScore > g.awayScore
}

func (g *Game) addOuts(n int) {
	g.outs += n
	if g.outs >= 3 {
		g.context = expectInningEnd()
		g.runnersOn = nil
	}
}

func (g *Game) addOut() { g.addOuts(1) }

func (g *Game) addErrors(n int) { g.errors += n }

func (g *Game) addError() { g.addErrors(1) }

func (g *Game) addRunsToBattingTeam(runs int) {
	if g.topOfInning {
		g.awayScore += runs
	} else {
		g.homeScore += runs
	}
	if g.isWalkoff() {
		g.endGame()
	}
}

// checkInternalBaserunnerConsistency mirrorsquantified
// properties: sorted descending by base, no duplicate base, nobody on Home.
func (g *Game) checkInternalBaserunnerConsistency(logs *types.IngestLogs) {
	for i := 1; i < len(g.runnersOn); i++ {
		if !(g.runnersOn[i-1].Base > g.runnersOn[i].Base) {
			logs.Error("runners-on list was not sorted descending by base")
			break
		}
	}
	seen := make(map[types.Base]bool, len(g.runnersOn))
	for _, r := range g.runnersOn {
		if seen[r.Base] {
			logs.Error("runners-on list has multiple runners on the same base")
			break
		}
		seen[r.Base] = true
	}
	for _, r := range g.runnersOn {
		if r.Base == types.Home {
			logs.Error("runners-on list has a runner on Home")
			break
		}
	}
}
