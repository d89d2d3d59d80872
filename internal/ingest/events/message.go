package events

// Message is the common interface every ParsedEventMessage variant
// satisfies. The simulator dispatches on Kind() and then type-asserts to
// the concrete variant it expects; ExpectKind (below) centralizes that
// pattern so dispatch sites stay exhaustive and uniform.
type Message interface {
	Kind() Kind
}

// EmojiTeam names a team as quoted in LiveNow / PitchingMatchup.
type EmojiTeam struct {
	Name  string
	Emoji string
}

type LiveNow struct {
	AwayTeam EmojiTeam
	HomeTeam EmojiTeam
	Stadium  *string
}

func (LiveNow) Kind() Kind { return LiveNowKind }

type PitchingMatchup struct {
	HomePitcher string
	AwayPitcher string
	AwayTeam    EmojiTeam
	HomeTeam    EmojiTeam
}

func (PitchingMatchup) Kind() Kind { return PitchingMatchupKind }

type Side int

const (
	Away Side = iota
	HomeSide
)

type LineupPlayer struct {
	Name  string
	Place string
}

type Lineup struct {
	Side    Side
	Players []LineupPlayer
}

func (Lineup) Kind() Kind { return LineupKind }

type PlayBall struct{}

func (PlayBall) Kind() Kind { return PlayBallKind }

type PitcherStatus int

const (
	PitcherSame PitcherStatus = iota
	PitcherDifferent
)

type InningStart struct {
	Number           int
	Side             Side
	PitcherStatus    PitcherStatus
	AutomaticRunner  *string
}

func (InningStart) Kind() Kind { return InningStartKind }

type NowBattingStats int

const (
	StatsFirstPA NowBattingStats = iota
	StatsOther
)

type NowBatting struct {
	Batter string
	Stats  NowBattingStats
}

func (NowBatting) Kind() Kind { return NowBattingKind }

type Count struct {
	Balls   int
	Strikes int
}

type Ball struct {
	Count  Count
	Steals []BaseSteal
	Cheer  *Cheer
}

func (Ball) Kind() Kind { return BallKind }

type StrikeType int

const (
	StrikeLooking StrikeType = iota
	StrikeSwinging
)

type Strike struct {
	Type   StrikeType
	Count  Count
	Steals []BaseSteal
	Cheer  *Cheer
}

func (Strike) Kind() Kind { return StrikeKind }

type FoulType int

const (
	FoulBallType FoulType = iota
	FoulTipType
)

type Foul struct {
	Type   FoulType
	Count  Count
	Steals []BaseSteal
	Cheer  *Cheer
}

func (Foul) Kind() Kind { return FoulKind }

type FairBallType int

const (
	FairBallGroundBall FairBallType = iota
	FairBallLineDrive
	FairBallFlyBall
	FairBallPopUp
)

type FairBallDestination int

type Cheer struct {
	Text    string
	IsToasty bool
}

type FairBall struct {
	Batter      string
	Type        FairBallType
	Destination FairBallDestination
	Cheer       *Cheer
}

func (FairBall) Kind() Kind { return FairBallKind }

// BaseSteal describes an attempted or successful stolen base reported
// alongside a pitch event.
type BaseSteal struct {
	Runner string
	Base   int // taxa base ID of the target base
	Caught bool
}

// RunnerAdvance is a non-steal forced or batted advance.
type RunnerAdvance struct {
	Runner string
	Base   int
}

// RunnerOut is a runner retired on the bases (not the batter, unless the
// May-Include-Batter escape hatch applies).
type RunnerOut struct {
	Runner string
	Base   int
}

// PlacedPlayer names a fielder credited on a play, in the upstream's own
// vocabulary (resolved to a taxon by the simulator, not here).
type PlacedPlayer struct {
	Name  string
	Place string
}

// InPlayOutcome carries the fields common to every ball-in-play resolution
// event (CaughtOut, GroundedOut, BatterToBase, ...). Each concrete event
// embeds it so the runner-update algorithm has one shape to walk.
type InPlayOutcome struct {
	Batter                        string
	Fielders                      []PlacedPlayer
	Scores                        []string
	Advances                      []RunnerAdvance
	RunnersOut                    []RunnerOut
	RunnerAddedName               *string
	RunnerAddedBase               *int
	RunnerAddedForcesAdvances     bool
	RunnersOutMayIncludeBatter    *string
	RunnerAdvancesMayIncludeBatter *string
	Sacrifice                     bool
}

type CaughtOut struct{ InPlayOutcome }

func (CaughtOut) Kind() Kind { return CaughtOutKind }

type GroundedOut struct{ InPlayOutcome }

func (GroundedOut) Kind() Kind { return GroundedOutKind }

type BatterToBase struct {
	InPlayOutcome
	Base int
}

func (BatterToBase) Kind() Kind { return BatterToBaseKind }

type FieldingErrorType int

type ReachOnFieldingError struct {
	InPlayOutcome
	ErrorType FieldingErrorType
	Fielder   PlacedPlayer
}

func (ReachOnFieldingError) Kind() Kind { return ReachOnFieldingErrorKind }

type HomeRun struct {
	InPlayOutcome
	GrandSlam bool
}

func (HomeRun) Kind() Kind { return HomeRunKind }

type DoublePlayCaught struct{ InPlayOutcome }

func (DoublePlayCaught) Kind() Kind { return DoublePlayCaughtKind }

type DoublePlayGrounded struct{ InPlayOutcome }

func (DoublePlayGrounded) Kind() Kind { return DoublePlayGroundedKind }

type ForceOut struct{ InPlayOutcome }

func (ForceOut) Kind() Kind { return ForceOutKind }

type FieldersChoiceOutcome int

const (
	FieldersChoiceOut FieldersChoiceOutcome = iota
	FieldersChoiceError
)

type ReachOnFieldersChoice struct {
	InPlayOutcome
	Outcome FieldersChoiceOutcome
}

func (ReachOnFieldersChoice) Kind() Kind { return ReachOnFieldersChoiceKind }

type Walk struct {
	Batter string
}

func (Walk) Kind() Kind { return WalkKind }

type HitByPitch struct {
	Batter string
}

func (HitByPitch) Kind() Kind { return HitByPitchKind }

type StrikeOutSwing int

const (
	StrikeOutLooking StrikeOutSwing = iota
	StrikeOutSwinging
)

type StrikeOut struct {
	Strike StrikeOutSwing
	Foul   *FoulType
}

func (StrikeOut) Kind() Kind { return StrikeOutKind }

type DefendingTeam int

const (
	DefendingHome DefendingTeam = iota
	DefendingAway
)

type MoundVisit struct {
	Team DefendingTeam
}

func (MoundVisit) Kind() Kind { return MoundVisitKind }

type PitcherRemains struct {
	Remaining string
}

func (PitcherRemains) Kind() Kind { return PitcherRemainsKind }

type PitcherSwap struct {
	Leaving   string
	Entering  string
	Slot      string
}

func (PitcherSwap) Kind() Kind { return PitcherSwapKind }

type Balk struct {
	InPlayOutcome
}

func (Balk) Kind() Kind { return BalkKind }

type FallingStar struct {
	HitPlayer string
}

func (FallingStar) Kind() Kind { return FallingStarKind }

type FallingStarOutcomeVariant int

const (
	FallingStarUnchanged FallingStarOutcomeVariant = iota
	FallingStarRetired
	FallingStarInfused
)

type FallingStarOutcome struct {
	Variant     FallingStarOutcomeVariant
	Replacement *string
}

func (FallingStarOutcome) Kind() Kind { return FallingStarOutcomeKind }

type InningEnd struct {
	Number int
	Side   Side
}

func (InningEnd) Kind() Kind { return InningEndKind }

type GameOverVariant int

const (
	GameOverPeriod    GameOverVariant = iota // "Game Over."
	GameOverAllCaps                          // "GAME OVER."
)

type GameOver struct {
	Variant GameOverVariant
}

func (GameOver) Kind() Kind { return GameOverKind }

type Recordkeeping struct {
	WinningTeam string
	LosingTeam  string
	WinningScore int
	LosingScore  int
}

func (Recordkeeping) Kind() Kind { return RecordkeepingKind }

type WeatherDelivery struct {
	Text string
}

func (WeatherDelivery) Kind() Kind { return WeatherDeliveryKind }

// BugVariant enumerates the upstream's own known-bug markers. New variants
// require a matching dispatch arm in the simulator: the compiler
// enforces exhaustiveness on Go's side via the switch-default panic in
// sim.dispatchKnownBug, not via a sealed type, since Go has no sum types.
type BugVariant int

const (
	BugFirstBasemanChoosesAGhost BugVariant = iota
	BugWeatherNoop
)

type KnownBug struct {
	Variant       BugVariant
	Batter        string
	FirstBaseman  string
}

func (KnownBug) Kind() Kind { return KnownBugKind }

type ParseError struct {
	Err  error
	Text string
}

func (ParseError) Kind() Kind { return ParseErrorKind }
